// Package table implements SessionLoop: the single-threaded cooperative
// driver that starts hands, prompts actors, applies their decisions (or a
// clock/operator override), and broadcasts the resulting events, per §4.7.
package table

import (
	"log"
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"

	"holdem-host/internal/broadcast"
	"holdem-host/internal/clock"
	"holdem-host/internal/engine"
	"holdem-host/internal/match"
	"holdem-host/internal/seat"
	"holdem-host/internal/wire"
)

// Table owns one match's worth of engine, seat, clock, and broadcast state.
// Every field below is only ever touched from the run() goroutine; external
// callers only ever reach in through SubmitEvent.
type Table struct {
	cfg   Config
	seats *seat.Registry
	match *match.Controller
	bc    *broadcast.Broadcaster
	clock *clock.Clock

	hand       *engine.HandState
	clockChan  <-chan time.Time
	matchOver  bool

	events chan inEvent
	done   chan struct{}
}

// New creates a Table and starts its SessionLoop goroutine.
func New(cfg Config) (*Table, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	t := &Table{
		cfg:    cfg,
		seats:  seat.NewRegistry(cfg.Seats),
		bc:     broadcast.New(),
		clock:  clock.New(cfg.HandControl == match.ControlAuto),
		events: make(chan inEvent, 64),
		done:   make(chan struct{}),
	}
	t.match = match.NewController(t.seats, cfg.HandControl)
	go t.run()
	return t, nil
}

// SubmitEvent bridges an external goroutine (a gateway read pump, an
// operator command handler) into the single-threaded loop and blocks until
// it has been processed.
func (t *Table) SubmitEvent(ev inEvent) error {
	ev.Response = make(chan error, 1)
	select {
	case t.events <- ev:
	case <-t.done:
		return errTableClosed
	}
	select {
	case err := <-ev.Response:
		return err
	case <-t.done:
		return errTableClosed
	}
}

// Stop closes the table's loop. Idempotent.
func (t *Table) Stop() {
	select {
	case <-t.done:
	default:
		close(t.done)
	}
}

func (t *Table) run() {
	for {
		select {
		case ev := <-t.events:
			t.handleEvent(ev)
		case <-t.clockChan:
			t.handleClockExpiry()
		case <-t.done:
			return
		}
	}
}

func (t *Table) reply(ev inEvent, err error) {
	if ev.Response != nil {
		ev.Response <- err
	}
}

func (t *Table) handleEvent(ev inEvent) {
	switch ev.Kind {
	case evBotHello:
		t.handleBotHello(ev)
	case evBotAction:
		t.handleBotAction(ev)
	case evBotDisconnect:
		t.handleBotDisconnect(ev)
	case evSpectatorHello:
		t.handleSpectatorHello(ev)
	case evSpectatorLeave:
		t.bc.RemoveSpectator(ev.ConnID)
		t.bc.RemoveOperator(ev.ConnID)
		t.reply(ev, nil)
	case evControl:
		t.handleControl(ev)
	case evClose:
		t.reply(ev, nil)
		t.Stop()
	default:
		t.reply(ev, nil)
	}
}

func (t *Table) handleBotHello(ev inEvent) {
	s, err := t.seats.HelloBot(ev.Team, ev.JoinCode, ev.ConnID, t.cfg.StartingStack)
	if err != nil {
		t.sendFrame(ev.Sink, t.errorFrame(helloErrorCode(err), err.Error()))
		t.reply(ev, err)
		return
	}
	t.bc.AddBot(s.Index, ev.Sink)
	t.sendFrame(ev.Sink, t.welcomeFrame(s))
	t.bc.BroadcastPublic(t.encode(t.lobbyFrame()))

	if t.hand != nil {
		t.sendFrame(ev.Sink, t.snapshotFor(s))
		if len(t.hand.ToActQueue) > 0 && t.hand.ToActQueue[0] == s.Index && t.clock.Paused() {
			t.clockChan = t.clock.Resume()
			if legal, lerr := engine.LegalActions(t.hand, s.Index); lerr == nil {
				t.sendFrame(ev.Sink, t.actPromptFor(s.Index, legal))
			}
		}
	}
	t.maybeStartHand()
	t.reply(ev, nil)
}

func (t *Table) handleBotDisconnect(ev inEvent) {
	s := t.seats.ByConnection(ev.ConnID)
	if s == nil {
		t.reply(ev, nil)
		return
	}
	t.seats.Disconnect(ev.ConnID)
	t.bc.RemoveBot(s.Index)
	if t.hand != nil && len(t.hand.ToActQueue) > 0 && t.hand.ToActQueue[0] == s.Index {
		t.clock.Pause()
		if t.clock.Paused() {
			t.clockChan = nil
		}
	}
	t.bc.BroadcastPublic(t.encode(t.lobbyFrame()))
	t.reply(ev, nil)
}

func (t *Table) handleBotAction(ev inEvent) {
	s := t.seats.ByConnection(ev.ConnID)
	if s == nil || t.hand == nil {
		t.reply(ev, nil)
		return
	}
	if ev.Action.HandID != t.hand.HandID {
		t.sendSeatError(s.Index, "ACTION_TOO_LATE", "action does not match the current hand")
		t.reply(ev, nil)
		return
	}
	if len(t.hand.ToActQueue) == 0 || t.hand.ToActQueue[0] != s.Index {
		t.sendSeatError(s.Index, "OUT_OF_TURN", "it is not your turn")
		t.reply(ev, nil)
		return
	}

	action := wire.ActionFromWire(ev.Action.Action)
	var amount int64
	if ev.Action.Amount != nil {
		amount = *ev.Action.Amount
	}
	t.applyAction(s.Index, action, amount, "INVALID_ACTION")
	t.reply(ev, nil)
}

// applyAction runs one engine transition, broadcasts the resulting events,
// cancels the clock, and advances the hand/match lifecycle.
func (t *Table) applyAction(seatIdx int, action engine.Action, amount int64, errCode string) {
	events, err := engine.Apply(t.hand, seatIdx, action, amount)
	if err != nil {
		if _, fatal := err.(engine.InvalidStateError); fatal {
			// Internal invariant violation: abort the match with no winner.
			log.Printf("table: aborting match: %v", err)
			t.clock.Cancel()
			t.clockChan = nil
			t.hand = nil
			t.matchOver = true
			t.bc.BroadcastPublic(t.encode(wire.MatchEnd{
				Envelope: wire.Envelope{Type: "match_end", V: wire.ProtocolVersion},
				Winner:   wire.Winner{Seat: engine.InvalidSeat},
			}))
			return
		}
		t.sendSeatError(seatIdx, errCode, err.Error())
		return
	}
	t.clock.Cancel()
	t.clockChan = nil
	t.broadcastEvents(events)
	t.afterTransition()
}

func (t *Table) handleClockExpiry() {
	if t.hand == nil || len(t.hand.ToActQueue) == 0 {
		return
	}
	seatIdx := t.hand.ToActQueue[0]
	legal, err := engine.LegalActions(t.hand, seatIdx)
	if err != nil {
		return
	}
	action, amount := autoAction(legal)
	t.applyAction(seatIdx, action, amount, "INVALID_ACTION")
}

// autoAction picks the DecisionClock's expiry fallback: CHECK, else CALL,
// else FOLD (§4.6).
func autoAction(legal *engine.LegalActionSet) (engine.Action, int64) {
	if legal.Has(engine.ActionCheck) {
		return engine.ActionCheck, 0
	}
	if legal.Has(engine.ActionCall) {
		return engine.ActionCall, legal.CallAmount
	}
	return engine.ActionFold, 0
}

// afterTransition runs after any successful engine transition: if the hand
// ended it settles the match and starts the next one; otherwise it prompts
// the next actor.
func (t *Table) afterTransition() {
	if t.hand.Phase == engine.PhaseShowdown {
		t.settleHand()
		return
	}
	t.promptNextActor()
}

func (t *Table) promptNextActor() {
	if len(t.hand.ToActQueue) == 0 {
		return
	}
	seatIdx := t.hand.ToActQueue[0]
	legal, err := engine.LegalActions(t.hand, seatIdx)
	if err != nil {
		log.Printf("table: legal actions failed for seat %d: %v", seatIdx, err)
		return
	}
	s := t.seats.BySeat(seatIdx)
	d := time.Duration(t.cfg.MoveTimeMs) * time.Millisecond
	t.clockChan = t.clock.Start(seatIdx, d)
	if s != nil && s.Connected {
		t.bc.SendPrivate(seatIdx, t.encode(t.actPromptFor(seatIdx, legal)))
		return
	}
	// Disconnected seat: in pause-on-disconnect mode, suspend the clock
	// immediately so a reconnect resumes with the full turn still
	// available. In strict wall-clock mode Pause is a no-op — the turn
	// keeps expiring on schedule per §4.6, so the channel must stay live.
	t.clock.Pause()
	if t.clock.Paused() {
		t.clockChan = nil
	}
}

func (t *Table) settleHand() {
	settlement := t.match.SettleHand(t.hand)
	t.bc.BroadcastPublic(t.encode(wire.EndHand{
		Envelope: wire.Envelope{Type: "end_hand", V: wire.ProtocolVersion},
		HandID:   t.hand.HandID,
		Stacks:   t.stacksFrame(),
	}))
	for _, seatIdx := range settlement.Eliminated {
		log.Printf("table: seat %d eliminated, hand %s", seatIdx, t.hand.HandID)
		t.bc.BroadcastPublic(t.encode(wire.EventToWire(engine.Event{
			Kind: engine.EventEliminated, Seat: seatIdx,
		})))
	}
	t.hand = nil
	t.clock.Cancel()
	t.clockChan = nil

	if settlement.MatchOver {
		t.matchOver = true
		final := make([]wire.StackEntry, 0, len(t.seats.Occupied()))
		for _, s := range t.seats.Occupied() {
			final = append(final, wire.StackEntry{Seat: s.Index, Stack: s.Stack})
		}
		log.Printf("table: match over, winner seat %d (%s) with %s chips",
			settlement.Winner.Index, settlement.Winner.DisplayTeam, humanize.Comma(settlement.Winner.Stack))
		t.bc.BroadcastPublic(t.encode(wire.MatchEnd{
			Envelope:    wire.Envelope{Type: "match_end", V: wire.ProtocolVersion},
			Winner:      wire.Winner{Seat: settlement.Winner.Index, Team: settlement.Winner.DisplayTeam},
			FinalStacks: final,
		}))
		return
	}
	if t.match.HandControlMode == match.ControlOperator {
		t.match.AwaitingManualStart = true
	}
	t.maybeStartHand()
}

func (t *Table) maybeStartHand() {
	if t.matchOver || t.hand != nil {
		return
	}
	if t.match.HandControlMode == match.ControlOperator && t.match.AwaitingManualStart {
		t.bc.BroadcastOperatorStatus(t.encode(t.statusFrame()))
		return
	}
	t.startHand()
}

func (t *Table) startHand() {
	eligible := t.match.EligibleSeats()
	if len(eligible) < 2 {
		return
	}
	t.match.RotateButton(eligible)
	handID := t.match.NextHandID()
	seed := t.cfg.Seed
	if seed != 0 {
		seed += int64(t.match.HandSequence)
	}
	if seed == 0 {
		seed = rand.Int63()
	}
	hand, events, err := engine.StartHand(eligible, t.match.ButtonSeat, seed, t.cfg.SmallBlind, t.cfg.BigBlind, handID)
	if err != nil {
		log.Printf("table: start hand failed: %v", err)
		return
	}
	t.hand = hand

	stacks := make([]wire.StackEntry, 0, len(eligible))
	for _, e := range eligible {
		stacks = append(stacks, wire.StackEntry{Seat: e.Seat, Stack: e.Stack})
	}
	t.bc.BroadcastPublic(t.encode(wire.StartHand{
		Envelope: wire.Envelope{Type: "start_hand", V: wire.ProtocolVersion},
		HandID:   handID,
		Seed:     hand.Seed,
		Button:   t.match.ButtonSeat,
		Stacks:   stacks,
	}))
	t.broadcastEvents(events)
	t.afterTransition()
}

func (t *Table) broadcastEvents(events []engine.Event) {
	for _, ev := range events {
		t.bc.BroadcastPublic(t.encode(wire.EventToWire(ev)))
	}
}

func (t *Table) encode(v any) []byte {
	data, err := wire.Marshal(v)
	if err != nil {
		log.Printf("table: marshal failed: %v", err)
		return nil
	}
	return data
}

func (t *Table) sendFrame(sink broadcast.Sink, v any) {
	sink.Send(t.encode(v))
}

func (t *Table) errorFrame(code, msg string) wire.ErrorFrame {
	return wire.ErrorFrame{
		Envelope: wire.Envelope{Type: "error", V: wire.ProtocolVersion},
		Code:     code,
		Msg:      msg,
	}
}

func (t *Table) sendSeatError(seatIdx int, code, msg string) {
	t.bc.SendPrivate(seatIdx, t.encode(t.errorFrame(code, msg)))
}
