package table

import (
	"holdem-host/internal/engine"
	"holdem-host/internal/match"
	"holdem-host/internal/operator"
	"holdem-host/internal/wire"
)

func (t *Table) handleSpectatorHello(ev inEvent) {
	switch ev.Role {
	case "operator":
		t.bc.AddOperator(ev.ConnID, ev.Sink)
	default:
		t.bc.AddSpectator(ev.ConnID, ev.Sink, ev.Presentation, ev.PresentationDelay)
	}
	t.sendFrame(ev.Sink, t.lobbyFrame())
	if t.hand != nil {
		t.sendFrame(ev.Sink, t.spectatorSnapshot())
	}
	t.sendFrame(ev.Sink, t.statusFrame())
	t.reply(ev, nil)
}

// spectatorSnapshot renders the current hand with no private information,
// for the spectator-channel's spectator/snapshot frame.
func (t *Table) spectatorSnapshot() spectatorSnapshot {
	return spectatorSnapshot{
		Type:      "spectator/snapshot",
		V:         wire.ProtocolVersion,
		HandID:    t.hand.HandID,
		Phase:     t.hand.Phase.String(),
		Community: wire.CardsToWire(t.hand.Community),
		Players:   t.playerViews(),
	}
}

// spectatorSnapshot is deliberately distinct from wire.Snapshot: the
// bot-facing type carries private hole cards and must never be reused for
// spectators.
type spectatorSnapshot struct {
	Type      string            `json:"type"`
	V         int               `json:"v"`
	HandID    string            `json:"hand_id"`
	Phase     string            `json:"phase"`
	Community []string          `json:"community"`
	Players   []wire.PlayerView `json:"players"`
}

func (t *Table) handleControl(ev inEvent) {
	if ev.Control == nil || !operator.Valid(ev.Control.Command) {
		t.reply(ev, nil)
		return
	}
	switch ev.Control.Command {
	case operator.StartHand:
		if t.match.HandControlMode == match.ControlOperator && t.hand == nil {
			t.match.AwaitingManualStart = false
			t.startHand()
			t.bc.BroadcastOperatorStatus(t.encode(t.statusFrame()))
		}
	case operator.SkipAction:
		t.handleSkipAction()
	case operator.ForfeitSeat:
		if ev.Control.Seat != nil {
			t.handleForfeit(*ev.Control.Seat)
		}
	}
	t.reply(ev, nil)
}

// handleSkipAction is equivalent to immediate clock expiry for the acting
// seat (§4.7).
func (t *Table) handleSkipAction() {
	if t.hand == nil || len(t.hand.ToActQueue) == 0 {
		return
	}
	t.handleClockExpiry()
}

// handleForfeit folds seatIdx in the current hand (if it's live in one) and
// zeroes its stack once the hand settles, per §4.7's fold-all-chips
// semantics. When a hand is in progress, match.SettleHand writes each
// seat's registry stack back from the hand's own Player.Stack once the hand
// ends — so the bust-out has to land on the engine-side stack too, or
// SettleHand would resurrect whatever the seat had left after folding.
func (t *Table) handleForfeit(seatIdx int) {
	if t.hand != nil {
		if p, ok := t.hand.Players[seatIdx]; ok {
			// Zero the engine-side stack before folding: folding this seat
			// may settle the hand right here (e.g. it was the last other
			// seat still live), and SettleHand must see the bust-out amount
			// rather than whatever the seat had left.
			p.Stack = 0
			if !p.HasFolded && !p.IsAllIn {
				if len(t.hand.ToActQueue) > 0 && t.hand.ToActQueue[0] == seatIdx {
					t.applyAction(seatIdx, engine.ActionFold, 0, "INVALID_ACTION")
				} else {
					p.HasFolded = true
				}
			}
			return
		}
	}
	t.seats.SetStack(seatIdx, 0)
}
