package engine

import (
	"fmt"
	"sort"

	"holdem-host/card"
)

// StartHand builds the initial HandState for a new hand: shuffles the deck
// with seed, rotates blinds off buttonSeat, posts forced bets, deals hole
// cards, and constructs the pre-flop to_act_queue. Mirrors §4.3.1.
func StartHand(seats []SeatInput, buttonSeat int, seed int64, sb, bb int64, handID string) (*HandState, []Event, error) {
	eligible := make([]int, 0, len(seats))
	stacks := make(map[int]int64, len(seats))
	for _, s := range seats {
		if s.Stack > 0 {
			eligible = append(eligible, s.Seat)
			stacks[s.Seat] = s.Stack
		}
	}
	if len(eligible) < 2 {
		return nil, nil, ErrNotEnoughPlayers
	}
	sort.Ints(eligible)

	deck := card.NewDeck(seed)

	h := &HandState{
		HandID:            handID,
		Seed:              deck.Seed(),
		ButtonSeat:        buttonSeat,
		Deck:              deck,
		Phase:             PhasePreFlop,
		Players:           make(map[int]*PlayerHandState, len(eligible)),
		SmallBlind:        sb,
		BigBlind:          bb,
		LastAggressorSeat: InvalidSeat,
		seatRing:          rotateAfter(eligible, buttonSeat),
	}
	for _, seat := range eligible {
		h.Players[seat] = &PlayerHandState{Seat: seat, Stack: stacks[seat]}
	}

	// Deal two hole cards per eligible seat in dealer order (starting left of button).
	dealOrder := h.seatRing
	for round := 0; round < 2; round++ {
		for _, seat := range dealOrder {
			cards, ok := deck.Deal(1)
			if !ok {
				return nil, nil, InvalidStateError("deck underflow dealing hole cards")
			}
			p := h.Players[seat]
			p.Hole[round] = cards[0]
			p.HasCards = true
		}
	}

	sbSeat, bbSeat := h.blindSeats()
	events := make([]Event, 0, 4)

	sbPlayer := h.Players[sbSeat]
	sbPost := min64(sb, sbPlayer.Stack)
	h.commit(sbPlayer, sbPost)
	bbPlayer := h.Players[bbSeat]
	bbPost := min64(bb, bbPlayer.Stack)
	h.commit(bbPlayer, bbPost)
	events = append(events, Event{Kind: EventPostBlinds, Seat: sbSeat, Amount: sbPost})
	events = append(events, Event{Kind: EventPostBlinds, Seat: bbSeat, Amount: bbPost})

	h.CurrentBet = bb
	h.MinRaiseIncrement = bb
	h.LastAggressorSeat = bbSeat
	h.ReopenAllowed = true

	h.ToActQueue = h.preFlopQueue(sbSeat, bbSeat)

	// Blinds alone can leave fewer than 2 non-all-in seats (e.g. a short
	// stack posts an all-in big blind heads-up): deal out the remaining
	// streets immediately per §4.3.4 rather than stalling with an empty
	// to_act_queue and a pre-flop phase.
	settleEvents, err := h.AdvanceIfSettled()
	if err != nil {
		return nil, nil, err
	}
	events = append(events, settleEvents...)
	return h, events, nil
}

// beginStreet resets per-street betting state and deals in a fresh to_act_queue.
func (h *HandState) beginStreet() {
	h.CurrentBet = 0
	h.MinRaiseIncrement = h.BigBlind
	h.LastAggressorSeat = InvalidSeat
	h.ReopenAllowed = true
	for _, p := range h.Players {
		p.CommittedThisStreet = 0
		p.ClosedAction = false
	}
	h.ToActQueue = h.postFlopQueue()
}

func (h *HandState) commit(p *PlayerHandState, amount int64) {
	if amount <= 0 {
		return
	}
	p.Stack -= amount
	p.CommittedThisStreet += amount
	p.TotalInPot += amount
	if p.Stack == 0 {
		p.IsAllIn = true
	}
}

// blindSeats returns (smallBlind, bigBlind) honoring the heads-up exception:
// with exactly two eligible seats the button is the small blind.
func (h *HandState) blindSeats() (int, int) {
	if len(h.seatRing) == 2 {
		return h.ButtonSeat, h.seatRing[0]
	}
	return h.seatRing[0], h.seatRing[1]
}

// preFlopQueue builds the pre-flop to_act_queue: first seat left of BB,
// wrapping around to BB last. Heads-up: SB/button acts first.
//
// Per §4.3.4, fewer than 2 non-all-in seats means there is no one left to
// bet against: the queue is left empty so the caller deals out the
// remaining streets instead of prompting a lone seat to act.
func (h *HandState) preFlopQueue(sbSeat, bbSeat int) []int {
	if h.nonFoldedNonAllInCount() < 2 {
		return nil
	}
	if len(h.seatRing) == 2 {
		return h.activeOnly([]int{sbSeat, bbSeat})
	}
	return h.activeOnly(rotateAfter(h.seatRing, bbSeat))
}

// postFlopQueue builds a new street's to_act_queue: first non-folded
// non-all-in seat left of the button (heads-up: BB acts first). See
// preFlopQueue for the fewer-than-2-non-all-in early-out.
func (h *HandState) postFlopQueue() []int {
	if h.nonFoldedNonAllInCount() < 2 {
		return nil
	}
	return h.activeOnly(h.seatRing)
}

func (h *HandState) activeOnly(order []int) []int {
	out := make([]int, 0, len(order))
	for _, seat := range order {
		p := h.Players[seat]
		if p == nil || p.HasFolded || p.IsAllIn {
			continue
		}
		out = append(out, seat)
	}
	return out
}

// rotateAfter returns ring rotated so it starts immediately after seat and
// ends with seat itself, e.g. rotateAfter([1,2,3,4], 2) == [3,4,1,2].
func rotateAfter(ring []int, seat int) []int {
	idx := -1
	for i, s := range ring {
		if s == seat {
			idx = i
			break
		}
	}
	if idx == -1 {
		return append([]int(nil), ring...)
	}
	out := make([]int, 0, len(ring))
	out = append(out, ring[idx+1:]...)
	out = append(out, ring[:idx+1]...)
	return out
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// nonFoldedCount returns how many seats have not folded.
func (h *HandState) nonFoldedCount() int {
	n := 0
	for _, p := range h.Players {
		if !p.HasFolded {
			n++
		}
	}
	return n
}

func (h *HandState) nonFoldedNonAllInCount() int {
	n := 0
	for _, p := range h.Players {
		if !p.HasFolded && !p.IsAllIn {
			n++
		}
	}
	return n
}

func (h *HandState) seatExists(seat int) bool {
	_, ok := h.Players[seat]
	return ok
}

func (h *HandState) popFromQueue(seat int) {
	for i, s := range h.ToActQueue {
		if s == seat {
			h.ToActQueue = append(h.ToActQueue[:i], h.ToActQueue[i+1:]...)
			return
		}
	}
}

func (h *HandState) String() string {
	return fmt.Sprintf("hand %s phase=%s bet=%d", h.HandID, h.Phase, h.CurrentBet)
}
