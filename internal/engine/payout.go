package engine

import (
	"holdem-host/card"
	"holdem-host/internal/handeval"
)

// runShowdown evaluates every remaining hand, builds the pots, and awards
// each one to its best-hand seat(s), splitting ties per §4.3.5 step 4: any
// chip that does not divide evenly goes one at a time to the tied seats
// closest to the left of the button, in order.
func (h *HandState) runShowdown() ([]Event, error) {
	results := make(map[int]*handeval.Result, len(h.Players))
	for seat, p := range h.Players {
		if p.HasFolded || !p.HasCards {
			continue
		}
		seven := card.CardList(append([]card.Card{p.Hole[0], p.Hole[1]}, h.Community...))
		res := handeval.EvalBestOf7(seven)
		if res == nil {
			return nil, InvalidStateError("showdown evaluation failed for a live hand")
		}
		results[seat] = res
	}

	var events []Event
	for seat, p := range h.Players {
		res, ok := results[seat]
		if !ok {
			continue
		}
		seven := append([]card.Card{p.Hole[0], p.Hole[1]}, h.Community...)
		best := make([]card.Card, 5)
		for i, idx := range res.BestIndex {
			best[i] = seven[idx]
		}
		events = append(events, Event{
			Kind: EventShowdown, Seat: seat,
			Hand: &ShowdownHand{
				Seat: seat, Hole: p.Hole, BestFive: best,
				Category: byte(res.Category), Score: res.Score,
			},
		})
	}

	pots := buildPots(h)
	order := rotateAfter(h.seatRing, h.ButtonSeat) // closest-to-left-of-button order, for odd-chip awards

	for i, pot := range pots {
		winners := bestHandSeats(pot.Eligible, results)
		amounts := splitPot(pot.Amount, winners, order)
		for idx, seat := range winners {
			h.Players[seat].Stack += amounts[idx]
		}
		events = append(events, Event{
			Kind: EventPotAward, Seat: InvalidSeat, PotIdx: i, Pot: pot.Amount, Winners: winners,
		})
	}

	h.ended = true
	h.Phase = PhaseShowdown
	return events, nil
}

func bestHandSeats(eligible map[int]bool, results map[int]*handeval.Result) []int {
	var best uint32
	var winners []int
	for seat := range eligible {
		res, ok := results[seat]
		if !ok {
			continue
		}
		switch {
		case res.Score > best:
			best = res.Score
			winners = []int{seat}
		case res.Score == best:
			winners = append(winners, seat)
		}
	}
	return winners
}

// splitPot divides amount evenly across winners, handing any remainder one
// chip at a time to winners in order, ordered closest-to-left-of-button first.
func splitPot(amount int64, winners []int, order []int) []int64 {
	if len(winners) == 0 {
		return nil
	}
	share := amount / int64(len(winners))
	remainder := amount % int64(len(winners))

	ordered := make([]int, 0, len(winners))
	winnerSet := make(map[int]bool, len(winners))
	for _, w := range winners {
		winnerSet[w] = true
	}
	for _, seat := range order {
		if winnerSet[seat] {
			ordered = append(ordered, seat)
		}
	}

	amounts := make([]int64, len(winners))
	index := make(map[int]int, len(winners))
	for i, seat := range winners {
		amounts[i] = share
		index[seat] = i
	}
	for i := 0; i < int(remainder); i++ {
		seat := ordered[i%len(ordered)]
		amounts[index[seat]]++
	}
	return amounts
}
