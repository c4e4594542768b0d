package match

import (
	"testing"

	"holdem-host/internal/engine"
	"holdem-host/internal/seat"
)

func newTestRegistry(t *testing.T, stacks ...int64) *seat.Registry {
	t.Helper()
	r := seat.NewRegistry(len(stacks))
	for i, stack := range stacks {
		s, err := r.HelloBot(teamName(i), "", connID(i), stack)
		if err != nil {
			t.Fatalf("HelloBot seat %d: %v", i, err)
		}
		if s.Index != i {
			t.Fatalf("expected seat %d to get index %d, got %d", i, i, s.Index)
		}
	}
	return r
}

func teamName(i int) string { return string(rune('a' + i)) }
func connID(i int) string   { return string(rune('A' + i)) }

func TestRotateButton_FirstHandPicksLowestEligible(t *testing.T) {
	r := newTestRegistry(t, 1000, 1000, 1000)
	c := NewController(r, ControlAuto)
	c.RotateButton(c.EligibleSeats())
	if c.ButtonSeat != 0 {
		t.Fatalf("expected first button at seat 0, got %d", c.ButtonSeat)
	}
}

func TestRotateButton_AdvancesClockwiseAndWraps(t *testing.T) {
	r := newTestRegistry(t, 1000, 1000, 1000)
	c := NewController(r, ControlAuto)
	c.RotateButton(c.EligibleSeats())
	c.RotateButton(c.EligibleSeats())
	if c.ButtonSeat != 1 {
		t.Fatalf("expected button at seat 1, got %d", c.ButtonSeat)
	}
	c.RotateButton(c.EligibleSeats())
	if c.ButtonSeat != 2 {
		t.Fatalf("expected button at seat 2, got %d", c.ButtonSeat)
	}
	c.RotateButton(c.EligibleSeats())
	if c.ButtonSeat != 0 {
		t.Fatalf("expected button to wrap back to seat 0, got %d", c.ButtonSeat)
	}
}

func TestRotateButton_SkipsEliminatedSeat(t *testing.T) {
	r := newTestRegistry(t, 1000, 0, 1000)
	c := NewController(r, ControlAuto)
	c.ButtonSeat = 0
	c.RotateButton(c.EligibleSeats())
	if c.ButtonSeat != 2 {
		t.Fatalf("expected button to skip busted seat 1 and land on seat 2, got %d", c.ButtonSeat)
	}
}

func TestNextHandID_MonotonicSequence(t *testing.T) {
	c := &Controller{}
	first := c.NextHandID()
	second := c.NextHandID()
	if first == second {
		t.Fatalf("expected distinct hand ids, got %q twice", first)
	}
	if len(first) < len("H-YYYYMMDD-0001") {
		t.Fatalf("unexpected hand id format: %q", first)
	}
}

func TestSettleHand_DetectsEliminationAndMatchEnd(t *testing.T) {
	r := newTestRegistry(t, 1000, 1000)
	c := NewController(r, ControlAuto)

	hand := &engine.HandState{
		Players: map[int]*engine.PlayerHandState{
			0: {Seat: 0, Stack: 2000},
			1: {Seat: 1, Stack: 0},
		},
	}
	settlement := c.SettleHand(hand)
	if len(settlement.Eliminated) != 1 || settlement.Eliminated[0] != 1 {
		t.Fatalf("expected seat 1 eliminated, got %v", settlement.Eliminated)
	}
	if !settlement.MatchOver {
		t.Fatalf("expected match over with one seat left holding chips")
	}
	if settlement.Winner == nil || settlement.Winner.Index != 0 {
		t.Fatalf("expected seat 0 declared winner, got %+v", settlement.Winner)
	}
	if got := r.BySeat(0).Stack; got != 2000 {
		t.Fatalf("expected registry stack for seat 0 updated to 2000, got %d", got)
	}
}

func TestSettleHand_MatchContinuesWithMultipleSurvivors(t *testing.T) {
	r := newTestRegistry(t, 1000, 1000, 1000)
	c := NewController(r, ControlAuto)

	hand := &engine.HandState{
		Players: map[int]*engine.PlayerHandState{
			0: {Seat: 0, Stack: 1500},
			1: {Seat: 1, Stack: 1500},
			2: {Seat: 2, Stack: 0},
		},
	}
	settlement := c.SettleHand(hand)
	if settlement.MatchOver {
		t.Fatalf("match should continue with two seats still holding chips")
	}
	if len(settlement.Eliminated) != 1 || settlement.Eliminated[0] != 2 {
		t.Fatalf("expected seat 2 eliminated, got %v", settlement.Eliminated)
	}
}
