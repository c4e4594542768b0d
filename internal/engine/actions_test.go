package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestLegalActions_OutOfTurn(t *testing.T) {
	h, _, err := StartHand(seatInputs(1000, 1000, 1000), 0, 1, 50, 100, "H-t1")
	if err != nil {
		t.Fatalf("StartHand err: %v", err)
	}
	// Preflop queue is [0,1,2]; seat 1 is not yet to act.
	if _, err := LegalActions(h, 1); err != ErrOutOfTurn {
		t.Fatalf("expected ErrOutOfTurn, got %v", err)
	}
}

func TestLegalActions_AllInSeatRejected(t *testing.T) {
	h, _, err := StartHand(seatInputs(1000, 1000), 0, 1, 50, 100, "H-t2")
	if err != nil {
		t.Fatalf("StartHand err: %v", err)
	}
	h.Players[0].IsAllIn = true
	h.ToActQueue = []int{0}
	if _, err := LegalActions(h, 0); err == nil {
		t.Fatalf("expected an error for an all-in seat, got nil")
	}
}

func TestApply_FoldToWin(t *testing.T) {
	h, _, err := StartHand(seatInputs(10000, 10000, 10000), 0, 1, 50, 100, "H-t3")
	if err != nil {
		t.Fatalf("StartHand err: %v", err)
	}
	// Button (seat 0) opens to 400; both blinds fold.
	if _, err := Apply(h, 0, ActionRaiseTo, 400); err != nil {
		t.Fatalf("seat 0 raise: %v", err)
	}
	if _, err := Apply(h, 1, ActionFold, 0); err != nil {
		t.Fatalf("seat 1 fold: %v", err)
	}
	events, err := Apply(h, 2, ActionFold, 0)
	if err != nil {
		t.Fatalf("seat 2 fold: %v", err)
	}

	var award *Event
	for i := range events {
		if events[i].Kind == EventPotAward {
			award = &events[i]
		}
	}
	if award == nil {
		t.Fatalf("expected a POT_AWARD event, got %+v", events)
	}
	if len(award.Winners) != 1 || award.Winners[0] != 0 {
		t.Fatalf("expected seat 0 to win uncontested, got winners %v", award.Winners)
	}
	if award.Pot != 550 {
		t.Fatalf("expected pot of 550 (400+50+100), got %d", award.Pot)
	}
	if got := h.Players[0].Stack; got != 10000-400+550 {
		t.Fatalf("seat 0 final stack wrong: got %d", got)
	}
}

func TestLegalActions_MinRaiseCappedToStack(t *testing.T) {
	// Heads up: seat 0 is button/SB with a short stack, seat 1 is BB.
	h, _, err := StartHand(seatInputs(125, 10000), 0, 1, 50, 100, "H-t4")
	if err != nil {
		t.Fatalf("StartHand err: %v", err)
	}
	legal, err := LegalActions(h, 0)
	if err != nil {
		t.Fatalf("LegalActions: %v", err)
	}
	if !legal.Has(ActionRaiseTo) {
		t.Fatalf("expected RAISE_TO to be offered (short all-in raise)")
	}
	if legal.MinRaiseTo != 125 || legal.MaxRaiseTo != 125 {
		t.Fatalf("expected min/max raise both capped to 125, got min=%d max=%d", legal.MinRaiseTo, legal.MaxRaiseTo)
	}
	if !legal.Has(ActionCall) || legal.CallAmount != 50 {
		t.Fatalf("expected a call of 50, got has=%v amount=%d", legal.Has(ActionCall), legal.CallAmount)
	}
}

func TestApply_ShortAllInRaiseRequeuesCallersWithoutReraise(t *testing.T) {
	// Button and SB have deep stacks; BB can only jam short of a full raise.
	h, _, err := StartHand(seatInputs(10000, 10000, 150), 0, 1, 50, 100, "H-t5")
	if err != nil {
		t.Fatalf("StartHand err: %v", err)
	}
	if _, err := Apply(h, 0, ActionCall, 0); err != nil {
		t.Fatalf("seat 0 call: %v", err)
	}
	if _, err := Apply(h, 1, ActionCall, 0); err != nil {
		t.Fatalf("seat 1 call: %v", err)
	}
	if _, err := Apply(h, 2, ActionRaiseTo, 150); err != nil {
		t.Fatalf("seat 2 short all-in raise: %v", err)
	}

	if diff := cmp.Diff([]int{0, 1}, h.ToActQueue); diff != "" {
		t.Fatalf("re-queued seats mismatch (-want +got):\n%s", diff)
	}

	legal, err := LegalActions(h, 0)
	require.NoError(t, err)
	if legal.Has(ActionRaiseTo) {
		t.Fatalf("a short all-in raise must not reopen the raise option for a seat that already closed its action")
	}
	if !legal.Has(ActionCall) || legal.CallAmount != 50 {
		t.Fatalf("seat 0 should still owe a call of 50 on the short all-in, got has=%v amount=%d", legal.Has(ActionCall), legal.CallAmount)
	}
}

func TestApply_FullRaiseReopensQueueForEarlierCallers(t *testing.T) {
	h, _, err := StartHand(seatInputs(10000, 10000, 10000), 0, 1, 50, 100, "H-t6")
	if err != nil {
		t.Fatalf("StartHand err: %v", err)
	}
	if _, err := Apply(h, 0, ActionCall, 0); err != nil {
		t.Fatalf("seat 0 call: %v", err)
	}
	if _, err := Apply(h, 1, ActionCall, 0); err != nil {
		t.Fatalf("seat 1 call: %v", err)
	}
	if _, err := Apply(h, 2, ActionRaiseTo, 300); err != nil {
		t.Fatalf("seat 2 full raise: %v", err)
	}

	if diff := cmp.Diff([]int{0, 1}, h.ToActQueue); diff != "" {
		t.Fatalf("re-queued seats mismatch (-want +got):\n%s", diff)
	}
	legal, err := LegalActions(h, 0)
	require.NoError(t, err)
	if !legal.Has(ActionRaiseTo) {
		t.Fatalf("a full raise should reopen the raise option for a seat that already closed its action")
	}
}

func TestApply_AllInBlockedFromFurtherActions(t *testing.T) {
	h, _, err := StartHand(seatInputs(150, 10000, 10000), 0, 1, 50, 100, "H-t7")
	if err != nil {
		t.Fatalf("StartHand err: %v", err)
	}
	// Button (seat 0) shoves all in for 150.
	if _, err := Apply(h, 0, ActionRaiseTo, 150); err != nil {
		t.Fatalf("seat 0 shove: %v", err)
	}
	if h.Players[0].IsAllIn != true {
		t.Fatalf("seat 0 should be all in")
	}
	if _, err := LegalActions(h, 0); err == nil {
		t.Fatalf("an all-in seat must never be offered another action")
	}
}
