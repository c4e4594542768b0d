package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func seatInputs(stacks ...int64) []SeatInput {
	out := make([]SeatInput, len(stacks))
	for i, s := range stacks {
		out[i] = SeatInput{Seat: i, Stack: s}
	}
	return out
}

func TestStartHand_HeadsUp_ButtonIsSmallBlind(t *testing.T) {
	h, events, err := StartHand(seatInputs(1000, 1000), 0, 1, 50, 100, "H-test-1")
	require.NoError(t, err)
	require.Len(t, events, 2, "expected 2 POST_BLINDS events")
	require.Equal(t, int64(50), h.Players[0].CommittedThisStreet, "seat 0 (button/SB) should post 50")
	require.Equal(t, int64(100), h.Players[1].CommittedThisStreet, "seat 1 (BB) should post 100")
	if diff := cmp.Diff([]int{0, 1}, h.ToActQueue); diff != "" {
		t.Fatalf("preflop queue mismatch (-want +got):\n%s", diff)
	}

	h.beginStreet()
	if diff := cmp.Diff([]int{1, 0}, h.ToActQueue); diff != "" {
		t.Fatalf("postflop queue mismatch (-want +got):\n%s", diff)
	}
}

func TestStartHand_ThreeWay_QueueOrder(t *testing.T) {
	h, _, err := StartHand(seatInputs(1000, 1000, 1000), 0, 1, 50, 100, "H-test-2")
	require.NoError(t, err)
	require.Equal(t, int64(50), h.Players[1].CommittedThisStreet, "seat 1 should be SB")
	require.Equal(t, int64(100), h.Players[2].CommittedThisStreet, "seat 2 should be BB")
	if diff := cmp.Diff([]int{0, 1, 2}, h.ToActQueue); diff != "" {
		t.Fatalf("preflop queue mismatch (-want +got):\n%s", diff)
	}

	h.beginStreet()
	if diff := cmp.Diff([]int{1, 2, 0}, h.ToActQueue); diff != "" {
		t.Fatalf("postflop queue mismatch (-want +got):\n%s", diff)
	}
}

func TestStartHand_RefusesWithFewerThanTwoEligible(t *testing.T) {
	_, _, err := StartHand(seatInputs(1000, 0, 0), 0, 1, 50, 100, "H-test-3")
	require.ErrorIs(t, err, ErrNotEnoughPlayers)
}
