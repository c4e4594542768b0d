package seat

import "testing"

func TestHelloBot_AssignsSeatsInOrderAndIsCaseInsensitive(t *testing.T) {
	r := NewRegistry(3)

	s1, err := r.HelloBot("TeamAlpha", "", "conn-1", 1000)
	if err != nil {
		t.Fatalf("HelloBot: %v", err)
	}
	if s1.Index != 0 {
		t.Fatalf("expected first team to take seat 0, got %d", s1.Index)
	}
	if s1.DisplayTeam != "TeamAlpha" {
		t.Fatalf("expected display casing preserved, got %q", s1.DisplayTeam)
	}

	s2, err := r.HelloBot("teamalpha", "", "conn-2", 1000)
	if err != nil {
		t.Fatalf("HelloBot reconnect: %v", err)
	}
	if s2.Index != 0 {
		t.Fatalf("expected case-insensitive match to reuse seat 0, got %d", s2.Index)
	}
	if s2.BoundConnection != "conn-2" {
		t.Fatalf("expected reconnect to rebind to conn-2, got %q", s2.BoundConnection)
	}
	if got := r.ByConnection("conn-1"); got != nil {
		t.Fatalf("expected conn-1 no longer bound to any seat, got seat %d", got.Index)
	}
}

func TestHelloBot_NewSeatStartsWithConfiguredStack(t *testing.T) {
	r := NewRegistry(2)
	s, err := r.HelloBot("team-b", "", "conn-1", 5000)
	if err != nil {
		t.Fatalf("HelloBot: %v", err)
	}
	if s.Stack != 5000 {
		t.Fatalf("expected new seat to start with configured stack 5000, got %d", s.Stack)
	}
}

func TestHelloBot_TableFullRejectsUnknownTeam(t *testing.T) {
	r := NewRegistry(1)
	if _, err := r.HelloBot("team-a", "", "conn-1", 1000); err != nil {
		t.Fatalf("HelloBot: %v", err)
	}
	if _, err := r.HelloBot("team-b", "", "conn-2", 1000); err != ErrTableFull {
		t.Fatalf("expected ErrTableFull, got %v", err)
	}
}

func TestHelloBot_JoinCodeMismatchRejected(t *testing.T) {
	r := NewRegistry(2)
	if _, err := r.HelloBot("team-a", "secret", "conn-1", 1000); err != nil {
		t.Fatalf("HelloBot: %v", err)
	}
	if _, err := r.HelloBot("team-a", "wrong", "conn-2", 1000); err != ErrTeamUnknown {
		t.Fatalf("expected ErrTeamUnknown on join code mismatch, got %v", err)
	}
	if _, err := r.HelloBot("team-a", "secret", "conn-3", 1000); err != nil {
		t.Fatalf("expected correct join code to succeed, got %v", err)
	}
}

func TestHelloBot_NoJoinCodeConfiguredIgnoresOne(t *testing.T) {
	r := NewRegistry(2)
	if _, err := r.HelloBot("team-a", "", "conn-1", 1000); err != nil {
		t.Fatalf("HelloBot: %v", err)
	}
	if _, err := r.HelloBot("team-a", "anything", "conn-2", 1000); err != nil {
		t.Fatalf("expected join code to be ignored when none was configured, got %v", err)
	}
}

func TestDisconnect_RetainsStackAndSeat(t *testing.T) {
	r := NewRegistry(2)
	s, err := r.HelloBot("team-a", "", "conn-1", 1000)
	if err != nil {
		t.Fatalf("HelloBot: %v", err)
	}
	r.SetStack(s.Index, 400)
	r.Disconnect("conn-1")

	seat := r.BySeat(s.Index)
	if seat == nil {
		t.Fatalf("expected seat to remain after disconnect")
	}
	if seat.Connected {
		t.Fatalf("expected seat marked disconnected")
	}
	if seat.Stack != 400 {
		t.Fatalf("expected stack retained at 400, got %d", seat.Stack)
	}
	if seat.BoundConnection != "" {
		t.Fatalf("expected connection unbound, got %q", seat.BoundConnection)
	}
}

func TestOccupied_OrderedBySeatIndex(t *testing.T) {
	r := NewRegistry(3)
	if _, err := r.HelloBot("team-c", "", "conn-1", 1000); err != nil {
		t.Fatalf("HelloBot: %v", err)
	}
	if _, err := r.HelloBot("team-a", "", "conn-2", 1000); err != nil {
		t.Fatalf("HelloBot: %v", err)
	}
	occ := r.Occupied()
	if len(occ) != 2 {
		t.Fatalf("expected 2 occupied seats, got %d", len(occ))
	}
	if occ[0].Index != 0 || occ[1].Index != 1 {
		t.Fatalf("expected seats ordered by index, got %d,%d", occ[0].Index, occ[1].Index)
	}
}
