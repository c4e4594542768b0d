// Package seat implements SeatRegistry: binding a self-declared team name to
// a persistent seat, reconciling reconnects, and tracking connectivity
// across a single match's lifetime.
package seat

import (
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrTableFull is returned when an unknown team tries to join a table
	// with no free seat index left.
	ErrTableFull = errors.New("table full")
	// ErrTeamUnknown is returned when a configured join_code does not
	// match the seat's locked code.
	ErrTeamUnknown = errors.New("team unknown or join code mismatch")
)

// Seat is one persistent participant record. It survives for the whole
// match; only Stack, Connected, and BoundConnection change hand to hand.
type Seat struct {
	Index           int
	Team            string // lowercase comparison key
	DisplayTeam     string // first-observed casing
	Stack           int64
	Connected       bool
	BoundConnection string // opaque connection id, empty when unbound
	joinCodeHash    []byte
}

// Registry binds team identities to seats for one table.
type Registry struct {
	mu       sync.Mutex
	maxSeats int
	seats    []*Seat       // index-aligned, nil until occupied
	byTeam   map[string]*Seat
}

// NewRegistry creates an empty registry for a table with maxSeats seats.
func NewRegistry(maxSeats int) *Registry {
	return &Registry{
		maxSeats: maxSeats,
		seats:    make([]*Seat, maxSeats),
		byTeam:   make(map[string]*Seat),
	}
}

// HelloBot processes a bot hello: assigns a new seat for an unknown team
// (if room remains), or rebinds an existing team's connection, per §4.5.
// joinCode is ignored when the seat has no locked code configured.
// startingStack seeds a newly created seat's stack; it is ignored on a
// reconnect, since a returning team keeps whatever stack it already has
// (which may legitimately be low or zero after a rough run of hands).
func (r *Registry) HelloBot(team, joinCode, connID string, startingStack int64) (*Seat, error) {
	key := strings.ToLower(team)

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.byTeam[key]; ok {
		if len(s.joinCodeHash) > 0 {
			if err := bcrypt.CompareHashAndPassword(s.joinCodeHash, []byte(joinCode)); err != nil {
				return nil, ErrTeamUnknown
			}
		}
		s.BoundConnection = connID
		s.Connected = true
		return s, nil
	}

	idx := r.firstFreeIndex()
	if idx < 0 {
		return nil, ErrTableFull
	}
	s := &Seat{
		Index:           idx,
		Team:            key,
		DisplayTeam:     team,
		Stack:           startingStack,
		BoundConnection: connID,
		Connected:       true,
	}
	if joinCode != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(joinCode), bcrypt.DefaultCost)
		if err == nil {
			s.joinCodeHash = hash
		}
	}
	r.seats[idx] = s
	r.byTeam[key] = s
	return s, nil
}

func (r *Registry) firstFreeIndex() int {
	for i, s := range r.seats {
		if s == nil {
			return i
		}
	}
	return -1
}

// Disconnect marks connID's seat as disconnected, retaining its stack and
// seat index per §4.5. A no-op if connID is not currently bound anywhere.
func (r *Registry) Disconnect(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.seats {
		if s != nil && s.BoundConnection == connID {
			s.Connected = false
			s.BoundConnection = ""
			return
		}
	}
}

// BySeat returns the seat at idx, or nil if unoccupied.
func (r *Registry) BySeat(idx int) *Seat {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx < 0 || idx >= len(r.seats) {
		return nil
	}
	return r.seats[idx]
}

// ByConnection returns the seat currently bound to connID, or nil.
func (r *Registry) ByConnection(connID string) *Seat {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.seats {
		if s != nil && s.BoundConnection == connID {
			return s
		}
	}
	return nil
}

// Occupied returns every occupied seat, ordered by seat index.
func (r *Registry) Occupied() []*Seat {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Seat, 0, len(r.seats))
	for _, s := range r.seats {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// SetStack overwrites a seat's persistent chip count, called by
// MatchController after settling a hand.
func (r *Registry) SetStack(idx int, stack int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx >= 0 && idx < len(r.seats) && r.seats[idx] != nil {
		r.seats[idx].Stack = stack
	}
}
