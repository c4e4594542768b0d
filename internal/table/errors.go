package table

import (
	"errors"

	"holdem-host/internal/seat"
)

var (
	errSeatsOutOfRange = errors.New("seats must be within [2,10]")
	errBBTooSmall      = errors.New("big blind must be at least twice the small blind")
	errMoveTimeInvalid = errors.New("move_time_ms must be positive")

	errTableClosed = errors.New("table closed")
)

// helloErrorCode maps a SeatRegistry.HelloBot failure to its wire error code
// per §6/§7 (TABLE_FULL, TEAM_UNKNOWN are identity errors: respond and close).
func helloErrorCode(err error) string {
	switch {
	case errors.Is(err, seat.ErrTableFull):
		return "TABLE_FULL"
	case errors.Is(err, seat.ErrTeamUnknown):
		return "TEAM_UNKNOWN"
	default:
		return "BAD_SCHEMA"
	}
}
