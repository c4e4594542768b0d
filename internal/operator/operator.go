// Package operator implements OperatorChannel's command validation: which
// control commands are well-formed and worth forwarding into the table's
// SessionLoop (§4.9). The SessionLoop itself still executes commands,
// since operator actions share its single-threaded driver rather than
// acting as a parallel authority (§9).
package operator

const (
	StartHand   = "START_HAND"
	SkipAction  = "SKIP_ACTION"
	ForfeitSeat = "FORFEIT_SEAT"
)

// Valid reports whether command is a recognized control command. Unknown
// commands are silently dropped per §7/§4.9 rather than surfaced as errors.
func Valid(command string) bool {
	switch command {
	case StartHand, SkipAction, ForfeitSeat:
		return true
	default:
		return false
	}
}

// RequiresSeat reports whether command carries a seat argument.
func RequiresSeat(command string) bool {
	return command == ForfeitSeat
}
