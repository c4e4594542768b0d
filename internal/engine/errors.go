package engine

import "errors"

var (
	ErrHandEnded        = errors.New("hand already ended")
	ErrOutOfTurn        = errors.New("action out of turn")
	ErrInvalidAction    = errors.New("action not in the legal set")
	ErrActionTooLate    = errors.New("action no longer matches the current hand/turn")
	ErrNotEnoughPlayers = errors.New("fewer than two eligible seats")
)

// InvalidStateError marks an internal invariant violation; the SessionLoop
// treats it as fatal per the error handling design (abort match, no winner).
type InvalidStateError string

func (e InvalidStateError) Error() string { return "invalid engine state: " + string(e) }
