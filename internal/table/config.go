package table

import "holdem-host/internal/match"

// Config is the process-wide configuration surface of §6: seat count,
// stakes, clock, and the two optional scheduling knobs (manual hand start,
// paced spectator delivery).
type Config struct {
	TableID             string
	Seats               int
	StartingStack       int64
	SmallBlind          int64
	BigBlind            int64
	MoveTimeMs          int64
	HandControl         match.HandControl
	Presentation        bool
	PresentationDelayMs int64
	// Seed, when non-zero, pins every hand in the match to a deterministic
	// sequence derived from it instead of process randomness: hand n is
	// shuffled with Seed+n. Zero, the default, draws a fresh random seed for
	// each hand.
	Seed int64
}

func (c Config) validate() error {
	if c.Seats < 2 || c.Seats > 10 {
		return errSeatsOutOfRange
	}
	if c.BigBlind < 2*c.SmallBlind {
		return errBBTooSmall
	}
	if c.MoveTimeMs <= 0 {
		return errMoveTimeInvalid
	}
	return nil
}
