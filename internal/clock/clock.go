// Package clock implements DecisionClock: a per-turn countdown that can be
// paused on disconnect and resumed with its remaining time intact, or run
// as a strict, unpausable wall clock, per §4.6.
package clock

import "time"

// Clock drives exactly one seat's countdown at a time. It is owned and
// driven from the SessionLoop's single-threaded event loop: Start/Cancel/
// Pause/Resume are not safe for concurrent use, matching the rest of the
// engine's cooperative concurrency model.
type Clock struct {
	strict bool // true: auto/wall-clock mode, no pause on disconnect
	timer  *time.Timer
	seat   int
	active bool
	paused bool

	total     time.Duration // configured move_time_ms for the current turn
	remaining time.Duration // time left when paused, or when not yet started
	deadline  time.Time     // only meaningful while running and not paused
}

// New creates a Clock. strict selects wall-clock (auto) mode; false selects
// the pause-on-disconnect (operator) mode, the tournament default.
func New(strict bool) *Clock {
	return &Clock{strict: strict}
}

// Start begins a countdown of d for seat and returns the channel that fires
// on expiry. Any previous countdown is cancelled first.
func (c *Clock) Start(seat int, d time.Duration) <-chan time.Time {
	c.Cancel()
	c.seat = seat
	c.active = true
	c.paused = false
	c.total = d
	c.remaining = d
	c.deadline = time.Now().Add(d)
	c.timer = time.NewTimer(d)
	return c.timer.C
}

// Pause suspends the running countdown, recording the time left. A no-op in
// strict wall-clock mode: the turn keeps expiring on schedule regardless of
// connectivity, per the auto-timeout configuration in §4.6.
func (c *Clock) Pause() {
	if c.strict || !c.active || c.paused {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.remaining = time.Until(c.deadline)
	if c.remaining < 0 {
		c.remaining = 0
	}
	c.paused = true
}

// Resume restarts a paused countdown with its remaining time and returns the
// new expiry channel. A no-op (returning nil) if the clock was not paused.
func (c *Clock) Resume() <-chan time.Time {
	if !c.active || !c.paused {
		return nil
	}
	c.paused = false
	c.deadline = time.Now().Add(c.remaining)
	c.timer = time.NewTimer(c.remaining)
	return c.timer.C
}

// Cancel stops the countdown entirely: action receipt, operator skip or
// forfeit, or hand termination all cancel rather than error.
func (c *Clock) Cancel() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.active = false
	c.paused = false
}

// Seat returns which seat the current countdown belongs to.
func (c *Clock) Seat() int { return c.seat }

// Active reports whether a countdown is currently running or paused.
func (c *Clock) Active() bool { return c.active }

// Paused reports whether the countdown is currently suspended.
func (c *Clock) Paused() bool { return c.paused }

// RemainingMillis reports the time left on the countdown, for the
// snapshot/reconnect payload (§4.5, §8 scenario 5). While running it is
// computed from the deadline; while paused it is the value frozen at Pause.
func (c *Clock) RemainingMillis() int64 {
	if !c.active {
		return 0
	}
	if c.paused {
		return c.remaining.Milliseconds()
	}
	left := time.Until(c.deadline)
	if left < 0 {
		left = 0
	}
	return left.Milliseconds()
}
