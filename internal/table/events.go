package table

import (
	"time"

	"holdem-host/internal/broadcast"
	"holdem-host/internal/wire"
)

// kind names one event the SessionLoop's single-threaded actor processes.
type kind int

const (
	evBotHello kind = iota
	evBotAction
	evBotDisconnect
	evSpectatorHello
	evSpectatorLeave
	evControl
	evClockExpire
	evClose
)

// inEvent is the single struct submitted into Table.events for transport
// reads and operator commands. Clock expiry does not use it: run() selects
// on the clock's channel alongside Table.events, so engine state still only
// ever mutates from within the run() goroutine.
type inEvent struct {
	Kind     kind
	ConnID   string
	Sink     broadcast.Sink
	Team     string
	JoinCode string
	Action   *wire.ClientAction
	Control  *wire.Control
	Role     string
	Presentation bool
	PresentationDelay time.Duration
	Response chan error
}
