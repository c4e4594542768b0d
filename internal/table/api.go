package table

import (
	"time"

	"holdem-host/internal/broadcast"
	"holdem-host/internal/wire"
)

// BotHello submits a bot-channel hello frame from connID.
func (t *Table) BotHello(connID string, sink broadcast.Sink, hello *wire.HelloBot) error {
	return t.SubmitEvent(inEvent{
		Kind: evBotHello, ConnID: connID, Sink: sink,
		Team: hello.Team, JoinCode: hello.JoinCode,
	})
}

// BotAction submits a validated action frame from connID.
func (t *Table) BotAction(connID string, action *wire.ClientAction) error {
	return t.SubmitEvent(inEvent{Kind: evBotAction, ConnID: connID, Action: action})
}

// BotDisconnect submits a bot transport-close notification.
func (t *Table) BotDisconnect(connID string) error {
	return t.SubmitEvent(inEvent{Kind: evBotDisconnect, ConnID: connID})
}

// SpectatorHello submits a spectator/operator-channel hello frame. A
// spectator requesting presentation mode is paced at the table's
// configured delay (§6's presentation_delay_ms), not a hardcoded default.
// An explicit per-connection mode wins; an absent one falls back to the
// table's process-wide presentation default.
func (t *Table) SpectatorHello(connID string, sink broadcast.Sink, hello *wire.HelloSpectator) error {
	presentation := t.cfg.Presentation
	switch hello.Mode {
	case "presentation":
		presentation = true
	case "live":
		presentation = false
	}
	delay := time.Duration(t.cfg.PresentationDelayMs) * time.Millisecond
	return t.SubmitEvent(inEvent{
		Kind: evSpectatorHello, ConnID: connID, Sink: sink,
		Role: hello.Role, Presentation: presentation,
		PresentationDelay: delay,
	})
}

// SpectatorLeave submits a spectator/operator transport-close notification.
func (t *Table) SpectatorLeave(connID string) error {
	return t.SubmitEvent(inEvent{Kind: evSpectatorLeave, ConnID: connID})
}

// Control submits an operator control frame.
func (t *Table) Control(connID string, ctrl *wire.Control) error {
	return t.SubmitEvent(inEvent{Kind: evControl, ConnID: connID, Control: ctrl})
}
