package table

import (
	"holdem-host/internal/engine"
	"holdem-host/internal/seat"
	"holdem-host/internal/wire"
)

func (t *Table) tableView() wire.TableView {
	return wire.TableView{
		SmallBlind: t.cfg.SmallBlind,
		BigBlind:   t.cfg.BigBlind,
		Seats:      t.cfg.Seats,
		Button:     t.match.ButtonSeat,
	}
}

func (t *Table) playerViews() []wire.PlayerView {
	if t.hand == nil {
		return nil
	}
	out := make([]wire.PlayerView, 0, len(t.hand.Players))
	for seatIdx, p := range t.hand.Players {
		out = append(out, wire.PlayerView{
			Seat:      seatIdx,
			Stack:     p.Stack,
			HasFolded: p.HasFolded,
			Committed: p.CommittedThisStreet,
		})
	}
	return out
}

func (t *Table) lobbyFrame() wire.Lobby {
	players := make([]wire.LobbyPlayer, 0, len(t.seats.Occupied()))
	for _, s := range t.seats.Occupied() {
		players = append(players, wire.LobbyPlayer{
			Seat:      s.Index,
			Team:      s.DisplayTeam,
			Connected: s.Connected,
			Stack:     s.Stack,
		})
	}
	return wire.Lobby{
		Envelope: wire.Envelope{Type: "lobby", V: wire.ProtocolVersion},
		Players:  players,
	}
}

func (t *Table) welcomeFrame(s *seat.Seat) wire.Welcome {
	return wire.Welcome{
		Envelope: wire.Envelope{Type: "welcome", V: wire.ProtocolVersion},
		TableID:  t.cfg.TableID,
		Seat:     s.Index,
		Config: wire.TableConfig{
			Variant:    "NLHE",
			Seats:      t.cfg.Seats,
			StartStack: t.cfg.StartingStack,
			SmallBlind: t.cfg.SmallBlind,
			BigBlind:   t.cfg.BigBlind,
			MoveTimeMs: t.cfg.MoveTimeMs,
		},
	}
}

// actPromptFor builds the private act envelope for seat, the current actor.
func (t *Table) actPromptFor(seatIdx int, legal *engine.LegalActionSet) wire.ActPrompt {
	p := t.hand.Players[seatIdx]
	toCall := t.hand.CurrentBet - p.CommittedThisStreet
	if toCall < 0 {
		toCall = 0
	}
	return wire.ActPrompt{
		Envelope: wire.Envelope{Type: "act", V: wire.ProtocolVersion},
		HandID:   t.hand.HandID,
		Seat:     seatIdx,
		Phase:    t.hand.Phase.String(),
		You: wire.YouView{
			Hole:   [2]string{p.Hole[0].Label(), p.Hole[1].Label()},
			Stack:  p.Stack,
			ToCall: toCall,
			TimeMs: t.clock.RemainingMillis(),
		},
		Table:      t.tableView(),
		Players:    t.playerViews(),
		Community:  wire.CardsToWire(t.hand.Community),
		Legal:      wire.LegalToWire(legal),
		CallAmount: legal.CallAmount,
		MinRaiseTo: legal.MinRaiseTo,
		MaxRaiseTo: legal.MaxRaiseTo,
	}
}

// snapshotFor builds the reconnect snapshot for s, per §4.5/§8 scenario 5.
func (t *Table) snapshotFor(s *seat.Seat) wire.Snapshot {
	snap := wire.Snapshot{
		Envelope: wire.Envelope{Type: "snapshot", V: wire.ProtocolVersion},
		TableID:  t.cfg.TableID,
		Seat:     s.Index,
	}
	if t.hand == nil {
		return snap
	}
	snap.HandID = t.hand.HandID
	snap.Phase = t.hand.Phase.String()
	tv := t.tableView()
	snap.Table = &tv
	snap.Players = t.playerViews()
	snap.Community = wire.CardsToWire(t.hand.Community)
	if p, ok := t.hand.Players[s.Index]; ok && p.HasCards {
		toCall := t.hand.CurrentBet - p.CommittedThisStreet
		if toCall < 0 {
			toCall = 0
		}
		snap.You = &wire.YouView{
			Hole:   [2]string{p.Hole[0].Label(), p.Hole[1].Label()},
			Stack:  p.Stack,
			ToCall: toCall,
			TimeMs: t.clock.RemainingMillis(),
		}
	}
	if len(t.hand.ToActQueue) > 0 && t.hand.ToActQueue[0] == s.Index {
		if legal, err := engine.LegalActions(t.hand, s.Index); err == nil {
			snap.Legal = wire.LegalToWire(legal)
			snap.TimeMsRemaining = t.clock.RemainingMillis()
		}
	}
	return snap
}

func (t *Table) stacksFrame() []wire.StackEntry {
	out := make([]wire.StackEntry, 0, len(t.hand.Players))
	for seatIdx, p := range t.hand.Players {
		out = append(out, wire.StackEntry{Seat: seatIdx, Stack: p.Stack})
	}
	return out
}

func (t *Table) statusFrame() wire.SpectatorStatus {
	occupied := t.seats.Occupied()
	ready := 0
	for _, s := range occupied {
		if s.Connected {
			ready++
		}
	}
	return wire.SpectatorStatus{
		Envelope:            wire.Envelope{Type: "spectator/status", V: wire.ProtocolVersion},
		InHand:               t.hand != nil,
		AwaitingManualStart:  t.match.AwaitingManualStart,
		ManualStartArmed:     t.match.HandControlMode == "operator",
		PlayersReady:         ready,
		CanStart:             t.hand == nil && len(t.match.EligibleSeats()) >= 2,
	}
}
