package wire

import (
	"holdem-host/card"
	"holdem-host/internal/engine"
	"holdem-host/internal/handeval"
)

// ActionFromWire maps a validated action string to the engine's Action enum.
func ActionFromWire(s string) engine.Action {
	switch s {
	case "FOLD":
		return engine.ActionFold
	case "CHECK":
		return engine.ActionCheck
	case "CALL":
		return engine.ActionCall
	case "RAISE_TO":
		return engine.ActionRaiseTo
	default:
		return engine.ActionFold
	}
}

// LegalToWire renders a LegalActionSet's action names for act.legal.
func LegalToWire(set *engine.LegalActionSet) []string {
	out := make([]string, len(set.Actions))
	for i, a := range set.Actions {
		out[i] = a.String()
	}
	return out
}

// CardsToWire renders a slice of cards as their wire labels.
func CardsToWire(cards []card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Label()
	}
	return out
}

// categoryNames maps a handeval.Category to its wire string.
var categoryNames = map[handeval.Category]string{
	handeval.HighCard:      "HIGH_CARD",
	handeval.OnePair:       "ONE_PAIR",
	handeval.TwoPair:       "TWO_PAIR",
	handeval.ThreeOfKind:   "THREE_OF_A_KIND",
	handeval.Straight:      "STRAIGHT",
	handeval.Flush:         "FLUSH",
	handeval.FullHouse:     "FULL_HOUSE",
	handeval.FourOfKind:    "FOUR_OF_A_KIND",
	handeval.StraightFlush: "STRAIGHT_FLUSH",
	handeval.RoyalFlush:    "ROYAL_FLUSH",
}

// CategoryToWire renders a hand category byte (engine.ShowdownHand.Category)
// as its wire string.
func CategoryToWire(cat byte) string {
	return categoryNames[handeval.Category(cat)]
}

// EventToWire translates one engine.Event into the public GameEvent shape.
// ev-specific fields are populated according to Kind; fields that do not
// apply to a given event are left at their zero value and omitted by
// `omitempty` on the wire.
func EventToWire(ev engine.Event) GameEvent {
	out := GameEvent{
		Envelope: Envelope{Type: "event", V: ProtocolVersion},
		Ev:       string(ev.Kind),
		Amount:   ev.Amount,
		Pot:      ev.Pot,
		PotIdx:   ev.PotIdx,
	}
	if ev.Seat != engine.InvalidSeat {
		out.Seat = ev.Seat
	}
	if len(ev.Cards) > 0 {
		out.Cards = CardsToWire(ev.Cards)
	}
	if len(ev.Winners) > 0 {
		out.Winners = ev.Winners
	}
	if ev.Hand != nil {
		out.Seat = ev.Hand.Seat
		out.Hole = CardsToWire(ev.Hand.Hole[:])
		out.BestFive = CardsToWire(ev.Hand.BestFive)
		out.Category = CategoryToWire(ev.Hand.Category)
	}
	return out
}
