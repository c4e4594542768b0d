package card

import "math/rand"

// All52 is the canonical 52-card universe in suit-major, rank-major order:
// spades A..K, hearts A..K, clubs A..K, diamonds A..K.
var All52 = []Card{
	CardSpadeA, CardSpade2, CardSpade3, CardSpade4, CardSpade5, CardSpade6,
	CardSpade7, CardSpade8, CardSpade9, CardSpadeT, CardSpadeJ, CardSpadeQ, CardSpadeK,
	CardHeartA, CardHeart2, CardHeart3, CardHeart4, CardHeart5, CardHeart6,
	CardHeart7, CardHeart8, CardHeart9, CardHeartT, CardHeartJ, CardHeartQ, CardHeartK,
	CardClubA, CardClub2, CardClub3, CardClub4, CardClub5, CardClub6,
	CardClub7, CardClub8, CardClub9, CardClubT, CardClubJ, CardClubQ, CardClubK,
	CardDiamondA, CardDiamond2, CardDiamond3, CardDiamond4, CardDiamond5, CardDiamond6,
	CardDiamond7, CardDiamond8, CardDiamond9, CardDiamondT, CardDiamondJ, CardDiamondQ, CardDiamondK,
}

// Deck is a 52-card stock produced by a seeded shuffle. Equal seeds always
// produce byte-identical permutations; there is no burn step anywhere in
// this package — dealing pulls directly from the top of the stock.
type Deck struct {
	seed  int64
	stock CardList
}

// NewDeck shuffles the canonical 52-card universe with seed using the same
// Fisher-Yates pass math/rand.Shuffle performs, seeded deterministically.
// seed == 0 falls back to a process-random seed (used only outside replay
// contexts; callers that need determinism must pass a non-zero seed).
func NewDeck(seed int64) *Deck {
	if seed == 0 {
		seed = rand.Int63()
	}
	cards := make([]Card, len(All52))
	copy(cards, All52)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })

	d := &Deck{seed: seed}
	d.stock.Init(cards)
	return d
}

// NewDeckOverride builds a deck with a caller-supplied full ordering,
// consumed from index 0 upward by Deal, for callers that need to pin an
// exact sequence of cards.
func NewDeckOverride(order []Card) *Deck {
	d := &Deck{}
	d.stock.Init(order)
	return d
}

// Seed returns the seed this deck was shuffled with, for publishing in
// start_hand events.
func (d *Deck) Seed() int64 { return d.seed }

// Remaining returns how many cards are left in the stock.
func (d *Deck) Remaining() int { return d.stock.Count() }

// Deal pops n cards from the top of the stock. Returns false if the stock
// does not hold enough cards.
func (d *Deck) Deal(n int) ([]Card, bool) {
	return d.stock.PopCards(n)
}

// Label renders the canonical wire-protocol label for a card: rank
// character followed by suit character, e.g. "Ah", "Tc", "2d".
func (c Card) Label() string {
	if c == CardInvalid || c == CardRear {
		return ""
	}
	var rankCh byte
	switch c.Rank() {
	case 1:
		rankCh = 'A'
	case 10:
		rankCh = 'T'
	case 11:
		rankCh = 'J'
	case 12:
		rankCh = 'Q'
	case 13:
		rankCh = 'K'
	default:
		rankCh = '0' + c.Rank()
	}
	return string(rankCh) + c.Suit().Letter()
}

// Letter returns the lowercase wire-protocol suit character.
func (s Suit) Letter() string {
	switch s {
	case Spade:
		return "s"
	case Heart:
		return "h"
	case Club:
		return "c"
	case Diamond:
		return "d"
	default:
		return "?"
	}
}
