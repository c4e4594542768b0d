package handeval

import (
	"testing"

	"holdem-host/card"
)

func TestEvalBestOf7_RoyalFlush(t *testing.T) {
	seven := card.CardList{
		card.CardSpadeA, card.CardSpadeK, card.CardSpadeQ, card.CardSpadeJ, card.CardSpadeT,
		card.CardHeart2, card.CardClub3,
	}
	res := EvalBestOf7(seven)
	if res == nil {
		t.Fatal("expected a result")
	}
	if res.Category != RoyalFlush {
		t.Fatalf("expected RoyalFlush, got %v", res.Category)
	}
}

func TestEvalBestOf7_WheelStraight(t *testing.T) {
	seven := card.CardList{
		card.CardSpadeA, card.CardHeart2, card.CardClub3, card.CardDiamond4, card.CardSpade5,
		card.CardHeartK, card.CardClubQ,
	}
	res := EvalBestOf7(seven)
	if res.Category != Straight {
		t.Fatalf("expected Straight (wheel), got %v", res.Category)
	}
}

func TestEvalBestOf7_FullHouseBeatsFlush(t *testing.T) {
	fullHouse := card.CardList{
		card.CardSpadeA, card.CardHeartA, card.CardClubA, card.CardDiamondK, card.CardSpadeK,
		card.CardHeart2, card.CardClub3,
	}
	flush := card.CardList{
		card.CardSpadeA, card.CardSpadeK, card.CardSpadeQ, card.CardSpade9, card.CardSpade4,
		card.CardHeart2, card.CardClub3,
	}
	fh := EvalBestOf7(fullHouse)
	fl := EvalBestOf7(flush)
	if fh.Score <= fl.Score {
		t.Fatalf("full house should outscore flush: fh=%d fl=%d", fh.Score, fl.Score)
	}
}

func TestEvalBestOf7_Permutation_ScoresEqual(t *testing.T) {
	a := card.CardList{
		card.CardSpadeA, card.CardSpadeK, card.CardSpadeQ, card.CardSpadeJ, card.CardSpadeT,
		card.CardHeart2, card.CardClub3,
	}
	b := card.CardList{
		card.CardClub3, card.CardSpadeT, card.CardHeart2, card.CardSpadeJ,
		card.CardSpadeA, card.CardSpadeQ, card.CardSpadeK,
	}
	ra, rb := EvalBestOf7(a), EvalBestOf7(b)
	if ra.Score != rb.Score {
		t.Fatalf("score should not depend on input order: %d != %d", ra.Score, rb.Score)
	}
}

func TestEvalBestOf7_KickerBreaksTie(t *testing.T) {
	highAceKing := card.CardList{
		card.CardSpadeA, card.CardHeartK, card.CardClub9, card.CardDiamond5, card.CardSpade2,
		card.CardHeart7, card.CardClub4,
	}
	highAceQueen := card.CardList{
		card.CardSpadeA, card.CardHeartQ, card.CardClub9, card.CardDiamond5, card.CardSpade2,
		card.CardHeart7, card.CardClub4,
	}
	rk := EvalBestOf7(highAceKing)
	rq := EvalBestOf7(highAceQueen)
	if rk.Score <= rq.Score {
		t.Fatalf("ace-king kicker should beat ace-queen kicker: k=%d q=%d", rk.Score, rq.Score)
	}
}
