package bot

import (
	"testing"

	"thunee/internal/domain"
)

func c(suit domain.Suit, rank domain.Rank) domain.Card {
	return domain.Card{Suit: suit, Rank: rank}
}

func TestAnalyzeSuit(t *testing.T) {
	hand := []domain.Card{
		c(domain.SuitHearts, domain.RankJack),
		c(domain.SuitHearts, domain.RankNine),
		c(domain.SuitHearts, domain.RankQueen),
		c(domain.SuitClubs, domain.RankAce),
	}

	a := AnalyzeSuit(hand, domain.SuitHearts)
	if a.Count != 3 {
		t.Errorf("count = %d, want 3", a.Count)
	}
	if !a.HasJack || !a.HasNine || a.HasAce {
		t.Errorf("flags = J:%v 9:%v A:%v", a.HasJack, a.HasNine, a.HasAce)
	}
	// 3 cards + 5 for the Jack + 4 for the Nine + 1 for the Queen.
	if a.Strength != 13 {
		t.Errorf("strength = %d, want 13", a.Strength)
	}
}

func TestEvaluateHandPicksBestSuit(t *testing.T) {
	hand := []domain.Card{
		c(domain.SuitHearts, domain.RankJack),
		c(domain.SuitHearts, domain.RankNine),
		c(domain.SuitSpades, domain.RankAce),
		c(domain.SuitSpades, domain.RankTen),
	}

	s := EvaluateHand(hand)
	if s.Jacks != 1 || s.Nines != 1 || s.Aces != 1 {
		t.Errorf("high cards = J:%d 9:%d A:%d", s.Jacks, s.Nines, s.Aces)
	}
	if s.TotalHighCards != 3 {
		t.Errorf("totalHighCards = %d, want 3", s.TotalHighCards)
	}
	if s.BestSuit.Suit != domain.SuitHearts {
		t.Errorf("best suit = %v, want hearts", s.BestSuit.Suit)
	}
}

func TestDecideBid(t *testing.T) {
	twoJacks := []domain.Card{
		c(domain.SuitHearts, domain.RankJack),
		c(domain.SuitSpades, domain.RankJack),
		c(domain.SuitHearts, domain.RankQueen),
		c(domain.SuitClubs, domain.RankTen),
	}
	oneJackStrongSuit := []domain.Card{
		c(domain.SuitHearts, domain.RankJack),
		c(domain.SuitHearts, domain.RankNine),
		c(domain.SuitHearts, domain.RankAce),
		c(domain.SuitClubs, domain.RankQueen),
	}
	weak := []domain.Card{
		c(domain.SuitHearts, domain.RankQueen),
		c(domain.SuitClubs, domain.RankKing),
		c(domain.SuitSpades, domain.RankTen),
		c(domain.SuitDiamonds, domain.RankQueen),
	}

	tests := []struct {
		name       string
		hand       []domain.Card
		currentBid int
		want       int
	}{
		{"two jacks opens at 10", twoJacks, 0, 10},
		{"two jacks raises to 40", twoJacks, 30, 40},
		{"two jacks stops at 40", twoJacks, 40, 0},
		{"jack with strong suit stops at 30", oneJackStrongSuit, 30, 0},
		{"jack with strong suit raises to 30", oneJackStrongSuit, 20, 30},
		{"weak hand passes", weak, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecideBid(tt.hand, tt.currentBid); got != tt.want {
				t.Errorf("DecideBid = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDecideBidOnlyOffersLegalRaises(t *testing.T) {
	hand := []domain.Card{
		c(domain.SuitHearts, domain.RankJack),
		c(domain.SuitSpades, domain.RankJack),
		c(domain.SuitHearts, domain.RankNine),
		c(domain.SuitHearts, domain.RankAce),
	}
	for current := 0; current <= 40; current += 10 {
		amount := DecideBid(hand, current)
		if amount == 0 {
			continue
		}
		if !domain.IsValidBid(amount, current) {
			t.Errorf("DecideBid(%d) = %d is not a legal raise", current, amount)
		}
	}
}

func TestChooseTrumpSuit(t *testing.T) {
	hand := []domain.Card{
		c(domain.SuitClubs, domain.RankJack),
		c(domain.SuitClubs, domain.RankNine),
		c(domain.SuitHearts, domain.RankAce),
		c(domain.SuitHearts, domain.RankKing),
	}
	if got := ChooseTrumpSuit(hand); got != domain.SuitClubs {
		t.Errorf("ChooseTrumpSuit = %v, want clubs", got)
	}
}

func TestShouldCallThunee(t *testing.T) {
	strong := []domain.Card{
		c(domain.SuitHearts, domain.RankJack),
		c(domain.SuitHearts, domain.RankNine),
		c(domain.SuitHearts, domain.RankAce),
		c(domain.SuitSpades, domain.RankJack),
		c(domain.SuitSpades, domain.RankNine),
		c(domain.SuitClubs, domain.RankQueen),
	}
	if !shouldCallThunee(strong) {
		t.Error("two jacks with a deep jack suit should declare")
	}

	// Same shape but only five cards held; the declaration window is gone.
	if shouldCallThunee(strong[:5]) {
		t.Error("a partial hand must not declare")
	}

	scattered := []domain.Card{
		c(domain.SuitHearts, domain.RankJack),
		c(domain.SuitSpades, domain.RankJack),
		c(domain.SuitClubs, domain.RankQueen),
		c(domain.SuitDiamonds, domain.RankQueen),
		c(domain.SuitClubs, domain.RankKing),
		c(domain.SuitDiamonds, domain.RankKing),
	}
	if shouldCallThunee(scattered) {
		t.Error("two bare jacks without a deep suit must not declare")
	}
}
