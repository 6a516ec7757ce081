package bot

import (
	"thunee/internal/domain"
)

// SuitAnalysis scores one suit of a hand for trump potential.
type SuitAnalysis struct {
	Suit     domain.Suit
	Count    int
	HasJack  bool
	HasNine  bool
	HasAce   bool
	Strength int
}

// HandStrength summarizes a hand for bidding decisions.
type HandStrength struct {
	Jacks          int
	Nines          int
	Aces           int
	TotalHighCards int
	BestSuit       SuitAnalysis
}

// AnalyzeSuit weighs the held cards of one suit. Each card counts one, with
// bonuses of 5 for the Jack, 4 for the Nine, 3 for the Ace, 2 for the Ten
// and 1 each for King and Queen.
func AnalyzeSuit(hand []domain.Card, suit domain.Suit) SuitAnalysis {
	a := SuitAnalysis{Suit: suit}
	for _, c := range hand {
		if c.Suit != suit {
			continue
		}
		a.Count++
		a.Strength++
		switch c.Rank {
		case domain.RankJack:
			a.HasJack = true
			a.Strength += 5
		case domain.RankNine:
			a.HasNine = true
			a.Strength += 4
		case domain.RankAce:
			a.HasAce = true
			a.Strength += 3
		case domain.RankTen:
			a.Strength += 2
		case domain.RankKing, domain.RankQueen:
			a.Strength++
		}
	}
	return a
}

// EvaluateHand counts the high cards and finds the strongest trump
// candidate. Ties between suits keep the earlier suit in canonical order.
func EvaluateHand(hand []domain.Card) HandStrength {
	var s HandStrength
	for _, c := range hand {
		switch c.Rank {
		case domain.RankJack:
			s.Jacks++
		case domain.RankNine:
			s.Nines++
		case domain.RankAce:
			s.Aces++
		}
	}
	s.TotalHighCards = s.Jacks + s.Nines + s.Aces
	for _, suit := range domain.Suits {
		a := AnalyzeSuit(hand, suit)
		if a.Strength > s.BestSuit.Strength {
			s.BestSuit = a
		}
	}
	return s
}

// DecideBid returns the next call the hand supports, or 0 to pass. Calls go
// one step of ten over the standing bid and never past what the hand is
// worth: two Jacks cap at 40, one Jack backed by a strong suit at 30, three
// or more high cards at 30, two at 20.
func DecideBid(hand []domain.Card, currentBid int) int {
	strength := EvaluateHand(hand)
	if strength.TotalHighCards < 2 {
		return 0
	}

	maxBid := 20
	switch {
	case strength.Jacks >= 2:
		maxBid = 40
	case strength.Jacks == 1 && strength.BestSuit.Strength >= 10:
		maxBid = 30
	case strength.TotalHighCards >= 3:
		maxBid = 30
	}

	next := currentBid + 10
	if currentBid == 0 {
		next = 10
	}
	if next > maxBid {
		return 0
	}
	return next
}

// ChooseTrumpSuit picks the strongest suit of the hand.
func ChooseTrumpSuit(hand []domain.Card) domain.Suit {
	return EvaluateHand(hand).BestSuit.Suit
}

// shouldCallLastCard reports whether to hide the trump as a last-card call.
// Only worth it from weakness, when the suit will rarely be led back.
func shouldCallLastCard(hand []domain.Card) bool {
	strength := EvaluateHand(hand)
	return strength.Jacks == 0 && strength.TotalHighCards <= 1
}

// shouldCallThunee reports whether the hand justifies the all-six-tricks
// declaration: two Jacks overall and the best suit holding its Jack with at
// least three cards behind it.
func shouldCallThunee(hand []domain.Card) bool {
	if !domain.CanCallThunee(hand) {
		return false
	}
	strength := EvaluateHand(hand)
	return strength.Jacks >= 2 && strength.BestSuit.HasJack && strength.BestSuit.Count >= 3
}
