package bot

import (
	"thunee/internal/domain"
)

// validCards returns the cards the seat can play without risking a
// challenge: when leading, the whole hand; when following with the lead
// suit held, only that suit.
func validCards(hand []domain.Card, trick *domain.Trick) []domain.Card {
	if len(trick.Plays) == 0 {
		return hand
	}
	var suited []domain.Card
	for _, c := range hand {
		if c.Suit == trick.LeadSuit {
			suited = append(suited, c)
		}
	}
	if len(suited) > 0 {
		return suited
	}
	return hand
}

// currentWinner returns the play holding the trick so far.
func currentWinner(trick *domain.Trick, trump domain.Suit) domain.Play {
	winning := trick.Plays[0]
	for _, play := range trick.Plays[1:] {
		if beats(play.Card, winning.Card, trick.LeadSuit, trump) {
			winning = play
		}
	}
	return winning
}

// beats reports whether card would take the trick from winner.
func beats(card, winner domain.Card, leadSuit, trump domain.Suit) bool {
	winnerTrump := trump != "" && winner.Suit == trump
	cardTrump := trump != "" && card.Suit == trump
	switch {
	case cardTrump && !winnerTrump:
		return true
	case cardTrump && winnerTrump:
		return domain.CompareCards(card, winner) > 0
	case card.Suit == leadSuit && winner.Suit == leadSuit:
		return domain.CompareCards(card, winner) > 0
	}
	return false
}

// lowestCard returns the card worth the fewest points.
func lowestCard(cards []domain.Card) domain.Card {
	lowest := cards[0]
	for _, c := range cards[1:] {
		if domain.CardValues[c.Rank] < domain.CardValues[lowest.Rank] {
			lowest = c
		}
	}
	return lowest
}

// cheapestWinner returns the lowest-value card that takes the trick, and
// false when nothing in cards can.
func cheapestWinner(cards []domain.Card, winner domain.Card, leadSuit, trump domain.Suit) (domain.Card, bool) {
	var winners []domain.Card
	for _, c := range cards {
		if beats(c, winner, leadSuit, trump) {
			winners = append(winners, c)
		}
	}
	if len(winners) == 0 {
		return domain.Card{}, false
	}
	return lowestCard(winners), true
}

// DecidePlay picks the card for the seat whose turn it is. The seat always
// follows suit when able.
func DecidePlay(state *domain.GameState, player *domain.Player) domain.Card {
	hand := player.Hand
	trick := state.CurrentTrick
	playable := validCards(hand, trick)

	if len(playable) == 1 {
		return playable[0]
	}
	if len(trick.Plays) == 0 {
		return decideLead(hand, state.Trump)
	}

	winning := currentWinner(trick, state.Trump)
	if teammate := state.PlayerByID(winning.PlayerID); teammate != nil &&
		teammate.Team == player.Team && teammate.ID != player.ID {
		return lowestCard(playable)
	}

	card, ok := cheapestWinner(playable, winning.Card, trick.LeadSuit, state.Trump)
	if ok {
		// Spend on tricks that carry points or close out the deal;
		// otherwise only win when it comes cheap.
		if domain.TrickPoints(trick) >= 20 || state.TricksPlayed >= 4 {
			return card
		}
		if domain.CardValues[card.Rank] <= 10 {
			return card
		}
	}
	return lowestCard(playable)
}

// decideLead leads from the longest non-trump suit, with the Jack when held
// and low to probe otherwise. A hand of nothing but trump leads its lowest.
func decideLead(hand []domain.Card, trump domain.Suit) domain.Card {
	bySuit := map[domain.Suit][]domain.Card{}
	for _, c := range hand {
		if trump != "" && c.Suit == trump {
			continue
		}
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}

	var longest []domain.Card
	for _, suit := range domain.Suits {
		if len(bySuit[suit]) > len(longest) {
			longest = bySuit[suit]
		}
	}
	if len(longest) == 0 {
		return lowestCard(hand)
	}
	for _, c := range longest {
		if c.Rank == domain.RankJack {
			return c
		}
	}
	return lowestCard(longest)
}
