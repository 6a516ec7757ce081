package domain

import "math/rand"

// Suit is one of the four card suits.
type Suit string

const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
)

// Suits lists all suits in canonical order.
var Suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Rank is one of the six Thunee ranks.
type Rank string

const (
	RankJack  Rank = "J"
	RankNine  Rank = "9"
	RankAce   Rank = "A"
	RankTen   Rank = "10"
	RankKing  Rank = "K"
	RankQueen Rank = "Q"
)

// RankOrder lists ranks by descending trick strength: J > 9 > A > 10 > K > Q.
// The order is independent of suit.
var RankOrder = []Rank{RankJack, RankNine, RankAce, RankTen, RankKing, RankQueen}

// CardValues maps each rank to its fixed point value.
var CardValues = map[Rank]int{
	RankJack:  30,
	RankNine:  20,
	RankAce:   11,
	RankTen:   10,
	RankKing:  3,
	RankQueen: 2,
}

// Card is a single playing card in the 24-card Thunee deck.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// String renders a card for logs and errors, e.g. "J hearts".
func (c Card) String() string {
	return string(c.Rank) + " " + string(c.Suit)
}

// NewDeck returns the ordered 24-card deck: every suit paired with every rank.
func NewDeck() []Card {
	deck := make([]Card, 0, 24)
	for _, s := range Suits {
		for _, r := range RankOrder {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck using the provided source.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// RemoveCard removes the first occurrence of card from hand and reports whether
// it was present.
func RemoveCard(hand []Card, card Card) ([]Card, bool) {
	for i := range hand {
		if hand[i] == card {
			return append(hand[:i:i], hand[i+1:]...), true
		}
	}
	return hand, false
}

// HasSuit reports whether the hand holds at least one card of the given suit.
func HasSuit(hand []Card, suit Suit) bool {
	for _, c := range hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}
