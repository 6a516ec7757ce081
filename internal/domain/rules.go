package domain

import "fmt"

// rankStrength returns the strength index of a rank; lower is stronger.
func rankStrength(r Rank) int {
	for i, o := range RankOrder {
		if o == r {
			return i
		}
	}
	return len(RankOrder)
}

// CompareCards compares two cards by rank strength alone. It returns a
// positive number when a outranks b, negative when b outranks a, and zero for
// equal ranks. Suits are not considered; the caller decides which suits are
// eligible.
func CompareCards(a, b Card) int {
	return rankStrength(b.Rank) - rankStrength(a.Rank)
}

// IsLegalPlay reports whether card may be played from hand into trick, with
// a human-readable reason when it may not. A lead is always legal; a
// follower must match the lead suit when able. There is no obligation to
// trump or to beat the winning card.
func IsLegalPlay(card Card, hand []Card, trick *Trick) (bool, string) {
	if len(trick.Plays) == 0 {
		return true, ""
	}
	if HasSuit(hand, trick.LeadSuit) && card.Suit != trick.LeadSuit {
		return false, fmt.Sprintf("must follow %s while holding it", trick.LeadSuit)
	}
	return true, ""
}

// TrickWinner returns the player id that wins the trick. With a trump suit in
// play the strongest trump wins; otherwise the strongest card of the lead
// suit wins. Panics on an empty trick, which indicates a caller bug.
func TrickWinner(trick *Trick, trump Suit) string {
	if len(trick.Plays) == 0 {
		panic("domain: winner of empty trick")
	}
	winning := trick.Plays[0]
	for _, play := range trick.Plays[1:] {
		winningTrump := trump != "" && winning.Card.Suit == trump
		playTrump := trump != "" && play.Card.Suit == trump
		switch {
		case playTrump && !winningTrump:
			winning = play
		case playTrump && winningTrump:
			if CompareCards(play.Card, winning.Card) > 0 {
				winning = play
			}
		case !playTrump && !winningTrump:
			if play.Card.Suit == trick.LeadSuit && winning.Card.Suit == trick.LeadSuit &&
				CompareCards(play.Card, winning.Card) > 0 {
				winning = play
			}
		}
	}
	return winning.PlayerID
}

// TrickPoints sums the point values of the cards in the trick.
func TrickPoints(trick *Trick) int {
	total := 0
	for _, play := range trick.Plays {
		total += CardValues[play.Card.Rank]
	}
	return total
}

// JodhiPoints returns the point value of a Jodhi claim: 20 plain, 40 in
// trump, +10 when the Jack is claimed alongside.
func JodhiPoints(inTrump, withJack bool) int {
	if withJack {
		if inTrump {
			return 50
		}
		return 30
	}
	if inTrump {
		return 40
	}
	return 20
}

// FindJodhi returns the first suit in which hand holds both King and Queen,
// with the claim value it would be worth against the given trump. ok is false
// when the hand holds no Jodhi.
func FindJodhi(hand []Card, trump Suit) (call JodhiCall, ok bool) {
	type holding struct{ hasQ, hasK, hasJ bool }
	holdings := map[Suit]*holding{}
	for _, c := range hand {
		h := holdings[c.Suit]
		if h == nil {
			h = &holding{}
			holdings[c.Suit] = h
		}
		switch c.Rank {
		case RankQueen:
			h.hasQ = true
		case RankKing:
			h.hasK = true
		case RankJack:
			h.hasJ = true
		}
	}
	for _, suit := range Suits {
		h := holdings[suit]
		if h != nil && h.hasQ && h.hasK {
			return JodhiCall{
				Suit:    suit,
				Points:  JodhiPoints(suit == trump, h.hasJ),
				HasJack: h.hasJ,
			}, true
		}
	}
	return JodhiCall{}, false
}

// CanCallThunee reports whether the hand is complete enough to declare
// Thunee (all six cards still held).
func CanCallThunee(hand []Card) bool {
	return len(hand) == 6
}

// TargetScore returns the card-point total the counting team must reach to
// beat the trump team, given the winning bid and the trump team's declared
// Jodhi points.
func TargetScore(bid, trumpTeamJodhi int) int {
	return 105 - bid + trumpTeamJodhi
}

// IsValidBid reports whether amount is a legal raise over current. Bids are
// multiples of ten up to 100; 104 is the one allowed exception.
func IsValidBid(amount, current int) bool {
	if amount <= current {
		return false
	}
	if amount > 104 {
		return false
	}
	if amount%10 != 0 && amount != 104 {
		return false
	}
	return true
}
