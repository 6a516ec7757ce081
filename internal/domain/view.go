package domain

// placeholderCard is what other players' hidden cards render as. Only the
// count carries information.
var placeholderCard = Card{Suit: SuitSpades, Rank: RankQueen}

// ViewFor returns a deep-enough copy of the state filtered for one viewer.
// Every other player's hand is replaced with placeholder cards of the same
// length and the undealt deck is emptied, so nothing a client receives
// reveals hidden cards. The shared fields (tricks, scores, event log) are the
// same for every viewer.
func (s *GameState) ViewFor(viewerID string) *GameState {
	view := *s
	view.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		if p.ID == viewerID {
			view.Players[i] = p
			continue
		}
		masked := *p
		masked.Hand = make([]Card, len(p.Hand))
		for j := range masked.Hand {
			masked.Hand[j] = placeholderCard
		}
		view.Players[i] = &masked
	}
	view.Deck = []Card{}
	return &view
}
