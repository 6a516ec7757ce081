package app

import "thunee/internal/domain"

// startDeal resets per-deal state, shuffles, deals the first four cards to
// every seat, fixes the default trumper, and opens the bidding countdown.
func (s *Service) startDeal(state *domain.GameState) {
	state.Deck = domain.ShuffleDeck(domain.NewDeck(), s.rng)
	state.Bid = domain.NewBidState()
	state.Trump = ""
	state.TrumpCallerID = ""
	state.IsLastCardTrump = false
	state.TrumpRevealed = false
	state.ThuneeCallerID = ""
	state.JodhiCalls = []domain.JodhiCall{}
	state.JodhiWindow = false
	state.LastTrickWinningTeam = -1
	state.CurrentTrick = domain.NewTrick()
	state.TricksPlayed = 0
	state.LastTrickResult = nil
	state.LastChallenge = nil
	state.LastBallAward = nil
	// Event log persists across deals; challenges and scoring read it by round.

	// First four cards per seat, contiguous runs in deck order.
	for i, p := range state.Players {
		start := i * 4
		p.Hand = append([]domain.Card{}, state.Deck[start:start+4]...)
	}

	state.Bid.DefaultTrumperID = s.defaultTrumperID(state)

	state.AppendEvent(domain.GameEvent{
		Type:       domain.EventRoundStart,
		RoundStart: &domain.RoundStartEvent{DealerID: state.DealerID},
	}, s.nowMillis())

	state.Phase = domain.PhaseBidding
	state.CurrentPlayerID = "" // anyone may call
	state.Bid.TimerEndsAt = s.nowMillis() + s.bidTimer.Milliseconds()
}

// defaultTrumperID picks the seat that inherits trump rights if nobody
// calls: a seat on the team ahead on balls, else a seat on the team that won
// the most recent round, else the dealer's immediate predecessor.
func (s *Service) defaultTrumperID(state *domain.GameState) string {
	trumpingTeam := -1
	switch {
	case state.Teams[0].Balls > state.Teams[1].Balls:
		trumpingTeam = 0
	case state.Teams[1].Balls > state.Teams[0].Balls:
		trumpingTeam = 1
	default:
		for i := len(state.EventLog) - 1; i >= 0; i-- {
			if ev := state.EventLog[i]; ev.Type == domain.EventRoundEnd && ev.RoundEnd != nil {
				trumpingTeam = ev.RoundEnd.WinningTeam
				break
			}
		}
	}

	if trumpingTeam != -1 {
		for _, p := range state.Players {
			if p.Team == trumpingTeam {
				return p.ID
			}
		}
	}

	dealerIdx := state.PlayerIndex(state.DealerID)
	return state.Players[state.PrevSeat(dealerIdx)].ID
}

// dealTopUp completes each hand to six cards after bidding resolves.
func dealTopUp(state *domain.GameState) {
	base := 16
	if state.PlayerCount == 2 {
		base = 8
	}
	for i, p := range state.Players {
		start := base + i*2
		p.Hand = append(p.Hand, state.Deck[start:start+2]...)
	}
}

// dealSecondHalf hands out the remaining twelve cards for the second half of
// a 2-seat deal.
func dealSecondHalf(state *domain.GameState) {
	for i, p := range state.Players {
		start := 12 + i*6
		p.Hand = append([]domain.Card{}, state.Deck[start:start+6]...)
	}
}
