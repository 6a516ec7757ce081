package app

import "thunee/internal/domain"

// PlayResult reports what a play did to the trick in progress.
type PlayResult struct {
	TrickComplete bool
	Trick         *domain.TrickResult
}

// PlayCard plays a card for the seat whose turn it is. Suit-following is
// deliberately not enforced here: an off-suit play while holding the lead
// suit is accepted and stands unless an opponent challenges it later.
func (s *Service) PlayCard(state *domain.GameState, playerID string, card domain.Card) (PlayResult, error) {
	if state.Phase != domain.PhasePlaying {
		return PlayResult{}, ErrWrongPhase
	}
	if state.CurrentPlayerID != playerID {
		return PlayResult{}, ErrNotYourTurn
	}
	player := state.PlayerByID(playerID)
	if player == nil {
		return PlayResult{}, ErrUnknownPlayer
	}
	hand, ok := domain.RemoveCard(player.Hand, card)
	if !ok {
		return PlayResult{}, ErrCardNotHeld
	}
	player.Hand = hand

	// A play closes the declaration window and clears the last trick banner.
	state.JodhiWindow = false
	state.LastTrickResult = nil

	if len(state.CurrentTrick.Plays) == 0 {
		state.CurrentTrick.LeadSuit = card.Suit
		if state.TricksPlayed == 0 && !state.TrumpRevealed {
			state.TrumpRevealed = true
		}
	}
	state.CurrentTrick.Plays = append(state.CurrentTrick.Plays, domain.Play{PlayerID: playerID, Card: card})

	if len(state.CurrentTrick.Plays) == len(state.Players) {
		result := s.completeTrick(state)
		return PlayResult{TrickComplete: true, Trick: result}, nil
	}

	idx := state.PlayerIndex(playerID)
	state.CurrentPlayerID = state.Players[state.NextSeat(idx)].ID
	return PlayResult{}, nil
}

// completeTrick closes the current trick: credits the winner's team, records
// the trick in the event log, opens the declaration window for the winning
// team, and enters the display pause.
func (s *Service) completeTrick(state *domain.GameState) *domain.TrickResult {
	winnerID := domain.TrickWinner(state.CurrentTrick, state.Trump)
	state.CurrentTrick.WinnerID = winnerID

	winner := state.PlayerByID(winnerID)
	points := domain.TrickPoints(state.CurrentTrick)
	state.Teams[winner.Team].CardPoints += points

	var winningCard domain.Card
	for _, play := range state.CurrentTrick.Plays {
		if play.PlayerID == winnerID {
			winningCard = play.Card
			break
		}
	}
	reason := "highest"
	if state.Trump != "" && winningCard.Suit == state.Trump {
		reason = "trump"
	}

	result := &domain.TrickResult{
		WinnerID:    winnerID,
		WinnerName:  winner.Name,
		WinningCard: winningCard,
		Points:      points,
		Reason:      reason,
	}
	state.LastTrickResult = result

	logged := *state.CurrentTrick
	state.AppendEvent(domain.GameEvent{
		Type:  domain.EventTrick,
		Trick: &logged,
	}, s.nowMillis())

	state.TricksPlayed++
	state.JodhiWindow = true
	state.LastTrickWinningTeam = winner.Team
	state.Phase = domain.PhaseTrickComplete

	return result
}

// TrickPauseElapsed moves on from the trick display: either the next trick
// begins with the winner leading, or the deal is scored.
func (s *Service) TrickPauseElapsed(state *domain.GameState) {
	if state.Phase != domain.PhaseTrickComplete {
		return
	}
	if state.TricksPlayed == TricksPerDeal {
		s.endRound(state)
		return
	}
	winnerID := state.CurrentTrick.WinnerID
	state.CurrentTrick = domain.NewTrick()
	state.CurrentPlayerID = winnerID
	state.Phase = domain.PhasePlaying
}

// CallJodhi records a King+Queen declaration. Only a seat on the team that
// won the last trick may declare, while the window is open, once per suit
// per seat. The claim's value is taken on trust; truth is only examined if
// an opponent challenges.
func (s *Service) CallJodhi(state *domain.GameState, playerID string, suit domain.Suit, withJack bool) error {
	if state.Phase != domain.PhasePlaying && state.Phase != domain.PhaseTrickComplete {
		return ErrWrongPhase
	}
	if !state.JodhiWindow {
		return ErrNoJodhiWindow
	}
	caller := state.PlayerByID(playerID)
	if caller == nil {
		return ErrUnknownPlayer
	}
	if caller.Team != state.LastTrickWinningTeam {
		return ErrWrongTeam
	}
	for _, j := range state.JodhiCalls {
		if j.PlayerID == playerID && j.Suit == suit {
			return ErrDuplicateJodhi
		}
	}

	call := domain.JodhiCall{
		PlayerID: playerID,
		Points:   domain.JodhiPoints(suit == state.Trump, withJack),
		Suit:     suit,
		HasJack:  withJack,
	}
	state.JodhiCalls = append(state.JodhiCalls, call)

	state.AppendEvent(domain.GameEvent{
		Type:  domain.EventJodhiCall,
		Jodhi: &call,
	}, s.nowMillis())
	return nil
}
