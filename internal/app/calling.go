package app

import "thunee/internal/domain"

// SetTrump fixes the trump suit for the deal. Only the trump caller may act.
// The seat after the caller in turn order leads the first trick.
func (s *Service) SetTrump(state *domain.GameState, playerID string, suit domain.Suit, lastCard bool) error {
	if state.Phase != domain.PhaseCalling {
		return ErrWrongPhase
	}
	if state.TrumpCallerID != playerID {
		return ErrNotTrumpCaller
	}

	state.Trump = suit
	state.IsLastCardTrump = lastCard

	callerIdx := state.PlayerIndex(playerID)
	state.CurrentPlayerID = state.Players[state.NextSeat(callerIdx)].ID
	state.Phase = domain.PhasePlaying
	return nil
}

// CallThunee declares the all-tricks contract: no trump for the deal, and
// the caller's team must win every trick. The seat after the caller leads.
func (s *Service) CallThunee(state *domain.GameState, playerID string) error {
	if state.Phase != domain.PhaseCalling {
		return ErrWrongPhase
	}
	if state.TrumpCallerID != playerID {
		return ErrNotTrumpCaller
	}

	state.ThuneeCallerID = playerID
	state.Trump = ""

	state.AppendEvent(domain.GameEvent{
		Type:   domain.EventThuneeCall,
		Thunee: &domain.ThuneeCallEvent{PlayerID: playerID},
	}, s.nowMillis())

	callerIdx := state.PlayerIndex(playerID)
	state.CurrentPlayerID = state.Players[state.NextSeat(callerIdx)].ID
	state.Phase = domain.PhasePlaying
	return nil
}
