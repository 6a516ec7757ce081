package app

import "thunee/internal/domain"

// JoinOutcome discriminates the ways a join request can land.
type JoinOutcome string

const (
	JoinSeated      JoinOutcome = "seated"
	JoinReconnected JoinOutcome = "reconnected"
	JoinSpectator   JoinOutcome = "spectator"
)

// JoinResult reports where a joiner ended up. Player is the seat (or
// spectator record) the connection is now bound to.
type JoinResult struct {
	Outcome JoinOutcome
	Player  *domain.Player
}

// Join seats a player, reattaches a returning one, or files overflow joiners
// as spectators. Reconnection is resolved by a previously issued seat id
// first, then by exact name match. The first joiner fixes the table size and
// becomes the dealer. Seats alternate teams by join order.
func (s *Service) Join(state *domain.GameState, playerID, name string, tableSize int, existingPlayerID string) JoinResult {
	var existing *domain.Player
	if existingPlayerID != "" {
		existing = state.PlayerByID(existingPlayerID)
	}
	if existing == nil {
		for _, p := range state.Players {
			if p.Name == name {
				existing = p
				break
			}
		}
	}
	if existing != nil {
		existing.Connected = true
		return JoinResult{Outcome: JoinReconnected, Player: existing}
	}

	if len(state.Players) == 0 && (tableSize == 2 || tableSize == 4) {
		state.PlayerCount = tableSize
	}

	if len(state.Players) >= state.PlayerCount {
		spectator := domain.NewPlayer(playerID, name, 0)
		spectator.IsSpectator = true
		state.Spectators = append(state.Spectators, spectator)
		return JoinResult{Outcome: JoinSpectator, Player: spectator}
	}

	player := domain.NewPlayer(playerID, name, len(state.Players)%2)
	state.Players = append(state.Players, player)
	if len(state.Players) == 1 {
		state.DealerID = playerID
	}
	return JoinResult{Outcome: JoinSeated, Player: player}
}

// Leave flips the connectivity flag for a seat. Seats are never vacated
// mid-match; a returning player reclaims the seat through Join.
func (s *Service) Leave(state *domain.GameState, playerID string) {
	if p := state.PlayerByID(playerID); p != nil {
		p.Connected = false
		return
	}
	for i, sp := range state.Spectators {
		if sp.ID == playerID {
			state.Spectators = append(state.Spectators[:i], state.Spectators[i+1:]...)
			return
		}
	}
}

// Start begins a new deal. It is legal from the waiting room or between
// deals, once every seat is filled.
func (s *Service) Start(state *domain.GameState) error {
	if len(state.Players) != state.PlayerCount {
		return ErrNotEnoughPlayers
	}
	if state.Phase != domain.PhaseWaiting && state.Phase != domain.PhaseRoundEnd {
		return ErrWrongPhase
	}
	s.startDeal(state)
	return nil
}
