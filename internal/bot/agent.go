package bot

import (
	"thunee/internal/domain"
)

// Agent is one autonomous seat at a table.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// NewAgent seats a new agent with the default strategy.
func NewAgent(id, name string) *Agent {
	return &Agent{ID: id, Name: name, Strategy: NewBrain()}
}

// Act returns the agent's pending move, or nil when it has nothing to do or
// is not seated in this game.
func (a *Agent) Act(state *domain.GameState) *Decision {
	player := state.PlayerByID(a.ID)
	if player == nil {
		return nil
	}
	return a.Strategy.ComputeMove(state, player)
}
