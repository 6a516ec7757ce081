package bot

import (
	"thunee/internal/domain"
)

// DecisionType identifies which command a bot wants to issue.
type DecisionType string

const (
	DecisionBid            DecisionType = "bid"
	DecisionPass           DecisionType = "pass"
	DecisionPreselectTrump DecisionType = "preselect-trump"
	DecisionSetTrump       DecisionType = "set-trump"
	DecisionCallThunee     DecisionType = "call-thunee"
	DecisionCallJodhi      DecisionType = "call-jodhi"
	DecisionCallKhanaak    DecisionType = "call-khanaak"
	DecisionPlayCard       DecisionType = "play-card"
)

// Decision is a single move a bot wants to make. Only the fields relevant
// to the Type are set.
type Decision struct {
	Type     DecisionType
	Amount   int
	Suit     domain.Suit
	LastCard bool
	WithJack bool
	Card     domain.Card
}

// Brain decides moves for one seat. A nil decision means the seat has
// nothing to do right now.
type Brain interface {
	ComputeMove(state *domain.GameState, player *domain.Player) *Decision
}
