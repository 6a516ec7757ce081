package bot

import (
	"thunee/internal/domain"
)

// HeuristicBrain is the deterministic strategy used for every bot seat.
type HeuristicBrain struct{}

// NewBrain returns the strategy wired into new bot agents.
func NewBrain() Brain {
	return &HeuristicBrain{}
}

// ComputeMove returns the move the seat wants to make, or nil when it has
// nothing to do in the current state.
func (b *HeuristicBrain) ComputeMove(state *domain.GameState, player *domain.Player) *Decision {
	if player == nil || player.IsSpectator {
		return nil
	}
	switch state.Phase {
	case domain.PhaseBidding:
		return b.biddingMove(state, player)
	case domain.PhaseCalling:
		return b.callingMove(state, player)
	case domain.PhasePlaying:
		if d := b.jodhiMove(state, player); d != nil {
			return d
		}
		if state.CurrentPlayerID == player.ID {
			card := DecidePlay(state, player)
			return &Decision{Type: DecisionPlayCard, Card: card}
		}
		return nil
	case domain.PhaseTrickComplete:
		if d := b.jodhiMove(state, player); d != nil {
			return d
		}
		return b.khanaakMove(state, player)
	}
	return nil
}

func (b *HeuristicBrain) biddingMove(state *domain.GameState, player *domain.Player) *Decision {
	bid := state.Bid
	if bid.Passed.Has(player.ID) || bid.BidderID == player.ID {
		return nil
	}

	// As the default trumper with a workable hand, let the countdown run
	// out and lock in the suit now. A weak hand passes to dodge the duty.
	if bid.DefaultTrumperID == player.ID && bid.CurrentBid == 0 {
		if EvaluateHand(player.Hand).TotalHighCards >= 2 {
			if bid.PreselectedTrump == "" {
				return &Decision{Type: DecisionPreselectTrump, Suit: ChooseTrumpSuit(player.Hand)}
			}
			return nil
		}
		return &Decision{Type: DecisionPass}
	}

	amount := DecideBid(player.Hand, bid.CurrentBid)
	if amount == 0 {
		return &Decision{Type: DecisionPass}
	}
	return &Decision{Type: DecisionBid, Amount: amount}
}

func (b *HeuristicBrain) callingMove(state *domain.GameState, player *domain.Player) *Decision {
	if state.TrumpCallerID != player.ID {
		return nil
	}
	if shouldCallThunee(player.Hand) {
		return &Decision{Type: DecisionCallThunee}
	}
	return &Decision{
		Type:     DecisionSetTrump,
		Suit:     ChooseTrumpSuit(player.Hand),
		LastCard: shouldCallLastCard(player.Hand),
	}
}

func (b *HeuristicBrain) jodhiMove(state *domain.GameState, player *domain.Player) *Decision {
	if !state.JodhiWindow || player.Team != state.LastTrickWinningTeam {
		return nil
	}
	call, ok := domain.FindJodhi(player.Hand, state.Trump)
	if !ok {
		return nil
	}
	for _, prior := range state.JodhiCalls {
		if prior.PlayerID == player.ID && prior.Suit == call.Suit {
			return nil
		}
	}
	return &Decision{Type: DecisionCallJodhi, Suit: call.Suit, WithJack: call.HasJack}
}

// khanaakMove claims a Khanaak only when the opponents' visible card points
// already guarantee it.
func (b *HeuristicBrain) khanaakMove(state *domain.GameState, player *domain.Player) *Decision {
	if state.TricksPlayed != 6 || player.Team != state.LastTrickWinningTeam {
		return nil
	}
	jodhiTotal := 0
	for _, call := range state.JodhiCalls {
		if p := state.PlayerByID(call.PlayerID); p != nil && p.Team == player.Team {
			jodhiTotal += call.Points
		}
	}
	if jodhiTotal == 0 {
		return nil
	}
	if state.Teams[domain.OtherTeam(player.Team)].CardPoints >= jodhiTotal+10 {
		return nil
	}
	return &Decision{Type: DecisionCallKhanaak}
}

// NextActor returns the first bot seat with a pending move, or nil when no
// bot needs to act.
func NextActor(state *domain.GameState) *domain.Player {
	brain := HeuristicBrain{}
	for _, p := range state.Players {
		if p.IsBot && brain.ComputeMove(state, p) != nil {
			return p
		}
	}
	return nil
}
