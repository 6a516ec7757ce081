package app

import "thunee/internal/domain"

// playerCardsPlayed returns every card the player has put down this round,
// from completed tricks and the still-open one.
func playerCardsPlayed(state *domain.GameState, playerID string) []domain.Card {
	var cards []domain.Card
	for _, trick := range state.TrickEvents(state.GameRound) {
		for _, play := range trick.Plays {
			if play.PlayerID == playerID {
				cards = append(cards, play.Card)
			}
		}
	}
	for _, play := range state.CurrentTrick.Plays {
		if play.PlayerID == playerID {
			cards = append(cards, play.Card)
		}
	}
	return cards
}

// reconstructHandAtPlay rebuilds the accused's hand as it stood immediately
// before their play in the given trick: current hand, plus every card they
// played in any later trick (including the open one), plus the disputed card
// itself.
func reconstructHandAtPlay(state *domain.GameState, playerID string, trickIndex int) []domain.Card {
	accused := state.PlayerByID(playerID)
	if accused == nil {
		return nil
	}
	tricks := state.TrickEvents(state.GameRound)
	hand := append([]domain.Card{}, accused.Hand...)

	for i := trickIndex + 1; i < len(tricks); i++ {
		for _, play := range tricks[i].Plays {
			if play.PlayerID == playerID {
				hand = append(hand, play.Card)
			}
		}
	}

	if trickIndex < len(tricks) {
		for _, play := range state.CurrentTrick.Plays {
			if play.PlayerID == playerID {
				hand = append(hand, play.Card)
			}
		}
	}
	// When the disputed play is in the open trick itself, nothing later
	// exists to add back: a seat plays at most once per trick.

	challenged := state.CurrentTrick
	if trickIndex < len(tricks) {
		challenged = tricks[trickIndex]
	}
	for _, play := range challenged.Plays {
		if play.PlayerID == playerID {
			hand = append(hand, play.Card)
		}
	}
	return hand
}

// mostRecentPlay returns the accused's latest played card, for display when
// a challenge fails.
func mostRecentPlay(state *domain.GameState, playerID string) *domain.Card {
	for _, play := range state.CurrentTrick.Plays {
		if play.PlayerID == playerID {
			c := play.Card
			return &c
		}
	}
	tricks := state.TrickEvents(state.GameRound)
	for i := len(tricks) - 1; i >= 0; i-- {
		for _, play := range tricks[i].Plays {
			if play.PlayerID == playerID {
				c := play.Card
				return &c
			}
		}
	}
	return nil
}

// ChallengePlay accuses an opposing seat of an illegal play at any point
// this round. Every card the accused has played is re-validated against a
// reconstruction of their hand at the moment it was played. Any illegal play
// wins the round for the challenger's team; a clean history wins it for the
// accused's team. Either way the round ends with a flat 4-ball award.
func (s *Service) ChallengePlay(state *domain.GameState, challengerID, accusedID string) (*domain.ChallengeResult, error) {
	if state.Phase != domain.PhasePlaying && state.Phase != domain.PhaseTrickComplete {
		return nil, ErrWrongPhase
	}
	challenger := state.PlayerByID(challengerID)
	accused := state.PlayerByID(accusedID)
	if challenger == nil || accused == nil {
		return nil, ErrUnknownPlayer
	}
	if challenger.Team == accused.Team {
		return nil, ErrSameTeamChallenge
	}

	tricks := state.TrickEvents(state.GameRound)
	allTricks := append([]*domain.Trick{}, tricks...)
	if len(state.CurrentTrick.Plays) > 0 {
		allTricks = append(allTricks, state.CurrentTrick)
	}

	hasPlayed := false
	var invalidCard *domain.Card
	invalidReason := ""
	for trickIndex, trick := range allTricks {
		playIndex := -1
		for i, play := range trick.Plays {
			if play.PlayerID == accusedID {
				playIndex = i
				break
			}
		}
		if playIndex == -1 {
			continue
		}
		hasPlayed = true

		card := trick.Plays[playIndex].Card
		handBefore := reconstructHandAtPlay(state, accusedID, trickIndex)

		before := &domain.Trick{Plays: trick.Plays[:playIndex]}
		if playIndex > 0 {
			before.LeadSuit = trick.LeadSuit
		}

		if legal, reason := domain.IsLegalPlay(card, handBefore, before); !legal {
			c := card
			invalidCard = &c
			invalidReason = reason
			break
		}
	}
	if !hasPlayed {
		return nil, ErrNothingToChallenge
	}

	wasValid := invalidCard == nil
	winningTeam := challenger.Team
	if wasValid {
		winningTeam = accused.Team
	}
	shown := invalidCard
	if shown == nil {
		shown = mostRecentPlay(state, accusedID)
	}

	result := &domain.ChallengeResult{
		ChallengerID: challengerID,
		AccusedID:    accusedID,
		Type:         "play",
		Card:         shown,
		WasValid:     wasValid,
		Reason:       invalidReason,
		WinningTeam:  winningTeam,
	}
	s.resolveChallenge(state, result)
	return result, nil
}

// ChallengeJodhi accuses an opposing seat of a false declaration. The claim
// is checked against the union of the accused's current hand and everything
// they have played this round; a false claim is stripped from the claim
// list. The round ends either way with a flat 4-ball award.
func (s *Service) ChallengeJodhi(state *domain.GameState, challengerID, accusedID string, suit domain.Suit) (*domain.ChallengeResult, error) {
	if state.Phase != domain.PhasePlaying && state.Phase != domain.PhaseTrickComplete {
		return nil, ErrWrongPhase
	}
	challenger := state.PlayerByID(challengerID)
	accused := state.PlayerByID(accusedID)
	if challenger == nil || accused == nil {
		return nil, ErrUnknownPlayer
	}
	if challenger.Team == accused.Team {
		return nil, ErrSameTeamChallenge
	}

	var claim *domain.JodhiCall
	for i := range state.JodhiCalls {
		if state.JodhiCalls[i].PlayerID == accusedID && state.JodhiCalls[i].Suit == suit {
			claim = &state.JodhiCalls[i]
			break
		}
	}
	if claim == nil {
		return nil, ErrNoSuchClaim
	}

	all := append(append([]domain.Card{}, accused.Hand...), playerCardsPlayed(state, accusedID)...)
	var hasQ, hasK, hasJ bool
	for _, c := range all {
		if c.Suit != suit {
			continue
		}
		switch c.Rank {
		case domain.RankQueen:
			hasQ = true
		case domain.RankKing:
			hasK = true
		case domain.RankJack:
			hasJ = true
		}
	}
	wasValid := hasQ && hasK && (!claim.HasJack || hasJ)
	reason := ""
	if !wasValid {
		reason = "declared cards in " + string(suit) + " were never held"
	}

	winningTeam := challenger.Team
	if wasValid {
		winningTeam = accused.Team
	}

	if !wasValid {
		kept := state.JodhiCalls[:0]
		for _, j := range state.JodhiCalls {
			if !(j.PlayerID == accusedID && j.Suit == suit) {
				kept = append(kept, j)
			}
		}
		state.JodhiCalls = kept
	}

	result := &domain.ChallengeResult{
		ChallengerID: challengerID,
		AccusedID:    accusedID,
		Type:         "jodhi",
		Suit:         suit,
		WasValid:     wasValid,
		Reason:       reason,
		WinningTeam:  winningTeam,
	}
	s.resolveChallenge(state, result)
	return result, nil
}

// resolveChallenge ends the round on a challenge verdict: record it, award
// the flat penalty, and either finish the match or rotate into the next deal.
func (s *Service) resolveChallenge(state *domain.GameState, result *domain.ChallengeResult) {
	state.LastChallenge = result

	state.AppendEvent(domain.GameEvent{
		Type:      domain.EventChallenge,
		Challenge: result,
	}, s.nowMillis())

	state.Teams[result.WinningTeam].Balls += ChallengePenaltyBalls
	s.logRoundEnd(state, result.WinningTeam, ChallengePenaltyBalls, "challenge")

	if !s.checkGameOver(state) {
		state.Phase = domain.PhaseRoundEnd
		s.rotateDealerAndReset(state)
	}
}
