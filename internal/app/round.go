package app

import "thunee/internal/domain"

// teamJodhiPoints splits declared claim points between the trump team and
// the counting team.
func teamJodhiPoints(state *domain.GameState) (trumpTeamJodhi, countingTeamJodhi int) {
	trumpTeam := state.TrumpTeam()
	for _, j := range state.JodhiCalls {
		p := state.PlayerByID(j.PlayerID)
		if p != nil && p.Team == trumpTeam {
			trumpTeamJodhi += j.Points
		} else {
			countingTeamJodhi += j.Points
		}
	}
	return trumpTeamJodhi, countingTeamJodhi
}

// wonEveryTrick reports whether team won every completed trick this round.
func wonEveryTrick(state *domain.GameState, team int) bool {
	for _, trick := range state.TrickEvents(state.GameRound) {
		winner := state.PlayerByID(trick.WinnerID)
		if winner == nil || winner.Team != team {
			return false
		}
	}
	return true
}

// endRound scores the deal after the final trick's display pause. The last
// trick's winner gets a flat +10 first. A declared Thunee resolves on a
// clean sweep; otherwise the counting team's card points plus claims are
// measured against the bid-adjusted target.
func (s *Service) endRound(state *domain.GameState) {
	tricks := state.TrickEvents(state.GameRound)
	if len(tricks) > 0 {
		last := tricks[len(tricks)-1]
		if winner := state.PlayerByID(last.WinnerID); winner != nil {
			state.Teams[winner.Team].CardPoints += 10
		}
	}

	// 2-seat tables play the deal in two halves. A Thunee resolves at the
	// end of whichever half it was declared in; otherwise balls are only
	// awarded after the second half.
	if state.PlayerCount == 2 && state.DealRound == 1 {
		if state.ThuneeCallerID != "" {
			s.resolveThunee(state)
			s.finishRound(state)
			return
		}
		state.DealRound = 2
		s.startSecondHalf(state)
		return
	}

	if state.ThuneeCallerID != "" {
		s.resolveThunee(state)
	} else {
		s.resolveNormalScoring(state)
	}
	s.finishRound(state)
}

func (s *Service) resolveThunee(state *domain.GameState) {
	caller := state.PlayerByID(state.ThuneeCallerID)
	team := caller.Team
	winningTeam := domain.OtherTeam(team)
	if wonEveryTrick(state, team) {
		winningTeam = team
	}
	state.Teams[winningTeam].Balls += ThuneeBalls
	state.LastBallAward = &domain.BallAward{Team: winningTeam, Amount: ThuneeBalls, Reason: "thunee"}
	s.logRoundEnd(state, winningTeam, ThuneeBalls, "thunee")
}

func (s *Service) resolveNormalScoring(state *domain.GameState) {
	trumpTeam := state.TrumpTeam()
	countingTeam := domain.OtherTeam(trumpTeam)
	trumpTeamJodhi, countingTeamJodhi := teamJodhiPoints(state)

	target := domain.TargetScore(state.Bid.CurrentBid, trumpTeamJodhi)
	countingScore := state.Teams[countingTeam].CardPoints + countingTeamJodhi

	if countingScore >= target {
		// "Call and lost": a trump team that actually called pays double.
		balls := 1
		if state.Bid.CurrentBid > 0 {
			balls = 2
		}
		state.Teams[countingTeam].Balls += balls
		state.LastBallAward = &domain.BallAward{Team: countingTeam, Amount: balls, Reason: "normal"}
		s.logRoundEnd(state, countingTeam, balls, "normal")
		return
	}
	state.Teams[trumpTeam].Balls += 1
	state.LastBallAward = &domain.BallAward{Team: trumpTeam, Amount: 1, Reason: "normal"}
	s.logRoundEnd(state, trumpTeam, 1, "normal")
}

func (s *Service) finishRound(state *domain.GameState) {
	if s.checkGameOver(state) {
		return
	}
	state.Phase = domain.PhaseRoundEnd
	s.rotateDealerAndReset(state)
}

// CallKhanaak resolves a high-stakes claim in place of normal scoring. It is
// only open to the team that won the final trick, requires a declared Jodhi,
// and succeeds if the opposing team's card points fall short of the claim
// total plus the last-trick bonus. Success pays 3 balls (6 when called
// against the trump team); failure hands the opponent a flat 4. Any resolved
// Khanaak raises the match's win threshold by one for good.
func (s *Service) CallKhanaak(state *domain.GameState, playerID string) error {
	if state.Phase != domain.PhaseTrickComplete || state.TricksPlayed != TricksPerDeal {
		return ErrNotLastTrick
	}
	caller := state.PlayerByID(playerID)
	if caller == nil {
		return ErrUnknownPlayer
	}
	lastWinner := state.PlayerByID(state.CurrentTrick.WinnerID)
	if lastWinner == nil || caller.Team != lastWinner.Team {
		return ErrWrongTeam
	}

	jodhiTotal := 0
	for _, j := range state.JodhiCalls {
		if p := state.PlayerByID(j.PlayerID); p != nil && p.Team == caller.Team {
			jodhiTotal += j.Points
		}
	}
	if jodhiTotal == 0 {
		return ErrNoJodhiForKhanaak
	}

	isBackward := caller.Team != state.TrumpTeam()
	opponentTeam := domain.OtherTeam(caller.Team)
	opponentPoints := state.Teams[opponentTeam].CardPoints

	success := opponentPoints < jodhiTotal+10

	state.AppendEvent(domain.GameEvent{
		Type: domain.EventKhanaakCall,
		Khanaak: &domain.KhanaakCallEvent{
			PlayerID:       playerID,
			Success:        success,
			JodhiTotal:     jodhiTotal,
			OpponentPoints: opponentPoints,
			IsBackward:     isBackward,
		},
	}, s.nowMillis())

	// The raised threshold is permanent once a Khanaak has been resolved,
	// regardless of outcome.
	state.IsKhanaakGame = true

	if success {
		balls := 3
		if isBackward {
			balls = 6
		}
		state.Teams[caller.Team].Balls += balls
		state.LastBallAward = &domain.BallAward{Team: caller.Team, Amount: balls, Reason: "khanaak"}
		s.logRoundEnd(state, caller.Team, balls, "khanaak")
	} else {
		state.Teams[opponentTeam].Balls += 4
		state.LastBallAward = &domain.BallAward{Team: opponentTeam, Amount: 4, Reason: "khanaak"}
		s.logRoundEnd(state, opponentTeam, 4, "khanaak")
	}

	s.finishRound(state)
	return nil
}

// startSecondHalf deals the remaining twelve cards of a 2-seat deal. Trump,
// bid, and claims carry over; the winner of the first half's last trick
// leads.
func (s *Service) startSecondHalf(state *domain.GameState) {
	tricks := state.TrickEvents(state.GameRound)
	leaderID := ""
	if len(tricks) > 0 {
		leaderID = tricks[len(tricks)-1].WinnerID
	}
	if leaderID == "" {
		dealerIdx := state.PlayerIndex(state.DealerID)
		leaderID = state.Players[state.NextSeat(dealerIdx)].ID
	}

	dealSecondHalf(state)
	state.Phase = domain.PhasePlaying
	state.CurrentTrick = domain.NewTrick()
	state.TricksPlayed = 0
	state.CurrentPlayerID = leaderID
}

// WinThreshold returns the live ball count needed to win.
func (s *Service) WinThreshold(state *domain.GameState) int {
	if state.IsKhanaakGame {
		return s.winBase + 1
	}
	return s.winBase
}

// Winner returns the winning team once the match is over, or -1.
func (s *Service) Winner(state *domain.GameState) int {
	threshold := s.WinThreshold(state)
	switch {
	case state.Teams[0].Balls >= threshold:
		return 0
	case state.Teams[1].Balls >= threshold:
		return 1
	default:
		return -1
	}
}

func (s *Service) checkGameOver(state *domain.GameState) bool {
	if s.Winner(state) == -1 {
		return false
	}
	state.Phase = domain.PhaseGameOver
	return true
}

func (s *Service) rotateDealerAndReset(state *domain.GameState) {
	dealerIdx := state.PlayerIndex(state.DealerID)
	state.DealerID = state.Players[state.NextSeat(dealerIdx)].ID

	state.Teams[0].CardPoints = 0
	state.Teams[1].CardPoints = 0
	state.DealRound = 1
	state.GameRound++
}

func (s *Service) logRoundEnd(state *domain.GameState, winningTeam, balls int, reason string) {
	state.AppendEvent(domain.GameEvent{
		Type:     domain.EventRoundEnd,
		RoundEnd: &domain.RoundEndEvent{WinningTeam: winningTeam, Balls: balls, Reason: reason},
	}, s.nowMillis())
}
