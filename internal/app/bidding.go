package app

import "thunee/internal/domain"

// Bid records a call. A legal call must come from a seated player who has
// not passed, exceed the current call, and be a multiple of ten up to 104.
// Each accepted call resets the countdown and wipes any trump preselection.
func (s *Service) Bid(state *domain.GameState, playerID string, amount int) error {
	if state.Phase != domain.PhaseBidding {
		return ErrWrongPhase
	}
	if state.PlayerByID(playerID) == nil {
		return ErrUnknownPlayer
	}
	if state.Bid.Passed.Has(playerID) {
		return ErrAlreadyPassed
	}
	if !domain.IsValidBid(amount, state.Bid.CurrentBid) {
		return ErrInvalidBid
	}

	state.Bid.CurrentBid = amount
	state.Bid.BidderID = playerID
	state.Bid.PreselectedTrump = ""
	state.Bid.TimerEndsAt = s.nowMillis() + s.bidTimer.Milliseconds()
	return nil
}

// Pass records a pass. Passing is only meaningful while the countdown runs;
// once every seat but the high bidder has passed, bidding resolves
// immediately instead of waiting out the timer.
func (s *Service) Pass(state *domain.GameState, playerID string) error {
	if state.Phase != domain.PhaseBidding {
		return ErrWrongPhase
	}
	if state.Bid.TimerEndsAt == 0 {
		return ErrNoCountdown
	}
	if state.PlayerByID(playerID) == nil {
		return ErrUnknownPlayer
	}
	if state.Bid.Passed.Has(playerID) {
		return ErrAlreadyPassed
	}

	state.Bid.Passed.Add(playerID)

	allOthersPassed := true
	for _, p := range state.Players {
		if p.ID == state.Bid.BidderID {
			continue
		}
		if !state.Bid.Passed.Has(p.ID) {
			allOthersPassed = false
			break
		}
	}
	if allOthersPassed {
		s.resolveBidding(state)
	}
	return nil
}

// PreselectTrump lets the seat currently holding trump rights lock a suit in
// during the countdown: the high bidder once someone has called, the default
// trumper before that.
func (s *Service) PreselectTrump(state *domain.GameState, playerID string, suit domain.Suit) error {
	if state.Phase != domain.PhaseBidding {
		return ErrWrongPhase
	}
	if state.Bid.CurrentBid > 0 {
		if playerID != state.Bid.BidderID {
			return ErrNotPreselector
		}
	} else if playerID != state.Bid.DefaultTrumperID {
		return ErrNotPreselector
	}

	state.Bid.PreselectedTrump = suit
	return nil
}

// BiddingExpired resolves the countdown. The match loop calls it once the
// deadline passes; a short-circuited pass round calls it early.
func (s *Service) BiddingExpired(state *domain.GameState) {
	if state.Phase != domain.PhaseBidding {
		return
	}
	s.resolveBidding(state)
}

func (s *Service) resolveBidding(state *domain.GameState) {
	state.Bid.TimerEndsAt = 0

	if state.Bid.CurrentBid == 0 {
		// Nobody called; trump rights fall to the default trumper.
		state.TrumpCallerID = state.Bid.DefaultTrumperID
		state.Bid.BidderID = ""

		if state.Bid.PreselectedTrump != "" {
			// Locked-in suit goes straight to play. The seat before the
			// trumper leads.
			state.Trump = state.Bid.PreselectedTrump
			dealTopUp(state)
			trumperIdx := state.PlayerIndex(state.TrumpCallerID)
			state.CurrentPlayerID = state.Players[state.PrevSeat(trumperIdx)].ID
			state.Phase = domain.PhasePlaying
			return
		}
		dealTopUp(state)
		s.enterCallingPhase(state)
		return
	}

	// Highest bidder wins the call.
	state.TrumpCallerID = state.Bid.BidderID
	dealTopUp(state)
	s.enterCallingPhase(state)
}

func (s *Service) enterCallingPhase(state *domain.GameState) {
	state.CurrentPlayerID = state.TrumpCallerID
	state.Phase = domain.PhaseCalling
}
