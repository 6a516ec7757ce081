package app

import (
	"testing"

	"thunee/internal/domain"
)

func startedFourGame(t *testing.T) (*Service, *domain.GameState) {
	t.Helper()
	s := newTestService()
	state := domain.NewGameState("room", 4)
	seatFour(t, s, state)
	if err := s.Start(state); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s, state
}

func TestStartDealsContiguousRuns(t *testing.T) {
	_, state := startedFourGame(t)

	for i, p := range state.Players {
		if len(p.Hand) != 4 {
			t.Fatalf("seat %d dealt %d cards, want 4", i, len(p.Hand))
		}
		for j, c := range p.Hand {
			if want := state.Deck[i*4+j]; c != want {
				t.Errorf("seat %d card %d = %v, want deck[%d] = %v", i, j, c, i*4+j, want)
			}
		}
	}
	if state.Bid.TimerEndsAt == 0 {
		t.Error("bidding countdown should be running")
	}
	if state.CurrentPlayerID != "" {
		t.Error("no fixed turn during the open call window")
	}
}

func TestTopUpOffsets(t *testing.T) {
	s, state := startedFourGame(t)
	if err := s.Bid(state, "p2", 50); err != nil {
		t.Fatalf("Bid: %v", err)
	}
	s.BiddingExpired(state)

	for i, p := range state.Players {
		if len(p.Hand) != 6 {
			t.Fatalf("seat %d has %d cards after top-up, want 6", i, len(p.Hand))
		}
		for j := 0; j < 2; j++ {
			if want := state.Deck[16+i*2+j]; p.Hand[4+j] != want {
				t.Errorf("seat %d top-up card %d = %v, want deck[%d] = %v",
					i, j, p.Hand[4+j], 16+i*2+j, want)
			}
		}
	}
	if state.Phase != domain.PhaseCalling {
		t.Errorf("phase = %v, want calling", state.Phase)
	}
	if state.TrumpCallerID != "p2" || state.CurrentPlayerID != "p2" {
		t.Errorf("high bidder should hold the call: caller=%q turn=%q",
			state.TrumpCallerID, state.CurrentPlayerID)
	}
}

func TestBidValidation(t *testing.T) {
	s, state := startedFourGame(t)

	tests := []struct {
		name    string
		player  string
		amount  int
		wantErr error
	}{
		{"opening call", "p0", 30, nil},
		{"must raise", "p1", 30, ErrInvalidBid},
		{"raise", "p1", 60, nil},
		{"unknown player", "ghost", 70, ErrUnknownPlayer},
		{"104 exception", "p2", 104, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Bid(state, tt.player, tt.amount); err != tt.wantErr {
				t.Errorf("Bid(%s, %d) = %v, want %v", tt.player, tt.amount, err, tt.wantErr)
			}
		})
	}

	if state.Bid.CurrentBid != 104 || state.Bid.BidderID != "p2" {
		t.Errorf("bid state = %+v", state.Bid)
	}
}

func TestBidAfterPassRejected(t *testing.T) {
	s, state := startedFourGame(t)
	if err := s.Bid(state, "p0", 30); err != nil {
		t.Fatal(err)
	}
	if err := s.Pass(state, "p1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Bid(state, "p1", 40); err != ErrAlreadyPassed {
		t.Errorf("bid after pass = %v, want ErrAlreadyPassed", err)
	}
	if err := s.Pass(state, "p1"); err != ErrAlreadyPassed {
		t.Errorf("second pass = %v, want ErrAlreadyPassed", err)
	}
}

func TestBidResetsCountdownAndPreselection(t *testing.T) {
	s, state := startedFourGame(t)

	trumper := state.Bid.DefaultTrumperID
	if err := s.PreselectTrump(state, trumper, domain.SuitHearts); err != nil {
		t.Fatalf("PreselectTrump: %v", err)
	}
	before := state.Bid.TimerEndsAt

	if err := s.Bid(state, "p1", 40); err != nil {
		t.Fatal(err)
	}
	if state.Bid.PreselectedTrump != "" {
		t.Error("a call must wipe the preselection")
	}
	if state.Bid.TimerEndsAt < before {
		t.Error("a call must reset, not shorten, the countdown")
	}
}

func TestAllOthersPassedShortCircuits(t *testing.T) {
	s, state := startedFourGame(t)
	if err := s.Bid(state, "p0", 30); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"p1", "p2"} {
		if err := s.Pass(state, id); err != nil {
			t.Fatal(err)
		}
		if state.Phase != domain.PhaseBidding {
			t.Fatalf("bidding resolved too early after %s passed", id)
		}
	}
	if err := s.Pass(state, "p3"); err != nil {
		t.Fatal(err)
	}
	if state.Phase != domain.PhaseCalling {
		t.Errorf("phase = %v, want calling once all others passed", state.Phase)
	}
	if state.TrumpCallerID != "p0" {
		t.Errorf("trump caller = %q, want the high bidder", state.TrumpCallerID)
	}
}

func TestNoCallsWithPreselectionSkipsCalling(t *testing.T) {
	s, state := startedFourGame(t)

	trumper := state.Bid.DefaultTrumperID
	if err := s.PreselectTrump(state, trumper, domain.SuitClubs); err != nil {
		t.Fatal(err)
	}
	s.BiddingExpired(state)

	if state.Phase != domain.PhasePlaying {
		t.Fatalf("phase = %v, want playing", state.Phase)
	}
	if state.Trump != domain.SuitClubs {
		t.Errorf("trump = %v, want clubs", state.Trump)
	}
	if state.TrumpCallerID != trumper {
		t.Errorf("trump caller = %q, want default trumper %q", state.TrumpCallerID, trumper)
	}
	trumperIdx := state.PlayerIndex(trumper)
	wantLeader := state.Players[state.PrevSeat(trumperIdx)].ID
	if state.CurrentPlayerID != wantLeader {
		t.Errorf("leader = %q, want the seat before the trumper %q", state.CurrentPlayerID, wantLeader)
	}
}

func TestNoCallsNoPreselectionGoesToCalling(t *testing.T) {
	s, state := startedFourGame(t)
	trumper := state.Bid.DefaultTrumperID
	s.BiddingExpired(state)

	if state.Phase != domain.PhaseCalling {
		t.Fatalf("phase = %v, want calling", state.Phase)
	}
	if state.TrumpCallerID != trumper || state.CurrentPlayerID != trumper {
		t.Errorf("caller=%q turn=%q, want default trumper %q",
			state.TrumpCallerID, state.CurrentPlayerID, trumper)
	}
	if state.Bid.TimerEndsAt != 0 {
		t.Error("countdown should be cleared on expiry")
	}
}

func TestPreselectRights(t *testing.T) {
	s, state := startedFourGame(t)
	trumper := state.Bid.DefaultTrumperID

	var outsider string
	for _, p := range state.Players {
		if p.ID != trumper {
			outsider = p.ID
			break
		}
	}
	if err := s.PreselectTrump(state, outsider, domain.SuitHearts); err != ErrNotPreselector {
		t.Errorf("outsider preselect = %v, want ErrNotPreselector", err)
	}

	// After a call, preselection rights move to the high bidder.
	if err := s.Bid(state, outsider, 30); err != nil {
		t.Fatal(err)
	}
	if err := s.PreselectTrump(state, trumper, domain.SuitHearts); err != ErrNotPreselector && trumper != outsider {
		t.Errorf("default trumper preselect after a call = %v, want ErrNotPreselector", err)
	}
	if err := s.PreselectTrump(state, outsider, domain.SuitSpades); err != nil {
		t.Errorf("high bidder preselect = %v", err)
	}
}

func TestPassWithoutCountdownRejected(t *testing.T) {
	s, state := startedFourGame(t)
	state.Bid.TimerEndsAt = 0
	if err := s.Pass(state, "p0"); err != ErrNoCountdown {
		t.Errorf("Pass() = %v, want ErrNoCountdown", err)
	}
}
