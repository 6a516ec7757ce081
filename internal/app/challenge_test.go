package app

import (
	"testing"

	"thunee/internal/domain"
)

// playTrick feeds a full circuit of plays and fast-forwards the display
// pause.
func playTrick(t *testing.T, s *Service, state *domain.GameState, plays []domain.Play) {
	t.Helper()
	for _, play := range plays {
		if _, err := s.PlayCard(state, play.PlayerID, play.Card); err != nil {
			t.Fatalf("play %s %v: %v", play.PlayerID, play.Card, err)
		}
	}
	s.TrickPauseElapsed(state)
}

func TestChallengeReconstructionMatchesLiveHand(t *testing.T) {
	s := newTestService()
	p1Hand := []domain.Card{
		card(domain.SuitClubs, domain.RankTen),
		card(domain.SuitSpades, domain.RankNine),
		card(domain.SuitDiamonds, domain.RankKing),
	}
	state := playingState(map[string][]domain.Card{
		"p0": {card(domain.SuitClubs, domain.RankAce), card(domain.SuitClubs, domain.RankKing)},
		"p1": p1Hand,
		"p2": {card(domain.SuitClubs, domain.RankJack), card(domain.SuitClubs, domain.RankNine)},
		"p3": {card(domain.SuitClubs, domain.RankQueen), card(domain.SuitHearts, domain.RankTen)},
	})

	if _, err := s.PlayCard(state, "p0", card(domain.SuitClubs, domain.RankAce)); err != nil {
		t.Fatal(err)
	}
	liveBefore := append([]domain.Card{}, state.PlayerByID("p1").Hand...)
	if _, err := s.PlayCard(state, "p1", card(domain.SuitClubs, domain.RankTen)); err != nil {
		t.Fatal(err)
	}

	// Reconstructing p1's hand for its most recent play must reproduce the
	// hand exactly as it stood before the live removal.
	got := reconstructHandAtPlay(state, "p1", 0)
	if len(got) != len(liveBefore) {
		t.Fatalf("reconstructed %d cards, want %d", len(got), len(liveBefore))
	}
	want := map[domain.Card]int{}
	for _, c := range liveBefore {
		want[c]++
	}
	for _, c := range got {
		want[c]--
		if want[c] < 0 {
			t.Errorf("unexpected card %v in reconstruction", c)
		}
	}
}

func TestChallengePlayCatchesHistoricalRevoke(t *testing.T) {
	s := newTestService()
	state := playingState(map[string][]domain.Card{
		"p0": {card(domain.SuitClubs, domain.RankAce), card(domain.SuitDiamonds, domain.RankAce)},
		"p1": {card(domain.SuitClubs, domain.RankTen), card(domain.SuitSpades, domain.RankNine)},
		"p2": {card(domain.SuitClubs, domain.RankJack), card(domain.SuitDiamonds, domain.RankTen)},
		"p3": {card(domain.SuitClubs, domain.RankQueen), card(domain.SuitDiamonds, domain.RankNine)},
	})

	// Trick 1: p1 revokes, sloughing a spade while holding the club ten.
	playTrick(t, s, state, []domain.Play{
		{PlayerID: "p0", Card: card(domain.SuitClubs, domain.RankAce)},
		{PlayerID: "p1", Card: card(domain.SuitSpades, domain.RankNine)},
		{PlayerID: "p2", Card: card(domain.SuitClubs, domain.RankJack)},
		{PlayerID: "p3", Card: card(domain.SuitClubs, domain.RankQueen)},
	})

	// Trick 2 under way; the revoke is several plays in the past.
	if _, err := s.PlayCard(state, "p2", card(domain.SuitDiamonds, domain.RankTen)); err != nil {
		t.Fatal(err)
	}

	result, err := s.ChallengePlay(state, "p0", "p1")
	if err != nil {
		t.Fatalf("ChallengePlay: %v", err)
	}
	if result.WasValid {
		t.Fatal("revoke went undetected")
	}
	if result.WinningTeam != 0 {
		t.Errorf("winning team = %d, want the challenger's team 0", result.WinningTeam)
	}
	if result.Card == nil || *result.Card != card(domain.SuitSpades, domain.RankNine) {
		t.Errorf("shown card = %v, want the illegal spade nine", result.Card)
	}
	if result.Reason == "" {
		t.Error("a detected revoke must say which rule was broken")
	}
	if state.Teams[0].Balls != 4 {
		t.Errorf("challenge award = %d balls, want 4", state.Teams[0].Balls)
	}
	if state.Phase != domain.PhaseRoundEnd {
		t.Errorf("phase = %v, want round-end", state.Phase)
	}
}

func TestChallengePlayBadChallengePenalty(t *testing.T) {
	s := newTestService()
	state := playingState(map[string][]domain.Card{
		"p0": {card(domain.SuitClubs, domain.RankAce)},
		"p1": {card(domain.SuitClubs, domain.RankTen)},
		"p2": {card(domain.SuitClubs, domain.RankJack)},
		"p3": {card(domain.SuitClubs, domain.RankQueen)},
	})
	if _, err := s.PlayCard(state, "p0", card(domain.SuitClubs, domain.RankAce)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.PlayCard(state, "p1", card(domain.SuitClubs, domain.RankTen)); err != nil {
		t.Fatal(err)
	}

	result, err := s.ChallengePlay(state, "p0", "p1")
	if err != nil {
		t.Fatalf("ChallengePlay: %v", err)
	}
	if !result.WasValid {
		t.Fatal("clean history judged illegal")
	}
	if result.Reason != "" {
		t.Errorf("a clean history carries no reason, got %q", result.Reason)
	}
	if result.WinningTeam != 1 || state.Teams[1].Balls != 4 {
		t.Errorf("bad challenge should pay the accused's team: %+v balls=%v",
			result, state.Teams)
	}
}

func TestChallengePlayGuards(t *testing.T) {
	s := newTestService()
	state := playingState(map[string][]domain.Card{
		"p0": {card(domain.SuitClubs, domain.RankAce)},
		"p1": {card(domain.SuitClubs, domain.RankTen)},
		"p2": {}, "p3": {},
	})

	if _, err := s.ChallengePlay(state, "p0", "p2"); err != ErrSameTeamChallenge {
		t.Errorf("teammate challenge = %v, want ErrSameTeamChallenge", err)
	}
	if _, err := s.ChallengePlay(state, "p0", "p1"); err != ErrNothingToChallenge {
		t.Errorf("no history = %v, want ErrNothingToChallenge", err)
	}
	state.Phase = domain.PhaseRoundEnd
	if _, err := s.ChallengePlay(state, "p0", "p1"); err != ErrWrongPhase {
		t.Errorf("after scoring = %v, want ErrWrongPhase", err)
	}
}

func TestChallengeJodhi(t *testing.T) {
	honest := []domain.Card{
		card(domain.SuitClubs, domain.RankKing),
		card(domain.SuitClubs, domain.RankQueen),
	}

	tests := []struct {
		name      string
		hand      []domain.Card
		claimJack bool
		wantValid bool
	}{
		{"honest claim survives", honest, false, true},
		{"jack claimed but not held", honest, true, false},
		{"no such holding", []domain.Card{card(domain.SuitSpades, domain.RankKing)}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService()
			state := playingState(map[string][]domain.Card{
				"p0": {}, "p1": tt.hand, "p2": {}, "p3": {},
			})
			state.JodhiCalls = []domain.JodhiCall{{
				PlayerID: "p1",
				Suit:     domain.SuitClubs,
				Points:   20,
				HasJack:  tt.claimJack,
			}}

			result, err := s.ChallengeJodhi(state, "p0", "p1", domain.SuitClubs)
			if err != nil {
				t.Fatalf("ChallengeJodhi: %v", err)
			}
			if result.WasValid != tt.wantValid {
				t.Errorf("wasValid = %v, want %v", result.WasValid, tt.wantValid)
			}
			if tt.wantValid {
				if result.WinningTeam != 1 || len(state.JodhiCalls) != 1 {
					t.Errorf("valid claim: %+v claims=%d", result, len(state.JodhiCalls))
				}
			} else {
				if result.WinningTeam != 0 {
					t.Errorf("false claim should pay the challenger: %+v", result)
				}
				if len(state.JodhiCalls) != 0 {
					t.Error("false claim must be stripped")
				}
			}
		})
	}
}

func TestChallengeJodhiNoClaim(t *testing.T) {
	s := newTestService()
	state := playingState(map[string][]domain.Card{
		"p0": {}, "p1": {}, "p2": {}, "p3": {},
	})
	if _, err := s.ChallengeJodhi(state, "p0", "p1", domain.SuitClubs); err != ErrNoSuchClaim {
		t.Errorf("ChallengeJodhi = %v, want ErrNoSuchClaim", err)
	}
}

func TestJodhiChallengeCountsPlayedCards(t *testing.T) {
	s := newTestService()
	state := playingState(map[string][]domain.Card{
		"p0": {card(domain.SuitClubs, domain.RankAce)},
		"p1": {card(domain.SuitClubs, domain.RankKing), card(domain.SuitClubs, domain.RankTen)},
		"p2": {}, "p3": {},
	})
	// p1 declared clubs and has since played the king into a trick.
	state.JodhiCalls = []domain.JodhiCall{{PlayerID: "p1", Suit: domain.SuitClubs, Points: 20}}
	state.AppendEvent(domain.GameEvent{
		Type: domain.EventTrick,
		Trick: &domain.Trick{
			Plays: []domain.Play{
				{PlayerID: "p1", Card: card(domain.SuitClubs, domain.RankQueen)},
			},
			LeadSuit: domain.SuitClubs,
			WinnerID: "p1",
		},
	}, 1)

	result, err := s.ChallengeJodhi(state, "p0", "p1", domain.SuitClubs)
	if err != nil {
		t.Fatalf("ChallengeJodhi: %v", err)
	}
	if !result.WasValid {
		t.Error("queen already played must still count toward the claim")
	}
}
