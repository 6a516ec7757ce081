package domain

import (
	"strings"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewGameState("room-1", 4)
	s.Players = append(s.Players,
		NewPlayer("p0", "Avi", 0),
		NewPlayer("p1", "Ben", 1),
	)
	s.Players[0].Hand = []Card{{Suit: SuitHearts, Rank: RankJack}}
	s.Phase = PhaseBidding
	s.Bid.CurrentBid = 60
	s.Bid.BidderID = "p0"
	s.Bid.Passed.Add("p1")
	s.Bid.TimerEndsAt = 1234567890
	s.Trump = SuitClubs
	s.JodhiCalls = append(s.JodhiCalls, JodhiCall{PlayerID: "p0", Suit: SuitClubs, Points: 40})
	s.AppendEvent(GameEvent{Type: EventRoundStart, RoundStart: &RoundStartEvent{DealerID: "p0"}}, 1000)

	data, err := MarshalSnapshot(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"$kind":"set"`) {
		t.Errorf("passed set should marshal as tagged object, got %s", data)
	}

	restored, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if restored.Phase != PhaseBidding {
		t.Errorf("phase = %v, want %v", restored.Phase, PhaseBidding)
	}
	if !restored.Bid.Passed.Has("p1") {
		t.Error("passed set lost its member in the round trip")
	}
	if restored.Bid.CurrentBid != 60 || restored.Bid.BidderID != "p0" {
		t.Errorf("bid state = %+v", restored.Bid)
	}
	if len(restored.Players[0].Hand) != 1 {
		t.Errorf("hand lost in round trip: %+v", restored.Players[0].Hand)
	}
	if len(restored.EventLog) != 1 || restored.EventLog[0].Type != EventRoundStart {
		t.Errorf("event log = %+v", restored.EventLog)
	}

	// A second round trip must be byte-identical.
	again, err := MarshalSnapshot(restored)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if string(again) != string(data) {
		t.Error("snapshot is not stable across round trips")
	}
}

func TestUnmarshalSnapshotEmptyObject(t *testing.T) {
	s, err := UnmarshalSnapshot([]byte(`{}`))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Bid == nil || s.Bid.Passed == nil || s.CurrentTrick == nil {
		t.Error("defaults not filled for missing fields")
	}
}

func TestStringSetRejectsWrongKind(t *testing.T) {
	var set StringSet
	if err := set.UnmarshalJSON([]byte(`{"$kind":"map","members":[]}`)); err == nil {
		t.Error("expected error for wrong $kind")
	}
}
