package domain

import "encoding/json"

// MarshalSnapshot serializes the full authoritative state, including hidden
// hands and the undealt deck. Snapshots are for server-side persistence only
// and must never be sent to clients.
func MarshalSnapshot(s *GameState) ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSnapshot restores a state previously produced by MarshalSnapshot.
func UnmarshalSnapshot(data []byte) (*GameState, error) {
	var s GameState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Bid == nil {
		s.Bid = NewBidState()
	}
	if s.Bid.Passed == nil {
		s.Bid.Passed = NewStringSet()
	}
	if s.CurrentTrick == nil {
		s.CurrentTrick = NewTrick()
	}
	return &s, nil
}
