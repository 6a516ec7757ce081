package domain

// EventType discriminates entries in the game event log.
type EventType string

const (
	EventRoundStart  EventType = "round-start"
	EventTrick       EventType = "trick"
	EventThuneeCall  EventType = "thunee-call"
	EventJodhiCall   EventType = "jodhi-call"
	EventChallenge   EventType = "challenge"
	EventKhanaakCall EventType = "khanaak-call"
	EventRoundEnd    EventType = "round-end"
)

// GameEvent is one entry in the append-only event log. Exactly one of the
// payload pointers is set, matching Type. The log is the source of truth for
// retroactive challenges and end-of-deal evaluation; completed tricks are
// recorded here with full play order.
type GameEvent struct {
	Type      EventType `json:"type"`
	Round     int       `json:"round"`
	Timestamp int64     `json:"timestamp"` // unix ms

	Trick      *Trick            `json:"trick,omitempty"`
	Thunee     *ThuneeCallEvent  `json:"thunee,omitempty"`
	Jodhi      *JodhiCall        `json:"jodhi,omitempty"`
	Challenge  *ChallengeResult  `json:"challenge,omitempty"`
	Khanaak    *KhanaakCallEvent `json:"khanaak,omitempty"`
	RoundStart *RoundStartEvent  `json:"roundStart,omitempty"`
	RoundEnd   *RoundEndEvent    `json:"roundEnd,omitempty"`
}

// ThuneeCallEvent records a Thunee declaration.
type ThuneeCallEvent struct {
	PlayerID string `json:"playerId"`
}

// KhanaakCallEvent records a resolved Khanaak claim.
type KhanaakCallEvent struct {
	PlayerID       string `json:"playerId"`
	Success        bool   `json:"success"`
	JodhiTotal     int    `json:"jodhiTotal"`
	OpponentPoints int    `json:"opponentPoints"`
	IsBackward     bool   `json:"isBackward"`
}

// RoundStartEvent records the start of a deal.
type RoundStartEvent struct {
	DealerID string `json:"dealerId"`
}

// RoundEndEvent records the scoring outcome of a deal.
type RoundEndEvent struct {
	WinningTeam int    `json:"winningTeam"`
	Balls       int    `json:"balls"`
	Reason      string `json:"reason"`
}

// AppendEvent stamps the event with the current round and appends it to the log.
func (s *GameState) AppendEvent(ev GameEvent, nowMillis int64) {
	ev.Round = s.GameRound
	ev.Timestamp = nowMillis
	s.EventLog = append(s.EventLog, ev)
}

// TrickEvents returns the completed tricks recorded for the given round in
// play order.
func (s *GameState) TrickEvents(round int) []*Trick {
	var out []*Trick
	for i := range s.EventLog {
		ev := &s.EventLog[i]
		if ev.Type == EventTrick && ev.Round == round && ev.Trick != nil {
			out = append(out, ev.Trick)
		}
	}
	return out
}
