package domain

// Phase represents the lifecycle stage of a Thunee game.
type Phase string

const (
	// PhaseWaiting is the pre-game state where players can still join.
	PhaseWaiting Phase = "waiting"
	// PhaseBidding is the open call window after the first four cards are dealt.
	PhaseBidding Phase = "bidding"
	// PhaseCalling is where the call winner picks a trump suit or calls Thunee.
	PhaseCalling Phase = "calling"
	// PhasePlaying is the trick-taking state.
	PhasePlaying Phase = "playing"
	// PhaseTrickComplete is the short pause displaying a completed trick.
	PhaseTrickComplete Phase = "trick-complete"
	// PhaseRoundEnd is the state after a deal has been scored.
	PhaseRoundEnd Phase = "round-end"
	// PhaseGameOver is the terminal state once a team reaches the win threshold.
	PhaseGameOver Phase = "game-over"
)

// Player holds state for one participant.
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Hand        []Card `json:"hand"`
	Team        int    `json:"team"` // 0 or 1
	Connected   bool   `json:"connected"`
	IsSpectator bool   `json:"isSpectator"`
	IsBot       bool   `json:"isBot"`
}

// NewPlayer returns a connected player with an empty hand.
func NewPlayer(id, name string, team int) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		Hand:      []Card{},
		Team:      team,
		Connected: true,
	}
}

// Play is a single card placed into a trick by a seat.
type Play struct {
	PlayerID string `json:"playerId"`
	Card     Card   `json:"card"`
}

// Trick is one circuit of plays. LeadSuit is empty until the first play and
// WinnerID is empty until the trick completes.
type Trick struct {
	Plays    []Play `json:"plays"`
	LeadSuit Suit   `json:"leadSuit"`
	WinnerID string `json:"winnerId"`
}

// NewTrick returns an empty trick.
func NewTrick() *Trick {
	return &Trick{Plays: []Play{}}
}

// TrickResult describes a completed trick for display.
type TrickResult struct {
	WinnerID    string `json:"winnerId"`
	WinnerName  string `json:"winnerName"`
	WinningCard Card   `json:"winningCard"`
	Points      int    `json:"points"`
	Reason      string `json:"reason"` // "trump" or "highest"
}

// BidState tracks the open call window for one deal.
type BidState struct {
	CurrentBid       int       `json:"currentBid"`
	BidderID         string    `json:"bidderId"`
	Passed           StringSet `json:"passed"`
	TimerEndsAt      int64     `json:"timerEndsAt"` // unix ms; 0 when no countdown is running
	DefaultTrumperID string    `json:"defaultTrumperId"`
	PreselectedTrump Suit      `json:"preselectedTrump"`
}

// NewBidState returns an empty bid state.
func NewBidState() *BidState {
	return &BidState{Passed: NewStringSet()}
}

// JodhiCall is a declared King+Queen holding. Points are fixed at declaration
// time from the claim; the truth of the claim is only examined if an opponent
// challenges it.
type JodhiCall struct {
	PlayerID string `json:"playerId"`
	Points   int    `json:"points"`
	Suit     Suit   `json:"suit"`
	HasJack  bool   `json:"hasJack"`
}

// TeamScore carries card points for the current deal and balls for the match.
type TeamScore struct {
	Balls      int `json:"balls"`
	CardPoints int `json:"cardPoints"`
}

// ChallengeResult records the outcome of a resolved challenge for display.
type ChallengeResult struct {
	ChallengerID string `json:"challengerId"`
	AccusedID    string `json:"accusedId"`
	Type         string `json:"type"` // "play" or "jodhi"
	Card         *Card  `json:"card,omitempty"`
	Suit         Suit   `json:"suit,omitempty"`
	WasValid     bool   `json:"wasValid"`
	Reason       string `json:"reason,omitempty"`
	WinningTeam  int    `json:"winningTeam"`
}

// BallAward records the most recent ball award for display.
type BallAward struct {
	Team   int    `json:"team"`
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

// GameState is the authoritative record for a single room. One instance
// exists per room and at most one command mutates it at a time.
type GameState struct {
	ID          string    `json:"id"`
	Phase       Phase     `json:"phase"`
	PlayerCount int       `json:"playerCount"` // 2 or 4
	Players     []*Player `json:"players"`
	Spectators  []*Player `json:"spectators"`

	DealerID  string `json:"dealerId"`
	DealRound int    `json:"dealRound"` // 2-seat variant deals in two parts: 1 or 2
	GameRound int    `json:"gameRound"`

	// IsKhanaakGame raises the win threshold to 13 once any Khanaak claim
	// has resolved this match, successful or not.
	IsKhanaakGame bool `json:"isKhanaakGame"`

	Bid *BidState `json:"bidState"`

	Trump           Suit   `json:"trump"` // empty until set; stays empty for Thunee
	TrumpCallerID   string `json:"trumpCallerId"`
	IsLastCardTrump bool   `json:"isLastCardTrump"`
	TrumpRevealed   bool   `json:"trumpRevealed"`

	ThuneeCallerID       string      `json:"thuneeCallerId"`
	JodhiCalls           []JodhiCall `json:"jodhiCalls"`
	JodhiWindow          bool        `json:"jodhiWindow"`
	LastTrickWinningTeam int         `json:"lastTrickWinningTeam"` // -1 before any trick is won

	CurrentTrick    *Trick       `json:"currentTrick"`
	TricksPlayed    int          `json:"tricksPlayed"`
	CurrentPlayerID string       `json:"currentPlayerId"`
	LastTrickResult *TrickResult `json:"lastTrickResult,omitempty"`

	Teams [2]TeamScore `json:"teams"`

	LastChallenge *ChallengeResult `json:"challengeResult,omitempty"`

	EventLog []GameEvent `json:"eventLog"`

	// Deck holds the 16 undealt cards between the two parts of a 2-seat deal.
	Deck []Card `json:"deck"`

	LastBallAward *BallAward `json:"lastBallAward,omitempty"`
}

// NewGameState returns a fresh room waiting for players.
func NewGameState(id string, playerCount int) *GameState {
	return &GameState{
		ID:                   id,
		Phase:                PhaseWaiting,
		PlayerCount:          playerCount,
		Players:              []*Player{},
		Spectators:           []*Player{},
		DealRound:            1,
		GameRound:            1,
		Bid:                  NewBidState(),
		JodhiCalls:           []JodhiCall{},
		LastTrickWinningTeam: -1,
		CurrentTrick:         NewTrick(),
		EventLog:             []GameEvent{},
		Deck:                 []Card{},
	}
}

// PlayerByID returns the seated player with the given id, or nil.
func (s *GameState) PlayerByID(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerIndex returns the seat index of the given player id, or -1.
func (s *GameState) PlayerIndex(id string) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// NextSeat returns the seat index after i in turn order.
func (s *GameState) NextSeat(i int) int {
	return (i + 1) % s.PlayerCount
}

// PrevSeat returns the seat index before i in turn order.
func (s *GameState) PrevSeat(i int) int {
	return (i + s.PlayerCount - 1) % s.PlayerCount
}

// TrumpTeam returns the trump caller's team, defaulting to 0 when nobody has
// called yet.
func (s *GameState) TrumpTeam() int {
	if p := s.PlayerByID(s.TrumpCallerID); p != nil {
		return p.Team
	}
	return 0
}

// OtherTeam returns the opposing team index.
func OtherTeam(team int) int {
	return 1 - team
}
