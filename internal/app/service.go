package app

import (
	"errors"
	"math/rand"
	"time"
)

// Service contains the Thunee use-cases operating on domain state. All
// methods mutate the passed state in place; callers own the per-room
// serialization guarantee.
type Service struct {
	rng      *rand.Rand
	now      func() time.Time
	bidTimer time.Duration
	winBase  int
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		rng:      rng,
		now:      time.Now,
		bidTimer: DefaultBidTimer,
		winBase:  DefaultWinThreshold,
	}
}

// SetClock overrides the wall clock, for tests and deterministic replays.
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// SetBidTimer overrides the bidding countdown duration.
func (s *Service) SetBidTimer(d time.Duration) {
	if d > 0 {
		s.bidTimer = d
	}
}

// SetWinThreshold overrides the base ball count needed to win.
func (s *Service) SetWinThreshold(n int) {
	if n > 0 {
		s.winBase = n
	}
}

func (s *Service) nowMillis() int64 {
	return s.now().UnixMilli()
}

var (
	ErrWrongPhase         = errors.New("command not allowed in current phase")
	ErrUnknownPlayer      = errors.New("player not found")
	ErrNotEnoughPlayers   = errors.New("not all seats are filled")
	ErrInvalidBid         = errors.New("invalid bid amount")
	ErrAlreadyPassed      = errors.New("player already passed")
	ErrNoCountdown        = errors.New("no bidding countdown to pass on")
	ErrNotPreselector     = errors.New("player may not preselect trump")
	ErrNotTrumpCaller     = errors.New("only the trump caller may act")
	ErrNotYourTurn        = errors.New("not this player's turn")
	ErrCardNotHeld        = errors.New("card not in hand")
	ErrNoJodhiWindow      = errors.New("no declaration window open")
	ErrWrongTeam          = errors.New("player's team may not make this call")
	ErrDuplicateJodhi     = errors.New("jodhi already declared for this suit")
	ErrSameTeamChallenge  = errors.New("cannot challenge a teammate")
	ErrNothingToChallenge = errors.New("accused has not played this round")
	ErrNoSuchClaim        = errors.New("no matching jodhi claim")
	ErrNoJodhiForKhanaak  = errors.New("khanaak requires a declared jodhi")
	ErrNotLastTrick       = errors.New("khanaak is only available on the final trick")
)
