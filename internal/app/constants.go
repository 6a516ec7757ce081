package app

import "time"

const (
	// DefaultBidTimer is the open-call countdown; each accepted bid resets it.
	DefaultBidTimer = 10 * time.Second

	// DefaultTrickPause is how long a completed trick stays on display
	// before the next trick (or scoring) begins.
	DefaultTrickPause = 2 * time.Second

	// DefaultWinThreshold is the ball count that wins a match. A resolved
	// Khanaak raises the live threshold by one.
	DefaultWinThreshold = 12

	// TricksPerDeal is the number of tricks in one deal (or one half of a
	// 2-seat deal).
	TricksPerDeal = 6

	// ChallengePenaltyBalls is the flat award for a resolved challenge,
	// to whichever team wins it.
	ChallengePenaltyBalls = 4

	// ThuneeBalls is the flat award when an all-tricks contract resolves.
	ThuneeBalls = 4
)
