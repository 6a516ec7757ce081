package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type GameConfig struct {
	// DefaultTableSize is the seat count for rooms created without an
	// explicit size (2 or 4).
	DefaultTableSize int `json:"default_table_size"`
	// BidTimerSeconds is the open-call countdown; each accepted bid resets it.
	BidTimerSeconds int `json:"bid_timer_seconds"`
	// TrickPauseSeconds is how long a completed trick stays on display.
	TrickPauseSeconds int `json:"trick_pause_seconds"`
	// WinThresholdBalls is the base ball count that wins a match.
	WinThresholdBalls int `json:"win_threshold_balls"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before adding bots to a solo human lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	// BotActionDelayTicks paces non-bidding bot actions, in match ticks.
	BotActionDelayTicks int `json:"bot_action_delay_ticks"`
	// WinRewardCoins is credited to each human on the winning team.
	WinRewardCoins int64 `json:"win_reward_coins"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or nil before a
// successful load. Callers fall back to their own defaults on nil.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetDefaultTableSize returns the configured table size, defaulting to 4.
func GetDefaultTableSize() int {
	if cfg == nil || (cfg.DefaultTableSize != 2 && cfg.DefaultTableSize != 4) {
		return 4
	}
	return cfg.DefaultTableSize
}

// GetBidTimerSeconds returns the bidding countdown, defaulting to 10.
func GetBidTimerSeconds() int {
	if cfg == nil || cfg.BidTimerSeconds <= 0 {
		return 10
	}
	return cfg.BidTimerSeconds
}

// GetTrickPauseSeconds returns the trick display pause, defaulting to 2.
func GetTrickPauseSeconds() int {
	if cfg == nil || cfg.TrickPauseSeconds <= 0 {
		return 2
	}
	return cfg.TrickPauseSeconds
}

// GetWinThresholdBalls returns the base win threshold, defaulting to 12.
func GetWinThresholdBalls() int {
	if cfg == nil || cfg.WinThresholdBalls <= 0 {
		return 12
	}
	return cfg.WinThresholdBalls
}

// GetBotAutoFillDelaySeconds returns how long a solo human lobby waits
// before bots are seated, defaulting to 15.
func GetBotAutoFillDelaySeconds() int {
	if cfg == nil || cfg.BotAutoFillDelaySeconds <= 0 {
		return 15
	}
	return cfg.BotAutoFillDelaySeconds
}

// GetBotActionDelayTicks returns the pacing delay for bot moves, defaulting
// to 3 ticks.
func GetBotActionDelayTicks() int {
	if cfg == nil || cfg.BotActionDelayTicks <= 0 {
		return 3
	}
	return cfg.BotActionDelayTicks
}

// GetWinRewardCoins returns the per-player win reward, defaulting to 100.
func GetWinRewardCoins() int64 {
	if cfg == nil || cfg.WinRewardCoins <= 0 {
		return 100
	}
	return cfg.WinRewardCoins
}
