package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsBeforeLoad(t *testing.T) {
	if got := GetBidTimerSeconds(); got != 10 {
		t.Errorf("GetBidTimerSeconds() = %d, want 10", got)
	}
	if got := GetTrickPauseSeconds(); got != 2 {
		t.Errorf("GetTrickPauseSeconds() = %d, want 2", got)
	}
	if got := GetWinThresholdBalls(); got != 12 {
		t.Errorf("GetWinThresholdBalls() = %d, want 12", got)
	}
	if got := GetDefaultTableSize(); got != 4 {
		t.Errorf("GetDefaultTableSize() = %d, want 4", got)
	}
	if got := GetWinRewardCoins(); got != 100 {
		t.Errorf("GetWinRewardCoins() = %d, want 100", got)
	}
}

func TestLoadGameConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game_config.json")
	body := `{
		"default_table_size": 2,
		"bid_timer_seconds": 5,
		"trick_pause_seconds": 1,
		"win_threshold_balls": 6,
		"win_reward_coins": 250
	}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := LoadGameConfig(path); err != nil {
		t.Fatalf("LoadGameConfig: %v", err)
	}
	if got := GetBidTimerSeconds(); got != 5 {
		t.Errorf("GetBidTimerSeconds() = %d, want 5", got)
	}
	if got := GetDefaultTableSize(); got != 2 {
		t.Errorf("GetDefaultTableSize() = %d, want 2", got)
	}
	if got := GetWinRewardCoins(); got != 250 {
		t.Errorf("GetWinRewardCoins() = %d, want 250", got)
	}

	// sync.Once makes a second load a no-op.
	if err := LoadGameConfig(filepath.Join(t.TempDir(), "missing.json")); err != nil {
		t.Errorf("second load should reuse the first result, got %v", err)
	}
}
