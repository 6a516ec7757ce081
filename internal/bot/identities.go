package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

// BotIdentity is one entry of the bot account pool.
type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarIndex int    `json:"avatar_index"`
}

var (
	identities    []BotIdentity
	identityByID  map[string]BotIdentity
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

// LoadIdentities loads the bot profiles from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		if err := json.Unmarshal(data, &identities); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		identityByID = make(map[string]BotIdentity)
		for _, identity := range identities {
			if identity.UserID != "" {
				identityByID[identity.UserID] = identity
			}
		}
	})
	return loadErr
}

// ProvisionBots ensures the pool's accounts exist in Nakama and carry the
// is_bot metadata. Device authentication creates missing accounts.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) error {
	provisionOnce.Do(func() {
		for i := range identities {
			identity := &identities[i]
			if identity.DeviceID == "" {
				continue
			}

			userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if err != nil {
				logger.Error("ProvisionBots: authenticate %s: %v", identity.Username, err)
				continue
			}
			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{
				"is_bot":       true,
				"avatar_index": identity.AvatarIndex,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: update account %s: %v", userID, err)
			}

			identityByID[identity.UserID] = *identity
			logger.Info("ProvisionBots: %s (%s) ready", identity.DisplayName, userID)
		}
	})
	return nil
}

// GetBotIdentity returns a pool entry by index, wrapping past the pool size.
// An empty pool, or an entry not yet provisioned with a real account, yields
// a synthetic user id so a table can still fill.
func GetBotIdentity(index int) BotIdentity {
	if len(identities) == 0 {
		return BotIdentity{
			UserID:      fmt.Sprintf("bot-%d", index),
			DisplayName: fmt.Sprintf("Bot %d", index+1),
		}
	}
	identity := identities[index%len(identities)]
	if identity.UserID == "" {
		identity.UserID = fmt.Sprintf("bot-%d", index)
	}
	return identity
}

// GetBotDisplayName returns the display name for a bot ID, falling back to
// the username, or empty when the ID is not in the pool.
func GetBotDisplayName(userID string) string {
	identity, ok := identityByID[userID]
	if !ok {
		return ""
	}
	if identity.DisplayName == "" {
		return identity.Username
	}
	return identity.DisplayName
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	_, ok := identityByID[userID]
	return ok
}
