package ports

import "context"

// WelcomeBonusPort seeds a new account's coin balance, at most once per
// user no matter how often onboarding runs.
type WelcomeBonusPort interface {
	// GrantWelcomeBonusOnce credits the one-time starting coins. granted is
	// false when the user already received them.
	GrantWelcomeBonusOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (granted bool, err error)
}
