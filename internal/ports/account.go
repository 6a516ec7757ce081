package ports

import "context"

// AccountPort updates player profiles on the backing platform.
type AccountPort interface {
	// UpdateProfile applies the given username and display name to the
	// account identified by userID.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}
