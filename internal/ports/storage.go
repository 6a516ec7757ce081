package ports

import "context"

// SnapshotStore persists the authoritative state of a room between ticks so
// a match can be restored after a server restart.
type SnapshotStore interface {
	// SaveSnapshot writes the serialized room state, replacing any
	// previous snapshot for the room.
	SaveSnapshot(ctx context.Context, roomID string, data []byte) error

	// LoadSnapshot returns the stored snapshot, or nil when the room has
	// none.
	LoadSnapshot(ctx context.Context, roomID string) ([]byte, error)

	// DeleteSnapshot removes the snapshot once the room is finished.
	DeleteSnapshot(ctx context.Context, roomID string) error
}
