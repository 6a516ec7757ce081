package nakama

import (
	"context"
	"fmt"

	"thunee/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaSnapshotStore implements ports.SnapshotStore on Nakama's storage
// engine. Snapshots are system-owned and unreadable by clients.
type NakamaSnapshotStore struct {
	nk runtime.NakamaModule
}

// NewNakamaSnapshotStore creates a new snapshot store adapter.
func NewNakamaSnapshotStore(nk runtime.NakamaModule) *NakamaSnapshotStore {
	return &NakamaSnapshotStore{nk: nk}
}

// SaveSnapshot writes the serialized room state.
func (a *NakamaSnapshotStore) SaveSnapshot(ctx context.Context, roomID string, data []byte) error {
	writes := []*runtime.StorageWrite{
		{
			Collection:      snapshotCollection,
			Key:             snapshotKey + ":" + roomID,
			Value:           string(data),
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to save snapshot for room %s: %w", roomID, err)
	}
	return nil
}

// LoadSnapshot returns the stored snapshot, or nil when absent.
func (a *NakamaSnapshotStore) LoadSnapshot(ctx context.Context, roomID string) ([]byte, error) {
	reads := []*runtime.StorageRead{
		{
			Collection: snapshotCollection,
			Key:        snapshotKey + ":" + roomID,
		},
	}
	objects, err := a.nk.StorageRead(ctx, reads)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for room %s: %w", roomID, err)
	}
	if len(objects) == 0 {
		return nil, nil
	}
	return []byte(objects[0].Value), nil
}

// DeleteSnapshot removes the snapshot for a finished room.
func (a *NakamaSnapshotStore) DeleteSnapshot(ctx context.Context, roomID string) error {
	deletes := []*runtime.StorageDelete{
		{
			Collection: snapshotCollection,
			Key:        snapshotKey + ":" + roomID,
		},
	}
	if err := a.nk.StorageDelete(ctx, deletes); err != nil {
		return fmt.Errorf("failed to delete snapshot for room %s: %w", roomID, err)
	}
	return nil
}

var _ ports.SnapshotStore = (*NakamaSnapshotStore)(nil)
