package daemon

import (
	"context"
	"errors"
	"strings"

	"folio/internal/store"
	"folio/internal/types"
)

// SnapshotService exposes the save history of a document. Listings are
// metadata only; fetching a single snapshot returns its full content so
// a UI can restore it into the editor.
type SnapshotService struct {
	snapshots SnapshotStore
}

func NewSnapshotService(stores *Stores) *SnapshotService {
	service := &SnapshotService{}
	if stores != nil {
		service.snapshots = stores.Snapshots
	}
	return service
}

func (s *SnapshotService) List(ctx context.Context, filePath string) ([]*types.Snapshot, error) {
	if s.snapshots == nil {
		return nil, unavailableError("snapshot store not available", nil)
	}
	filePath = strings.TrimSpace(filePath)
	if filePath == "" {
		return nil, invalidError("path is required", nil)
	}
	list, err := s.snapshots.ListByPath(ctx, filePath)
	if err != nil {
		return nil, unavailableError("list snapshots", err)
	}
	return list, nil
}

func (s *SnapshotService) Get(ctx context.Context, id string) (*types.Snapshot, error) {
	if s.snapshots == nil {
		return nil, unavailableError("snapshot store not available", nil)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalidError("snapshot id is required", nil)
	}
	snapshot, err := s.snapshots.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			return nil, notFoundError("snapshot not found", err)
		}
		return nil, unavailableError("load snapshot", err)
	}
	return snapshot, nil
}
