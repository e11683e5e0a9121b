package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"

	"folio/internal/types"
)

type WorkspaceStateStore interface {
	Load(ctx context.Context) (*types.WorkspaceState, error)
	Save(ctx context.Context, state *types.WorkspaceState) error
}

type bboltWorkspaceStateStore struct {
	db *bolt.DB
}

func (s *bboltWorkspaceStateStore) Load(ctx context.Context) (*types.WorkspaceState, error) {
	state := &types.WorkspaceState{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketWorkspaceState)
		if b == nil {
			return nil
		}
		raw := b.Get(keyWorkspaceState)
		if len(raw) == 0 {
			return nil
		}
		return json.Unmarshal(raw, state)
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *bboltWorkspaceStateStore) Save(ctx context.Context, state *types.WorkspaceState) error {
	if state == nil {
		return errors.New("workspace state is required")
	}
	saved := types.CloneWorkspaceState(state)
	if saved.SavedAt.IsZero() {
		saved.SavedAt = time.Now().UTC()
	}
	raw, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketWorkspaceState)
		if b == nil {
			return errors.New("workspace state bucket missing")
		}
		return b.Put(keyWorkspaceState, raw)
	})
}
