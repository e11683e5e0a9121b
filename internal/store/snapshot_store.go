package store

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"folio/internal/types"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// maxSnapshotsPerPath caps history per document; the oldest entries are
// pruned first.
const maxSnapshotsPerPath = 100

type SnapshotStore interface {
	// Append records a new version of a file. A version identical to the
	// newest stored one is not duplicated; the existing snapshot is
	// returned instead.
	Append(ctx context.Context, filePath, content string) (*types.Snapshot, error)
	// ListByPath returns snapshot metadata newest first, without content.
	ListByPath(ctx context.Context, filePath string) ([]*types.Snapshot, error)
	// Get returns one snapshot with its full content.
	Get(ctx context.Context, id string) (*types.Snapshot, error)
}

// bboltSnapshotStore keys snapshots by path plus an ascending sequence so a
// single cursor range walks one document's history in order. A second
// bucket maps snapshot ids back to those keys.
type bboltSnapshotStore struct {
	db *bolt.DB
}

func snapshotKey(filePath string, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s\x00%020d", filePath, seq))
}

func snapshotPrefix(filePath string) []byte {
	return []byte(filePath + "\x00")
}

func contentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func (s *bboltSnapshotStore) Append(ctx context.Context, filePath, content string) (*types.Snapshot, error) {
	filePath = strings.TrimSpace(filePath)
	if filePath == "" {
		return nil, errors.New("snapshot file path is required")
	}

	snapshot := &types.Snapshot{
		ID:       uuid.NewString(),
		FilePath: filePath,
		Content:  content,
		Size:     len(content),
		Hash:     contentHash(content),
		SavedAt:  time.Now().UTC(),
	}

	var stored *types.Snapshot
	err := s.db.Update(func(tx *bolt.Tx) error {
		snapshots := tx.Bucket(bucketSnapshots)
		ids := tx.Bucket(bucketSnapshotIDs)
		if snapshots == nil || ids == nil {
			return errors.New("snapshot buckets missing")
		}

		if newest := newestForPath(snapshots, filePath); newest != nil && newest.Hash == snapshot.Hash {
			stored = newest
			return nil
		}

		seq, err := snapshots.NextSequence()
		if err != nil {
			return err
		}
		key := snapshotKey(filePath, seq)
		raw, err := json.Marshal(snapshot)
		if err != nil {
			return err
		}
		if err := snapshots.Put(key, raw); err != nil {
			return err
		}
		if err := ids.Put([]byte(snapshot.ID), key); err != nil {
			return err
		}
		stored = types.CloneSnapshot(snapshot)
		return pruneOldest(snapshots, ids, filePath)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *bboltSnapshotStore) ListByPath(ctx context.Context, filePath string) ([]*types.Snapshot, error) {
	filePath = strings.TrimSpace(filePath)
	out := make([]*types.Snapshot, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		snapshots := tx.Bucket(bucketSnapshots)
		if snapshots == nil {
			return nil
		}
		prefix := snapshotPrefix(filePath)
		cursor := snapshots.Cursor()
		for k, v := cursor.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = cursor.Next() {
			var snap types.Snapshot
			if err := json.Unmarshal(v, &snap); err != nil {
				return err
			}
			snap.Content = ""
			out = append(out, &snap)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Keys ascend by sequence; callers want newest first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *bboltSnapshotStore) Get(ctx context.Context, id string) (*types.Snapshot, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrSnapshotNotFound
	}
	var snap *types.Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		ids := tx.Bucket(bucketSnapshotIDs)
		snapshots := tx.Bucket(bucketSnapshots)
		if ids == nil || snapshots == nil {
			return ErrSnapshotNotFound
		}
		key := ids.Get([]byte(id))
		if key == nil {
			return ErrSnapshotNotFound
		}
		raw := snapshots.Get(key)
		if raw == nil {
			return ErrSnapshotNotFound
		}
		var decoded types.Snapshot
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return err
		}
		snap = &decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func newestForPath(snapshots *bolt.Bucket, filePath string) *types.Snapshot {
	prefix := snapshotPrefix(filePath)
	cursor := snapshots.Cursor()
	var raw []byte
	for k, v := cursor.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = cursor.Next() {
		raw = v
	}
	if raw == nil {
		return nil
	}
	var snap types.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil
	}
	return &snap
}

func pruneOldest(snapshots *bolt.Bucket, ids *bolt.Bucket, filePath string) error {
	prefix := snapshotPrefix(filePath)
	cursor := snapshots.Cursor()
	var keys [][]byte
	var snapIDs []string
	for k, v := cursor.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = cursor.Next() {
		var snap types.Snapshot
		if err := json.Unmarshal(v, &snap); err != nil {
			return err
		}
		keys = append(keys, append([]byte{}, k...))
		snapIDs = append(snapIDs, snap.ID)
	}
	for len(keys) > maxSnapshotsPerPath {
		if err := snapshots.Delete(keys[0]); err != nil {
			return err
		}
		if err := ids.Delete([]byte(snapIDs[0])); err != nil {
			return err
		}
		keys = keys[1:]
		snapIDs = snapIDs[1:]
	}
	return nil
}
