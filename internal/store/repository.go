package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketSnapshots      = []byte("snapshots")
	bucketSnapshotIDs    = []byte("snapshot_ids")
	bucketWorkspaceState = []byte("workspace_state")
	keyWorkspaceState    = []byte("state")
)

// Repository bundles the daemon's persistent stores behind one bbolt file.
type Repository interface {
	Snapshots() SnapshotStore
	WorkspaceState() WorkspaceStateStore
	Close() error
}

type bboltRepository struct {
	db        *bolt.DB
	snapshots SnapshotStore
	workspace WorkspaceStateStore
}

func OpenRepository(dbPath string) (Repository, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, errors.New("repository db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &bboltRepository{
		db:        db,
		snapshots: &bboltSnapshotStore{db: db},
		workspace: &bboltWorkspaceStateStore{db: db},
	}, nil
}

func (r *bboltRepository) Snapshots() SnapshotStore {
	return r.snapshots
}

func (r *bboltRepository) WorkspaceState() WorkspaceStateStore {
	return r.workspace
}

func (r *bboltRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func initSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketSnapshots); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketSnapshotIDs); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketWorkspaceState); err != nil {
			return err
		}
		return nil
	})
}
