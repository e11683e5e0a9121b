package daemon

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"folio/internal/logging"
	"folio/internal/store"
	"folio/internal/types"
)

// DocumentService is the daemon's authority over files on disk. UIs
// never touch the filesystem directly; they read and write through
// this service so every save is atomic and lands in snapshot history.
type DocumentService struct {
	snapshots SnapshotStore
	logger    logging.Logger
}

func NewDocumentService(stores *Stores, logger logging.Logger) *DocumentService {
	if logger == nil {
		logger = logging.Nop()
	}
	service := &DocumentService{logger: logger}
	if stores != nil {
		service.snapshots = stores.Snapshots
	}
	return service
}

func (s *DocumentService) Load(ctx context.Context, filePath string) (*types.Document, error) {
	path, err := cleanDocumentPath(filePath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFoundError("document not found", err)
		}
		return nil, unavailableError("stat document", err)
	}
	if info.IsDir() {
		return nil, invalidError("path is a directory", nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, unavailableError("read document", err)
	}
	// Binary files reach the UI as a load failure, not as garbled text.
	if !utf8.Valid(data) {
		return nil, invalidError("document is not valid utf-8 text", nil)
	}
	return &types.Document{
		FilePath:    path,
		Content:     string(data),
		ContentType: types.ContentTypeForPath(path),
		Size:        info.Size(),
		ModTime:     info.ModTime().UTC(),
	}, nil
}

// Save writes the document atomically and appends a snapshot. A failed
// snapshot append does not fail the save; the bytes are already safe on
// disk and history is best effort.
func (s *DocumentService) Save(ctx context.Context, filePath, content string) (*types.Snapshot, error) {
	path, err := cleanDocumentPath(filePath)
	if err != nil {
		return nil, err
	}
	perm := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}
	if err := store.WriteFileAtomic(path, []byte(content), perm); err != nil {
		return nil, unavailableError("write document", err)
	}
	if s.snapshots == nil {
		return nil, nil
	}
	snapshot, err := s.snapshots.Append(ctx, path, content)
	if err != nil {
		s.logger.Warn("snapshot_append_failed",
			logging.F("path", path),
			logging.F("error", err),
		)
		return nil, nil
	}
	return snapshot, nil
}

func cleanDocumentPath(filePath string) (string, error) {
	path := strings.TrimSpace(filePath)
	if path == "" {
		return "", invalidError("file path is required", nil)
	}
	path = filepath.Clean(path)
	if !filepath.IsAbs(path) {
		return "", invalidError("file path must be absolute", nil)
	}
	return path, nil
}
