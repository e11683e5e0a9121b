package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

func openTestRepository(t *testing.T) Repository {
	t.Helper()
	repo, err := OpenRepository(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})
	return repo
}

func TestSnapshotAppendAndGet(t *testing.T) {
	repo := openTestRepository(t)
	snapshots := repo.Snapshots()
	ctx := context.Background()

	stored, err := snapshots.Append(ctx, "/ws/readme.md", "# Hi")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if stored.ID == "" || stored.Hash == "" || stored.Size != len("# Hi") {
		t.Fatalf("incomplete snapshot record: %+v", stored)
	}
	if stored.SavedAt.IsZero() {
		t.Fatalf("saved_at not set")
	}

	got, err := snapshots.Get(ctx, stored.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Content != "# Hi" || got.FilePath != "/ws/readme.md" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestSnapshotListNewestFirstWithoutContent(t *testing.T) {
	repo := openTestRepository(t)
	snapshots := repo.Snapshots()
	ctx := context.Background()

	first, err := snapshots.Append(ctx, "/ws/readme.md", "v1")
	if err != nil {
		t.Fatalf("append v1: %v", err)
	}
	second, err := snapshots.Append(ctx, "/ws/readme.md", "v2")
	if err != nil {
		t.Fatalf("append v2: %v", err)
	}

	list, err := snapshots.ListByPath(ctx, "/ws/readme.md")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %s then %s", list[0].ID, list[1].ID)
	}
	for _, snap := range list {
		if snap.Content != "" {
			t.Fatalf("list must omit content, got %q", snap.Content)
		}
	}
}

func TestSnapshotDedupeConsecutiveIdentical(t *testing.T) {
	repo := openTestRepository(t)
	snapshots := repo.Snapshots()
	ctx := context.Background()

	first, err := snapshots.Append(ctx, "/ws/readme.md", "same")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	again, err := snapshots.Append(ctx, "/ws/readme.md", "same")
	if err != nil {
		t.Fatalf("append duplicate: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("duplicate content should return the existing snapshot, got %s and %s", first.ID, again.ID)
	}

	list, err := snapshots.ListByPath(ctx, "/ws/readme.md")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(list))
	}
}

func TestSnapshotDedupeOnlyAgainstNewest(t *testing.T) {
	repo := openTestRepository(t)
	snapshots := repo.Snapshots()
	ctx := context.Background()

	for _, content := range []string{"a", "b", "a"} {
		if _, err := snapshots.Append(ctx, "/ws/readme.md", content); err != nil {
			t.Fatalf("append %q: %v", content, err)
		}
	}
	list, err := snapshots.ListByPath(ctx, "/ws/readme.md")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("reverting to older content is a distinct version, got %d snapshots", len(list))
	}
}

func TestSnapshotCapPrunesOldest(t *testing.T) {
	repo := openTestRepository(t)
	snapshots := repo.Snapshots()
	ctx := context.Background()

	var firstID string
	for i := 0; i < maxSnapshotsPerPath+5; i++ {
		snap, err := snapshots.Append(ctx, "/ws/readme.md", fmt.Sprintf("v%d", i))
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if i == 0 {
			firstID = snap.ID
		}
	}

	list, err := snapshots.ListByPath(ctx, "/ws/readme.md")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != maxSnapshotsPerPath {
		t.Fatalf("expected %d snapshots after pruning, got %d", maxSnapshotsPerPath, len(list))
	}
	if _, err := snapshots.Get(ctx, firstID); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("pruned snapshot should be gone, got %v", err)
	}
}

func TestSnapshotGetMissing(t *testing.T) {
	repo := openTestRepository(t)
	if _, err := repo.Snapshots().Get(context.Background(), "nope"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestSnapshotPathIsolation(t *testing.T) {
	repo := openTestRepository(t)
	snapshots := repo.Snapshots()
	ctx := context.Background()

	if _, err := snapshots.Append(ctx, "/ws/a.md", "a"); err != nil {
		t.Fatalf("append a: %v", err)
	}
	if _, err := snapshots.Append(ctx, "/ws/a.md.bak", "b"); err != nil {
		t.Fatalf("append b: %v", err)
	}

	list, err := snapshots.ListByPath(ctx, "/ws/a.md")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].FilePath != "/ws/a.md" {
		t.Fatalf("prefix leak across paths: %+v", list)
	}
}

func TestSnapshotAppendRequiresPath(t *testing.T) {
	repo := openTestRepository(t)
	if _, err := repo.Snapshots().Append(context.Background(), "  ", "x"); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
