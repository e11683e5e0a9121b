package tabs

import (
	"testing"

	"folio/internal/types"
)

func storeWith(ids ...string) *tabStore {
	s := newTabStore()
	for _, id := range ids {
		s.append(&types.Tab{ID: id, Metadata: types.TabMetadata{FilePath: "/ws/" + id}})
		s.activate(id)
	}
	return s
}

func TestStoreActivateMostRecentAfterClosingActive(t *testing.T) {
	t.Parallel()

	s := storeWith("a", "b", "c")
	if s.active().ID != "c" {
		t.Fatalf("expected c active, got %s", s.active().ID)
	}

	s.remove("c")
	if s.active() == nil || s.active().ID != "b" {
		t.Fatalf("expected most-recently-opened remaining tab b, got %+v", s.active())
	}

	s.remove("b")
	if s.active() == nil || s.active().ID != "a" {
		t.Fatalf("expected a active, got %+v", s.active())
	}

	s.remove("a")
	if s.active() != nil {
		t.Fatalf("expected no active tab after last close")
	}
}

func TestStoreRemoveInactiveKeepsActive(t *testing.T) {
	t.Parallel()

	s := storeWith("a", "b", "c")
	s.remove("a")
	if s.active().ID != "c" {
		t.Fatalf("closing an inactive tab must not change activation, got %s", s.active().ID)
	}
	if s.len() != 2 {
		t.Fatalf("expected 2 tabs, got %d", s.len())
	}
}

func TestStoreByPathNormalizes(t *testing.T) {
	t.Parallel()

	s := newTabStore()
	s.append(&types.Tab{ID: "t1", Metadata: types.TabMetadata{FilePath: `C:\ws\a.md`}})
	if got := s.byPath("C:/ws/a.md"); got == nil || got.ID != "t1" {
		t.Fatalf("expected separator-insensitive lookup, got %+v", got)
	}
	if got := s.byPath(""); got != nil {
		t.Fatalf("empty path must not match, got %s", got.ID)
	}
}

func TestStoreListClones(t *testing.T) {
	t.Parallel()

	s := storeWith("a")
	list := s.list()
	list[0].Content = "mutated"
	if s.byID("a").Content != "" {
		t.Fatalf("list must clone tabs")
	}
}

func TestNewTabIDUnique(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		id := newTabID()
		if id == "" || seen[id] {
			t.Fatalf("duplicate or empty tab id %q", id)
		}
		seen[id] = true
	}
}
