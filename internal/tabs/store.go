package tabs

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"

	"folio/internal/types"
)

// tabStore owns the ordered tab collection and the active pointer. All
// access is serialized by the Engine mutex; the store itself carries no
// locking. Slice order is creation order, which drives the
// most-recently-opened activation rule on close.
type tabStore struct {
	tabs     []*types.Tab
	activeID string
}

func newTabStore() *tabStore {
	return &tabStore{}
}

func (s *tabStore) byID(id string) *types.Tab {
	for _, tab := range s.tabs {
		if tab.ID == id {
			return tab
		}
	}
	return nil
}

// byPath finds the open tab whose normalized file path matches. Stream
// updates are keyed by path alone, so content type does not participate.
func (s *tabStore) byPath(path string) *types.Tab {
	if path == "" {
		return nil
	}
	for _, tab := range s.tabs {
		if normalizePath(tab.Metadata.FilePath) == path {
			return tab
		}
	}
	return nil
}

func (s *tabStore) append(tab *types.Tab) {
	s.tabs = append(s.tabs, tab)
}

func (s *tabStore) remove(id string) *types.Tab {
	for i, tab := range s.tabs {
		if tab.ID != id {
			continue
		}
		s.tabs = append(s.tabs[:i], s.tabs[i+1:]...)
		if s.activeID == id {
			s.activateMostRecent()
		}
		return tab
	}
	return nil
}

func (s *tabStore) activate(id string) bool {
	if s.byID(id) == nil {
		return false
	}
	s.activeID = id
	return true
}

// activateMostRecent points the active marker at the newest remaining tab,
// or clears it when the list is empty.
func (s *tabStore) activateMostRecent() {
	if len(s.tabs) == 0 {
		s.activeID = ""
		return
	}
	s.activeID = s.tabs[len(s.tabs)-1].ID
}

func (s *tabStore) active() *types.Tab {
	if s.activeID == "" {
		return nil
	}
	return s.byID(s.activeID)
}

func (s *tabStore) list() []*types.Tab {
	out := make([]*types.Tab, 0, len(s.tabs))
	for _, tab := range s.tabs {
		out = append(out, types.CloneTab(tab))
	}
	return out
}

func (s *tabStore) len() int {
	return len(s.tabs)
}

func newTabID() string {
	var buf [12]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "tab-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(buf[:])
}
