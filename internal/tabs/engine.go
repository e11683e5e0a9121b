package tabs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"folio/internal/logging"
	"folio/internal/types"
)

const defaultDebounce = 500 * time.Millisecond

var ErrNoDocument = errors.New("no open document with a file path")

// Engine owns all tab state. Every mutation flows through its methods under
// one mutex; debounce timers and stream events re-check dirty, saving and
// editing state under the same mutex at apply time, so arbitration never
// depends on call ordering.
type Engine struct {
	mu      sync.Mutex
	store   *tabStore
	gateway Gateway
	hub     *eventHub
	logger  logging.Logger

	debounce time.Duration
	gen      uint64
	pending  map[string]*pendingUpdate

	// saving is the save-in-progress set, keyed by normalized path. It is
	// registered before the gateway call starts and cleared when the call
	// settles, success or not.
	saving map[string]bool

	// editing marks tabs whose content the user has taken ownership of;
	// stream updates for their paths are suppressed outright.
	editing map[string]bool

	// closeRequested defers tab removal until an in-flight save settles.
	closeRequested map[string]bool

	pendingClose *PendingClose
}

type Option func(*Engine)

func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithDebounce(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.debounce = d
		}
	}
}

func NewEngine(gateway Gateway, opts ...Option) *Engine {
	e := &Engine{
		store:          newTabStore(),
		gateway:        gateway,
		hub:            newEventHub(),
		logger:         logging.Nop(),
		debounce:       defaultDebounce,
		pending:        make(map[string]*pendingUpdate),
		saving:         make(map[string]bool),
		editing:        make(map[string]bool),
		closeRequested: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe returns a channel of engine events and a cancel func. Events
// are dropped, not queued, when the subscriber falls behind.
func (e *Engine) Subscribe() (<-chan Event, func()) {
	return e.hub.Add()
}

// Close stops all pending debounce timers. In-flight saves are not
// cancelled; they settle on their own.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for path, update := range e.pending {
		update.timer.Stop()
		delete(e.pending, path)
	}
}

// OpenPreview shows content in a tab, reusing an existing tab when the
// identity resolver finds one for the same document. A reused tab is
// activated; its content is overwritten only when the stream arbitration
// rules allow (clean, not saving, not in edit mode). A new tab starts clean
// with the given content as baseline and becomes active.
func (e *Engine) OpenPreview(content string, contentType types.ContentType, meta types.TabMetadata) (*types.Tab, error) {
	kind, ok := types.NormalizeContentType(contentType)
	if !ok {
		return nil, fmt.Errorf("unknown content type %q", contentType)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if existing := findTab(e.store.tabs, kind, content, meta); existing != nil {
		e.store.activate(existing.ID)
		path := normalizePath(existing.Metadata.FilePath)
		if !existing.IsDirty() && !e.saving[path] && !e.editing[existing.ID] {
			existing.Content = content
			existing.OriginalContent = content
		}
		e.logger.Debug("preview reused tab", logging.F("tab_id", existing.ID))
		e.hub.Broadcast(Event{Kind: EventOpened, TabID: existing.ID, Path: path})
		return types.CloneTab(existing), nil
	}

	tab := &types.Tab{
		ID:              newTabID(),
		Content:         content,
		OriginalContent: content,
		ContentType:     kind,
		Metadata:        meta,
		OpenedAt:        time.Now().UTC(),
	}
	e.store.append(tab)
	e.store.activate(tab.ID)
	e.logger.Info("preview opened tab",
		logging.F("tab_id", tab.ID),
		logging.F("content_type", string(kind)),
		logging.F("path", normalizePath(meta.FilePath)))
	e.hub.Broadcast(Event{Kind: EventOpened, TabID: tab.ID, Path: normalizePath(meta.FilePath)})
	return types.CloneTab(tab), nil
}

// FindPreviewTab is the read-only identity lookup: it reports whether a tab
// already represents the document without opening or activating anything.
func (e *Engine) FindPreviewTab(contentType types.ContentType, content string, meta types.TabMetadata) *types.Tab {
	kind, ok := types.NormalizeContentType(contentType)
	if !ok {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return types.CloneTab(findTab(e.store.tabs, kind, content, meta))
}

// UpdateContent replaces a tab's displayed content with a user edit. An
// empty tabID targets the active tab; a missing tab is a no-op. Dirtiness
// is derived from the baseline comparison, so this never does more than a
// string assignment.
func (e *Engine) UpdateContent(content string, tabID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tab := e.resolveLocked(tabID)
	if tab == nil || tab.Content == content {
		return
	}
	tab.Content = content
	e.hub.Broadcast(Event{Kind: EventEdited, TabID: tab.ID, Path: normalizePath(tab.Metadata.FilePath)})
}

// SaveContent persists a tab through the gateway. An empty tabID targets
// the active tab. The tab's path joins the save-in-progress set before the
// gateway call and leaves it when the call settles, so a stream update
// arriving mid-save is dropped. On success the saved content becomes the
// new baseline; edits made while the save was in flight stay dirty. On
// failure the tab stays dirty and nothing is retried.
func (e *Engine) SaveContent(ctx context.Context, tabID string) (bool, error) {
	e.mu.Lock()
	tab := e.resolveLocked(tabID)
	if tab == nil {
		e.mu.Unlock()
		return false, nil
	}
	path := normalizePath(tab.Metadata.FilePath)
	if path == "" {
		e.mu.Unlock()
		e.logger.Debug("save skipped for pathless tab", logging.F("tab_id", tab.ID))
		return false, nil
	}
	if e.saving[path] {
		e.mu.Unlock()
		e.logger.Debug("save already in flight", logging.F("path", path))
		return false, nil
	}
	if e.gateway == nil {
		e.mu.Unlock()
		return false, errors.New("no persistence gateway configured")
	}
	id := tab.ID
	content := tab.Content
	e.saving[path] = true
	e.mu.Unlock()

	saved, err := e.gateway.Save(ctx, path, content)
	ok := saved && err == nil

	e.mu.Lock()
	delete(e.saving, path)
	cur := e.store.byID(id)
	if ok && cur != nil {
		cur.OriginalContent = content
	}
	wantClose := e.closeRequested[id]
	delete(e.closeRequested, id)

	if ok {
		e.logger.Info("document saved", logging.F("path", path), logging.F("tab_id", id))
		e.hub.Broadcast(Event{Kind: EventSaved, TabID: id, Path: path})
	} else {
		e.logger.Warn("document save failed", logging.F("path", path), logging.F("err", err))
		e.hub.Broadcast(Event{Kind: EventSaveFailed, TabID: id, Path: path})
	}

	// A close that arrived mid-save finalizes now that the save settled.
	if wantClose && cur != nil {
		if ok && !cur.IsDirty() {
			e.removeTabLocked(cur)
		} else {
			e.escalateCloseLocked(cur)
		}
	}
	e.mu.Unlock()
	return ok, err
}

// SetEditing marks or clears edit mode for a tab. While set, stream
// updates for the tab's path are suppressed regardless of dirty state.
func (e *Engine) SetEditing(tabID string, editing bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	tab := e.resolveLocked(tabID)
	if tab == nil {
		return
	}
	if editing {
		e.editing[tab.ID] = true
	} else {
		delete(e.editing, tab.ID)
	}
}

// SetLoadError puts a tab into its terminal error display state. The tab
// stays open showing the message; content is untouched.
func (e *Engine) SetLoadError(tabID, message string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	tab := e.resolveLocked(tabID)
	if tab == nil {
		return
	}
	tab.LoadError = message
	e.hub.Broadcast(Event{Kind: EventLoadError, TabID: tab.ID, Path: normalizePath(tab.Metadata.FilePath)})
}

// SwitchTab activates the named tab. Returns false for an unknown id.
func (e *Engine) SwitchTab(tabID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.store.activate(tabID) {
		return false
	}
	e.hub.Broadcast(Event{Kind: EventActivated, TabID: tabID})
	return true
}

func (e *Engine) Tabs() []*types.Tab {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.list()
}

func (e *Engine) ActiveTab() *types.Tab {
	e.mu.Lock()
	defer e.mu.Unlock()
	return types.CloneTab(e.store.active())
}

// LoadHistory fetches the snapshot history for a tab's document. An empty
// tabID targets the active tab.
func (e *Engine) LoadHistory(ctx context.Context, tabID string) ([]types.Snapshot, error) {
	e.mu.Lock()
	tab := e.resolveLocked(tabID)
	if tab == nil || normalizePath(tab.Metadata.FilePath) == "" {
		e.mu.Unlock()
		return nil, ErrNoDocument
	}
	path := normalizePath(tab.Metadata.FilePath)
	e.mu.Unlock()
	if e.gateway == nil {
		return nil, errors.New("no persistence gateway configured")
	}
	return e.gateway.LoadHistory(ctx, path)
}

// RestoreSnapshot fetches a historical version and applies it to the tab as
// a user edit: the tab goes dirty and an explicit save persists the
// restoration. The stream never overwrites it in the meantime.
func (e *Engine) RestoreSnapshot(ctx context.Context, tabID, snapshotID string) error {
	e.mu.Lock()
	tab := e.resolveLocked(tabID)
	if tab == nil {
		e.mu.Unlock()
		return ErrNoDocument
	}
	id := tab.ID
	e.mu.Unlock()

	if e.gateway == nil {
		return errors.New("no persistence gateway configured")
	}
	content, err := e.gateway.RestoreSnapshot(ctx, snapshotID)
	if err != nil {
		return err
	}
	e.UpdateContent(content, id)
	return nil
}

// resolveLocked maps an optional tab id to a tab: empty means active.
func (e *Engine) resolveLocked(tabID string) *types.Tab {
	if tabID == "" {
		return e.store.active()
	}
	return e.store.byID(tabID)
}
