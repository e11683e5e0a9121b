package tabs

import (
	"time"

	"folio/internal/logging"
	"folio/internal/types"
)

// pendingUpdate holds the latest debounced content for one path plus the
// timer that will try to apply it. gen fences a timer that fires after it
// was replaced: the apply step only proceeds when its generation is still
// the current one for the path.
type pendingUpdate struct {
	content string
	timer   *time.Timer
	gen     uint64
}

// HandleUpdate feeds one external file-change notification into the engine.
// Write operations are debounced per path; delete operations bypass the
// debounce and close the tab for the path immediately. Updates for paths
// with no open tab are ignored.
func (e *Engine) HandleUpdate(update types.ContentUpdate) {
	op, ok := types.NormalizeUpdateOp(update.Op)
	if !ok {
		e.logger.Warn("stream update with unknown op dropped", logging.F("op", string(update.Op)))
		return
	}
	path := normalizePath(update.FilePath)
	if path == "" {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if op == types.UpdateOpDelete {
		e.cancelPendingLocked(path)
		tab := e.store.byPath(path)
		if tab == nil {
			return
		}
		e.logger.Info("closing tab for deleted file", logging.F("path", path), logging.F("tab_id", tab.ID))
		e.removeTabLocked(tab)
		return
	}

	if e.store.byPath(path) == nil {
		return
	}
	e.scheduleUpdateLocked(path, update.Content)
}

// scheduleUpdateLocked re-arms the debounce window for a path. A newer
// event replaces the pending one; only the latest content survives the
// window.
func (e *Engine) scheduleUpdateLocked(path, content string) {
	e.gen++
	gen := e.gen
	if prev := e.pending[path]; prev != nil {
		prev.timer.Stop()
	}
	update := &pendingUpdate{content: content, gen: gen}
	update.timer = time.AfterFunc(e.debounce, func() {
		e.applyPending(path, gen)
	})
	e.pending[path] = update
}

func (e *Engine) cancelPendingLocked(path string) {
	if prev := e.pending[path]; prev != nil {
		prev.timer.Stop()
		delete(e.pending, path)
	}
}

// applyPending runs when a debounce window elapses. The drop-or-apply
// decision is made here, against the state visible now, not the state at
// schedule time: a tab that went dirty, entered edit mode, or started
// saving since the event arrived wins over the stream.
func (e *Engine) applyPending(path string, gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	update := e.pending[path]
	if update == nil || update.gen != gen {
		return
	}
	delete(e.pending, path)

	tab := e.store.byPath(path)
	reason := ""
	switch {
	case tab == nil:
		reason = "no_tab"
	case e.saving[path]:
		reason = "saving"
	case e.editing[tab.ID]:
		reason = "editing"
	case tab.IsDirty():
		reason = "dirty"
	}
	if reason != "" {
		tabID := ""
		if tab != nil {
			tabID = tab.ID
		}
		e.logger.Debug("stream update dropped",
			logging.F("path", path),
			logging.F("reason", reason))
		e.hub.Broadcast(Event{Kind: EventDropped, TabID: tabID, Path: path})
		return
	}

	// The external writer becomes the new baseline.
	tab.Content = update.content
	tab.OriginalContent = update.content
	e.logger.Debug("stream update applied", logging.F("path", path), logging.F("tab_id", tab.ID))
	e.hub.Broadcast(Event{Kind: EventApplied, TabID: tab.ID, Path: path})
}
