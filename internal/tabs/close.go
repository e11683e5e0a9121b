package tabs

import (
	"context"
	"fmt"
	"time"

	"folio/internal/logging"
	"folio/internal/types"
)

type CloseOutcome string

const (
	// CloseOutcomeClosed means the tab was removed immediately.
	CloseOutcomeClosed CloseOutcome = "closed"
	// CloseOutcomeConfirm means the tab is dirty and the engine is waiting
	// for a three-way decision via ResolveClose.
	CloseOutcomeConfirm CloseOutcome = "confirm"
	// CloseOutcomeDeferred means a save for the tab is in flight; removal
	// finalizes when the save settles.
	CloseOutcomeDeferred CloseOutcome = "deferred"
	// CloseOutcomeMissing means no such tab was open.
	CloseOutcomeMissing CloseOutcome = "missing"
)

type CloseDecision string

const (
	CloseDecisionSave    CloseDecision = "save"
	CloseDecisionDiscard CloseDecision = "discard"
	CloseDecisionCancel  CloseDecision = "cancel"
)

// PendingClose is the escalated close request for a dirty tab. The engine
// holds the state and performs no I/O; the caller renders the prompt and
// answers through ResolveClose.
type PendingClose struct {
	TabID       string
	Title       string
	RequestedAt time.Time
}

// CloseTab requests removal of a tab. A clean tab closes immediately and
// the most-recently-opened remaining tab becomes active. A dirty tab
// escalates to a pending three-way confirmation. A tab whose save is in
// flight defers until the save settles.
func (e *Engine) CloseTab(tabID string) CloseOutcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closeLocked(tabID)
}

// ClosePreview closes the active tab with the same escalation rules.
func (e *Engine) ClosePreview() CloseOutcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	active := e.store.active()
	if active == nil {
		return CloseOutcomeMissing
	}
	return e.closeLocked(active.ID)
}

func (e *Engine) closeLocked(tabID string) CloseOutcome {
	tab := e.store.byID(tabID)
	if tab == nil {
		return CloseOutcomeMissing
	}
	path := normalizePath(tab.Metadata.FilePath)
	if path != "" && e.saving[path] {
		e.closeRequested[tab.ID] = true
		e.logger.Debug("close deferred until save settles", logging.F("tab_id", tab.ID))
		return CloseOutcomeDeferred
	}
	if tab.IsDirty() {
		e.escalateCloseLocked(tab)
		return CloseOutcomeConfirm
	}
	e.removeTabLocked(tab)
	return CloseOutcomeClosed
}

// PendingCloseRequest returns the current escalated close, or nil.
func (e *Engine) PendingCloseRequest() *PendingClose {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pendingClose == nil {
		return nil
	}
	out := *e.pendingClose
	return &out
}

// ResolveClose answers a pending confirmation. Save persists then closes;
// a failed save aborts the close and the tab stays open and dirty. Discard
// closes without saving. Cancel keeps the tab as it is. The returned bool
// reports whether the tab ended up closed.
func (e *Engine) ResolveClose(ctx context.Context, decision CloseDecision) (bool, error) {
	e.mu.Lock()
	pending := e.pendingClose
	if pending == nil {
		e.mu.Unlock()
		return false, nil
	}
	e.pendingClose = nil
	tab := e.store.byID(pending.TabID)
	if tab == nil {
		// The tab vanished while the prompt was up (deleted upstream).
		e.mu.Unlock()
		return true, nil
	}

	switch decision {
	case CloseDecisionCancel:
		e.mu.Unlock()
		return false, nil
	case CloseDecisionDiscard:
		e.removeTabLocked(tab)
		e.mu.Unlock()
		return true, nil
	case CloseDecisionSave:
		id := tab.ID
		e.mu.Unlock()
		saved, err := e.SaveContent(ctx, id)
		if !saved {
			return false, err
		}
		e.mu.Lock()
		if cur := e.store.byID(id); cur != nil {
			e.removeTabLocked(cur)
		}
		e.mu.Unlock()
		return true, nil
	default:
		e.pendingClose = pending
		e.mu.Unlock()
		return false, fmt.Errorf("unknown close decision %q", decision)
	}
}

// removeTabLocked is the single removal path: it cancels pending stream
// state for the tab, drops bookkeeping, removes the tab and re-activates
// per the most-recently-opened rule.
func (e *Engine) removeTabLocked(tab *types.Tab) {
	path := normalizePath(tab.Metadata.FilePath)
	if path != "" {
		e.cancelPendingLocked(path)
	}
	delete(e.editing, tab.ID)
	delete(e.closeRequested, tab.ID)
	if e.pendingClose != nil && e.pendingClose.TabID == tab.ID {
		e.pendingClose = nil
	}
	e.store.remove(tab.ID)
	e.logger.Info("tab closed", logging.F("tab_id", tab.ID), logging.F("path", path))
	e.hub.Broadcast(Event{Kind: EventClosed, TabID: tab.ID, Path: path})
}

func (e *Engine) escalateCloseLocked(tab *types.Tab) {
	e.pendingClose = &PendingClose{
		TabID:       tab.ID,
		Title:       tab.DisplayTitle(),
		RequestedAt: time.Now().UTC(),
	}
	e.hub.Broadcast(Event{Kind: EventConfirmRequested, TabID: tab.ID, Path: normalizePath(tab.Metadata.FilePath)})
}
