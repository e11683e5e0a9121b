package app

import (
	"time"

	"folio/internal/tabs"
	"folio/internal/types"
)

type documentMsg struct {
	path string
	doc  *types.Document
	err  error
}

type savedMsg struct {
	tabID string
	ok    bool
	err   error
}

type closeResolvedMsg struct {
	decision tabs.CloseDecision
	closed   bool
	err      error
}

type historyMsg struct {
	tabID     string
	snapshots []types.Snapshot
	err       error
}

type restoredMsg struct {
	tabID      string
	snapshotID string
	err        error
}

type workspaceLoadedMsg struct {
	state *types.WorkspaceState
	err   error
}

type workspaceSavedMsg struct {
	err error
}

type streamConnectedMsg struct {
	ch     <-chan types.ContentUpdate
	cancel func()
	err    error
}

type streamUpdateMsg struct {
	update types.ContentUpdate
	ok     bool
}

type streamRetryMsg struct{}

type engineEventMsg struct {
	event tabs.Event
	ok    bool
}

type tickMsg time.Time
