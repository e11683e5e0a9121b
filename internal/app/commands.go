package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"folio/internal/tabs"
	"folio/internal/types"
)

func loadDocumentCmd(api DocumentAPI, path string) tea.Cmd {
	if api == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		doc, err := api.LoadDocument(ctx, path)
		return documentMsg{path: path, doc: doc, err: err}
	}
}

func saveTabCmd(engine *tabs.Engine, tabID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		defer cancel()
		ok, err := engine.SaveContent(ctx, tabID)
		return savedMsg{tabID: tabID, ok: ok, err: err}
	}
}

func resolveCloseCmd(engine *tabs.Engine, decision tabs.CloseDecision) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		defer cancel()
		closed, err := engine.ResolveClose(ctx, decision)
		return closeResolvedMsg{decision: decision, closed: closed, err: err}
	}
}

func loadHistoryCmd(engine *tabs.Engine, tabID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		snapshots, err := engine.LoadHistory(ctx, tabID)
		return historyMsg{tabID: tabID, snapshots: snapshots, err: err}
	}
}

func restoreSnapshotCmd(engine *tabs.Engine, tabID, snapshotID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		err := engine.RestoreSnapshot(ctx, tabID, snapshotID)
		return restoredMsg{tabID: tabID, snapshotID: snapshotID, err: err}
	}
}

func loadWorkspaceCmd(api WorkspaceAPI) tea.Cmd {
	if api == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		state, err := api.LoadWorkspace(ctx)
		return workspaceLoadedMsg{state: state, err: err}
	}
}

func saveWorkspaceCmd(api WorkspaceAPI, state *types.WorkspaceState) tea.Cmd {
	if api == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		_, err := api.SaveWorkspace(ctx, state)
		return workspaceSavedMsg{err: err}
	}
}

// connectStreamCmd opens the daemon's update stream. The context is
// deliberately long-lived; the returned cancel closes the stream when the
// UI exits.
func connectStreamCmd(api StreamAPI) tea.Cmd {
	if api == nil {
		return nil
	}
	return func() tea.Msg {
		ch, cancel, err := api.UpdatesStream(context.Background())
		return streamConnectedMsg{ch: ch, cancel: cancel, err: err}
	}
}

// listenStreamCmd waits for the next stream update. The model re-issues it
// after every message, so exactly one receive is outstanding at a time.
func listenStreamCmd(ch <-chan types.ContentUpdate) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-ch
		return streamUpdateMsg{update: update, ok: ok}
	}
}

// listenEngineCmd waits for the next engine event. Debounced stream applies
// settle on timer goroutines inside the engine, so these events are what
// tells the UI to repaint between input messages.
func listenEngineCmd(ch <-chan tabs.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-ch
		return engineEventMsg{event: event, ok: ok}
	}
}

func retryStreamCmd() tea.Cmd {
	return tea.Tick(streamRetryDelay, func(time.Time) tea.Msg {
		return streamRetryMsg{}
	})
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
