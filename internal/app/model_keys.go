package app

import (
	tea "charm.land/bubbletea/v2"

	"folio/internal/tabs"
)

func (m *Model) reduceKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.confirm.IsOpen() {
		return m.reduceConfirmKey(msg)
	}
	if m.history.IsOpen() {
		return m.reduceHistoryKey(msg)
	}
	if m.mode == uiModeEdit {
		return m.reduceEditKey(msg)
	}
	return m.reduceNormalKey(msg)
}

func (m *Model) reduceConfirmKey(msg tea.KeyMsg) tea.Cmd {
	handled, choice := m.confirm.HandleKey(msg)
	if !handled {
		return nil
	}
	return m.applyCloseChoice(choice)
}

func (m *Model) applyCloseChoice(choice closeChoice) tea.Cmd {
	var decision tabs.CloseDecision
	switch choice {
	case closeChoiceSave:
		decision = tabs.CloseDecisionSave
	case closeChoiceDiscard:
		decision = tabs.CloseDecisionDiscard
	case closeChoiceCancel:
		decision = tabs.CloseDecisionCancel
	default:
		return nil
	}
	m.confirm.Close()
	return resolveCloseCmd(m.engine, decision)
}

func (m *Model) reduceHistoryKey(msg tea.KeyMsg) tea.Cmd {
	tabID := m.history.TabID()
	handled, snapshotID, restore := m.history.HandleKey(msg)
	if !handled {
		return nil
	}
	if restore {
		m.history.Close()
		m.status = "restoring version"
		return restoreSnapshotCmd(m.engine, tabID, snapshotID)
	}
	return nil
}

func (m *Model) reduceEditKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.exitEditMode(true)
		m.status = "edit applied; ctrl+s to save"
		return nil
	case "ctrl+s":
		tabID := m.editor.TabID()
		m.engine.UpdateContent(m.editor.Value(), tabID)
		m.status = "saving…"
		return saveTabCmd(m.engine, tabID)
	case "ctrl+c":
		return m.forceQuit()
	}
	return m.editor.Update(msg)
}

func (m *Model) reduceNormalKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return m.requestQuit()
	case "ctrl+c":
		return m.forceQuit()
	case "tab":
		m.cycleTab(1)
		return nil
	case "shift+tab":
		m.cycleTab(-1)
		return nil
	case "ctrl+s":
		if tab := m.engine.ActiveTab(); tab != nil {
			m.status = "saving " + tab.DisplayTitle() + "…"
			return saveTabCmd(m.engine, tab.ID)
		}
		return nil
	case "ctrl+w", "x":
		return m.closeActiveTab()
	case "e", "enter":
		return m.enterEditMode()
	case "v":
		return m.openHistory()
	case "r":
		return m.reloadActiveTab()
	case "c":
		m.copyActivePath()
		return nil
	case "y":
		m.copyActiveContent()
		return nil
	}
	if cmd, ok := m.jumpToTabKey(msg); ok {
		return cmd
	}
	if m.handleViewportScroll(msg) {
		return nil
	}
	return nil
}

func (m *Model) forceQuit() tea.Cmd {
	m.quitting = true
	return m.shutdownCmd()
}

func (m *Model) cycleTab(delta int) {
	tabList := m.engine.Tabs()
	if len(tabList) < 2 {
		return
	}
	active := m.engine.ActiveTab()
	if active == nil {
		return
	}
	index := 0
	for i, tab := range tabList {
		if tab.ID == active.ID {
			index = i
			break
		}
	}
	next := (index + delta + len(tabList)) % len(tabList)
	m.engine.SwitchTab(tabList[next].ID)
	m.syncViewport()
}

func (m *Model) jumpToTabKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	key := msg.String()
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return nil, false
	}
	index := int(key[0] - '1')
	tabList := m.engine.Tabs()
	if index >= len(tabList) {
		return nil, true
	}
	m.engine.SwitchTab(tabList[index].ID)
	m.syncViewport()
	return nil, true
}

func (m *Model) closeActiveTab() tea.Cmd {
	outcome := m.engine.ClosePreview()
	switch outcome {
	case tabs.CloseOutcomeConfirm:
		m.openCloseConfirm()
	case tabs.CloseOutcomeDeferred:
		m.status = "closing after save finishes"
	case tabs.CloseOutcomeClosed:
		m.status = ""
	}
	m.syncViewport()
	return nil
}

func (m *Model) openHistory() tea.Cmd {
	tab := m.engine.ActiveTab()
	if tab == nil {
		m.status = "no open document"
		return nil
	}
	if tab.Metadata.FilePath == "" {
		m.status = "no history for documents without a path"
		return nil
	}
	m.history.Open(tab.ID, tab.DisplayTitle())
	return loadHistoryCmd(m.engine, tab.ID)
}

func (m *Model) reloadActiveTab() tea.Cmd {
	tab := m.engine.ActiveTab()
	if tab == nil || tab.Metadata.FilePath == "" {
		m.status = "nothing to reload"
		return nil
	}
	m.status = "reloading " + tab.DisplayTitle()
	return loadDocumentCmd(m.docAPI, tab.Metadata.FilePath)
}

func (m *Model) copyActivePath() {
	tab := m.engine.ActiveTab()
	if tab == nil || tab.Metadata.FilePath == "" {
		m.status = "no path to copy"
		return
	}
	method, err := copyTextToClipboard(tab.Metadata.FilePath)
	if err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "copied " + tab.Metadata.FilePath + copyMethodSuffix(method)
}

func (m *Model) copyActiveContent() {
	tab := m.engine.ActiveTab()
	if tab == nil {
		m.status = "nothing to copy"
		return
	}
	method, err := copyTextToClipboard(tab.Content)
	if err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "copied contents of " + tab.DisplayTitle() + copyMethodSuffix(method)
}

// copyMethodSuffix marks copies that went through the terminal escape
// path, which matters over SSH where the system clipboard is remote.
func copyMethodSuffix(method clipboardMethod) string {
	if method == clipboardMethodOSC52 {
		return " (osc52)"
	}
	return ""
}

func (m *Model) handleViewportScroll(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "k":
		m.viewport.ScrollUp(1)
	case "down", "j":
		m.viewport.ScrollDown(1)
	case "pgup":
		m.viewport.PageUp()
	case "pgdown", " ", "space":
		m.viewport.PageDown()
	case "g", "home":
		m.viewport.GotoTop()
	case "G", "end":
		m.viewport.GotoBottom()
	default:
		return false
	}
	return true
}
