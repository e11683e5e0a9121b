package app

import (
	"path/filepath"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"folio/internal/client"
	"folio/internal/tabs"
	"folio/internal/types"
)

const (
	tickInterval      = 100 * time.Millisecond
	streamRetryDelay  = 2 * time.Second
	minViewportWidth  = 20
	minContentHeight  = 6
	statusLinePadding = 1
)

type uiMode int

const (
	uiModeView uiMode = iota
	uiModeEdit
)

type Model struct {
	docAPI       DocumentAPI
	workspaceAPI WorkspaceAPI
	streamAPI    StreamAPI
	engine       *tabs.Engine

	viewport viewport.Model
	editor   *EditorController
	confirm  *CloseConfirmController
	history  *HistoryController

	layerComposer LayerComposer

	mode   uiMode
	width  int
	height int
	status string

	tabSpans    []tabSpan
	viewedTabID string
	viewedText  string

	streamCh     <-chan types.ContentUpdate
	streamCancel func()
	engineCh     <-chan tabs.Event
	engineCancel func()

	openPath          string
	pendingActivePath string
	pendingLoads      int
	restoreWorkspace  bool
	quitting          bool

	pendingMouseCmd tea.Cmd
}

type ModelOption func(*Model)

// WithOpenPath opens the given document once the UI starts, activating its
// tab after any restored workspace tabs have loaded.
func WithOpenPath(path string) ModelOption {
	return func(m *Model) {
		m.openPath = path
	}
}

// WithoutWorkspaceRestore skips reopening the previous session's tabs.
func WithoutWorkspaceRestore() ModelOption {
	return func(m *Model) {
		m.restoreWorkspace = false
	}
}

func WithLayerComposer(composer LayerComposer) ModelOption {
	return func(m *Model) {
		if composer != nil {
			m.layerComposer = composer
		}
	}
}

// WithAPIs substitutes the narrow API interfaces, primarily for tests.
func WithAPIs(doc DocumentAPI, workspace WorkspaceAPI, stream StreamAPI) ModelOption {
	return func(m *Model) {
		if doc != nil {
			m.docAPI = doc
		}
		if workspace != nil {
			m.workspaceAPI = workspace
		}
		if stream != nil {
			m.streamAPI = stream
		}
	}
}

func NewModel(api *ClientAPI, engine *tabs.Engine, opts ...ModelOption) Model {
	vp := viewport.New(viewport.WithWidth(minViewportWidth), viewport.WithHeight(minContentHeight-1))
	vp.SetContent(noDocumentsMessage)

	m := Model{
		engine:           engine,
		viewport:         vp,
		editor:           NewEditorController(minViewportWidth, minContentHeight-1),
		confirm:          NewCloseConfirmController(),
		history:          NewHistoryController(),
		layerComposer:    NewTextLayerComposer(),
		mode:             uiModeView,
		restoreWorkspace: true,
	}
	if api != nil {
		m.docAPI = api
		m.workspaceAPI = api
		m.streamAPI = api
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the UI against a running daemon. The engine saves through the
// client gateway; stream updates and restored workspace tabs arrive through
// the same client.
func Run(c *client.Client, debounce time.Duration, opts ...ModelOption) error {
	engine := tabs.NewEngine(client.NewGateway(c), tabs.WithDebounce(debounce))
	defer engine.Close()
	model := NewModel(NewClientAPI(c), engine, opts...)
	p := tea.NewProgram(&model)
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	events, cancel := m.engine.Subscribe()
	m.engineCh = events
	m.engineCancel = cancel

	cmds := []tea.Cmd{listenEngineCmd(m.engineCh), connectStreamCmd(m.streamAPI), tickCmd()}
	if m.restoreWorkspace {
		cmds = append(cmds, loadWorkspaceCmd(m.workspaceAPI))
	} else if m.openPath != "" {
		m.pendingActivePath = m.openPath
		m.pendingLoads = 1
		cmds = append(cmds, loadDocumentCmd(m.docAPI, m.openPath))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tickMsg:
		m.syncViewport()
		return m, tickCmd()
	case documentMsg:
		return m, m.handleDocument(msg)
	case savedMsg:
		m.handleSaved(msg)
		return m, nil
	case closeResolvedMsg:
		m.handleCloseResolved(msg)
		return m, nil
	case historyMsg:
		if m.history.IsOpen() && m.history.TabID() == msg.tabID {
			m.history.SetSnapshots(msg.snapshots, msg.err)
		}
		return m, nil
	case restoredMsg:
		if msg.err != nil {
			m.status = "restore failed: " + msg.err.Error()
		} else {
			m.status = "version restored; save to keep it"
		}
		m.syncViewport()
		return m, nil
	case workspaceLoadedMsg:
		return m, m.handleWorkspaceLoaded(msg)
	case workspaceSavedMsg:
		if m.quitting {
			return m, m.shutdownCmd()
		}
		if msg.err != nil {
			m.status = "workspace save failed: " + msg.err.Error()
		}
		return m, nil
	case streamConnectedMsg:
		if msg.err != nil {
			m.status = "stream unavailable: " + msg.err.Error()
			return m, retryStreamCmd()
		}
		m.streamCh = msg.ch
		m.streamCancel = msg.cancel
		return m, listenStreamCmd(m.streamCh)
	case streamRetryMsg:
		return m, connectStreamCmd(m.streamAPI)
	case streamUpdateMsg:
		return m, m.handleStreamUpdate(msg)
	case engineEventMsg:
		return m, m.handleEngineEvent(msg)
	case tea.KeyPressMsg:
		return m, m.reduceKey(msg)
	case tea.MouseClickMsg, tea.MouseWheelMsg:
		cmd := m.reduceMouse(msg.(tea.MouseMsg))
		return m, cmd
	}

	if m.mode == uiModeEdit {
		return m, m.editor.Update(msg)
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	bodyHeight := max(minContentHeight-2, height-2)
	bodyWidth := max(minViewportWidth, width)
	m.viewport.SetWidth(bodyWidth)
	m.viewport.SetHeight(bodyHeight)
	m.editor.Resize(bodyWidth, bodyHeight)
}

func (m *Model) handleDocument(msg documentMsg) tea.Cmd {
	if m.pendingLoads > 0 {
		m.pendingLoads--
	}
	if msg.err != nil {
		m.openLoadFailure(msg.path, msg.err)
	} else {
		meta := types.TabMetadata{
			FilePath: msg.doc.FilePath,
			FileName: filepath.Base(msg.doc.FilePath),
		}
		if _, err := m.engine.OpenPreview(msg.doc.Content, msg.doc.ContentType, meta); err != nil {
			m.status = "open failed: " + err.Error()
		} else {
			m.status = "opened " + msg.doc.FilePath
		}
	}
	if m.pendingLoads == 0 && m.pendingActivePath != "" {
		m.activateByPath(m.pendingActivePath)
		m.pendingActivePath = ""
	}
	m.syncViewport()
	return nil
}

// openLoadFailure keeps the load-failed document visible as a tab in its
// terminal error state. An already open tab keeps its last content.
func (m *Model) openLoadFailure(path string, err error) {
	meta := types.TabMetadata{FilePath: path, FileName: filepath.Base(path)}
	contentType := types.ContentTypeForPath(path)
	existing := m.engine.FindPreviewTab(contentType, "", meta)
	if existing == nil {
		opened, openErr := m.engine.OpenPreview("", contentType, meta)
		if openErr != nil {
			m.status = "load failed: " + err.Error()
			return
		}
		existing = opened
	}
	m.engine.SetLoadError(existing.ID, err.Error())
	m.status = "load failed: " + err.Error()
}

func (m *Model) activateByPath(path string) {
	for _, tab := range m.engine.Tabs() {
		if tab.Metadata.FilePath == path {
			m.engine.SwitchTab(tab.ID)
			return
		}
	}
}

func (m *Model) handleSaved(msg savedMsg) {
	if msg.err != nil {
		m.status = "save failed: " + msg.err.Error()
		return
	}
	if !msg.ok {
		m.status = "save rejected"
		return
	}
	if tab := m.engine.ActiveTab(); tab != nil {
		m.status = "saved " + tab.DisplayTitle()
	} else {
		m.status = "saved"
	}
}

func (m *Model) handleCloseResolved(msg closeResolvedMsg) {
	if msg.err != nil {
		m.status = "close failed: " + msg.err.Error()
	} else if !msg.closed && msg.decision == tabs.CloseDecisionSave {
		m.status = "save failed; tab kept open"
	}
	m.syncViewport()
}

func (m *Model) handleWorkspaceLoaded(msg workspaceLoadedMsg) tea.Cmd {
	var cmds []tea.Cmd
	if msg.err == nil && msg.state != nil {
		for _, wsTab := range msg.state.Tabs {
			if wsTab.FilePath == "" {
				continue
			}
			m.pendingLoads++
			if wsTab.Active && m.pendingActivePath == "" {
				m.pendingActivePath = wsTab.FilePath
			}
			cmds = append(cmds, loadDocumentCmd(m.docAPI, wsTab.FilePath))
		}
	} else if msg.err != nil {
		m.status = "workspace restore failed: " + msg.err.Error()
	}
	if m.openPath != "" {
		m.pendingLoads++
		m.pendingActivePath = m.openPath
		cmds = append(cmds, loadDocumentCmd(m.docAPI, m.openPath))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleStreamUpdate(msg streamUpdateMsg) tea.Cmd {
	if !msg.ok {
		m.streamCh = nil
		if m.streamCancel != nil {
			m.streamCancel()
			m.streamCancel = nil
		}
		if m.quitting {
			return nil
		}
		m.status = "updates stream closed; reconnecting"
		return retryStreamCmd()
	}
	m.engine.HandleUpdate(msg.update)
	if msg.update.Op == types.UpdateOpDelete {
		m.status = "deleted " + msg.update.FilePath
	}
	m.syncViewport()
	return listenStreamCmd(m.streamCh)
}

func (m *Model) handleEngineEvent(msg engineEventMsg) tea.Cmd {
	if !msg.ok {
		return nil
	}
	switch msg.event.Kind {
	case tabs.EventConfirmRequested:
		m.openCloseConfirm()
	case tabs.EventSaveFailed:
		m.status = "save failed for " + msg.event.Path
	case tabs.EventApplied:
		if m.status == "" {
			m.status = "updated " + msg.event.Path
		}
	case tabs.EventClosed:
		if m.history.IsOpen() && m.history.TabID() == msg.event.TabID {
			m.history.Close()
		}
		if m.mode == uiModeEdit && m.editor.TabID() == msg.event.TabID {
			m.exitEditMode(false)
		}
	}
	m.syncViewport()
	return listenEngineCmd(m.engineCh)
}

func (m *Model) openCloseConfirm() {
	pending := m.engine.PendingCloseRequest()
	if pending == nil || m.confirm.IsOpen() {
		return
	}
	m.confirm.Open(pending.Title, "Save changes to \""+pending.Title+"\" before closing?")
}

// syncViewport pushes the active tab's content into the viewport when it
// changed. Scroll position survives in-place content updates but resets
// when another tab becomes active.
func (m *Model) syncViewport() {
	if m.mode == uiModeEdit {
		return
	}
	tab := m.engine.ActiveTab()
	text := previewText(tab)
	if tab == nil {
		if m.viewedTabID != "" || m.viewedText != text {
			m.viewport.SetContent(text)
			m.viewedTabID = ""
			m.viewedText = text
		}
		return
	}
	if tab.ID == m.viewedTabID && text == m.viewedText {
		return
	}
	switched := tab.ID != m.viewedTabID
	m.viewport.SetContent(text)
	if switched {
		m.viewport.GotoTop()
	}
	m.viewedTabID = tab.ID
	m.viewedText = text
}

func (m *Model) enterEditMode() tea.Cmd {
	tab := m.engine.ActiveTab()
	if tab == nil {
		m.status = "nothing to edit"
		return nil
	}
	if tab.LoadError != "" {
		m.status = "cannot edit a document that failed to load"
		return nil
	}
	m.mode = uiModeEdit
	m.engine.SetEditing(tab.ID, true)
	m.status = "editing " + tab.DisplayTitle()
	return m.editor.Open(tab.ID, tab.Content)
}

// exitEditMode leaves the editor. When apply is set the buffer becomes the
// tab's content as a user edit; otherwise the buffer is discarded.
func (m *Model) exitEditMode(apply bool) {
	tabID := m.editor.TabID()
	if apply && tabID != "" {
		m.engine.UpdateContent(m.editor.Value(), tabID)
	}
	if tabID != "" {
		m.engine.SetEditing(tabID, false)
	}
	m.editor.Close()
	m.mode = uiModeView
	m.viewedTabID = ""
	m.syncViewport()
}

func (m *Model) requestQuit() tea.Cmd {
	if m.quitting {
		return nil
	}
	m.quitting = true
	if cmd := saveWorkspaceCmd(m.workspaceAPI, m.workspaceSnapshot()); cmd != nil {
		return cmd
	}
	return m.shutdownCmd()
}

// workspaceSnapshot captures the open tabs for the next session. Pathless
// tabs cannot be reopened and are skipped.
func (m *Model) workspaceSnapshot() *types.WorkspaceState {
	active := m.engine.ActiveTab()
	state := &types.WorkspaceState{SavedAt: time.Now().UTC()}
	for _, tab := range m.engine.Tabs() {
		if tab.Metadata.FilePath == "" {
			continue
		}
		state.Tabs = append(state.Tabs, types.WorkspaceTab{
			FilePath:    tab.Metadata.FilePath,
			ContentType: tab.ContentType,
			Title:       tab.Metadata.Title,
			Active:      active != nil && tab.ID == active.ID,
		})
	}
	return state
}

func (m *Model) shutdownCmd() tea.Cmd {
	if m.streamCancel != nil {
		m.streamCancel()
		m.streamCancel = nil
	}
	if m.engineCancel != nil {
		m.engineCancel()
		m.engineCancel = nil
	}
	return tea.Quit
}
