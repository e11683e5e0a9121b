package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"folio/internal/types"
)

const noDocumentsMessage = "No open documents.\n\nDocuments appear here when the assistant writes files\nor when you run: folio ui --open <path>"

func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.WindowTitle = "folio"
	if m.width <= 0 || m.height <= 0 {
		v.SetContent("Loading...")
		return v
	}

	active := m.engine.ActiveTab()
	activeID := ""
	if active != nil {
		activeID = active.ID
	}
	tabBar, spans := renderTabBar(m.engine.Tabs(), activeID, m.width)
	m.tabSpans = spans

	body := m.renderBody(active)
	statusLine := m.renderStatusLineView()

	frame := lipgloss.JoinVertical(lipgloss.Left, tabBar, body, statusLine)
	frame = m.overlayTransientViews(frame)
	v.SetContent(frame)
	return v
}

func (m *Model) renderBody(active *types.Tab) string {
	if m.mode == uiModeEdit {
		header := headerStyle.Render(m.editHeader(active))
		return lipgloss.JoinVertical(lipgloss.Left, header, m.editor.View())
	}
	m.syncViewport()
	return m.viewport.View()
}

func (m *Model) editHeader(active *types.Tab) string {
	title := ""
	if active != nil {
		title = active.DisplayTitle()
	}
	return editBadgeStyle.Render(" EDIT ") + " " + truncateToWidth(title, max(1, m.width-8))
}

func (m *Model) renderStatusLineView() string {
	helpText := m.helpText()
	help := helpStyle.Render(helpText)
	status := statusStyle.Render(m.status)
	return renderStatusLine(m.width, help, status)
}

func (m *Model) helpText() string {
	switch {
	case m.confirm.IsOpen():
		return "←/→ choose  enter confirm  esc cancel"
	case m.history.IsOpen():
		return "↑/↓ select  enter restore  esc close"
	case m.mode == uiModeEdit:
		return "esc apply  ctrl+s save"
	default:
		return "e edit  ctrl+s save  v history  x close  tab next  q quit"
	}
}

func renderStatusLine(width int, help, status string) string {
	if width <= 0 {
		return help + " " + status
	}
	helpWidth := lipgloss.Width(help)
	statusWidth := lipgloss.Width(status)
	padding := width - helpWidth - statusWidth
	if padding < statusLinePadding {
		padding = statusLinePadding
	}
	return help + strings.Repeat(" ", padding) + status
}

func (m *Model) overlayTransientViews(frame string) string {
	if frame == "" {
		return frame
	}
	composer := m.layerComposer
	if composer == nil {
		composer = NewTextLayerComposer()
		m.layerComposer = composer
	}
	overlays := make([]LayerOverlay, 0, 2)
	if m.history.IsOpen() {
		block, row := m.history.View(m.width, m.height)
		if block != "" {
			overlays = append(overlays, LayerOverlay{Row: row, Block: block})
		}
	}
	if m.confirm.IsOpen() {
		block, row := m.confirm.View(m.width, m.height)
		if block != "" {
			overlays = append(overlays, LayerOverlay{Row: row, Block: block})
		}
	}
	if len(overlays) == 0 {
		return frame
	}
	return composer.Compose(frame, overlays)
}

// previewText is the read-mode body for a tab. A load failure is terminal
// for the tab: the error text replaces the document until the tab closes.
func previewText(tab *types.Tab) string {
	if tab == nil {
		return noDocumentsMessage
	}
	if tab.LoadError != "" {
		return loadErrorStyle.Render("Could not load "+tab.DisplayTitle()) + "\n\n" + tab.LoadError
	}
	if tab.Content == "" {
		return placeholderStyle.Render("(empty document)")
	}
	return tab.Content
}
