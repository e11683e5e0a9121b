package app

import (
	tea "charm.land/bubbletea/v2"
)

func (m *Model) reduceMouse(msg tea.MouseMsg) tea.Cmd {
	if m.width <= 0 || m.height <= 0 {
		return nil
	}
	if m.confirm.IsOpen() {
		return m.reduceConfirmMouse(msg)
	}
	if m.history.IsOpen() {
		// The history picker is keyboard driven; clicks fall through only
		// to dismiss it.
		if _, ok := msg.(tea.MouseClickMsg); ok {
			m.history.Close()
		}
		return nil
	}
	if m.reduceWheelMouse(msg) {
		return nil
	}
	m.reduceTabBarMouse(msg)
	return nil
}

func (m *Model) reduceConfirmMouse(msg tea.MouseMsg) tea.Cmd {
	handled, choice := m.confirm.HandleMouse(msg, m.width, m.height)
	if !handled {
		return nil
	}
	return m.applyCloseChoice(choice)
}

func (m *Model) reduceWheelMouse(msg tea.MouseMsg) bool {
	wheel, ok := msg.(tea.MouseWheelMsg)
	if !ok {
		return false
	}
	switch wheel.Mouse().Button {
	case tea.MouseWheelUp:
		m.viewport.ScrollUp(3)
	case tea.MouseWheelDown:
		m.viewport.ScrollDown(3)
	default:
		return false
	}
	return true
}

func (m *Model) reduceTabBarMouse(msg tea.MouseMsg) {
	click, ok := msg.(tea.MouseClickMsg)
	if !ok {
		return
	}
	mouse := click.Mouse()
	if mouse.Button != tea.MouseLeft || mouse.Y != 0 {
		return
	}
	if tabID := tabAtColumn(m.tabSpans, mouse.X); tabID != "" {
		m.engine.SwitchTab(tabID)
		m.syncViewport()
	}
}
