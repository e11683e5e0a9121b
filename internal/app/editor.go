package app

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// EditorController wraps the textarea used for in-place document editing.
// While it is open the engine has the tab marked as editing, which
// suppresses stream updates for the document.
type EditorController struct {
	area  textarea.Model
	tabID string
	open  bool
}

func NewEditorController(width, height int) *EditorController {
	area := textarea.New()
	area.Placeholder = ""
	area.ShowLineNumbers = false
	area.CharLimit = 0
	area.SetWidth(max(1, width))
	area.SetHeight(max(1, height))
	return &EditorController{area: area}
}

func (e *EditorController) IsOpen() bool {
	return e != nil && e.open
}

func (e *EditorController) TabID() string {
	if e == nil {
		return ""
	}
	return e.tabID
}

// Open loads the tab's content into the textarea and focuses it.
func (e *EditorController) Open(tabID, content string) tea.Cmd {
	if e == nil {
		return nil
	}
	e.open = true
	e.tabID = tabID
	e.area.SetValue(content)
	e.area.MoveToEnd()
	return e.area.Focus()
}

func (e *EditorController) Close() {
	if e == nil {
		return
	}
	e.open = false
	e.tabID = ""
	e.area.Blur()
	e.area.Reset()
}

func (e *EditorController) Value() string {
	if e == nil {
		return ""
	}
	return e.area.Value()
}

func (e *EditorController) Resize(width, height int) {
	if e == nil {
		return
	}
	e.area.SetWidth(max(1, width))
	e.area.SetHeight(max(1, height))
}

func (e *EditorController) Update(msg tea.Msg) tea.Cmd {
	if e == nil || !e.open {
		return nil
	}
	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)
	return cmd
}

func (e *EditorController) View() string {
	if e == nil {
		return ""
	}
	return e.area.View()
}
