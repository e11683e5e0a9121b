package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"
)

type closeChoice int

const (
	closeChoiceNone closeChoice = iota
	closeChoiceSave
	closeChoiceDiscard
	closeChoiceCancel
)

const (
	closeConfirmMaxWidth = 60
	closeConfirmMinWidth = 24
)

var closeConfirmLabels = [3]string{"Save and close", "Discard", "Cancel"}

// CloseConfirmController renders the three-way prompt for closing a tab
// with unsaved changes. It owns selection state only; the model maps the
// returned choice onto the engine's close resolution.
type CloseConfirmController struct {
	active   bool
	title    string
	message  string
	selected int
}

func NewCloseConfirmController() *CloseConfirmController {
	return &CloseConfirmController{}
}

func (c *CloseConfirmController) IsOpen() bool {
	return c != nil && c.active
}

func (c *CloseConfirmController) Open(title, message string) {
	if c == nil {
		return
	}
	c.active = true
	c.title = strings.TrimSpace(title)
	c.message = strings.TrimSpace(message)
	c.selected = 0
}

func (c *CloseConfirmController) Close() {
	if c == nil {
		return
	}
	c.active = false
	c.title = ""
	c.message = ""
	c.selected = 0
}

func choiceAt(index int) closeChoice {
	switch index {
	case 0:
		return closeChoiceSave
	case 1:
		return closeChoiceDiscard
	default:
		return closeChoiceCancel
	}
}

func (c *CloseConfirmController) HandleKey(msg tea.KeyMsg) (bool, closeChoice) {
	if c == nil || !c.active {
		return false, closeChoiceNone
	}
	switch msg.String() {
	case "esc", "q":
		return true, closeChoiceCancel
	case "left", "h":
		if c.selected > 0 {
			c.selected--
		}
		return true, closeChoiceNone
	case "right", "l":
		if c.selected < 2 {
			c.selected++
		}
		return true, closeChoiceNone
	case "tab":
		c.selected = (c.selected + 1) % 3
		return true, closeChoiceNone
	case "s", "y":
		return true, closeChoiceSave
	case "d":
		return true, closeChoiceDiscard
	case "n":
		return true, closeChoiceCancel
	case "enter":
		return true, choiceAt(c.selected)
	}
	return false, closeChoiceNone
}

func (c *CloseConfirmController) HandleMouse(msg tea.MouseMsg, maxWidth, maxHeight int) (bool, closeChoice) {
	if c == nil || !c.active {
		return false, closeChoiceNone
	}
	if _, ok := msg.(tea.MouseClickMsg); !ok {
		return false, closeChoiceNone
	}
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return false, closeChoiceNone
	}
	x, y, width, height := c.layout(maxWidth, maxHeight)
	if mouse.X < x || mouse.X >= x+width || mouse.Y < y || mouse.Y >= y+height {
		return false, closeChoiceNone
	}
	buttonRow := y + height - 2
	if mouse.Y != buttonRow {
		return true, closeChoiceNone
	}
	// The button line starts after the border column plus one space of
	// padding, matching View.
	offset := mouse.X - (x + 2)
	for i, span := range buttonSpans() {
		if offset >= span.start && offset < span.start+span.width {
			c.selected = i
			return true, choiceAt(i)
		}
	}
	return true, closeChoiceNone
}

type buttonSpan struct {
	start int
	width int
}

func buttonSpans() [3]buttonSpan {
	var spans [3]buttonSpan
	start := 0
	for i, label := range closeConfirmLabels {
		width := xansi.StringWidth("[" + label + "]")
		spans[i] = buttonSpan{start: start, width: width}
		start += width + 1
	}
	return spans
}

func (c *CloseConfirmController) Contains(x, y, maxWidth, maxHeight int) bool {
	if c == nil || !c.active {
		return false
	}
	bx, by, bw, bh := c.layout(maxWidth, maxHeight)
	return x >= bx && x < bx+bw && y >= by && y < by+bh
}

func (c *CloseConfirmController) View(maxWidth, maxHeight int) (string, int) {
	if c == nil || !c.active {
		return "", 0
	}
	x, y, width, _ := c.layout(maxWidth, maxHeight)
	innerWidth := max(1, width-2)
	contentWidth := max(1, innerWidth-2)
	title := c.title
	if title == "" {
		title = "Close Tab"
	}
	title = truncateToWidth(title, contentWidth)
	lines := []string{dialogHeaderStyle.Render(" " + padToWidth(title, contentWidth) + " ")}

	message := strings.TrimSpace(c.message)
	if message != "" {
		wrapped := xansi.Hardwrap(message, contentWidth, true)
		for _, line := range strings.Split(wrapped, "\n") {
			line = truncateToWidth(line, contentWidth)
			lines = append(lines, menuDropStyle.Render(" "+padToWidth(line, contentWidth)+" "))
		}
	}

	buttons := make([]string, 0, 3)
	for i, label := range closeConfirmLabels {
		button := "[" + label + "]"
		if i == c.selected {
			button = selectedStyle.Render(button)
		} else {
			button = menuDropStyle.Render(button)
		}
		buttons = append(buttons, button)
	}
	buttonLine := " " + strings.Join(buttons, " ") + " "
	if xansi.StringWidth(buttonLine) < innerWidth {
		buttonLine = padToWidth(buttonLine, innerWidth)
	}
	lines = append(lines, buttonLine)

	block := confirmDialogBorderStyle.Render(strings.Join(lines, "\n"))
	if x > 0 {
		block = indentBlock(block, x)
	}
	return block, y
}

func (c *CloseConfirmController) layout(maxWidth, maxHeight int) (int, int, int, int) {
	width := c.menuWidth()
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	height := c.menuHeight(width)
	minRow := 1
	if maxHeight <= 0 {
		minRow = 0
	}
	x := 0
	y := minRow
	if maxWidth > 0 {
		x = (maxWidth - width) / 2
		if x < 0 {
			x = 0
		}
	}
	if maxHeight > 0 {
		y = (maxHeight-height)/2 + minRow
		if y < minRow {
			y = minRow
		}
	}
	return x, y, width, height
}

func (c *CloseConfirmController) menuWidth() int {
	width := closeConfirmMinWidth
	contentWidth := 0
	title := strings.TrimSpace(c.title)
	if title == "" {
		title = "Close Tab"
	}
	if w := xansi.StringWidth(title); w > contentWidth {
		contentWidth = w
	}
	if w := xansi.StringWidth(c.message); w > contentWidth {
		contentWidth = w
	}
	buttonWidth := 8
	for _, label := range closeConfirmLabels {
		buttonWidth += xansi.StringWidth(label)
	}
	if buttonWidth > contentWidth {
		contentWidth = buttonWidth
	}
	if contentWidth+4 > width {
		width = contentWidth + 4
	}
	if width > closeConfirmMaxWidth {
		width = closeConfirmMaxWidth
	}
	return width
}

func (c *CloseConfirmController) menuHeight(width int) int {
	innerWidth := max(1, width-2)
	contentWidth := max(1, innerWidth-2)
	height := 2
	if strings.TrimSpace(c.message) != "" {
		height += len(strings.Split(xansi.Hardwrap(c.message, contentWidth, true), "\n"))
	}
	return height + 2
}
