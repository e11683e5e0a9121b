package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"folio/internal/types"
)

const (
	historyMaxWidth = 64
	historyMaxRows  = 12
)

// HistoryController is the snapshot picker overlay. Choosing an entry asks
// the engine to restore that version into the tab as an unsaved edit.
type HistoryController struct {
	active    bool
	tabID     string
	title     string
	snapshots []types.Snapshot
	selected  int
	loading   bool
	errText   string
}

func NewHistoryController() *HistoryController {
	return &HistoryController{}
}

func (h *HistoryController) IsOpen() bool {
	return h != nil && h.active
}

func (h *HistoryController) TabID() string {
	if h == nil {
		return ""
	}
	return h.tabID
}

func (h *HistoryController) Open(tabID, title string) {
	if h == nil {
		return
	}
	h.active = true
	h.tabID = tabID
	h.title = strings.TrimSpace(title)
	h.snapshots = nil
	h.selected = 0
	h.loading = true
	h.errText = ""
}

func (h *HistoryController) Close() {
	if h == nil {
		return
	}
	h.active = false
	h.tabID = ""
	h.title = ""
	h.snapshots = nil
	h.selected = 0
	h.loading = false
	h.errText = ""
}

func (h *HistoryController) SetSnapshots(snapshots []types.Snapshot, err error) {
	if h == nil || !h.active {
		return
	}
	h.loading = false
	if err != nil {
		h.errText = err.Error()
		return
	}
	h.snapshots = snapshots
	h.selected = 0
}

// HandleKey returns whether the key was consumed and, on enter, the id of
// the snapshot to restore.
func (h *HistoryController) HandleKey(msg tea.KeyMsg) (bool, string, bool) {
	if h == nil || !h.active {
		return false, "", false
	}
	switch msg.String() {
	case "esc", "q":
		h.Close()
		return true, "", false
	case "up", "k":
		if h.selected > 0 {
			h.selected--
		}
		return true, "", false
	case "down", "j":
		if h.selected < len(h.snapshots)-1 {
			h.selected++
		}
		return true, "", false
	case "enter":
		if h.selected >= 0 && h.selected < len(h.snapshots) {
			return true, h.snapshots[h.selected].ID, true
		}
		return true, "", false
	}
	return true, "", false
}

func (h *HistoryController) View(maxWidth, maxHeight int) (string, int) {
	if h == nil || !h.active {
		return "", 0
	}
	width := historyMaxWidth
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	innerWidth := max(1, width-2)
	contentWidth := max(1, innerWidth-2)

	title := h.title
	if title == "" {
		title = "History"
	} else {
		title = "History · " + title
	}
	title = truncateToWidth(title, contentWidth)
	lines := []string{dialogHeaderStyle.Render(" " + padToWidth(title, contentWidth) + " ")}

	rows := h.rows(contentWidth)
	for i, row := range rows {
		line := " " + padToWidth(row, contentWidth) + " "
		if !h.loading && h.errText == "" && len(h.snapshots) > 0 && i == h.visibleSelected() {
			line = selectedStyle.Render(line)
		} else {
			line = menuDropStyle.Render(line)
		}
		lines = append(lines, line)
	}

	block := historyBorderStyle.Render(strings.Join(lines, "\n"))
	height := len(lines) + 2
	x := 0
	y := 1
	if maxWidth > 0 {
		x = (maxWidth - width) / 2
		if x < 0 {
			x = 0
		}
	}
	if maxHeight > 0 {
		y = (maxHeight - height) / 2
		if y < 1 {
			y = 1
		}
	}
	if x > 0 {
		block = indentBlock(block, x)
	}
	return block, y
}

// rows renders the visible window of snapshot lines, newest first, keeping
// the selection in view.
func (h *HistoryController) rows(contentWidth int) []string {
	if h.loading {
		return []string{"Loading history..."}
	}
	if h.errText != "" {
		return []string{truncateToWidth("history error: "+h.errText, contentWidth)}
	}
	if len(h.snapshots) == 0 {
		return []string{"No saved versions yet."}
	}
	start := 0
	if h.selected >= historyMaxRows {
		start = h.selected - historyMaxRows + 1
	}
	end := start + historyMaxRows
	if end > len(h.snapshots) {
		end = len(h.snapshots)
	}
	rows := make([]string, 0, end-start)
	for _, snap := range h.snapshots[start:end] {
		stamp := snap.SavedAt.Local().Format("Jan 02 15:04:05")
		row := fmt.Sprintf("%s  %s", stamp, formatByteSize(snap.Size))
		rows = append(rows, truncateToWidth(row, contentWidth))
	}
	return rows
}

func (h *HistoryController) visibleSelected() int {
	if h.selected < historyMaxRows {
		return h.selected
	}
	return historyMaxRows - 1
}

func formatByteSize(size int) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
