package app

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"folio/internal/types"
)

const maxTabTitleWidth = 20

type tabSpan struct {
	tabID string
	start int
	width int
}

// renderTabBar lays the open tabs into a single line and reports the cell
// span each tab occupies so mouse clicks can be mapped back to a tab.
func renderTabBar(tabList []*types.Tab, activeID string, width int) (string, []tabSpan) {
	if width <= 0 {
		width = 1
	}
	var b strings.Builder
	spans := make([]tabSpan, 0, len(tabList))
	used := 0
	for _, tab := range tabList {
		if tab == nil {
			continue
		}
		label := truncateToWidth(tab.DisplayTitle(), maxTabTitleWidth)
		if tab.IsDirty() {
			label = "● " + label
		}
		cell := " " + label + " "
		cellWidth := xansi.StringWidth(cell)
		if used+cellWidth > width && used > 0 {
			break
		}
		style := tabStyle
		if tab.ID == activeID {
			style = tabActiveStyle
		} else if tab.IsDirty() {
			style = tabDirtyStyle
		}
		b.WriteString(style.Render(cell))
		spans = append(spans, tabSpan{tabID: tab.ID, start: used, width: cellWidth})
		used += cellWidth
	}
	if used < width {
		b.WriteString(tabBarFillStyle.Render(strings.Repeat(" ", width-used)))
	}
	return b.String(), spans
}

func tabAtColumn(spans []tabSpan, x int) string {
	for _, span := range spans {
		if x >= span.start && x < span.start+span.width {
			return span.tabID
		}
	}
	return ""
}
