package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"
)

func TestCloseConfirmDialogWidthCappedByMaxWidth(t *testing.T) {
	c := NewCloseConfirmController()
	longName := strings.Repeat("deeply-nested-folder-", 6) + "notes.md"
	c.Open("Close Tab", "Save changes to \""+longName+"\" before closing?")

	_, _, width, _ := c.layout(200, 40)
	if width != closeConfirmMaxWidth {
		t.Fatalf("expected width %d, got %d", closeConfirmMaxWidth, width)
	}
}

func TestCloseConfirmDialogViewWrapsLongMessageWithinMaxWidth(t *testing.T) {
	c := NewCloseConfirmController()
	longName := strings.Repeat("deeply-nested-folder-", 6) + "notes.md"
	c.Open("Close Tab", "Save changes to \""+longName+"\" before closing?")

	view, _ := c.View(closeConfirmMaxWidth, 40)
	plain := xansi.Strip(view)
	lines := strings.Split(plain, "\n")
	if len(lines) <= 5 {
		t.Fatalf("expected wrapped dialog lines, got %d lines: %q", len(lines), plain)
	}

	maxWidth := 0
	for _, line := range lines {
		if w := xansi.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth > closeConfirmMaxWidth {
		t.Fatalf("expected wrapped lines to fit max width %d, got %d", closeConfirmMaxWidth, maxWidth)
	}
}

func TestCloseConfirmMouseButtonsRespectBorderedLayout(t *testing.T) {
	c := NewCloseConfirmController()
	c.Open("Close Tab", "Save changes to \"notes.md\" before closing?")

	x, y, _, height := c.layout(120, 40)
	buttonRow := y + height - 2
	borderRow := y + height - 1
	spans := buttonSpans()

	handled, choice := c.HandleMouse(tea.MouseClickMsg{
		Button: tea.MouseLeft,
		X:      x + 2 + spans[0].start,
		Y:      buttonRow,
	}, 120, 40)
	if !handled || choice != closeChoiceSave {
		t.Fatalf("expected save click on first button, handled=%v choice=%v", handled, choice)
	}

	handled, choice = c.HandleMouse(tea.MouseClickMsg{
		Button: tea.MouseLeft,
		X:      x + 2 + spans[1].start,
		Y:      buttonRow,
	}, 120, 40)
	if !handled || choice != closeChoiceDiscard {
		t.Fatalf("expected discard click on second button, handled=%v choice=%v", handled, choice)
	}

	handled, choice = c.HandleMouse(tea.MouseClickMsg{
		Button: tea.MouseLeft,
		X:      x + 2 + spans[2].start + spans[2].width - 1,
		Y:      buttonRow,
	}, 120, 40)
	if !handled || choice != closeChoiceCancel {
		t.Fatalf("expected cancel click on third button, handled=%v choice=%v", handled, choice)
	}

	handled, choice = c.HandleMouse(tea.MouseClickMsg{
		Button: tea.MouseLeft,
		X:      x + 2,
		Y:      borderRow,
	}, 120, 40)
	if !handled || choice != closeChoiceNone {
		t.Fatalf("expected bordered row click to be swallowed, handled=%v choice=%v", handled, choice)
	}

	handled, _ = c.HandleMouse(tea.MouseClickMsg{Button: tea.MouseLeft, X: 0, Y: 0}, 120, 40)
	if handled {
		t.Fatalf("expected click outside dialog to pass through")
	}
}

func TestCloseConfirmShortcutKeys(t *testing.T) {
	c := NewCloseConfirmController()
	c.Open("Close Tab", "Save changes to \"notes.md\" before closing?")

	if handled, choice := c.HandleKey(tea.KeyPressMsg{Text: "s", Code: 's'}); !handled || choice != closeChoiceSave {
		t.Fatalf("expected save for s, handled=%v choice=%v", handled, choice)
	}
	if handled, choice := c.HandleKey(tea.KeyPressMsg{Text: "d", Code: 'd'}); !handled || choice != closeChoiceDiscard {
		t.Fatalf("expected discard for d, handled=%v choice=%v", handled, choice)
	}
	if handled, choice := c.HandleKey(tea.KeyPressMsg{Text: "n", Code: 'n'}); !handled || choice != closeChoiceCancel {
		t.Fatalf("expected cancel for n, handled=%v choice=%v", handled, choice)
	}
	if handled, choice := c.HandleKey(tea.KeyPressMsg{Code: tea.KeyEsc}); !handled || choice != closeChoiceCancel {
		t.Fatalf("expected cancel for esc, handled=%v choice=%v", handled, choice)
	}
}

func TestCloseConfirmEnterPicksHighlightedButton(t *testing.T) {
	c := NewCloseConfirmController()
	c.Open("Close Tab", "Save changes to \"notes.md\" before closing?")

	if handled, choice := c.HandleKey(tea.KeyPressMsg{Code: tea.KeyEnter}); !handled || choice != closeChoiceSave {
		t.Fatalf("expected default selection to save, handled=%v choice=%v", handled, choice)
	}

	c.HandleKey(tea.KeyPressMsg{Code: tea.KeyRight})
	if handled, choice := c.HandleKey(tea.KeyPressMsg{Code: tea.KeyEnter}); !handled || choice != closeChoiceDiscard {
		t.Fatalf("expected discard after right, handled=%v choice=%v", handled, choice)
	}

	c.HandleKey(tea.KeyPressMsg{Code: tea.KeyTab})
	if handled, choice := c.HandleKey(tea.KeyPressMsg{Code: tea.KeyEnter}); !handled || choice != closeChoiceCancel {
		t.Fatalf("expected cancel after tab, handled=%v choice=%v", handled, choice)
	}

	c.HandleKey(tea.KeyPressMsg{Code: tea.KeyTab})
	if handled, choice := c.HandleKey(tea.KeyPressMsg{Code: tea.KeyEnter}); !handled || choice != closeChoiceSave {
		t.Fatalf("expected tab to wrap back to save, handled=%v choice=%v", handled, choice)
	}
}

func TestCloseConfirmArrowSelectionClamps(t *testing.T) {
	c := NewCloseConfirmController()
	c.Open("Close Tab", "Save changes?")

	c.HandleKey(tea.KeyPressMsg{Code: tea.KeyLeft})
	if c.selected != 0 {
		t.Fatalf("expected selection clamped at first button, got %d", c.selected)
	}
	for i := 0; i < 5; i++ {
		c.HandleKey(tea.KeyPressMsg{Code: tea.KeyRight})
	}
	if c.selected != 2 {
		t.Fatalf("expected selection clamped at last button, got %d", c.selected)
	}
}

func TestCloseConfirmViewShowsAllThreeButtons(t *testing.T) {
	c := NewCloseConfirmController()
	c.Open("Close Tab", "Save changes to \"notes.md\" before closing?")

	view, _ := c.View(120, 40)
	plain := xansi.Strip(view)
	for _, label := range closeConfirmLabels {
		if !strings.Contains(plain, "["+label+"]") {
			t.Fatalf("expected button %q in view: %q", label, plain)
		}
	}
}
