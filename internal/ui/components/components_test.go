// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/sage-tui/internal/model"
	"github.com/jeranaias/sage-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme()
}

// =============================================================================
// SIDEBAR
// =============================================================================

func TestSidebarEmptyState(t *testing.T) {
	s := NewSidebar(testTheme())
	s.SetChats(nil, "")

	if got := s.View(); !strings.Contains(got, "No chats yet") {
		t.Errorf("empty sidebar should show hint, got %q", got)
	}
}

func TestSidebarMarksSelectedChat(t *testing.T) {
	s := NewSidebar(testTheme())
	s.SetChats([]model.Chat{
		{ID: "1", Title: "first"},
		{ID: "2", Title: "second"},
	}, "2")

	view := s.View()
	if !strings.Contains(view, "* second") {
		t.Errorf("selected chat should carry the marker, got %q", view)
	}
	if strings.Contains(view, "* first") {
		t.Error("unselected chat must not carry the marker")
	}
}

func TestSidebarUntitledChat(t *testing.T) {
	s := NewSidebar(testTheme())
	s.SetChats([]model.Chat{{ID: "1"}}, "")

	if got := s.View(); !strings.Contains(got, "Untitled Chat") {
		t.Errorf("chat without title should display as Untitled Chat, got %q", got)
	}
}

func TestSidebarSanitizesTitles(t *testing.T) {
	// SECURITY: a malicious chat title must not inject escape sequences.
	s := NewSidebar(testTheme())
	s.SetChats([]model.Chat{{ID: "1", Title: "evil\x1b[2Jtitle"}}, "")

	if got := s.View(); strings.Contains(got, "\x1b[2J") {
		t.Error("sidebar must strip escape sequences from titles")
	}
}

func TestSidebarCursorClamps(t *testing.T) {
	s := NewSidebar(testTheme())
	s.SetChats([]model.Chat{{ID: "1"}, {ID: "2"}}, "")

	s.MoveCursor(-5)
	if s.Cursor != 0 {
		t.Errorf("cursor should clamp at 0, got %d", s.Cursor)
	}
	s.MoveCursor(10)
	if s.Cursor != 1 {
		t.Errorf("cursor should clamp at last index, got %d", s.Cursor)
	}

	chat, ok := s.CursorChat()
	if !ok || chat.ID != "2" {
		t.Errorf("CursorChat = %v %v, want chat 2", chat, ok)
	}
}

// =============================================================================
// DOCUMENT CHIPS
// =============================================================================

func TestDocChipsEmptyRendersNothing(t *testing.T) {
	d := NewDocChips(testTheme())
	if got := d.View(); got != "" {
		t.Errorf("no documents should render nothing, got %q", got)
	}
}

func TestDocChipsProcessingBadge(t *testing.T) {
	d := NewDocChips(testTheme())
	d.SetDocuments([]model.Document{
		{ID: "1", Filename: "ready.pdf", Status: model.DocStatusReady},
		{ID: "2", Filename: "fresh.pdf", Status: model.DocStatusProcessing},
	})

	view := d.View()
	if !strings.Contains(view, "fresh.pdf (processing)") {
		t.Errorf("processing document should carry badge, got %q", view)
	}
	if strings.Contains(view, "ready.pdf (processing)") {
		t.Error("ready document must not carry the processing badge")
	}
}

func TestDocChipsCursor(t *testing.T) {
	d := NewDocChips(testTheme())
	d.SetDocuments([]model.Document{{ID: "1", Filename: "a.pdf"}, {ID: "2", Filename: "b.pdf"}})

	if _, ok := d.CursorDocument(); ok {
		t.Error("no document should be focused initially")
	}

	d.MoveCursor(1)
	doc, ok := d.CursorDocument()
	if !ok || doc.ID != "1" {
		t.Errorf("first move should focus the first chip, got %v %v", doc, ok)
	}

	d.Blur()
	if _, ok := d.CursorDocument(); ok {
		t.Error("Blur should clear chip focus")
	}
}

func TestDocChipsSanitizesFilenames(t *testing.T) {
	d := NewDocChips(testTheme())
	d.SetDocuments([]model.Document{{ID: "1", Filename: "x\x1b]0;owned\x07.pdf"}})

	if got := d.View(); strings.Contains(got, "\x1b]") {
		t.Error("chips must strip escape sequences from filenames")
	}
}

// =============================================================================
// STATUS BAR
// =============================================================================

func TestStatusBarShowsStatusAndNotice(t *testing.T) {
	b := NewStatusBar(testTheme())
	b.SetWidth(100)
	b.SetStatus(StatusThinking)
	b.SetNotice("2 documents uploaded")

	view := b.View()
	if !strings.Contains(view, "Thinking...") {
		t.Errorf("status text missing: %q", view)
	}
	if !strings.Contains(view, "2 documents uploaded") {
		t.Errorf("notice missing: %q", view)
	}
}

func TestStatusIcons(t *testing.T) {
	if StatusReady.Icon() != styles.StatusIndicators.Success {
		t.Error("ready should use the success indicator")
	}
	if StatusError.Icon() != styles.StatusIndicators.Error {
		t.Error("error should use the error indicator")
	}
}

// =============================================================================
// CONFIRM OVERLAY
// =============================================================================

func TestConfirmFlow(t *testing.T) {
	c := NewConfirm(testTheme())
	if c.IsOpen() {
		t.Fatal("overlay should start closed")
	}

	c.Open("Remove this document from the chat?")
	if !c.IsOpen() {
		t.Fatal("overlay should be open after Open")
	}
	if !strings.Contains(c.View(), "Remove this document from the chat?") {
		t.Error("overlay should render the prompt")
	}

	// Enter with the default highlight answers No.
	if got := c.Update(tea.KeyMsg{Type: tea.KeyEnter}); got != ConfirmNo {
		t.Errorf("default enter = %v, want ConfirmNo", got)
	}
	if c.IsOpen() {
		t.Error("overlay should close after a decision")
	}

	c.Open("again?")
	if got := c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}); got != ConfirmYes {
		t.Errorf("y = %v, want ConfirmYes", got)
	}

	c.Open("again?")
	if got := c.Update(tea.KeyMsg{Type: tea.KeyEsc}); got != ConfirmNo {
		t.Errorf("esc = %v, want ConfirmNo", got)
	}
}

func TestConfirmToggleThenAccept(t *testing.T) {
	c := NewConfirm(testTheme())
	c.Open("delete?")

	if got := c.Update(tea.KeyMsg{Type: tea.KeyTab}); got != ConfirmPending {
		t.Fatalf("tab = %v, want ConfirmPending", got)
	}
	if got := c.Update(tea.KeyMsg{Type: tea.KeyEnter}); got != ConfirmYes {
		t.Errorf("enter after toggle = %v, want ConfirmYes", got)
	}
}

// =============================================================================
// MESSAGE BUBBLES
// =============================================================================

func TestUserBubbleSanitizesContent(t *testing.T) {
	msg := model.Message{ID: "1", Sender: model.SenderUser, Content: "hi\x1b[31m there"}
	b := NewMessageBubble(msg, testTheme(), nil)

	if got := b.View(); strings.Contains(got, "\x1b[31m") {
		t.Error("user content must be rendered as sanitized plain text")
	}
}

func TestOptimisticBubbleMarkedSending(t *testing.T) {
	msg := model.Message{ID: "tmp_1", Sender: model.SenderUser, Content: "hi", Optimistic: true}
	b := NewMessageBubble(msg, testTheme(), nil)

	if got := b.View(); !strings.Contains(got, "(sending)") {
		t.Errorf("optimistic bubble should be marked, got %q", got)
	}
}

func TestAssistantBubbleUsesRenderer(t *testing.T) {
	msg := model.Message{ID: "2", Sender: model.SenderAssistant, Content: "plain"}
	called := false
	render := func(md string) (string, error) {
		called = true
		return "RENDERED " + md, nil
	}

	b := NewMessageBubble(msg, testTheme(), render)
	if got := b.View(); !called || !strings.Contains(got, "RENDERED plain") {
		t.Errorf("assistant content should pass through the markdown renderer, got %q", got)
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "hello world", 20, "hello world"},
		{"wraps", "hello world again", 11, "hello world\nagain"},
		{"zero width", "hello", 0, "hello"},
		{"preserves newlines", "a\nb", 10, "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wordWrap(tt.text, tt.width); got != tt.want {
				t.Errorf("wordWrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}
