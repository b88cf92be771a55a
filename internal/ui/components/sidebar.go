// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/sage-tui/internal/model"
	"github.com/jeranaias/sage-tui/internal/ui/styles"
	"github.com/jeranaias/sage-tui/internal/util"
)

// =============================================================================
// SIDEBAR COMPONENT - Chat list
// =============================================================================

// Sidebar renders the chat list: one row per chat with its title and
// creation date, the selected chat highlighted, and a hint when the
// list is empty.
type Sidebar struct {
	Chats      []model.Chat
	SelectedID string
	Cursor     int // keyboard cursor, independent of the selection
	Width      int
	Height     int
	theme      *styles.Theme
}

// NewSidebar creates a new Sidebar component.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{
		Width:  32,
		Height: 24,
		theme:  theme,
	}
}

// SetSize updates the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetChats replaces the chat list and clamps the cursor.
func (s *Sidebar) SetChats(chats []model.Chat, selectedID string) {
	s.Chats = chats
	s.SelectedID = selectedID
	if s.Cursor >= len(chats) {
		s.Cursor = len(chats) - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}

// MoveCursor moves the keyboard cursor by delta, clamped to the list.
func (s *Sidebar) MoveCursor(delta int) {
	s.Cursor += delta
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor >= len(s.Chats) {
		s.Cursor = len(s.Chats) - 1
	}
}

// CursorChat returns the chat under the cursor, false when the list is empty.
func (s *Sidebar) CursorChat() (model.Chat, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Chats) {
		return model.Chat{}, false
	}
	return s.Chats[s.Cursor], true
}

// View renders the sidebar column.
func (s *Sidebar) View() string {
	var b strings.Builder

	b.WriteString(s.theme.SidebarTitle.Render("Chats"))
	b.WriteString("\n")

	if len(s.Chats) == 0 {
		b.WriteString(s.theme.EmptyHint.Render("No chats yet"))
		return s.theme.Sidebar.Width(s.Width).Height(s.Height).Render(b.String())
	}

	// Inner width minus the sidebar's own border and padding.
	inner := s.Width - 4
	if inner < 8 {
		inner = 8
	}

	visible := s.visibleRange()
	for i := visible[0]; i < visible[1]; i++ {
		chat := s.Chats[i]

		// SECURITY: titles are backend data; never let raw escape
		// sequences through to the terminal.
		title := util.TruncateRunes(util.SanitizeLine(chat.DisplayTitle()), inner)

		style := s.theme.ChatItem
		prefix := "  "
		if chat.ID.String() == s.SelectedID {
			prefix = "* "
		}
		if i == s.Cursor {
			style = s.theme.ChatItemSelected
		}

		b.WriteString(style.Render(prefix + title))
		b.WriteString("\n")
		b.WriteString(s.theme.ChatItemDate.Render("    " + chat.DisplayDate()))
		if i < visible[1]-1 {
			b.WriteString("\n")
		}
	}

	return s.theme.Sidebar.Width(s.Width).Height(s.Height).Render(b.String())
}

// visibleRange returns the [start, end) slice of chats that fits the
// height, keeping the cursor in view. Each chat takes two rows.
func (s *Sidebar) visibleRange() [2]int {
	rows := (s.Height - 2) / 2
	if rows < 1 {
		rows = 1
	}
	if len(s.Chats) <= rows {
		return [2]int{0, len(s.Chats)}
	}

	start := s.Cursor - rows/2
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > len(s.Chats) {
		end = len(s.Chats)
		start = end - rows
	}
	return [2]int{start, end}
}
