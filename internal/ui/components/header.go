// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/sage-tui/internal/ui/styles"
	"github.com/jeranaias/sage-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar: the brand on the left, the selected chat's
// title in the middle.
type Header struct {
	Brand     string // Application name (default: "sage")
	ChatTitle string // Selected chat title, empty when no selection
	Width     int
	theme     *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Brand: "sage",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetChatTitle updates the displayed chat title.
func (h *Header) SetChatTitle(title string) {
	h.ChatTitle = title
}

// View renders the header line.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}

	brand := h.theme.HeaderBrand.Render(h.Brand)

	// SECURITY: chat titles come from the backend and may carry escape
	// sequences; sanitize before they touch the terminal.
	title := util.SanitizeLine(h.ChatTitle)
	if title != "" {
		avail := width - runewidth.StringWidth(h.Brand) - 8
		if avail > 0 {
			title = util.TruncateRunes(title, avail)
		}
		title = h.theme.HeaderTitle.Render(title)
	}

	line := brand
	if title != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Center, brand, "  ", title)
	}

	return h.theme.Header.Width(width).Render(line)
}
