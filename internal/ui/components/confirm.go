// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sage-tui/internal/ui/styles"
)

// =============================================================================
// CONFIRM OVERLAY - Modal yes/no prompt for destructive actions
// =============================================================================

// ConfirmResult is the outcome of a closed confirm overlay.
type ConfirmResult int

const (
	ConfirmPending ConfirmResult = iota
	ConfirmYes
	ConfirmNo
)

// Confirm is a modal yes/no prompt. While open it captures all key
// input; the parent applies the action only on ConfirmYes.
type Confirm struct {
	Prompt string
	open   bool
	yes    bool // currently highlighted button
	theme  *styles.Theme
}

// NewConfirm creates a closed confirm overlay.
func NewConfirm(theme *styles.Theme) *Confirm {
	return &Confirm{theme: theme}
}

// Open shows the overlay with the given prompt. "No" starts highlighted
// so a stray enter cannot destroy anything.
func (c *Confirm) Open(prompt string) {
	c.Prompt = prompt
	c.open = true
	c.yes = false
}

// Close hides the overlay.
func (c *Confirm) Close() {
	c.open = false
}

// IsOpen reports whether the overlay is visible.
func (c *Confirm) IsOpen() bool {
	return c.open
}

// Update handles a key press while open. It returns ConfirmPending
// until the user decides; y/n answer immediately, arrows and tab move
// the highlight, enter picks it, esc cancels.
func (c *Confirm) Update(msg tea.KeyMsg) ConfirmResult {
	if !c.open {
		return ConfirmPending
	}

	switch msg.String() {
	case "y", "Y":
		c.open = false
		return ConfirmYes
	case "n", "N", "esc":
		c.open = false
		return ConfirmNo
	case "left", "right", "tab", "h", "l":
		c.yes = !c.yes
		return ConfirmPending
	case "enter":
		c.open = false
		if c.yes {
			return ConfirmYes
		}
		return ConfirmNo
	}
	return ConfirmPending
}

// View renders the overlay box, empty when closed.
func (c *Confirm) View() string {
	if !c.open {
		return ""
	}

	yes := c.theme.ConfirmButton.Render("Yes")
	no := c.theme.ConfirmButtonActive.Render("No")
	if c.yes {
		yes = c.theme.ConfirmButtonActive.Render("Yes")
		no = c.theme.ConfirmButton.Render("No")
	}

	var b strings.Builder
	b.WriteString(c.theme.ConfirmTitle.Render("Confirm"))
	b.WriteString("\n\n")
	b.WriteString(c.Prompt)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, yes, no))

	return c.theme.ConfirmBox.Render(b.String())
}
