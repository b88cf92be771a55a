// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/sage-tui/internal/ui/styles"
	"github.com/jeranaias/sage-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusThinking
	StatusLoading
	StatusUploading
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusThinking:
		return "Thinking..."
	case StatusLoading:
		return "Loading..."
	case StatusUploading:
		return "Uploading..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status.
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusThinking, StatusLoading, StatusUploading:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// Shortcut is one key hint shown on the right side of the bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the bottom status bar: status on the left, a transient
// notice in the middle, key hints on the right.
type StatusBar struct {
	Status    Status
	Notice    string // transient message, e.g. "2 documents uploaded"
	Shortcuts []Shortcut
	Width     int
	theme     *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status: StatusReady,
		Width:  80,
		theme:  theme,
	}
}

// SetWidth updates the bar width.
func (b *StatusBar) SetWidth(width int) {
	b.Width = width
}

// SetStatus updates the displayed status.
func (b *StatusBar) SetStatus(s Status) {
	b.Status = s
}

// SetNotice sets the transient middle message (empty clears it).
func (b *StatusBar) SetNotice(notice string) {
	b.Notice = notice
}

// View renders the status bar line.
func (b *StatusBar) View() string {
	left := b.Status.Icon() + " " + b.Status.String()

	var right strings.Builder
	for i, sc := range b.Shortcuts {
		if i > 0 {
			right.WriteString("  ")
		}
		right.WriteString(b.theme.ShortcutKey.Render(sc.Key))
		right.WriteString(" ")
		right.WriteString(b.theme.ShortcutDesc.Render(sc.Desc))
	}

	middle := util.SanitizeLine(b.Notice)

	// Budget the middle to whatever the sides leave over.
	pad := b.Width - runewidth.StringWidth(left) - lipgloss.Width(right.String()) - 4
	if pad < 0 {
		pad = 0
	}
	if runewidth.StringWidth(middle) > pad {
		middle = util.TruncateRunes(middle, pad)
	}
	gap := pad - runewidth.StringWidth(middle)
	if gap < 1 {
		gap = 1
	}

	line := left + "  " + middle + strings.Repeat(" ", gap) + right.String()
	return b.theme.StatusBar.Width(b.Width).Render(line)
}
