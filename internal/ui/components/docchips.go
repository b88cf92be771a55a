// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sage-tui/internal/model"
	"github.com/jeranaias/sage-tui/internal/ui/styles"
	"github.com/jeranaias/sage-tui/internal/util"
)

// =============================================================================
// DOCUMENT CHIPS - Attached files strip above the composer
// =============================================================================

// maxChipName caps filename length inside a chip.
const maxChipName = 24

// DocChips renders the selected chat's documents as a horizontal strip
// of chips. Documents still being ingested get a "processing" badge.
type DocChips struct {
	Documents []model.Document
	Cursor    int // -1 when no chip is focused
	Width     int
	theme     *styles.Theme
}

// NewDocChips creates a new DocChips component.
func NewDocChips(theme *styles.Theme) *DocChips {
	return &DocChips{
		Cursor: -1,
		Width:  80,
		theme:  theme,
	}
}

// SetDocuments replaces the document list and clamps the cursor.
func (d *DocChips) SetDocuments(docs []model.Document) {
	d.Documents = docs
	if d.Cursor >= len(docs) {
		d.Cursor = len(docs) - 1
	}
}

// SetWidth updates the available width.
func (d *DocChips) SetWidth(width int) {
	d.Width = width
}

// MoveCursor moves the chip focus by delta, clamped. A negative cursor
// means no chip is focused.
func (d *DocChips) MoveCursor(delta int) {
	if len(d.Documents) == 0 {
		d.Cursor = -1
		return
	}
	d.Cursor += delta
	if d.Cursor < 0 {
		d.Cursor = 0
	}
	if d.Cursor >= len(d.Documents) {
		d.Cursor = len(d.Documents) - 1
	}
}

// Blur removes chip focus.
func (d *DocChips) Blur() {
	d.Cursor = -1
}

// CursorDocument returns the focused document, false when none is.
func (d *DocChips) CursorDocument() (model.Document, bool) {
	if d.Cursor < 0 || d.Cursor >= len(d.Documents) {
		return model.Document{}, false
	}
	return d.Documents[d.Cursor], true
}

// View renders the chip strip. Empty document list renders nothing.
func (d *DocChips) View() string {
	if len(d.Documents) == 0 {
		return ""
	}

	chips := make([]string, 0, len(d.Documents))
	for i, doc := range d.Documents {
		// SECURITY: filenames are backend data; sanitize before display.
		name := util.TruncateRunes(util.SanitizeLine(doc.Filename), maxChipName)

		label := name
		style := d.theme.DocChip
		switch {
		case doc.IsProcessing():
			label = name + " (processing)"
			style = d.theme.DocChipProcessing
		case i == d.Cursor:
			style = d.theme.DocChipSelected
		}
		if i == d.Cursor && doc.IsProcessing() {
			style = style.Bold(true)
		}

		chips = append(chips, style.Render(label))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, chips...)
	if lipgloss.Width(row) > d.Width {
		// Too many chips for one row; fall back to a count summary.
		return d.theme.DocChip.Render(summarize(d.Documents))
	}
	return row
}

func summarize(docs []model.Document) string {
	processing := 0
	for _, doc := range docs {
		if doc.IsProcessing() {
			processing++
		}
	}
	noun := "documents"
	if len(docs) == 1 {
		noun = "document"
	}
	if processing > 0 {
		return fmt.Sprintf("%d %s (%d processing)", len(docs), noun, processing)
	}
	return fmt.Sprintf("%d %s", len(docs), noun)
}
