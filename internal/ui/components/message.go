// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sage-tui/internal/model"
	"github.com/jeranaias/sage-tui/internal/ui/styles"
	"github.com/jeranaias/sage-tui/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MarkdownRenderer renders markdown to styled terminal output. The chat
// model passes a glamour-backed implementation; tests pass identity.
type MarkdownRenderer func(markdown string) (string, error)

// MessageBubble renders one message: user messages right-aligned in
// blue, assistant messages left-aligned in purple with markdown
// rendering. Optimistic messages render dimmed until confirmed.
type MessageBubble struct {
	Message       model.Message
	Width         int
	ShowTimestamp bool
	markdown      MarkdownRenderer
	theme         *styles.Theme
}

// NewMessageBubble creates a new MessageBubble.
func NewMessageBubble(msg model.Message, theme *styles.Theme, markdown MarkdownRenderer) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		markdown:      markdown,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	if b.Message.IsUser() {
		return b.renderUserBubble()
	}
	return b.renderAssistantBubble()
}

// ==========================================================================
// USER BUBBLE - Blue tones, right-aligned
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	// SECURITY: user content is echoed verbatim from input or from the
	// backend; render it as sanitized plain text, never as markup.
	content := util.SanitizeText(b.Message.Content)
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubbleStyle := b.theme.UserBubble.Width(contentWidth).UnsetMarginLeft()
	if b.Message.Optimistic {
		bubbleStyle = b.theme.PendingBubble.Width(contentWidth).UnsetMarginLeft()
	}
	bubble := bubbleStyle.Render(wrapped)

	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	role := "you"
	if b.Message.Optimistic {
		role = "you (sending)"
	}

	headerParts := []string{roleStyle.Render(role)}
	if ts := b.renderTimestamp(); ts != "" {
		headerParts = append(headerParts, ts)
	}
	header := strings.Join(headerParts, " ")

	leftMargin := b.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble))
}

// ==========================================================================
// ASSISTANT BUBBLE - Purple tones, left-aligned, markdown
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	content := b.Message.Content

	// Confirmed assistant content is markdown; render it. On renderer
	// failure fall back to sanitized plain text.
	if b.markdown != nil {
		if rendered, err := b.markdown(content); err == nil {
			content = strings.TrimRight(rendered, "\n")
		} else {
			content = util.SanitizeText(content)
		}
	} else {
		content = util.SanitizeText(content)
	}
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := b.theme.AssistantBubble.Width(contentWidth).Render(wrapped)

	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	headerParts := []string{roleStyle.Render("assistant")}
	if ts := b.renderTimestamp(); ts != "" {
		headerParts = append(headerParts, ts)
	}
	header := strings.Join(headerParts, " ")

	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}

// renderTimestamp renders the message time, date-qualified when it is
// not from today.
func (b *MessageBubble) renderTimestamp() string {
	if !b.ShowTimestamp || b.Message.CreatedAt.IsZero() {
		return ""
	}

	ts := b.Message.CreatedAt
	now := time.Now()

	var formatted string
	if ts.Year() == now.Year() && ts.YearDay() == now.YearDay() {
		formatted = ts.Format("3:04 PM")
	} else {
		formatted = ts.Format("Jan 2, 3:04 PM")
	}

	return b.theme.MessageTimestamp.Render(formatted)
}

// ==========================================================================
// UTILITY FUNCTIONS
// ==========================================================================

// wordWrap wraps text to fit within the specified width.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lines := strings.Split(text, "\n")

	for lineIdx, line := range lines {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if runeLen(currentLine)+1+runeLen(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}
		result.WriteString(currentLine)
	}

	return result.String()
}

// maxLineWidth returns the width of the longest line in runes.
func maxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if w := runeLen(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// runeLen returns the number of runes in a string, not bytes.
func runeLen(s string) int {
	return len([]rune(s))
}
