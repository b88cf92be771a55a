// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sage-tui/internal/ui/components"
	"github.com/jeranaias/sage-tui/internal/ui/styles"
)

// View renders the whole screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.header.View()

	transcript := m.viewport.View()
	chips := m.chips.View()
	input := m.theme.InputContainer.Width(m.viewport.Width - 2).Render(m.composer.View())
	status := m.statusBar.View()

	contentParts := []string{transcript}
	if chips != "" {
		contentParts = append(contentParts, chips)
	}
	contentParts = append(contentParts, input)
	content := lipgloss.JoinVertical(lipgloss.Left, contentParts...)

	var body string
	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		body = content
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), content)
	}

	screen := lipgloss.JoinVertical(lipgloss.Left, header, body, status)

	if overlay := m.overlayView(); overlay != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	}
	return screen
}

// overlayView renders the active modal, empty when none is open.
func (m Model) overlayView() string {
	if m.lastError != "" {
		var b strings.Builder
		b.WriteString(m.theme.ErrorTitle.Render("Error"))
		b.WriteString("\n\n")
		b.WriteString(m.theme.ErrorMessage.Render(m.lastError))
		b.WriteString("\n\n")
		b.WriteString(m.theme.ShortcutDesc.Render("Press Esc to dismiss"))
		return m.theme.ErrorBox.Render(b.String())
	}

	if m.confirm.IsOpen() {
		return m.confirm.View()
	}

	switch m.overlay {
	case OverlayNewChat:
		var b strings.Builder
		b.WriteString(m.theme.ConfirmTitle.Render("New Chat"))
		b.WriteString("\n\n")
		b.WriteString(m.titleInput.View())
		b.WriteString("\n\n")
		b.WriteString(m.theme.ShortcutDesc.Render("Enter to create, Esc to cancel"))
		return m.theme.ConfirmBox.Render(b.String())

	case OverlayUpload:
		var b strings.Builder
		b.WriteString(m.theme.ConfirmTitle.Render("Upload Documents"))
		b.WriteString("\n\n")
		b.WriteString(m.pathInput.View())
		b.WriteString("\n\n")
		b.WriteString(m.theme.ShortcutDesc.Render("Enter to upload, Esc to cancel"))
		return m.theme.ConfirmBox.Render(b.String())

	case OverlayHelp:
		return m.helpView()
	}
	return ""
}

// helpView renders the grouped key binding reference.
func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(m.theme.ConfirmTitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")

	for _, group := range m.keyMap.FullHelp() {
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(m.theme.ShortcutKey.Render(padRight(h.Key, 10)))
			b.WriteString(" ")
			b.WriteString(m.theme.ShortcutDesc.Render(h.Desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.theme.ShortcutDesc.Render("Press any key to close"))

	return m.theme.ConfirmBox.Render(b.String())
}

// refreshTranscript rebuilds the viewport content from the view-model.
func (m *Model) refreshTranscript(gotoBottom bool) {
	msgs := m.vm.Messages()

	if m.vm.SelectedChatID() == "" {
		m.viewport.SetContent(m.emptyState("No chat selected", "Press C-n to start a new chat."))
		return
	}
	if len(msgs) == 0 && !m.spinner.Active() {
		m.viewport.SetContent(m.emptyState("No messages yet", "Type below to start the conversation."))
		return
	}

	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		renderer := components.MarkdownRenderer(nil)
		if !msg.IsUser() {
			renderer = m.renderMarkdown
		}
		bubble := components.NewMessageBubble(msg, m.theme, renderer)
		bubble.SetWidth(m.viewport.Width)
		bubble.ShowTimestamp = m.showTimestamps
		b.WriteString(bubble.View())
	}

	if m.spinner.Active() {
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View())
	}

	m.viewport.SetContent(b.String())
	if gotoBottom {
		m.viewport.GotoBottom()
	}
}

// emptyState renders a centered hint inside the transcript area.
func (m Model) emptyState(title, hint string) string {
	text := m.theme.HeaderTitle.Render(title) + "\n" + m.theme.ShortcutDesc.Render(hint)
	return lipgloss.Place(m.viewport.Width, m.viewport.Height,
		lipgloss.Center, lipgloss.Center, text)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
