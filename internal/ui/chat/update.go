// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file contains the update loop. Failures from load operations
// are logged and leave the previous state on screen; failures from
// mutating operations (create, delete, send, upload) block with an
// error box the user must dismiss.
package chat

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/sage-tui/internal/ui/components"
	"github.com/jeranaias/sage-tui/internal/ui/styles"
	"github.com/jeranaias/sage-tui/internal/vm"
)

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		m.refreshSidebar()
		m.refreshTranscript(true)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		cmd := m.spinner.Update(msg)
		if m.spinner.Active() {
			m.refreshTranscript(true)
		}
		return m, cmd

	case ChatsLoadedMsg:
		if msg.Err != nil {
			// Load failures keep whatever was on screen.
			log.Printf("chat list load failed: %v", msg.Err)
		}
		m.refreshSidebar()
		return m, nil

	case ChatCreatedMsg:
		if msg.Err != nil {
			return m.blockOn("Could not create chat", msg.Err), nil
		}
		m.refreshSidebar()
		m.refreshTranscript(true)
		m.chips.SetDocuments(m.vm.Documents())
		m.statusBar.SetStatus(components.StatusReady)
		m.statusBar.SetNotice("Chat created")
		return m, clearNoticeCmd()

	case ChatDeletedMsg:
		if msg.Err != nil {
			return m.blockOn("Could not delete chat", msg.Err), nil
		}
		m.refreshSidebar()
		m.refreshTranscript(true)
		m.chips.SetDocuments(m.vm.Documents())
		m.statusBar.SetStatus(components.StatusReady)
		m.statusBar.SetNotice("Chat deleted")
		return m, clearNoticeCmd()

	case ConversationLoadedMsg:
		if msg.Err != nil {
			log.Printf("conversation load failed: %v", msg.Err)
		}
		m.chips.SetDocuments(msg.Documents)
		m.refreshTranscript(true)
		m.statusBar.SetStatus(components.StatusReady)
		return m, nil

	case SendCompleteMsg:
		m.spinner.Stop()
		m.statusBar.SetStatus(components.StatusReady)
		if msg.Err != nil {
			if errors.Is(msg.Err, vm.ErrSendInFlight) {
				m.statusBar.SetNotice("Still waiting for the previous reply")
				return m, clearNoticeCmd()
			}
			m.refreshTranscript(true)
			return m.blockOn("Could not send message", msg.Err), nil
		}
		m.refreshTranscript(true)
		return m, nil

	case DocumentsLoadedMsg:
		if msg.Err != nil {
			log.Printf("document list load failed: %v", msg.Err)
		}
		m.chips.SetDocuments(msg.Documents)
		return m, nil

	case DocumentsUploadedMsg:
		m.statusBar.SetStatus(components.StatusReady)
		if msg.Err != nil {
			return m.blockOn("Could not upload documents", msg.Err), nil
		}
		m.chips.SetDocuments(m.vm.Documents())
		noun := "documents"
		if msg.Count == 1 {
			noun = "document"
		}
		m.statusBar.SetNotice(fmt.Sprintf("%d %s uploaded, processing", msg.Count, noun))
		return m, clearNoticeCmd()

	case DocumentDeletedMsg:
		if msg.Err != nil {
			return m.blockOn("Could not remove document", msg.Err), nil
		}
		m.chips.SetDocuments(m.vm.Documents())
		m.statusBar.SetNotice("Document removed")
		return m, clearNoticeCmd()

	case ClearNoticeMsg:
		m.statusBar.SetNotice("")
		return m, nil

	case ClearErrorMsg:
		m.lastError = ""
		return m, nil
	}

	// Remaining messages (cursor blink etc.) go to the active input.
	return m.updateInputs(msg)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit always works, even under overlays.
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	// A blocking error must be dismissed first.
	if m.lastError != "" {
		if key.Matches(msg, m.keyMap.Cancel) || key.Matches(msg, m.keyMap.Submit) {
			m.lastError = ""
		}
		return m, nil
	}

	// Open overlays capture everything else.
	if m.confirm.IsOpen() {
		return m.handleConfirmKey(msg)
	}
	switch m.overlay {
	case OverlayNewChat:
		return m.handleNewChatKey(msg)
	case OverlayUpload:
		return m.handleUploadKey(msg)
	case OverlayHelp:
		m.overlay = OverlayNone
		return m, nil
	}

	// Global bindings.
	switch {
	case key.Matches(msg, m.keyMap.Help):
		// "?" goes into the composer while it is focused.
		if m.focus != FocusComposer {
			m.overlay = OverlayHelp
			return m, nil
		}

	case key.Matches(msg, m.keyMap.FocusNext):
		m.cycleFocus()
		return m, nil

	case key.Matches(msg, m.keyMap.NewChat):
		m.overlay = OverlayNewChat
		m.titleInput.Reset()
		m.composer.Blur()
		return m, m.titleInput.Focus()

	case key.Matches(msg, m.keyMap.Upload):
		if m.vm.SelectedChatID() == "" {
			m.statusBar.SetNotice("Select a chat before uploading")
			return m, clearNoticeCmd()
		}
		m.overlay = OverlayUpload
		m.pathInput.Reset()
		m.composer.Blur()
		return m, m.pathInput.Focus()

	case key.Matches(msg, m.keyMap.DeleteChat):
		return m.requestDeleteChat()

	case key.Matches(msg, m.keyMap.RefreshDocs):
		return m, m.refreshDocumentsCmd()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	// Focus-specific bindings.
	switch m.focus {
	case FocusSidebar:
		return m.handleSidebarKey(msg)
	case FocusDocs:
		return m.handleDocsKey(msg)
	default:
		return m.handleComposerKey(msg)
	}
}

func (m Model) handleComposerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		text := strings.TrimSpace(m.composer.Value())
		if text == "" {
			return m, nil
		}
		if m.vm.SelectedChatID() == "" {
			m.statusBar.SetNotice("Create a chat first (C-n)")
			return m, clearNoticeCmd()
		}
		if m.vm.SendInFlight() {
			m.statusBar.SetNotice("Still waiting for the previous reply")
			return m, clearNoticeCmd()
		}
		m.composer.Reset()
		m.statusBar.SetStatus(components.StatusThinking)
		return m, tea.Batch(m.sendMessageCmd(text), m.spinner.Start())

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.sidebar.MoveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.sidebar.MoveCursor(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		chat, ok := m.sidebar.CursorChat()
		if !ok {
			return m, nil
		}
		if chat.ID.String() == m.vm.SelectedChatID() {
			m.focus = FocusComposer
			return m, m.composer.Focus()
		}
		if err := m.vm.SelectChat(chat.ID.String()); err != nil {
			return m.blockOn("Could not switch chat", err), nil
		}
		m.refreshSidebar()
		m.refreshTranscript(true)
		m.chips.SetDocuments(nil)
		m.statusBar.SetStatus(components.StatusLoading)
		m.focus = FocusComposer
		return m, tea.Batch(m.loadConversationCmd(), m.composer.Focus())
	}
	return m, nil
}

func (m Model) handleDocsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.chips.MoveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.chips.MoveCursor(1)
		return m, nil

	case key.Matches(msg, m.keyMap.DeleteDoc), key.Matches(msg, m.keyMap.Submit):
		doc, ok := m.chips.CursorDocument()
		if !ok {
			return m, nil
		}
		m.pending = pendingDeleteDoc
		m.pendingID = doc.ID.String()
		m.confirm.Open("Remove this document from the chat?")
		return m, nil
	}
	return m, nil
}

// requestDeleteChat opens the confirm overlay for the chat under the
// sidebar cursor, falling back to the current selection.
func (m Model) requestDeleteChat() (tea.Model, tea.Cmd) {
	id := m.vm.SelectedChatID()
	if m.focus == FocusSidebar {
		if chat, ok := m.sidebar.CursorChat(); ok {
			id = chat.ID.String()
		}
	}
	if id == "" {
		m.statusBar.SetNotice("No chat selected")
		return m, clearNoticeCmd()
	}
	m.pending = pendingDeleteChat
	m.pendingID = id
	m.confirm.Open("Are you sure you want to delete this chat? This action cannot be undone.")
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.confirm.Update(msg) {
	case components.ConfirmYes:
		action, id := m.pending, m.pendingID
		m.pending, m.pendingID = pendingNone, ""
		switch action {
		case pendingDeleteChat:
			m.statusBar.SetStatus(components.StatusLoading)
			return m, m.deleteChatCmd(id)
		case pendingDeleteDoc:
			return m, m.deleteDocumentCmd(id)
		}

	case components.ConfirmNo:
		m.pending, m.pendingID = pendingNone, ""
	}
	return m, nil
}

func (m Model) handleNewChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		m.overlay = OverlayNone
		m.titleInput.Blur()
		return m, m.composer.Focus()

	case key.Matches(msg, m.keyMap.Submit):
		title := strings.TrimSpace(m.titleInput.Value())
		m.overlay = OverlayNone
		m.titleInput.Blur()
		if title == "" {
			return m, m.composer.Focus()
		}
		m.statusBar.SetStatus(components.StatusLoading)
		return m, tea.Batch(m.createChatCmd(title), m.composer.Focus())
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

func (m Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		m.overlay = OverlayNone
		m.pathInput.Blur()
		return m, m.composer.Focus()

	case key.Matches(msg, m.keyMap.Submit):
		paths := strings.Fields(m.pathInput.Value())
		m.overlay = OverlayNone
		m.pathInput.Blur()
		if len(paths) == 0 {
			return m, m.composer.Focus()
		}
		m.statusBar.SetStatus(components.StatusUploading)
		return m, tea.Batch(m.uploadDocumentsCmd(paths), m.composer.Focus())
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

// =============================================================================
// STATE HELPERS
// =============================================================================

// cycleFocus rotates composer -> sidebar -> documents -> composer,
// skipping panes that have nothing to focus.
func (m *Model) cycleFocus() {
	switch m.focus {
	case FocusComposer:
		m.composer.Blur()
		if len(m.vm.Chats()) > 0 && m.theme.GetLayoutMode() != styles.LayoutNarrow {
			m.focus = FocusSidebar
			return
		}
		fallthrough
	case FocusSidebar:
		if len(m.vm.Documents()) > 0 {
			m.focus = FocusDocs
			m.chips.MoveCursor(1)
			return
		}
		fallthrough
	default:
		m.chips.Blur()
		m.focus = FocusComposer
		m.composer.Focus()
	}
}

// blockOn records a blocking error; the user must dismiss it before
// continuing. The failure is also logged.
func (m Model) blockOn(prefix string, err error) Model {
	log.Printf("%s: %v", prefix, err)
	m.lastError = fmt.Sprintf("%s: %v", prefix, err)
	m.statusBar.SetStatus(components.StatusError)
	return m
}

// refreshSidebar pushes the current chat cache into the sidebar and
// keeps the header title current.
func (m *Model) refreshSidebar() {
	m.sidebar.SetChats(m.vm.Chats(), m.vm.SelectedChatID())
	if chat, ok := m.vm.SelectedChat(); ok {
		m.header.SetChatTitle(chat.DisplayTitle())
	} else {
		m.header.SetChatTitle("")
	}
}

// updateInputs forwards non-key messages to the focused text input.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.composer, cmd = m.composer.Update(msg)
	cmds = append(cmds, cmd)
	if m.overlay == OverlayNewChat {
		m.titleInput, cmd = m.titleInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.overlay == OverlayUpload {
		m.pathInput, cmd = m.pathInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}
