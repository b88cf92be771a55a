// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the asynchronous commands the update loop issues.
// Each command runs a view-model operation off the UI goroutine under
// a request timeout and delivers the outcome as a typed message.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// withTimeout derives a request context from the configured timeout.
func (m *Model) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}

// refreshChatsCmd reloads the chat list.
func (m *Model) refreshChatsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		err := m.vm.RefreshChats(ctx)
		return ChatsLoadedMsg{Chats: m.vm.Chats(), Err: err}
	}
}

// loadConversationCmd loads messages and documents for the selection.
func (m *Model) loadConversationCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		err := m.vm.LoadSelected(ctx)
		return ConversationLoadedMsg{
			Messages:  m.vm.Messages(),
			Documents: m.vm.Documents(),
			Err:       err,
		}
	}
}

// createChatCmd creates a chat and selects it.
func (m *Model) createChatCmd(title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		chat, err := m.vm.CreateChat(ctx, title)
		return ChatCreatedMsg{Chat: chat, Err: err}
	}
}

// deleteChatCmd deletes a chat. Confirmation has already been collected
// by the overlay, so the view-model applies it directly.
func (m *Model) deleteChatCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		return ChatDeletedMsg{Err: m.vm.DeleteChat(ctx, id)}
	}
}

// sendMessageCmd posts the composed message.
func (m *Model) sendMessageCmd(text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		return SendCompleteMsg{Err: m.vm.SendMessage(ctx, text)}
	}
}

// uploadDocumentsCmd uploads the given local files to the selection.
func (m *Model) uploadDocumentsCmd(paths []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		err := m.vm.UploadDocuments(ctx, paths)
		return DocumentsUploadedMsg{Count: len(paths), Err: err}
	}
}

// refreshDocumentsCmd reloads the selected chat's document list.
func (m *Model) refreshDocumentsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		err := m.vm.RefreshDocuments(ctx)
		return DocumentsLoadedMsg{Documents: m.vm.Documents(), Err: err}
	}
}

// deleteDocumentCmd removes a document from the selection.
func (m *Model) deleteDocumentCmd(docID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		return DocumentDeletedMsg{Err: m.vm.DeleteDocument(ctx, docID)}
	}
}

// clearNoticeCmd expires the status notice after a short delay.
func clearNoticeCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return ClearNoticeMsg{}
	})
}
