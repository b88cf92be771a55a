// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines all Bubble Tea message types used by the chat
// interface. Messages are organized into the following categories:
//   - Chat list: load, create, delete results
//   - Conversation: message and document list results, send results
//   - Documents: upload and delete results
//   - UI state: transient notices
//
// All message types follow Bubble Tea conventions and are immutable.
// A message carrying a non-nil Err reports a failed operation; the
// update loop decides whether the failure blocks (mutations) or is
// merely logged (loads).
package chat

import (
	"github.com/jeranaias/sage-tui/internal/model"
)

// =============================================================================
// CHAT LIST MESSAGES
// =============================================================================

// ChatsLoadedMsg delivers a refreshed chat list snapshot.
type ChatsLoadedMsg struct {
	Chats []model.Chat
	Err   error
}

// ChatCreatedMsg reports the outcome of a chat creation.
type ChatCreatedMsg struct {
	Chat model.Chat
	Err  error
}

// ChatDeletedMsg reports the outcome of a chat deletion.
type ChatDeletedMsg struct {
	Err error
}

// =============================================================================
// CONVERSATION MESSAGES
// =============================================================================

// ConversationLoadedMsg delivers the selected chat's messages and
// documents after a selection change or startup load.
type ConversationLoadedMsg struct {
	Messages  []model.Message
	Documents []model.Document
	Err       error
}

// SendCompleteMsg reports the outcome of a message send.
type SendCompleteMsg struct {
	Err error
}

// =============================================================================
// DOCUMENT MESSAGES
// =============================================================================

// DocumentsLoadedMsg delivers a refreshed document list snapshot.
type DocumentsLoadedMsg struct {
	Documents []model.Document
	Err       error
}

// DocumentsUploadedMsg reports the outcome of an upload batch.
type DocumentsUploadedMsg struct {
	Count int
	Err   error
}

// DocumentDeletedMsg reports the outcome of a document deletion.
type DocumentDeletedMsg struct {
	Err error
}

// =============================================================================
// UI STATE MESSAGES
// =============================================================================

// ClearNoticeMsg expires the transient status bar notice.
type ClearNoticeMsg struct{}

// ClearErrorMsg dismisses the blocking error box.
type ClearErrorMsg struct{}
