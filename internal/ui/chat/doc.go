// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// The package follows the Bubble Tea architecture:
//   - model.go: the Model struct, construction, and sizing
//   - update.go: key handling and result message handling
//   - view.go: rendering, including overlays and the transcript
//   - commands.go: asynchronous view-model calls as tea.Cmd
//   - messages.go: typed result messages
//   - keys.go: keyboard bindings
//
// The chat model owns no backend state. All chat, message, and
// document data lives in the view-model; the model holds only UI
// concerns (focus, overlays, scroll position, inputs).
package chat
