// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the sage TUI:
// the header, the chat sidebar, document chips, the status bar, the
// loading spinner, and the confirm overlay. Components are pure view
// code; they render from data handed to them and hold no backend state.
package components
