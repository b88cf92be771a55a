// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// Chat is a chat session owned by the backend. The client holds a
// read-only cached list; create/delete invalidate it with a full reload.
type Chat struct {
	ID        ID        `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayTitle returns the chat title, or a placeholder when unset.
func (c Chat) DisplayTitle() string {
	if c.Title == "" {
		return "Untitled Chat"
	}
	return c.Title
}

// DisplayDate returns the creation date formatted for the sidebar.
func (c Chat) DisplayDate() string {
	if c.CreatedAt.IsZero() {
		return ""
	}
	return c.CreatedAt.Format("Jan 2, 2006")
}
