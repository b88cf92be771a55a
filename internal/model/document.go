// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// Document status values reported by the backend. Ingestion runs in a
// background worker, so freshly uploaded documents stay in "processing"
// until indexing completes.
const (
	DocStatusProcessing = "processing"
	DocStatusReady      = "ready"
)

// Document is a file attached to a chat. The client only ever holds a
// cached per-chat list; the content lives server-side.
type Document struct {
	ID        ID        `json:"id"`
	Filename  string    `json:"filename"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// IsProcessing reports whether the document is still being ingested.
func (d Document) IsProcessing() bool {
	return d.Status == DocStatusProcessing
}
