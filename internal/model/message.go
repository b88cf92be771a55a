// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// SENDER
// =============================================================================

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// NormalizeSender maps backend sender values onto the two senders the
// client knows. The server historically stored "ai" for assistant
// messages; anything that is not the user is treated as the assistant.
func NormalizeSender(s string) Sender {
	if s == string(SenderUser) {
		return SenderUser
	}
	return SenderAssistant
}

// UnmarshalJSON normalizes the sender while decoding.
func (s *Sender) UnmarshalJSON(data []byte) error {
	// Strip quotes without a full unmarshal; senders are plain tokens.
	raw := string(data)
	if len(raw) >= 2 && raw[0] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	*s = NormalizeSender(raw)
	return nil
}

// =============================================================================
// MESSAGE
// =============================================================================

// Message is a single chat message in display order.
//
// Optimistic messages are client-generated echoes inserted before the
// server confirms a send; they carry a temporary id and are removed by
// exact id match once the real reply (or a failure) arrives.
type Message struct {
	ID        ID        `json:"id"`
	Sender    Sender    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at,omitempty"`

	// Optimistic is never set by the backend.
	Optimistic bool `json:"-"`
}

// IsUser reports whether the message was authored by the user.
func (m Message) IsUser() bool { return m.Sender == SenderUser }

// =============================================================================
// SEND REPLY ENVELOPE
// =============================================================================

// SendReply is the response envelope for a message send. Current backends
// return the persisted user message plus the assistant reply; older ones
// returned a bare "message" string.
type SendReply struct {
	UserMessage *Message `json:"user_message"`
	AIMessage   *Message `json:"ai_message"`
	Legacy      string   `json:"message"`
}

// Confirmed returns the messages to append to the transcript, in order,
// with senders forced regardless of what the backend claimed: the user
// echo first (as the user), then the assistant reply.
func (r SendReply) Confirmed() []Message {
	var out []Message
	if r.UserMessage != nil {
		m := *r.UserMessage
		m.Sender = SenderUser
		out = append(out, m)
	}
	switch {
	case r.AIMessage != nil:
		m := *r.AIMessage
		m.Sender = SenderAssistant
		out = append(out, m)
	case r.Legacy != "":
		out = append(out, Message{Sender: SenderAssistant, Content: r.Legacy})
	}
	return out
}
