// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
)

// =============================================================================
// ID TESTS
// =============================================================================

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ID
	}{
		{"numeric id", `{"id": 42}`, "42"},
		{"string id", `{"id": "abc-123"}`, "abc-123"},
		{"large numeric id", `{"id": 9007199254740993}`, "9007199254740993"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var chat Chat
			if err := json.Unmarshal([]byte(tc.in), &chat); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if chat.ID != tc.want {
				t.Errorf("ID = %q, want %q", chat.ID, tc.want)
			}
		})
	}
}

func TestID_MarshalJSON(t *testing.T) {
	numeric, err := json.Marshal(ID("42"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(numeric) != "42" {
		t.Errorf("numeric id marshaled to %s, want 42", numeric)
	}

	str, err := json.Marshal(ID("tmp_abc"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(str) != `"tmp_abc"` {
		t.Errorf("string id marshaled to %s, want \"tmp_abc\"", str)
	}
}

// =============================================================================
// SENDER TESTS
// =============================================================================

func TestNormalizeSender(t *testing.T) {
	tests := []struct {
		in   string
		want Sender
	}{
		{"user", SenderUser},
		{"ai", SenderAssistant},
		{"assistant", SenderAssistant},
		{"someusername", SenderAssistant},
		{"", SenderAssistant},
	}

	for _, tc := range tests {
		if got := NormalizeSender(tc.in); got != tc.want {
			t.Errorf("NormalizeSender(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMessage_UnmarshalNormalizesSender(t *testing.T) {
	var msg Message
	if err := json.Unmarshal([]byte(`{"id": 1, "sender": "ai", "content": "hi"}`), &msg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if msg.Sender != SenderAssistant {
		t.Errorf("Sender = %q, want %q", msg.Sender, SenderAssistant)
	}
}

// =============================================================================
// SEND REPLY TESTS
// =============================================================================

func TestSendReply_Confirmed(t *testing.T) {
	t.Run("user and ai messages", func(t *testing.T) {
		var reply SendReply
		raw := `{"user_message": {"id": 1, "content": "hi"}, "ai_message": {"id": 2, "sender": "ai", "content": "hello!"}}`
		if err := json.Unmarshal([]byte(raw), &reply); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}

		msgs := reply.Confirmed()
		if len(msgs) != 2 {
			t.Fatalf("Confirmed() returned %d messages, want 2", len(msgs))
		}
		if msgs[0].Sender != SenderUser || msgs[0].Content != "hi" {
			t.Errorf("first message = %+v, want user/hi", msgs[0])
		}
		if msgs[1].Sender != SenderAssistant || msgs[1].Content != "hello!" {
			t.Errorf("second message = %+v, want assistant/hello!", msgs[1])
		}
	})

	t.Run("legacy message field", func(t *testing.T) {
		reply := SendReply{Legacy: "legacy reply"}
		msgs := reply.Confirmed()
		if len(msgs) != 1 {
			t.Fatalf("Confirmed() returned %d messages, want 1", len(msgs))
		}
		if msgs[0].Sender != SenderAssistant || msgs[0].Content != "legacy reply" {
			t.Errorf("legacy message = %+v", msgs[0])
		}
	})

	t.Run("ai message wins over legacy", func(t *testing.T) {
		reply := SendReply{
			AIMessage: &Message{ID: "2", Content: "real"},
			Legacy:    "stale",
		}
		msgs := reply.Confirmed()
		if len(msgs) != 1 || msgs[0].Content != "real" {
			t.Errorf("Confirmed() = %+v, want single real message", msgs)
		}
	})

	t.Run("empty reply", func(t *testing.T) {
		if msgs := (SendReply{}).Confirmed(); len(msgs) != 0 {
			t.Errorf("Confirmed() on empty reply = %+v, want none", msgs)
		}
	})
}

// =============================================================================
// DISPLAY HELPERS
// =============================================================================

func TestChat_DisplayTitle(t *testing.T) {
	if got := (Chat{Title: "Research"}).DisplayTitle(); got != "Research" {
		t.Errorf("DisplayTitle() = %q", got)
	}
	if got := (Chat{}).DisplayTitle(); got != "Untitled Chat" {
		t.Errorf("DisplayTitle() on empty = %q, want Untitled Chat", got)
	}
}

func TestDocument_IsProcessing(t *testing.T) {
	if !(Document{Status: DocStatusProcessing}).IsProcessing() {
		t.Error("processing document should report IsProcessing")
	}
	if (Document{Status: DocStatusReady}).IsProcessing() {
		t.Error("ready document should not report IsProcessing")
	}
}
