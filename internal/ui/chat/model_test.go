// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/sage-tui/internal/api"
	"github.com/jeranaias/sage-tui/internal/model"
	"github.com/jeranaias/sage-tui/internal/session"
	"github.com/jeranaias/sage-tui/internal/ui/components"
	"github.com/jeranaias/sage-tui/internal/ui/styles"
	"github.com/jeranaias/sage-tui/internal/vm"
)

// stubGateway satisfies vm.Gateway with canned responses.
type stubGateway struct {
	chats []model.Chat
}

func (g *stubGateway) ListChats(ctx context.Context) ([]model.Chat, error) { return g.chats, nil }
func (g *stubGateway) CreateChat(ctx context.Context, title string) (model.Chat, error) {
	return model.Chat{ID: "1", Title: title}, nil
}
func (g *stubGateway) DeleteChat(ctx context.Context, id string) error { return nil }
func (g *stubGateway) ListMessages(ctx context.Context, chatID string) ([]model.Message, error) {
	return nil, nil
}
func (g *stubGateway) SendMessage(ctx context.Context, chatID, content string) (model.SendReply, error) {
	return model.SendReply{}, nil
}
func (g *stubGateway) ListDocuments(ctx context.Context, chatID string) ([]model.Document, error) {
	return nil, nil
}
func (g *stubGateway) UploadDocuments(ctx context.Context, chatID string, files []api.Upload) error {
	return nil
}
func (g *stubGateway) DeleteDocument(ctx context.Context, chatID, docID string) error { return nil }

func newTestModel(t *testing.T, selected string) Model {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	if selected != "" {
		if err := store.SetSelectedChat(selected); err != nil {
			t.Fatal(err)
		}
	}
	v := vm.New(&stubGateway{}, store, vm.Options{})
	m := New(v, styles.NewTheme(), Options{Timeout: 5 * time.Second, ShowTimestamps: true})
	m.setSize(120, 40)
	return m
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, "")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should produce a command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("ctrl+c = %v, want tea.Quit", msg)
	}
}

func TestNewChatOverlayFlow(t *testing.T) {
	m := newTestModel(t, "")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	m = next.(Model)
	if m.overlay != OverlayNewChat {
		t.Fatalf("overlay = %v, want OverlayNewChat", m.overlay)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.overlay != OverlayNone {
		t.Errorf("esc should close the overlay, got %v", m.overlay)
	}
}

func TestNewChatSubmitIssuesCommand(t *testing.T) {
	m := newTestModel(t, "")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("project notes")})
	m = next.(Model)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.overlay != OverlayNone {
		t.Error("submit should close the overlay")
	}
	if cmd == nil {
		t.Fatal("submit with a title should issue a command")
	}
}

func TestUploadRequiresSelection(t *testing.T) {
	m := newTestModel(t, "")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	m = next.(Model)
	if m.overlay == OverlayUpload {
		t.Error("upload overlay must not open without a selected chat")
	}

	m = newTestModel(t, "42")
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	m = next.(Model)
	if m.overlay != OverlayUpload {
		t.Error("upload overlay should open with a selected chat")
	}
}

func TestDeleteChatOpensConfirm(t *testing.T) {
	m := newTestModel(t, "42")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = next.(Model)
	if !m.confirm.IsOpen() {
		t.Fatal("delete chat should open the confirm overlay")
	}
	if m.pending != pendingDeleteChat || m.pendingID != "42" {
		t.Errorf("pending = %v %q, want delete of chat 42", m.pending, m.pendingID)
	}

	// Declining clears the pending action without a command.
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = next.(Model)
	if cmd != nil {
		t.Error("declined confirmation must not issue a command")
	}
	if m.pending != pendingNone {
		t.Error("declined confirmation should clear the pending action")
	}
}

func TestDeleteChatConfirmIssuesCommand(t *testing.T) {
	m := newTestModel(t, "42")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = next.(Model)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("accepted confirmation should issue the delete command")
	}
	if m.pending != pendingNone {
		t.Error("pending action should be cleared after dispatch")
	}
}

func TestSendWithoutSelectionShowsNotice(t *testing.T) {
	m := newTestModel(t, "")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hello")})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if !strings.Contains(m.statusBar.Notice, "Create a chat first") {
		t.Errorf("notice = %q, want create-a-chat hint", m.statusBar.Notice)
	}
}

func TestSendInFlightNotice(t *testing.T) {
	m := newTestModel(t, "42")

	next, _ := m.Update(SendCompleteMsg{Err: vm.ErrSendInFlight})
	m = next.(Model)
	if !strings.Contains(m.statusBar.Notice, "previous reply") {
		t.Errorf("notice = %q, want in-flight hint", m.statusBar.Notice)
	}
	if m.lastError != "" {
		t.Error("in-flight rejection must not raise a blocking error")
	}
}

func TestLoadFailureDoesNotBlock(t *testing.T) {
	m := newTestModel(t, "42")

	next, _ := m.Update(ChatsLoadedMsg{Err: context.DeadlineExceeded})
	m = next.(Model)
	if m.lastError != "" {
		t.Error("chat list load failure should be logged, not blocking")
	}
}

func TestMutationFailureBlocks(t *testing.T) {
	m := newTestModel(t, "42")

	next, _ := m.Update(ChatCreatedMsg{Err: context.DeadlineExceeded})
	m = next.(Model)
	if m.lastError == "" {
		t.Fatal("create failure should raise a blocking error")
	}

	// Keys other than dismiss are swallowed.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = next.(Model)
	if m.lastError == "" {
		t.Error("non-dismiss key must not clear the error")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.lastError != "" {
		t.Error("esc should dismiss the blocking error")
	}
}

func TestUploadNoticeCounts(t *testing.T) {
	m := newTestModel(t, "42")

	next, _ := m.Update(DocumentsUploadedMsg{Count: 2})
	m = next.(Model)
	if !strings.Contains(m.statusBar.Notice, "2 documents uploaded") {
		t.Errorf("notice = %q, want upload count", m.statusBar.Notice)
	}

	next, _ = m.Update(DocumentsUploadedMsg{Count: 1})
	m = next.(Model)
	if !strings.Contains(m.statusBar.Notice, "1 document uploaded") {
		t.Errorf("notice = %q, want singular form", m.statusBar.Notice)
	}
}

func TestStatusAfterSendComplete(t *testing.T) {
	m := newTestModel(t, "42")
	m.statusBar.SetStatus(components.StatusThinking)

	next, _ := m.Update(SendCompleteMsg{})
	m = next.(Model)
	if m.statusBar.Status != components.StatusReady {
		t.Errorf("status = %v, want ready after send completes", m.statusBar.Status)
	}
}

func TestViewRendersEmptyStates(t *testing.T) {
	m := newTestModel(t, "")
	m.refreshTranscript(false)

	if view := m.View(); !strings.Contains(view, "No chat selected") {
		t.Error("view should show the no-selection hint")
	}
}
