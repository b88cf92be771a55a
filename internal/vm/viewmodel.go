// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package vm holds the chat view-model: the in-memory representation of
// the selected chat's message and document lists, plus the cached chat
// list. It is the single source of truth the renderer reads from.
//
// All state lives in an explicitly constructed ViewModel; there are no
// package-level variables. Operations mutate state only from gateway
// responses and the one permitted optimistic local edit (the pending
// message echo). The renderer never sees partial mutations: every
// failing operation leaves the pre-operation state intact.
package vm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/sage-tui/internal/api"
	"github.com/jeranaias/sage-tui/internal/model"
	"github.com/jeranaias/sage-tui/internal/session"
	"github.com/jeranaias/sage-tui/internal/util"
)

// Confirmation prompts for destructive operations.
const (
	deleteChatPrompt     = "Are you sure you want to delete this chat? This action cannot be undone."
	deleteDocumentPrompt = "Remove this document from the chat?"
)

var (
	// ErrSendInFlight is returned when a send is attempted while an
	// optimistic message is still pending. At most one optimistic
	// message may exist at a time.
	ErrSendInFlight = errors.New("a message send is already in flight")

	// ErrFileRejected wraps client-side upload validation failures
	// (size limit, disallowed extension, unreadable file).
	ErrFileRejected = errors.New("file rejected")
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Gateway is the backend surface the view-model drives. *api.Client
// satisfies it; tests substitute fakes.
type Gateway interface {
	ListChats(ctx context.Context) ([]model.Chat, error)
	CreateChat(ctx context.Context, title string) (model.Chat, error)
	DeleteChat(ctx context.Context, id string) error
	ListMessages(ctx context.Context, chatID string) ([]model.Message, error)
	SendMessage(ctx context.Context, chatID, content string) (model.SendReply, error)
	ListDocuments(ctx context.Context, chatID string) ([]model.Document, error)
	UploadDocuments(ctx context.Context, chatID string, files []api.Upload) error
	DeleteDocument(ctx context.Context, chatID, docID string) error
}

// Confirmer is consulted before destructive operations.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm approves every prompt. Used where confirmation has
// already been collected upstream (the TUI's confirm overlay).
var AlwaysConfirm = ConfirmerFunc(func(string) bool { return true })

// =============================================================================
// VIEW-MODEL
// =============================================================================

// Options configures a ViewModel.
type Options struct {
	// Confirm gates destructive operations. Nil means AlwaysConfirm.
	Confirm Confirmer
	// MaxFileSize is the per-file upload limit in bytes (0 = unlimited).
	MaxFileSize int64
	// AllowedTypes lists acceptable upload extensions, dot included
	// (empty = all types allowed).
	AllowedTypes []string
}

// ViewModel owns the client-side chat state. Safe for concurrent use;
// accessors return snapshots.
type ViewModel struct {
	mu      sync.Mutex
	gw      Gateway
	sess    *session.Store
	confirm Confirmer

	maxFileSize  int64
	allowedTypes []string

	chats     []model.Chat
	messages  []model.Message
	documents []model.Document

	// pending is the single in-flight optimistic message, nil otherwise.
	pending *model.Message

	// epoch increments on every selection change. Results of refreshes
	// started under an older epoch are discarded, so a slow response
	// for an abandoned chat can never overwrite the current one.
	epoch uint64
}

// New creates a view-model over the given gateway and session store.
func New(gw Gateway, sess *session.Store, opts Options) *ViewModel {
	confirm := opts.Confirm
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	return &ViewModel{
		gw:           gw,
		sess:         sess,
		confirm:      confirm,
		maxFileSize:  opts.MaxFileSize,
		allowedTypes: opts.AllowedTypes,
	}
}

// =============================================================================
// SNAPSHOTS
// =============================================================================

// Chats returns a copy of the cached chat list.
func (v *ViewModel) Chats() []model.Chat {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]model.Chat(nil), v.chats...)
}

// Messages returns a copy of the selected chat's messages in display order.
func (v *ViewModel) Messages() []model.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]model.Message(nil), v.messages...)
}

// Documents returns a copy of the selected chat's document list.
func (v *ViewModel) Documents() []model.Document {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]model.Document(nil), v.documents...)
}

// SelectedChatID returns the current chat selection, empty if none.
func (v *ViewModel) SelectedChatID() string {
	return v.sess.SelectedChatID()
}

// SelectedChat returns the cached Chat record for the current selection.
func (v *ViewModel) SelectedChat() (model.Chat, bool) {
	id := v.sess.SelectedChatID()
	if id == "" {
		return model.Chat{}, false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, c := range v.chats {
		if c.ID.String() == id {
			return c, true
		}
	}
	return model.Chat{}, false
}

// SendInFlight reports whether an optimistic message is pending.
func (v *ViewModel) SendInFlight() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending != nil
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// RefreshChats replaces the chat cache from the backend. On failure the
// prior cache is left untouched and the error is returned; load-time
// callers log it rather than surfacing it.
func (v *ViewModel) RefreshChats(ctx context.Context) error {
	chats, err := v.gw.ListChats(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.chats = chats
	return nil
}

// SelectChat persists id as the new selection and discards the previous
// chat's messages and documents. It performs no network calls; callers
// follow up with RefreshMessages and RefreshDocuments (or LoadSelected).
func (v *ViewModel) SelectChat(id string) error {
	if err := v.sess.SetSelectedChat(id); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.epoch++
	v.messages = nil
	v.documents = nil
	v.pending = nil
	return nil
}

// CreateChat creates a chat with the trimmed title, reloads the chat
// list, and selects the new chat. An empty title is a silent no-op and
// returns a zero Chat.
func (v *ViewModel) CreateChat(ctx context.Context, title string) (model.Chat, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Chat{}, nil
	}

	chat, err := v.gw.CreateChat(ctx, title)
	if err != nil {
		return model.Chat{}, err
	}

	if err := v.RefreshChats(ctx); err != nil {
		log.Printf("chat list refresh after create failed: %v", err)
	}
	if err := v.SelectChat(chat.ID.String()); err != nil {
		return chat, err
	}
	return chat, nil
}

// DeleteChat deletes a chat after confirmation. When the deleted chat
// was selected, the selection is cleared. The chat list is reloaded
// afterwards. A declined confirmation is a no-op, not an error.
func (v *ViewModel) DeleteChat(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if !v.confirm.Confirm(deleteChatPrompt) {
		return nil
	}

	if err := v.gw.DeleteChat(ctx, id); err != nil {
		return err
	}

	if v.sess.SelectedChatID() == id {
		if err := v.SelectChat(""); err != nil {
			log.Printf("failed to clear selection: %v", err)
		}
	}
	if err := v.RefreshChats(ctx); err != nil {
		log.Printf("chat list refresh after delete failed: %v", err)
	}
	return nil
}

// =============================================================================
// MESSAGE OPERATIONS
// =============================================================================

// RefreshMessages replaces the message list for the selected chat. A
// result that arrives after the selection has changed is discarded.
func (v *ViewModel) RefreshMessages(ctx context.Context) error {
	chatID := v.sess.SelectedChatID()
	if chatID == "" {
		return nil
	}
	v.mu.Lock()
	epoch := v.epoch
	v.mu.Unlock()

	msgs, err := v.gw.ListMessages(ctx, chatID)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.epoch != epoch {
		return nil // stale: selection changed while in flight
	}
	v.messages = msgs
	if v.pending != nil {
		// Keep the optimistic echo visible; the backend does not know
		// about it yet.
		v.messages = append(v.messages, *v.pending)
	}
	return nil
}

// SendMessage optimistically appends the user's message, posts it, and
// reconciles against the reply. The optimistic entry is removed by exact
// id match in every outcome; on failure nothing else changes.
//
// Empty text or no selection is a silent no-op.
func (v *ViewModel) SendMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	chatID := v.sess.SelectedChatID()
	if text == "" || chatID == "" {
		return nil
	}

	// The echo is sanitized for display; the wire carries the raw text.
	tmp := model.Message{
		ID:         model.ID("tmp_" + uuid.NewString()),
		Sender:     model.SenderUser,
		Content:    util.SanitizeText(text),
		CreatedAt:  time.Now(),
		Optimistic: true,
	}

	v.mu.Lock()
	if v.pending != nil {
		v.mu.Unlock()
		return ErrSendInFlight
	}
	v.pending = &tmp
	v.messages = append(v.messages, tmp)
	epoch := v.epoch
	v.mu.Unlock()

	reply, err := v.gw.SendMessage(ctx, chatID, text)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.removeMessageLocked(tmp.ID)
	if v.pending != nil && v.pending.ID == tmp.ID {
		v.pending = nil
	}
	if err != nil {
		return err
	}
	if v.epoch != epoch {
		return nil // selection changed mid-send; reply belongs to an abandoned chat
	}
	v.messages = append(v.messages, reply.Confirmed()...)
	return nil
}

// removeMessageLocked removes a message by exact id match, never by
// position. Caller holds the lock.
func (v *ViewModel) removeMessageLocked(id model.ID) {
	for i, m := range v.messages {
		if m.ID == id {
			v.messages = append(v.messages[:i], v.messages[i+1:]...)
			return
		}
	}
}

// =============================================================================
// DOCUMENT OPERATIONS
// =============================================================================

// RefreshDocuments replaces the document list for the selected chat,
// with the same staleness rule as RefreshMessages.
func (v *ViewModel) RefreshDocuments(ctx context.Context) error {
	chatID := v.sess.SelectedChatID()
	if chatID == "" {
		return nil
	}
	v.mu.Lock()
	epoch := v.epoch
	v.mu.Unlock()

	docs, err := v.gw.ListDocuments(ctx, chatID)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.epoch != epoch {
		return nil
	}
	v.documents = docs
	return nil
}

// UploadDocuments validates and uploads local files to the selected
// chat, then refreshes the document list. An empty path list or no
// selection is a silent no-op. Validation failures reject the whole
// batch before any data is transferred.
func (v *ViewModel) UploadDocuments(ctx context.Context, paths []string) error {
	chatID := v.sess.SelectedChatID()
	if len(paths) == 0 || chatID == "" {
		return nil
	}

	for _, p := range paths {
		if err := v.validateUpload(p); err != nil {
			return err
		}
	}

	files := make([]api.Upload, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeUploads(files)
			return fmt.Errorf("%w: %s: %v", ErrFileRejected, filepath.Base(p), err)
		}
		files = append(files, api.Upload{Name: filepath.Base(p), Reader: f})
	}
	defer closeUploads(files)

	if err := v.gw.UploadDocuments(ctx, chatID, files); err != nil {
		return err
	}

	if err := v.RefreshDocuments(ctx); err != nil {
		log.Printf("document refresh after upload failed: %v", err)
	}
	return nil
}

// DeleteDocument removes a document after confirmation and refreshes the
// document list. A declined confirmation is a no-op.
func (v *ViewModel) DeleteDocument(ctx context.Context, docID string) error {
	chatID := v.sess.SelectedChatID()
	if chatID == "" || docID == "" {
		return nil
	}
	if !v.confirm.Confirm(deleteDocumentPrompt) {
		return nil
	}

	if err := v.gw.DeleteDocument(ctx, chatID, docID); err != nil {
		return err
	}
	if err := v.RefreshDocuments(ctx); err != nil {
		log.Printf("document refresh after delete failed: %v", err)
	}
	return nil
}

// validateUpload enforces the configured size and type limits for one path.
func (v *ViewModel) validateUpload(path string) error {
	name := filepath.Base(path)

	if len(v.allowedTypes) > 0 {
		ext := strings.ToLower(filepath.Ext(path))
		allowed := false
		for _, t := range v.allowedTypes {
			if strings.ToLower(t) == ext {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("%w: %s: file type %q is not allowed", ErrFileRejected, name, ext)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFileRejected, name, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s: is a directory", ErrFileRejected, name)
	}
	if v.maxFileSize > 0 && info.Size() > v.maxFileSize {
		return fmt.Errorf("%w: %s: %d bytes exceeds the %d byte limit",
			ErrFileRejected, name, info.Size(), v.maxFileSize)
	}
	return nil
}

// closeUploads closes any upload readers that are closers.
func closeUploads(files []api.Upload) {
	for _, f := range files {
		if c, ok := f.Reader.(interface{ Close() error }); ok {
			c.Close()
		}
	}
}

// =============================================================================
// COMBINED LOADS
// =============================================================================

// LoadSelected refreshes messages and documents for the selected chat
// concurrently, mirroring how the two fetches race after a selection.
func (v *ViewModel) LoadSelected(ctx context.Context) error {
	var wg sync.WaitGroup
	var msgErr, docErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		msgErr = v.RefreshMessages(ctx)
	}()
	go func() {
		defer wg.Done()
		docErr = v.RefreshDocuments(ctx)
	}()
	wg.Wait()

	return errors.Join(msgErr, docErr)
}
