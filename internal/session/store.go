// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session persists the authentication token and the selected
// chat id. These two values are the only client-side state that survives
// a restart.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jeranaias/sage-tui/internal/util"
)

// ErrUnauthenticated is returned when no token is stored. The caller
// must direct the user to `sage login` and make no further backend calls.
var ErrUnauthenticated = errors.New("not authenticated")

// sessionFile is the file name under the sage config directory.
const sessionFile = "session.json"

// Session holds the persisted values.
type Session struct {
	Token          string `json:"access_token"`
	SelectedChatID string `json:"selected_chat_id"`
}

// =============================================================================
// STORE
// =============================================================================

// Store reads and writes the session file. All methods are safe for
// concurrent use.
type Store struct {
	mu      sync.Mutex
	path    string
	current Session
	loaded  bool
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the session file location under dir.
func DefaultPath(dir string) string {
	return filepath.Join(dir, sessionFile)
}

// Load reads the session from disk. It returns ErrUnauthenticated when
// the file is missing or holds no token; any other read or decode
// failure is reported as-is.
func (s *Store) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.current = Session{}
			s.loaded = true
			return Session{}, ErrUnauthenticated
		}
		return Session{}, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("failed to parse session file: %w", err)
	}

	s.current = sess
	s.loaded = true

	if sess.Token == "" {
		return Session{}, ErrUnauthenticated
	}
	return sess, nil
}

// Current returns the in-memory session. Callers should Load first.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SelectedChatID returns the persisted chat selection.
func (s *Store) SelectedChatID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.SelectedChatID
}

// =============================================================================
// MUTATIONS
// =============================================================================

// SetToken stores a new authentication token.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Token = token
	return s.persist()
}

// SetSelectedChat persists id as the current chat selection. An empty id
// clears the selection. No network effect.
func (s *Store) SetSelectedChat(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.SelectedChatID = id
	return s.persist()
}

// Logout clears both persisted values. Idempotent: logging out twice
// succeeds.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Session{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// persist writes the current session to disk. Caller holds the lock.
// The file contains the bearer token, hence the restrictive mode.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.current, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := util.AtomicWriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
