// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestLoad_MissingFile(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load()
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Load() on missing file = %v, want ErrUnauthenticated", err)
	}
}

func TestLoad_EmptyToken(t *testing.T) {
	store := newTestStore(t)

	if err := store.SetSelectedChat("42"); err != nil {
		t.Fatalf("SetSelectedChat() error = %v", err)
	}

	_, err := store.Load()
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Load() with empty token = %v, want ErrUnauthenticated", err)
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)

	if err := store.SetToken("tok-abc"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	if err := store.SetSelectedChat("42"); err != nil {
		t.Fatalf("SetSelectedChat() error = %v", err)
	}

	// A fresh store must read back both values.
	sess, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if sess.Token != "tok-abc" {
		t.Errorf("Token = %q, want tok-abc", sess.Token)
	}
	if sess.SelectedChatID != "42" {
		t.Errorf("SelectedChatID = %q, want 42", sess.SelectedChatID)
	}
}

func TestSessionFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)

	if err := store.SetToken("secret"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}
}

func TestLogout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)

	if err := store.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := store.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("session file should be removed after logout, stat err = %v", err)
	}
	if store.Current().Token != "" {
		t.Error("token should be cleared in memory")
	}

	// Idempotent.
	if err := store.Logout(); err != nil {
		t.Errorf("second Logout() error = %v, want nil", err)
	}
}

func TestClearSelection(t *testing.T) {
	store := newTestStore(t)

	if err := store.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := store.SetSelectedChat("42"); err != nil {
		t.Fatal(err)
	}
	if err := store.SetSelectedChat(""); err != nil {
		t.Fatalf("clearing selection error = %v", err)
	}
	if got := store.SelectedChatID(); got != "" {
		t.Errorf("SelectedChatID = %q, want empty", got)
	}
}
