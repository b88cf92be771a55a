// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// login.go - Token entry and session teardown.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jeranaias/sage-tui/internal/session"
)

// RunLogin prompts for an access token and stores it. The token is
// read without echo; pasting is the expected entry method.
func RunLogin(store *session.Store) error {
	if !IsTTY() {
		return errors.New("login requires an interactive terminal")
	}

	fmt.Print("Access token (input hidden): ")
	// SECURITY: no echo; the token never appears on screen or in
	// shell history.
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return errors.New("no token entered")
	}

	if err := store.SetToken(token); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	fmt.Println("Logged in. Run sage to start chatting.")
	return nil
}

// RunLogout removes the stored session. Already being logged out is
// not an error.
func RunLogout(store *session.Store) error {
	if err := store.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}
