// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chats.go - Non-interactive chat management commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/jeranaias/sage-tui/internal/session"
	"github.com/jeranaias/sage-tui/internal/util"
	"github.com/jeranaias/sage-tui/internal/vm"
)

// RunChats dispatches the chats subcommands. Confirmation for the
// delete subcommand is collected here, so the view-model should be
// built with vm.AlwaysConfirm (same pattern as the TUI overlay).
func RunChats(ctx context.Context, v *vm.ViewModel, sub string, rest []string, confirm vm.Confirmer, out io.Writer) error {
	switch sub {
	case "", "list":
		return runChatsList(ctx, v, out)
	case "delete":
		if len(rest) != 1 {
			return errors.New("usage: sage chats delete <id>")
		}
		return runChatsDelete(ctx, v, rest[0], confirm, out)
	default:
		return fmt.Errorf("unknown chats subcommand: %s", sub)
	}
}

func runChatsList(ctx context.Context, v *vm.ViewModel, out io.Writer) error {
	if err := v.RefreshChats(ctx); err != nil {
		return fmt.Errorf("failed to load chats: %w", err)
	}

	chats := v.Chats()
	if len(chats) == 0 {
		fmt.Fprintln(out, "No chats yet")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCREATED")
	for _, c := range chats {
		marker := ""
		if c.ID.String() == v.SelectedChatID() {
			marker = " *"
		}
		// Titles are backend data; keep terminal output injection-free.
		title := util.TruncateRunes(util.SanitizeLine(c.DisplayTitle()), 48)
		fmt.Fprintf(w, "%s%s\t%s\t%s\n", c.ID, marker, title, c.DisplayDate())
	}
	return w.Flush()
}

func runChatsDelete(ctx context.Context, v *vm.ViewModel, id string, confirm vm.Confirmer, out io.Writer) error {
	if !confirm.Confirm("Are you sure you want to delete this chat? This action cannot be undone.") {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}
	if err := v.DeleteChat(ctx, id); err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	fmt.Fprintln(out, "Deleted.")
	return nil
}

// RequireSession loads the stored session and translates a missing one
// into a friendly hint.
func RequireSession(store *session.Store) error {
	if _, err := store.Load(); err != nil {
		if errors.Is(err, session.ErrUnauthenticated) {
			fmt.Fprintln(os.Stderr, "Not logged in. Run sage login first.")
		}
		return err
	}
	return nil
}
