// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/sage-tui/internal/api"
	"github.com/jeranaias/sage-tui/internal/model"
	"github.com/jeranaias/sage-tui/internal/session"
	"github.com/jeranaias/sage-tui/internal/vm"
)

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     []string
		wantCmd Command
		wantErr bool
	}{
		{"no args starts TUI", nil, CmdTUI, false},
		{"login", []string{"login"}, CmdLogin, false},
		{"logout", []string{"logout"}, CmdLogout, false},
		{"chats", []string{"chats"}, CmdChats, false},
		{"chats list", []string{"chats", "list"}, CmdChats, false},
		{"chats delete", []string{"chats", "delete", "42"}, CmdChats, false},
		{"version word", []string{"version"}, CmdVersion, false},
		{"version flag", []string{"-v"}, CmdVersion, false},
		{"help flag", []string{"--help"}, CmdHelp, false},
		{"unknown command", []string{"frobnicate"}, CmdHelp, true},
		{"unknown flag", []string{"--frobnicate"}, CmdHelp, true},
		{"config without value", []string{"--config"}, CmdHelp, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cmd, err := Parse(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%v) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if cmd != tt.wantCmd {
				t.Errorf("Parse(%v) cmd = %v, want %v", tt.raw, cmd, tt.wantCmd)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	args, cmd, err := Parse([]string{"--config", "/tmp/alt.toml", "--api-url=http://host:9000", "chats", "delete", "7"})
	if err != nil {
		t.Fatal(err)
	}
	if cmd != CmdChats {
		t.Errorf("cmd = %v, want CmdChats", cmd)
	}
	if args.ConfigPath != "/tmp/alt.toml" {
		t.Errorf("ConfigPath = %q", args.ConfigPath)
	}
	if args.APIURL != "http://host:9000" {
		t.Errorf("APIURL = %q", args.APIURL)
	}
	if args.Subcommand != "delete" || len(args.Raw) != 1 || args.Raw[0] != "7" {
		t.Errorf("subcommand parse: %q %v", args.Subcommand, args.Raw)
	}
}

// =============================================================================
// CHATS COMMANDS
// =============================================================================

type listGateway struct {
	chats   []model.Chat
	deleted []string
}

func (g *listGateway) ListChats(ctx context.Context) ([]model.Chat, error) { return g.chats, nil }
func (g *listGateway) CreateChat(ctx context.Context, title string) (model.Chat, error) {
	return model.Chat{}, nil
}
func (g *listGateway) DeleteChat(ctx context.Context, id string) error {
	g.deleted = append(g.deleted, id)
	return nil
}
func (g *listGateway) ListMessages(ctx context.Context, chatID string) ([]model.Message, error) {
	return nil, nil
}
func (g *listGateway) SendMessage(ctx context.Context, chatID, content string) (model.SendReply, error) {
	return model.SendReply{}, nil
}
func (g *listGateway) ListDocuments(ctx context.Context, chatID string) ([]model.Document, error) {
	return nil, nil
}
func (g *listGateway) UploadDocuments(ctx context.Context, chatID string, files []api.Upload) error {
	return nil
}
func (g *listGateway) DeleteDocument(ctx context.Context, chatID, docID string) error { return nil }

func newCLIVM(t *testing.T, gw *listGateway) *vm.ViewModel {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	return vm.New(gw, store, vm.Options{})
}

func TestRunChatsListEmpty(t *testing.T) {
	v := newCLIVM(t, &listGateway{})
	var out bytes.Buffer

	if err := RunChats(context.Background(), v, "list", nil, vm.AlwaysConfirm, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No chats yet") {
		t.Errorf("output = %q, want empty hint", out.String())
	}
}

func TestRunChatsListSanitizesTitles(t *testing.T) {
	v := newCLIVM(t, &listGateway{chats: []model.Chat{
		{ID: "1", Title: "plans\x1b[2Jfor later"},
	}})
	var out bytes.Buffer

	if err := RunChats(context.Background(), v, "list", nil, vm.AlwaysConfirm, &out); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "\x1b[2J") {
		t.Error("list output must not carry escape sequences")
	}
	if !strings.Contains(out.String(), "plans") {
		t.Errorf("title text missing from output: %q", out.String())
	}
}

func TestRunChatsDeleteConfirmed(t *testing.T) {
	gw := &listGateway{}
	v := newCLIVM(t, gw)
	var out bytes.Buffer

	err := RunChats(context.Background(), v, "delete", []string{"42"}, vm.AlwaysConfirm, &out)
	if err != nil {
		t.Fatal(err)
	}
	if len(gw.deleted) != 1 || gw.deleted[0] != "42" {
		t.Errorf("deleted = %v, want [42]", gw.deleted)
	}
	if !strings.Contains(out.String(), "Deleted.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunChatsDeleteDeclined(t *testing.T) {
	gw := &listGateway{}
	v := newCLIVM(t, gw)
	var out bytes.Buffer

	decline := vm.ConfirmerFunc(func(string) bool { return false })
	err := RunChats(context.Background(), v, "delete", []string{"42"}, decline, &out)
	if err != nil {
		t.Fatal(err)
	}
	if len(gw.deleted) != 0 {
		t.Error("declined delete must not reach the backend")
	}
	if !strings.Contains(out.String(), "Cancelled.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunChatsDeleteUsage(t *testing.T) {
	v := newCLIVM(t, &listGateway{})
	err := RunChats(context.Background(), v, "delete", nil, vm.AlwaysConfirm, &bytes.Buffer{})
	if err == nil {
		t.Error("delete without an id should error")
	}
}

// =============================================================================
// PROMPT CONFIRMER
// =============================================================================

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"whatever\n", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		p := &PromptConfirmer{In: strings.NewReader(tt.input), Out: &out}
		if got := p.Confirm("sure?"); got != tt.want {
			t.Errorf("Confirm with input %q = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "sure?") {
			t.Error("prompt text should be printed")
		}
	}
}
