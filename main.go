// sage TUI - a terminal client for the sage chat backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/sage-tui/internal/api"
	"github.com/jeranaias/sage-tui/internal/cli"
	"github.com/jeranaias/sage-tui/internal/config"
	"github.com/jeranaias/sage-tui/internal/session"
	"github.com/jeranaias/sage-tui/internal/ui/chat"
	"github.com/jeranaias/sage-tui/internal/ui/styles"
	"github.com/jeranaias/sage-tui/internal/vm"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
	api.Version = Version
}

func main() {
	args, cmd, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n%s\n", err, cli.Usage())
		os.Exit(2)
	}

	switch cmd {
	case cli.CmdVersion:
		fmt.Println(cli.VersionString())
	case cli.CmdHelp:
		fmt.Println(cli.Usage())
	case cli.CmdLogin:
		run(args, runLogin)
	case cli.CmdLogout:
		run(args, runLogout)
	case cli.CmdChats:
		run(args, runChats)
	default:
		run(args, runTUI)
	}
}

// app bundles everything a command needs after bootstrap.
type app struct {
	cfg   *config.Config
	store *session.Store
	args  cli.Args
}

// run performs the shared bootstrap (config, logging, session store)
// and hands off to the command.
func run(args cli.Args, fn func(*app) error) {
	cfg, err := loadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logPath, err := cfg.LogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	closeLog, err := setupLogging(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	dir, err := config.Dir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	store := session.NewStore(session.DefaultPath(dir))

	if err := fn(&app{cfg: cfg, store: store, args: args}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(args cli.Args) (*config.Config, error) {
	path := args.ConfigPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if args.APIURL != "" {
		cfg.APIBaseURL = args.APIURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// setupLogging sends the standard logger to the configured log file.
// The TUI owns the terminal, so nothing may write to stderr while it
// runs.
func setupLogging(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	return func() { f.Close() }, nil
}

// newViewModel wires the API client and view-model for an
// authenticated session.
func (a *app) newViewModel(confirm vm.Confirmer) *vm.ViewModel {
	client := api.NewClient(a.cfg.APIBaseURL, a.store.Current().Token).
		WithTimeout(a.cfg.RequestTimeout())
	return vm.New(client, a.store, vm.Options{
		Confirm:      confirm,
		MaxFileSize:  a.cfg.Upload.MaxFileSize,
		AllowedTypes: a.cfg.Upload.AllowedTypes,
	})
}

// =============================================================================
// COMMANDS
// =============================================================================

func runLogin(a *app) error {
	return cli.RunLogin(a.store)
}

func runLogout(a *app) error {
	return cli.RunLogout(a.store)
}

func runChats(a *app) error {
	if err := cli.RequireSession(a.store); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout())
	defer cancel()

	confirm := &cli.PromptConfirmer{In: os.Stdin, Out: os.Stdout}
	v := a.newViewModel(vm.AlwaysConfirm)
	return cli.RunChats(ctx, v, a.args.Subcommand, a.args.Raw, confirm, os.Stdout)
}

func runTUI(a *app) error {
	if _, err := a.store.Load(); err != nil {
		if errors.Is(err, session.ErrUnauthenticated) {
			fmt.Fprintln(os.Stderr, "Not logged in. Run sage login first.")
			os.Exit(1)
		}
		return err
	}

	// The TUI's confirm overlay collects confirmation before any
	// destructive view-model call, so the view-model side is a pass.
	v := a.newViewModel(vm.AlwaysConfirm)

	m := chat.New(v, styles.NewTheme(), chat.Options{
		Timeout:        a.cfg.RequestTimeout(),
		SidebarWidth:   a.cfg.UI.SidebarWidth,
		ShowTimestamps: a.cfg.UI.ShowTimestamps,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	log.Printf("sage %s starting, backend %s", Version, a.cfg.APIBaseURL)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI crashed: %w", err)
	}
	log.Printf("sage exiting")
	return nil
}
