// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for sage.
package cli

import (
	"fmt"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota // default: start the chat TUI
	CmdLogin
	CmdLogout
	CmdChats
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string // --config overrides the default config path
	APIURL     string // --api-url overrides the configured backend URL

	// Command-specific
	Subcommand string   // e.g. "list" or "delete" for the chats command
	Raw        []string // positional args after the subcommand
}

const usageText = `sage - terminal client for the sage chat backend

Usage:
  sage                       Start the chat TUI (default)
  sage login                 Store an access token for the backend
  sage logout                Forget the stored session
  sage chats [list]          List your chats
  sage chats delete <id>     Delete a chat
  sage version, -v           Show version information
  sage help, -h              Show this help

Flags:
  --config <path>            Use an alternate config file
  --api-url <url>            Override the backend URL for this run

Configuration lives in ~/.sage/config.toml; every key can also be set
through SAGE_* environment variables.`

// Parse interprets the command line (without the program name).
func Parse(raw []string) (Args, Command, error) {
	var args Args
	cmd := CmdTUI

	var positional []string
	for i := 0; i < len(raw); i++ {
		arg := raw[i]
		switch {
		case arg == "--config" || strings.HasPrefix(arg, "--config="):
			val, used, err := flagValue(raw, i, "--config")
			if err != nil {
				return args, CmdHelp, err
			}
			args.ConfigPath = val
			i += used

		case arg == "--api-url" || strings.HasPrefix(arg, "--api-url="):
			val, used, err := flagValue(raw, i, "--api-url")
			if err != nil {
				return args, CmdHelp, err
			}
			args.APIURL = val
			i += used

		case arg == "-h" || arg == "--help":
			return args, CmdHelp, nil

		case arg == "-v" || arg == "--version":
			return args, CmdVersion, nil

		case strings.HasPrefix(arg, "-"):
			return args, CmdHelp, fmt.Errorf("unknown flag: %s", arg)

		default:
			positional = append(positional, arg)
		}
	}

	if len(positional) == 0 {
		return args, cmd, nil
	}

	switch positional[0] {
	case "login":
		cmd = CmdLogin
	case "logout":
		cmd = CmdLogout
	case "chats":
		cmd = CmdChats
		if len(positional) > 1 {
			args.Subcommand = positional[1]
			args.Raw = positional[2:]
		} else {
			args.Subcommand = "list"
		}
	case "version":
		cmd = CmdVersion
	case "help":
		cmd = CmdHelp
	default:
		return args, CmdHelp, fmt.Errorf("unknown command: %s", positional[0])
	}

	return args, cmd, nil
}

// flagValue extracts a flag's value from either "--flag=value" or
// "--flag value" form. It returns the value and how many extra
// arguments were consumed.
func flagValue(raw []string, i int, name string) (string, int, error) {
	arg := raw[i]
	if strings.HasPrefix(arg, name+"=") {
		val := strings.TrimPrefix(arg, name+"=")
		if val == "" {
			return "", 0, fmt.Errorf("%s requires a value", name)
		}
		return val, 0, nil
	}
	if i+1 >= len(raw) {
		return "", 0, fmt.Errorf("%s requires a value", name)
	}
	return raw[i+1], 1, nil
}

// Usage returns the top-level usage text.
func Usage() string {
	return usageText
}

// VersionString returns the formatted version line.
func VersionString() string {
	return fmt.Sprintf("sage %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
