// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// confirm.go - Interactive confirmation for destructive CLI commands.
//
// USABILITY: TTY detection for proper terminal handling. Without a
// terminal there is nobody to ask, so destructive commands decline
// instead of hanging on a prompt.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/sage-tui/internal/vm"
)

// PromptConfirmer asks yes/no questions on the terminal. It satisfies
// vm.Confirmer so CLI commands share the view-model's confirmation
// gates with the TUI.
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm prints the prompt and reads a y/N answer. Anything but an
// explicit yes declines.
func (p *PromptConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(p.Out, "%s [y/N]: ", prompt)

	reader := bufio.NewReader(p.In)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

var _ vm.Confirmer = (*PromptConfirmer)(nil)
