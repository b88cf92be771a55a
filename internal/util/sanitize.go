// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "strings"

// SECURITY: Untrusted text (chat titles, filenames, message echoes) is
// rendered straight into the terminal. Embedded escape sequences could
// move the cursor, retitle the window, or spoof UI chrome, so they are
// stripped before display.

// SanitizeText removes ANSI escape sequences and non-printing control
// characters from s. Newlines and tabs are preserved; everything else
// below 0x20, plus DEL, is dropped.
func SanitizeText(s string) string {
	if !needsSanitizing(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		// ESC starts a terminal control sequence
		if r == 0x1b {
			i += skipEscapeSequence(runes[i:]) - 1
			continue
		}

		if r == '\n' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SanitizeLine is SanitizeText with newlines and tabs collapsed to single
// spaces, for single-line contexts like the sidebar and document chips.
func SanitizeLine(s string) string {
	s = SanitizeText(s)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	return s
}

// needsSanitizing reports whether s contains any character SanitizeText
// would remove. The common case (clean text) takes no allocations.
func needsSanitizing(s string) bool {
	for _, r := range s {
		if r == '\n' || r == '\t' {
			continue
		}
		if r < 0x20 || r == 0x7f {
			return true
		}
	}
	return false
}

// skipEscapeSequence returns the number of runes consumed by the escape
// sequence starting at runes[0] (which must be ESC).
//
// Handles CSI (ESC [ ... final byte 0x40-0x7e), OSC (ESC ] ... BEL or
// ESC \), and two-character sequences. Malformed sequences consume
// through the end of input rather than leaking partial controls.
func skipEscapeSequence(runes []rune) int {
	if len(runes) < 2 {
		return len(runes)
	}

	switch runes[1] {
	case '[': // CSI
		for i := 2; i < len(runes); i++ {
			if runes[i] >= 0x40 && runes[i] <= 0x7e {
				return i + 1
			}
		}
		return len(runes)
	case ']': // OSC, terminated by BEL or ST (ESC \)
		for i := 2; i < len(runes); i++ {
			if runes[i] == 0x07 {
				return i + 1
			}
			if runes[i] == 0x1b && i+1 < len(runes) && runes[i+1] == '\\' {
				return i + 2
			}
		}
		return len(runes)
	default:
		return 2
	}
}
