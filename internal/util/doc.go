// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the sage client:
// text sanitization, rune-safe truncation, and atomic file writes.
package util
