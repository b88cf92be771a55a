// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
)

// ErrRequestFailed is the single failure signal for gateway calls. Every
// non-2xx response and every transport error wraps it, so callers can
// match with errors.Is without caring which resource failed.
var ErrRequestFailed = errors.New("request failed")

// RequestError carries the context of a failed gateway call: which
// resource was being accessed and, when a response arrived at all, the
// HTTP status. Status is 0 for transport failures.
type RequestError struct {
	Resource string // e.g. "chats", "messages", "documents"
	Status   int
	Err      error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d", e.Resource, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Resource, e.Err)
	}
	return e.Resource + ": request failed"
}

// Unwrap lets errors.Is(err, ErrRequestFailed) match, and exposes the
// underlying transport error when there is one.
func (e *RequestError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrRequestFailed, e.Err}
	}
	return []error{ErrRequestFailed}
}
