// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history owns the list of conversations and the current-conversation pointer.
package history

// =============================================================================
// ERRORS
// =============================================================================

// ErrInvalidInput is returned for empty messages and for sends attempted while
// a response is still pending. Use errors.Is(err, ErrInvalidInput) to check.
var ErrInvalidInput = &StoreError{Message: "invalid input"}

// ErrNotFound is returned when a conversation id does not exist.
var ErrNotFound = &StoreError{Message: "conversation not found"}

// ErrCorruptState is returned when a persisted payload cannot be decoded.
var ErrCorruptState = &StoreError{Message: "corrupt history state"}

// StoreError represents a chat store error.
// It implements the error interface and can be compared using errors.Is.
type StoreError struct {
	Message string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing store errors.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}
