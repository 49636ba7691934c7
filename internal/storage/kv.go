// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the key-value backends chatdesk persists into.
package storage

import (
	"regexp"
)

// =============================================================================
// KEY-VALUE CONTRACT
// =============================================================================

// KV is a string-keyed byte store. Implementations are safe for concurrent use.
type KV interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Close releases the backend.
	Close() error
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrKeyNotFound is returned by Get when the key does not exist.
var ErrKeyNotFound = &StorageError{Message: "key not found"}

// ErrInvalidKey is returned for keys that are empty or contain characters
// outside [A-Za-z0-9._-].
var ErrInvalidKey = &StorageError{Message: "invalid key"}

// ErrClosed is returned by operations on a closed backend.
var ErrClosed = &StorageError{Message: "storage is closed"}

// StorageError represents a storage error.
// It implements the error interface and can be compared using errors.Is.
type StorageError struct {
	Message string
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing storage errors.
func (e *StorageError) Is(target error) bool {
	t, ok := target.(*StorageError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// SECURITY: Keys double as file names in the file backend, so path
// separators and dot segments are rejected everywhere.
var validKey = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]*$`)

// ValidateKey returns ErrInvalidKey unless key is usable by every backend.
func ValidateKey(key string) error {
	if len(key) > 128 || !validKey.MatchString(key) {
		return ErrInvalidKey
	}
	return nil
}

// copyBytes returns a copy of b that the caller may keep.
func copyBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
