// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the key-value backends chatdesk persists into.
//
// Every backend implements KV: Get, Set, Delete and Close over string keys
// and opaque byte values. A missing key yields ErrKeyNotFound.
//
// # Backends
//
//   - FileStore: one file per key, written atomically (default)
//   - SQLiteStore: a single kv table via modernc.org/sqlite, no cgo
//   - PebbleStore: a cockroachdb/pebble LSM directory with synced writes
//   - MemoryStore: process memory, for tests and --ephemeral runs
//
// # Usage
//
//	kv, err := storage.Open(storage.Options{Backend: "sqlite", DataDir: dir})
//	if err != nil {
//	    return err
//	}
//	defer kv.Close()
//	data, err := kv.Get("chatHistory")
//	if errors.Is(err, storage.ErrKeyNotFound) {
//	    // nothing saved yet
//	}
//
// # Storage Location
//
// The data directory defaults to ~/.chatdesk/data/.
package storage
