// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the key-value backends chatdesk persists into.
package storage

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendPebble = "pebble"
	BackendMemory = "memory"
)

// Backends lists every supported backend name.
var Backends = []string{BackendFile, BackendSQLite, BackendPebble, BackendMemory}

// Options selects and locates a backend.
type Options struct {
	// Backend is one of Backends. Empty means BackendFile.
	Backend string
	// DataDir is the directory the on-disk backends live under.
	DataDir string
}

// Open creates the backend described by opts.
//
// Layout under DataDir:
//
//	file:   <DataDir>/<key>.json
//	sqlite: <DataDir>/chatdesk.db
//	pebble: <DataDir>/pebble/
func Open(opts Options) (KV, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	if backend == "" {
		backend = BackendFile
	}
	if backend != BackendMemory && opts.DataDir == "" {
		return nil, errors.Errorf("storage backend %q needs a data directory", backend)
	}

	var (
		kv  KV
		err error
	)
	switch backend {
	case BackendFile:
		kv, err = NewFileStore(opts.DataDir)
	case BackendSQLite:
		kv, err = NewSQLiteStore(filepath.Join(opts.DataDir, "chatdesk.db"))
	case BackendPebble:
		kv, err = NewPebbleStore(filepath.Join(opts.DataDir, "pebble"))
	case BackendMemory:
		kv = NewMemoryStore()
	default:
		return nil, errors.Errorf("unknown storage backend %q (valid: %s)", opts.Backend, strings.Join(Backends, ", "))
	}
	if err != nil {
		return nil, err
	}

	log.Info().Str("backend", backend).Str("data_dir", opts.DataDir).Msg("storage ready")
	return kv, nil
}
