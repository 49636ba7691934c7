// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the key-value backends chatdesk persists into.
package storage

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// keyPrefix namespaces chatdesk values inside the pebble keyspace.
const keyPrefix = "kv:"

// PebbleStore keeps values in a pebble LSM directory. Writes are synced.
type PebbleStore struct {
	mu sync.RWMutex
	db *pebble.DB
}

// NewPebbleStore opens (or creates) the pebble directory at path.
func NewPebbleStore(path string) (*PebbleStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrap(err, "creating pebble parent directory")
	}
	db, err := pebble.Open(path, &pebble.Options{Logger: pebbleLogger{}})
	if err != nil {
		return nil, errors.Wrap(err, "opening pebble store")
	}
	log.Debug().Str("backend", "pebble").Str("path", path).Msg("storage opened")
	return &PebbleStore{db: db}, nil
}

// Get implements KV.
func (s *PebbleStore) Get(key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrClosed
	}

	v, closer, err := s.db.Get([]byte(keyPrefix + key))
	if stderrors.Is(err, pebble.ErrNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", key)
	}
	defer closer.Close()
	// the slice is only valid until closer.Close
	return copyBytes(v), nil
}

// Set implements KV.
func (s *PebbleStore) Set(key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return ErrClosed
	}
	if err := s.db.Set([]byte(keyPrefix+key), value, pebble.Sync); err != nil {
		return errors.Wrapf(err, "writing %s", key)
	}
	return nil
}

// Delete implements KV.
func (s *PebbleStore) Delete(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return ErrClosed
	}
	if err := s.db.Delete([]byte(keyPrefix+key), pebble.Sync); err != nil {
		return errors.Wrapf(err, "deleting %s", key)
	}
	return nil
}

// Close implements KV.
func (s *PebbleStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// pebbleLogger routes pebble's internal logging into zerolog.
type pebbleLogger struct{}

func (pebbleLogger) Infof(format string, args ...interface{}) {
	log.Debug().Str("backend", "pebble").Msgf(format, args...)
}

func (pebbleLogger) Errorf(format string, args ...interface{}) {
	log.Error().Str("backend", "pebble").Msgf(format, args...)
}

func (pebbleLogger) Fatalf(format string, args ...interface{}) {
	log.Fatal().Str("backend", "pebble").Msgf(format, args...)
}
