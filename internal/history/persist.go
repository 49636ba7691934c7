// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history owns the list of conversations and the current-conversation pointer.
package history

import (
	stderrors "errors"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/chatdesk/internal/storage"
)

// HistoryKey is the key-value record holding the serialized conversation list.
const HistoryKey = "chatHistory"

// =============================================================================
// SAVE
// =============================================================================

// Save writes a snapshot of the store to kv under HistoryKey.
func Save(s *Store, kv storage.KV) error {
	data, err := s.Serialize()
	if err != nil {
		return err
	}
	if err := kv.Set(HistoryKey, data); err != nil {
		return errors.Wrap(err, "writing chat history")
	}
	log.Debug().Int("bytes", len(data)).Int("conversations", s.Len()).Msg("chat history saved")
	return nil
}

// =============================================================================
// RESTORE
// =============================================================================

// RestoreResult describes what Restore found.
type RestoreResult struct {
	// Restored is the number of conversations loaded.
	Restored int
	// Missing is true when nothing had been saved yet.
	Missing bool
	// Corrupt is true when a payload existed but could not be decoded.
	Corrupt bool
}

// Restore loads the saved history into s.
//
// A missing record leaves the store empty. A corrupt record is logged and
// also leaves the store empty; it is reported in the result, not as an error.
// Only a failing backend read is returned as an error. The current
// conversation is never restored.
func Restore(s *Store, kv storage.KV) (RestoreResult, error) {
	data, err := kv.Get(HistoryKey)
	if stderrors.Is(err, storage.ErrKeyNotFound) {
		return RestoreResult{Missing: true}, nil
	}
	if err != nil {
		return RestoreResult{}, errors.Wrap(err, "reading chat history")
	}

	if err := s.Deserialize(data); err != nil {
		log.Error().Err(err).Msg("failed to load chat history, starting empty")
		return RestoreResult{Corrupt: true}, nil
	}

	n := s.Len()
	log.Info().Int("conversations", n).Msg("chat history restored")
	return RestoreResult{Restored: n}, nil
}
