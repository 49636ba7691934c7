// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history owns the list of conversations and the current-conversation pointer.
package history

import (
	"strings"
	"time"

	"github.com/jeranaias/chatdesk/internal/model"
)

// =============================================================================
// SUMMARY TYPE
// =============================================================================

// Summary is the lightweight view of a conversation used by list displays.
type Summary struct {
	ID           string
	Title        string
	Preview      string
	TimeAgo      string
	IsCurrent    bool
	MessageCount int
	LastUpdate   time.Time
}

// =============================================================================
// LIST OPERATIONS
// =============================================================================

// ListConversations returns a summary of every conversation in store order
// (newest created first). TimeAgo is computed against the store clock, and
// dates older than a week are shown in the clock's time zone.
func (s *Store) ListConversations() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := make([]Summary, 0, len(s.conversations))
	for _, conv := range s.conversations {
		out = append(out, s.summarize(conv, now))
	}
	return out
}

// Search returns summaries of the conversations whose title or any message
// contains query, case-insensitively, in store order. An empty query matches
// everything.
func (s *Store) Search(query string) []Summary {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.ListConversations()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	var results []Summary
	for _, conv := range s.conversations {
		if matches(conv, query) {
			results = append(results, s.summarize(conv, now))
		}
	}
	return results
}

func (s *Store) summarize(conv *model.Conversation, now time.Time) Summary {
	return Summary{
		ID:           conv.ID(),
		Title:        conv.Title(),
		Preview:      model.Preview(conv.LastMessage()),
		TimeAgo:      model.TimeAgo(conv.LastUpdate(), now, s.dateLayout),
		IsCurrent:    conv.ID() == s.currentID,
		MessageCount: conv.MessageCount(),
		LastUpdate:   conv.LastUpdate(),
	}
}

func matches(conv *model.Conversation, query string) bool {
	if strings.Contains(strings.ToLower(conv.Title()), query) {
		return true
	}
	for _, msg := range conv.Messages() {
		if strings.Contains(strings.ToLower(msg.Text), query) {
			return true
		}
	}
	return false
}
