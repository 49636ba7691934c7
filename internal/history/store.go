// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history owns the list of conversations and the current-conversation pointer.
package history

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/chatdesk/internal/model"
)

// =============================================================================
// STORE
// =============================================================================

// Store is the single source of truth for conversation data.
//
// Conversations are kept newest-created first and are never reordered by
// activity. currentID is either empty or the id of a listed conversation.
// At most one response may be outstanding at a time across the whole store;
// its target conversation is pinned when the user message is appended.
type Store struct {
	mu sync.RWMutex

	conversations []*model.Conversation
	currentID     string

	pending   bool
	pendingID string

	now        func() time.Time
	newID      func(time.Time) string
	dateLayout string
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock. Returned times are normalized to UTC
// milliseconds like the default clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator replaces the conversation id generator.
func WithIDGenerator(gen func(time.Time) string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// WithDateLayout sets the layout used for conversations older than a week.
func WithDateLayout(layout string) Option {
	return func(s *Store) {
		s.dateLayout = layout
	}
}

// New creates an empty store with no current conversation.
func New(opts ...Option) *Store {
	s := &Store{
		conversations: make([]*model.Conversation, 0),
		now:           time.Now,
		newID:         GenerateID,
		dateLayout:    model.DefaultDateLayout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateID builds a conversation id from the creation time plus a random
// component, so two conversations created in the same millisecond still differ.
func GenerateID(at time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "chat_" + strconv.FormatInt(at.UnixMilli(), 10) + "_" + random[:8]
}

// stamp returns the current time truncated to what the codec can round-trip.
func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// =============================================================================
// MUTATIONS
// =============================================================================

// CreateConversation inserts a new empty conversation at the front of the
// list, makes it current and returns its id. It never fails.
func (s *Store) CreateConversation() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := s.stamp()
	id := s.newID(at)
	for s.indexOf(id) >= 0 {
		id = s.newID(at)
	}

	conv := model.NewConversation(id, at)
	s.conversations = append([]*model.Conversation{conv}, s.conversations...)
	s.currentID = id

	log.Debug().Str("conversation_id", id).Int("count", len(s.conversations)).Msg("conversation created")
	return id
}

// SwitchTo makes the conversation with the given id current.
// Unknown ids return ErrNotFound and leave the current conversation unchanged.
// Switching while a response is pending is allowed; the response still lands
// in the conversation it was requested from.
func (s *Store) SwitchTo(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return errors.Wrapf(ErrNotFound, "switching to %q", id)
	}
	s.currentID = id
	return nil
}

// AppendUserMessage appends a user message to the current conversation and
// marks a response as pending for it. The returned id is the pinned target
// that the eventual response belongs to.
func (s *Store) AppendUserMessage(text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.Wrap(ErrInvalidInput, "message is empty")
	}
	if s.pending {
		return "", errors.Wrap(ErrInvalidInput, "a response is still pending")
	}
	conv := s.find(s.currentID)
	if conv == nil {
		return "", errors.Wrap(ErrInvalidInput, "no current conversation")
	}

	conv.AppendUser(text, s.stamp())
	s.pending = true
	s.pendingID = conv.ID()
	return conv.ID(), nil
}

// RecordResponse appends an assistant message to the conversation the pending
// request was pinned to and clears the pending state. With nothing pending it
// writes to the current conversation. Returns the id it wrote to.
func (s *Store) RecordResponse(text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.currentID
	if s.pending {
		target = s.pendingID
	}
	conv := s.find(target)
	if conv == nil {
		return "", errors.Wrap(ErrNotFound, "no conversation to record the response in")
	}

	s.pending = false
	s.pendingID = ""
	if conv.AppendBot(text, s.stamp()) {
		log.Debug().Str("conversation_id", conv.ID()).Str("title", conv.Title()).Msg("conversation titled")
	}
	return conv.ID(), nil
}

// RecordResponseFor appends an assistant message to a specific conversation
// without touching the pending state. Greetings scheduled at creation use it.
func (s *Store) RecordResponseFor(id, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.find(id)
	if conv == nil {
		return errors.Wrapf(ErrNotFound, "recording response for %q", id)
	}
	conv.AppendBot(text, s.stamp())
	return nil
}

// AbortPending drops the pending state without appending anything. Presenters
// call it when the response provider fails.
func (s *Store) AbortPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	s.pendingID = ""
}

// =============================================================================
// QUERIES
// =============================================================================

// Pending returns the pinned target of the outstanding response, if any.
func (s *Store) Pending() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingID, s.pending
}

// CurrentID returns the id of the current conversation, or "" before the first creation.
func (s *Store) CurrentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentID
}

// Current returns a copy of the current conversation.
func (s *Store) Current() (*model.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv := s.find(s.currentID)
	if conv == nil {
		return nil, false
	}
	return conv.Clone(), true
}

// Get returns a copy of the conversation with the given id.
func (s *Store) Get(id string) (*model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv := s.find(id)
	if conv == nil {
		return nil, errors.Wrapf(ErrNotFound, "getting %q", id)
	}
	return conv.Clone(), nil
}

// Conversations returns copies of every conversation in store order.
func (s *Store) Conversations() []*model.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Conversation, len(s.conversations))
	for i, conv := range s.conversations {
		out[i] = conv.Clone()
	}
	return out
}

// Len returns the number of conversations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

// IDAt returns the id at position index in store order.
func (s *Store) IDAt(index int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.conversations) {
		return "", errors.Wrapf(ErrNotFound, "no conversation at position %d", index)
	}
	return s.conversations[index].ID(), nil
}

// =============================================================================
// HELPERS
// =============================================================================

// find returns the conversation with id. Callers must hold the lock.
func (s *Store) find(id string) *model.Conversation {
	if i := s.indexOf(id); i >= 0 {
		return s.conversations[i]
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, conv := range s.conversations {
		if conv.ID() == id {
			return i
		}
	}
	return -1
}
