// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history owns the list of conversations and the current-conversation pointer.
package history

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/chatdesk/internal/model"
)

// =============================================================================
// WIRE FORMAT
// =============================================================================

// TimestampLayout is the ISO-8601 form used for every persisted instant.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// conversationRecord is the persisted form of a conversation.
type conversationRecord struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Messages    []messageRecord `json:"messages"`
	LastMessage string          `json:"lastMessage"`
	LastUpdate  isoTime         `json:"lastUpdate"`
	CreatedAt   isoTime         `json:"createdAt"`
}

// messageRecord is the persisted form of a message.
type messageRecord struct {
	Text      string  `json:"text"`
	Sender    string  `json:"sender"`
	Timestamp isoTime `json:"timestamp"`
}

// isoTime encodes as an ISO-8601 string with millisecond precision and
// decodes any RFC 3339 string.
type isoTime struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (t isoTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(TimestampLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *isoTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "timestamp is not a string")
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return errors.Wrapf(err, "parsing timestamp %q", s)
	}
	t.Time = parsed.UTC()
	return nil
}

// =============================================================================
// SERIALIZE
// =============================================================================

// Serialize encodes every conversation for persistence. The current
// conversation pointer is deliberately not part of the payload.
func (s *Store) Serialize() ([]byte, error) {
	s.mu.RLock()
	records := make([]conversationRecord, 0, len(s.conversations))
	for _, conv := range s.conversations {
		records = append(records, toRecord(conv))
	}
	s.mu.RUnlock()

	data, err := json.Marshal(records)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling conversations")
	}
	return data, nil
}

func toRecord(conv *model.Conversation) conversationRecord {
	msgs := conv.Messages()
	out := conversationRecord{
		ID:          conv.ID(),
		Title:       conv.Title(),
		Messages:    make([]messageRecord, 0, len(msgs)),
		LastMessage: conv.LastMessage(),
		LastUpdate:  isoTime{conv.LastUpdate()},
		CreatedAt:   isoTime{conv.CreatedAt()},
	}
	for _, msg := range msgs {
		out.Messages = append(out.Messages, messageRecord{
			Text:      msg.Text,
			Sender:    msg.Sender.String(),
			Timestamp: isoTime{msg.Timestamp},
		})
	}
	return out
}

// =============================================================================
// DESERIALIZE
// =============================================================================

// Deserialize replaces the whole conversation list with the decoded payload.
//
// The payload is fully decoded and validated before anything is applied. On
// failure the store is reset to its safe default (no conversations, no
// current conversation, nothing pending) and ErrCorruptState is returned.
// On success the current pointer and pending state are cleared as well; the
// host is expected to create a fresh conversation afterwards.
func (s *Store) Deserialize(data []byte) error {
	conversations, err := decode(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentID = ""
	s.pending = false
	s.pendingID = ""

	if err != nil {
		s.conversations = make([]*model.Conversation, 0)
		log.Warn().Err(err).Int("bytes", len(data)).Msg("discarding corrupt chat history")
		return errors.Wrap(ErrCorruptState, err.Error())
	}
	s.conversations = conversations
	return nil
}

func decode(data []byte) ([]*model.Conversation, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("payload is not a JSON array")
	}

	var records []conversationRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, errors.Wrap(err, "decoding conversations")
	}

	seen := make(map[string]struct{}, len(records))
	out := make([]*model.Conversation, 0, len(records))
	for i, rec := range records {
		if rec.ID == "" {
			return nil, errors.Errorf("conversation %d has no id", i)
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, errors.Errorf("duplicate conversation id %q", rec.ID)
		}
		seen[rec.ID] = struct{}{}

		if rec.CreatedAt.IsZero() || rec.LastUpdate.IsZero() {
			return nil, errors.Errorf("conversation %q is missing timestamps", rec.ID)
		}

		msgs := make([]model.Message, 0, len(rec.Messages))
		for j, m := range rec.Messages {
			sender := model.Sender(m.Sender)
			if !sender.Valid() {
				return nil, errors.Errorf("conversation %q message %d has unknown sender %q", rec.ID, j, m.Sender)
			}
			if m.Timestamp.IsZero() {
				return nil, errors.Errorf("conversation %q message %d has no timestamp", rec.ID, j)
			}
			msgs = append(msgs, model.NewMessage(sender, m.Text, m.Timestamp.Time))
		}

		title := rec.Title
		if title == "" {
			title = model.TitleSentinel
		}
		out = append(out, model.RestoreConversation(rec.ID, title, rec.CreatedAt.Time, rec.LastUpdate.Time, msgs))
	}
	return out, nil
}
