// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"time"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// Valid reports whether s is one of the known senders.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderBot
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Assistant"
	default:
		return string(s)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry in a conversation.
// Text is stored raw; escaping belongs to whoever renders it.
type Message struct {
	Text      string
	Sender    Sender
	Timestamp time.Time
}

// NewMessage creates a message stamped with at.
func NewMessage(sender Sender, text string, at time.Time) Message {
	return Message{
		Text:      text,
		Sender:    sender,
		Timestamp: at,
	}
}

// IsUser returns true if the message was written by the user.
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// IsBot returns true if the message was written by the assistant.
func (m Message) IsBot() bool {
	return m.Sender == SenderBot
}
