// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"time"
)

// =============================================================================
// TITLE STATE
// =============================================================================

// TitleState tracks where a conversation is in its one-way titling lifecycle.
type TitleState int

const (
	// StateEmpty means no user message has been appended yet.
	StateEmpty TitleState = iota
	// StateAwaitingTitle means a user message exists but no reply has completed the exchange.
	StateAwaitingTitle
	// StateTitled means the title was derived and will never change again.
	StateTitled
)

// String returns the state name.
func (s TitleState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAwaitingTitle:
		return "awaiting-title"
	case StateTitled:
		return "titled"
	default:
		return "unknown"
	}
}

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is one thread of messages with its own identity and summary fields.
//
// LastMessage and LastUpdate are caches of the tail of Messages. They are only
// written by the append methods, so they always agree with Messages.
type Conversation struct {
	id        string
	title     string
	createdAt time.Time

	messages []Message

	lastMessage string
	lastUpdate  time.Time
	titled      bool
}

// NewConversation creates an empty conversation with the sentinel title.
func NewConversation(id string, at time.Time) *Conversation {
	return &Conversation{
		id:         id,
		title:      TitleSentinel,
		createdAt:  at,
		lastUpdate: at,
		messages:   make([]Message, 0),
	}
}

// RestoreConversation rebuilds a conversation from persisted fields.
// The derived fields are recomputed from messages; lastUpdate is only used
// when there are no messages to derive it from.
func RestoreConversation(id, title string, createdAt, lastUpdate time.Time, messages []Message) *Conversation {
	c := &Conversation{
		id:         id,
		title:      title,
		createdAt:  createdAt,
		lastUpdate: lastUpdate,
		messages:   make([]Message, 0, len(messages)),
	}
	for _, msg := range messages {
		c.append(msg)
	}
	c.titled = title != TitleSentinel || c.hasCompletedExchange()
	return c
}

// ID returns the conversation identifier.
func (c *Conversation) ID() string { return c.id }

// Title returns the current title.
func (c *Conversation) Title() string { return c.title }

// CreatedAt returns when the conversation was created.
func (c *Conversation) CreatedAt() time.Time { return c.createdAt }

// LastMessage returns the text of the most recently appended message.
func (c *Conversation) LastMessage() string { return c.lastMessage }

// LastUpdate returns the timestamp of the most recent append.
func (c *Conversation) LastUpdate() time.Time { return c.lastUpdate }

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int { return len(c.messages) }

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool { return len(c.messages) == 0 }

// Messages returns a copy of the messages in chronological order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// State returns the titling state.
func (c *Conversation) State() TitleState {
	if c.titled {
		return StateTitled
	}
	if c.firstUserMessage() != nil {
		return StateAwaitingTitle
	}
	return StateEmpty
}

// Clone returns a deep copy that shares nothing with c.
func (c *Conversation) Clone() *Conversation {
	clone := *c
	clone.messages = c.Messages()
	return &clone
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AppendUser appends a user message.
func (c *Conversation) AppendUser(text string, at time.Time) {
	c.append(NewMessage(SenderUser, text, at))
}

// AppendBot appends an assistant message and derives the title if this reply
// completes the first exchange. Returns true when the title changed.
func (c *Conversation) AppendBot(text string, at time.Time) bool {
	c.append(NewMessage(SenderBot, text, at))
	if c.titled {
		return false
	}
	first := c.firstUserMessage()
	if first == nil {
		return false
	}
	c.title = DeriveTitle(first.Text)
	c.titled = true
	return true
}

func (c *Conversation) append(msg Message) {
	c.messages = append(c.messages, msg)
	c.lastMessage = msg.Text
	c.lastUpdate = msg.Timestamp
}

func (c *Conversation) firstUserMessage() *Message {
	for i := range c.messages {
		if c.messages[i].IsUser() {
			return &c.messages[i]
		}
	}
	return nil
}

// hasCompletedExchange reports whether a bot reply follows a user message.
func (c *Conversation) hasCompletedExchange() bool {
	seenUser := false
	for _, msg := range c.messages {
		if msg.IsUser() {
			seenUser = true
		} else if seenUser && msg.IsBot() {
			return true
		}
	}
	return false
}
