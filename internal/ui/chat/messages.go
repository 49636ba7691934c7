// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea message types used by the chat interface
// and the commands that produce them.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatdesk/internal/responder"
)

// =============================================================================
// RESPONSE MESSAGES
// =============================================================================

// ResponseMsg delivers an assistant reply for a pinned conversation.
// Err is set when the provider failed or was cancelled.
type ResponseMsg struct {
	ConversationID string
	Text           string
	Err            error
}

// GreetingMsg delivers the opening greeting of a freshly created conversation.
type GreetingMsg struct {
	ConversationID string
}

// =============================================================================
// STATUS MESSAGES
// =============================================================================

// StatusLevel selects how a status line message is styled.
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// StatusMsg replaces the transient status line text.
type StatusMsg struct {
	Text  string
	Level StatusLevel
}

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// respondCmd asks the provider for a reply to text and reports it for
// conversationID, the target pinned when the user message was appended.
func respondCmd(ctx context.Context, p responder.Provider, conversationID, text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := p.Respond(ctx, text)
		return ResponseMsg{
			ConversationID: conversationID,
			Text:           reply,
			Err:            err,
		}
	}
}

// greetingCmd schedules the greeting for conversationID after delay.
func greetingCmd(conversationID string, delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg {
			return GreetingMsg{ConversationID: conversationID}
		}
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return GreetingMsg{ConversationID: conversationID}
	})
}
