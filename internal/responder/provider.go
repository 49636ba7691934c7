// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package responder produces assistant replies for chatdesk conversations.
package responder

import (
	"context"
	"time"
)

// Greeting is the first assistant message of every new conversation.
const Greeting = "Hello! I'm your AI assistant. How can I help you today?"

// GreetingDelay is how long after creation the greeting appears.
const GreetingDelay = 500 * time.Millisecond

// Provider turns a user message into an assistant reply.
// Respond may block; it must return ctx.Err() promptly once ctx is done.
type Provider interface {
	Respond(ctx context.Context, userText string) (string, error)
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(ctx context.Context, userText string) (string, error)

// Respond implements Provider.
func (f ProviderFunc) Respond(ctx context.Context, userText string) (string, error) {
	return f(ctx, userText)
}
