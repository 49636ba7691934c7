// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package responder produces assistant replies for chatdesk conversations.
//
// Provider is the seam between the chat presenters and whatever generates
// replies. Mock simulates an assistant with canned text and artificial
// latency; ProviderFunc adapts a function for tests.
//
// # Usage
//
//	p := responder.NewMock()
//	reply, err := p.Respond(ctx, "Hello!")
//	if errors.Is(err, context.Canceled) {
//	    // the user quit while waiting
//	}
package responder
