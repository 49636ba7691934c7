// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// # Key Types
//
//   - Conversation: one thread of messages with identity, title and cached summary fields
//   - Message: a single entry with text, sender and timestamp
//   - Sender: who wrote a message (user or bot)
//   - TitleState: Empty -> AwaitingTitle -> Titled, one way only
//
// # Derived Views
//
// DeriveTitle, Preview and TimeAgo turn conversation fields into the strings
// shown in the conversation list.
//
// # Usage
//
//	conv := model.NewConversation(id, now)
//	conv.AppendUser("Hello!", now)
//	conv.AppendBot("Hi there", now) // titles the conversation "Hello!"
//	fmt.Println(model.Preview(conv.LastMessage()))
package model
