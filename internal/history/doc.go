// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history owns the list of conversations and the current-conversation pointer.
//
// # Key Types
//
//   - Store: ordered conversations (newest created first), current pointer, pending response
//   - Summary: list view with title, preview, time-ago and current marker
//   - RestoreResult: outcome of loading a saved history
//
// # Single Flight
//
// AppendUserMessage pins the target conversation and marks a response pending.
// A second send fails with ErrInvalidInput until RecordResponse or
// AbortPending clears it. The pinned target receives the response even if the
// user switched conversations in between.
//
// # Persistence
//
// Serialize and Deserialize convert the conversation list to and from a JSON
// array with ISO-8601 timestamps. The current pointer is not persisted.
// Save and Restore move that payload through a storage.KV under HistoryKey.
//
// # Usage
//
//	store := history.New()
//	if _, err := history.Restore(store, kv); err != nil {
//	    return err
//	}
//	store.CreateConversation()
//	target, err := store.AppendUserMessage("Hello!")
//	...
//	store.RecordResponse(reply)
//	_ = history.Save(store, kv)
package history
