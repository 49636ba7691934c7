// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session keeps chat history saved: periodic auto-save, teardown save and the logged-in flag.
//
// # Key Types
//
//   - Manager: dirty tracking, auto-save scheduling, logout flag
//   - TickMsg / AutoSaveMsg / SavedMsg: Bubble Tea messages
//   - Status: snapshot for the status bar
//
// # Usage
//
// Inside a Bubble Tea program:
//
//	mgr := session.NewManager(session.DefaultConfig(), func() error {
//	    return history.Save(store, kv)
//	})
//	// Init: return session.TickCmd()
//	// Update on session.TickMsg: return mgr.HandleTick()
//	// Update on session.AutoSaveMsg: return mgr.SaveCmd()
//
// Without one:
//
//	go mgr.Run(ctx) // saves every interval and once more when ctx ends
//
// Auto-save defaults to every 30 seconds and only runs when something
// changed since the last save.
package session
