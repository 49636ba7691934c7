// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the terminal chat interface for chatdesk.

The chat package implements the Bubble Tea presenter over a history.Store.
It never owns conversation data: every action goes through the store, and
every mutation marks the session manager dirty so auto-save picks it up.

# Key Components

## Model (model.go)

The Model struct is the Bubble Tea model. It holds the widgets (textarea
input, viewport, typing spinner) and the collaborators passed in Deps:
  - Store: conversations and the current pointer
  - Provider: produces assistant replies
  - Session: auto-save, teardown save and the logged-in flag
  - Themes: light/dark theme persisted under "chatTheme"

## Update Handling (update.go)

  - Enter sends; the reply command carries the conversation id pinned at
    send time, so switching chats while waiting is safe
  - Ctrl+N creates a chat and schedules its greeting
  - Ctrl+Up / Ctrl+Down and Alt+1..9 switch chats
  - Ctrl+T toggles the theme, Ctrl+Y copies the last reply, Ctrl+L logs out
  - Esc / Ctrl+C cancel outstanding replies, save and quit

## View Rendering (view.go)

Header, sidebar (title, preview and time ago per chat), message bubbles
with Markdown replies rendered by glamour, input box and status bar.

# Usage

	m := chat.New(chat.Deps{
	    Store:    store,
	    Provider: responder.NewMock(),
	    Session:  mgr,
	    Themes:   themes,
	}, chat.DefaultOptions())
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
*/
package chat
