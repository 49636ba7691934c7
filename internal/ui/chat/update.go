// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"context"
	stderrors "errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/chatdesk/internal/history"
	"github.com/jeranaias/chatdesk/internal/model"
	"github.com/jeranaias/chatdesk/internal/responder"
	"github.com/jeranaias/chatdesk/internal/ui/styles"
)

// =============================================================================
// LAYOUT
// =============================================================================

const (
	headerHeight = 1
	statusHeight = 1
	inputHeight  = 3
	// inputChrome is the border line above the input box.
	inputChrome = 1
	// sidebarChrome is the border and padding right of the sidebar.
	sidebarChrome = 2
	minBodyHeight = 3
)

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.layout()
	return m, nil
}

// showSidebar reports whether the terminal is wide enough for the list.
func (m Model) showSidebar() bool {
	return m.theme().GetLayoutMode() != styles.LayoutNarrow
}

// layout sizes every component for the current window and redraws messages.
func (m *Model) layout() {
	m.theme().SetSize(m.width, m.height)

	body := m.height - headerHeight - statusHeight - inputHeight - inputChrome
	if body < minBodyHeight {
		body = minBodyHeight
	}

	pane := m.width
	if m.showSidebar() {
		pane -= m.opts.SidebarWidth + sidebarChrome
	}
	if pane < 10 {
		pane = 10
	}

	m.viewport.Width = pane
	m.viewport.Height = body
	m.input.SetWidth(m.width)
	m.refresh()
}

// refresh re-renders the current conversation into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderMessages(m.viewport.Width))
	m.viewport.GotoBottom()
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m.handleQuit()

	case key.Matches(msg, m.keyMap.Send):
		return m.handleSend()

	case key.Matches(msg, m.keyMap.NewChat):
		return m.handleNewChat()

	case key.Matches(msg, m.keyMap.PrevChat):
		return m.handleStep(-1)

	case key.Matches(msg, m.keyMap.NextChat):
		return m.handleStep(1)

	case key.Matches(msg, m.keyMap.JumpToChat):
		return m.handleJump(jumpIndex(msg.String()))

	case key.Matches(msg, m.keyMap.ToggleTheme):
		return m.handleToggleTheme()

	case key.Matches(msg, m.keyMap.CopyReply):
		return m.handleCopy()

	case key.Matches(msg, m.keyMap.Logout):
		return m.handleLogout()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// CONVERSATION ACTIONS
// =============================================================================

// handleSend appends the typed message and asks the provider for a reply.
// Empty input is ignored; a send while a reply is pending is refused by the
// store and shown on the status line with the input kept intact.
func (m Model) handleSend() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}

	target, err := m.deps.Store.AppendUserMessage(text)
	if err != nil {
		if _, pending := m.deps.Store.Pending(); pending && stderrors.Is(err, history.ErrInvalidInput) {
			m.setStatus("Wait for the assistant to reply before sending again", StatusWarning)
		} else {
			m.setStatus(err.Error(), StatusError)
		}
		return m, nil
	}

	m.input.Reset()
	m.deps.Session.MarkDirty()
	m.setStatus("", StatusInfo)
	m.refresh()

	log.Debug().Str("conversation_id", target).Int("chars", len(text)).Msg("message sent")
	return m, tea.Batch(
		respondCmd(m.ctx, m.deps.Provider, target, strings.TrimSpace(text)),
		m.spinner.Tick,
	)
}

// handleResponse records a finished reply in the conversation it was pinned
// to, even if the user has since switched away.
func (m Model) handleResponse(msg ResponseMsg) (tea.Model, tea.Cmd) {
	pendingID, pending := m.deps.Store.Pending()
	ours := pending && pendingID == msg.ConversationID

	if msg.Err != nil {
		if ours {
			m.deps.Store.AbortPending()
		}
		if !stderrors.Is(msg.Err, context.Canceled) {
			log.Warn().Err(msg.Err).Str("conversation_id", msg.ConversationID).Msg("response failed")
			m.setStatus("The assistant could not reply: "+msg.Err.Error(), StatusError)
		}
		m.refresh()
		return m, nil
	}

	var err error
	if ours {
		_, err = m.deps.Store.RecordResponse(msg.Text)
	} else {
		err = m.deps.Store.RecordResponseFor(msg.ConversationID, msg.Text)
	}
	if err != nil {
		log.Warn().Err(err).Str("conversation_id", msg.ConversationID).Msg("dropping response")
		m.setStatus("Reply dropped: conversation no longer exists", StatusWarning)
		return m, nil
	}

	m.deps.Session.MarkDirty()
	m.refresh()
	return m, nil
}

// handleNewChat creates a conversation and schedules its greeting.
func (m Model) handleNewChat() (tea.Model, tea.Cmd) {
	id := m.deps.Store.CreateConversation()
	m.deps.Session.MarkDirty()
	m.setStatus("", StatusInfo)
	m.refresh()
	return m, greetingCmd(id, m.opts.GreetingDelay)
}

func (m Model) handleGreeting(msg GreetingMsg) (tea.Model, tea.Cmd) {
	if err := m.deps.Store.RecordResponseFor(msg.ConversationID, responder.Greeting); err != nil {
		log.Debug().Err(err).Str("conversation_id", msg.ConversationID).Msg("greeting skipped")
		return m, nil
	}
	m.deps.Session.MarkDirty()
	m.refresh()
	return m, nil
}

// handleStep moves the current pointer delta places through the list.
func (m Model) handleStep(delta int) (tea.Model, tea.Cmd) {
	list := m.deps.Store.ListConversations()
	if len(list) == 0 {
		return m, nil
	}
	idx := 0
	for i, s := range list {
		if s.IsCurrent {
			idx = i + delta
			break
		}
	}
	if idx < 0 || idx >= len(list) {
		return m, nil
	}
	return m.switchTo(list[idx].ID)
}

// handleJump switches to the conversation at list position idx.
func (m Model) handleJump(idx int) (tea.Model, tea.Cmd) {
	id, err := m.deps.Store.IDAt(idx)
	if err != nil {
		m.setStatus("No conversation "+strconv.Itoa(idx+1), StatusWarning)
		return m, nil
	}
	return m.switchTo(id)
}

func (m Model) switchTo(id string) (tea.Model, tea.Cmd) {
	if err := m.deps.Store.SwitchTo(id); err != nil {
		m.setStatus("Conversation not found", StatusWarning)
		return m, nil
	}
	m.setStatus("", StatusInfo)
	m.refresh()
	return m, nil
}

// =============================================================================
// SESSION ACTIONS
// =============================================================================

func (m Model) handleToggleTheme() (tea.Model, tea.Cmd) {
	name, err := m.deps.Themes.Toggle()
	if err != nil {
		m.setStatus("Theme applied but not saved: "+err.Error(), StatusWarning)
	} else {
		m.setStatus("Theme: "+name.String(), StatusInfo)
	}
	m.layout()
	return m, nil
}

// handleCopy copies the last assistant reply of the current conversation.
func (m Model) handleCopy() (tea.Model, tea.Cmd) {
	conv, ok := m.deps.Store.Current()
	if !ok {
		m.setStatus("No response to copy", StatusWarning)
		return m, nil
	}
	reply, found := lastReply(conv)
	if !found {
		m.setStatus("No response to copy", StatusWarning)
		return m, nil
	}
	if err := m.deps.Clipboard(reply); err != nil {
		m.setStatus("Failed to copy: "+err.Error(), StatusError)
		return m, nil
	}
	m.setStatus("Copied reply to clipboard", StatusSuccess)
	return m, nil
}

func (m Model) handleLogout() (tea.Model, tea.Cmd) {
	if err := m.deps.Session.Logout(); err != nil {
		m.setStatus("Logged out, but saving failed: "+err.Error(), StatusError)
		return m, nil
	}
	m.setStatus("You have been logged out", StatusInfo)
	return m, nil
}

// handleQuit cancels outstanding replies, saves and exits.
func (m Model) handleQuit() (tea.Model, tea.Cmd) {
	m.cancel()
	if err := m.deps.Session.SaveNow(); err != nil {
		log.Error().Err(err).Msg("teardown save failed")
	}
	m.quitting = true
	return m, tea.Quit
}

// lastReply returns the text of the newest assistant message.
func lastReply(conv *model.Conversation) (string, bool) {
	msgs := conv.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].IsBot() {
			return msgs[i].Text, true
		}
	}
	return "", false
}
