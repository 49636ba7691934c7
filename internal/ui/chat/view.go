// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jeranaias/chatdesk/internal/model"
	"github.com/jeranaias/chatdesk/internal/session"
	"github.com/jeranaias/chatdesk/internal/util"
)

const (
	emptySidebarTitle = "No chats yet"
	emptySidebarHint  = "Start a new conversation to begin"
	activeMarker      = "▸ "
)

// =============================================================================
// MAIN VIEW
// =============================================================================

// render lays out header, sidebar, messages, input and status bar.
func (m Model) render() string {
	t := m.theme()

	body := m.viewport.View()
	if m.showSidebar() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), body)
	}

	input := t.InputContainer.Width(m.width).Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		input,
		m.renderStatusBar(),
	)
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	t := m.theme()

	content := t.HeaderTitle.Render("chatdesk")
	if conv, ok := m.deps.Store.Current(); ok {
		content += "  " + t.HeaderMeta.Render(util.TruncateWidth(conv.Title(), m.width/2))
	}
	return t.Header.Width(m.width).Render(content)
}

// =============================================================================
// SIDEBAR
// =============================================================================

// renderSidebar lists every conversation newest first. The first nine carry
// the digit that jumps to them.
func (m Model) renderSidebar() string {
	t := m.theme()
	inner := m.opts.SidebarWidth - 3
	if inner < 8 {
		inner = 8
	}

	list := m.deps.Store.ListConversations()

	var b strings.Builder
	b.WriteString(t.SidebarHeading.Render("Chats (" + strconv.Itoa(len(list)) + ")"))
	b.WriteString("\n")

	if len(list) == 0 {
		b.WriteString(t.SidebarEmpty.Render(emptySidebarTitle + "\n" + emptySidebarHint))
	}

	for i, s := range list {
		prefix := "  "
		if i < 9 {
			prefix = strconv.Itoa(i+1) + " "
		}
		if s.IsCurrent {
			prefix = activeMarker
		}

		title := util.TruncateWidth(prefix+util.SingleLine(s.Title), inner)
		preview := util.TruncateWidth("  "+util.SingleLine(s.Preview), inner)
		ago := util.TruncateWidth("  "+s.TimeAgo, inner)

		entry := t.SidebarTitle.Render(util.PadWidth(title, inner)) + "\n" +
			t.SidebarPreview.Render(util.PadWidth(preview, inner)) + "\n" +
			t.SidebarTime.Render(util.PadWidth(ago, inner))

		if s.IsCurrent {
			b.WriteString(t.SidebarItemActive.Render(entry))
		} else {
			b.WriteString(t.SidebarItem.Render(entry))
		}
		b.WriteString("\n")
	}

	return t.Sidebar.
		Width(m.opts.SidebarWidth).
		Height(m.viewport.Height).
		MaxHeight(m.viewport.Height).
		Render(strings.TrimRight(b.String(), "\n"))
}

// =============================================================================
// MESSAGES
// =============================================================================

// renderMessages renders the current conversation for a pane width columns wide.
func (m Model) renderMessages(width int) string {
	t := m.theme()

	conv, ok := m.deps.Store.Current()
	if !ok {
		return m.renderEmptyState(width)
	}

	now := time.Now()
	parts := make([]string, 0, conv.MessageCount()+1)
	for _, msg := range conv.Messages() {
		parts = append(parts, m.renderMessage(msg, width, now))
	}

	if id, pending := m.deps.Store.Pending(); pending && id == conv.ID() {
		parts = append(parts, t.Typing.Render(m.spinner.View()+" Assistant is typing"))
	}

	if len(parts) == 0 {
		return t.InfoStyle.Render("Say hello to start the conversation.")
	}
	return strings.Join(parts, "\n\n")
}

// renderMessage renders one message: sender line above a bubble, user
// messages right-aligned.
func (m Model) renderMessage(msg model.Message, width int, now time.Time) string {
	t := m.theme()
	bubbleWidth := calculateContentWidth(width, 8)

	meta := t.MessageSender.Render(msg.Sender.DisplayName()) + " " +
		t.MessageTime.Render(formatTimestamp(msg.Timestamp, now))

	if msg.IsUser() {
		bubble := t.UserBubble.Render(wrapText(msg.Text, bubbleWidth))
		return lipgloss.JoinVertical(lipgloss.Right,
			lipgloss.PlaceHorizontal(width, lipgloss.Right, meta),
			lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble),
		)
	}

	text := wrapText(msg.Text, bubbleWidth)
	if m.opts.Markdown {
		text = m.markdown.Render(msg.Text, t.GlamourStyle(), bubbleWidth)
	}
	return meta + "\n" + t.AssistantBubble.Render(text)
}

// renderEmptyState is shown before any conversation exists.
func (m Model) renderEmptyState(width int) string {
	t := m.theme()
	lines := []string{
		t.HeaderTitle.Render("Welcome to chatdesk"),
		"",
		t.SidebarPreview.Render("Press " + m.keyMap.NewChat.Help().Key + " to start a new chat."),
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}

// =============================================================================
// STATUS BAR
// =============================================================================

func (m Model) renderStatusBar() string {
	t := m.theme()

	var left string
	switch {
	case m.status != "":
		left = m.renderStatus()
	case m.pending():
		left = t.Typing.Render(m.spinner.View() + " waiting for reply")
	default:
		hints := make([]string, 0, len(m.keyMap.ShortHelp()))
		for _, b := range m.keyMap.ShortHelp() {
			h := b.Help()
			hints = append(hints, t.ShortcutKey.Render(h.Key)+" "+t.ShortcutDesc.Render(h.Desc))
		}
		left = strings.Join(hints, "  ")
	}

	st := m.deps.Session.GetStatus()
	saved := "saved " + humanize.Time(st.LastSave)
	if st.IsDirty {
		saved = "unsaved changes"
	}
	account := "signed in"
	if !st.LoggedIn {
		account = "signed out"
	}
	uptime := "session " + session.FormatDuration(st.Duration)
	right := strings.Join([]string{m.deps.Themes.Current().String(), uptime, saved, account}, " · ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return t.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderStatus() string {
	t := m.theme()
	switch m.statusLevel {
	case StatusSuccess:
		return t.RenderSuccess(m.status)
	case StatusWarning:
		return t.RenderWarning(m.status)
	case StatusError:
		return t.RenderError(m.status)
	default:
		return t.RenderInfo(m.status)
	}
}
