// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strconv"
	"time"

	"github.com/jeranaias/chatdesk/internal/util"
)

// =============================================================================
// DISPLAY CONSTANTS
// =============================================================================

const (
	// TitleSentinel is the title of a conversation that has not been titled yet.
	TitleSentinel = "New Chat"

	// EmptyPreview is shown for conversations without messages.
	EmptyPreview = "No messages yet"

	// TitleMaxRunes is the title length before truncation kicks in.
	TitleMaxRunes = 30

	// PreviewMaxRunes is the preview length before truncation kicks in.
	PreviewMaxRunes = 50

	// DefaultDateLayout matches the en-US short date used for old conversations.
	DefaultDateLayout = "1/2/2006"
)

// =============================================================================
// DERIVED VIEWS
// =============================================================================

// DeriveTitle builds a conversation title from the first user message.
func DeriveTitle(text string) string {
	return util.TruncateEllipsis(text, TitleMaxRunes)
}

// Preview builds the list preview of a conversation's last message.
func Preview(lastMessage string) string {
	if lastMessage == "" {
		return EmptyPreview
	}
	return util.TruncateEllipsis(lastMessage, PreviewMaxRunes)
}

// TimeAgo formats t relative to now using coarse bands.
// Every band floors; nothing rounds up. Times older than a week fall back to
// the calendar date in dateLayout (DefaultDateLayout when empty).
func TimeAgo(t, now time.Time, dateLayout string) string {
	diff := now.Sub(t)
	mins := int64(diff / time.Minute)
	hours := int64(diff / time.Hour)
	days := int64(diff / (24 * time.Hour))

	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return strconv.FormatInt(mins, 10) + "m ago"
	case hours < 24:
		return strconv.FormatInt(hours, 10) + "h ago"
	case days < 7:
		return strconv.FormatInt(days, 10) + "d ago"
	}

	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	return t.In(now.Location()).Format(dateLayout)
}
