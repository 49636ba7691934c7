// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-runewidth"
)

// =============================================================================
// FORMATTING UTILITIES
// =============================================================================

// formatTimestamp formats a message timestamp relative to now:
//   - Today: just time (e.g., "15:04")
//   - This week: day and time (e.g., "Mon 15:04")
//   - Older: date and time (e.g., "Jan 2 15:04")
func formatTimestamp(t, now time.Time) string {
	t = t.Local()
	now = now.Local()

	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	if now.Sub(t) < 7*24*time.Hour {
		return t.Format("Mon 15:04")
	}
	return t.Format("Jan 2 15:04")
}

// =============================================================================
// CLIPBOARD UTILITIES
// =============================================================================

// copyToClipboard copies the given text to the system clipboard.
// Returns an error if the clipboard is not available or the operation fails.
func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// =============================================================================
// TEXT UTILITIES
// =============================================================================

// calculateContentWidth returns the text width left inside totalWidth after
// margin columns, never less than 3.
func calculateContentWidth(totalWidth, margin int) int {
	contentWidth := totalWidth - margin
	if contentWidth < 3 {
		contentWidth = 3
	}
	return contentWidth
}

// wrapText wraps text to maxWidth terminal columns, breaking at spaces where
// possible. Existing line breaks are kept; wide characters count double.
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	var result strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}

		for runewidth.StringWidth(line) > maxWidth {
			cut := cutIndex(line, maxWidth)
			result.WriteString(strings.TrimRight(line[:cut], " "))
			result.WriteString("\n")
			line = strings.TrimLeft(line[cut:], " ")
		}
		result.WriteString(line)
	}
	return result.String()
}

// cutIndex returns the byte offset to break line at so the head fits in
// maxWidth columns: after the last space that fits, or mid-word if none does.
func cutIndex(line string, maxWidth int) int {
	width, lastSpace, hard := 0, -1, 0
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		w := runewidth.RuneWidth(r)
		if width+w > maxWidth {
			break
		}
		width += w
		if r == ' ' {
			lastSpace = i
		}
		i += size
		hard = i
	}
	if hard > 0 && hard < len(line) && line[hard] == ' ' {
		return hard
	}
	if lastSpace > 0 {
		return lastSpace
	}
	if hard == 0 {
		// A single rune wider than maxWidth still has to go somewhere.
		_, size := utf8.DecodeRuneInString(line)
		return size
	}
	return hard
}
