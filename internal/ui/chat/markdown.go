// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer caches one glamour renderer per style and wrap width.
// Building a renderer parses a whole style sheet, so it is not done per message.
type markdownRenderer struct {
	mu       sync.Mutex
	style    string
	width    int
	renderer *glamour.TermRenderer
	failed   bool
}

func newMarkdownRenderer() *markdownRenderer {
	return &markdownRenderer{}
}

// Render returns content rendered as Markdown, or content unchanged if
// glamour is unavailable for this style.
func (r *markdownRenderer) Render(content, style string, width int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if (r.renderer == nil && !r.failed) || r.style != style || r.width != width {
		r.style, r.width, r.failed = style, width, false
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			log.Warn().Err(err).Str("style", style).Msg("markdown renderer unavailable")
			r.renderer, r.failed = nil, true
		} else {
			r.renderer = tr
		}
	}
	if r.failed {
		return content
	}

	out, err := r.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
