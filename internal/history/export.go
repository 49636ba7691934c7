// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history owns the list of conversations and the current-conversation pointer.
package history

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/jeranaias/chatdesk/internal/model"
)

// =============================================================================
// CONVERSATION EXPORT
// =============================================================================

// ExportMarkdown renders a conversation as a Markdown document with a
// header block and one section per message.
func ExportMarkdown(conv *model.Conversation) string {
	var sb strings.Builder
	sb.WriteString("# " + conv.Title() + "\n\n")
	sb.WriteString("ID: " + conv.ID() + "\n\n")
	sb.WriteString("Created: " + conv.CreatedAt().Format(time.RFC3339) + "\n\n")
	sb.WriteString("---\n\n")

	for _, msg := range conv.Messages() {
		sb.WriteString("**" + msg.Sender.DisplayName() + "** (" + msg.Timestamp.Format("15:04") + "):\n\n")
		sb.WriteString(msg.Text)
		sb.WriteString("\n\n---\n\n")
	}
	return sb.String()
}

// ExportJSON renders a single conversation in the persisted record format,
// pretty-printed.
func ExportJSON(conv *model.Conversation) ([]byte, error) {
	return json.MarshalIndent(toRecord(conv), "", "  ")
}
