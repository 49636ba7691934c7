// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the chatdesk application.
//
// # Key Functions
//
// String Utilities:
//   - TruncateEllipsis: rune-exact truncation with a trailing "…"
//   - TruncateWidth, PadWidth: terminal-column aware fitting for list rows
//   - SingleLine: collapse newlines for one-line previews
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	title := util.TruncateEllipsis(firstMessage, 30)
//	row := util.PadWidth(util.TruncateWidth(title, 24), 24)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
