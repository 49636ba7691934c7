// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the chatdesk command-line interface.
//
// The command tree is built with cobra:
//
//	chatdesk                      full-screen chat (requires a terminal)
//	chatdesk repl                 line-mode chat with slash commands
//	chatdesk history list         saved conversations, newest first
//	chatdesk history search TEXT  conversations mentioning TEXT
//	chatdesk history export N     one conversation as Markdown or JSON
//	chatdesk history clear --yes  delete saved history
//	chatdesk config show|init|path
//	chatdesk version
//
// Global flags: --config, --log-level, --log-file, --backend, --data-dir,
// --ephemeral.
//
// # Key Types
//
//   - App: storage, history store, session manager, themes and provider
//     opened together for one command
//   - REPL: the line-mode front end, testable through LineReader
//
// # Usage
//
//	if err := cli.Execute(ctx); err != nil {
//	    fmt.Fprintln(os.Stderr, "Error:", err)
//	    os.Exit(1)
//	}
package cli
