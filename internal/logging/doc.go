// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the global zerolog logger for chatdesk.
//
// Output goes to a size-rotated file (lumberjack) so the terminal UI keeps
// the screen to itself. Line-mode commands can add stderr output.
//
// # Usage
//
//	closer, err := logging.Init(logging.Options{
//	    Level: "debug",
//	    File:  "/home/me/.chatdesk/chatdesk.log",
//	})
//	if err != nil {
//	    return err
//	}
//	defer closer.Close()
//	log.Info().Str("backend", "file").Msg("storage ready")
package logging
