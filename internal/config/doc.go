// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatdesk.
//
// # Key Types
//
//   - Config: main configuration structure with all settings
//   - StorageConfig, SessionConfig, ResponderConfig, UIConfig, LoggingConfig: its sections
//   - Duration: a time.Duration written as "30s" in TOML
//   - ValidateErrors: every validation problem found at once
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CHATDESK_*)
//   - the file given with --config, or ~/.chatdesk/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	interval := cfg.Session.AutoSaveInterval.Duration
package config
