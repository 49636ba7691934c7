// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatdesk.
//
// Configuration file location (in order of precedence):
//   - the --config flag
//   - ~/.chatdesk/config.toml
//   - Built-in defaults
//
// CHATDESK_* environment variables are applied on top of either.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jeranaias/chatdesk/internal/storage"
	"github.com/jeranaias/chatdesk/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete chatdesk configuration.
type Config struct {
	// General settings
	Version string `toml:"version"`

	// Where history and the theme are kept
	Storage StorageConfig `toml:"storage"`

	// Auto-save behaviour
	Session SessionConfig `toml:"session"`

	// Simulated assistant
	Responder ResponderConfig `toml:"responder"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Log output
	Logging LoggingConfig `toml:"logging"`
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	// Backend is one of: file, sqlite, pebble, memory
	Backend string `toml:"backend"`
	// DataDir is where the on-disk backends keep their files
	DataDir string `toml:"data_dir"`
}

// SessionConfig controls auto-save.
type SessionConfig struct {
	// AutoSave enables periodic saving
	AutoSave bool `toml:"autosave"`
	// AutoSaveInterval is how often dirty history is written
	AutoSaveInterval Duration `toml:"autosave_interval"`
}

// ResponderConfig controls the simulated assistant's latency.
type ResponderConfig struct {
	// MinDelay and MaxDelay bound the random reply latency
	MinDelay Duration `toml:"min_delay"`
	MaxDelay Duration `toml:"max_delay"`
	// GreetingDelay is how long after a new chat the greeting appears
	GreetingDelay Duration `toml:"greeting_delay"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the fallback theme when none has been saved: "light" or "dark"
	Theme string `toml:"theme"`
	// DateLayout formats conversations older than a week (Go time layout)
	DateLayout string `toml:"date_layout"`
	// SidebarWidth is the conversation list width in columns
	SidebarWidth int `toml:"sidebar_width"`
	// Markdown renders assistant replies as Markdown
	Markdown bool `toml:"markdown"`
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error, disabled
	Level string `toml:"level"`
	// Format is "console" or "json"
	Format string `toml:"format"`
	// File is the log path; empty means <config dir>/chatdesk.log
	File string `toml:"file"`
	// MaxSizeMB, MaxBackups and MaxAgeDays control rotation
	MaxSizeMB  int `toml:"max_size_mb"`
	MaxBackups int `toml:"max_backups"`
	MaxAgeDays int `toml:"max_age_days"`
}

// =============================================================================
// DURATION
// =============================================================================

// Duration is a time.Duration written as a Go duration string ("30s").
type Duration struct {
	time.Duration
}

// D wraps d.
func D(d time.Duration) Duration { return Duration{d} }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", text)
	}
	d.Duration = parsed
	return nil
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Storage: StorageConfig{
			Backend: storage.BackendFile,
			DataDir: defaultDataDir(),
		},

		Session: SessionConfig{
			AutoSave:         true,
			AutoSaveInterval: D(30 * time.Second),
		},

		Responder: ResponderConfig{
			MinDelay:      D(1500 * time.Millisecond),
			MaxDelay:      D(2500 * time.Millisecond),
			GreetingDelay: D(500 * time.Millisecond),
		},

		UI: UIConfig{
			Theme:        "light",
			DateLayout:   "1/2/2006",
			SidebarWidth: 32,
			Markdown:     true,
		},

		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the chatdesk configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "could not determine home directory")
	}
	return filepath.Join(home, ".chatdesk"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the effective log file path.
func (c *Config) LogPath() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	dir, err := ConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "chatdesk.log")
	}
	return filepath.Join(dir, "chatdesk.log")
}

func defaultDataDir() string {
	dir, err := ConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "chatdesk")
	}
	return filepath.Join(dir, "data")
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads ~/.chatdesk/config.toml if it exists, otherwise the defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file with full validation.
// Keys missing from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, errors.Wrapf(err, "failed to load config from %s", path)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Unknown keys are rejected.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrap(err, "failed to decode TOML file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return errors.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	fillDefaults(cfg)
	return nil
}

// fillDefaults fills in values a file explicitly blanked out.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaults.Storage.Backend
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = defaults.Storage.DataDir
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.UI.DateLayout == "" {
		cfg.UI.DateLayout = defaults.UI.DateLayout
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaults.Logging.Format
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# chatdesk configuration file\n")
	buf.WriteString("# Generated by chatdesk - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	if err := util.AtomicWriteFileWithDir(path, buf.Bytes(), 0600, 0700); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

// String returns the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<unencodable config: %v>", err)
	}
	return buf.String()
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// Storage
	validBackend := false
	for _, b := range storage.Backends {
		if strings.EqualFold(c.Storage.Backend, b) {
			validBackend = true
		}
	}
	if !validBackend {
		add("storage.backend", "invalid backend '%s', must be one of: %s", c.Storage.Backend, strings.Join(storage.Backends, ", "))
	}
	if !strings.EqualFold(c.Storage.Backend, storage.BackendMemory) && c.Storage.DataDir == "" {
		add("storage.data_dir", "required for the %s backend", c.Storage.Backend)
	}

	// Session
	if c.Session.AutoSaveInterval.Duration < time.Second {
		add("session.autosave_interval", "must be at least 1s, got %s", c.Session.AutoSaveInterval)
	}

	// Responder
	if c.Responder.MinDelay.Duration < 0 {
		add("responder.min_delay", "must not be negative")
	}
	if c.Responder.MaxDelay.Duration < c.Responder.MinDelay.Duration {
		add("responder.max_delay", "must be at least min_delay (%s)", c.Responder.MinDelay)
	}
	if c.Responder.GreetingDelay.Duration < 0 {
		add("responder.greeting_delay", "must not be negative")
	}

	// UI
	switch strings.ToLower(c.UI.Theme) {
	case "light", "dark":
	default:
		add("ui.theme", "invalid theme '%s', must be one of: light, dark", c.UI.Theme)
	}
	if strings.TrimSpace(c.UI.DateLayout) == "" {
		add("ui.date_layout", "must not be empty")
	}
	if c.UI.SidebarWidth < 16 || c.UI.SidebarWidth > 80 {
		add("ui.sidebar_width", "must be between 16 and 80, got %d", c.UI.SidebarWidth)
	}

	// Logging
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		add("logging.level", "invalid level '%s'", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		add("logging.format", "invalid format '%s', must be one of: console, json", c.Logging.Format)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		add("logging", "rotation limits must not be negative")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
//   - CHATDESK_BACKEND: overrides storage.backend
//   - CHATDESK_DATA_DIR: overrides storage.data_dir
//   - CHATDESK_AUTOSAVE_INTERVAL: overrides session.autosave_interval
//   - CHATDESK_AUTOSAVE: overrides session.autosave
//   - CHATDESK_THEME: overrides ui.theme
//   - CHATDESK_LOG_LEVEL: overrides logging.level
//   - CHATDESK_LOG_FILE: overrides logging.file
//
// Unparseable values are ignored and left for Validate to judge the rest.
func (c *Config) ApplyEnvOverrides() {
	if backend := os.Getenv("CHATDESK_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}
	if dir := os.Getenv("CHATDESK_DATA_DIR"); dir != "" {
		c.Storage.DataDir = dir
	}
	if interval := os.Getenv("CHATDESK_AUTOSAVE_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Session.AutoSaveInterval = D(d)
		}
	}
	if autosave := os.Getenv("CHATDESK_AUTOSAVE"); autosave != "" {
		if b, err := strconv.ParseBool(autosave); err == nil {
			c.Session.AutoSave = b
		}
	}
	if theme := os.Getenv("CHATDESK_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if level := os.Getenv("CHATDESK_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("CHATDESK_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
}
