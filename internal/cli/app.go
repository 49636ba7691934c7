// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Wiring of storage, history, session and theme for every command.
package cli

import (
	"strconv"

	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/chatdesk/internal/config"
	"github.com/jeranaias/chatdesk/internal/history"
	"github.com/jeranaias/chatdesk/internal/responder"
	"github.com/jeranaias/chatdesk/internal/session"
	"github.com/jeranaias/chatdesk/internal/storage"
	"github.com/jeranaias/chatdesk/internal/ui/styles"
)

// =============================================================================
// APPLICATION
// =============================================================================

// App bundles the collaborators a front end drives.
type App struct {
	Config   *config.Config
	KV       storage.KV
	Store    *history.Store
	Session  *session.Manager
	Themes   *styles.ThemeManager
	Provider responder.Provider
}

// AppOptions adjust how an App is opened.
type AppOptions struct {
	// Ephemeral keeps everything in memory; nothing is read or written.
	Ephemeral bool
	// Profile is the terminal color profile for themes.
	Profile termenv.Profile
	// Provider replaces the simulated assistant.
	Provider responder.Provider
}

// OpenApp opens storage and restores saved history. A corrupt history is
// reported in the log and leaves an empty list; only storage failures error.
func OpenApp(cfg *config.Config, opts AppOptions) (*App, error) {
	backend := cfg.Storage.Backend
	if opts.Ephemeral {
		backend = storage.BackendMemory
	}

	kv, err := storage.Open(storage.Options{Backend: backend, DataDir: cfg.Storage.DataDir})
	if err != nil {
		return nil, errors.Wrap(err, "opening storage")
	}

	store := history.New(history.WithDateLayout(cfg.UI.DateLayout))
	res, err := history.Restore(store, kv)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	switch {
	case res.Corrupt:
		log.Warn().Str("backend", backend).Msg("saved history was unreadable; starting empty")
	case !res.Missing:
		log.Info().Int("conversations", res.Restored).Msg("history restored")
	}

	provider := opts.Provider
	if provider == nil {
		provider = responder.NewMock(responder.WithDelay(
			cfg.Responder.MinDelay.Duration,
			cfg.Responder.MaxDelay.Duration,
		))
	}

	mgr := session.NewManager(session.Config{
		AutoSaveEnabled:  cfg.Session.AutoSave,
		AutoSaveInterval: cfg.Session.AutoSaveInterval.Duration,
	}, func() error {
		return history.Save(store, kv)
	})

	fallback, err := styles.ParseThemeName(cfg.UI.Theme)
	if err != nil {
		fallback = styles.ThemeLight
	}

	return &App{
		Config:   cfg,
		KV:       kv,
		Store:    store,
		Session:  mgr,
		Themes:   styles.NewThemeManager(kv, fallback, opts.Profile),
		Provider: provider,
	}, nil
}

// StartConversation creates the conversation a front end opens with.
func (a *App) StartConversation() string {
	id := a.Store.CreateConversation()
	a.Session.MarkDirty()
	return id
}

// Close releases the storage backend.
func (a *App) Close() error {
	return a.KV.Close()
}

// resolveConversation accepts a 1-based list position or a conversation id.
func resolveConversation(store *history.Store, ref string) (string, error) {
	if n, ok := parsePosition(ref); ok {
		return store.IDAt(n - 1)
	}
	if _, err := store.Get(ref); err != nil {
		return "", err
	}
	return ref, nil
}

func parsePosition(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
