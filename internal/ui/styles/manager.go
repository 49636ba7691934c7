// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the light and dark visual themes for chatdesk.
package styles

import (
	stderrors "errors"
	"sync"

	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/chatdesk/internal/storage"
)

// ThemeKey is the key-value record holding the chosen theme name.
const ThemeKey = "chatTheme"

// =============================================================================
// THEME MANAGER
// =============================================================================

// ThemeManager owns the active theme and persists the choice.
type ThemeManager struct {
	mu      sync.RWMutex
	kv      storage.KV
	current *Theme
	profile termenv.Profile
}

// NewThemeManager loads the saved theme from kv, falling back to fallback
// when nothing valid is stored. Read failures are logged, never returned.
func NewThemeManager(kv storage.KV, fallback ThemeName, profile termenv.Profile) *ThemeManager {
	name := fallback
	if !name.Valid() {
		name = ThemeLight
	}

	data, err := kv.Get(ThemeKey)
	switch {
	case err == nil:
		if saved, perr := ParseThemeName(string(data)); perr == nil {
			name = saved
		} else {
			log.Warn().Str("value", string(data)).Msg("ignoring invalid saved theme")
		}
	case !stderrors.Is(err, storage.ErrKeyNotFound):
		log.Warn().Err(err).Msg("failed to read saved theme")
	}

	return &ThemeManager{
		kv:      kv,
		current: NewThemeWithProfile(name, profile),
		profile: profile,
	}
}

// Current returns the active theme name.
func (m *ThemeManager) Current() ThemeName {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Name
}

// Theme returns the active theme.
func (m *ThemeManager) Theme() *Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set activates name and persists it. The theme is applied even if the
// write fails; the error is returned so callers can report it.
func (m *ThemeManager) Set(name ThemeName) error {
	if !name.Valid() {
		return errors.Errorf("unknown theme %q", name)
	}

	m.mu.Lock()
	width, height := m.current.Width, m.current.Height
	m.current = NewThemeWithProfile(name, m.profile)
	m.current.SetSize(width, height)
	m.mu.Unlock()

	if err := m.kv.Set(ThemeKey, []byte(name)); err != nil {
		return errors.Wrap(err, "saving theme")
	}
	log.Debug().Str("theme", name.String()).Msg("theme changed")
	return nil
}

// Toggle switches between light and dark and returns the new name.
func (m *ThemeManager) Toggle() (ThemeName, error) {
	next := m.Current().Other()
	return next, m.Set(next)
}
