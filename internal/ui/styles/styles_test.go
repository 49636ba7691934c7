// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the light and dark visual themes for chatdesk.
package styles

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatdesk/internal/storage"
)

// brokenKV reads fine but fails every write.
type brokenKV struct {
	*storage.MemoryStore
}

func (brokenKV) Set(string, []byte) error { return errors.New("read-only") }

// =============================================================================
// THEME NAME TESTS
// =============================================================================

func TestParseThemeName(t *testing.T) {
	tests := []struct {
		in      string
		want    ThemeName
		wantErr bool
	}{
		{"light", ThemeLight, false},
		{"dark", ThemeDark, false},
		{" Dark ", ThemeDark, false},
		{"LIGHT", ThemeLight, false},
		{"solarized", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseThemeName(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestThemeName_Other(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Other())
	assert.Equal(t, ThemeLight, ThemeDark.Other())
}

// =============================================================================
// THEME TESTS
// =============================================================================

func TestNewTheme_Palettes(t *testing.T) {
	light := NewThemeWithProfile(ThemeLight, termenv.TrueColor)
	dark := NewThemeWithProfile(ThemeDark, termenv.TrueColor)

	assert.False(t, light.IsDark())
	assert.True(t, dark.IsDark())
	assert.Equal(t, LightPalette, light.Palette)
	assert.Equal(t, DarkPalette, dark.Palette)
	assert.Equal(t, "light", light.GlamourStyle())
	assert.Equal(t, "dark", dark.GlamourStyle())
}

func TestNewTheme_InvalidNameFallsBack(t *testing.T) {
	theme := NewThemeWithProfile("neon", termenv.Ascii)
	assert.Equal(t, ThemeLight, theme.Name)
}

func TestTheme_AsciiRendersPlainText(t *testing.T) {
	theme := NewThemeWithProfile(ThemeDark, termenv.Ascii)

	out := theme.SidebarTitle.Render("New Chat")
	assert.Equal(t, "New Chat", out)
	assert.Equal(t, "notty", theme.GlamourStyle())

	assert.Equal(t, "[X] failed", theme.RenderError("failed"))
	assert.Equal(t, "[OK] saved", theme.RenderSuccess("saved"))
	assert.True(t, strings.HasPrefix(theme.RenderWarning("w"), "[!]"))
	assert.True(t, strings.HasPrefix(theme.RenderInfo("i"), "[i]"))
}

func TestTheme_LayoutMode(t *testing.T) {
	theme := NewThemeWithProfile(ThemeLight, termenv.Ascii)

	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
	}
	for _, tt := range tests {
		theme.SetSize(tt.width, 30)
		assert.Equal(t, tt.want, theme.GetLayoutMode(), "width %d", tt.width)
	}
}

// =============================================================================
// THEME MANAGER TESTS
// =============================================================================

func TestThemeManager_DefaultsWhenNothingSaved(t *testing.T) {
	tm := NewThemeManager(storage.NewMemoryStore(), ThemeLight, termenv.Ascii)
	assert.Equal(t, ThemeLight, tm.Current())

	tm = NewThemeManager(storage.NewMemoryStore(), ThemeDark, termenv.Ascii)
	assert.Equal(t, ThemeDark, tm.Current())
}

func TestThemeManager_LoadsSavedTheme(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ThemeKey, []byte("dark")))

	tm := NewThemeManager(kv, ThemeLight, termenv.Ascii)
	assert.Equal(t, ThemeDark, tm.Current())
	assert.True(t, tm.Theme().IsDark())
}

func TestThemeManager_IgnoresInvalidSavedTheme(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ThemeKey, []byte("purple")))

	tm := NewThemeManager(kv, ThemeLight, termenv.Ascii)
	assert.Equal(t, ThemeLight, tm.Current())
}

func TestThemeManager_TogglePersists(t *testing.T) {
	kv := storage.NewMemoryStore()
	tm := NewThemeManager(kv, ThemeLight, termenv.Ascii)
	tm.Theme().SetSize(120, 40)

	next, err := tm.Toggle()
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, next)
	assert.Equal(t, 120, tm.Theme().Width, "size carries over")

	saved, err := kv.Get(ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "dark", string(saved))

	// A fresh manager on the same store picks the choice up.
	assert.Equal(t, ThemeDark, NewThemeManager(kv, ThemeLight, termenv.Ascii).Current())

	next, err = tm.Toggle()
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, next)
}

func TestThemeManager_WriteFailureStillApplies(t *testing.T) {
	tm := NewThemeManager(brokenKV{storage.NewMemoryStore()}, ThemeLight, termenv.Ascii)

	_, err := tm.Toggle()
	assert.Error(t, err)
	assert.Equal(t, ThemeDark, tm.Current())
}

func TestThemeManager_SetRejectsUnknown(t *testing.T) {
	tm := NewThemeManager(storage.NewMemoryStore(), ThemeLight, termenv.Ascii)
	assert.Error(t, tm.Set("neon"))
	assert.Equal(t, ThemeLight, tm.Current())
}

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestSpinnerConfig(t *testing.T) {
	assert.Equal(t, time.Second, TypingSpinner.Duration())
	assert.Equal(t, time.Duration(0), SpinnerConfig{}.Duration())

	b := LineSpinner.Bubble()
	assert.Equal(t, LineSpinner.Frames, b.Frames)
	assert.Equal(t, 100*time.Millisecond, b.FPS)
}
