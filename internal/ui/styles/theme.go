// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the light and dark visual themes for chatdesk.
package styles

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
)

// =============================================================================
// THEME NAMES
// =============================================================================

// ThemeName identifies one of the two themes.
type ThemeName string

const (
	ThemeLight ThemeName = "light"
	ThemeDark  ThemeName = "dark"
)

// String returns the persisted form of the name.
func (n ThemeName) String() string { return string(n) }

// Valid reports whether n is a known theme.
func (n ThemeName) Valid() bool { return n == ThemeLight || n == ThemeDark }

// Other returns the theme a toggle switches to.
func (n ThemeName) Other() ThemeName {
	if n == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseThemeName accepts "light" or "dark" in any case.
func ParseThemeName(s string) (ThemeName, error) {
	n := ThemeName(strings.ToLower(strings.TrimSpace(s)))
	if !n.Valid() {
		return "", errors.Errorf("unknown theme %q (valid: light, dark)", s)
	}
	return n, nil
}

// =============================================================================
// THEME
// =============================================================================

// Theme holds all the styled components for the application.
type Theme struct {
	Name    ThemeName
	Palette Palette

	// Terminal capabilities
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	renderer *lipgloss.Renderer

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderMeta  lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar           lipgloss.Style
	SidebarHeading    lipgloss.Style
	SidebarItem       lipgloss.Style
	SidebarItemActive lipgloss.Style
	SidebarTitle      lipgloss.Style
	SidebarPreview    lipgloss.Style
	SidebarTime       lipgloss.Style
	SidebarEmpty      lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	MessageSender   lipgloss.Style
	MessageTime     lipgloss.Style
	Typing          lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// ACCESSIBILITY: Status indicator styles with shapes and high contrast
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a theme for the detected terminal color profile.
func NewTheme(name ThemeName) *Theme {
	return NewThemeWithProfile(name, termenv.NewOutput(os.Stdout).EnvColorProfile())
}

// NewThemeWithProfile creates a theme for an explicit color profile.
// Tests pass termenv.Ascii to get unstyled output.
func NewThemeWithProfile(name ThemeName, profile termenv.Profile) *Theme {
	if !name.Valid() {
		name = ThemeLight
	}
	palette := LightPalette
	if name == ThemeDark {
		palette = DarkPalette
	}

	r := lipgloss.NewRenderer(os.Stdout)
	r.SetColorProfile(profile)
	r.SetHasDarkBackground(name == ThemeDark)

	t := &Theme{
		Name:         name,
		Palette:      palette,
		ColorProfile: profile,
		renderer:     r,
	}
	t.initStyles()
	return t
}

// IsDark reports whether this is the dark theme.
func (t *Theme) IsDark() bool { return t.Name == ThemeDark }

// GlamourStyle returns the glamour standard style matching the theme.
func (t *Theme) GlamourStyle() string {
	if t.ColorProfile == termenv.Ascii {
		return "notty"
	}
	return string(t.Name)
}

// NewStyle returns an empty style bound to the theme's renderer.
func (t *Theme) NewStyle() lipgloss.Style {
	return t.renderer.NewStyle()
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	p := t.Palette
	ns := t.renderer.NewStyle

	// Header
	t.Header = ns().
		Bold(true).
		Foreground(p.Brand).
		Background(p.SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = ns().
		Bold(true).
		Foreground(p.Accent)

	t.HeaderMeta = ns().
		Foreground(p.TextSecondary).
		Italic(true)

	// Sidebar
	t.Sidebar = ns().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(p.Overlay).
		PaddingRight(1)

	t.SidebarHeading = ns().
		Foreground(p.Brand).
		Bold(true).
		MarginBottom(1)

	t.SidebarItem = ns().
		Foreground(p.TextPrimary).
		PaddingLeft(1)

	t.SidebarItemActive = ns().
		Background(p.SelectionBg).
		Foreground(p.TextPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(p.Accent)

	t.SidebarTitle = ns().
		Bold(true)

	t.SidebarPreview = ns().
		Foreground(p.TextSecondary)

	t.SidebarTime = ns().
		Foreground(p.TextMuted).
		Italic(true)

	t.SidebarEmpty = ns().
		Foreground(p.TextMuted).
		Italic(true).
		PaddingLeft(1)

	// Messages
	t.UserBubble = ns().
		Foreground(p.UserBubbleFg).
		Background(p.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.AssistantBubble = ns().
		Foreground(p.AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.AssistantBubbleBorder).
		Padding(0, 1).
		MarginRight(4)

	t.MessageSender = ns().
		Foreground(p.Brand).
		Bold(true)

	t.MessageTime = ns().
		Foreground(p.TextMuted)

	t.Typing = ns().
		Foreground(p.Accent)

	// Input area
	t.InputContainer = ns().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.Overlay)

	t.InputPrompt = ns().
		Foreground(p.Brand).
		Bold(true)

	t.InputPlaceholder = ns().
		Foreground(p.TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = ns().
		Background(p.SurfaceDim).
		Foreground(p.TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = ns().
		Foreground(p.Brand).
		Bold(true)

	t.ShortcutDesc = ns().
		Foreground(p.TextMuted)

	// ACCESSIBILITY: Use with the matching StatusIndicators symbol
	t.SuccessStyle = ns().
		Foreground(p.Success).
		Bold(true)

	t.ErrorStyle = ns().
		Foreground(p.Error).
		Bold(true)

	t.WarningStyle = ns().
		Foreground(p.Warning).
		Bold(true)

	t.InfoStyle = ns().
		Foreground(p.Brand).
		Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns, sidebar hidden
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)

// =============================================================================
// ACCESSIBILITY: Helpers for rendering status messages
// =============================================================================

// RenderSuccess renders a success message with its indicator.
func (t *Theme) RenderSuccess(message string) string {
	return t.SuccessStyle.Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with its indicator.
func (t *Theme) RenderError(message string) string {
	return t.ErrorStyle.Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders a warning message with its indicator.
func (t *Theme) RenderWarning(message string) string {
	return t.WarningStyle.Render(StatusIndicators.Warning + " " + message)
}

// RenderInfo renders an info message with its indicator.
func (t *Theme) RenderInfo(message string) string {
	return t.InfoStyle.Render(StatusIndicators.Info + " " + message)
}
