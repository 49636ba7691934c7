// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the light and dark visual themes for chatdesk.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PALETTE
// =============================================================================

// Palette is the set of colors one theme is built from.
type Palette struct {
	// Accents
	Accent  lipgloss.Color // assistant messages, selections
	Brand   lipgloss.Color // header, user highlights
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	// Surfaces
	Surface       lipgloss.Color
	SurfaceDim    lipgloss.Color
	SurfaceBright lipgloss.Color
	Overlay       lipgloss.Color

	// Text
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	TextInverse   lipgloss.Color

	// Message bubbles
	UserBubbleBg          lipgloss.Color
	UserBubbleFg          lipgloss.Color
	UserBubbleBorder      lipgloss.Color
	AssistantBubbleBg     lipgloss.Color
	AssistantBubbleFg     lipgloss.Color
	AssistantBubbleBorder lipgloss.Color

	// Sidebar selection
	SelectionBg lipgloss.Color
}

// LightPalette matches the web client's default look.
var LightPalette = Palette{
	Accent:  "#7C3AED",
	Brand:   "#0891B2",
	Success: "#15803D",
	Error:   "#DC2626",
	Warning: "#D97706",

	Surface:       "#FFFFFF",
	SurfaceDim:    "#F5F5F5",
	SurfaceBright: "#FAFAFA",
	Overlay:       "#E5E5E5",

	TextPrimary:   "#1F2937",
	TextSecondary: "#6B7280",
	TextMuted:     "#9CA3AF",
	TextInverse:   "#FFFFFF",

	UserBubbleBg:          "#DBEAFE",
	UserBubbleFg:          "#1E40AF",
	UserBubbleBorder:      "#3B82F6",
	AssistantBubbleBg:     "#F5F3FF",
	AssistantBubbleFg:     "#5B4B8A",
	AssistantBubbleBorder: "#C4B5FD",

	SelectionBg: "#BFDBFE",
}

// DarkPalette is the Catppuccin Mocha based dark look.
var DarkPalette = Palette{
	Accent:  "#A78BFA",
	Brand:   "#22D3EE",
	Success: "#22C55E",
	Error:   "#EF4444",
	Warning: "#F59E0B",

	Surface:       "#1E1E2E",
	SurfaceDim:    "#181825",
	SurfaceBright: "#313244",
	Overlay:       "#313244",

	TextPrimary:   "#CDD6F4",
	TextSecondary: "#A6ADC8",
	TextMuted:     "#6C7086",
	TextInverse:   "#1E1E2E",

	UserBubbleBg:          "#1D4ED8",
	UserBubbleFg:          "#E0F2FE",
	UserBubbleBorder:      "#3B82F6",
	AssistantBubbleBg:     "#3B3655",
	AssistantBubbleFg:     "#E9E4F5",
	AssistantBubbleBorder: "#A78BFA",

	SelectionBg: "#1E3A5F",
}

// =============================================================================
// ACCESSIBILITY: Shapes alongside colors for colorblind users
// =============================================================================

// StatusIndicatorSet contains text indicators for status states.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
	Pending string
	Active  string
}

// StatusIndicators are ASCII-only for maximum compatibility.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
	Pending: "[ ]",
	Active:  "[*]",
}
