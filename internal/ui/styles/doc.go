// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the light and dark visual themes for chatdesk.
//
// # Key Types
//
//   - Theme: every lipgloss style the presenters use, built from a Palette
//   - Palette: LightPalette and DarkPalette color sets
//   - ThemeManager: active theme plus persistence under the "chatTheme" key
//   - SpinnerConfig: frame sets for the typing indicator
//
// # Usage
//
//	tm := styles.NewThemeManager(kv, styles.ThemeLight, termenv.ColorProfile())
//	theme := tm.Theme()
//	fmt.Println(theme.UserBubble.Render("Hello"))
//	tm.Toggle() // dark, saved for the next start
//
// # Accessibility
//
// Status messages pair colors with ASCII indicators ([OK], [X], [!], [i])
// so they stay readable without color.
package styles
