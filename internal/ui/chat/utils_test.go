// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// FORMATTING UTILITIES TESTS
// =============================================================================

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 30, 0, 0, time.Local)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"today", now.Add(-2 * time.Hour), "13:30"},
		{"this week", now.AddDate(0, 0, -2), "Wed 15:30"},
		{"older", now.AddDate(0, -1, 0), "Feb 14 15:30"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatTimestamp(tc.at, now); got != tc.want {
				t.Errorf("formatTimestamp(%v) = %q, want %q", tc.at, got, tc.want)
			}
		})
	}
}

func TestCalculateContentWidth(t *testing.T) {
	tests := []struct {
		total, margin, want int
	}{
		{80, 8, 72},
		{10, 8, 3},
		{0, 8, 3},
	}
	for _, tc := range tests {
		if got := calculateContentWidth(tc.total, tc.margin); got != tc.want {
			t.Errorf("calculateContentWidth(%d, %d) = %d, want %d", tc.total, tc.margin, got, tc.want)
		}
	}
}

// =============================================================================
// TEXT UTILITIES TESTS
// =============================================================================

func TestWrapText(t *testing.T) {
	got := wrapText("hello world again", 11)
	want := "hello world\nagain"
	if got != want {
		t.Errorf("wrapText = %q, want %q", got, want)
	}
}

func TestWrapTextBreaksLongWords(t *testing.T) {
	got := wrapText("abcdefghij", 4)
	want := "abcd\nefgh\nij"
	if got != want {
		t.Errorf("wrapText = %q, want %q", got, want)
	}
}

func TestWrapTextPreservesNewlines(t *testing.T) {
	got := wrapText("one\ntwo", 20)
	if got != "one\ntwo" {
		t.Errorf("wrapText = %q, want newlines preserved", got)
	}
}

func TestWrapTextWideCharacters(t *testing.T) {
	got := wrapText("日本語のテキスト", 6)
	for _, line := range strings.Split(got, "\n") {
		if w := runewidth.StringWidth(line); w > 6 {
			t.Errorf("line %q is %d columns wide, want <= 6", line, w)
		}
	}
	if strings.ReplaceAll(got, "\n", "") != "日本語のテキスト" {
		t.Errorf("wrapText lost characters: %q", got)
	}
}

func TestWrapTextZeroWidth(t *testing.T) {
	if got := wrapText("unchanged", 0); got != "unchanged" {
		t.Errorf("wrapText(_, 0) = %q", got)
	}
	if got := wrapText("", 10); got != "" {
		t.Errorf("wrapText(\"\", 10) = %q", got)
	}
}

// =============================================================================
// KEYS AND MARKDOWN
// =============================================================================

func TestJumpIndex(t *testing.T) {
	tests := map[string]int{
		"alt+1":  0,
		"alt+9":  8,
		"alt+0":  -1,
		"alt+a":  -1,
		"1":      -1,
		"ctrl+1": -1,
	}
	for in, want := range tests {
		if got := jumpIndex(in); got != want {
			t.Errorf("jumpIndex(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestMarkdownRenderer(t *testing.T) {
	r := newMarkdownRenderer()

	out := r.Render("Some **bold** advice", "notty", 40)
	if !strings.Contains(out, "bold") || !strings.Contains(out, "advice") {
		t.Errorf("Render lost text: %q", out)
	}
	if strings.HasPrefix(out, "\n") || strings.HasSuffix(out, "\n") {
		t.Errorf("Render should trim surrounding newlines: %q", out)
	}

	// Same style and width reuse the cached renderer.
	first := r.renderer
	r.Render("again", "notty", 40)
	if r.renderer != first {
		t.Error("renderer was rebuilt for identical settings")
	}
	r.Render("again", "notty", 60)
	if r.renderer == first {
		t.Error("renderer was not rebuilt for a new width")
	}
}
