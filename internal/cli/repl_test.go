// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatdesk/internal/config"
	"github.com/jeranaias/chatdesk/internal/history"
	"github.com/jeranaias/chatdesk/internal/responder"
	"github.com/jeranaias/chatdesk/internal/storage"
)

// scriptedReader replays fixed lines and then reports EOF.
type scriptedReader struct {
	lines   []string
	history []string
	closed  bool
}

func (s *scriptedReader) Prompt(string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedReader) AppendHistory(item string) { s.history = append(s.history, item) }

func (s *scriptedReader) Close() error {
	s.closed = true
	return nil
}

func echoProvider() responder.Provider {
	return responder.ProviderFunc(func(_ context.Context, text string) (string, error) {
		return "echo: " + text, nil
	})
}

func newTestApp(t *testing.T, provider responder.Provider) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Backend = storage.BackendMemory
	app, err := OpenApp(cfg, AppOptions{Profile: termenv.Ascii, Provider: provider})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func runScript(t *testing.T, app *App, lines ...string) (string, *scriptedReader) {
	t.Helper()
	in := &scriptedReader{lines: lines}
	var out bytes.Buffer
	require.NoError(t, NewREPL(app, in, &out).Run(context.Background()))
	return out.String(), in
}

func TestREPLConversation(t *testing.T) {
	app := newTestApp(t, echoProvider())

	out, in := runScript(t, app,
		"hello",
		"   ",
		"/list",
		"/new",
		"/switch 2",
		"/theme",
		"/bogus",
		"/quit",
		"never read",
	)

	assert.Contains(t, out, responder.Greeting)
	assert.Contains(t, out, "echo: hello")
	assert.Contains(t, out, "theme: dark")
	assert.Contains(t, out, "unknown command /bogus")
	assert.Equal(t, []string{"never read"}, in.lines, "input stops at /quit")
	assert.NotContains(t, in.history, "", "blank lines are not kept")

	require.Equal(t, 2, app.Store.Len())
	conv, ok := app.Store.Current()
	require.True(t, ok)
	assert.Equal(t, "hello", conv.Title(), "/switch 2 selects the older chat")

	data, err := app.KV.Get(history.HistoryKey)
	require.NoError(t, err, "history is saved when the REPL exits")
	assert.Contains(t, string(data), "echo: hello")
}

func TestREPLEndsOnEOF(t *testing.T) {
	app := newTestApp(t, echoProvider())
	out, _ := runScript(t, app, "/help")
	assert.Contains(t, out, "/quit")
	assert.Equal(t, 1, app.Store.Len())
}

func TestREPLProviderError(t *testing.T) {
	app := newTestApp(t, responder.ProviderFunc(func(context.Context, string) (string, error) {
		return "", errors.New("backend offline")
	}))

	out, _ := runScript(t, app, "anyone there?", "try again")

	assert.Contains(t, out, "could not reply: backend offline")
	_, pending := app.Store.Pending()
	assert.False(t, pending, "a failed reply does not block the next send")

	conv, ok := app.Store.Current()
	require.True(t, ok)
	assert.Equal(t, 3, len(conv.Messages()), "greeting plus two user messages")
}

func TestREPLSwitchAndSearch(t *testing.T) {
	app := newTestApp(t, echoProvider())

	out, _ := runScript(t, app,
		"pasta tonight",
		"/new",
		"/search PASTA",
		"/switch 9",
		"/switch",
		"/logout",
	)

	assert.Contains(t, out, "pasta tonight")
	assert.Contains(t, out, "no conversation 9")
	assert.Contains(t, out, "usage: /switch")
	assert.Contains(t, out, "You have been logged out")
	assert.False(t, app.Session.IsLoggedIn())
}

func TestWrap(t *testing.T) {
	got := wrap("one two three four", 12, "  ")
	for _, line := range strings.Split(got, "\n") {
		assert.True(t, strings.HasPrefix(line, "  "), line)
		assert.LessOrEqual(t, len(line), 12, line)
	}
	assert.Contains(t, got, "four")
}
