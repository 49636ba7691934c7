// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatdesk/internal/config"
	"github.com/jeranaias/chatdesk/internal/history"
	"github.com/jeranaias/chatdesk/internal/storage"
)

// =============================================================================
// HELPERS
// =============================================================================

// testEnv isolates a command run from the user's home directory.
type testEnv struct {
	home    string
	dataDir string
	logFile string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"CHATDESK_BACKEND", "CHATDESK_DATA_DIR", "CHATDESK_THEME", "CHATDESK_LOG_LEVEL", "CHATDESK_LOG_FILE"} {
		t.Setenv(k, "")
	}
	return testEnv{
		home:    home,
		dataDir: filepath.Join(home, "data"),
		logFile: filepath.Join(home, "chatdesk.log"),
	}
}

// run executes chatdesk with args plus the isolating flags.
func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--data-dir", e.dataDir, "--log-file", e.logFile))
	err := cmd.Execute()
	return out.String(), err
}

// seed saves conversations titled by each message, oldest first.
func (e testEnv) seed(t *testing.T, backend string, messages ...string) {
	t.Helper()
	kv, err := storage.Open(storage.Options{Backend: backend, DataDir: e.dataDir})
	require.NoError(t, err)
	defer kv.Close()

	store := history.New()
	for _, msg := range messages {
		store.CreateConversation()
		_, err := store.AppendUserMessage(msg)
		require.NoError(t, err)
		_, err = store.RecordResponse("reply to " + msg)
		require.NoError(t, err)
	}
	require.NoError(t, history.Save(store, kv))
}

// =============================================================================
// VERSION / TUI
// =============================================================================

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "chatdesk "+Version)
}

func TestRootRequiresTerminal(t *testing.T) {
	if IsTTY() && IsStdoutTTY() {
		t.Skip("test needs a non-interactive stdin or stdout")
	}
	env := newTestEnv(t)
	_, err := env.run(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chatdesk repl")
}

func TestInvalidBackendFlag(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "history", "list", "--backend", "floppy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend")
}

// =============================================================================
// HISTORY
// =============================================================================

func TestHistoryListEmpty(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No chats yet")
}

func TestHistoryListNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, storage.BackendFile, "first question", "second question")

	out, err := env.run(t, "history", "list")
	require.NoError(t, err)

	first := strings.Index(out, "first question")
	second := strings.Index(out, "second question")
	require.True(t, first > 0 && second > 0, out)
	assert.Less(t, second, first, "newest conversation is listed first")
	assert.Contains(t, out, "2 conversations")
	assert.Contains(t, out, "file backend")
}

func TestHistoryListSQLite(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, storage.BackendSQLite, "stored in sqlite")

	out, err := env.run(t, "history", "list", "--backend", "sqlite")
	require.NoError(t, err)
	assert.Contains(t, out, "stored in sqlite")
	assert.Contains(t, out, "sqlite backend")
}

func TestHistorySearch(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, storage.BackendFile, "pasta recipes", "train times")

	out, err := env.run(t, "history", "search", "PASTA")
	require.NoError(t, err)
	assert.Contains(t, out, "pasta recipes")
	assert.NotContains(t, out, "train times")

	out, err = env.run(t, "history", "search", "nothing-matches")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching conversations")
}

func TestHistoryExportMarkdown(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, storage.BackendFile, "older chat", "newest chat")

	out, err := env.run(t, "history", "export", "1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# newest chat\n"), out)
	assert.Contains(t, out, "**You**")
	assert.Contains(t, out, "reply to newest chat")
}

func TestHistoryExportJSONToFile(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, storage.BackendFile, "export me")
	path := filepath.Join(env.home, "out", "chat.json")

	out, err := env.run(t, "history", "export", "1", "--format", "json", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "export me", record["title"])
	assert.Len(t, record["messages"], 2)
}

func TestHistoryExportErrors(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, storage.BackendFile, "only one")

	_, err := env.run(t, "history", "export", "5")
	assert.ErrorIs(t, err, history.ErrNotFound)

	_, err = env.run(t, "history", "export", "chat_missing")
	assert.ErrorIs(t, err, history.ErrNotFound)

	_, err = env.run(t, "history", "export", "1", "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestHistoryClear(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, storage.BackendFile, "a", "b")

	_, err := env.run(t, "history", "clear")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	out, err := env.run(t, "history", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 2 conversations")

	out, err = env.run(t, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No chats yet")
}

func TestCorruptHistoryStartsEmpty(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.dataDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(env.dataDir, history.HistoryKey+".json"), []byte("{not json"), 0600))

	out, err := env.run(t, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No chats yet")
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfigInitAndShow(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.home, "conf", "chatdesk.toml")

	out, err := env.run(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	_, err = env.run(t, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = env.run(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)

	out, err = env.run(t, "config", "show", "--config", path, "--backend", "pebble")
	require.NoError(t, err)
	assert.Contains(t, out, `backend = "pebble"`)
	assert.Contains(t, out, `autosave_interval = "30s"`)
}

func TestConfigPath(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.home, ".chatdesk", "config.toml"), strings.TrimSpace(out))
}

func TestConfigMissingFile(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "history", "list", "--config", filepath.Join(env.home, "absent.toml"))
	assert.Error(t, err)
}

// =============================================================================
// APP
// =============================================================================

func TestOpenAppEphemeral(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.DataDir = filepath.Join(t.TempDir(), "unused")

	app, err := OpenApp(cfg, AppOptions{Ephemeral: true, Profile: termenv.Ascii})
	require.NoError(t, err)
	defer app.Close()

	app.StartConversation()
	require.NoError(t, app.Session.SaveNow())
	_, err = os.Stat(cfg.Storage.DataDir)
	assert.True(t, os.IsNotExist(err), "ephemeral mode writes nothing to disk")
}

func TestResolveConversation(t *testing.T) {
	store := history.New()
	older := store.CreateConversation()
	newer := store.CreateConversation()

	id, err := resolveConversation(store, "1")
	require.NoError(t, err)
	assert.Equal(t, newer, id)

	id, err = resolveConversation(store, older)
	require.NoError(t, err)
	assert.Equal(t, older, id)

	_, err = resolveConversation(store, "0")
	assert.ErrorIs(t, err, history.ErrNotFound)
	_, err = resolveConversation(store, "3")
	assert.ErrorIs(t, err, history.ErrNotFound)
}
