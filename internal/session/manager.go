// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session keeps chat history saved: periodic auto-save, teardown save and the logged-in flag.
package session

import (
	"context"
	"strconv"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// =============================================================================
// SESSION MANAGER
// =============================================================================

// SaveFunc persists the application state.
type SaveFunc func() error

// Manager decides when history gets written and tracks the cosmetic
// logged-in flag.
type Manager struct {
	mu sync.Mutex

	// Session tracking
	sessionID string
	startTime time.Time
	loggedIn  bool

	// Auto-save configuration
	autoSaveEnabled  bool
	autoSaveInterval time.Duration
	lastSave         time.Time
	lastSaveErr      error
	saves            int
	isDirty          bool

	// saveMu serializes calls to save so a tick and a teardown never overlap.
	saveMu sync.Mutex
	save   SaveFunc

	now func() time.Time
}

// Config holds configuration for the session manager.
type Config struct {
	// AutoSaveEnabled enables periodic saving
	AutoSaveEnabled bool

	// AutoSaveInterval is how often to auto-save (default: 30 seconds)
	AutoSaveInterval time.Duration
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		AutoSaveEnabled:  true,
		AutoSaveInterval: 30 * time.Second,
	}
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a session manager that persists through save.
// A nil save makes every save a no-op.
func NewManager(cfg Config, save SaveFunc, opts ...Option) *Manager {
	if cfg.AutoSaveInterval <= 0 {
		cfg.AutoSaveInterval = DefaultConfig().AutoSaveInterval
	}
	if save == nil {
		save = func() error { return nil }
	}
	m := &Manager{
		autoSaveEnabled:  cfg.AutoSaveEnabled,
		autoSaveInterval: cfg.AutoSaveInterval,
		loggedIn:         true,
		save:             save,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.startTime = m.now()
	m.lastSave = m.startTime
	m.sessionID = generateSessionID(m.startTime)
	return m
}

// =============================================================================
// SESSION STATE
// =============================================================================

// SessionID returns the current session ID.
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// StartTime returns when the session started.
func (m *Manager) StartTime() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startTime
}

// Interval returns the auto-save interval.
func (m *Manager) Interval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.autoSaveInterval
}

// =============================================================================
// DIRTY TRACKING
// =============================================================================

// MarkDirty indicates there are unsaved changes.
// Call it after every store mutation.
func (m *Manager) MarkDirty() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isDirty = true
}

// IsDirty returns whether there are unsaved changes.
func (m *Manager) IsDirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isDirty
}

// =============================================================================
// SAVING
// =============================================================================

// ShouldAutoSave returns true if an auto-save is due.
func (m *Manager) ShouldAutoSave() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.autoSaveEnabled || !m.isDirty {
		return false
	}
	return m.now().Sub(m.lastSave) >= m.autoSaveInterval
}

// SaveNow saves immediately, dirty or not. Used at teardown and logout.
func (m *Manager) SaveNow() error {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	// Changes made while save runs stay dirty.
	m.mu.Lock()
	m.isDirty = false
	m.mu.Unlock()

	err := m.save()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSaveErr = err
	if err != nil {
		m.isDirty = true
		log.Warn().Err(err).Str("session_id", m.sessionID).Msg("save failed")
		return errors.Wrap(err, "saving session")
	}
	m.lastSave = m.now()
	m.saves++
	log.Debug().Str("session_id", m.sessionID).Int("saves", m.saves).Msg("session saved")
	return nil
}

// saveIfDirty saves when auto-save is on and something changed. The ticker
// in Run already spaces calls by the interval, so the last-save time is not
// consulted.
func (m *Manager) saveIfDirty() (bool, error) {
	m.mu.Lock()
	due := m.autoSaveEnabled && m.isDirty
	m.mu.Unlock()
	if !due {
		return false, nil
	}
	return true, m.SaveNow()
}

// Run auto-saves on a ticker until ctx is done, then saves one final time.
// Hosts without a Bubble Tea loop use it in a goroutine.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return m.SaveNow()
		case <-ticker.C:
			// Failures are retried on the next tick.
			_, _ = m.saveIfDirty()
		}
	}
}

// =============================================================================
// LOGIN STATE
// =============================================================================

// Logout clears the logged-in flag and saves. The flag is cosmetic; nothing
// is locked.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.loggedIn = false
	m.mu.Unlock()
	log.Info().Str("session_id", m.SessionID()).Msg("logged out")
	return m.SaveNow()
}

// IsLoggedIn reports the logged-in flag.
func (m *Manager) IsLoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loggedIn
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent periodically to check whether an auto-save is due.
type TickMsg struct {
	Time time.Time
}

// AutoSaveMsg indicates auto-save should occur.
type AutoSaveMsg struct{}

// SavedMsg reports the outcome of a save started by SaveCmd.
type SavedMsg struct {
	At  time.Time
	Err error
}

// TickCmd returns a command that ticks once a second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// HandleTick processes a tick and returns appropriate messages.
func (m *Manager) HandleTick() tea.Cmd {
	var cmds []tea.Cmd

	if m.ShouldAutoSave() {
		cmds = append(cmds, func() tea.Msg {
			return AutoSaveMsg{}
		})
	}

	// Continue ticking
	cmds = append(cmds, TickCmd())

	return tea.Batch(cmds...)
}

// SaveCmd saves off the UI goroutine and reports back with a SavedMsg.
func (m *Manager) SaveCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.SaveNow()
		return SavedMsg{At: m.now(), Err: err}
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateSessionID creates a session ID from the start time.
func generateSessionID(t time.Time) string {
	return "sess_" + t.Format("20060102_150405")
}

// =============================================================================
// SESSION STATUS
// =============================================================================

// Status represents the current session status.
type Status struct {
	SessionID   string
	StartTime   time.Time
	Duration    time.Duration
	LastSave    time.Time
	LastSaveErr error
	Saves       int
	IsDirty     bool
	LoggedIn    bool
	AutoSave    bool
}

// GetStatus returns the current session status.
func (m *Manager) GetStatus() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Status{
		SessionID:   m.sessionID,
		StartTime:   m.startTime,
		Duration:    m.now().Sub(m.startTime),
		LastSave:    m.lastSave,
		LastSaveErr: m.lastSaveErr,
		Saves:       m.saves,
		IsDirty:     m.isDirty,
		LoggedIn:    m.loggedIn,
		AutoSave:    m.autoSaveEnabled,
	}
}

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		secs := int(d.Seconds())
		return strconv.Itoa(secs) + "s"
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return strconv.Itoa(mins) + "m"
	}
	return strconv.Itoa(mins) + "m " + strconv.Itoa(secs) + "s"
}
