// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session keeps chat history saved: periodic auto-save, teardown save and the logged-in flag.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// testClock is a manually advanced clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestManager(save SaveFunc) (*Manager, *testClock) {
	clock := &testClock{now: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
	return NewManager(DefaultConfig(), save, WithClock(clock.Now)), clock
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.AutoSaveEnabled {
		t.Error("Default AutoSaveEnabled should be true")
	}
	if cfg.AutoSaveInterval != 30*time.Second {
		t.Errorf("Default AutoSaveInterval = %v, want 30s", cfg.AutoSaveInterval)
	}
}

func TestNewManager(t *testing.T) {
	m, _ := newTestManager(nil)

	if !strings.HasPrefix(m.SessionID(), "sess_") {
		t.Errorf("SessionID should start with 'sess_', got %q", m.SessionID())
	}
	if m.SessionID() != "sess_20250314_090000" {
		t.Errorf("SessionID = %q", m.SessionID())
	}
	if m.StartTime().IsZero() {
		t.Error("StartTime should not be zero")
	}
	if m.IsDirty() {
		t.Error("new manager should be clean")
	}
	if !m.IsLoggedIn() {
		t.Error("new manager should be logged in")
	}
}

func TestNewManager_ZeroIntervalUsesDefault(t *testing.T) {
	m := NewManager(Config{AutoSaveEnabled: true}, nil)
	if m.Interval() != 30*time.Second {
		t.Errorf("Interval = %v, want 30s", m.Interval())
	}
}

// =============================================================================
// AUTO-SAVE TESTS
// =============================================================================

func TestManager_DirtyTracking(t *testing.T) {
	m, _ := newTestManager(nil)

	m.MarkDirty()
	if !m.IsDirty() {
		t.Error("should be dirty after MarkDirty")
	}
	if err := m.SaveNow(); err != nil {
		t.Fatal(err)
	}
	if m.IsDirty() {
		t.Error("should be clean after a save")
	}
}

func TestManager_ShouldAutoSave(t *testing.T) {
	m, clock := newTestManager(nil)

	clock.Advance(time.Minute)
	if m.ShouldAutoSave() {
		t.Error("clean state never needs saving")
	}

	m.MarkDirty()
	if !m.ShouldAutoSave() {
		t.Error("dirty state past the interval should save")
	}

	if err := m.SaveNow(); err != nil {
		t.Fatal(err)
	}
	m.MarkDirty()
	clock.Advance(29 * time.Second)
	if m.ShouldAutoSave() {
		t.Error("should wait for the full interval")
	}
	clock.Advance(time.Second)
	if !m.ShouldAutoSave() {
		t.Error("should save once the interval elapsed")
	}

	disabled := NewManager(Config{AutoSaveInterval: 30 * time.Second}, nil, WithClock(clock.Now))
	disabled.MarkDirty()
	clock.Advance(time.Minute)
	if disabled.ShouldAutoSave() {
		t.Error("disabled auto-save never triggers")
	}
}

func TestManager_SaveIfDirty(t *testing.T) {
	var calls int32
	m, clock := newTestManager(func() error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	if tried, _ := m.saveIfDirty(); tried {
		t.Error("nothing to save yet")
	}

	// Saves as soon as the state is dirty, however recent the last save.
	m.MarkDirty()
	tried, err := m.saveIfDirty()
	if !tried || err != nil {
		t.Fatalf("saveIfDirty() = %v, %v", tried, err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("save called %d times, want 1", calls)
	}
	if m.IsDirty() {
		t.Error("should be clean after a successful save")
	}
	if st := m.GetStatus(); st.Saves != 1 || !st.LastSave.Equal(clock.Now()) {
		t.Errorf("status after save = %+v", st)
	}
}

func TestManager_SaveFailureStaysDirty(t *testing.T) {
	boom := errors.New("disk full")
	m, _ := newTestManager(func() error { return boom })

	m.MarkDirty()
	err := m.SaveNow()
	if !errors.Is(err, boom) {
		t.Fatalf("SaveNow() error = %v, want wrapping %v", err, boom)
	}
	if !m.IsDirty() {
		t.Error("failed save must leave the state dirty")
	}
	if st := m.GetStatus(); st.LastSaveErr == nil || st.Saves != 0 {
		t.Errorf("status after failure = %+v", st)
	}
}

func TestManager_SaveNowWhenClean(t *testing.T) {
	var calls int32
	m, _ := newTestManager(func() error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	if err := m.SaveNow(); err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Error("SaveNow always saves")
	}
}

func TestManager_RunSavesOnShutdown(t *testing.T) {
	var calls int32
	m := NewManager(Config{AutoSaveEnabled: true, AutoSaveInterval: 10 * time.Millisecond}, func() error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	m.MarkDirty()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for atomic.LoadInt32(&calls) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if atomic.LoadInt32(&calls) == 0 {
		t.Fatal("Run never auto-saved")
	}

	before := atomic.LoadInt32(&calls)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if atomic.LoadInt32(&calls) != before+1 {
		t.Error("Run should save once more on shutdown")
	}
}

func TestManager_RunKeepsInterval(t *testing.T) {
	const interval = 50 * time.Millisecond

	var calls int32
	var m *Manager
	m = NewManager(Config{AutoSaveEnabled: true, AutoSaveInterval: interval}, func() error {
		atomic.AddInt32(&calls, 1)
		// A change lands during every save, so every tick finds work.
		m.MarkDirty()
		return nil
	})
	m.MarkDirty()

	ctx, cancel := context.WithTimeout(context.Background(), 21*interval/2)
	defer cancel()
	if err := m.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Ten ticks fit in the window; the final save on shutdown is extra.
	periodic := atomic.LoadInt32(&calls) - 1
	if periodic < 8 {
		t.Errorf("periodic saves in %v at %v interval = %d, want about 10", 21*interval/2, interval, periodic)
	}
}

func TestManager_ConcurrentSaves(t *testing.T) {
	var inFlight, maxInFlight int32
	m, _ := newTestManager(func() error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&maxInFlight)
			if n <= old || atomic.CompareAndSwapInt32(&maxInFlight, old, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.MarkDirty()
			_ = m.SaveNow()
		}()
	}
	wg.Wait()

	if maxInFlight != 1 {
		t.Errorf("saves overlapped: max in flight = %d", maxInFlight)
	}
}

// =============================================================================
// LOGIN STATE TESTS
// =============================================================================

func TestManager_Logout(t *testing.T) {
	var calls int32
	m, _ := newTestManager(func() error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	if err := m.Logout(); err != nil {
		t.Fatal(err)
	}
	if m.IsLoggedIn() {
		t.Error("should be logged out")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Error("logout should save")
	}
	if m.GetStatus().LoggedIn {
		t.Error("status should reflect logout")
	}
}

// =============================================================================
// BUBBLE TEA TESTS
// =============================================================================

func TestManager_HandleTick(t *testing.T) {
	m, clock := newTestManager(nil)

	if cmd := m.HandleTick(); cmd == nil {
		t.Fatal("HandleTick should always keep ticking")
	}

	m.MarkDirty()
	clock.Advance(time.Minute)
	if !m.ShouldAutoSave() {
		t.Fatal("precondition: auto-save due")
	}
	if cmd := m.HandleTick(); cmd == nil {
		t.Fatal("HandleTick returned nil")
	}
}

func TestManager_SaveCmd(t *testing.T) {
	m, clock := newTestManager(nil)
	m.MarkDirty()

	msg := m.SaveCmd()()
	saved, ok := msg.(SavedMsg)
	if !ok {
		t.Fatalf("SaveCmd produced %T, want SavedMsg", msg)
	}
	if saved.Err != nil {
		t.Errorf("unexpected error %v", saved.Err)
	}
	if !saved.At.Equal(clock.Now()) {
		t.Errorf("At = %v, want %v", saved.At, clock.Now())
	}
	if m.IsDirty() {
		t.Error("SaveCmd should clean the state")
	}
}

// =============================================================================
// FORMAT TESTS
// =============================================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{time.Minute, "1m"},
		{90 * time.Second, "1m 30s"},
		{30 * time.Minute, "30m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
