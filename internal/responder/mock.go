// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package responder produces assistant replies for chatdesk conversations.
package responder

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// =============================================================================
// CANNED REPLIES
// =============================================================================

var openings = []string{
	"That's an interesting question! Let me think about that for a moment.",
	"I understand what you're asking. Here's what I think about that topic.",
	"Great question! Based on what you've told me, I'd suggest considering a few different approaches.",
	"I see what you mean. That's definitely something worth exploring further.",
	"Thanks for sharing that with me. I have some thoughts that might be helpful.",
	"That's a really good point. Let me break that down for you.",
	"I appreciate you bringing that up. Here's my perspective on the matter.",
	"Interesting! I've been thinking about similar topics lately.",
	"That's exactly the kind of question I love to help with.",
	"You've touched on something really important there.",
}

var followUps = []string{
	"What else would you like to know about this?",
	"Is there anything specific you'd like me to elaborate on?",
	"Would you like me to go deeper into any particular aspect?",
	"What are your thoughts on this approach?",
	"Does this help answer your question?",
	"Is there another angle you'd like to explore?",
	"What other questions do you have about this topic?",
	"Would you like some examples to illustrate this further?",
	"How does this relate to what you're working on?",
	"What would you like to discuss next?",
}

// Openings returns a copy of the opening lines a Mock chooses from.
func Openings() []string { return append([]string(nil), openings...) }

// FollowUps returns a copy of the follow-up lines a Mock chooses from.
func FollowUps() []string { return append([]string(nil), followUps...) }

// =============================================================================
// MOCK PROVIDER
// =============================================================================

// Default simulated latency bounds.
const (
	DefaultMinDelay = 1500 * time.Millisecond
	DefaultMaxDelay = 2500 * time.Millisecond
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Mock is a simulated assistant: after a random delay in [MinDelay, MaxDelay]
// it replies with a random opening line, a blank line and a random follow-up.
// The user's text is not inspected.
type Mock struct {
	MinDelay time.Duration
	MaxDelay time.Duration

	mu    sync.Mutex
	rng   *rand.Rand
	sleep SleepFunc
}

// MockOption configures a Mock.
type MockOption func(*Mock)

// WithDelay sets the latency bounds. An upper bound below lo is raised to lo.
func WithDelay(lo, hi time.Duration) MockOption {
	return func(m *Mock) {
		m.MinDelay = lo
		m.MaxDelay = hi
	}
}

// WithRand sets the random source.
func WithRand(rng *rand.Rand) MockOption {
	return func(m *Mock) {
		m.rng = rng
	}
}

// WithSleep replaces the wait between request and reply.
func WithSleep(sleep SleepFunc) MockOption {
	return func(m *Mock) {
		m.sleep = sleep
	}
}

// NewMock creates a mock provider with the default 1.5s-2.5s latency.
func NewMock(opts ...MockOption) *Mock {
	m := &Mock{
		MinDelay: DefaultMinDelay,
		MaxDelay: DefaultMaxDelay,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:    Sleep,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.MinDelay < 0 {
		m.MinDelay = 0
	}
	if m.MaxDelay < m.MinDelay {
		m.MaxDelay = m.MinDelay
	}
	return m
}

// Respond implements Provider.
func (m *Mock) Respond(ctx context.Context, userText string) (string, error) {
	delay, reply := m.draw()

	log.Debug().Dur("delay", delay).Int("input_len", len(userText)).Msg("mock response scheduled")
	if err := m.sleep(ctx, delay); err != nil {
		return "", errors.Wrap(err, "waiting for response")
	}
	return reply, nil
}

// draw picks the delay and reply in one critical section; *rand.Rand is not
// safe for concurrent use.
func (m *Mock) draw() (time.Duration, string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delay := m.MinDelay
	if span := m.MaxDelay - m.MinDelay; span > 0 {
		delay += time.Duration(m.rng.Int63n(int64(span) + 1))
	}
	opening := openings[m.rng.Intn(len(openings))]
	followUp := followUps[m.rng.Intn(len(followUps))]
	return delay, opening + "\n\n" + followUp
}

// Sleep waits for d, returning ctx.Err() if ctx finishes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
