// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatdesk/internal/history"
	"github.com/jeranaias/chatdesk/internal/responder"
	"github.com/jeranaias/chatdesk/internal/session"
	"github.com/jeranaias/chatdesk/internal/ui/styles"
)

// =============================================================================
// CONSTRUCTION
// =============================================================================

// Deps are the collaborators the chat view drives. Store, Provider, Session
// and Themes are required.
type Deps struct {
	Store    *history.Store
	Provider responder.Provider
	Session  *session.Manager
	Themes   *styles.ThemeManager

	// Clipboard receives copied replies. Defaults to the system clipboard.
	Clipboard func(string) error
}

// Options tune presentation.
type Options struct {
	GreetingDelay time.Duration
	SidebarWidth  int
	Markdown      bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		GreetingDelay: responder.GreetingDelay,
		SidebarWidth:  32,
		Markdown:      true,
	}
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	deps Deps
	opts Options

	// ctx is cancelled on quit so in-flight replies stop waiting.
	ctx    context.Context
	cancel context.CancelFunc

	// Dimensions
	width  int
	height int

	// UI Components
	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model
	keyMap   KeyMap
	markdown *markdownRenderer

	// Status line
	status      string
	statusLevel StatusLevel

	// greetID is the conversation greeted from Init.
	greetID string

	quitting bool
}

// New creates a chat model over deps.
func New(deps Deps, opts Options) Model {
	if deps.Clipboard == nil {
		deps.Clipboard = copyToClipboard
	}
	if opts.SidebarWidth <= 0 {
		opts.SidebarWidth = DefaultOptions().SidebarWidth
	}

	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.CharLimit = 4096
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ta.Focus()

	vp := viewport.New(80, 20)

	sp := spinner.New(spinner.WithSpinner(styles.TypingSpinner.Bubble()))

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		deps:     deps,
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
		width:    80,
		height:   24,
		viewport: vp,
		input:    ta,
		spinner:  sp,
		keyMap:   DefaultKeyMap(),
		markdown: newMarkdownRenderer(),
	}
	m.layout()
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// WithGreeting returns a copy of m that greets conversation id on start.
func (m Model) WithGreeting(id string) Model {
	m.greetID = id
	m.refresh()
	return m
}

// Init starts the cursor blink and the auto-save ticker.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, session.TickCmd()}
	if m.greetID != "" {
		cmds = append(cmds, greetingCmd(m.greetID, m.opts.GreetingDelay))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ResponseMsg:
		return m.handleResponse(msg)

	case GreetingMsg:
		return m.handleGreeting(msg)

	case StatusMsg:
		m.setStatus(msg.Text, msg.Level)
		return m, nil

	case spinner.TickMsg:
		if !m.pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case session.TickMsg:
		return m, m.deps.Session.HandleTick()

	case session.AutoSaveMsg:
		return m, m.deps.Session.SaveCmd()

	case session.SavedMsg:
		if msg.Err != nil {
			m.setStatus("Auto-save failed: "+msg.Err.Error(), StatusError)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat interface.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Quitting reports whether the model has shut down.
func (m Model) Quitting() bool { return m.quitting }

// Status returns the transient status line text.
func (m Model) Status() string { return m.status }

// InputValue returns the text in the input box.
func (m Model) InputValue() string { return m.input.Value() }

// SetInputValue replaces the text in the input box.
func (m *Model) SetInputValue(s string) { m.input.SetValue(s) }

func (m Model) theme() *styles.Theme { return m.deps.Themes.Theme() }

// pending reports whether a reply is outstanding anywhere in the store.
func (m Model) pending() bool {
	_, ok := m.deps.Store.Pending()
	return ok
}

func (m *Model) setStatus(text string, level StatusLevel) {
	m.status = text
	m.statusLevel = level
}
