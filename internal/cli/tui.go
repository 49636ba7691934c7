// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - Full-screen chat interface.
package cli

import (
	"context"
	stderrors "errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/chatdesk/internal/ui/chat"
)

// runTUI opens a new conversation and runs the Bubble Tea program until the
// user quits or ctx is cancelled. History is saved on the way out either way.
func runTUI(ctx context.Context, app *App) error {
	cfg := app.Config

	m := chat.New(chat.Deps{
		Store:    app.Store,
		Provider: app.Provider,
		Session:  app.Session,
		Themes:   app.Themes,
	}, chat.Options{
		GreetingDelay: cfg.Responder.GreetingDelay.Duration,
		SidebarWidth:  cfg.UI.SidebarWidth,
		Markdown:      cfg.UI.Markdown,
	})
	m = m.WithGreeting(app.StartConversation())

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := p.Run()

	// The model saves on a normal quit; this covers signals and crashes.
	if err := app.Session.SaveNow(); err != nil {
		log.Error().Err(err).Msg("final save failed")
		if runErr == nil {
			return err
		}
	}

	if runErr != nil && !stderrors.Is(runErr, tea.ErrProgramKilled) {
		return errors.Wrap(runErr, "running chat interface")
	}
	return nil
}
