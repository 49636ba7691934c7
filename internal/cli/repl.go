// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Line-mode chat with input history and slash commands.
//
// USABILITY: Supports arrow keys for history navigation and line editing.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jeranaias/chatdesk/internal/config"
	"github.com/jeranaias/chatdesk/internal/history"
	"github.com/jeranaias/chatdesk/internal/model"
	"github.com/jeranaias/chatdesk/internal/responder"
	"github.com/jeranaias/chatdesk/internal/ui/styles"
	"github.com/jeranaias/chatdesk/internal/util"
)

// =============================================================================
// LINE INPUT
// =============================================================================

// LineReader reads one line of input at a time. *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// lineEditor is a liner session whose input history survives restarts.
type lineEditor struct {
	*liner.State
	historyFile string
}

// newLineEditor creates a liner session and loads input history.
func newLineEditor() *lineEditor {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	e := &lineEditor{State: line, historyFile: filepath.Join(dir, "repl_history")}

	if f, err := os.Open(e.historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	return e
}

// Close saves input history with owner-only permissions and restores the terminal.
func (e *lineEditor) Close() error {
	if err := os.MkdirAll(filepath.Dir(e.historyFile), 0700); err == nil {
		if f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			_, _ = e.State.WriteHistory(f)
			f.Close()
		}
	}
	return e.State.Close()
}

// =============================================================================
// REPL
// =============================================================================

// REPL is the line-mode front end. It makes the same store calls as the
// full-screen interface but waits for each reply before prompting again.
type REPL struct {
	app   *App
	in    LineReader
	out   io.Writer
	width int
}

// NewREPL creates a REPL reading from in and writing to out.
func NewREPL(app *App, in LineReader, out io.Writer) *REPL {
	return &REPL{app: app, in: in, out: out, width: DefaultTerminalWidth}
}

// Run opens a new conversation and serves input until /quit, Ctrl+C, EOF or
// ctx ends. Auto-save runs in the background; a final save happens on return.
func (r *REPL) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	saved := make(chan error, 1)
	go func() { saved <- r.app.Session.Run(ctx) }()

	err := r.loop(ctx)

	cancel()
	if saveErr := <-saved; saveErr != nil && err == nil {
		err = saveErr
	}
	return err
}

func (r *REPL) loop(ctx context.Context) error {
	r.printWelcome()
	r.newConversation()

	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := r.in.Prompt("you> ")
		if err != nil {
			if stderrors.Is(err, liner.ErrPromptAborted) || stderrors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				return nil
			}
			return errors.Wrap(err, "reading input")
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.in.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if quit := r.command(input); quit {
				return nil
			}
			continue
		}

		r.send(ctx, input)
	}
}

// send appends input, waits for the reply and records it.
func (r *REPL) send(ctx context.Context, input string) {
	store := r.app.Store
	target, err := store.AppendUserMessage(input)
	if err != nil {
		r.errorf("%v", err)
		return
	}
	r.app.Session.MarkDirty()

	reply, err := r.app.Provider.Respond(ctx, input)
	if err != nil {
		store.AbortPending()
		if !stderrors.Is(err, context.Canceled) {
			log.Warn().Err(err).Str("conversation_id", target).Msg("response failed")
			r.errorf("the assistant could not reply: %v", err)
		}
		return
	}
	if _, err := store.RecordResponse(reply); err != nil {
		r.errorf("%v", err)
		return
	}
	r.app.Session.MarkDirty()
	r.printMessage(model.SenderBot, reply)
}

// newConversation creates a conversation and prints its greeting. Line mode
// has nothing to draw meanwhile, so the greeting is recorded without delay.
func (r *REPL) newConversation() {
	id := r.app.StartConversation()
	if err := r.app.Store.RecordResponseFor(id, responder.Greeting); err != nil {
		r.errorf("%v", err)
		return
	}
	r.printMessage(model.SenderBot, responder.Greeting)
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// command runs a slash command and reports whether the REPL should exit.
func (r *REPL) command(input string) bool {
	fields := strings.Fields(input)
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "/quit", "/exit", "/q":
		return true

	case "/help", "/?":
		r.printHelp()

	case "/new":
		r.newConversation()

	case "/list", "/ls":
		r.printList(r.app.Store.ListConversations())

	case "/search":
		if len(args) == 0 {
			r.errorf("usage: /search <text>")
			break
		}
		r.printList(r.app.Store.Search(strings.Join(args, " ")))

	case "/switch", "/s":
		if len(args) != 1 {
			r.errorf("usage: /switch <number|id>")
			break
		}
		r.switchTo(args[0])

	case "/show":
		r.printTranscript()

	case "/theme":
		name, err := r.app.Themes.Toggle()
		if err != nil {
			r.errorf("theme %s applied but not saved: %v", name, err)
			break
		}
		r.infof("theme: %s", name)

	case "/logout":
		if err := r.app.Session.Logout(); err != nil {
			r.errorf("logged out, but saving failed: %v", err)
			break
		}
		r.infof("You have been logged out")

	default:
		r.errorf("unknown command %s (try /help)", name)
	}
	return false
}

func (r *REPL) switchTo(ref string) {
	id, err := resolveConversation(r.app.Store, ref)
	if err == nil {
		err = r.app.Store.SwitchTo(id)
	}
	if err != nil {
		if stderrors.Is(err, history.ErrNotFound) {
			r.errorf("no conversation %s", ref)
			return
		}
		r.errorf("%v", err)
		return
	}
	r.printTranscript()
}

// =============================================================================
// OUTPUT
// =============================================================================

func (r *REPL) theme() *styles.Theme { return r.app.Themes.Theme() }

func (r *REPL) printWelcome() {
	t := r.theme()
	fmt.Fprintln(r.out, t.MessageSender.Render("chatdesk")+" "+t.MessageTime.Render(Version))
	fmt.Fprintln(r.out, t.MessageTime.Render("Type a message, or /help for commands."))
	fmt.Fprintln(r.out)
}

func (r *REPL) printHelp() {
	t := r.theme()
	lines := []string{
		"/new              start a new conversation",
		"/list             list conversations",
		"/switch <n|id>    switch to a conversation",
		"/search <text>    find conversations",
		"/show             print the current conversation",
		"/theme            toggle light and dark",
		"/logout           log out and save",
		"/quit             save and exit",
	}
	for _, l := range lines {
		fmt.Fprintln(r.out, t.MessageTime.Render(l))
	}
}

func (r *REPL) printMessage(sender model.Sender, text string) {
	t := r.theme()
	fmt.Fprintln(r.out, t.MessageSender.Render(sender.DisplayName()+":"))
	fmt.Fprintln(r.out, wrap(text, r.width-2, "  "))
	fmt.Fprintln(r.out)
}

func (r *REPL) printList(list []history.Summary) {
	t := r.theme()
	if len(list) == 0 {
		fmt.Fprintln(r.out, t.MessageTime.Render("No chats yet"))
		return
	}
	for i, s := range list {
		marker := "  "
		if s.IsCurrent {
			marker = "* "
		}
		fmt.Fprintf(r.out, "%s%2d  %s  %s\n", marker, i+1,
			t.MessageSender.Render(s.Title), t.MessageTime.Render(s.TimeAgo))
		fmt.Fprintln(r.out, "      "+t.SidebarPreview.Render(util.TruncateWidth(util.SingleLine(s.Preview), r.width-8)))
	}
}

func (r *REPL) printTranscript() {
	conv, ok := r.app.Store.Current()
	if !ok {
		r.errorf("no current conversation")
		return
	}
	fmt.Fprintln(r.out, r.theme().HeaderTitle.Render("== "+conv.Title()+" =="))
	for _, msg := range conv.Messages() {
		r.printMessage(msg.Sender, msg.Text)
	}
}

func (r *REPL) infof(format string, args ...interface{}) {
	fmt.Fprintln(r.out, r.theme().InfoStyle.Render(fmt.Sprintf(format, args...)))
}

func (r *REPL) errorf(format string, args ...interface{}) {
	fmt.Fprintln(r.out, r.theme().RenderError(fmt.Sprintf(format, args...)))
}

// wrap indents text and wraps it to width columns.
func wrap(text string, width int, indent string) string {
	if width < 10 {
		width = 10
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		line := indent
		for _, word := range strings.Fields(para) {
			if line != indent && util.RuneLen(line)+1+util.RuneLen(word) > width {
				out = append(out, line)
				line = indent
			}
			if line != indent {
				line += " "
			}
			line += word
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// =============================================================================
// COMMAND
// =============================================================================

func newReplCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Chat in line mode",
		Long: `Chat in line mode with input history.

Commands: /new, /list, /switch <n|id>, /search <text>, /show, /theme,
/logout, /quit. Ctrl+C or Ctrl+D also quit. History is saved on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			app, err := o.openApp(GetColorProfile())
			if err != nil {
				return err
			}
			defer app.Close()

			editor := newLineEditor()
			defer editor.Close()

			repl := NewREPL(app, editor, out)
			if stdoutIsTerminal(out) {
				repl.width = GetTerminalWidth()
			}
			return repl.Run(cmd.Context())
		},
	}
}
