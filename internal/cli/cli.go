// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Root command, global flags and shared setup for chatdesk.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/chatdesk/internal/config"
	"github.com/jeranaias/chatdesk/internal/logging"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// GLOBAL OPTIONS
// =============================================================================

// rootOptions holds the persistent flags and the state built from them.
type rootOptions struct {
	configPath string
	logLevel   string
	logFile    string
	backend    string
	dataDir    string
	ephemeral  bool

	cfg       *config.Config
	logCloser io.Closer
}

// loadConfig reads the config file and applies flag overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFromPath(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if o.backend != "" {
		cfg.Storage.Backend = o.backend
	}
	if o.dataDir != "" {
		cfg.Storage.DataDir = o.dataDir
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFile != "" {
		cfg.Logging.File = o.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}
	return cfg, nil
}

// setup loads configuration and starts logging. Line-mode commands may log
// to stderr as well; the TUI keeps logs in the file only.
func (o *rootOptions) setup(stderr bool) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	closer, err := logging.Init(logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.LogPath(),
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Stderr:     stderr,
	})
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.logCloser = closer
	return nil
}

func (o *rootOptions) teardown() {
	if o.logCloser != nil {
		_ = o.logCloser.Close()
		o.logCloser = nil
	}
}

// openApp opens the application state for the configured backend.
func (o *rootOptions) openApp(profile termenv.Profile) (*App, error) {
	return OpenApp(o.cfg, AppOptions{Ephemeral: o.ephemeral, Profile: profile})
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCmd builds the chatdesk command tree.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}

	root := &cobra.Command{
		Use:   "chatdesk",
		Short: "A terminal chat client with local conversation history",
		Long: `chatdesk keeps a list of conversations with a simulated assistant.

Running chatdesk with no command opens the full-screen interface.
Conversations are saved automatically every 30 seconds and on exit.`,
		Example: `  chatdesk                      Open the chat interface
  chatdesk repl                 Chat in line mode
  chatdesk history list         List saved conversations
  chatdesk history export 1     Export the newest conversation as Markdown
  chatdesk --backend sqlite     Keep history in SQLite`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The TUI owns the terminal, so only line-mode commands echo logs.
			return o.setup(cmd != cmd.Root() && o.logLevel == "debug")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			o.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := RequiresTTY("run the chat interface"); err != nil {
				return errors.Wrap(err, "use 'chatdesk repl' for line mode")
			}
			app, err := o.openApp(GetColorProfile())
			if err != nil {
				return err
			}
			defer app.Close()
			return runTUI(cmd.Context(), app)
		},
	}
	root.SetVersionTemplate(versionString() + "\n")

	flags := root.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "config file (default ~/.chatdesk/config.toml)")
	flags.StringVar(&o.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&o.logFile, "log-file", "", "log file (default ~/.chatdesk/chatdesk.log)")
	flags.StringVar(&o.backend, "backend", "", "storage backend: file, sqlite, pebble, memory")
	flags.StringVar(&o.dataDir, "data-dir", "", "directory for saved history")
	flags.BoolVar(&o.ephemeral, "ephemeral", false, "keep history in memory only")

	root.AddCommand(
		newReplCmd(o),
		newHistoryCmd(o),
		newConfigCmd(o),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command with os.Args. Cancelling ctx shuts the
// running front end down with a final save.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// =============================================================================
// VERSION
// =============================================================================

func versionString() string {
	return "chatdesk " + Version + " (commit " + GitCommit + ", built " + BuildDate + ")"
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Version needs no config or logging.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}
}

// stdoutIsTerminal reports whether w is the process stdout attached to a TTY.
func stdoutIsTerminal(w io.Writer) bool {
	return w == io.Writer(os.Stdout) && IsStdoutTTY()
}
