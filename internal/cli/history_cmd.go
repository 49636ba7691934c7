// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - Inspect, export and clear saved conversations.
package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/chatdesk/internal/history"
	"github.com/jeranaias/chatdesk/internal/storage"
	"github.com/jeranaias/chatdesk/internal/util"
)

// Export formats accepted by history export.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

func newHistoryCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"h"},
		Short:   "Inspect, export and clear saved conversations",
	}
	cmd.AddCommand(
		newHistoryListCmd(o),
		newHistorySearchCmd(o),
		newHistoryExportCmd(o),
		newHistoryClearCmd(o),
	)
	return cmd
}

// =============================================================================
// LIST / SEARCH
// =============================================================================

func newHistoryListCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved conversations, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := o.openApp(termenv.Ascii)
			if err != nil {
				return err
			}
			defer app.Close()

			out := cmd.OutOrStdout()
			list := app.Store.ListConversations()
			if len(list) == 0 {
				fmt.Fprintln(out, "No chats yet")
				return nil
			}

			printSummaries(out, list)

			size := "0 B"
			if data, err := app.KV.Get(history.HistoryKey); err == nil {
				size = humanize.Bytes(uint64(len(data)))
			}
			fmt.Fprintf(out, "\n%d conversations, %s on disk (%s backend)\n",
				len(list), size, app.Config.Storage.Backend)
			return nil
		},
	}
}

func newHistorySearchCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Find conversations whose title or messages contain text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := o.openApp(termenv.Ascii)
			if err != nil {
				return err
			}
			defer app.Close()

			out := cmd.OutOrStdout()
			results := app.Store.Search(strings.Join(args, " "))
			if len(results) == 0 {
				fmt.Fprintln(out, "No matching conversations")
				return nil
			}
			printSummaries(out, results)
			return nil
		},
	}
}

// printSummaries writes one row per conversation: position, title, message
// count, age and preview.
func printSummaries(w io.Writer, list []history.Summary) {
	fmt.Fprintf(w, "%-3s  %-31s  %5s  %-10s  %s\n", "#", "TITLE", "MSGS", "UPDATED", "PREVIEW")
	for i, s := range list {
		fmt.Fprintf(w, "%-3s  %s  %5d  %-10s  %s\n",
			strconv.Itoa(i+1),
			util.PadWidth(util.TruncateWidth(s.Title, 31), 31),
			s.MessageCount,
			s.TimeAgo,
			util.TruncateWidth(util.SingleLine(s.Preview), 40),
		)
	}
}

// =============================================================================
// EXPORT
// =============================================================================

func newHistoryExportCmd(o *rootOptions) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export <number|id>",
		Short: "Export one conversation as Markdown or JSON",
		Long: `Export one conversation as Markdown or JSON.

The conversation is chosen by its position in 'history list' or by id.
Output goes to stdout unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := o.openApp(termenv.Ascii)
			if err != nil {
				return err
			}
			defer app.Close()

			id, err := resolveConversation(app.Store, args[0])
			if err != nil {
				return errors.Wrapf(err, "no conversation %s", args[0])
			}
			conv, err := app.Store.Get(id)
			if err != nil {
				return err
			}

			var data []byte
			switch strings.ToLower(format) {
			case FormatMarkdown, "md":
				data = []byte(history.ExportMarkdown(conv))
			case FormatJSON:
				data, err = history.ExportJSON(conv)
				if err != nil {
					return err
				}
				data = append(data, '\n')
			default:
				return errors.Errorf("unknown format %q (valid: markdown, json)", format)
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := util.AtomicWriteFile(output, data, 0600); err != nil {
				return errors.Wrap(err, "writing export")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %q to %s (%s)\n",
				conv.Title(), output, humanize.Bytes(uint64(len(data))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatMarkdown, "export format: markdown or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

// =============================================================================
// CLEAR
// =============================================================================

func newHistoryClearCmd(o *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete history without --yes")
			}
			app, err := o.openApp(termenv.Ascii)
			if err != nil {
				return err
			}
			defer app.Close()

			n := app.Store.Len()
			if err := app.KV.Delete(history.HistoryKey); err != nil && !stderrors.Is(err, storage.ErrKeyNotFound) {
				return errors.Wrap(err, "clearing history")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d conversations\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")
	return cmd
}
