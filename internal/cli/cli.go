// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	mode       string
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCmd builds the bookchat command tree. Without a subcommand it opens
// the full-screen chat.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bookchat",
		Short: "Ask questions about your ebook from the terminal",
		Long: `bookchat talks to a local eBook question-answering service.

Run it without arguments for the full-screen chat, or use one of the
subcommands for scripting and plain terminals.`,
		Example: `  bookchat
  bookchat --mode detailed
  bookchat ask "Who is the narrator?"
  bookchat repl`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.bookchat/config.toml)")
	flags.StringVarP(&opts.mode, "mode", "m", "", "answer mode: short or detailed (default from config)")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError(err)
	})

	cmd.AddCommand(
		newAskCmd(opts),
		newReplCmd(opts),
		newPingCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		printError(root.ErrOrStderr(), err)
		return ExitCode(err)
	}
	return ExitSuccess
}

// =============================================================================
// VERSION
// =============================================================================

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bookchat %s (commit %s, built %s)\n",
				Version, GitCommit, BuildDate)
		},
	}
}
