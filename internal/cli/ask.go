// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/jeranaias/bookchat-tui/internal/backend"
)

// newAskCmd handles "bookchat ask": one exchange, answer on stdout.
func newAskCmd(root *rootOptions) *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "ask QUESTION",
		Short: "Ask a single question and print the answer",
		Long: `Ask a single question and print the answer.

Failures print the same text the chat would show and exit with status 1.`,
		Example: `  bookchat ask "Who is the narrator?"
  bookchat ask --mode detailed --markdown "Summarize chapter three"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, root, strings.Join(args, " "), markdown)
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "render the answer as markdown")
	return cmd
}

func runAsk(cmd *cobra.Command, root *rootOptions, question string, markdown bool) error {
	if strings.TrimSpace(question) == "" {
		return usageError(errors.New("question is empty"))
	}

	e, err := setup(root)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	configureOutput(out)

	answer, err := e.client.Send(cmd.Context(), question, e.mode)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), backend.ReplyText(answer, err))
		return reported(err)
	}

	if markdown {
		answer = renderMarkdown(answer, out)
	}
	fmt.Fprintln(out, strings.TrimRight(answer, "\n"))
	return nil
}

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// renderMarkdown renders text with glamour. Styled output is only used on a
// terminal; otherwise the plain "notty" style keeps pipes readable. Returns
// text unchanged if rendering fails.
func renderMarkdown(text string, w io.Writer) string {
	style := glamour.WithStandardStyle("notty")
	if isTerminal(w) {
		style = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(terminalWidth(w)))
	if err != nil {
		return text
	}
	rendered, err := r.Render(text)
	if err != nil {
		return text
	}
	return rendered
}
