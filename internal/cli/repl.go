// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/bookchat-tui/internal/backend"
	"github.com/jeranaias/bookchat-tui/internal/model"
	"github.com/jeranaias/bookchat-tui/internal/ui/chat"
	"github.com/jeranaias/bookchat-tui/internal/ui/components"
	"github.com/jeranaias/bookchat-tui/internal/util"
)

const replPrompt = "> "

// replHelpLines lists the slash commands as {usage, description}.
var replHelpLines = [][2]string{
	{"/mode short|detailed", "switch answer mode"},
	{"/mode", "show the current mode"},
	{"/help", "show commands"},
	{"/quit", "exit"},
}

const replHelpWidth = 22

// newReplCmd handles "bookchat repl": a line-based chat for plain terminals.
func newReplCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Line-based chat for plain terminals",
		Long: `Line-based chat for plain terminals and pipes.

Commands:
  /mode short|detailed   switch answer mode
  /mode                  show the current mode
  /help                  show commands
  /quit                  exit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(root)
			if err != nil {
				return err
			}
			defer e.Close()
			configureOutput(cmd.OutOrStdout())

			s := newReplSession(e.client, e.mode, cmd.OutOrStdout(), e.log.Logger)
			defer s.Close()
			return s.run(cmd.Context(), openLineReader())
		},
	}
}

// =============================================================================
// COMMAND PARSING
// =============================================================================

type replAction int

const (
	replNone     replAction = iota // blank line
	replAsk                        // send the line as a question
	replSetMode                    // /mode short|detailed
	replShowMode                   // /mode
	replHelp                       // /help
	replQuit                       // /quit, /exit
	replInvalid                    // unknown command or bad argument
)

// replCommand is one parsed input line.
type replCommand struct {
	action replAction
	text   string
	mode   model.Mode
	err    error
}

// parseReplLine interprets a line. Anything not starting with "/" is a
// question and is kept verbatim.
func parseReplLine(line string) replCommand {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return replCommand{action: replNone}
	}
	if !strings.HasPrefix(trimmed, "/") {
		return replCommand{action: replAsk, text: line}
	}

	fields := strings.Fields(trimmed)
	switch strings.ToLower(fields[0]) {
	case "/quit", "/exit", "/q":
		return replCommand{action: replQuit}
	case "/help", "/?":
		return replCommand{action: replHelp}
	case "/mode":
		if len(fields) == 1 {
			return replCommand{action: replShowMode}
		}
		if len(fields) > 2 {
			return replCommand{action: replInvalid, err: errors.New("usage: /mode short|detailed")}
		}
		mode, err := model.ParseMode(fields[1])
		if err != nil {
			return replCommand{action: replInvalid, err: err}
		}
		return replCommand{action: replSetMode, mode: mode}
	default:
		return replCommand{action: replInvalid, err: fmt.Errorf("unknown command %s (try /help)", fields[0])}
	}
}

// =============================================================================
// SESSION
// =============================================================================

// lineReader is the part of liner the session needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// replSession runs exchanges one at a time against a conversation. Bot
// messages are printed by a conversation listener as they are appended.
type replSession struct {
	conv        *model.Conversation
	client      chat.Client
	mode        model.Mode
	out         io.Writer
	log         zerolog.Logger
	unsubscribe func()
}

func newReplSession(client chat.Client, mode model.Mode, out io.Writer, logger zerolog.Logger) *replSession {
	s := &replSession{
		conv:   model.NewConversation(model.Greeting),
		client: client,
		mode:   mode,
		out:    out,
		log:    logger.With().Str("component", "repl").Logger(),
	}
	s.unsubscribe = s.conv.Subscribe(func(msg model.Message, index int) {
		if !msg.IsUser() {
			s.printBot(msg)
		}
	})
	return s
}

// Close detaches the printer from the conversation.
func (s *replSession) Close() {
	s.unsubscribe()
}

func (s *replSession) run(ctx context.Context, r lineReader) error {
	defer r.Close()

	for _, msg := range s.conv.Messages() {
		s.printBot(msg)
	}
	fmt.Fprintln(s.out, mutedStyle.Render("Mode: "+s.mode.Label()+". Type /help for commands."))

	for {
		line, err := r.Prompt(replPrompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if strings.TrimSpace(line) != "" {
			r.AppendHistory(line)
		}
		if !s.handle(ctx, parseReplLine(line)) {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// handle executes one command and reports whether the session continues.
func (s *replSession) handle(ctx context.Context, c replCommand) bool {
	switch c.action {
	case replQuit:
		return false
	case replNone:
	case replHelp:
		for _, h := range replHelpLines {
			fmt.Fprintln(s.out, mutedStyle.Render(util.PadRight(h[0], replHelpWidth)+h[1]))
		}
	case replShowMode:
		fmt.Fprintln(s.out, mutedStyle.Render("Mode: "+s.mode.Label()))
	case replSetMode:
		s.mode = c.mode
		fmt.Fprintln(s.out, mutedStyle.Render("Mode: "+s.mode.Label()))
	case replInvalid:
		fmt.Fprintln(s.out, errorStyle.Render(c.err.Error()))
	case replAsk:
		s.ask(ctx, c.text)
	}
	return true
}

// ask performs one exchange. The reply, success or failure, becomes exactly
// one bot message.
func (s *replSession) ask(ctx context.Context, text string) {
	s.conv.AppendUser(text)
	fmt.Fprint(s.out, mutedStyle.Render(components.ThinkingText)+"\r")

	answer, err := s.client.Send(ctx, text, s.mode)
	fmt.Fprint(s.out, strings.Repeat(" ", len(components.ThinkingText))+"\r")
	if err != nil {
		s.log.Debug().Err(err).Msg("exchange failed")
	}
	s.conv.AppendBot(backend.ReplyText(answer, err))
}

func (s *replSession) printBot(msg model.Message) {
	fmt.Fprintf(s.out, "%s %s\n", botLabelStyle.Render(msg.Sender().Label()+":"), msg.Text())
}

// =============================================================================
// LINE EDITING
// =============================================================================

// openLineReader returns the interactive line editor. History lives only in
// memory for the length of the session.
var openLineReader = func() lineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return line
}
