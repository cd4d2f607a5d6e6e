// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/bookchat-tui/internal/config"
	"github.com/jeranaias/bookchat-tui/internal/ui/chat"
	"github.com/jeranaias/bookchat-tui/internal/ui/styles"
)

// runTUI opens the full-screen chat.
func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return usageError(errors.New("not a terminal; use 'bookchat repl' or 'bookchat ask'"))
	}

	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer e.Close()

	updates, stop := watchConfig(e)
	defer stop()

	m := chat.New(chat.Options{
		Client:        e.client,
		Mode:          e.mode,
		UI:            e.cfg.UI,
		ConfigUpdates: updates,
		Theme:         styles.NewTheme(),
		Logger:        e.log.Logger,
	})
	defer m.Close()

	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	}
	if e.cfg.UI.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	if _, err := tea.NewProgram(m, progOpts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("chat: %w", err)
	}
	e.log.Info().Msg("bookchat exiting")
	return nil
}

// watchConfig starts hot reload of the config file. Failing to watch is not
// fatal; the chat simply runs with the startup configuration.
func watchConfig(e *env) (<-chan *config.Config, func()) {
	noop := func() {}
	if e.cfgPath == "" {
		return nil, noop
	}

	w, err := config.NewWatcher(e.cfgPath, config.DefaultDebounce, e.log.Logger)
	if err != nil {
		e.log.Warn().Err(err).Msg("config hot reload unavailable")
		return nil, noop
	}
	if err := w.Watch(); err != nil {
		e.log.Warn().Err(err).Str("path", e.cfgPath).Msg("config hot reload unavailable")
		w.Close()
		return nil, noop
	}
	return w.Updates(), func() { w.Close() }
}
