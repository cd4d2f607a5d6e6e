// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/bookchat-tui/internal/backend"
	"github.com/jeranaias/bookchat-tui/internal/config"
	"github.com/jeranaias/bookchat-tui/internal/model"
)

// healthTimeout bounds the startup status check.
const healthTimeout = 5 * time.Second

// noticeDuration is how long footer notices stay visible.
const noticeDuration = 3 * time.Second

// Client is the part of *backend.Client the chat view needs.
type Client interface {
	Send(ctx context.Context, message string, mode model.Mode) (string, error)
	Health(ctx context.Context) (*backend.HealthStatus, error)
}

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// SendCmd performs one exchange off the event loop and reports it as a
// ReplyMsg.
func SendCmd(ctx context.Context, client Client, message string, mode model.Mode) tea.Cmd {
	return func() tea.Msg {
		text, err := client.Send(ctx, message, mode)
		return ReplyMsg{Text: text, Err: err}
	}
}

// HealthCmd queries the service root.
func HealthCmd(ctx context.Context, client Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, healthTimeout)
		defer cancel()

		status, err := client.Health(ctx)
		return HealthMsg{Status: status, Err: err}
	}
}

// WaitForConfig blocks until the watcher publishes a new configuration.
// It returns nil once the channel is closed.
func WaitForConfig(updates <-chan *config.Config) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-updates
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Config: cfg}
	}
}

// CopyCmd writes text to the clipboard.
func CopyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Err: write(text)}
	}
}

func clearNoticeAfter(id int) tea.Cmd {
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}
