// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/bookchat-tui/internal/model"
	"github.com/jeranaias/bookchat-tui/internal/ui/styles"
)

// ThinkingText is the text of the transient indicator bubble.
const ThinkingText = "Thinking..."

// =============================================================================
// THINKING INDICATOR
// =============================================================================

// ThinkingIndicator is the transient bot-styled bubble shown while a
// question is in flight. It is rendered after the messages and never
// stored in the conversation.
type ThinkingIndicator struct {
	spinner spinner.Model
	active  bool
	theme   *styles.Theme
}

// NewThinkingIndicator creates an inactive indicator
func NewThinkingIndicator(theme *styles.Theme) ThinkingIndicator {
	s := spinner.New()
	s.Spinner = styles.ThinkingSpinner
	s.Style = theme.ThinkingSpin
	return ThinkingIndicator{spinner: s, theme: theme}
}

// Start activates the indicator and returns the first animation tick
func (t *ThinkingIndicator) Start() tea.Cmd {
	t.active = true
	return t.spinner.Tick
}

// Stop hides the indicator
func (t *ThinkingIndicator) Stop() {
	t.active = false
}

// IsActive reports whether the indicator is shown
func (t *ThinkingIndicator) IsActive() bool {
	return t.active
}

// Update advances the animation. Ticks arriving after Stop are dropped so
// the animation ends.
func (t ThinkingIndicator) Update(msg tea.Msg) (ThinkingIndicator, tea.Cmd) {
	if !t.active {
		return t, nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// View renders the indicator as a bot bubble, or "" when inactive.
func (t ThinkingIndicator) View() string {
	if !t.active {
		return ""
	}
	header := t.theme.BotLabel.Render(model.SenderBot.Label())
	body := t.spinner.View() + " " + t.theme.ThinkingText.Render(ThinkingText)
	return header + "\n" + t.theme.BotBubble.Render(body)
}
