// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/lipgloss"
)

// View renders the chat view.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.viewport.View(),
		m.renderInput(),
		m.renderFooter(),
	)
}

// renderInput draws the draft with the send control to its right.
func (m Model) renderInput() string {
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, m.draft.View(), m.renderSendButton())
	return m.theme.InputContainer.Width(m.width).Render(row)
}

// renderSendButton draws the send control, dimmed while it is inert.
func (m Model) renderSendButton() string {
	if m.loading {
		return m.theme.SendButtonDisabled.Render(sendGlyph)
	}
	return m.theme.SendButton.Render(sendGlyph)
}

// renderFooter shows a transient notice, or the key help.
func (m Model) renderFooter() string {
	if m.notice != "" {
		return m.theme.Footer.Render(m.theme.Notice.Render(m.notice))
	}
	return m.theme.Footer.Render(m.help.View(m.keys))
}
