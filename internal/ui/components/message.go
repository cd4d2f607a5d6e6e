// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bookchat-tui/internal/model"
	"github.com/jeranaias/bookchat-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one conversation message with its sender label.
// User bubbles sit on the right, bot bubbles on the left.
type MessageBubble struct {
	Message       model.Message
	Width         int
	ShowTimestamp bool
	theme         *styles.Theme
}

// NewMessageBubble creates a new MessageBubble
func NewMessageBubble(msg model.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message: msg,
		Width:   80,
		theme:   theme,
	}
}

// View renders the label line and the bubble. Every line of the text is its
// own paragraph; blank lines are kept.
func (b *MessageBubble) View() string {
	style, label := b.theme.BotBubble, b.theme.BotLabel
	if b.Message.IsUser() {
		style, label = b.theme.UserBubble, b.theme.UserLabel
	}

	header := label.Render(b.Message.Sender().Label())
	if b.ShowTimestamp {
		header += " " + b.theme.Timestamp.Render(formatTime(b.Message.Timestamp()))
	}

	bubble := renderBubble(style, b.Message.Paragraphs(), b.Width)
	return place(b.Message.IsUser(), b.Width, header+"\n"+bubble)
}

// renderBubble wraps paragraphs to fit within width and draws the frame.
func renderBubble(style lipgloss.Style, paragraphs []string, width int) string {
	maxContent := bubbleContentWidth(style, width)

	natural := 0
	for _, p := range paragraphs {
		if w := lipgloss.Width(p); w > natural {
			natural = w
		}
	}
	contentWidth := natural
	if contentWidth > maxContent {
		contentWidth = maxContent
	}
	if contentWidth < 1 {
		contentWidth = 1
	}

	// Width includes padding but not border or margin
	return style.Width(contentWidth + style.GetHorizontalPadding()).
		Render(strings.Join(paragraphs, "\n"))
}

// bubbleContentWidth is the widest text a bubble may hold: three quarters
// of the list, minus the frame.
func bubbleContentWidth(style lipgloss.Style, width int) int {
	w := width*3/4 - style.GetHorizontalFrameSize()
	if w < 10 {
		w = 10
	}
	return w
}

// place aligns a rendered block to the right for the user, left otherwise.
func place(right bool, width int, block string) string {
	if !right {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
}

// formatTime renders a timestamp as a short clock time.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}

// =============================================================================
// MESSAGE LIST
// =============================================================================

// MessageList renders a whole conversation top to bottom, optionally
// followed by the thinking indicator.
type MessageList struct {
	Width          int
	ShowTimestamps bool
	theme          *styles.Theme
}

// NewMessageList creates a new MessageList
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{Width: 80, theme: theme}
}

// Render renders messages in order. When thinking is non-empty it is
// appended as the last element.
func (ml *MessageList) Render(messages []model.Message, thinking string) string {
	blocks := make([]string, 0, len(messages)+1)
	for _, msg := range messages {
		bubble := NewMessageBubble(msg, ml.theme)
		bubble.Width = ml.Width
		bubble.ShowTimestamp = ml.ShowTimestamps
		blocks = append(blocks, bubble.View())
	}
	if thinking != "" {
		blocks = append(blocks, thinking)
	}
	return strings.Join(blocks, "\n\n")
}
