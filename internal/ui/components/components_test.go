// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/bookchat-tui/internal/model"
	"github.com/jeranaias/bookchat-tui/internal/ui/styles"
)

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestNewHeader(t *testing.T) {
	h := NewHeader(styles.NewTheme())

	assert.Equal(t, "eBook Chatbot", h.Title)
	assert.Equal(t, "Ask questions about your ebook", h.Subtitle)
	assert.Equal(t, model.ModeShort, h.Mode)
	assert.Equal(t, BackendUnknown, h.Backend)
}

func TestHeaderView(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetWidth(100)
	h.SetBackend(BackendOnline)

	view := h.View()
	assert.Contains(t, view, "eBook Chatbot")
	assert.Contains(t, view, "Ask questions about your ebook")
	assert.Contains(t, view, "Short")
	assert.Contains(t, view, "Detailed")
	assert.Contains(t, view, "online")
	for _, line := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 100)
	}
}

func TestHeaderView_NarrowHidesSubtitle(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetWidth(40)

	view := h.View()
	assert.Contains(t, view, "eBook Chatbot")
	assert.NotContains(t, view, "Ask questions")
	assert.Contains(t, view, "Short")
}

func TestBackendStateString(t *testing.T) {
	assert.Equal(t, "online", BackendOnline.String())
	assert.Equal(t, "offline", BackendOffline.String())
	assert.Equal(t, "connecting", BackendUnknown.String())
}

func TestRenderModeToggle_HighlightsActive(t *testing.T) {
	theme := styles.NewTheme()

	short := RenderModeToggle(theme, model.ModeShort)
	detailed := RenderModeToggle(theme, model.ModeDetailed)

	assert.Equal(t, theme.ModeActive.Render("Short")+theme.ModeInactive.Render("Detailed"), short)
	assert.Equal(t, theme.ModeInactive.Render("Short")+theme.ModeActive.Render("Detailed"), detailed)
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestMessageBubble_LabelsAndText(t *testing.T) {
	theme := styles.NewTheme()

	user := NewMessageBubble(model.NewUserMessage("What is chapter 3 about?"), theme).View()
	assert.Contains(t, user, "You")
	assert.Contains(t, user, "What is chapter 3 about?")

	bot := NewMessageBubble(model.NewBotMessage("A storm."), theme).View()
	assert.Contains(t, bot, "AI")
	assert.Contains(t, bot, "A storm.")
}

func TestMessageBubble_ParagraphPerLine(t *testing.T) {
	theme := styles.NewTheme()
	b := NewMessageBubble(model.NewBotMessage("a\n\nb"), theme)

	lines := strings.Split(b.View(), "\n")
	// label, top border, "a", blank, "b", bottom border
	require.Len(t, lines, 6)
	assert.Contains(t, lines[2], "a")
	assert.Equal(t, "", strings.Trim(lines[3], " │"))
	assert.Contains(t, lines[4], "b")
}

func TestMessageBubble_WrapsLongLines(t *testing.T) {
	theme := styles.NewTheme()
	b := NewMessageBubble(model.NewBotMessage(strings.Repeat("word ", 40)), theme)
	b.Width = 40

	for _, line := range strings.Split(b.View(), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
}

func TestMessageBubble_UserAlignedRight(t *testing.T) {
	theme := styles.NewTheme()
	b := NewMessageBubble(model.NewUserMessage("hi"), theme)
	b.Width = 60

	first := strings.Split(b.View(), "\n")[0]
	assert.Equal(t, 60, lipgloss.Width(first))
	assert.True(t, strings.HasPrefix(first, " "))
}

func TestMessageBubble_Timestamp(t *testing.T) {
	theme := styles.NewTheme()
	msg := model.NewBotMessage("x")
	b := NewMessageBubble(msg, theme)
	b.ShowTimestamp = true

	assert.Contains(t, b.View(), msg.Timestamp().Format("15:04"))
}

func TestMessageList_OrderAndThinking(t *testing.T) {
	theme := styles.NewTheme()
	ml := NewMessageList(theme)

	msgs := []model.Message{
		model.NewBotMessage("first"),
		model.NewUserMessage("second"),
		model.NewBotMessage("third"),
	}
	out := ml.Render(msgs, "THINKING")

	last := -1
	for _, want := range []string{"first", "second", "third", "THINKING"} {
		idx := strings.Index(out, want)
		require.GreaterOrEqual(t, idx, 0, want)
		assert.Greater(t, idx, last, fmt.Sprintf("%s out of order", want))
		last = idx
	}
}

// =============================================================================
// THINKING INDICATOR TESTS
// =============================================================================

func TestThinkingIndicator(t *testing.T) {
	ti := NewThinkingIndicator(styles.NewTheme())
	assert.False(t, ti.IsActive())
	assert.Empty(t, ti.View())

	cmd := ti.Start()
	assert.NotNil(t, cmd)
	assert.True(t, ti.IsActive())
	assert.Contains(t, ti.View(), "Thinking...")
	assert.Contains(t, ti.View(), "AI")

	ti.Stop()
	assert.Empty(t, ti.View())

	_, cmd = ti.Update(cmd())
	assert.Nil(t, cmd, "ticks after Stop end the animation")
}

// =============================================================================
// VIEWPORT TESTS
// =============================================================================

func tallContent(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return strings.Join(lines, "\n")
}

func TestChatViewport_InstantScroll(t *testing.T) {
	cv := NewChatViewport(40, 5)
	cv.SetContent(tallContent(30))

	cmd := cv.ScrollToBottom()
	assert.Nil(t, cmd)
	assert.True(t, cv.AtBottom())
	assert.Contains(t, cv.View(), "line 29")
}

func TestChatViewport_SmoothScrollSettles(t *testing.T) {
	cv := NewChatViewport(40, 5)
	cv.SetSmooth(true)
	cv.SetContent(tallContent(30))

	cmd := cv.ScrollToBottom()
	require.NotNil(t, cmd)
	assert.True(t, cv.Animating())

	frame := ScrollFrameMsg{id: cv.frameID}
	for i := 0; i < 600 && cv.Animating(); i++ {
		cv.Update(frame)
	}
	assert.False(t, cv.Animating())
	assert.True(t, cv.AtBottom())
	assert.Equal(t, 25, cv.YOffset())
}

func TestChatViewport_DroppedFrameChainRecovers(t *testing.T) {
	cv := NewChatViewport(40, 5)
	cv.SetSmooth(true)
	cv.SetContent(tallContent(30))

	// The first command is never run
	require.NotNil(t, cv.ScrollToBottom())
	dropped := ScrollFrameMsg{id: cv.frameID}

	cv.SetContent(tallContent(40))
	cmd := cv.ScrollToBottom()
	require.NotNil(t, cmd)
	assert.Nil(t, cv.Update(dropped), "frames from an older chain are ignored")

	frame := ScrollFrameMsg{id: cv.frameID}
	for i := 0; i < 600 && cv.Animating(); i++ {
		cv.Update(frame)
	}
	assert.True(t, cv.AtBottom())
	assert.Contains(t, cv.View(), "line 39")
}

func TestChatViewport_GotoBottom(t *testing.T) {
	cv := NewChatViewport(40, 5)
	cv.SetSmooth(true)
	cv.SetContent(tallContent(30))
	require.NotNil(t, cv.ScrollToBottom())

	cv.GotoBottom()
	assert.False(t, cv.Animating())
	assert.True(t, cv.AtBottom())
}

func TestChatViewport_ManualScrollCancelsAnimation(t *testing.T) {
	cv := NewChatViewport(40, 5)
	cv.SetSmooth(true)
	cv.SetContent(tallContent(30))

	require.NotNil(t, cv.ScrollToBottom())
	stale := ScrollFrameMsg{id: cv.frameID}

	cv.PageUp()
	assert.False(t, cv.Animating())
	assert.Nil(t, cv.Update(stale))
}

func TestChatViewport_PageDown(t *testing.T) {
	cv := NewChatViewport(40, 5)
	cv.SetContent(tallContent(30))

	cv.PageDown()
	assert.Equal(t, 5, cv.YOffset())
	cv.PageUp()
	assert.Equal(t, 0, cv.YOffset())
}
