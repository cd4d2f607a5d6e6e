// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"math"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bookchat-tui/internal/ui/styles"
)

// =============================================================================
// CHAT VIEWPORT COMPONENT - Scrollable message list with smooth follow
// =============================================================================

// ScrollFrameMsg advances a smooth scroll animation by one frame.
type ScrollFrameMsg struct {
	id int
}

// ChatViewport is the scrollable message area. ScrollToBottom either jumps
// or, with smooth scrolling on, glides there on a harmonica spring.
type ChatViewport struct {
	viewport viewport.Model
	smooth   bool

	spring    harmonica.Spring
	pos, vel  float64
	target    int
	animating bool
	frameID   int // increments to invalidate in-flight frames
}

// NewChatViewport creates a new ChatViewport
func NewChatViewport(width, height int) *ChatViewport {
	vp := viewport.New(width, height)
	vp.Style = lipgloss.NewStyle()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &ChatViewport{
		viewport: vp,
		spring:   harmonica.NewSpring(harmonica.FPS(styles.ScrollFPS), styles.ScrollFrequency, styles.ScrollDamping),
	}
}

// SetSize updates the viewport dimensions
func (cv *ChatViewport) SetSize(width, height int) {
	if height < 1 {
		height = 1
	}
	cv.viewport.Width = width
	cv.viewport.Height = height
}

// SetSmooth turns spring-animated scrolling on or off.
func (cv *ChatViewport) SetSmooth(smooth bool) {
	cv.smooth = smooth
	if !smooth {
		cv.stopAnimation()
	}
}

// SetContent replaces the rendered list. The scroll offset is kept.
func (cv *ChatViewport) SetContent(content string) {
	cv.viewport.SetContent(content)
}

// ScrollToBottom brings the last line into view. With smooth scrolling it
// returns the command driving the animation; otherwise it jumps and
// returns nil.
func (cv *ChatViewport) ScrollToBottom() tea.Cmd {
	target := cv.maxOffset()
	if !cv.smooth || target == cv.viewport.YOffset {
		cv.stopAnimation()
		cv.viewport.GotoBottom()
		return nil
	}

	cv.target = target
	if !cv.animating {
		cv.pos = float64(cv.viewport.YOffset)
		cv.vel = 0
		cv.animating = true
	}
	// Always start a fresh frame chain. Position and velocity carry over, and
	// frames from an older chain are dropped by id, so a lost command can
	// never leave the animation stuck.
	cv.frameID++
	return cv.nextFrame()
}

// GotoBottom jumps to the last line, cancelling any animation.
func (cv *ChatViewport) GotoBottom() {
	cv.stopAnimation()
	cv.viewport.GotoBottom()
}

// Update handles scrolling input and animation frames.
func (cv *ChatViewport) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ScrollFrameMsg:
		if !cv.animating || msg.id != cv.frameID {
			return nil
		}
		cv.pos, cv.vel = cv.spring.Update(cv.pos, cv.vel, float64(cv.target))
		if math.Abs(cv.pos-float64(cv.target)) < 0.5 && math.Abs(cv.vel) < 0.5 {
			cv.viewport.SetYOffset(cv.target)
			cv.animating = false
			return nil
		}
		cv.viewport.SetYOffset(int(math.Round(cv.pos)))
		return cv.nextFrame()

	case tea.MouseMsg:
		cv.stopAnimation()
		var cmd tea.Cmd
		cv.viewport, cmd = cv.viewport.Update(msg)
		return cmd
	}
	return nil
}

// PageUp scrolls one screen towards the top
func (cv *ChatViewport) PageUp() {
	cv.stopAnimation()
	cv.viewport.ViewUp()
}

// PageDown scrolls one screen towards the bottom
func (cv *ChatViewport) PageDown() {
	cv.stopAnimation()
	cv.viewport.ViewDown()
}

// AtBottom reports whether the last line is visible
func (cv *ChatViewport) AtBottom() bool {
	return cv.viewport.AtBottom()
}

// Animating reports whether a smooth scroll is running
func (cv *ChatViewport) Animating() bool {
	return cv.animating
}

// YOffset returns the first visible line
func (cv *ChatViewport) YOffset() int {
	return cv.viewport.YOffset
}

// View renders the visible part of the list
func (cv *ChatViewport) View() string {
	return cv.viewport.View()
}

func (cv *ChatViewport) stopAnimation() {
	if cv.animating {
		cv.animating = false
		cv.frameID++
	}
}

func (cv *ChatViewport) nextFrame() tea.Cmd {
	id := cv.frameID
	return tea.Tick(time.Second/styles.ScrollFPS, func(time.Time) tea.Msg {
		return ScrollFrameMsg{id: id}
	})
}

// maxOffset is the YOffset at which the last line sits at the bottom edge.
func (cv *ChatViewport) maxOffset() int {
	off := cv.viewport.TotalLineCount() - cv.viewport.Height
	if off < 0 {
		return 0
	}
	return off
}
