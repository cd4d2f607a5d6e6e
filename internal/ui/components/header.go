// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bookchat-tui/internal/model"
	"github.com/jeranaias/bookchat-tui/internal/ui/styles"
	"github.com/jeranaias/bookchat-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT - Title bar with mode toggle and backend badge
// =============================================================================

// Default header texts.
const (
	DefaultTitle    = "eBook Chatbot"
	DefaultSubtitle = "Ask questions about your ebook"
)

// BackendState is what the header badge shows about the service.
type BackendState int

const (
	BackendUnknown BackendState = iota
	BackendOnline
	BackendOffline
)

// String returns the badge text for the state
func (s BackendState) String() string {
	switch s {
	case BackendOnline:
		return "online"
	case BackendOffline:
		return "offline"
	default:
		return "connecting"
	}
}

// Header is the title bar. It shows the title, the subtitle, the mode
// toggle with the active option highlighted, and the backend badge.
type Header struct {
	Title    string
	Subtitle string
	Mode     model.Mode
	Backend  BackendState
	Width    int
	theme    *styles.Theme
}

// NewHeader creates a new Header component with default values
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title:    DefaultTitle,
		Subtitle: DefaultSubtitle,
		Mode:     model.ModeShort,
		Backend:  BackendUnknown,
		Width:    80,
		theme:    theme,
	}
}

// SetWidth updates the header width
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetMode updates the highlighted mode
func (h *Header) SetMode(mode model.Mode) {
	h.Mode = mode
}

// SetBackend updates the badge
func (h *Header) SetBackend(state BackendState) {
	h.Backend = state
}

// View renders the two-line header.
//
//	eBook Chatbot                         [*] online
//	Ask questions about your ebook   Short  Detailed
func (h *Header) View() string {
	width := h.Width
	if width < 20 {
		width = 20
	}
	inner := width - h.theme.Header.GetHorizontalFrameSize()

	badge := h.renderBadge()
	toggle := RenderModeToggle(h.theme, h.Mode)

	title := h.theme.HeaderTitle.Render(
		util.TruncateWidth(h.Title, inner-lipgloss.Width(badge)-1))
	top := joinSpread(title, badge, inner)

	subtitle := ""
	if inner >= 60 {
		subtitle = h.theme.HeaderSubtitle.Render(
			util.TruncateWidth(h.Subtitle, inner-lipgloss.Width(toggle)-1))
	}
	bottom := joinSpread(subtitle, toggle, inner)

	return h.theme.Header.Width(width).Render(top + "\n" + bottom)
}

func (h *Header) renderBadge() string {
	switch h.Backend {
	case BackendOnline:
		return h.theme.BadgeOnline.Render(styles.StatusIndicators.Online + " " + h.Backend.String())
	case BackendOffline:
		return h.theme.BadgeOffline.Render(styles.StatusIndicators.Offline + " " + h.Backend.String())
	default:
		return h.theme.BadgeUnknown.Render(styles.StatusIndicators.Pending + " " + h.Backend.String())
	}
}

// RenderModeToggle renders every mode as a segment, highlighting the active one.
func RenderModeToggle(theme *styles.Theme, active model.Mode) string {
	parts := make([]string, 0, len(model.Modes))
	for _, m := range model.Modes {
		if m == active {
			parts = append(parts, theme.ModeActive.Render(m.Label()))
		} else {
			parts = append(parts, theme.ModeInactive.Render(m.Label()))
		}
	}
	return strings.Join(parts, "")
}

// joinSpread places left and right at the edges of a line of the given width.
func joinSpread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
