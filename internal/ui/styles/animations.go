// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// ThinkingSpinner is the ASCII frame set shown next to "Thinking...".
var ThinkingSpinner = spinner.Spinner{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    time.Second / 6,
}

// Scroll spring parameters for harmonica. A damping ratio of 1 is
// critically damped, so the list settles without overshooting.
const (
	ScrollFPS       = 60
	ScrollFrequency = 8.0
	ScrollDamping   = 1.0
)
