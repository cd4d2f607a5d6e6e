// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
)

// Mode is the response style requested from the service. The client never
// interprets it; it is only sent along with every question.
type Mode string

const (
	ModeShort    Mode = "short"
	ModeDetailed Mode = "detailed"
)

// Modes lists the selectable modes in display order.
var Modes = []Mode{ModeShort, ModeDetailed}

// ParseMode converts a string into a Mode. Matching ignores case and
// surrounding whitespace.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeShort:
		return ModeShort, nil
	case ModeDetailed:
		return ModeDetailed, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeShort, ModeDetailed)
	}
}

// String returns the wire value of the mode.
func (m Mode) String() string {
	return string(m)
}

// Label returns the capitalized name shown on the toggle.
func (m Mode) Label() string {
	switch m {
	case ModeShort:
		return "Short"
	case ModeDetailed:
		return "Detailed"
	default:
		return string(m)
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeDetailed {
		return ModeShort
	}
	return ModeDetailed
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeShort || m == ModeDetailed
}
