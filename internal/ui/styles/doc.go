// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the bookchat TUI.
//
// Colors are lipgloss.AdaptiveColor values so the palette follows the
// terminal's light or dark background. Theme bundles every style the UI
// uses; create one per program with NewTheme.
//
// Badges pair colors with the ASCII StatusIndicators so that backend state
// stays readable on monochrome terminals.
package styles
