// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/bookchat-tui/internal/backend"
	"github.com/jeranaias/bookchat-tui/internal/config"
)

// =============================================================================
// EXCHANGE MESSAGES
// =============================================================================

// ReplyMsg settles the outstanding question. Exactly one arrives per
// submission; Err is a *backend.ClientError on failure.
type ReplyMsg struct {
	Text string
	Err  error
}

// HealthMsg carries the result of the startup status check.
type HealthMsg struct {
	Status *backend.HealthStatus
	Err    error
}

// =============================================================================
// UI MESSAGES
// =============================================================================

// ConfigReloadedMsg delivers a configuration that changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// CopiedMsg reports the outcome of a clipboard copy.
type CopiedMsg struct {
	Err error
}

// clearNoticeMsg hides the footer notice with the matching id.
type clearNoticeMsg struct {
	id int
}
