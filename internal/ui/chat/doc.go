// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view of the bookchat TUI.
//
// The Model follows the Elm architecture used by Bubble Tea. It owns the
// conversation and a loading flag and cycles through two states:
//
//	idle --(submit non-blank draft)--> waiting --(ReplyMsg)--> idle
//
// Submitting appends the user message, clears the draft and returns a
// SendCmd; the exchange runs off the event loop and comes back as exactly
// one ReplyMsg, which is turned into a bot message with backend.ReplyText.
// While waiting, further submits are ignored and a transient "Thinking..."
// bubble is drawn after the last message.
//
// # Keys
//
//	enter, C-s      send the draft
//	M-enter, C-j    line break in the draft
//	tab             toggle short/detailed
//	M-1, M-2        select short, detailed
//	PgUp, PgDn      scroll
//	C-y             copy the last answer
//	C-c             quit
package chat
