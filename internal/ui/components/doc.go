// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual building blocks of the bookchat TUI.

# Components

Header (header.go) - Title, subtitle, mode toggle and backend badge.
MessageBubble, MessageList (message.go) - Conversation rendering; each line of
a message is its own paragraph and blank lines are preserved.
ThinkingIndicator (spinner.go) - Transient "Thinking..." bubble with a
bubbles spinner, shown only while a question is in flight.
ChatViewport (viewport.go) - Scrollable message area. ScrollToBottom jumps,
or glides on a harmonica spring when smooth scrolling is enabled. GotoBottom
always jumps.

All components take a *styles.Theme and render with Lip Gloss.
*/
package components
