// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// Label returns the short label shown above a message bubble.
func (s Sender) Label() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "AI"
	default:
		return string(s)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is one conversation turn. It cannot be changed after creation.
type Message struct {
	id        string
	sender    Sender
	text      string
	timestamp time.Time
}

// NewMessage creates a new message with a generated ID.
func NewMessage(sender Sender, text string) Message {
	return Message{
		id:        uuid.NewString(),
		sender:    sender,
		text:      text,
		timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(text string) Message {
	return NewMessage(SenderUser, text)
}

// NewBotMessage creates a new bot message.
func NewBotMessage(text string) Message {
	return NewMessage(SenderBot, text)
}

// ID returns the message identifier.
func (m Message) ID() string { return m.id }

// Sender returns who produced the message.
func (m Message) Sender() Sender { return m.sender }

// Text returns the message text exactly as it was created.
func (m Message) Text() string { return m.text }

// Timestamp returns the creation time.
func (m Message) Timestamp() time.Time { return m.timestamp }

// IsUser reports whether the message was typed by the user.
func (m Message) IsUser() bool { return m.sender == SenderUser }

// Paragraphs splits the text on line breaks. Every line becomes its own
// paragraph, empty lines included, in order.
func (m Message) Paragraphs() []string {
	return strings.Split(m.text, "\n")
}

// Preview returns a truncated single-line preview of the text.
// Uses rune-based truncation to handle Unicode correctly.
func (m Message) Preview(maxLen int) string {
	content := strings.ReplaceAll(m.text, "\n", " ")
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
