// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"sync"
)

// Greeting is the bot message every conversation starts with.
const Greeting = "Hello! Ask me anything about the ebook."

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Listener is called after a message has been appended.
type Listener func(msg Message, index int)

// Conversation is the append-only, insertion-ordered message store.
// Messages are never removed, reordered or edited.
type Conversation struct {
	mu        sync.RWMutex
	messages  []Message
	listeners map[int]Listener
	order     []int
	nextID    int
}

// NewConversation creates a conversation seeded with one bot message.
func NewConversation(greeting string) *Conversation {
	c := &Conversation{
		messages:  make([]Message, 0, 16),
		listeners: make(map[int]Listener),
	}
	c.messages = append(c.messages, NewBotMessage(greeting))
	return c
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the end of the conversation and notifies
// listeners in subscription order.
func (c *Conversation) Append(msg Message) {
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	index := len(c.messages) - 1
	listeners := make([]Listener, 0, len(c.order))
	for _, id := range c.order {
		listeners = append(listeners, c.listeners[id])
	}
	c.mu.Unlock()

	// Listeners run outside the lock so they may read the conversation.
	for _, fn := range listeners {
		fn(msg, index)
	}
}

// AppendUser creates and appends a user message.
func (c *Conversation) AppendUser(text string) Message {
	msg := NewUserMessage(text)
	c.Append(msg)
	return msg
}

// AppendBot creates and appends a bot message.
func (c *Conversation) AppendBot(text string) Message {
	msg := NewBotMessage(text)
	c.Append(msg)
	return msg
}

// Messages returns a copy of all messages in order.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Last returns the most recent message.
func (c *Conversation) Last() (Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// LastFrom returns the most recent message from the given sender.
func (c *Conversation) LastFrom(sender Sender) (Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].sender == sender {
			return c.messages[i], true
		}
	}
	return Message{}, false
}

// =============================================================================
// SUBSCRIPTIONS
// =============================================================================

// Subscribe registers fn to be called after every Append. The returned
// function removes the subscription.
func (c *Conversation) Subscribe(fn Listener) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.order = append(c.order, id)
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.listeners, id)
			for i, v := range c.order {
				if v == id {
					c.order = append(c.order[:i], c.order[i+1:]...)
					break
				}
			}
		})
	}
}
