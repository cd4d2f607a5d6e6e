// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// # Key Types
//
//   - Conversation: append-only message store with change subscriptions
//   - Message: immutable turn with sender, text, ID and timestamp
//   - Sender: user or bot
//   - Mode: response style sent with every question (short, detailed)
//
// # Usage
//
//	conv := model.NewConversation(model.Greeting)
//	unsubscribe := conv.Subscribe(func(msg model.Message, index int) {
//	    fmt.Printf("%d %s: %s\n", index, msg.Sender().Label(), msg.Text())
//	})
//	defer unsubscribe()
//	conv.AppendUser("Who is the narrator?")
package model
