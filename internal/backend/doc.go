// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the eBook question-answering service.
//
// The service exposes a single endpoint:
//
//	POST /chat  {"message": "...", "mode": "short"|"detailed"}  ->  {"response": "..."}
//
// and a status document at GET /.
//
// Failures come back as *ClientError with one of two types:
//
//   - ErrTypeRemote: the service answered with a non-2xx status
//   - ErrTypeTransport: no response was obtained (refused, DNS, timeout)
//
// ReplyText converts any outcome into the text of a conversation turn, so
// callers never have to surface errors separately.
//
// # Usage
//
//	client := backend.NewClient()
//	answer, err := client.Send(ctx, "Who is the narrator?", model.ModeShort)
//	conv.AppendBot(backend.ReplyText(answer, err))
package backend
