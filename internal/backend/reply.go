// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import "errors"

// UnreachableText is shown when no response could be obtained.
const UnreachableText = "Error: Could not reach the librarian. Is the backend running?"

// ReplyText turns the outcome of Send into the text of the bot message that
// is appended to the conversation. It never fails: every outcome becomes
// exactly one line of conversation.
func ReplyText(answer string, err error) string {
	if err == nil {
		return answer
	}

	var ce *ClientError
	if errors.As(err, &ce) && ce.Type == ErrTypeRemote {
		return "Error: " + ce.StatusText
	}
	return UnreachableText
}
