// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

// ChatRequest is the request body for the /chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
	Mode    string `json:"mode"` // "short" or "detailed"
}

// ChatResponse is the success body of the /chat endpoint. Other fields the
// service may add are ignored.
type ChatResponse struct {
	Response string `json:"response"`
}

// HealthStatus is returned by the service root.
type HealthStatus struct {
	Status string `json:"status"` // "online" when ready
	System string `json:"system"`
}

// Online reports whether the service declared itself ready.
func (h *HealthStatus) Online() bool {
	return h != nil && h.Status == "online"
}
