// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/bookchat-tui/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := NewClientWithConfig(&ClientConfig{BaseURL: server.URL, Timeout: 2 * time.Second})
	return client, &hits
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestSend_Success(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, map[string]any{"message": "What is 6*7?", "mode": "detailed"}, req)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response": "42", "sources": ["ch1"]}`))
	})

	answer, err := client.Send(context.Background(), "What is 6*7?", model.ModeDetailed)
	require.NoError(t, err)
	assert.Equal(t, "42", answer)
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, "42", ReplyText(answer, err))
}

func TestSend_MessageSentVerbatim(t *testing.T) {
	var got ChatRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"response": "ok"}`))
	})

	_, err := client.Send(context.Background(), "  line1\nline2  ", model.ModeShort)
	require.NoError(t, err)
	assert.Equal(t, "  line1\nline2  ", got.Message)
	assert.Equal(t, "short", got.Mode)
}

func TestSend_RemoteError(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "ignored"}`))
	})

	answer, err := client.Send(context.Background(), "hello", model.ModeShort)
	require.Error(t, err)
	assert.Empty(t, answer)
	assert.True(t, IsRemote(err))
	assert.False(t, IsTransport(err))

	var ce *ClientError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, http.StatusNotFound, ce.StatusCode)
	assert.Equal(t, "Not Found", ce.StatusText)
	assert.Equal(t, "Error: Not Found", ReplyText(answer, err))
	assert.Equal(t, int32(1), hits.Load(), "no retry on failure")
}

func TestSend_ServerErrorNotRetried(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Send(context.Background(), "hello", model.ModeShort)
	assert.Equal(t, "Error: Internal Server Error", ReplyText("", err))
	assert.Equal(t, int32(1), hits.Load())
}

func TestSend_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close() // nothing listens any more

	client := NewClientWithConfig(&ClientConfig{BaseURL: url, Timeout: time.Second})
	answer, err := client.Send(context.Background(), "hello", model.ModeShort)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Equal(t, UnreachableText, ReplyText(answer, err))
}

func TestSend_TimeoutIsTransportError(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)
	client.httpClient.Timeout = 50 * time.Millisecond

	_, err := client.Send(context.Background(), "slow", model.ModeShort)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Equal(t, UnreachableText, ReplyText("", err))
}

func TestSend_ContextCancelled(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Send(ctx, "hello", model.ModeShort)
	assert.True(t, IsTransport(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSend_MalformedSuccessBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.Send(context.Background(), "hello", model.ModeShort)
	require.Error(t, err)
	assert.True(t, IsRemote(err))
	assert.Equal(t, "Error: OK", ReplyText("", err))
}

// =============================================================================
// HEALTH TESTS
// =============================================================================

func TestHealth_Online(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/", r.URL.Path)
		w.Write([]byte(`{"status": "online", "system": "Offline eBook Chatbot"}`))
	})

	status, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Online())
	assert.Equal(t, "Offline eBook Chatbot", status.System)
}

func TestHealth_Unreachable(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	status, err := client.Health(context.Background())
	assert.Nil(t, status)
	assert.True(t, IsTransport(err))
	assert.False(t, status.Online())
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestNewClientWithConfig_Defaults(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{})
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)

	client = NewClientWithConfig(&ClientConfig{BaseURL: "http://books.local:9000/"})
	assert.Equal(t, "http://books.local:9000", client.BaseURL())
}

func TestReplyText_UnknownErrorIsUnreachable(t *testing.T) {
	assert.Equal(t, UnreachableText, ReplyText("", errors.New("boom")))
}
