// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/bookchat-tui/internal/backend"
	"github.com/jeranaias/bookchat-tui/internal/config"
	"github.com/jeranaias/bookchat-tui/internal/model"
)

// =============================================================================
// HELPERS
// =============================================================================

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// fakeService records chat requests and answers with a fixed handler.
type fakeService struct {
	mu       sync.Mutex
	requests []backend.ChatRequest
}

func (f *fakeService) handler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Write([]byte(`{"status": "online", "system": "Offline eBook Chatbot"}`))
			return
		}
		var req backend.ChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.requests = append(f.requests, req)
		f.mu.Unlock()

		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func (f *fakeService) sent() []backend.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]backend.ChatRequest(nil), f.requests...)
}

// writeTestConfig points the backend at url and keeps the log in dir.
func writeTestConfig(t *testing.T, url, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf("[backend]\nurl = %q\ntimeout_secs = 5\n\n[log]\npath = %q\n%s",
		url, filepath.Join(dir, "bookchat.log"), extra)
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// =============================================================================
// ASK
// =============================================================================

func TestAsk_PrintsAnswer(t *testing.T) {
	svc := &fakeService{}
	server := httptest.NewServer(svc.handler(http.StatusOK, `{"response": "42"}`))
	defer server.Close()
	cfg := writeTestConfig(t, server.URL, "")

	stdout, _, err := execute(t, "--config", cfg, "ask", "What is 6*7?")
	require.NoError(t, err)
	assert.Equal(t, "42\n", stdout)

	require.Len(t, svc.sent(), 1)
	assert.Equal(t, backend.ChatRequest{Message: "What is 6*7?", Mode: "short"}, svc.sent()[0])
}

func TestAsk_ModeFlagOverridesConfig(t *testing.T) {
	svc := &fakeService{}
	server := httptest.NewServer(svc.handler(http.StatusOK, `{"response": "long answer"}`))
	defer server.Close()
	cfg := writeTestConfig(t, server.URL, "\n[chat]\ndefault_mode = \"short\"\n")

	_, _, err := execute(t, "--config", cfg, "ask", "--mode", "detailed", "Why?")
	require.NoError(t, err)
	require.Len(t, svc.sent(), 1)
	assert.Equal(t, "detailed", svc.sent()[0].Mode)
}

func TestAsk_ConfigDefaultMode(t *testing.T) {
	svc := &fakeService{}
	server := httptest.NewServer(svc.handler(http.StatusOK, `{"response": "ok"}`))
	defer server.Close()
	cfg := writeTestConfig(t, server.URL, "\n[chat]\ndefault_mode = \"detailed\"\n")

	_, _, err := execute(t, "--config", cfg, "ask", "Why?")
	require.NoError(t, err)
	assert.Equal(t, "detailed", svc.sent()[0].Mode)
}

func TestAsk_RemoteError(t *testing.T) {
	svc := &fakeService{}
	server := httptest.NewServer(svc.handler(http.StatusNotFound, `{"detail": "Not Found"}`))
	defer server.Close()
	cfg := writeTestConfig(t, server.URL, "")

	stdout, stderr, err := execute(t, "--config", cfg, "ask", "hello")
	require.Error(t, err)
	assert.Equal(t, ExitGeneralError, ExitCode(err))
	assert.Empty(t, stdout)
	assert.Equal(t, "Error: Not Found\n", stderr)
	assert.True(t, backend.IsRemote(err))
}

func TestAsk_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	cfg := writeTestConfig(t, url, "")

	_, stderr, err := execute(t, "--config", cfg, "ask", "hello")
	require.Error(t, err)
	assert.Equal(t, ExitGeneralError, ExitCode(err))
	assert.Contains(t, stderr, backend.UnreachableText)
	assert.True(t, backend.IsTransport(err))
}

func TestAsk_Markdown(t *testing.T) {
	svc := &fakeService{}
	server := httptest.NewServer(svc.handler(http.StatusOK, `{"response": "The *keeper* of the light."}`))
	defer server.Close()
	cfg := writeTestConfig(t, server.URL, "")

	stdout, _, err := execute(t, "--config", cfg, "ask", "--markdown", "Who?")
	require.NoError(t, err)
	assert.Contains(t, stdout, "keeper")
	assert.Contains(t, stdout, "of the light.")
}

func TestAsk_UsageErrors(t *testing.T) {
	cfg := writeTestConfig(t, "http://localhost:1", "")

	_, _, err := execute(t, "--config", cfg, "ask", "   ")
	assert.Equal(t, ExitUsageError, ExitCode(err))

	_, _, err = execute(t, "--config", cfg, "ask", "--mode", "essay", "hi")
	assert.Equal(t, ExitUsageError, ExitCode(err))

	_, _, err = execute(t, "--config", cfg, "ask", "--bogus", "hi")
	assert.Equal(t, ExitUsageError, ExitCode(err))

	_, _, err = execute(t, "--config", cfg, "ask")
	assert.Error(t, err)
}

func TestAsk_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[backend]\nurl = \"ftp://books\"\n"), 0600))

	_, _, err := execute(t, "--config", path, "ask", "hi")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))
}

// =============================================================================
// PING AND VERSION
// =============================================================================

func TestPing(t *testing.T) {
	server := httptest.NewServer((&fakeService{}).handler(http.StatusOK, ""))
	defer server.Close()
	cfg := writeTestConfig(t, server.URL, "")

	stdout, _, err := execute(t, "--config", cfg, "ping")
	require.NoError(t, err)
	assert.Contains(t, stdout, "online")
	assert.Contains(t, stdout, "Offline eBook Chatbot")
}

func TestPing_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	cfg := writeTestConfig(t, url, "")

	_, stderr, err := execute(t, "--config", cfg, "ping")
	require.Error(t, err)
	assert.Contains(t, stderr, "unreachable")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "bookchat "+Version)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitGeneralError, ExitCode(errors.New("boom")))
	assert.Equal(t, ExitUsageError, ExitCode(usageError(errors.New("bad"))))
	assert.Equal(t, ExitConfigError, ExitCode(configError("x", errors.New("bad"))))
}

func TestPrintError_SkipsReported(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, reported(errors.New("already shown")))
	assert.Empty(t, buf.String())

	printError(&buf, errors.New("boom"))
	assert.Contains(t, buf.String(), "boom")
}

// =============================================================================
// REPL
// =============================================================================

func TestParseReplLine(t *testing.T) {
	tests := []struct {
		line   string
		action replAction
		text   string
		mode   model.Mode
	}{
		{"", replNone, "", ""},
		{"   ", replNone, "", ""},
		{"Who is the narrator?", replAsk, "Who is the narrator?", ""},
		{"  padded  ", replAsk, "  padded  ", ""},
		{"/quit", replQuit, "", ""},
		{"/exit", replQuit, "", ""},
		{"/help", replHelp, "", ""},
		{"/mode", replShowMode, "", ""},
		{"/mode detailed", replSetMode, "", model.ModeDetailed},
		{"/MODE Short", replSetMode, "", model.ModeShort},
		{"/mode essay", replInvalid, "", ""},
		{"/mode short detailed", replInvalid, "", ""},
		{"/nope", replInvalid, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			c := parseReplLine(tt.line)
			assert.Equal(t, tt.action, c.action)
			assert.Equal(t, tt.text, c.text)
			assert.Equal(t, tt.mode, c.mode)
			if tt.action == replInvalid {
				assert.Error(t, c.err)
			}
		})
	}
}

type stubAsker struct {
	answer string
	err    error
	modes  []model.Mode
}

func (s *stubAsker) Send(ctx context.Context, message string, mode model.Mode) (string, error) {
	s.modes = append(s.modes, mode)
	return s.answer, s.err
}

func (s *stubAsker) Health(ctx context.Context) (*backend.HealthStatus, error) {
	return &backend.HealthStatus{Status: "online"}, nil
}

// scriptedReader replays lines, then reports EOF.
type scriptedReader struct {
	lines   []string
	history []string
	closed  bool
}

func (r *scriptedReader) Prompt(string) (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) AppendHistory(item string) { r.history = append(r.history, item) }

func (r *scriptedReader) Close() error {
	r.closed = true
	return nil
}

func TestReplSession_Exchanges(t *testing.T) {
	client := &stubAsker{answer: "42"}
	var out bytes.Buffer
	s := newReplSession(client, model.ModeShort, &out, zerolog.Nop())
	defer s.Close()

	r := &scriptedReader{lines: []string{"first", "", "/mode detailed", "second", "/quit", "never"}}
	require.NoError(t, s.run(context.Background(), r))

	assert.True(t, r.closed)
	assert.Equal(t, []model.Mode{model.ModeShort, model.ModeDetailed}, client.modes)
	assert.Equal(t, []string{"first", "/mode detailed", "second", "/quit"}, r.history)

	text := out.String()
	assert.Contains(t, text, "AI: Hello! Ask me anything about the ebook.")
	assert.Contains(t, text, "AI: 42")
	assert.Contains(t, text, "Mode: Detailed")

	msgs := s.conv.Messages()
	require.Len(t, msgs, 5)
	assert.Equal(t, "first", msgs[1].Text())
	assert.True(t, msgs[1].IsUser())
	assert.Equal(t, "42", msgs[2].Text())
	assert.Equal(t, "second", msgs[3].Text())
}

func TestReplSession_FailureBecomesBotMessage(t *testing.T) {
	client := &stubAsker{err: &backend.ClientError{Type: backend.ErrTypeTransport, Cause: errors.New("refused")}}
	var out bytes.Buffer
	s := newReplSession(client, model.ModeShort, &out, zerolog.Nop())
	defer s.Close()

	require.NoError(t, s.run(context.Background(), &scriptedReader{lines: []string{"hello"}}))

	last, ok := s.conv.Last()
	require.True(t, ok)
	assert.Equal(t, backend.UnreachableText, last.Text())
	assert.Contains(t, out.String(), "AI: "+backend.UnreachableText)
}

func TestReplSession_InvalidCommandKeepsGoing(t *testing.T) {
	client := &stubAsker{answer: "ok"}
	var out bytes.Buffer
	s := newReplSession(client, model.ModeShort, &out, zerolog.Nop())
	defer s.Close()

	require.NoError(t, s.run(context.Background(), &scriptedReader{lines: []string{"/mode essay", "hi"}}))

	assert.Contains(t, out.String(), "unknown mode")
	assert.Equal(t, []model.Mode{model.ModeShort}, client.modes)
}

func TestReplSession_Help(t *testing.T) {
	var out bytes.Buffer
	s := newReplSession(&stubAsker{}, model.ModeShort, &out, zerolog.Nop())
	defer s.Close()

	require.NoError(t, s.run(context.Background(), &scriptedReader{lines: []string{"/help"}}))
	assert.Contains(t, out.String(), "/mode short|detailed  switch answer mode")
	assert.Contains(t, out.String(), "/quit                 exit")
}

func TestReplCommand_KeepsNothingOnDisk(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	svc := &fakeService{}
	server := httptest.NewServer(svc.handler(http.StatusOK, `{"response": "42"}`))
	defer server.Close()
	cfg := writeTestConfig(t, server.URL, "")

	reader := &scriptedReader{lines: []string{"What is 6*7?", "/quit"}}
	orig := openLineReader
	openLineReader = func() lineReader { return reader }
	t.Cleanup(func() { openLineReader = orig })

	stdout, _, err := execute(t, "--config", cfg, "repl")
	require.NoError(t, err)
	assert.Contains(t, stdout, "AI: 42")
	assert.True(t, reader.closed)
	require.Len(t, svc.sent(), 1)

	// Questions typed in the repl are not written anywhere
	entries, err := os.ReadDir(home)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfigInit_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	stdout, _, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\nmouse = false\n"), 0600))

	_, _, err := execute(t, "--config", path, "config", "init")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.UI.Mouse, "existing file untouched")

	_, _, err = execute(t, "--config", path, "config", "init", "--force")
	require.NoError(t, err)
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.UI.Mouse)
}

func TestConfigPath(t *testing.T) {
	stdout, _, err := execute(t, "--config", "/tmp/elsewhere.toml", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere.toml\n", stdout)
}
