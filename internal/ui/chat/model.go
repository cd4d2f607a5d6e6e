// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jeranaias/bookchat-tui/internal/backend"
	"github.com/jeranaias/bookchat-tui/internal/config"
	"github.com/jeranaias/bookchat-tui/internal/model"
	"github.com/jeranaias/bookchat-tui/internal/ui/components"
	"github.com/jeranaias/bookchat-tui/internal/ui/styles"
)

// Placeholder is shown in the empty draft.
const Placeholder = "Ask a question about the book..."

// sendGlyph is drawn as the send control.
const sendGlyph = "➤"

// logPreviewLen bounds message text copied into debug log entries.
const logPreviewLen = 40

// Layout heights that do not depend on content.
const (
	draftHeight  = 3
	inputHeight  = draftHeight + 1 // top border
	footerHeight = 1
)

// =============================================================================
// MODEL
// =============================================================================

// Options configure a chat Model.
type Options struct {
	// Client answers questions. Required.
	Client Client

	// Conversation to display. Nil starts a new one with the greeting.
	Conversation *model.Conversation

	// Mode selected at startup (default short).
	Mode model.Mode

	// UI holds the presentation preferences.
	UI config.UIConfig

	// ConfigUpdates, when set, delivers hot-reloaded configurations.
	ConfigUpdates <-chan *config.Config

	// Clipboard writes text to the system clipboard (default atotto/clipboard).
	Clipboard func(string) error

	Theme  *styles.Theme
	Logger zerolog.Logger
}

// Model is the chat widget: header, message list, draft and footer.
//
// The conversation and the loading flag are only touched from Update, so
// they are owned by the Bubble Tea event loop. At most one exchange is in
// flight; submit refuses to start another while loading is set.
type Model struct {
	conv        *model.Conversation
	client      Client
	mode        model.Mode
	loading     bool
	prefs       config.UIConfig
	unsubscribe func()

	// Components
	draft    textarea.Model
	viewport *components.ChatViewport
	thinking components.ThinkingIndicator
	header   *components.Header
	list     *components.MessageList
	help     help.Model
	keys     KeyMap
	theme    *styles.Theme

	// Footer notice ("Copied ..."), replaced by key help when empty
	notice   string
	noticeID int

	configUpdates <-chan *config.Config
	copyText      func(string) error

	ctx    context.Context
	cancel context.CancelFunc
	log    zerolog.Logger

	width  int
	height int
}

// New creates a new chat model.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	conv := opts.Conversation
	if conv == nil {
		conv = model.NewConversation(model.Greeting)
	}
	mode := opts.Mode
	if !mode.Valid() {
		mode = model.ModeShort
	}
	copyText := opts.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	keys := DefaultKeyMap()

	ta := textarea.New()
	ta.Placeholder = Placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = "> "
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(draftHeight)
	ta.KeyMap.InsertNewline = keys.Newline
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.Focus()

	h := help.New()
	h.Styles = theme.HelpStyles()

	header := components.NewHeader(theme)
	header.SetMode(mode)

	list := components.NewMessageList(theme)
	list.ShowTimestamps = opts.UI.ShowTimestamps

	vp := components.NewChatViewport(80, 20)
	vp.SetSmooth(opts.UI.SmoothScroll)

	log := opts.Logger.With().Str("component", "chat").Logger()
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		conv:          conv,
		client:        opts.Client,
		mode:          mode,
		prefs:         opts.UI,
		draft:         ta,
		viewport:      vp,
		thinking:      components.NewThinkingIndicator(theme),
		header:        header,
		list:          list,
		help:          h,
		keys:          keys,
		theme:         theme,
		configUpdates: opts.ConfigUpdates,
		copyText:      copyText,
		ctx:           ctx,
		cancel:        cancel,
		log:           log,
		width:         80,
		height:        24,
	}
	m.unsubscribe = conv.Subscribe(func(msg model.Message, index int) {
		log.Debug().
			Str("sender", msg.Sender().String()).
			Int("index", index).
			Int("len", len(msg.Text())).
			Str("preview", msg.Preview(logPreviewLen)).
			Msg("message appended")
	})
	m.refresh()
	m.viewport.GotoBottom()
	return m
}

// Init starts the cursor blink, the status check and the config watch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		HealthCmd(m.ctx, m.client),
		WaitForConfig(m.configUpdates),
	)
}

// Close cancels any in-flight exchange and detaches from the conversation.
func (m Model) Close() {
	m.cancel()
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.viewport.Update(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case HealthMsg:
		return m.handleHealth(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg)

	case CopiedMsg:
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("clipboard copy failed")
			return m.setNotice("Clipboard unavailable")
		}
		return m.setNotice("Copied last answer to clipboard")

	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.thinking, cmd = m.thinking.Update(msg)
		if m.thinking.IsActive() {
			m.refresh()
		}
		return m, cmd

	case components.ScrollFrameMsg:
		return m, m.viewport.Update(msg)

	default:
		var cmd tea.Cmd
		m.draft, cmd = m.draft.Update(msg)
		return m, cmd
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})

	case key.Matches(msg, m.keys.Submit), key.Matches(msg, m.keys.Send):
		return m.submit()

	case key.Matches(msg, m.keys.ToggleMode):
		return m.setMode(m.mode.Toggle()), nil

	case key.Matches(msg, m.keys.ModeShort):
		return m.setMode(model.ModeShort), nil

	case key.Matches(msg, m.keys.ModeDetailed):
		return m.setMode(model.ModeDetailed), nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.PageUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.PageDown()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		last, ok := m.conv.LastFrom(model.SenderBot)
		if !ok {
			return m, nil
		}
		return m, CopyCmd(m.copyText, last.Text())
	}

	// Everything else edits the draft, also while loading
	var cmd tea.Cmd
	m.draft, cmd = m.draft.Update(msg)
	return m, cmd
}

// submit sends the draft. The loading guard comes first: while an exchange
// is outstanding, submit triggers change nothing.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	text := m.draft.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}

	// The user message is in the store before the request is issued
	m.conv.AppendUser(text)
	m.draft.Reset()
	m.loading = true
	tick := m.thinking.Start()

	m.refresh()
	scroll := m.viewport.ScrollToBottom()

	return m, tea.Batch(SendCmd(m.ctx, m.client, text, m.mode), tick, scroll)
}

func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	if !m.loading {
		// Nothing outstanding; a reply can only come from a submit
		m.log.Warn().Msg("reply without outstanding question dropped")
		return m, nil
	}

	m.conv.AppendBot(backend.ReplyText(msg.Text, msg.Err))
	m.loading = false
	m.thinking.Stop()

	switch {
	case msg.Err == nil || backend.IsRemote(msg.Err):
		m.header.SetBackend(components.BackendOnline)
	case backend.IsTransport(msg.Err):
		m.header.SetBackend(components.BackendOffline)
	}

	m.refresh()
	return m, m.viewport.ScrollToBottom()
}

func (m Model) handleHealth(msg HealthMsg) (tea.Model, tea.Cmd) {
	if msg.Err == nil && msg.Status.Online() {
		m.header.SetBackend(components.BackendOnline)
	} else {
		m.log.Info().Err(msg.Err).Msg("backend not ready at startup")
		m.header.SetBackend(components.BackendOffline)
	}
	return m, nil
}

// handleConfigReload re-applies presentation preferences. The conversation,
// the current mode and the transport are left alone.
func (m Model) handleConfigReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{WaitForConfig(m.configUpdates)}
	if msg.Config == nil {
		return m, tea.Batch(cmds...)
	}

	ui := msg.Config.UI
	if ui.Mouse != m.prefs.Mouse {
		if ui.Mouse {
			cmds = append(cmds, tea.EnableMouseCellMotion)
		} else {
			cmds = append(cmds, tea.DisableMouse)
		}
	}
	m.prefs = ui
	m.viewport.SetSmooth(ui.SmoothScroll)
	m.list.ShowTimestamps = ui.ShowTimestamps
	m.refresh()

	m.log.Info().
		Bool("smooth_scroll", ui.SmoothScroll).
		Bool("show_timestamps", ui.ShowTimestamps).
		Bool("mouse", ui.Mouse).
		Msg("ui preferences reloaded")
	return m, tea.Batch(cmds...)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(m.width, m.height)

	m.header.SetWidth(m.width)
	m.help.Width = m.width

	// Measure the header rather than assume; it depends on the width
	headerHeight := lipgloss.Height(m.header.View())
	footer := footerHeight
	if m.help.ShowAll {
		footer = lipgloss.Height(m.help.View(m.keys))
	}

	vpHeight := m.height - headerHeight - inputHeight - footer
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.SetSize(m.width, vpHeight)
	m.list.Width = m.width

	draftWidth := m.width - lipgloss.Width(m.renderSendButton())
	if draftWidth < 10 {
		draftWidth = 10
	}
	m.draft.SetWidth(draftWidth)

	m.refresh()
	return m, m.viewport.ScrollToBottom()
}

// =============================================================================
// HELPERS
// =============================================================================

func (m Model) setMode(mode model.Mode) Model {
	if mode == m.mode {
		return m
	}
	m.mode = mode
	m.header.SetMode(mode)
	m.log.Debug().Str("mode", mode.String()).Msg("mode changed")
	return m
}

func (m Model) setNotice(text string) (tea.Model, tea.Cmd) {
	m.noticeID++
	m.notice = text
	return m, clearNoticeAfter(m.noticeID)
}

// refresh re-renders the whole conversation into the viewport, with the
// thinking indicator last while loading.
func (m *Model) refresh() {
	m.viewport.SetContent(m.list.Render(m.conv.Messages(), m.thinking.View()))
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Conversation returns the displayed conversation.
func (m Model) Conversation() *model.Conversation { return m.conv }

// Loading reports whether an exchange is outstanding.
func (m Model) Loading() bool { return m.loading }

// Mode returns the currently selected answer mode.
func (m Model) Mode() model.Mode { return m.mode }

// Draft returns the text being composed.
func (m Model) Draft() string { return m.draft.Value() }
