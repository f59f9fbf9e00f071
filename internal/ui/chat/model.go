// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"math"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/glide/internal/composer"
	"github.com/jeranaias/glide/internal/config"
	"github.com/jeranaias/glide/internal/dock"
	"github.com/jeranaias/glide/internal/keyboard"
	"github.com/jeranaias/glide/internal/logger"
	"github.com/jeranaias/glide/internal/model"
	"github.com/jeranaias/glide/internal/motion"
	"github.com/jeranaias/glide/internal/ui/components"
	"github.com/jeranaias/glide/internal/ui/styles"
)

// welcomeText is the first transcript entry.
const welcomeText = "Press tab to focus the composer. The keyboard rises with it, " +
	"and the list follows if you are reading the latest line."

//go:generate mockgen -source=model.go -destination=../../mock/keyboard_mock.go -package=mock

// Keyboard is the platform keyboard driven by focus changes and shortcuts.
// keyboard.SoftKeyboard implements it.
type Keyboard interface {
	Show()
	Hide()
	SetAccessory(on bool)
	AttachExternal(on bool)
	Reconfigure(opts keyboard.SoftKeyboardOptions)
}

// Options configures a Model.
type Options struct {
	Config   *config.Config
	Theme    *styles.Theme
	Observer *keyboard.Observer
	Keyboard Keyboard
	Clock    motion.Clock
	Log      *logger.Logger
	// Context bounds every reply goroutine.
	Context context.Context
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the glide screen. It owns the dock and
// is the dock's host. Pointer receivers throughout: the dock holds the model
// as its Host and the callbacks must see the live state.
type Model struct {
	cfg      *config.Config
	theme    *styles.Theme
	keys     KeyMap
	observer *keyboard.Observer
	kb       Keyboard
	ctx      context.Context
	log      *logger.Logger

	dock *dock.Dock
	conv *model.Conversation

	// Components
	list    *components.MessageList
	vp      *components.ChatViewport
	status  *components.StatusBar
	panel   *components.KeyboardPanel
	spinner spinner.Model

	// Streaming
	buffer        *StreamingBuffer
	responder     *Responder
	streamingID   string
	streamTicking bool

	// send is the async boundary into the UI loop, usually Program.Send.
	send func(tea.Msg)

	// Dimensions
	width  int
	height int
	ready  bool

	showHUD      bool
	accessory    bool
	external     bool
	contentDirty bool
	quitting     bool
}

// New creates the screen model. SetSend must be called before the program
// starts for keyboard transitions and replies to reach the loop.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.OrNop(opts.Log)

	m := &Model{
		cfg:      cfg,
		theme:    theme,
		keys:     DefaultKeyMap(),
		observer: opts.Observer,
		kb:       opts.Keyboard,
		ctx:      ctx,
		log:      log.Component("chat"),
		conv:     model.NewConversation(),
		list:     components.NewMessageList(theme, 78, cfg.UI.Markdown, log),
		vp:       components.NewChatViewport(theme),
		status:   components.NewStatusBar(theme),
		panel:    components.NewKeyboardPanel(theme),
		spinner: spinner.New(spinner.WithSpinner(spinner.Spinner{
			Frames: styles.LineSpinner.Frames,
			FPS:    styles.LineSpinner.Duration(),
		}), spinner.WithStyle(theme.InfoStyle)),
		buffer:  NewStreamingBuffer(cfg.Stream.BatchSize, cfg.Stream.MaxFPS, nil),
		showHUD: cfg.UI.ShowHUD,
	}
	m.responder = NewResponder(cfg.Stream.TokensPerSecond, cfg.Stream.Burst, m.dispatch, log)
	m.panel.AccessoryRows = int(math.Round(cfg.Keyboard.AccessoryHeight))

	m.dock = dock.New(dock.Options{
		Observer:            opts.Observer,
		Send:                m.dispatch,
		Host:                m,
		Layout:              cfg.Layout.ScrollLayout(),
		NearBottomThreshold: cfg.Layout.NearBottomThreshold,
		SmoothScroll:        cfg.Scroll.SmoothScroll(),
		FrameRate:           cfg.Keyboard.FrameRate,
		Composer: composer.Options{
			Bounds:      cfg.Composer.Bounds(),
			CharLimit:   cfg.Composer.CharLimit,
			Placeholder: cfg.Composer.Placeholder,
		},
		Clock: opts.Clock,
		Log:   log,
	})

	m.conv.AddSystemMessage(welcomeText)
	m.contentDirty = true
	return m
}

// SetSend installs the async boundary into the UI loop.
func (m *Model) SetSend(send func(tea.Msg)) {
	m.send = send
}

// dispatch forwards a message to the loop. It may run on any goroutine.
func (m *Model) dispatch(msg tea.Msg) {
	if send := m.send; send != nil {
		send(msg)
	}
}

// Close unmounts the dock and stops any running reply.
func (m *Model) Close() {
	m.responder.Cancel()
	m.dock.Close()
}

// =============================================================================
// DOCK HOST
// =============================================================================

// OnSend appends the user's message and starts the reply.
func (m *Model) OnSend(text string) {
	m.responder.Cancel()
	if m.streamingID != "" {
		m.finishStream(m.streamingID, context.Canceled)
	}

	m.conv.AddUserMessage(text)
	reply := m.conv.AddAssistantMessage()
	m.buffer.Reset()
	m.streamingID = reply.ID
	m.contentDirty = true
	m.responder.Start(m.ctx, reply.ID, text)
	m.log.Debug().Str("id", reply.ID).Int("len", len(text)).Msg("message sent")
}

// OnFocus raises the keyboard.
func (m *Model) OnFocus() {
	if m.kb != nil {
		m.kb.Show()
	}
}

// OnBlur dismisses the keyboard.
func (m *Model) OnBlur() {
	if m.kb != nil {
		m.kb.Hide()
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

func (m *Model) Dock() *dock.Dock                   { return m.dock }
func (m *Model) Conversation() *model.Conversation { return m.conv }
func (m *Model) Config() *config.Config             { return m.cfg }
func (m *Model) Streaming() bool                    { return m.streamingID != "" }
func (m *Model) ShowHUD() bool                      { return m.showHUD }
func (m *Model) Accessory() bool                    { return m.accessory }
func (m *Model) External() bool                     { return m.external }

// Responder exposes the reply generator, mainly so callers can wait for it.
func (m *Model) Responder() *Responder { return m.responder }
