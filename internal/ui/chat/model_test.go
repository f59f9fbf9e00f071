// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jeranaias/glide/internal/config"
	"github.com/jeranaias/glide/internal/keyboard"
	"github.com/jeranaias/glide/internal/mock"
	"github.com/jeranaias/glide/internal/motion"
	"github.com/jeranaias/glide/internal/scroll"
	"github.com/jeranaias/glide/internal/ui/styles"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

const (
	termWidth  = 80
	termHeight = 30
)

type harness struct {
	t     *testing.T
	clock *motion.ManualClock
	obs   *keyboard.Observer
	kb    *mock.MockKeyboard
	out   collector
	m     *Model
}

// newHarness builds a model on an 80x30 terminal with a manual clock and a
// mocked keyboard. Replies stream without pacing.
func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &harness{
		t:     t,
		clock: motion.NewManualClock(t0),
		kb:    mock.NewMockKeyboard(ctrl),
	}
	h.obs = keyboard.NewObserver(keyboard.Options{Now: h.clock.Now})

	cfg := config.Default()
	cfg.Stream.TokensPerSecond = 1e6
	cfg.Stream.Burst = 1000

	h.m = New(Options{
		Config:   cfg,
		Theme:    styles.NewThemeWithProfile(termenv.Ascii, true),
		Observer: h.obs,
		Keyboard: h.kb,
		Clock:    h.clock,
	})
	h.m.SetSend(h.out.send)
	t.Cleanup(h.m.Close)

	h.m.Update(tea.WindowSizeMsg{Width: termWidth, Height: termHeight})
	h.settleScroll()
	return h
}

// pump routes everything sent from other goroutines into the model.
func (h *harness) pump() {
	for _, msg := range h.out.drain() {
		h.m.Update(msg)
	}
}

// settleScroll finishes any smooth scroll in one frame.
func (h *harness) settleScroll() {
	h.m.Update(motion.FrameMsg{Time: h.clock.Advance(time.Second)})
}

// frames runs the active keyboard transition to the end, calling each after
// every frame.
func (h *harness) frames(each func()) {
	h.t.Helper()
	for i := 0; i < 1000; i++ {
		gen, ok := h.m.Dock().Synchronizer().Active()
		if !ok {
			return
		}
		interval := h.m.Dock().Synchronizer().Interval()
		h.m.Update(motion.FrameMsg{Gen: gen, Time: h.clock.Advance(interval)})
		if each != nil {
			each()
		}
	}
	h.t.Fatal("transition never settled")
}

func (h *harness) key(k tea.KeyType) {
	h.m.Update(tea.KeyMsg{Type: k})
}

func (h *harness) runes(s string) {
	h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) viewRows() int {
	return strings.Count(h.m.View(), "\n") + 1
}

func (h *harness) focus() {
	h.t.Helper()
	h.kb.EXPECT().Show()
	h.key(tea.KeyTab)
	require.True(h.t, h.m.Dock().Composer().Focused())
}

func TestModel_ViewFillsTerminal(t *testing.T) {
	h := newHarness(t)

	assert.True(t, h.m.ShowHUD())
	assert.Equal(t, termHeight, h.viewRows())
	// HUD, gap, composer and safe area leave the rest to the list.
	assert.Equal(t, termHeight-1-1-3-1, h.m.listRows())
}

func TestModel_NotReady(t *testing.T) {
	m := New(Options{})
	defer m.Close()
	assert.Equal(t, "Initializing...", m.View())
}

func TestModel_SendStreamsReply(t *testing.T) {
	h := newHarness(t)
	h.focus()

	h.runes("hello")
	assert.Equal(t, "hello", h.m.Dock().Composer().Text())

	h.key(tea.KeyEnter)
	require.True(t, h.m.Streaming())
	assert.Empty(t, h.m.Dock().Composer().Text())
	assert.Equal(t, 3, h.m.Conversation().MessageCount())

	h.m.Responder().Wait()
	h.pump()

	assert.False(t, h.m.Streaming())
	last := h.m.Conversation().GetLastMessage()
	require.NotNil(t, last)
	assert.False(t, last.IsStreaming)
	assert.Equal(t, Reply("hello"), last.Content)
	assert.Equal(t, termHeight, h.viewRows())
}

func TestModel_EmptySendIgnored(t *testing.T) {
	h := newHarness(t)
	h.focus()

	h.key(tea.KeyEnter)
	assert.False(t, h.m.Streaming())
	assert.Equal(t, 1, h.m.Conversation().MessageCount())
}

func TestModel_KeyboardShortcuts(t *testing.T) {
	h := newHarness(t)
	h.focus()

	h.kb.EXPECT().SetAccessory(true)
	h.key(tea.KeyCtrlA)
	assert.True(t, h.m.Accessory())

	h.kb.EXPECT().AttachExternal(true)
	h.key(tea.KeyCtrlE)
	assert.True(t, h.m.External())

	h.kb.EXPECT().Hide()
	h.key(tea.KeyTab)
	assert.False(t, h.m.Dock().Composer().Focused())
}

func TestModel_EscapeDismissesKeyboard(t *testing.T) {
	h := newHarness(t)
	h.focus()

	h.kb.EXPECT().Hide()
	h.key(tea.KeyEsc)
	assert.False(t, h.m.Dock().Composer().Focused())
}

func TestModel_KeyboardTransitionKeepsLayout(t *testing.T) {
	h := newHarness(t)
	coord := h.m.Dock().Coordinator()
	require.True(t, coord.AtBottom())

	code := keyboard.CurvePlatformKeyboard.Code()
	h.obs.Deliver(keyboard.Notification{
		ID:        1,
		Kind:      keyboard.KindShow,
		EndHeight: 9,
		Duration:  250 * time.Millisecond,
		CurveCode: &code,
		Timestamp: h.clock.Now(),
	})
	h.pump()

	_, active := h.m.Dock().Synchronizer().Active()
	require.True(t, active)

	h.frames(func() {
		assert.Equal(t, termHeight, h.viewRows())
		assert.True(t, coord.AtBottom())
	})

	assert.Equal(t, 9.0, h.m.Dock().KeyboardHeight())
	assert.Equal(t, 9, h.m.keyboardRows())
	assert.Equal(t, scroll.PhaseSettled, coord.Phase())
	assert.Equal(t, termHeight-1-1-3-9-1, h.m.listRows())
	assert.Equal(t, termHeight, h.viewRows())
}

func TestModel_ScrollKeys(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 60; i++ {
		h.m.Conversation().AddSystemMessage(fmt.Sprintf("line %d", i))
	}
	h.m.contentDirty = true
	h.m.Update(tea.WindowSizeMsg{Width: termWidth, Height: termHeight})
	h.settleScroll()

	coord := h.m.Dock().Coordinator()
	require.Greater(t, coord.MaxOffset(), 0.0)
	require.True(t, coord.AtBottom())

	h.key(tea.KeyHome)
	assert.Equal(t, 0.0, coord.Offset())

	h.key(tea.KeyDown)
	assert.Equal(t, 1.0, coord.Offset())

	h.key(tea.KeyPgDown)
	assert.Equal(t, 1+h.m.pageRows(), coord.Offset())

	h.key(tea.KeyUp)
	assert.Equal(t, h.m.pageRows(), coord.Offset())

	h.key(tea.KeyEnd)
	assert.Equal(t, coord.MaxOffset(), coord.Offset())

	h.key(tea.KeyHome)
	h.runes("G")
	assert.True(t, coord.Animating())
	h.settleScroll()
	assert.Equal(t, coord.MaxOffset(), coord.Offset())

	h.m.Update(tea.MouseMsg{Type: tea.MouseWheelUp})
	assert.Equal(t, coord.MaxOffset()-3, coord.Offset())
	assert.False(t, coord.AtBottom())
}

func TestModel_NewContentWhileReading(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 60; i++ {
		h.m.Conversation().AddSystemMessage(fmt.Sprintf("line %d", i))
	}
	h.m.contentDirty = true
	h.m.Update(tea.WindowSizeMsg{Width: termWidth, Height: termHeight})
	h.settleScroll()

	coord := h.m.Dock().Coordinator()
	h.key(tea.KeyHome)

	h.m.Conversation().AddSystemMessage("fresh")
	h.m.contentDirty = true
	h.m.Update(tea.WindowSizeMsg{Width: termWidth, Height: termHeight})

	assert.Equal(t, 0.0, coord.Offset())
	assert.Equal(t, 1, coord.NewContentCount())
	assert.Contains(t, h.m.View(), "new message below")

	h.key(tea.KeyEnd)
	assert.Zero(t, coord.NewContentCount())
}

func TestModel_ToggleHUD(t *testing.T) {
	h := newHarness(t)
	before := h.m.listRows()

	h.runes("?")
	assert.False(t, h.m.ShowHUD())
	assert.Equal(t, before+1, h.m.listRows())
	assert.Equal(t, termHeight, h.viewRows())
}

func TestModel_ClearHistory(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyCtrlL)
	assert.True(t, h.m.Conversation().IsEmpty())
	assert.Contains(t, h.m.View(), "No messages yet")
}

func TestModel_ConfigReload(t *testing.T) {
	h := newHarness(t)

	cfg := config.Default()
	cfg.UI.ShowHUD = false
	cfg.Keyboard.AccessoryHeight = 3
	cfg.Stream.MaxFPS = 10

	h.kb.EXPECT().Reconfigure(cfg.Keyboard.SoftKeyboard())
	h.m.Update(ConfigReloadedMsg{Config: cfg})

	assert.Same(t, cfg, h.m.Config())
	assert.False(t, h.m.ShowHUD())
	assert.Equal(t, 3, h.m.panel.AccessoryRows)
	assert.Equal(t, 100*time.Millisecond, h.m.buffer.Interval())
	assert.Equal(t, termHeight, h.viewRows())
}

func TestModel_ConfigError(t *testing.T) {
	h := newHarness(t)
	h.m.Update(ConfigErrorMsg{Err: errors.New("composer.max_height: below min_height")})

	last := h.m.Conversation().GetLastMessage()
	require.NotNil(t, last)
	assert.Contains(t, last.Content, "below min_height")
}

func TestModel_Quit(t *testing.T) {
	h := newHarness(t)

	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, h.m.View())
}
