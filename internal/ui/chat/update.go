// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"math"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/glide/internal/config"
	"github.com/jeranaias/glide/internal/ui/components"
)

// hudRows is the height of the sync HUD.
const hudRows = 1

// =============================================================================
// BUBBLE TEA
// =============================================================================

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if m.contentDirty && m.ready {
		cmd = tea.Batch(cmd, m.refreshTranscript())
	}
	m.syncView()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	if cmd, ok := m.dock.Update(msg); ok {
		return cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case StreamStartMsg:
		return m.handleStreamStart(msg)

	case StreamTokenMsg:
		if msg.MessageID == m.streamingID {
			m.buffer.Write(msg.Token)
		}
		return nil

	case StreamTickMsg:
		return m.handleStreamTick()

	case StreamCompleteMsg:
		if msg.MessageID == m.streamingID {
			m.finishStream(msg.MessageID, msg.Err)
		}
		return nil

	case spinner.TickMsg:
		if !m.Streaming() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		return nil

	case ConfigErrorMsg:
		m.log.Warn().Err(msg.Err).Msg("config reload rejected")
		m.conv.AddSystemMessage("Config not reloaded: " + msg.Err.Error())
		m.contentDirty = true
		return nil
	}
	return nil
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) handleResize(msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.layout()
	return nil
}

// layout pushes the frame geometry into the dock and the components. A width
// change re-renders the transcript.
func (m *Model) layout() {
	m.dock.Resize(float64(m.frameRows()), m.width)
	m.vp.SetSize(m.width, m.listRows())
	m.status.SetWidth(m.width)
	m.panel.Width = m.width

	if w := m.vp.ContentWidth(); w != m.list.Width {
		m.list.SetWidth(w)
		m.contentDirty = true
	}
}

// frameRows is the height available to the list and everything docked
// under it.
func (m *Model) frameRows() int {
	rows := m.height
	if m.showHUD {
		rows -= hudRows
	}
	if rows < 0 {
		return 0
	}
	return rows
}

// Rows of each docked part for the current frame.
func (m *Model) gapRows() int      { return roundRows(m.dock.Coordinator().Layout().FixedGap) }
func (m *Model) safeRows() int     { return roundRows(m.dock.Coordinator().Layout().SafeAreaBottom) }
func (m *Model) composerRows() int { return roundRows(m.dock.Height()) }
func (m *Model) keyboardRows() int { return roundRows(m.dock.KeyboardHeight()) }

// listRows fills whatever the docked parts leave of the frame.
func (m *Model) listRows() int {
	rows := m.frameRows() - m.gapRows() - m.composerRows() - m.keyboardRows() - m.safeRows()
	if rows < 0 {
		return 0
	}
	return rows
}

func roundRows(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Round(v))
}

// refreshTranscript re-renders the messages and reports the new content
// height to the dock.
func (m *Model) refreshTranscript() tea.Cmd {
	m.contentDirty = false
	lines := m.vp.SetContent(m.list.View(m.conv.Messages))
	return m.dock.ContentChanged(float64(lines))
}

// syncView copies the dock's frame state into the components.
func (m *Model) syncView() {
	if !m.ready {
		return
	}
	coord := m.dock.Coordinator()

	m.vp.SetSize(m.width, m.listRows())
	m.vp.SetOffset(coord.Offset())
	m.vp.SetNewContent(coord.NewContentCount())

	m.panel.Accessory = m.accessory
	m.panel.External = m.external

	gen, _ := m.dock.Synchronizer().Active()
	stats := m.dock.Stats()
	var degraded, duplicates int
	if m.observer != nil {
		s := m.observer.Stats()
		degraded, duplicates = s.Degraded, s.Duplicates
	}
	m.status.SetStatus(components.SyncStatus{
		Phase:          coord.Phase(),
		Progress:       m.dock.Progress().Progress(),
		Generation:     gen,
		KeyboardHeight: m.dock.KeyboardHeight(),
		ComposerHeight: m.dock.Height(),
		BottomInset:    coord.BottomInset(),
		Offset:         coord.Offset(),
		MaxOffset:      coord.MaxOffset(),
		Pinned:         coord.AtBottom(),
		Stale:          stats.Stale,
		Degraded:       degraded,
		Duplicates:     duplicates,
		Streaming:      m.Streaming(),
		Focused:        m.dock.Composer().Focused(),
	})
	m.status.Spinner = m.spinner.View()
}

// =============================================================================
// INPUT
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	comp := m.dock.Composer()
	if comp.Focused() {
		switch {
		case key.Matches(msg, m.keys.Accessory):
			m.accessory = !m.accessory
			if m.kb != nil {
				m.kb.SetAccessory(m.accessory)
			}
			return nil
		case key.Matches(msg, m.keys.External):
			m.external = !m.external
			if m.kb != nil {
				m.kb.AttachExternal(m.external)
			}
			return nil
		case key.Matches(msg, m.keys.Dismiss):
			comp.Blur()
			return nil
		}
		return comp.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.dock.ScrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.dock.ScrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.dock.ScrollBy(-m.pageRows())
	case key.Matches(msg, m.keys.PageDown):
		m.dock.ScrollBy(m.pageRows())
	case key.Matches(msg, m.keys.Home):
		m.dock.Coordinator().ScrollToTop()
	case key.Matches(msg, m.keys.End):
		m.dock.JumpToLatest()
	case key.Matches(msg, m.keys.Bottom):
		return m.dock.ScrollToBottom()
	case key.Matches(msg, m.keys.Focus):
		return comp.Focus()
	case key.Matches(msg, m.keys.HUD):
		m.showHUD = !m.showHUD
		m.layout()
	case key.Matches(msg, m.keys.Cancel):
		m.responder.Cancel()
	case key.Matches(msg, m.keys.Clear):
		if !m.Streaming() {
			m.conv.ClearHistory()
			m.list.Forget()
			m.contentDirty = true
		}
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.cfg.UI.MouseWheel {
		return nil
	}
	switch msg.Type {
	case tea.MouseWheelUp:
		m.dock.ScrollBy(-m.cfg.Scroll.WheelStep)
	case tea.MouseWheelDown:
		m.dock.ScrollBy(m.cfg.Scroll.WheelStep)
	}
	return nil
}

func (m *Model) pageRows() float64 {
	rows := m.listRows() - 1
	if rows < 1 {
		rows = 1
	}
	return float64(rows)
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.Close()
	return tea.Quit
}

// =============================================================================
// STREAMING
// =============================================================================

func (m *Model) handleStreamStart(msg StreamStartMsg) tea.Cmd {
	if msg.MessageID != m.streamingID {
		return nil
	}
	cmds := []tea.Cmd{m.spinner.Tick}
	if !m.streamTicking {
		m.streamTicking = true
		cmds = append(cmds, streamTickCmd(m.buffer.Interval()))
	}
	return tea.Batch(cmds...)
}

// handleStreamTick moves due tokens into the transcript. Rendering happens
// at most once per tick however many tokens arrived.
func (m *Model) handleStreamTick() tea.Cmd {
	if !m.Streaming() {
		m.streamTicking = false
		return nil
	}
	if content, ok := m.buffer.Flush(); ok {
		m.conv.AppendTo(m.streamingID, content)
		m.contentDirty = true
	}
	return streamTickCmd(m.buffer.Interval())
}

// finishStream flushes the rest of a reply and finalizes it.
func (m *Model) finishStream(id string, err error) {
	if content, ok := m.buffer.ForceFlush(); ok {
		m.conv.AppendTo(id, content)
	}
	switch {
	case errors.Is(err, context.Canceled):
		m.conv.AppendTo(id, "\n\n_(cancelled)_")
	case err != nil:
		m.log.Warn().Err(err).Str("id", id).Msg("reply failed")
	}
	m.conv.Finalize(id)
	m.streamingID = ""
	m.contentDirty = true
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

// applyConfig pushes reloaded tunables into the running screen.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.cfg = cfg
	m.dock.Reconfigure(cfg.Layout.ScrollLayout(), cfg.Layout.NearBottomThreshold,
		cfg.Scroll.SmoothScroll(), cfg.Composer.Bounds())
	if m.observer != nil {
		m.observer.SetFallback(cfg.Keyboard.Fallback())
	}
	if m.kb != nil {
		m.kb.Reconfigure(cfg.Keyboard.SoftKeyboard())
	}
	m.buffer.SetBatchSize(cfg.Stream.BatchSize)
	m.buffer.SetMaxFPS(cfg.Stream.MaxFPS)
	m.responder.SetRate(cfg.Stream.TokensPerSecond, cfg.Stream.Burst)
	m.panel.AccessoryRows = roundRows(cfg.Keyboard.AccessoryHeight)
	m.showHUD = cfg.UI.ShowHUD

	if cfg.UI.Markdown != m.list.Markdown {
		m.list.SetMarkdown(cfg.UI.Markdown)
		m.contentDirty = true
	}
	if m.ready {
		m.layout()
	}
	m.log.Info().Msg("config reloaded")
}
