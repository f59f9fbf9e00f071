// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/glide/internal/scroll"
	"github.com/jeranaias/glide/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Synchronization HUD
// =============================================================================

// SyncStatus is the per-frame snapshot shown in the status bar.
type SyncStatus struct {
	Phase          scroll.Phase
	Progress       float64
	Generation     uint64
	KeyboardHeight float64
	ComposerHeight float64
	BottomInset    float64
	Offset         float64
	MaxOffset      float64
	Pinned         bool
	Stale          int
	Degraded       int
	Duplicates     int
	Streaming      bool
	Focused        bool
}

// StatusBar renders the sync HUD along the top of the screen.
type StatusBar struct {
	Status        SyncStatus
	Width         int
	ShowShortcuts bool
	Spinner       string
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus replaces the snapshot.
func (s *StatusBar) SetStatus(st SyncStatus) {
	s.Status = st
}

// View renders the status bar as a single row.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	if s.Width < 100 {
		return s.viewMedium()
	}
	return s.viewWide()
}

// viewNarrow: phase kb/inset pin
func (s *StatusBar) viewNarrow() string {
	parts := []string{
		s.renderPhase(true),
		s.value(num(s.Status.KeyboardHeight)) + s.label("/") + s.value(num(s.Status.BottomInset)),
		s.renderPin(),
	}
	return s.frame(strings.Join(parts, " "))
}

// viewMedium: phase [bar] | kb | inset | offset/max | pin
func (s *StatusBar) viewMedium() string {
	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	parts := []string{
		s.renderPhase(false) + " " + s.renderProgress(8),
		s.pair("kb", num(s.Status.KeyboardHeight)),
		s.pair("inset", num(s.Status.BottomInset)),
		s.pair("off", num(s.Status.Offset)+"/"+num(s.Status.MaxOffset)),
		s.renderPin(),
	}
	return s.frame(strings.Join(parts, sep))
}

// viewWide adds composer height, counters and shortcuts.
func (s *StatusBar) viewWide() string {
	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	left := []string{
		s.renderPhase(false) + " " + s.renderProgress(12),
		s.pair("gen", strconv.FormatUint(s.Status.Generation, 10)),
		s.pair("kb", num(s.Status.KeyboardHeight)),
		s.pair("composer", num(s.Status.ComposerHeight)),
		s.pair("inset", num(s.Status.BottomInset)),
		s.pair("off", num(s.Status.Offset)+"/"+num(s.Status.MaxOffset)),
		s.renderPin(),
	}
	if s.Status.Stale > 0 {
		left = append(left, s.theme.WarningStyle.Render(fmt.Sprintf("stale %d", s.Status.Stale)))
	}
	if s.Status.Degraded > 0 {
		left = append(left, s.theme.WarningStyle.Render(fmt.Sprintf("fallback %d", s.Status.Degraded)))
	}
	if s.Status.Duplicates > 0 {
		left = append(left, s.pair("dup", strconv.Itoa(s.Status.Duplicates)))
	}
	if s.Status.Streaming && s.Spinner != "" {
		left = append(left, s.theme.InfoStyle.Render(s.Spinner))
	}
	leftSection := strings.Join(left, sep)

	right := ""
	if s.ShowShortcuts {
		right = s.renderShortcuts()
	}

	spacing := s.Width - lipgloss.Width(leftSection) - lipgloss.Width(right) - 2
	if spacing < 1 {
		return s.frame(leftSection)
	}
	return s.frame(leftSection + strings.Repeat(" ", spacing) + right)
}

// ==========================================================================
// HELPER RENDER METHODS
// ==========================================================================

func (s *StatusBar) frame(content string) string {
	return s.theme.StatusBar.
		Width(s.Width).
		MaxWidth(s.Width).
		MaxHeight(1).
		Render(content)
}

func (s *StatusBar) label(v string) string { return s.theme.StatsLabel.Render(v) }
func (s *StatusBar) value(v string) string { return s.theme.StatsValue.Render(v) }

func (s *StatusBar) pair(label, value string) string {
	return s.label(label+" ") + s.value(value)
}

// renderPhase uses a distinct shape per phase alongside the color.
func (s *StatusBar) renderPhase(short bool) string {
	p := s.Status.Phase
	name := p.String()
	if short {
		name = name[:1]
	}
	switch {
	case p.InTransition():
		return s.theme.PhaseMoving.Render(styles.StatusIndicators.Pending + " " + name)
	case p == scroll.PhaseSettled:
		return s.theme.PhaseSettled.Render(styles.StatusIndicators.Success + " " + name)
	default:
		return s.theme.PhaseIdle.Render("- " + name)
	}
}

func (s *StatusBar) renderProgress(width int) string {
	bar := styles.RenderProgressBar(width, s.Status.Progress*100)
	return s.label("[") + lipgloss.NewStyle().Foreground(styles.Cyan).Render(bar) + s.label("]")
}

func (s *StatusBar) renderPin() string {
	if s.Status.Pinned {
		return lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true).Render("pinned")
	}
	return s.label("reading")
}

func (s *StatusBar) renderShortcuts() string {
	pairs := [][2]string{{"tab", "focus"}, {"end", "latest"}, {"?", "hud"}, {"q", "quit"}}
	if s.Status.Focused {
		pairs = [][2]string{{"enter", "send"}, {"ctrl+a", "accessory"}, {"esc", "dismiss"}}
	}
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, s.theme.ShortcutKey.Render(p[0])+" "+s.theme.ShortcutDesc.Render(p[1]))
	}
	return strings.Join(out, "  ")
}

// num formats a row count with at most one decimal.
func num(v float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(v, 'f', 1, 64), ".0")
}
