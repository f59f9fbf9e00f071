// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/glide/internal/ui/styles"
)

// =============================================================================
// KEYBOARD PANEL COMPONENT - On-screen keyboard drawn under the composer
// =============================================================================

var keyRows = [][]string{
	{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p"},
	{"a", "s", "d", "f", "g", "h", "j", "k", "l"},
	{"shift", "z", "x", "c", "v", "b", "n", "m", "del"},
	{"123", "space", "return"},
}

var accessoryItems = []string{"tab", "esc", "ctrl+a", "ctrl+e"}

// KeyboardPanel draws the simulated keyboard. Its layout is fixed; the
// animation only controls how many of its top rows are on screen.
type KeyboardPanel struct {
	Width         int
	AccessoryRows int
	Accessory     bool
	External      bool
	theme         *styles.Theme
}

// NewKeyboardPanel creates a new KeyboardPanel.
func NewKeyboardPanel(theme *styles.Theme) *KeyboardPanel {
	return &KeyboardPanel{Width: 80, theme: theme}
}

// View renders exactly rows rows, the top of the full panel first.
func (p *KeyboardPanel) View(rows int) string {
	if rows <= 0 {
		return ""
	}
	out := make([]string, rows)
	for i := range out {
		out[i] = p.row(i)
	}
	return strings.Join(out, "\n")
}

func (p *KeyboardPanel) row(i int) string {
	if p.Accessory && i < p.AccessoryRows {
		line := ""
		if i == 0 {
			line = p.renderAccessory()
		}
		return p.theme.AccessoryBar.Width(p.Width).MaxWidth(p.Width).MaxHeight(1).Render(line)
	}
	if p.Accessory {
		i -= p.AccessoryRows
	}

	line := ""
	if !p.External && i%2 == 1 && i/2 < len(keyRows) {
		line = p.renderKeys(keyRows[i/2])
	}
	return p.theme.KeyboardPanel.Width(p.Width).MaxWidth(p.Width).MaxHeight(1).Render(line)
}

func (p *KeyboardPanel) renderKeys(keys []string) string {
	rendered := make([]string, 0, len(keys))
	for _, k := range keys {
		style := p.theme.Key
		if k == "return" {
			style = p.theme.KeyAccent
		}
		if k == "space" {
			k = strings.Repeat(" ", 9)
		}
		rendered = append(rendered, style.Render(" "+k+" "))
	}
	return lipgloss.PlaceHorizontal(p.Width, lipgloss.Center, strings.Join(rendered, " "))
}

func (p *KeyboardPanel) renderAccessory() string {
	items := make([]string, 0, len(accessoryItems))
	for _, item := range accessoryItems {
		items = append(items, p.theme.ShortcutKey.Render(item))
	}
	return " " + strings.Join(items, "  ")
}

// =============================================================================
// LAYOUT HELPERS
// =============================================================================

// FitHeight pads or cuts s to exactly rows lines. Zero rows renders nothing.
func FitHeight(s string, rows int) string {
	if rows <= 0 {
		return ""
	}
	return strings.Join(fitLines(strings.Split(s, "\n"), rows), "\n")
}
