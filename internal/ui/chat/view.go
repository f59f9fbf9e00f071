// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/jeranaias/glide/internal/ui/components"
)

// View implements tea.Model. Top to bottom: HUD, message list, gap,
// composer, keyboard, safe area. Every section is cut to its row count so
// the total always equals the terminal height.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	var sections []string
	add := func(s string, rows int) {
		if rows > 0 {
			sections = append(sections, components.FitHeight(s, rows))
		}
	}

	if m.showHUD {
		add(m.status.View(), hudRows)
	}
	add(m.vp.View(), m.listRows())
	add("", m.gapRows())
	add(m.renderComposer(), m.composerRows())
	add(m.panel.View(m.keyboardRows()), m.keyboardRows())
	add("", m.safeRows())

	return strings.Join(sections, "\n")
}

func (m *Model) renderComposer() string {
	comp := m.dock.Composer()
	style := m.theme.Composer
	if comp.Focused() {
		style = m.theme.ComposerFocused
	}
	return style.Width(m.width).Render(comp.View())
}
