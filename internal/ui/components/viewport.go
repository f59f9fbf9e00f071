// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/glide/internal/ui/styles"
)

// scrollbarWidth is the scroll bar column plus its spacer.
const scrollbarWidth = 2

// =============================================================================
// CHAT VIEWPORT COMPONENT - Scrollable message list with indicators
// =============================================================================

// ChatViewport draws the message list at an offset decided elsewhere. It
// never scrolls on its own.
type ChatViewport struct {
	viewport   viewport.Model
	scrollbar  *ScrollBar
	theme      *styles.Theme
	width      int
	height     int
	newContent int
}

// NewChatViewport creates a new ChatViewport.
func NewChatViewport(theme *styles.Theme) *ChatViewport {
	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()
	vp.MouseWheelEnabled = false

	return &ChatViewport{
		viewport:  vp,
		scrollbar: NewScrollBar(theme),
		theme:     theme,
		width:     80,
		height:    20,
	}
}

// SetSize sets the outer width and the number of visible rows.
func (cv *ChatViewport) SetSize(width, height int) {
	if height < 0 {
		height = 0
	}
	cv.width = width
	cv.height = height
	cv.viewport.Width = cv.ContentWidth()
	cv.viewport.Height = height
	cv.scrollbar.SetHeight(height)
	cv.updateScrollbar()
}

// ContentWidth is the width available to message text.
func (cv *ChatViewport) ContentWidth() int {
	w := cv.width - scrollbarWidth
	if w < 1 {
		w = 1
	}
	return w
}

// SetContent replaces the rendered transcript and returns its line count.
func (cv *ChatViewport) SetContent(content string) int {
	cv.viewport.SetContent(content)
	cv.updateScrollbar()
	return cv.viewport.TotalLineCount()
}

// SetOffset scrolls to a fractional row offset, rounded to whole rows.
func (cv *ChatViewport) SetOffset(offset float64) {
	cv.viewport.SetYOffset(int(math.Round(offset)))
	cv.updateScrollbar()
}

// SetNewContent sets the number of unseen growth events below the fold.
func (cv *ChatViewport) SetNewContent(n int) { cv.newContent = n }

// TotalLines is the transcript height in rows.
func (cv *ChatViewport) TotalLines() int { return cv.viewport.TotalLineCount() }

// YOffset is the first visible row.
func (cv *ChatViewport) YOffset() int { return cv.viewport.YOffset }

// Height is the number of visible rows.
func (cv *ChatViewport) Height() int { return cv.height }

func (cv *ChatViewport) AtTop() bool    { return cv.viewport.AtTop() }
func (cv *ChatViewport) AtBottom() bool { return cv.viewport.AtBottom() }

func (cv *ChatViewport) updateScrollbar() {
	total := cv.viewport.TotalLineCount()
	cv.scrollbar.SetPosition(cv.viewport.ScrollPercent())
	if total > 0 {
		cv.scrollbar.SetContentRatio(float64(cv.height) / float64(total))
	} else {
		cv.scrollbar.SetContentRatio(1)
	}
}

// View renders exactly Height rows. Indicators replace the first and last
// visible rows rather than pushing content around.
func (cv *ChatViewport) View() string {
	if cv.height <= 0 {
		return ""
	}

	lines := strings.Split(cv.viewport.View(), "\n")
	lines = fitLines(lines, cv.height)

	if cv.height >= 3 {
		if !cv.AtTop() {
			lines[0] = cv.renderTopIndicator()
		}
		switch {
		case cv.newContent > 0:
			lines[cv.height-1] = cv.renderNewContentPill()
		case !cv.AtBottom():
			lines[cv.height-1] = cv.renderBottomIndicator()
		}
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		strings.Join(lines, "\n"),
		" ",
		cv.scrollbar.View(),
	)
}

// ==========================================================================
// SCROLL INDICATORS
// ==========================================================================

func (cv *ChatViewport) renderTopIndicator() string {
	arrow := cv.theme.ScrollArrow.Render("^")
	text := cv.theme.ScrollIndicator.UnsetAlign().Render("more above")
	return cv.place(arrow + " " + text + " " + arrow)
}

func (cv *ChatViewport) renderBottomIndicator() string {
	arrow := cv.theme.ScrollArrow.Render("v")
	pos := fmt.Sprintf("[%d/%d]", cv.viewport.YOffset+1, cv.maxYOffset()+1)
	text := cv.theme.ScrollIndicator.UnsetAlign().Render(pos + " end for latest")
	return cv.place(arrow + " " + text + " " + arrow)
}

func (cv *ChatViewport) renderNewContentPill() string {
	label := "new messages below"
	if cv.newContent == 1 {
		label = "new message below"
	}
	pill := cv.theme.NewContentPill.Render("v " + label)
	return cv.place(pill)
}

func (cv *ChatViewport) place(s string) string {
	w := cv.ContentWidth()
	return lipgloss.NewStyle().MaxWidth(w).Render(lipgloss.PlaceHorizontal(w, lipgloss.Center, s))
}

func (cv *ChatViewport) maxYOffset() int {
	m := cv.viewport.TotalLineCount() - cv.height
	if m < 0 {
		return 0
	}
	return m
}

// fitLines pads or truncates to exactly n lines.
func fitLines(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}

// =============================================================================
// SCROLL BAR COMPONENT
// =============================================================================

// ScrollBar represents a vertical scroll bar.
type ScrollBar struct {
	Height       int
	ScrollPos    float64 // 0.0 to 1.0
	ContentRatio float64 // visible / total
	theme        *styles.Theme
}

// NewScrollBar creates a new ScrollBar.
func NewScrollBar(theme *styles.Theme) *ScrollBar {
	return &ScrollBar{
		Height:       20,
		ContentRatio: 1.0,
		theme:        theme,
	}
}

// SetHeight sets the scroll bar height.
func (sb *ScrollBar) SetHeight(height int) {
	sb.Height = height
}

// SetPosition sets the scroll position (0.0 to 1.0).
func (sb *ScrollBar) SetPosition(pos float64) {
	sb.ScrollPos = math.Min(math.Max(pos, 0), 1)
}

// SetContentRatio sets the visible/total content ratio.
func (sb *ScrollBar) SetContentRatio(ratio float64) {
	sb.ContentRatio = math.Min(math.Max(ratio, 0.1), 1)
}

// Thumb returns the first row and size of the thumb.
func (sb *ScrollBar) Thumb() (pos, size int) {
	size = int(float64(sb.Height) * sb.ContentRatio)
	if size < 1 {
		size = 1
	}
	if size > sb.Height {
		size = sb.Height
	}
	track := sb.Height - size
	pos = int(math.Round(float64(track) * sb.ScrollPos))
	if pos > track {
		pos = track
	}
	return pos, size
}

// View renders the scroll bar.
func (sb *ScrollBar) View() string {
	if sb.Height <= 0 {
		return ""
	}
	trackStyle := lipgloss.NewStyle().Foreground(styles.Overlay)
	if sb.ContentRatio >= 1.0 {
		return trackStyle.Render(strings.TrimSuffix(strings.Repeat("|\n", sb.Height), "\n"))
	}

	thumbStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	pos, size := sb.Thumb()

	var result strings.Builder
	for i := 0; i < sb.Height; i++ {
		if i >= pos && i < pos+size {
			result.WriteString(thumbStyle.Render("#"))
		} else {
			result.WriteString(trackStyle.Render("|"))
		}
		if i < sb.Height-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
