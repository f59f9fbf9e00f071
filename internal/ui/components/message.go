// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/glide/internal/logger"
	"github.com/jeranaias/glide/internal/model"
	"github.com/jeranaias/glide/internal/ui/styles"
	"github.com/jeranaias/glide/internal/util"
)

// bubbleFrame is the left border plus padding of a message bubble.
const bubbleFrame = 2

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders a single transcript entry.
type MessageBubble struct {
	Message *model.Message
	Width   int
	theme   *styles.Theme
	md      *glamour.TermRenderer
}

// NewMessageBubble creates a bubble. md may be nil for plain text.
func NewMessageBubble(msg *model.Message, width int, theme *styles.Theme, md *glamour.TermRenderer) *MessageBubble {
	return &MessageBubble{Message: msg, Width: width, theme: theme, md: md}
}

// View renders the role label and the wrapped body.
func (b *MessageBubble) View() string {
	style := b.bubbleStyle()
	body := b.body()
	if b.Message.IsStreaming {
		body += b.theme.StreamingCursor.Render(styles.TypingCursor[0])
	}
	label := b.theme.RoleLabel.Render(b.Message.Role.DisplayName())
	return label + "\n" + style.Render(body)
}

func (b *MessageBubble) bubbleStyle() lipgloss.Style {
	switch b.Message.Role {
	case model.RoleUser:
		return b.theme.UserBubble
	case model.RoleAssistant:
		return b.theme.AssistantBubble
	default:
		return b.theme.SystemBubble.PaddingLeft(bubbleFrame)
	}
}

func (b *MessageBubble) contentWidth() int {
	w := b.Width - bubbleFrame
	if w < 1 {
		w = 1
	}
	return w
}

func (b *MessageBubble) body() string {
	content := b.Message.GetDisplayContent()
	if content == "" {
		return "..."
	}
	width := b.contentWidth()

	// Markdown only once the text is final; partial fences reflow badly.
	if b.md != nil && b.Message.Role == model.RoleAssistant && !b.Message.IsStreaming {
		if out, err := b.md.Render(content); err == nil {
			out = strings.Trim(out, "\n")
			return lipgloss.NewStyle().MaxWidth(width).Render(out)
		}
	}
	return strings.Join(util.WrapLines(content, width), "\n")
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders the transcript. Finished messages are cached per width
// so a streaming reply only re-renders itself.
type MessageList struct {
	Width    int
	Markdown bool

	theme *styles.Theme
	md    *glamour.TermRenderer
	cache map[string]string
	ready bool
	log   *logger.Logger
}

// NewMessageList creates a list rendering at width.
func NewMessageList(theme *styles.Theme, width int, markdown bool, log *logger.Logger) *MessageList {
	ml := &MessageList{
		Markdown: markdown,
		theme:    theme,
		cache:    make(map[string]string),
		log:      logger.OrNop(log).Component("transcript"),
	}
	ml.SetWidth(width)
	return ml
}

// SetWidth changes the wrap width and drops the cache.
func (ml *MessageList) SetWidth(width int) {
	if width == ml.Width && ml.ready {
		return
	}
	ml.Width = width
	ml.ready = true
	ml.rebuild()
}

func (ml *MessageList) rebuild() {
	ml.cache = make(map[string]string)
	ml.md = nil
	if !ml.Markdown {
		return
	}

	style := "dark"
	switch {
	case ml.theme.ColorProfile == termenv.Ascii:
		style = "notty"
	case !ml.theme.IsDark:
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(ml.Width-bubbleFrame),
	)
	if err != nil {
		ml.log.Warn().Err(err).Msg("markdown renderer unavailable, using plain text")
		return
	}
	ml.md = r
}

// SetMarkdown switches markdown rendering on or off.
func (ml *MessageList) SetMarkdown(on bool) {
	if on == ml.Markdown {
		return
	}
	ml.Markdown = on
	ml.rebuild()
}

// View renders all messages separated by a blank line.
func (ml *MessageList) View(messages []*model.Message) string {
	if len(messages) == 0 {
		return ml.theme.ScrollIndicator.Width(ml.Width).Render("No messages yet. Focus the composer to start.")
	}

	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		if !msg.IsStreaming {
			if cached, ok := ml.cache[msg.ID]; ok {
				parts = append(parts, cached)
				continue
			}
		}
		out := NewMessageBubble(msg, ml.Width, ml.theme, ml.md).View()
		if !msg.IsStreaming {
			ml.cache[msg.ID] = out
		}
		parts = append(parts, out)
	}
	return strings.Join(parts, "\n\n")
}

// Forget drops every cached rendering, e.g. after the history was cleared.
func (ml *MessageList) Forget() {
	ml.cache = make(map[string]string)
}
