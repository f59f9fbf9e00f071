// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"regexp"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func TestColors_AreHex(t *testing.T) {
	colors := map[string]lipgloss.AdaptiveColor{
		"Purple": Purple, "Cyan": Cyan, "Emerald": Emerald, "SurfaceDim": SurfaceDim,
		"Overlay": Overlay, "TextPrimary": TextPrimary, "TextMuted": TextMuted,
		"UserBubbleFg": UserBubbleFg, "AssistantBubbleFg": AssistantBubbleFg,
	}
	for name, c := range colors {
		assert.Regexp(t, hexColor, c.Light, name)
		assert.Regexp(t, hexColor, c.Dark, name)
	}
}

func TestNewThemeWithProfile(t *testing.T) {
	th := NewThemeWithProfile(termenv.TrueColor, true)
	assert.True(t, th.HasTrueColor)
	assert.True(t, th.IsDark)
	assert.True(t, th.Unicode())

	ascii := NewThemeWithProfile(termenv.Ascii, false)
	assert.False(t, ascii.HasTrueColor)
	assert.False(t, ascii.Unicode())
}

func TestTheme_ComposerChrome(t *testing.T) {
	th := NewThemeWithProfile(termenv.Ascii, true)
	// The composer draws one border row above and one below the text.
	assert.Equal(t, 2, th.Composer.GetVerticalFrameSize())
	assert.Equal(t, 2, th.ComposerFocused.GetVerticalFrameSize())
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		width   int
		percent float64
		want    string
	}{
		{10, 0, "----------"},
		{10, 100, "##########"},
		{10, 50, "#####-----"},
		{4, 150, "####"},
		{4, -5, "----"},
		{0, 50, ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, RenderProgressBar(tc.width, tc.percent))
	}
	assert.Len(t, RenderProgressBar(10, 33), 10)
}

func TestSpinnerConfig_Duration(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, LineSpinner.Duration())
	assert.Equal(t, time.Second, SpinnerConfig{}.Duration())
}
