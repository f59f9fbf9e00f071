// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// TRANSCRIPT STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	SystemBubble    lipgloss.Style
	RoleLabel       lipgloss.Style
	StreamingCursor lipgloss.Style

	// ==========================================================================
	// SCROLL INDICATOR STYLES
	// ==========================================================================

	ScrollIndicator lipgloss.Style
	ScrollArrow     lipgloss.Style
	NewContentPill  lipgloss.Style

	// ==========================================================================
	// COMPOSER STYLES
	// ==========================================================================

	Composer        lipgloss.Style
	ComposerFocused lipgloss.Style
	InputPrompt     lipgloss.Style
	CharCount       lipgloss.Style

	// ==========================================================================
	// KEYBOARD PANEL STYLES
	// ==========================================================================

	KeyboardPanel lipgloss.Style
	Key           lipgloss.Style
	KeyAccent     lipgloss.Style
	AccessoryBar  lipgloss.Style

	// ==========================================================================
	// HUD STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatsLabel   lipgloss.Style
	StatsValue   lipgloss.Style
	PhaseIdle    lipgloss.Style
	PhaseMoving  lipgloss.Style
	PhaseSettled lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// ACCESSIBILITY: Status indicator styles with shapes and high contrast
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	return NewThemeWithProfile(termenv.ColorProfile(), termenv.HasDarkBackground())
}

// NewThemeWithProfile creates a theme for an explicit color profile.
func NewThemeWithProfile(profile termenv.Profile, isDark bool) *Theme {
	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

// Unicode reports whether the profile can draw anything beyond ASCII
// decoration.
func (t *Theme) Unicode() bool {
	return t.ColorProfile != termenv.Ascii
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Transcript
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(UserBubbleBorder).
		PaddingLeft(1)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(AssistantBubbleBorder).
		PaddingLeft(1)

	t.SystemBubble = lipgloss.NewStyle().
		Foreground(SystemBubbleFg).
		Italic(true)

	t.RoleLabel = lipgloss.NewStyle().
		Foreground(TextMuted).
		Bold(true)

	t.StreamingCursor = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	// Scroll indicators
	t.ScrollIndicator = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Align(lipgloss.Center)

	t.ScrollArrow = lipgloss.NewStyle().
		Foreground(Cyan)

	t.NewContentPill = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 1)

	// Composer
	t.Composer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderBottom(true).
		BorderForeground(Overlay)

	t.ComposerFocused = t.Composer.
		BorderForeground(FocusRing)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.CharCount = lipgloss.NewStyle().
		Foreground(TextMuted).
		Align(lipgloss.Right)

	// Keyboard panel
	t.KeyboardPanel = lipgloss.NewStyle().
		Background(SurfaceBright).
		Foreground(TextPrimary)

	t.Key = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(OverlayDim)

	t.KeyAccent = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true)

	t.AccessoryBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim)

	// HUD
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatsLabel = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatsValue = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.PhaseIdle = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.PhaseMoving = lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true)

	t.PhaseSettled = lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Accessibility
	t.SuccessStyle = lipgloss.NewStyle().Foreground(SuccessHighContrast).Bold(true)
	t.ErrorStyle = lipgloss.NewStyle().Foreground(ErrorHighContrast).Bold(true)
	t.WarningStyle = lipgloss.NewStyle().Foreground(WarningHighContrast).Bold(true)
	t.InfoStyle = lipgloss.NewStyle().Foreground(InfoHighContrast).Bold(true)
}
