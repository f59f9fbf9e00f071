// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/jeranaias/glide/internal/composer"
	"github.com/jeranaias/glide/internal/keyboard"
	"github.com/jeranaias/glide/internal/logger"
	"github.com/jeranaias/glide/internal/scroll"
	"github.com/jeranaias/glide/internal/util"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GLIDE_"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete glide configuration. Heights are in
// terminal rows.
type Config struct {
	Layout   LayoutConfig   `toml:"layout" envPrefix:"LAYOUT_"`
	Composer ComposerConfig `toml:"composer" envPrefix:"COMPOSER_"`
	Keyboard KeyboardConfig `toml:"keyboard" envPrefix:"KEYBOARD_"`
	Scroll   ScrollConfig   `toml:"scroll" envPrefix:"SCROLL_"`
	Stream   StreamConfig   `toml:"stream" envPrefix:"STREAM_"`
	UI       UIConfig       `toml:"ui" envPrefix:"UI_"`
	Log      LogConfig      `toml:"log" envPrefix:"LOG_"`
}

// LayoutConfig holds the fixed parts of the bottom inset.
type LayoutConfig struct {
	FixedGap            float64 `toml:"fixed_gap" env:"FIXED_GAP"`
	SafeAreaBottom      float64 `toml:"safe_area_bottom" env:"SAFE_AREA_BOTTOM"`
	NearBottomThreshold float64 `toml:"near_bottom_threshold" env:"NEAR_BOTTOM_THRESHOLD"`
}

// ComposerConfig holds the composer bounds.
type ComposerConfig struct {
	MinHeight   float64 `toml:"min_height" env:"MIN_HEIGHT"`
	MaxHeight   float64 `toml:"max_height" env:"MAX_HEIGHT"`
	LineHeight  float64 `toml:"line_height" env:"LINE_HEIGHT"`
	Chrome      float64 `toml:"chrome" env:"CHROME"`
	CharLimit   int     `toml:"char_limit" env:"CHAR_LIMIT"`
	Placeholder string  `toml:"placeholder" env:"PLACEHOLDER"`
}

// KeyboardConfig describes the simulated soft keyboard and the metadata used
// when the platform omits it.
type KeyboardConfig struct {
	Height             float64 `toml:"height" env:"HEIGHT"`
	AccessoryHeight    float64 `toml:"accessory_height" env:"ACCESSORY_HEIGHT"`
	DurationMs         int     `toml:"duration_ms" env:"DURATION_MS"`
	Curve              string  `toml:"curve" env:"CURVE"`
	FallbackDurationMs int     `toml:"fallback_duration_ms" env:"FALLBACK_DURATION_MS"`
	FallbackCurve      string  `toml:"fallback_curve" env:"FALLBACK_CURVE"`
	FrameRate          int     `toml:"frame_rate" env:"FRAME_RATE"`
	DropMetadataEvery  int     `toml:"drop_metadata_every" env:"DROP_METADATA_EVERY"`
	EchoFrameChange    bool    `toml:"echo_frame_change" env:"ECHO_FRAME_CHANGE"`
}

// ScrollConfig holds scrolling behaviour.
type ScrollConfig struct {
	SmoothScrollMs int     `toml:"smooth_scroll_ms" env:"SMOOTH_SCROLL_MS"`
	WheelStep      float64 `toml:"wheel_step" env:"WHEEL_STEP"`
}

// StreamConfig paces the simulated assistant stream.
type StreamConfig struct {
	TokensPerSecond float64 `toml:"tokens_per_second" env:"TOKENS_PER_SECOND"`
	Burst           int     `toml:"burst" env:"BURST"`
	BatchSize       int     `toml:"batch_size" env:"BATCH_SIZE"`
	MaxFPS          int     `toml:"max_fps" env:"MAX_FPS"`
}

// UIConfig holds presentation toggles.
type UIConfig struct {
	ShowHUD    bool `toml:"show_hud" env:"SHOW_HUD"`
	Markdown   bool `toml:"markdown" env:"MARKDOWN"`
	MouseWheel bool `toml:"mouse_wheel" env:"MOUSE_WHEEL"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Path  string `toml:"path" env:"PATH"`
	Level string `toml:"level" env:"LEVEL"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			FixedGap:            1,
			SafeAreaBottom:      1,
			NearBottomThreshold: 3,
		},
		Composer: ComposerConfig{
			MinHeight:   3,
			MaxHeight:   8,
			LineHeight:  1,
			Chrome:      2,
			CharLimit:   4096,
			Placeholder: "Message",
		},
		Keyboard: KeyboardConfig{
			Height:             9,
			AccessoryHeight:    2,
			DurationMs:         250,
			Curve:              keyboard.CurvePlatformKeyboard.String(),
			FallbackDurationMs: int(keyboard.FallbackDuration / time.Millisecond),
			FallbackCurve:      keyboard.FallbackCurve.String(),
			FrameRate:          60,
			EchoFrameChange:    true,
		},
		Scroll: ScrollConfig{
			SmoothScrollMs: 180,
			WheelStep:      3,
		},
		Stream: StreamConfig{
			TokensPerSecond: 40,
			Burst:           4,
			BatchSize:       15,
			MaxFPS:          30,
		},
		UI: UIConfig{
			ShowHUD:    true,
			Markdown:   true,
			MouseWheel: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the glide configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".glide"), nil
}

// DefaultPath returns the path to the TOML config file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the configured log file, defaulting to glide.log in the
// config directory.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "glide.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from path, or from DefaultPath when path is
// empty. A missing file yields the defaults. Environment overrides are
// applied last and the result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes the TOML file at path over cfg. Keys that are absent
// keep their current values.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnvOverrides applies GLIDE_* environment variables.
func (c *Config) ApplyEnvOverrides() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Encode renders cfg as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes cfg to path atomically.
func Save(cfg *Config, path string) error {
	data, err := cfg.Encode()
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(path, data, 0o644)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Layout.FixedGap < 0 {
		add("layout.fixed_gap", "must not be negative, got %v", c.Layout.FixedGap)
	}
	if c.Layout.SafeAreaBottom < 0 {
		add("layout.safe_area_bottom", "must not be negative, got %v", c.Layout.SafeAreaBottom)
	}
	if c.Layout.NearBottomThreshold <= 0 {
		add("layout.near_bottom_threshold", "must be positive, got %v", c.Layout.NearBottomThreshold)
	}

	if c.Composer.LineHeight <= 0 {
		add("composer.line_height", "must be positive, got %v", c.Composer.LineHeight)
	}
	if c.Composer.Chrome < 0 {
		add("composer.chrome", "must not be negative, got %v", c.Composer.Chrome)
	}
	if c.Composer.MinHeight < c.Composer.LineHeight+c.Composer.Chrome {
		add("composer.min_height", "must fit one line (%v), got %v",
			c.Composer.LineHeight+c.Composer.Chrome, c.Composer.MinHeight)
	}
	if c.Composer.MaxHeight < c.Composer.MinHeight {
		add("composer.max_height", "must be at least min_height (%v), got %v",
			c.Composer.MinHeight, c.Composer.MaxHeight)
	}
	if c.Composer.CharLimit <= 0 {
		add("composer.char_limit", "must be positive, got %d", c.Composer.CharLimit)
	}

	if c.Keyboard.Height <= 0 {
		add("keyboard.height", "must be positive, got %v", c.Keyboard.Height)
	}
	if c.Keyboard.AccessoryHeight < 0 {
		add("keyboard.accessory_height", "must not be negative, got %v", c.Keyboard.AccessoryHeight)
	}
	if c.Keyboard.DurationMs <= 0 {
		add("keyboard.duration_ms", "must be positive, got %d", c.Keyboard.DurationMs)
	}
	if _, err := keyboard.ParseCurve(c.Keyboard.Curve); err != nil {
		add("keyboard.curve", "%v", err)
	}
	if c.Keyboard.FallbackDurationMs <= 0 {
		add("keyboard.fallback_duration_ms", "must be positive, got %d", c.Keyboard.FallbackDurationMs)
	}
	if _, err := keyboard.ParseCurve(c.Keyboard.FallbackCurve); err != nil {
		add("keyboard.fallback_curve", "%v", err)
	}
	if c.Keyboard.FrameRate < 1 || c.Keyboard.FrameRate > 240 {
		add("keyboard.frame_rate", "must be between 1 and 240, got %d", c.Keyboard.FrameRate)
	}
	if c.Keyboard.DropMetadataEvery < 0 {
		add("keyboard.drop_metadata_every", "must not be negative, got %d", c.Keyboard.DropMetadataEvery)
	}

	if c.Scroll.SmoothScrollMs <= 0 {
		add("scroll.smooth_scroll_ms", "must be positive, got %d", c.Scroll.SmoothScrollMs)
	}
	if c.Scroll.WheelStep <= 0 {
		add("scroll.wheel_step", "must be positive, got %v", c.Scroll.WheelStep)
	}

	if c.Stream.TokensPerSecond <= 0 {
		add("stream.tokens_per_second", "must be positive, got %v", c.Stream.TokensPerSecond)
	}
	if c.Stream.Burst < 1 {
		add("stream.burst", "must be at least 1, got %d", c.Stream.Burst)
	}
	if c.Stream.BatchSize < 1 {
		add("stream.batch_size", "must be at least 1, got %d", c.Stream.BatchSize)
	}
	if c.Stream.MaxFPS < 1 || c.Stream.MaxFPS > 60 {
		add("stream.max_fps", "must be between 1 and 60, got %d", c.Stream.MaxFPS)
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		add("log.level", "%v", err)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// COMPONENT SETTINGS
// =============================================================================

// ScrollLayout returns the fixed inset contributions.
func (l LayoutConfig) ScrollLayout() scroll.Layout {
	return scroll.Layout{FixedGap: l.FixedGap, SafeAreaBottom: l.SafeAreaBottom}
}

// Bounds returns the composer height bounds.
func (c ComposerConfig) Bounds() composer.Bounds {
	return composer.Bounds{
		MinHeight:  c.MinHeight,
		MaxHeight:  c.MaxHeight,
		LineHeight: c.LineHeight,
		Chrome:     c.Chrome,
	}
}

// Fallback returns the metadata used for incomplete notifications.
func (k KeyboardConfig) Fallback() keyboard.Fallback {
	curve, err := keyboard.ParseCurve(k.FallbackCurve)
	if err != nil {
		curve = keyboard.FallbackCurve
	}
	return keyboard.Fallback{
		Duration: time.Duration(k.FallbackDurationMs) * time.Millisecond,
		Curve:    curve,
	}
}

// SoftKeyboard returns the options for the simulated platform keyboard.
func (k KeyboardConfig) SoftKeyboard() keyboard.SoftKeyboardOptions {
	curve, err := keyboard.ParseCurve(k.Curve)
	if err != nil {
		curve = keyboard.CurvePlatformKeyboard
	}
	return keyboard.SoftKeyboardOptions{
		Height:            k.Height,
		AccessoryHeight:   k.AccessoryHeight,
		Duration:          time.Duration(k.DurationMs) * time.Millisecond,
		CurveCode:         curve.Code(),
		DropMetadataEvery: k.DropMetadataEvery,
		EchoFrameChange:   k.EchoFrameChange,
	}
}

// SmoothScroll returns the animated scroll duration.
func (s ScrollConfig) SmoothScroll() time.Duration {
	return time.Duration(s.SmoothScrollMs) * time.Millisecond
}
