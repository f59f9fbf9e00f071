// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/glide/internal/keyboard"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[layout]
fixed_gap = 2

[keyboard]
height = 12
curve = "ease-out"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Layout.FixedGap)
	assert.Equal(t, 1.0, cfg.Layout.SafeAreaBottom)
	assert.Equal(t, 12.0, cfg.Keyboard.Height)
	assert.Equal(t, keyboard.CurveEaseOut.Code(), cfg.Keyboard.SoftKeyboard().CurveCode)
	assert.Equal(t, 8.0, cfg.Composer.MaxHeight)
}

func TestLoad_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[layout]\nfixed_gapp = 2\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout.fixed_gapp")
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[layout\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GLIDE_LAYOUT_FIXED_GAP", "4")
	t.Setenv("GLIDE_KEYBOARD_FRAME_RATE", "120")
	t.Setenv("GLIDE_UI_SHOW_HUD", "false")
	t.Setenv("GLIDE_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.Layout.FixedGap)
	assert.Equal(t, 120, cfg.Keyboard.FrameRate)
	assert.False(t, cfg.UI.ShowHUD)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3.0, cfg.Layout.NearBottomThreshold)
}

func TestLoad_EnvOverrideInvalid(t *testing.T) {
	t.Setenv("GLIDE_KEYBOARD_FRAME_RATE", "fast")

	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidate_CollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Composer.MaxHeight = 1
	cfg.Keyboard.Curve = "wobbly"
	cfg.Keyboard.FrameRate = 0
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, len(verrs))
	for i, v := range verrs {
		fields[i] = v.Field
	}
	assert.ElementsMatch(t, []string{
		"composer.max_height",
		"keyboard.curve",
		"keyboard.frame_rate",
		"log.level",
	}, fields)
}

func TestValidate_MinHeightMustFitALine(t *testing.T) {
	cfg := Default()
	cfg.Composer.MinHeight = 2

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "composer.min_height")
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Keyboard.AccessoryHeight = 3
	cfg.Stream.TokensPerSecond = 12.5

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestComponentSettings(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1.0, cfg.Layout.ScrollLayout().FixedGap)
	assert.Equal(t, 3.0, cfg.Composer.Bounds().MinHeight)
	assert.Equal(t, 180*time.Millisecond, cfg.Scroll.SmoothScroll())

	fb := cfg.Keyboard.Fallback()
	assert.Equal(t, keyboard.FallbackDuration, fb.Duration)
	assert.Equal(t, keyboard.CurvePlatformKeyboard, fb.Curve)

	sk := cfg.Keyboard.SoftKeyboard()
	assert.Equal(t, 9.0, sk.Height)
	assert.Equal(t, 250*time.Millisecond, sk.Duration)
	assert.Equal(t, 7, sk.CurveCode)
}

func TestLogPath(t *testing.T) {
	cfg := Default()
	cfg.Log.Path = "/tmp/x.log"
	p, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.log", p)
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Save(Default(), path))

	changes := make(chan *Config, 4)
	w, err := NewWatcher(path, 20*time.Millisecond, func(c *Config) { changes <- c }, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	cfg := Default()
	cfg.Layout.FixedGap = 5
	require.NoError(t, Save(cfg, path))

	select {
	case got := <-changes:
		assert.Equal(t, 5.0, got.Layout.FixedGap)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not picked up")
	}
}

func TestWatcher_ReportsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Save(Default(), path))

	errs := make(chan error, 4)
	w, err := NewWatcher(path, 20*time.Millisecond, func(*Config) {}, func(err error) { errs <- err })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	writeFile(t, path, "[keyboard]\nframe_rate = 0\n")

	select {
	case err := <-errs:
		assert.Contains(t, err.Error(), "keyboard.frame_rate")
	case <-time.After(5 * time.Second):
		t.Fatal("invalid config was not reported")
	}
}
