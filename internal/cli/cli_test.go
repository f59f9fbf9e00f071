// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/glide/internal/config"
)

// execute runs the root command with args against a config file in a temp
// directory and returns stdout.
func execute(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	ForceColorsEnabled(false)

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", configPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func tempConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "glide", "config.toml")
}

// =============================================================================
// CONFIG COMMANDS
// =============================================================================

func TestConfigInit(t *testing.T) {
	path := tempConfig(t)

	out, err := execute(t, path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "[OK]")
	assert.FileExists(t, path)

	_, err = execute(t, path, "config", "init")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, GetExitCode(err))

	_, err = execute(t, path, "config", "init", "--force")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Layout, cfg.Layout)
}

func TestConfigShow(t *testing.T) {
	path := tempConfig(t)

	out, err := execute(t, path, "config", "show")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# "+path+"\n"), out)
	assert.Contains(t, out, "[layout]")
	assert.Contains(t, out, "near_bottom_threshold")
}

func TestConfigShow_InvalidFile(t *testing.T) {
	path := tempConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[layout]\nbogus = 1\n"), 0o644))

	_, err := execute(t, path, "config", "show")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, GetExitCode(err))
	assert.Contains(t, err.Error(), "bogus")
}

func TestConfigShow_Highlighted(t *testing.T) {
	cfg := config.Default()

	var plain, colored bytes.Buffer
	require.NoError(t, configShow(&plain, cfg, "config.toml", false))
	require.NoError(t, configShow(&colored, cfg, "config.toml", true))

	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")
}

// =============================================================================
// REPLAY COMMAND
// =============================================================================

func TestReplay_List(t *testing.T) {
	out, err := execute(t, tempConfig(t), "replay", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "Built-in scenarios")
	assert.Contains(t, out, "pinned-open")
}

func TestReplay_Builtin(t *testing.T) {
	out, err := execute(t, tempConfig(t), "replay", "pinned-open", "--every", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "scenario pinned-open")
	assert.Contains(t, out, "inset")
}

func TestReplay_NotFound(t *testing.T) {
	_, err := execute(t, tempConfig(t), "replay", "no-such-scenario")
	require.Error(t, err)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))
}

func TestReplay_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: [[["), 0o644))

	_, err := execute(t, tempConfig(t), "replay", path)
	require.Error(t, err)

	var ce *CommandError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ExitGeneralError, GetExitCode(err))
}

func TestUnknownCommand(t *testing.T) {
	_, err := execute(t, tempConfig(t), "frobnicate")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

// =============================================================================
// ERRORS
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"invariant", &InvariantError{Scenario: "x", Violations: 2}, ExitInvariantError},
		{"wrapped not found", fmt.Errorf("replay: %w", &NotFoundError{Resource: "scenario", ID: "x"}), ExitNotFoundError},
		{"config", &ConfigError{Path: "c.toml", Err: errors.New("bad")}, ExitConfigError},
		{"validation", config.ValidateErrors{{Field: "layout.fixed_gap", Message: "negative"}}, ExitConfigError},
		{"tty", &TTYRequiredError{Operation: "run"}, ExitTerminalError},
		{"size", &TerminalTooSmallError{Width: 10, Height: 5, MinWidth: 40, MinHeight: 20}, ExitTerminalError},
		{"usage", errors.New(`unknown flag: --nope`), ExitUsageError},
		{"other", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "scenario x: 2 invariant violation(s)",
		(&InvariantError{Scenario: "x", Violations: 2}).Error())
	assert.Equal(t, "terminal is 10x5, need at least 40x20",
		(&TerminalTooSmallError{Width: 10, Height: 5, MinWidth: 40, MinHeight: 20}).Error())
	assert.Equal(t, "not a terminal; cannot run", (&TTYRequiredError{Operation: "run"}).Error())

	inner := errors.New("disk full")
	ce := &CommandError{Command: "run", Action: "open log", Reason: "glide.log", Err: inner}
	assert.ErrorIs(t, ce, inner)
	assert.Equal(t, "run open log failed: glide.log: disk full", ce.Error())
}

func TestDisplayError(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, nil)
	assert.Empty(t, buf.String())

	DisplayError(&buf, errors.New("boom"))
	assert.Contains(t, buf.String(), "[ERROR]")
	assert.True(t, strings.HasSuffix(buf.String(), " boom\n"))
}

func TestVersionTemplate(t *testing.T) {
	assert.Equal(t, "glide "+Version+"\n", versionTemplate())
}
