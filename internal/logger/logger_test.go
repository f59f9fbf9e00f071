// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "tui", zerolog.DebugLevel)

	l.Component("motion").Debug().Msg("frame")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tui", entry["role"])
	assert.Equal(t, "motion", entry["component"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "tui", zerolog.InfoLevel)

	l.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Info().Msg("shown")
	assert.NotZero(t, buf.Len())
}

func TestNewFile_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "glide.log")

	l, closer, err := NewFile(path, "tui", "debug")
	require.NoError(t, err)
	l.Info().Msg("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestNewFile_BadLevel(t *testing.T) {
	_, _, err := NewFile(filepath.Join(t.TempDir(), "x.log"), "tui", "loud")
	assert.Error(t, err)
}

func TestParseLevel_EmptyIsInfo(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, lvl)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := Nop()
	assert.Same(t, l, OrNop(l))
}
