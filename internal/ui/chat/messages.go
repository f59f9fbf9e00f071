// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/jeranaias/glide/internal/config"
)

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// StreamStartMsg signals that the responder began a reply.
type StreamStartMsg struct {
	MessageID string
	StartTime time.Time
}

// StreamTokenMsg delivers one token of a reply.
type StreamTokenMsg struct {
	MessageID string
	Token     string
}

// StreamCompleteMsg signals the end of a reply. Err is set when the stream
// was cut short.
type StreamCompleteMsg struct {
	MessageID string
	Err       error
}

// StreamTickMsg drives buffer flushes while a reply streams.
type StreamTickMsg struct {
	Time time.Time
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a configuration that changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// ConfigErrorMsg reports a configuration file that failed to load.
type ConfigErrorMsg struct {
	Err error
}
