// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Streaming defaults.
const (
	DefaultBatchSize = 15
	DefaultMaxFPS    = 30
)

// =============================================================================
// STREAMING BUFFER
// =============================================================================

// StreamingBuffer batches streamed tokens so the transcript is re-measured
// at a capped rate instead of once per token. Content is flushed when either
// batchSize tokens are waiting or 1/maxFPS has passed since the last flush.
//
// Thread-safety: Write is called from the responder goroutine, Flush from
// the UI loop.
type StreamingBuffer struct {
	mu         sync.Mutex
	buffer     strings.Builder
	tokenCount int
	lastFlush  time.Time
	now        func() time.Time

	batchSize int
	maxFPS    int
	interval  time.Duration
}

// NewStreamingBuffer creates a buffer. Out of range values fall back to the
// defaults. now may be nil.
func NewStreamingBuffer(batchSize, maxFPS int, now func() time.Time) *StreamingBuffer {
	if now == nil {
		now = time.Now
	}
	sb := &StreamingBuffer{
		batchSize: DefaultBatchSize,
		maxFPS:    DefaultMaxFPS,
		interval:  time.Second / DefaultMaxFPS,
		now:       now,
	}
	sb.SetBatchSize(batchSize)
	sb.SetMaxFPS(maxFPS)
	sb.lastFlush = now()
	return sb
}

// Write adds a token to the buffer.
func (sb *StreamingBuffer) Write(token string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	sb.buffer.WriteString(token)
	sb.tokenCount++
}

// Flush returns the buffered content if a flush is due.
func (sb *StreamingBuffer) Flush() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.shouldFlushLocked() {
		return "", false
	}
	return sb.takeLocked(), true
}

// ForceFlush returns whatever is buffered, due or not.
func (sb *StreamingBuffer) ForceFlush() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.buffer.Len() == 0 {
		return "", false
	}
	return sb.takeLocked(), true
}

// ShouldFlush reports whether Flush would return content.
func (sb *StreamingBuffer) ShouldFlush() bool {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.shouldFlushLocked()
}

func (sb *StreamingBuffer) shouldFlushLocked() bool {
	if sb.buffer.Len() == 0 {
		return false
	}
	if sb.tokenCount >= sb.batchSize {
		return true
	}
	return sb.now().Sub(sb.lastFlush) >= sb.interval
}

func (sb *StreamingBuffer) takeLocked() string {
	content := sb.buffer.String()
	sb.buffer.Reset()
	sb.tokenCount = 0
	sb.lastFlush = sb.now()
	return content
}

// Reset drops buffered content, e.g. when a stream is cancelled.
func (sb *StreamingBuffer) Reset() {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	sb.buffer.Reset()
	sb.tokenCount = 0
	sb.lastFlush = sb.now()
}

// Pending returns the number of tokens waiting to be flushed.
func (sb *StreamingBuffer) Pending() int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.tokenCount
}

// Config returns the batch size, frame cap and flush interval.
func (sb *StreamingBuffer) Config() (batchSize, maxFPS int, interval time.Duration) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.batchSize, sb.maxFPS, sb.interval
}

// Interval is the minimum time between flushes.
func (sb *StreamingBuffer) Interval() time.Duration {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.interval
}

// SetBatchSize updates the batch size threshold. Non-positive values are
// ignored.
func (sb *StreamingBuffer) SetBatchSize(size int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if size > 0 {
		sb.batchSize = size
	}
}

// SetMaxFPS updates the flush rate cap. Values outside 1..60 are ignored.
func (sb *StreamingBuffer) SetMaxFPS(fps int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if fps > 0 && fps <= 60 {
		sb.maxFPS = fps
		sb.interval = time.Second / time.Duration(fps)
	}
}

// =============================================================================
// STREAMING TICK COMMAND
// =============================================================================

// streamTickCmd schedules the next buffer flush check.
func streamTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return StreamTickMsg{Time: t}
	})
}
