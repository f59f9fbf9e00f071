// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/jeranaias/glide/internal/logger"
)

// =============================================================================
// RESPONDER
// =============================================================================

// Responder streams canned assistant replies into the UI loop at a fixed
// token rate. Each reply runs on its own goroutine and reaches the loop only
// through send.
type Responder struct {
	limiter *rate.Limiter
	send    func(tea.Msg)
	log     *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewResponder creates a responder emitting tokensPerSecond tokens with the
// given burst.
func NewResponder(tokensPerSecond float64, burst int, send func(tea.Msg), log *logger.Logger) *Responder {
	if burst < 1 {
		burst = 1
	}
	if send == nil {
		send = func(tea.Msg) {}
	}
	return &Responder{
		limiter: rate.NewLimiter(rate.Limit(tokensPerSecond), burst),
		send:    send,
		log:     logger.OrNop(log).Component("responder"),
	}
}

// SetRate changes the pacing of running and future replies.
func (r *Responder) SetRate(tokensPerSecond float64, burst int) {
	if burst < 1 {
		burst = 1
	}
	r.limiter.SetLimit(rate.Limit(tokensPerSecond))
	r.limiter.SetBurst(burst)
}

// Start streams a reply to prompt as message id. A reply still running is
// cancelled first.
func (r *Responder) Start(ctx context.Context, id, prompt string) {
	r.Cancel()

	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()
		r.run(ctx, id, prompt)
	}()
}

func (r *Responder) run(ctx context.Context, id, prompt string) {
	r.send(StreamStartMsg{MessageID: id, StartTime: time.Now()})

	tokens := Tokenize(Reply(prompt))
	for i, tok := range tokens {
		if err := r.limiter.Wait(ctx); err != nil {
			r.log.Debug().Str("id", id).Int("sent", i).Int("total", len(tokens)).Msg("reply cancelled")
			r.send(StreamCompleteMsg{MessageID: id, Err: context.Cause(ctx)})
			return
		}
		r.send(StreamTokenMsg{MessageID: id, Token: tok})
	}
	r.send(StreamCompleteMsg{MessageID: id})
}

// Cancel stops the running reply, if any.
func (r *Responder) Cancel() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Wait blocks until every reply goroutine has returned.
func (r *Responder) Wait() {
	r.wg.Wait()
}

// =============================================================================
// REPLY TEXT
// =============================================================================

// Reply builds the canned answer to prompt.
func Reply(prompt string) string {
	quoted := strings.Join(strings.Fields(prompt), " ")
	if len([]rune(quoted)) > 60 {
		quoted = string([]rune(quoted)[:57]) + "..."
	}
	return fmt.Sprintf("Got it: **%s**\n\n"+
		"This reply streams at a fixed token rate. While it grows, the list stays pinned "+
		"to the bottom if you were reading the latest line, and a new content marker "+
		"appears if you had scrolled back.\n\n"+
		"- `tab` focuses the composer and raises the keyboard\n"+
		"- `ctrl+a` toggles the accessory bar mid-animation\n"+
		"- `end` jumps to the latest message", quoted)
}

// Tokenize splits text into word tokens, keeping the whitespace that
// follows each word so the tokens concatenate back to text.
func Tokenize(text string) []string {
	var (
		tokens []string
		cur    strings.Builder
		inWS   bool
	)
	for _, r := range text {
		ws := r == ' ' || r == '\n' || r == '\t'
		if !ws && inWS && cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
		inWS = ws
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}
