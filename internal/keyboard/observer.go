// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keyboard

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jeranaias/glide/internal/logger"
)

// Options configures an Observer.
type Options struct {
	Fallback Fallback
	Log      *logger.Logger
	// Now stamps notifications that arrive without a timestamp.
	Now func() time.Time
}

// Stats counts what the observer has seen.
type Stats struct {
	Delivered  int
	Duplicates int
	Degraded   int
}

// Observer deduplicates platform notifications and fans the resulting
// transitions out to its listeners. Deliver may be called from any goroutine;
// deliveries are serialized so listeners see transitions in sequence order.
// Listeners must not call Deliver.
type Observer struct {
	// deliverMu is held for a whole Deliver, fan-out included. mu guards
	// the fields below and is never held while a listener runs.
	deliverMu sync.Mutex

	mu        sync.Mutex
	listeners map[uint64]*Subscription
	nextID    uint64
	lastSeq   uint64
	seenAny   bool
	closed    bool
	stats     Stats

	fallback Fallback
	now      func() time.Time
	log      *logger.Logger
}

// NewObserver creates an Observer.
func NewObserver(opts Options) *Observer {
	if opts.Fallback == (Fallback{}) {
		opts.Fallback = DefaultFallback()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Observer{
		listeners: make(map[uint64]*Subscription),
		fallback:  opts.Fallback,
		now:       opts.Now,
		log:       logger.OrNop(opts.Log).Component("keyboard"),
	}
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	once   sync.Once
	obs    *Observer
	id     uint64
	l      Listener
	closed atomic.Bool
}

// Close removes the listener. No transition is handed to it once Close has
// returned, including the rest of a fan-out already under way. A call the
// listener is executing at that moment is not waited for, so Close may be
// called from inside the listener. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.closed.Store(true)
		s.obs.mu.Lock()
		delete(s.obs.listeners, s.id)
		s.obs.mu.Unlock()
	})
}

func (s *Subscription) deliver(t Transition) {
	if !s.closed.Load() {
		s.l.OnTransition(t)
	}
}

// Subscribe registers l. The listener stays registered until the returned
// subscription is closed or the observer is closed.
func (o *Observer) Subscribe(l Listener) *Subscription {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	sub := &Subscription{obs: o, id: o.nextID, l: l}
	if o.closed {
		sub.closed.Store(true)
	} else {
		o.listeners[sub.id] = sub
	}
	return sub
}

// SetFallback replaces the metadata used for incomplete notifications.
func (o *Observer) SetFallback(fb Fallback) {
	o.mu.Lock()
	o.fallback = fb
	o.mu.Unlock()
}

// Deliver processes one platform notification. Repeated notifications for a
// motion that was already delivered are dropped.
func (o *Observer) Deliver(n Notification) {
	o.deliverMu.Lock()
	defer o.deliverMu.Unlock()

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	if o.seenAny && n.ID <= o.lastSeq {
		o.stats.Duplicates++
		o.mu.Unlock()
		o.log.Debug().Uint64("seq", n.ID).Msg("duplicate keyboard notification dropped")
		return
	}
	o.seenAny = true
	o.lastSeq = n.ID

	if n.Timestamp.IsZero() {
		n.Timestamp = o.now()
	}
	t, err := Normalize(n, o.fallback)
	if errors.Is(err, ErrMissingAnimationMetadata) {
		o.stats.Degraded++
		o.log.Debug().Err(err).Uint64("seq", n.ID).
			Dur("duration", t.Duration).Str("curve", t.Curve.String()).
			Msg("using fallback animation metadata")
	}
	o.stats.Delivered++

	targets := make([]*Subscription, 0, len(o.listeners))
	for _, sub := range o.listeners {
		targets = append(targets, sub)
	}
	o.mu.Unlock()

	for _, sub := range targets {
		sub.deliver(t)
	}
}

// Stats returns a snapshot of the observer counters.
func (o *Observer) Stats() Stats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stats
}

// Listeners returns the number of registered listeners.
func (o *Observer) Listeners() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.listeners)
}

// Close drops every listener. Later notifications are ignored.
func (o *Observer) Close() {
	o.mu.Lock()
	o.closed = true
	for _, sub := range o.listeners {
		sub.closed.Store(true)
	}
	o.listeners = make(map[uint64]*Subscription)
	o.mu.Unlock()
}
