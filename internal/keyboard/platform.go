// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keyboard

import (
	"context"
	"time"
)

// SoftKeyboardOptions configures the simulated platform keyboard.
type SoftKeyboardOptions struct {
	Height          float64
	AccessoryHeight float64
	Duration        time.Duration
	CurveCode       int
	// DropMetadataEvery omits duration and curve from every Nth
	// notification. Zero never drops.
	DropMetadataEvery int
	// EchoFrameChange sends a second notification with the same id for
	// every motion, the way platforms pair will-show with will-change-frame.
	EchoFrameChange bool
	Now             func() time.Time
}

type request struct {
	show      *bool
	accessory *bool
	external  *bool
	opts      *SoftKeyboardOptions
}

// SoftKeyboard simulates the platform side of an on-screen keyboard. All of
// its state lives on the goroutine started by Run; the exported methods only
// post requests to it.
type SoftKeyboard struct {
	sink func(Notification)
	reqs chan request
	done chan struct{}

	opts      SoftKeyboardOptions
	visible   bool
	accessory bool
	external  bool
	height    float64
	seq       uint64
	sent      int
}

// NewSoftKeyboard creates a keyboard that reports to sink, usually
// Observer.Deliver.
func NewSoftKeyboard(sink func(Notification), opts SoftKeyboardOptions) *SoftKeyboard {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SoftKeyboard{
		sink: sink,
		reqs: make(chan request, 16),
		done: make(chan struct{}),
		opts: opts,
	}
}

// Run processes requests until ctx is cancelled.
func (k *SoftKeyboard) Run(ctx context.Context) {
	defer close(k.done)
	for {
		select {
		case <-ctx.Done():
			return
		case r := <-k.reqs:
			k.apply(r)
		}
	}
}

// Show raises the keyboard.
func (k *SoftKeyboard) Show() { k.post(request{show: boolPtr(true)}) }

// Hide dismisses the keyboard.
func (k *SoftKeyboard) Hide() { k.post(request{show: boolPtr(false)}) }

// SetAccessory inserts or removes the accessory bar above the keys.
func (k *SoftKeyboard) SetAccessory(on bool) { k.post(request{accessory: boolPtr(on)}) }

// AttachExternal simulates a hardware keyboard being connected or removed.
// While attached, only the accessory bar stays on screen.
func (k *SoftKeyboard) AttachExternal(on bool) { k.post(request{external: boolPtr(on)}) }

// Reconfigure replaces the keyboard geometry and timing. A visible keyboard
// animates to its new height.
func (k *SoftKeyboard) Reconfigure(opts SoftKeyboardOptions) {
	k.post(request{opts: &opts})
}

func (k *SoftKeyboard) post(r request) {
	select {
	case k.reqs <- r:
	case <-k.done:
	}
}

func (k *SoftKeyboard) apply(r request) {
	switch {
	case r.show != nil:
		k.visible = *r.show
	case r.accessory != nil:
		k.accessory = *r.accessory
	case r.external != nil:
		k.external = *r.external
	case r.opts != nil:
		now := k.opts.Now
		k.opts = *r.opts
		if k.opts.Now == nil {
			k.opts.Now = now
		}
	}
	k.emit()
}

func (k *SoftKeyboard) targetHeight() float64 {
	if !k.visible {
		return 0
	}
	h := 0.0
	if !k.external {
		h = k.opts.Height
	}
	if k.accessory {
		h += k.opts.AccessoryHeight
	}
	return h
}

func (k *SoftKeyboard) emit() {
	target := k.targetHeight()
	if target == k.height {
		return
	}

	kind := KindChange
	switch {
	case k.height == 0:
		kind = KindShow
	case target == 0:
		kind = KindHide
	}
	k.height = target
	k.seq++
	k.sent++

	n := Notification{
		ID:        k.seq,
		Kind:      kind,
		EndHeight: target,
		Timestamp: k.opts.Now(),
	}
	if k.opts.DropMetadataEvery <= 0 || k.sent%k.opts.DropMetadataEvery != 0 {
		code := k.opts.CurveCode
		n.Duration = k.opts.Duration
		n.CurveCode = &code
	}

	k.sink(n)
	if k.opts.EchoFrameChange {
		echo := n
		echo.Kind = KindChange
		k.sink(echo)
	}
}

func boolPtr(b bool) *bool { return &b }
