// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dock

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/glide/internal/composer"
	"github.com/jeranaias/glide/internal/keyboard"
	"github.com/jeranaias/glide/internal/logger"
	"github.com/jeranaias/glide/internal/motion"
	"github.com/jeranaias/glide/internal/scroll"
)

// TransitionMsg carries one keyboard transition from the platform goroutine
// into the UI loop.
type TransitionMsg struct {
	Transition keyboard.Transition
}

// Options configures a Dock.
type Options struct {
	Observer *keyboard.Observer
	// Send delivers messages to the UI loop, usually tea.Program.Send.
	Send func(tea.Msg)
	Host Host

	Layout              scroll.Layout
	NearBottomThreshold float64
	SmoothScroll        time.Duration
	FrameRate           int

	Composer composer.Options
	Clock    motion.Clock
	Log      *logger.Logger
}

// Stats are counters for the status bar and replay traces.
type Stats struct {
	Transitions int
	Frames      int
	Stale       int
	Ignored     int
	// Superseded counts transitions that reached the loop after a newer one.
	Superseded int
}

// Dock is the per-screen coordination handle. Everything except the
// observer subscription is confined to the UI goroutine.
type Dock struct {
	progress *motion.Progress
	sync     *motion.Synchronizer
	coord    *scroll.Coordinator
	comp     *composer.Composer
	sub      *keyboard.Subscription
	host     Host
	clock    motion.Clock
	log      *logger.Logger

	// lastSeq is the platform sequence of the last transition started.
	lastSeq uint64
	started bool

	scrollTicking bool
	closed        bool
	stats         Stats
}

// New mounts a Dock. If opts.Observer is set the dock subscribes to it and
// forwards transitions through opts.Send.
func New(opts Options) *Dock {
	if opts.Clock == nil {
		opts.Clock = motion.SystemClock{}
	}
	if opts.Host == nil {
		opts.Host = NopHost{}
	}
	log := logger.OrNop(opts.Log)

	progress := motion.NewProgress()
	d := &Dock{
		progress: progress,
		sync: motion.NewSynchronizer(progress, motion.Options{
			Clock:     opts.Clock,
			FrameRate: opts.FrameRate,
			Log:       log,
		}),
		coord: scroll.NewCoordinator(progress, scroll.Options{
			Layout:              opts.Layout,
			NearBottomThreshold: opts.NearBottomThreshold,
			SmoothScroll:        opts.SmoothScroll,
			Clock:               opts.Clock,
			Log:                 log,
		}),
		host:  opts.Host,
		clock: opts.Clock,
		log:   log.Component("dock"),
	}

	copts := opts.Composer
	copts.Log = log
	user := copts.Callbacks
	copts.Callbacks = composer.Callbacks{
		OnTextChange: user.OnTextChange,
		OnHeightChange: func(h float64) {
			d.coord.SetComposerHeight(h)
			if user.OnHeightChange != nil {
				user.OnHeightChange(h)
			}
		},
		OnSubmit: func(text string) {
			d.host.OnSend(text)
			if user.OnSubmit != nil {
				user.OnSubmit(text)
			}
		},
		OnFocus: func() {
			d.host.OnFocus()
			if user.OnFocus != nil {
				user.OnFocus()
			}
		},
		OnBlur: func() {
			d.host.OnBlur()
			if user.OnBlur != nil {
				user.OnBlur()
			}
		},
	}
	d.comp = composer.New(copts)
	d.coord.SetComposerHeight(d.comp.Height())

	if opts.Observer != nil && opts.Send != nil {
		send := opts.Send
		d.sub = opts.Observer.Subscribe(keyboard.ListenerFunc(func(t keyboard.Transition) {
			send(TransitionMsg{Transition: t})
		}))
	}
	return d
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles dock messages. It reports whether msg belonged to the dock.
func (d *Dock) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case TransitionMsg:
		return d.HandleTransition(msg.Transition), true
	case motion.FrameMsg:
		return d.HandleFrame(msg), true
	}
	return nil, false
}

// HandleTransition starts a keyboard transition. The scroll anchor is
// snapshotted here, before the first frame can change any height, and the
// first frame is scheduled. A transition whose sequence is not newer than
// the last one started is dropped.
func (d *Dock) HandleTransition(t keyboard.Transition) tea.Cmd {
	if d.closed {
		return nil
	}
	if d.started && t.Seq <= d.lastSeq {
		d.stats.Superseded++
		d.log.Debug().Uint64("seq", t.Seq).Uint64("last", d.lastSeq).Msg("out of order transition dropped")
		return nil
	}
	d.started = true
	d.lastSeq = t.Seq

	gen := d.sync.Start(t)
	d.coord.BeginTransition(gen)
	d.stats.Transitions++
	return d.sync.FrameCmd(gen)
}

// HandleFrame commits one display frame and schedules the next one while
// anything is still moving.
func (d *Dock) HandleFrame(f motion.FrameMsg) tea.Cmd {
	if d.closed {
		return nil
	}
	d.stats.Frames++

	var cmds []tea.Cmd
	if f.Gen != 0 {
		s, err := d.sync.Sample(f)
		switch {
		case errors.Is(err, motion.ErrStaleTransition):
			d.stats.Stale++
			d.log.Debug().Uint64("gen", f.Gen).Msg("stale frame dropped")
		case err == nil:
			if !d.coord.ApplySample(s) {
				d.stats.Ignored++
			}
			if !s.Final {
				cmds = append(cmds, d.sync.FrameCmd(f.Gen))
			}
		}
	} else {
		d.scrollTicking = false
	}

	if d.coord.Tick(f.Time) {
		cmds = append(cmds, d.ensureScrollTicking())
	}
	return tea.Batch(cmds...)
}

// ensureScrollTicking schedules idle frames for an animated scroll unless a
// keyboard transition or an earlier idle frame already drives it.
func (d *Dock) ensureScrollTicking() tea.Cmd {
	if !d.coord.Animating() || d.scrollTicking {
		return nil
	}
	if _, active := d.sync.Active(); active {
		return nil
	}
	d.scrollTicking = true
	return d.sync.FrameCmd(0)
}

// =============================================================================
// HOST INPUTS
// =============================================================================

// ContentChanged reports the new list content height.
func (d *Dock) ContentChanged(h float64) tea.Cmd {
	d.coord.SetContentHeight(h)
	return d.ensureScrollTicking()
}

// Resize applies a new frame height and composer width.
func (d *Dock) Resize(frameHeight float64, composerWidth int) {
	d.coord.SetFrameHeight(frameHeight)
	d.comp.SetWidth(composerWidth)
}

// ScrollBy applies user scrolling.
func (d *Dock) ScrollBy(delta float64) { d.coord.ScrollBy(delta) }

// JumpToLatest scrolls to the bottom and clears the new content marker.
func (d *Dock) JumpToLatest() { d.coord.JumpToLatest() }

// ScrollToBottom animates to the bottom. The returned command drives the
// animation.
func (d *Dock) ScrollToBottom() tea.Cmd {
	d.coord.ScrollToBottom()
	return d.ensureScrollTicking()
}

// Reconfigure applies new tunables without remounting.
func (d *Dock) Reconfigure(l scroll.Layout, nearBottom float64, smooth time.Duration, b composer.Bounds) {
	d.coord.SetLayout(l, nearBottom)
	d.coord.SetSmoothScroll(smooth)
	d.comp.SetBounds(b)
}

// =============================================================================
// OUTBOUND
// =============================================================================

func (d *Dock) Composer() *composer.Composer       { return d.comp }
func (d *Dock) Coordinator() *scroll.Coordinator   { return d.coord }
func (d *Dock) Synchronizer() *motion.Synchronizer { return d.sync }
func (d *Dock) Progress() motion.Reader            { return d.progress }

// Height is the composer height.
func (d *Dock) Height() float64 { return d.comp.Height() }

// KeyboardHeight is the interpolated keyboard height of the current frame.
func (d *Dock) KeyboardHeight() float64 { return d.progress.KeyboardHeight() }

// BottomInset is the list's bottom inset for the current frame.
func (d *Dock) BottomInset() float64 { return d.coord.BottomInset() }

// Offset is the list content offset for the current frame.
func (d *Dock) Offset() float64 { return d.coord.Offset() }

// Stats returns the frame counters.
func (d *Dock) Stats() Stats { return d.stats }

// Close unmounts the dock: the observer subscription is released and the
// animation state is destroyed. Frames still in flight are ignored.
func (d *Dock) Close() {
	if d.closed {
		return
	}
	d.closed = true
	if d.sub != nil {
		d.sub.Close()
	}
	d.sync.Close()
	d.coord.Refresh()
}
