// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package motion

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/glide/internal/keyboard"
	"github.com/jeranaias/glide/internal/logger"
)

// ErrStaleTransition is returned for frames that belong to a transition that
// was superseded or has already finished.
var ErrStaleTransition = errors.New("motion: stale transition")

// DefaultFrameRate is the display refresh rate frames are scheduled at.
const DefaultFrameRate = 60

// FrameMsg is one display frame for the transition with the given
// generation. Gen 0 frames carry no keyboard transition.
type FrameMsg struct {
	Gen  uint64
	Time time.Time
}

// Sample is the committed state of one frame.
type Sample struct {
	Gen            uint64
	Time           time.Time
	Progress       float64
	KeyboardHeight float64
	// Final is set on the sample that completes the transition.
	Final bool
}

// Options configures a Synchronizer.
type Options struct {
	Clock     Clock
	FrameRate int
	Log       *logger.Logger
}

type run struct {
	gen  uint64
	tr   keyboard.Transition
	last float64
}

// Synchronizer maps keyboard transitions onto display frames. It is confined
// to the UI goroutine.
type Synchronizer struct {
	progress *Progress
	clock    Clock
	interval time.Duration
	log      *logger.Logger

	gen    uint64
	active *run
	stale  int
}

// NewSynchronizer creates a Synchronizer that owns progress.
func NewSynchronizer(progress *Progress, opts Options) *Synchronizer {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = DefaultFrameRate
	}
	return &Synchronizer{
		progress: progress,
		clock:    opts.Clock,
		interval: time.Second / time.Duration(opts.FrameRate),
		log:      logger.OrNop(opts.Log).Component("motion"),
	}
}

// Progress returns the read-only animation state.
func (s *Synchronizer) Progress() Reader { return s.progress }

// Start begins interpolating toward t, superseding any transition in flight.
// The new transition starts from the current interpolated height.
func (s *Synchronizer) Start(t keyboard.Transition) uint64 {
	if t.StartedAt.IsZero() {
		t.StartedAt = s.clock.Now()
	}
	if s.active != nil {
		s.log.Debug().Uint64("gen", s.active.gen).Float64("at", s.progress.KeyboardHeight()).
			Msg("transition superseded")
	}

	s.gen++
	s.active = &run{gen: s.gen, tr: t}
	s.progress.rebase(s.gen, t.TargetHeight)

	s.log.Debug().Uint64("gen", s.gen).Str("transition", t.String()).
		Float64("from", s.progress.From()).Msg("transition started")
	return s.gen
}

// Sample evaluates the frame. Frames of any generation other than the active
// one return ErrStaleTransition and change nothing.
func (s *Synchronizer) Sample(f FrameMsg) (Sample, error) {
	if s.active == nil || f.Gen != s.active.gen {
		s.stale++
		return Sample{}, ErrStaleTransition
	}
	r := s.active

	p := 1.0
	if r.tr.Duration > 0 {
		p = float64(f.Time.Sub(r.tr.StartedAt)) / float64(r.tr.Duration)
	}
	p = clamp01(p)
	if p < r.last {
		p = r.last
	}
	r.last = p

	out := Sample{Gen: r.gen, Time: f.Time, Progress: p}
	if p >= 1 {
		out.Progress = 1
		out.KeyboardHeight = r.tr.TargetHeight
		out.Final = true
		s.active = nil
	} else {
		out.KeyboardHeight = Lerp(s.progress.From(), r.tr.TargetHeight, Ease(r.tr.Curve, p))
	}
	s.progress.commit(out.Progress, out.KeyboardHeight)
	return out, nil
}

// Active reports whether a transition is in flight and its generation.
func (s *Synchronizer) Active() (uint64, bool) {
	if s.active == nil {
		return 0, false
	}
	return s.active.gen, true
}

// Generation returns the most recently issued generation.
func (s *Synchronizer) Generation() uint64 { return s.gen }

// Stale returns how many frames were dropped as stale.
func (s *Synchronizer) Stale() int { return s.stale }

// Interval returns the frame interval.
func (s *Synchronizer) Interval() time.Duration { return s.interval }

// FrameCmd schedules the next frame for gen.
func (s *Synchronizer) FrameCmd(gen uint64) tea.Cmd {
	return FrameCmd(s.interval, gen)
}

// Close abandons any transition and resets the state to closed.
func (s *Synchronizer) Close() {
	s.gen++
	s.active = nil
	s.progress.reset()
}

// FrameCmd returns a command that delivers a FrameMsg after d.
func FrameCmd(d time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FrameMsg{Gen: gen, Time: t}
	})
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
