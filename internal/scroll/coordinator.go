// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

import (
	"math"
	"time"

	"github.com/jeranaias/glide/internal/logger"
	"github.com/jeranaias/glide/internal/motion"
)

// Defaults.
const (
	DefaultNearBottomThreshold = 100.0
	DefaultSmoothScroll        = 180 * time.Millisecond
)

// atBottomEpsilon absorbs float noise when comparing an offset to the max.
const atBottomEpsilon = 0.5

// Options configures a Coordinator.
type Options struct {
	Layout              Layout
	NearBottomThreshold float64
	SmoothScroll        time.Duration
	Clock               motion.Clock
	Log                 *logger.Logger
}

type smoothScroll struct {
	from  float64
	start time.Time
	dur   time.Duration
}

// Coordinator decides the list offset and bottom inset for every frame. It
// is confined to the UI goroutine.
type Coordinator struct {
	keyboard motion.Reader
	layout   Layout
	near     float64
	smoothD  time.Duration
	clock    motion.Clock
	log      *logger.Logger

	phase   Phase
	snapGen uint64
	anchor  AnchorState

	offset         float64
	contentHeight  float64
	frameHeight    float64
	composerHeight float64

	smooth     *smoothScroll
	newContent int
}

// NewCoordinator creates a Coordinator reading keyboard height from kb.
func NewCoordinator(kb motion.Reader, opts Options) *Coordinator {
	if opts.NearBottomThreshold <= 0 {
		opts.NearBottomThreshold = DefaultNearBottomThreshold
	}
	if opts.SmoothScroll <= 0 {
		opts.SmoothScroll = DefaultSmoothScroll
	}
	if opts.Clock == nil {
		opts.Clock = motion.SystemClock{}
	}
	c := &Coordinator{
		keyboard: kb,
		layout:   opts.Layout,
		near:     opts.NearBottomThreshold,
		smoothD:  opts.SmoothScroll,
		clock:    opts.Clock,
		log:      logger.OrNop(opts.Log).Component("scroll"),
	}
	c.recompute()
	return c
}

// =============================================================================
// GEOMETRY
// =============================================================================

func (c *Coordinator) recompute() {
	c.anchor.BottomInset = c.keyboard.KeyboardHeight() + c.composerHeight +
		c.layout.FixedGap + c.layout.SafeAreaBottom
}

// MaxOffset is the offset at which the last line sits directly above the
// bottom inset.
func (c *Coordinator) MaxOffset() float64 {
	return math.Max(0, c.contentHeight+c.anchor.BottomInset-c.frameHeight)
}

// NearBottom evaluates the near-bottom rule on the current geometry.
func (c *Coordinator) NearBottom() bool {
	return c.MaxOffset()-c.offset < c.near
}

// AtBottom reports whether the offset is at the max offset.
func (c *Coordinator) AtBottom() bool {
	return c.MaxOffset()-c.offset < atBottomEpsilon
}

// followingBottom is the live pin decision used outside transitions.
func (c *Coordinator) followingBottom() bool {
	return c.NearBottom() || c.smooth != nil
}

// pinned reports the pin decision for the current phase.
func (c *Coordinator) pinned() bool {
	if c.phase.InTransition() {
		return c.anchor.WasNearBottomBeforeTransition
	}
	return c.followingBottom()
}

// settle applies the pin decision taken before a geometry change. A running
// animated scroll keeps control of the offset; it re-reads its target.
func (c *Coordinator) settle(pin bool) {
	if pin && c.smooth == nil {
		c.offset = c.MaxOffset()
		c.clearNewContent()
		return
	}
	c.offset = clamp(c.offset, 0, c.MaxOffset())
}

// Refresh recomputes the inset after the keyboard height changed outside a
// transition, e.g. when the animation state was reset.
func (c *Coordinator) Refresh() {
	pin := c.pinned()
	c.recompute()
	c.settle(pin)
}

// =============================================================================
// KEYBOARD TRANSITIONS
// =============================================================================

// BeginTransition snapshots the near-bottom decision for the transition with
// generation gen. It must run before the first sample of that transition is
// applied; samples of any other generation are ignored.
func (c *Coordinator) BeginTransition(gen uint64) {
	c.anchor.WasNearBottomBeforeTransition = c.followingBottom()
	c.snapGen = gen
	c.phase = PhaseTransitionStarting
	if c.anchor.WasNearBottomBeforeTransition {
		c.smooth = nil
	}
	c.log.Debug().Uint64("gen", gen).
		Bool("near_bottom", c.anchor.WasNearBottomBeforeTransition).
		Float64("offset", c.offset).Float64("max", c.MaxOffset()).
		Msg("transition snapshot")
}

// ApplySample commits one frame of keyboard motion. It reports whether the
// sample was applied.
func (c *Coordinator) ApplySample(s motion.Sample) bool {
	if !c.phase.InTransition() || s.Gen != c.snapGen {
		return false
	}
	c.phase = PhaseTransitionActive
	c.recompute()
	c.settle(c.anchor.WasNearBottomBeforeTransition)

	if s.Final {
		c.phase = PhaseSettled
		c.log.Debug().Uint64("gen", s.Gen).Float64("offset", c.offset).
			Float64("inset", c.anchor.BottomInset).Msg("transition settled")
	}
	return true
}

// =============================================================================
// LAYOUT INPUTS
// =============================================================================

// SetComposerHeight applies a composer height change immediately, in any
// phase.
func (c *Coordinator) SetComposerHeight(h float64) {
	if h == c.composerHeight {
		return
	}
	pin := c.pinned()
	c.composerHeight = h
	c.recompute()
	c.settle(pin)
}

// SetFrameHeight applies a new viewport frame height.
func (c *Coordinator) SetFrameHeight(h float64) {
	if h == c.frameHeight {
		return
	}
	pin := c.pinned()
	c.frameHeight = math.Max(0, h)
	c.settle(pin)
}

// SetLayout replaces the fixed inset contributions and the near-bottom
// threshold.
func (c *Coordinator) SetLayout(l Layout, nearBottom float64) {
	pin := c.pinned()
	c.layout = l
	if nearBottom > 0 {
		c.near = nearBottom
	}
	c.recompute()
	c.settle(pin)
}

// SetSmoothScroll replaces the duration of animated scrolls.
func (c *Coordinator) SetSmoothScroll(d time.Duration) {
	if d > 0 {
		c.smoothD = d
	}
}

// SetContentHeight reports the new total height of the list content. Growth
// outside a transition scrolls smoothly to the bottom if the reader was near
// it, and raises the new content marker otherwise.
func (c *Coordinator) SetContentHeight(h float64) {
	h = math.Max(0, h)
	if h == c.contentHeight {
		return
	}
	grew := h > c.contentHeight

	if c.phase.InTransition() || !grew {
		pin := c.pinned()
		c.contentHeight = h
		c.settle(pin)
		if grew && !pin {
			c.newContent++
		}
		return
	}

	near := c.followingBottom()
	c.contentHeight = h
	if !near {
		c.newContent++
		return
	}
	if c.smooth == nil {
		c.smooth = &smoothScroll{from: c.offset, start: c.clock.Now(), dur: c.smoothD}
	}
}

// =============================================================================
// USER INPUT
// =============================================================================

// ScrollBy moves the offset by delta. User scrolling cancels any animated
// scroll and, during a transition, replaces the pin decision: scrolling up
// always releases the pin, scrolling down pins again once near the bottom.
func (c *Coordinator) ScrollBy(delta float64) {
	c.smooth = nil
	c.offset = clamp(c.offset+delta, 0, c.MaxOffset())
	if c.phase.InTransition() {
		c.anchor.WasNearBottomBeforeTransition = delta >= 0 && c.NearBottom()
	}
	if c.AtBottom() {
		c.clearNewContent()
	}
}

// ScrollToTop moves to the first line.
func (c *Coordinator) ScrollToTop() {
	c.ScrollBy(-c.offset)
}

// ScrollToBottom animates to the bottom. During a keyboard transition it
// pins instead, since the synchronizer already moves the offset every frame.
func (c *Coordinator) ScrollToBottom() {
	if c.phase.InTransition() {
		c.JumpToLatest()
		return
	}
	if c.AtBottom() {
		c.smooth = nil
		c.offset = c.MaxOffset()
		c.clearNewContent()
		return
	}
	if c.smooth == nil {
		c.smooth = &smoothScroll{from: c.offset, start: c.clock.Now(), dur: c.smoothD}
	}
}

// JumpToLatest moves to the bottom and clears the new content marker.
func (c *Coordinator) JumpToLatest() {
	c.smooth = nil
	c.offset = c.MaxOffset()
	if c.phase.InTransition() {
		c.anchor.WasNearBottomBeforeTransition = true
	}
	c.clearNewContent()
}

// =============================================================================
// ANIMATION
// =============================================================================

// Tick advances an animated scroll to now. It reports whether the scroll is
// still running. The target is re-read every tick so content that keeps
// growing is followed.
func (c *Coordinator) Tick(now time.Time) bool {
	if c.smooth == nil {
		return false
	}
	s := c.smooth
	p := 1.0
	if s.dur > 0 {
		p = clamp(float64(now.Sub(s.start))/float64(s.dur), 0, 1)
	}
	target := c.MaxOffset()
	if p >= 1 {
		c.offset = target
		c.smooth = nil
		c.clearNewContent()
		return false
	}
	c.offset = clamp(motion.Lerp(s.from, target, motion.EaseOutCubic(p)), 0, target)
	return true
}

// Animating reports whether an animated scroll is in flight.
func (c *Coordinator) Animating() bool { return c.smooth != nil }

func (c *Coordinator) clearNewContent() { c.newContent = 0 }

// =============================================================================
// ACCESSORS
// =============================================================================

func (c *Coordinator) Phase() Phase            { return c.phase }
func (c *Coordinator) Anchor() AnchorState     { return c.anchor }
func (c *Coordinator) Offset() float64         { return c.offset }
func (c *Coordinator) BottomInset() float64    { return c.anchor.BottomInset }
func (c *Coordinator) ContentHeight() float64  { return c.contentHeight }
func (c *Coordinator) FrameHeight() float64    { return c.frameHeight }
func (c *Coordinator) ComposerHeight() float64 { return c.composerHeight }
func (c *Coordinator) Layout() Layout          { return c.layout }

// HasNewContent reports whether content arrived below the visible area.
func (c *Coordinator) HasNewContent() bool { return c.newContent > 0 }

// NewContentCount is the number of growth events since the reader was last
// at the bottom.
func (c *Coordinator) NewContentCount() int { return c.newContent }

// VisibleHeight is the part of the frame above the bottom inset.
func (c *Coordinator) VisibleHeight() float64 {
	return math.Max(0, c.frameHeight-c.anchor.BottomInset)
}

// ExpectedInset recomputes the inset from its parts.
func (c *Coordinator) ExpectedInset() float64 {
	return c.keyboard.KeyboardHeight() + c.composerHeight + c.layout.FixedGap + c.layout.SafeAreaBottom
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Min(math.Max(v, lo), hi)
}
