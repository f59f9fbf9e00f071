// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package replay

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/glide/internal/composer"
	"github.com/jeranaias/glide/internal/config"
	"github.com/jeranaias/glide/internal/dock"
	"github.com/jeranaias/glide/internal/keyboard"
	"github.com/jeranaias/glide/internal/logger"
	"github.com/jeranaias/glide/internal/motion"
	"github.com/jeranaias/glide/internal/scroll"
	"github.com/jeranaias/glide/internal/util"
)

// epoch is the replay start time. Any fixed instant works.
var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

const invariantTolerance = 1e-9

// Row is the committed geometry of one frame.
type Row struct {
	At             time.Duration
	Event          string
	Phase          scroll.Phase
	Gen            uint64
	Progress       float64
	KeyboardHeight float64
	ComposerHeight float64
	BottomInset    float64
	Offset         float64
	MaxOffset      float64
	Pinned         bool
	NewContent     int
}

// Result is the outcome of a replay.
type Result struct {
	Scenario   string
	Rows       []Row
	Violations []string
	Stats      dock.Stats
	Observer   keyboard.Stats
	Submitted  []string
}

// OK reports whether every frame satisfied the invariants.
func (r *Result) OK() bool { return len(r.Violations) == 0 }

type runner struct {
	cfg    *config.Config
	sc     *Scenario
	clock  *motion.ManualClock
	obs    *keyboard.Observer
	dock   *dock.Dock
	queue  []tea.Msg
	seq    uint64
	kbVis  bool
	kbBase float64
	kbAcc  float64

	content float64
	res     *Result
}

// sendHost records submissions and grows the content like a transcript.
type sendHost struct {
	r *runner
}

func (h sendHost) OnSend(text string) {
	h.r.res.Submitted = append(h.r.res.Submitted, text)
	h.r.grow(float64(util.CountLines(text, h.r.sc.Width)) + 1)
}
func (h sendHost) OnFocus() {}
func (h sendHost) OnBlur()  {}

// Run replays sc with the tunables from cfg.
func Run(sc *Scenario, cfg *config.Config, log *logger.Logger) *Result {
	r := &runner{
		cfg:   cfg,
		sc:    sc,
		clock: motion.NewManualClock(epoch),
		res:   &Result{Scenario: sc.Name},
	}
	r.obs = keyboard.NewObserver(keyboard.Options{
		Fallback: cfg.Keyboard.Fallback(),
		Log:      log,
		Now:      r.clock.Now,
	})
	r.dock = dock.New(dock.Options{
		Observer:            r.obs,
		Send:                func(m tea.Msg) { r.queue = append(r.queue, m) },
		Host:                sendHost{r: r},
		Layout:              cfg.Layout.ScrollLayout(),
		NearBottomThreshold: cfg.Layout.NearBottomThreshold,
		SmoothScroll:        cfg.Scroll.SmoothScroll(),
		FrameRate:           cfg.Keyboard.FrameRate,
		Composer: composer.Options{
			Bounds:    cfg.Composer.Bounds(),
			CharLimit: cfg.Composer.CharLimit,
		},
		Clock: r.clock,
		Log:   log,
	})
	defer r.dock.Close()

	r.run()
	r.res.Stats = r.dock.Stats()
	r.res.Observer = r.obs.Stats()
	return r.res
}

func (r *runner) run() {
	r.dock.Resize(r.sc.Frame, r.sc.Width)
	r.content = r.sc.Content
	r.dock.ContentChanged(r.content)
	r.dock.JumpToLatest()
	if r.sc.ScrollBack > 0 {
		r.dock.ScrollBy(-r.sc.ScrollBack)
	}
	r.record(0, "start")

	interval := r.dock.Synchronizer().Interval()
	until := time.Duration(r.sc.UntilMs) * time.Millisecond
	next := 0

	for at := interval; at <= until; at += interval {
		now := r.clock.Advance(interval)

		var events []string
		for next < len(r.sc.Steps) && time.Duration(r.sc.Steps[next].AtMs)*time.Millisecond <= at {
			step := r.sc.Steps[next]
			r.apply(step)
			events = append(events, string(step.Action))
			next++
		}
		r.drain()

		gen, active := r.dock.Synchronizer().Active()
		if !active {
			gen = 0
		}
		r.dock.HandleFrame(motion.FrameMsg{Gen: gen, Time: now})

		event := ""
		if len(events) > 0 {
			event = fmt.Sprint(events)
		}
		r.record(at, event)
	}
}

// drain hands queued platform messages to the dock, as the UI loop would.
func (r *runner) drain() {
	for len(r.queue) > 0 {
		msg := r.queue[0]
		r.queue = r.queue[1:]
		r.dock.Update(msg)
	}
}

func (r *runner) apply(st Step) {
	switch st.Action {
	case ActionShow:
		r.kbVis = true
		if st.Height > 0 {
			r.kbBase = st.Height
		} else if r.kbBase == 0 {
			r.kbBase = r.cfg.Keyboard.Height
		}
		r.notify(st)
	case ActionHide:
		r.kbVis = false
		r.notify(st)
	case ActionChange:
		r.kbBase = st.Height
		r.notify(st)
	case ActionAccessory:
		r.kbAcc = 0
		if st.On {
			r.kbAcc = r.cfg.Keyboard.AccessoryHeight
		}
		r.notify(st)
	case ActionType:
		c := r.dock.Composer()
		c.SetText(c.Text() + st.Text)
	case ActionClear:
		r.dock.Composer().SetText("")
	case ActionSubmit:
		r.dock.Composer().Submit(composer.SourceKey)
	case ActionAppend:
		r.grow(st.Lines)
	case ActionScroll:
		r.dock.ScrollBy(st.Delta)
	case ActionJump:
		r.dock.JumpToLatest()
	case ActionResize:
		r.dock.Resize(st.Height, r.sc.Width)
	}
}

func (r *runner) grow(lines float64) {
	r.content += lines
	r.dock.ContentChanged(r.content)
}

func (r *runner) notify(st Step) {
	kind := keyboard.KindChange
	height := 0.0
	if r.kbVis {
		height = r.kbBase + r.kbAcc
	}
	switch {
	case st.Action == ActionShow:
		kind = keyboard.KindShow
	case height == 0:
		kind = keyboard.KindHide
	}

	r.seq++
	n := keyboard.Notification{
		ID:        r.seq,
		Kind:      kind,
		EndHeight: height,
		Duration:  time.Duration(st.DurationMs) * time.Millisecond,
		Timestamp: r.clock.Now(),
	}
	if st.Curve != "" {
		c, _ := keyboard.ParseCurve(st.Curve)
		code := c.Code()
		n.CurveCode = &code
	}
	r.obs.Deliver(n)
}

func (r *runner) record(at time.Duration, event string) {
	d := r.dock
	coord := d.Coordinator()
	row := Row{
		At:             at,
		Event:          event,
		Phase:          coord.Phase(),
		Gen:            d.Progress().Generation(),
		Progress:       d.Progress().Progress(),
		KeyboardHeight: d.KeyboardHeight(),
		ComposerHeight: d.Height(),
		BottomInset:    d.BottomInset(),
		Offset:         d.Offset(),
		MaxOffset:      coord.MaxOffset(),
		Pinned:         coord.Phase().InTransition() && coord.Anchor().WasNearBottomBeforeTransition,
		NewContent:     coord.NewContentCount(),
	}
	r.res.Rows = append(r.res.Rows, row)

	l := coord.Layout()
	want := row.KeyboardHeight + row.ComposerHeight + l.FixedGap + l.SafeAreaBottom
	if math.Abs(want-row.BottomInset) > invariantTolerance {
		r.violate(at, "bottom inset %.3f, want %.3f", row.BottomInset, want)
	}
	if row.Offset < -invariantTolerance || row.Offset > row.MaxOffset+invariantTolerance {
		r.violate(at, "offset %.3f outside [0, %.3f]", row.Offset, row.MaxOffset)
	}
	if row.Pinned && math.Abs(row.Offset-row.MaxOffset) > invariantTolerance {
		r.violate(at, "pinned offset %.3f, want %.3f", row.Offset, row.MaxOffset)
	}
	if n := len(r.res.Rows); n > 1 {
		prev := r.res.Rows[n-2]
		if row.Gen == prev.Gen && row.Phase.InTransition() && prev.Phase.InTransition() &&
			row.Progress < prev.Progress {
			r.violate(at, "progress went back from %.4f to %.4f", prev.Progress, row.Progress)
		}
	}
}

func (r *runner) violate(at time.Duration, format string, args ...any) {
	r.res.Violations = append(r.res.Violations,
		fmt.Sprintf("%6dms: %s", at.Milliseconds(), fmt.Sprintf(format, args...)))
}
