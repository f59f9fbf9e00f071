// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package composer

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/glide/internal/logger"
)

// Source identifies what triggered a submission.
type Source int

const (
	SourceKey Source = iota
	SourceButton
)

func (s Source) String() string {
	if s == SourceButton {
		return "button"
	}
	return "key"
}

// Callbacks are invoked synchronously on the UI goroutine.
type Callbacks struct {
	OnTextChange   func(text string)
	OnHeightChange func(height float64)
	OnSubmit       func(text string)
	OnFocus        func()
	OnBlur         func()
}

// Bounds are the vertical metrics of the composer. Heights include Chrome,
// the border and padding around the text.
type Bounds struct {
	MinHeight  float64
	MaxHeight  float64
	LineHeight float64
	Chrome     float64
}

// DefaultBounds fits a bordered one-to-six line entry in a terminal.
func DefaultBounds() Bounds {
	return Bounds{MinHeight: 3, MaxHeight: 8, LineHeight: 1, Chrome: 2}
}

func (b Bounds) normalized() Bounds {
	d := DefaultBounds()
	if b.LineHeight <= 0 {
		b.LineHeight = d.LineHeight
	}
	if b.Chrome < 0 {
		b.Chrome = 0
	}
	if b.MinHeight <= 0 {
		b.MinHeight = b.LineHeight + b.Chrome
	}
	if b.MaxHeight < b.MinHeight {
		b.MaxHeight = b.MinHeight
	}
	return b
}

// Options configures a Composer.
type Options struct {
	Bounds      Bounds
	CharLimit   int
	Placeholder string
	KeyMap      KeyMap
	Measurer    Measurer
	Callbacks   Callbacks
	Log         *logger.Logger
}

// Composer is the growing text entry. It is confined to the UI goroutine.
type Composer struct {
	ta       textarea.Model
	bounds   Bounds
	keys     KeyMap
	measurer Measurer
	cb       Callbacks
	log      *logger.Logger

	width        int
	height       float64
	lines        int
	scrolling    bool
	needsMeasure bool
	focused      bool

	revision     uint64
	submittedRev uint64
	submitted    bool
}

// New creates a Composer. Until it is laid out with SetWidth its height is
// the minimum height.
func New(opts Options) *Composer {
	if opts.Measurer == nil {
		opts.Measurer = WrapMeasurer{}
	}
	if opts.KeyMap.Send.Keys() == nil {
		opts.KeyMap = DefaultKeyMap()
	}
	if opts.CharLimit <= 0 {
		opts.CharLimit = 4096
	}
	b := opts.Bounds.normalized()

	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = opts.CharLimit
	ta.Placeholder = opts.Placeholder
	ta.KeyMap.InsertNewline = opts.KeyMap.Newline
	ta.MaxHeight = 0

	c := &Composer{
		ta:           ta,
		bounds:       b,
		keys:         opts.KeyMap,
		measurer:     opts.Measurer,
		cb:           opts.Callbacks,
		log:          logger.OrNop(opts.Log).Component("composer"),
		height:       b.MinHeight,
		lines:        1,
		needsMeasure: true,
	}
	c.ta.SetHeight(c.visibleLines())
	return c
}

// SetCallbacks replaces the callbacks.
func (c *Composer) SetCallbacks(cb Callbacks) { c.cb = cb }

// =============================================================================
// LAYOUT
// =============================================================================

// SetWidth is the layout pass. A deferred measurement is retried here.
func (c *Composer) SetWidth(w int) {
	if w == c.width && !c.needsMeasure {
		return
	}
	c.width = w
	if w > 0 {
		c.ta.SetWidth(w)
	}
	c.measure()
}

// SetBounds replaces the height bounds and re-measures.
func (c *Composer) SetBounds(b Bounds) {
	c.bounds = b.normalized()
	c.measure()
}

// measure recomputes the height from the current text. When the text cannot
// be measured the last known height is kept and the measurement is retried
// on the next layout pass.
func (c *Composer) measure() {
	var (
		lines int
		err   error
	)
	if c.width <= 0 {
		err = ErrMeasurementUnavailable
	} else {
		lines, err = c.measurer.Lines(c.ta.Value(), c.width)
	}
	if err != nil {
		c.needsMeasure = true
		c.log.Debug().Err(err).Int("width", c.width).Float64("height", c.height).
			Msg("keeping last known height")
		return
	}
	c.needsMeasure = false
	if lines < 1 {
		lines = 1
	}
	c.lines = lines

	measured := float64(lines)*c.bounds.LineHeight + c.bounds.Chrome
	c.scrolling = measured > c.bounds.MaxHeight
	c.setHeight(math.Min(math.Max(measured, c.bounds.MinHeight), c.bounds.MaxHeight))
}

func (c *Composer) setHeight(h float64) {
	c.ta.SetHeight(c.visibleLinesFor(h))
	if h == c.height {
		return
	}
	c.height = h
	if c.cb.OnHeightChange != nil {
		c.cb.OnHeightChange(h)
	}
}

func (c *Composer) visibleLines() int { return c.visibleLinesFor(c.height) }

func (c *Composer) visibleLinesFor(h float64) int {
	n := int(math.Floor((h - c.bounds.Chrome) / c.bounds.LineHeight))
	if n < 1 {
		return 1
	}
	return n
}

// =============================================================================
// TEXT
// =============================================================================

// SetText replaces the text and re-measures synchronously.
func (c *Composer) SetText(s string) {
	if s == c.ta.Value() {
		return
	}
	c.ta.SetValue(s)
	c.textChanged()
}

// Text returns the current text.
func (c *Composer) Text() string { return c.ta.Value() }

func (c *Composer) textChanged() {
	c.revision++
	if c.cb.OnTextChange != nil {
		c.cb.OnTextChange(c.ta.Value())
	}
	c.measure()
}

// Update routes a message to the entry. Send keys submit instead of
// inserting a newline.
func (c *Composer) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok && c.focused {
		switch {
		case key.Matches(km, c.keys.Send):
			c.Submit(SourceKey)
			return nil
		case key.Matches(km, c.keys.Blur):
			c.Blur()
			return nil
		}
	}

	before := c.ta.Value()
	var cmd tea.Cmd
	c.ta, cmd = c.ta.Update(msg)
	if c.ta.Value() != before {
		c.textChanged()
	}
	return cmd
}

// Submit sends the current text. Empty text is ignored, and so is a second
// trigger for text that was already submitted.
func (c *Composer) Submit(src Source) bool {
	text := norm.NFC.String(strings.TrimSpace(c.ta.Value()))
	if text == "" {
		return false
	}
	if c.submitted && c.submittedRev == c.revision {
		c.log.Debug().Str("source", src.String()).Uint64("revision", c.revision).
			Msg("duplicate submission dropped")
		return false
	}
	c.submitted = true
	c.submittedRev = c.revision

	if c.cb.OnSubmit != nil {
		c.cb.OnSubmit(text)
	}

	c.ta.Reset()
	if c.cb.OnTextChange != nil {
		c.cb.OnTextChange("")
	}
	c.lines = 1
	c.scrolling = false
	c.setHeight(c.bounds.MinHeight)
	return true
}

// =============================================================================
// FOCUS
// =============================================================================

// Focus gives the entry keyboard focus.
func (c *Composer) Focus() tea.Cmd {
	if c.focused {
		return nil
	}
	c.focused = true
	cmd := c.ta.Focus()
	if c.cb.OnFocus != nil {
		c.cb.OnFocus()
	}
	return cmd
}

// Blur removes keyboard focus.
func (c *Composer) Blur() {
	if !c.focused {
		return
	}
	c.focused = false
	c.ta.Blur()
	if c.cb.OnBlur != nil {
		c.cb.OnBlur()
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

func (c *Composer) Focused() bool    { return c.focused }
func (c *Composer) Height() float64  { return c.height }
func (c *Composer) Lines() int       { return c.lines }
func (c *Composer) Revision() uint64 { return c.revision }
func (c *Composer) Bounds() Bounds   { return c.bounds }
func (c *Composer) Width() int       { return c.width }

// Scrolling reports whether the content is taller than the maximum height
// and the entry scrolls internally.
func (c *Composer) Scrolling() bool { return c.scrolling }

// Pending reports whether a measurement is waiting for the next layout pass.
func (c *Composer) Pending() bool { return c.needsMeasure }

// View renders the text area without chrome.
func (c *Composer) View() string { return c.ta.View() }
