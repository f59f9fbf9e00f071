// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package motion

// Reader is the read-only view of the keyboard animation state.
type Reader interface {
	// KeyboardHeight is the interpolated keyboard height of the current frame.
	KeyboardHeight() float64
	// Progress is the interpolation progress of the current transition.
	Progress() float64
	// Generation identifies the transition the values belong to.
	Generation() uint64
}

// Progress is the per-screen animation state. It is confined to the UI
// goroutine; the Synchronizer is its only writer.
type Progress struct {
	gen      uint64
	from     float64
	target   float64
	progress float64
	height   float64
}

// NewProgress returns a settled state with the keyboard closed.
func NewProgress() *Progress {
	return &Progress{progress: 1}
}

func (p *Progress) KeyboardHeight() float64 { return p.height }
func (p *Progress) Progress() float64       { return p.progress }
func (p *Progress) Generation() uint64      { return p.gen }

// Target returns the height the current transition is heading to.
func (p *Progress) Target() float64 { return p.target }

// From returns the height the current transition started at.
func (p *Progress) From() float64 { return p.from }

// rebase starts a new transition from the current height.
func (p *Progress) rebase(gen uint64, target float64) {
	p.gen = gen
	p.from = p.height
	p.target = target
	p.progress = 0
}

func (p *Progress) commit(progress, height float64) {
	p.progress = progress
	p.height = height
}

func (p *Progress) reset() {
	*p = Progress{progress: 1}
}

var _ Reader = (*Progress)(nil)
