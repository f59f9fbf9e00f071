// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package motion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/glide/internal/keyboard"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newSync() (*Synchronizer, *Progress) {
	p := NewProgress()
	return NewSynchronizer(p, Options{Clock: NewManualClock(t0)}), p
}

func showTransition(at time.Time, target float64) keyboard.Transition {
	return keyboard.Transition{
		Seq:          1,
		Kind:         keyboard.KindShow,
		TargetHeight: target,
		Duration:     250 * time.Millisecond,
		Curve:        keyboard.CurvePlatformKeyboard,
		StartedAt:    at,
	}
}

func TestSynchronizer_RunsToExactTarget(t *testing.T) {
	s, p := newSync()
	gen := s.Start(showTransition(t0, 300))

	var samples []Sample
	for ts := t0; ; ts = ts.Add(s.Interval()) {
		smp, err := s.Sample(FrameMsg{Gen: gen, Time: ts})
		require.NoError(t, err)
		samples = append(samples, smp)
		if smp.Final {
			break
		}
		require.Less(t, len(samples), 100)
	}

	last := samples[len(samples)-1]
	assert.Equal(t, 1.0, last.Progress)
	assert.Equal(t, 300.0, last.KeyboardHeight)
	assert.Equal(t, 300.0, p.KeyboardHeight())
	assert.Equal(t, 1.0, p.Progress())

	for i := 1; i < len(samples); i++ {
		assert.GreaterOrEqual(t, samples[i].Progress, samples[i-1].Progress)
		assert.GreaterOrEqual(t, samples[i].KeyboardHeight, samples[i-1].KeyboardHeight)
	}

	_, active := s.Active()
	assert.False(t, active)
	_, err := s.Sample(FrameMsg{Gen: gen, Time: t0.Add(time.Second)})
	assert.ErrorIs(t, err, ErrStaleTransition)
}

func TestSynchronizer_ProgressNeverGoesBackwards(t *testing.T) {
	s, _ := newSync()
	gen := s.Start(showTransition(t0, 300))

	a, err := s.Sample(FrameMsg{Gen: gen, Time: t0.Add(120 * time.Millisecond)})
	require.NoError(t, err)
	b, err := s.Sample(FrameMsg{Gen: gen, Time: t0.Add(60 * time.Millisecond)})
	require.NoError(t, err)

	assert.Equal(t, a.Progress, b.Progress)
	assert.Equal(t, a.KeyboardHeight, b.KeyboardHeight)
}

func TestSynchronizer_FrameBeforeStartIsZero(t *testing.T) {
	s, _ := newSync()
	gen := s.Start(showTransition(t0, 300))

	smp, err := s.Sample(FrameMsg{Gen: gen, Time: t0.Add(-10 * time.Millisecond)})
	require.NoError(t, err)
	assert.Zero(t, smp.Progress)
	assert.Zero(t, smp.KeyboardHeight)
}

func TestSynchronizer_SupersededTransitionIsDropped(t *testing.T) {
	s, p := newSync()
	show := s.Start(showTransition(t0, 300))

	mid, err := s.Sample(FrameMsg{Gen: show, Time: t0.Add(80 * time.Millisecond)})
	require.NoError(t, err)
	require.Greater(t, mid.KeyboardHeight, 0.0)
	require.Less(t, mid.KeyboardHeight, 300.0)

	hideAt := t0.Add(90 * time.Millisecond)
	hide := s.Start(keyboard.Transition{
		Seq:       2,
		Kind:      keyboard.KindHide,
		Duration:  250 * time.Millisecond,
		Curve:     keyboard.CurveEaseInOut,
		StartedAt: hideAt,
	})
	assert.Greater(t, hide, show)

	// the interrupted height is where the new transition starts
	assert.Equal(t, mid.KeyboardHeight, p.From())
	assert.Equal(t, mid.KeyboardHeight, p.KeyboardHeight())
	assert.Zero(t, p.Progress())

	_, err = s.Sample(FrameMsg{Gen: show, Time: t0.Add(100 * time.Millisecond)})
	assert.ErrorIs(t, err, ErrStaleTransition)
	assert.Equal(t, mid.KeyboardHeight, p.KeyboardHeight())
	assert.Equal(t, 1, s.Stale())

	first, err := s.Sample(FrameMsg{Gen: hide, Time: hideAt})
	require.NoError(t, err)
	assert.Equal(t, mid.KeyboardHeight, first.KeyboardHeight)

	end, err := s.Sample(FrameMsg{Gen: hide, Time: hideAt.Add(time.Second)})
	require.NoError(t, err)
	assert.True(t, end.Final)
	assert.Equal(t, 0.0, end.KeyboardHeight)
}

func TestSynchronizer_StampsMissingStart(t *testing.T) {
	clock := NewManualClock(t0)
	p := NewProgress()
	s := NewSynchronizer(p, Options{Clock: clock})

	tr := showTransition(time.Time{}, 100)
	gen := s.Start(tr)
	smp, err := s.Sample(FrameMsg{Gen: gen, Time: t0.Add(250 * time.Millisecond)})
	require.NoError(t, err)
	assert.True(t, smp.Final)
}

func TestSynchronizer_CloseResets(t *testing.T) {
	s, p := newSync()
	gen := s.Start(showTransition(t0, 300))
	_, err := s.Sample(FrameMsg{Gen: gen, Time: t0.Add(100 * time.Millisecond)})
	require.NoError(t, err)

	s.Close()
	assert.Zero(t, p.KeyboardHeight())
	_, err = s.Sample(FrameMsg{Gen: gen, Time: t0.Add(120 * time.Millisecond)})
	assert.ErrorIs(t, err, ErrStaleTransition)
}

func TestSynchronizer_FrameRate(t *testing.T) {
	s := NewSynchronizer(NewProgress(), Options{FrameRate: 120})
	assert.Equal(t, time.Second/120, s.Interval())
	assert.NotNil(t, s.FrameCmd(1))

	d := NewSynchronizer(NewProgress(), Options{})
	assert.Equal(t, time.Second/DefaultFrameRate, d.Interval())
}
