// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keyboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestParseCurve(t *testing.T) {
	tests := []struct {
		in   string
		want Curve
	}{
		{"linear", CurveLinear},
		{"ease-in", CurveEaseIn},
		{"EaseOut", CurveEaseOut},
		{"ease_in_out", CurveEaseInOut},
		{"platform", CurvePlatformKeyboard},
		{" keyboard ", CurvePlatformKeyboard},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCurve(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCurve("bouncy")
	assert.Error(t, err)
}

func TestCurveCodeRoundTrip(t *testing.T) {
	for c := range curveNames {
		got, ok := CurveFromCode(c.Code())
		require.True(t, ok)
		assert.Equal(t, c, got)
	}
	_, ok := CurveFromCode(42)
	assert.False(t, ok)
}

func TestNormalize_Complete(t *testing.T) {
	at := time.Unix(100, 0)
	tr, err := Normalize(Notification{
		ID:        3,
		Kind:      KindShow,
		EndHeight: 300,
		Duration:  400 * time.Millisecond,
		CurveCode: intPtr(codeEaseOut),
		Timestamp: at,
	}, DefaultFallback())

	require.NoError(t, err)
	assert.Equal(t, uint64(3), tr.Seq)
	assert.Equal(t, 300.0, tr.TargetHeight)
	assert.Equal(t, 400*time.Millisecond, tr.Duration)
	assert.Equal(t, CurveEaseOut, tr.Curve)
	assert.Equal(t, at, tr.StartedAt)
	assert.Equal(t, at.Add(400*time.Millisecond), tr.EndsAt())
	assert.False(t, tr.Degraded)
}

func TestNormalize_MissingMetadata(t *testing.T) {
	tr, err := Normalize(Notification{ID: 1, Kind: KindShow, EndHeight: 300}, DefaultFallback())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingAnimationMetadata))
	assert.Equal(t, FallbackDuration, tr.Duration)
	assert.Equal(t, FallbackCurve, tr.Curve)
	assert.Equal(t, 300.0, tr.TargetHeight)
	assert.True(t, tr.Degraded)
}

func TestNormalize_UnknownCurveCode(t *testing.T) {
	fb := Fallback{Duration: time.Second, Curve: CurveLinear}
	tr, err := Normalize(Notification{
		Kind:      KindChange,
		EndHeight: 120,
		Duration:  100 * time.Millisecond,
		CurveCode: intPtr(99),
	}, fb)

	assert.ErrorIs(t, err, ErrMissingAnimationMetadata)
	assert.Equal(t, CurveLinear, tr.Curve)
	assert.Equal(t, 100*time.Millisecond, tr.Duration)
}

func TestNormalize_HideTargetsZero(t *testing.T) {
	tr, err := Normalize(Notification{
		Kind:      KindHide,
		EndHeight: 300,
		Duration:  250 * time.Millisecond,
		CurveCode: intPtr(codeKeyboard),
	}, DefaultFallback())

	require.NoError(t, err)
	assert.Zero(t, tr.TargetHeight)
}

func TestNormalize_NegativeHeightClamps(t *testing.T) {
	tr, _ := Normalize(Notification{Kind: KindChange, EndHeight: -5}, DefaultFallback())
	assert.Zero(t, tr.TargetHeight)
}
