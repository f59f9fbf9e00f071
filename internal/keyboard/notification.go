// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keyboard

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingAnimationMetadata is reported when a notification lacks a usable
// duration or curve and fallbacks were substituted.
var ErrMissingAnimationMetadata = errors.New("keyboard: missing animation metadata")

// Notification is the raw payload emitted by the platform layer.
//
// Duration and CurveCode are optional: a zero Duration and a nil CurveCode
// mean the platform did not report them.
type Notification struct {
	ID        uint64
	Kind      Kind
	EndHeight float64
	Duration  time.Duration
	CurveCode *int
	Timestamp time.Time
}

// Fallback holds the metadata substituted for incomplete notifications.
type Fallback struct {
	Duration time.Duration
	Curve    Curve
}

// DefaultFallback returns the built-in fallback metadata.
func DefaultFallback() Fallback {
	return Fallback{Duration: FallbackDuration, Curve: FallbackCurve}
}

// Normalize converts a notification into a Transition. It always returns a
// usable Transition; the error wraps ErrMissingAnimationMetadata when any
// fallback was applied.
func Normalize(n Notification, fb Fallback) (Transition, error) {
	if fb.Duration <= 0 {
		fb.Duration = FallbackDuration
	}
	if !fb.Curve.Valid() {
		fb.Curve = FallbackCurve
	}

	t := Transition{
		Seq:          n.ID,
		Kind:         n.Kind,
		TargetHeight: n.EndHeight,
		Duration:     n.Duration,
		StartedAt:    n.Timestamp,
	}
	if t.Kind == KindHide || t.TargetHeight < 0 {
		t.TargetHeight = 0
	}

	var missing []string
	if t.Duration <= 0 {
		t.Duration = fb.Duration
		missing = append(missing, "duration")
	}
	if n.CurveCode == nil {
		t.Curve = fb.Curve
		missing = append(missing, "curve")
	} else if c, ok := CurveFromCode(*n.CurveCode); ok {
		t.Curve = c
	} else {
		t.Curve = fb.Curve
		missing = append(missing, fmt.Sprintf("curve code %d", *n.CurveCode))
	}

	if len(missing) == 0 {
		return t, nil
	}
	t.Degraded = true
	return t, fmt.Errorf("%w: %v", ErrMissingAnimationMetadata, missing)
}
