// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keyboard

import (
	"fmt"
	"strings"
	"time"
)

// Curve identifies the timing curve of a keyboard animation.
type Curve int

const (
	CurveLinear Curve = iota
	CurveEaseIn
	CurveEaseOut
	CurveEaseInOut
	// CurvePlatformKeyboard is the spring-like curve the platform uses for
	// its own keyboard motion.
	CurvePlatformKeyboard
)

// Fallbacks used when a notification arrives without animation metadata.
const (
	FallbackDuration = 250 * time.Millisecond
	FallbackCurve    = CurvePlatformKeyboard
)

var curveNames = map[Curve]string{
	CurveLinear:           "linear",
	CurveEaseIn:           "ease-in",
	CurveEaseOut:          "ease-out",
	CurveEaseInOut:        "ease-in-out",
	CurvePlatformKeyboard: "platform",
}

// String returns the config name of the curve.
func (c Curve) String() string {
	if name, ok := curveNames[c]; ok {
		return name
	}
	return fmt.Sprintf("curve(%d)", int(c))
}

// Valid reports whether c is a known curve.
func (c Curve) Valid() bool {
	_, ok := curveNames[c]
	return ok
}

// ParseCurve parses a curve name as written in config and scenario files.
func ParseCurve(s string) (Curve, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "keyboard", "spring":
		return CurvePlatformKeyboard, nil
	case "easeinout", "ease_in_out":
		return CurveEaseInOut, nil
	case "easein", "ease_in":
		return CurveEaseIn, nil
	case "easeout", "ease_out":
		return CurveEaseOut, nil
	}
	for c, n := range curveNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown curve %q", s)
}

// Platform curve codes. The numbering follows the UIKit animation curve
// enumeration, which is what most soft-keyboard hosts forward verbatim.
const (
	codeEaseInOut = 0
	codeEaseIn    = 1
	codeEaseOut   = 2
	codeLinear    = 3
	codeKeyboard  = 7
)

// CurveFromCode maps a raw platform curve code to a Curve.
func CurveFromCode(code int) (Curve, bool) {
	switch code {
	case codeEaseInOut:
		return CurveEaseInOut, true
	case codeEaseIn:
		return CurveEaseIn, true
	case codeEaseOut:
		return CurveEaseOut, true
	case codeLinear:
		return CurveLinear, true
	case codeKeyboard:
		return CurvePlatformKeyboard, true
	}
	return 0, false
}

// Code returns the raw platform code for c.
func (c Curve) Code() int {
	switch c {
	case CurveEaseInOut:
		return codeEaseInOut
	case CurveEaseIn:
		return codeEaseIn
	case CurveEaseOut:
		return codeEaseOut
	case CurveLinear:
		return codeLinear
	default:
		return codeKeyboard
	}
}

// Kind describes what the keyboard is doing.
type Kind int

const (
	KindShow Kind = iota
	KindHide
	KindChange
)

func (k Kind) String() string {
	switch k {
	case KindShow:
		return "show"
	case KindHide:
		return "hide"
	case KindChange:
		return "change"
	}
	return "unknown"
}

// Transition is one normalized keyboard motion. It is a value; once built it
// is never modified.
type Transition struct {
	// Seq is the platform identifier of the physical motion.
	Seq uint64
	Kind Kind

	TargetHeight float64
	Duration     time.Duration
	Curve        Curve
	// StartedAt is the platform timestamp at which the motion began.
	StartedAt time.Time

	// Degraded is set when fallback duration or curve were substituted.
	Degraded bool
}

// EndsAt returns the time at which the motion completes.
func (t Transition) EndsAt() time.Time {
	return t.StartedAt.Add(t.Duration)
}

func (t Transition) String() string {
	return fmt.Sprintf("#%d %s to %.1f over %s (%s)", t.Seq, t.Kind, t.TargetHeight, t.Duration, t.Curve)
}
