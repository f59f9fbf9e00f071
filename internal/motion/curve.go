// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package motion

import (
	"sync"

	"github.com/charmbracelet/harmonica"

	"github.com/jeranaias/glide/internal/keyboard"
)

// =============================================================================
// EASING
// =============================================================================

// EasingFunc maps linear progress (0-1) to eased progress (0-1).
type EasingFunc func(t float64) float64

// EaseLinear - constant speed
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad - accelerating from zero
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad - decelerating to zero
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// EaseInOutQuad - acceleration until halfway, then deceleration
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EaseOutCubic - decelerating to zero (smoother)
func EaseOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}

// =============================================================================
// PLATFORM KEYBOARD CURVE
// =============================================================================

const (
	springSamples   = 240
	springFrequency = 10.0
	springDamping   = 1.0
)

var (
	springOnce  sync.Once
	springTable []float64
)

// buildSpringTable runs a critically damped spring from rest at 0 toward 1
// for one simulated second and rescales it so the last sample is exactly 1.
func buildSpringTable() {
	spring := harmonica.NewSpring(harmonica.FPS(springSamples), springFrequency, springDamping)

	table := make([]float64, springSamples+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= springSamples; i++ {
		pos, vel = spring.Update(pos, vel, 1.0)
		table[i] = pos
	}
	end := table[springSamples]
	for i := range table {
		table[i] /= end
	}
	table[springSamples] = 1
	springTable = table
}

// EaseKeyboard follows the platform's spring-like keyboard curve.
func EaseKeyboard(t float64) float64 {
	springOnce.Do(buildSpringTable)

	pos := t * springSamples
	i := int(pos)
	if i >= springSamples {
		return 1
	}
	frac := pos - float64(i)
	return springTable[i] + (springTable[i+1]-springTable[i])*frac
}

// Easing returns the easing function for a keyboard curve.
func Easing(c keyboard.Curve) EasingFunc {
	switch c {
	case keyboard.CurveLinear:
		return EaseLinear
	case keyboard.CurveEaseIn:
		return EaseInQuad
	case keyboard.CurveEaseOut:
		return EaseOutQuad
	case keyboard.CurveEaseInOut:
		return EaseInOutQuad
	default:
		return EaseKeyboard
	}
}

// Ease evaluates curve c at t, clamping t to [0,1]. Ease(c, 1) is exactly 1.
func Ease(c keyboard.Curve, t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return Easing(c)(t)
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
