// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package motion drives keyboard-synchronized layout animation.

A keyboard transition is handed to the Synchronizer once. From then on every
display frame samples the curve locally from the transition's start time and
duration, so nothing has to be pushed across goroutines per frame. Frames are
tagged with the generation of the transition that scheduled them; starting a
new transition bumps the generation and every older frame is dropped.

# Key Components

## Progress (progress.go)

The per-screen state object holding the interpolation progress in [0,1] and
the derived keyboard height. Only the Synchronizer writes it; everything else
reads it through Reader.

## Synchronizer (synchronizer.go)

Start, Sample and the tea.Tick frame command.

## Curves (curve.go)

Easing functions plus the platform keyboard curve, a critically damped
spring sampled once into a lookup table.
*/
package motion
