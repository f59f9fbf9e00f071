// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package keyboard observes soft-keyboard transitions and normalizes them.
//
// The platform layer reports keyboard motion as notifications that carry the
// end height, the animation duration and the animation curve. Those fields
// are not always present and the same physical motion is often reported more
// than once. The Observer turns that stream into exactly one Transition per
// physical motion, filling in fallback metadata where needed.
//
// # Key Types
//
//   - Notification: raw payload as produced by the platform layer
//   - Transition: normalized, immutable description of one keyboard motion
//   - Observer: deduplicates notifications and fans transitions out to listeners
//   - SoftKeyboard: simulated platform keyboard running on its own goroutine
//
// # Usage
//
//	obs := keyboard.NewObserver(keyboard.Options{Log: log})
//	sub := obs.Subscribe(keyboard.ListenerFunc(func(t keyboard.Transition) {
//	    program.Send(TransitionMsg{Transition: t})
//	}))
//	defer sub.Close()
package keyboard
