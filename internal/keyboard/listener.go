// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keyboard

//go:generate mockgen -source=listener.go -destination=../mock/listener_mock.go -package=mock

// Listener receives normalized keyboard transitions.
//
// OnTransition is called on the platform goroutine. Implementations must not
// block and must not touch UI state directly; they hand the transition to the
// UI loop instead.
type Listener interface {
	OnTransition(t Transition)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(t Transition)

// OnTransition calls f(t).
func (f ListenerFunc) OnTransition(t Transition) {
	f(t)
}
