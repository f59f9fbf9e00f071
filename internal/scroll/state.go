// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

// Phase is the coordinator state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTransitionStarting
	PhaseTransitionActive
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTransitionStarting:
		return "starting"
	case PhaseTransitionActive:
		return "active"
	case PhaseSettled:
		return "settled"
	}
	return "unknown"
}

// InTransition reports whether a keyboard transition owns the pin decision.
func (p Phase) InTransition() bool {
	return p == PhaseTransitionStarting || p == PhaseTransitionActive
}

// AnchorState is recomputed at the start of every keyboard transition.
type AnchorState struct {
	WasNearBottomBeforeTransition bool
	BottomInset                   float64
}

// Layout holds the fixed contributions to the bottom inset.
type Layout struct {
	FixedGap       float64
	SafeAreaBottom float64
}
