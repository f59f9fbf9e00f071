// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dock wires the keyboard observer, the animation synchronizer, the
// scroll coordinator and the composer for one screen.
//
// A Dock is created when a screen mounts and closed when it unmounts. It
// subscribes to the keyboard observer on the platform side and forwards each
// transition to the UI loop exactly once as a TransitionMsg. On the UI side
// it snapshots the scroll anchor before the synchronizer applies the first
// frame, and hands every committed frame to the coordinator so the bottom
// inset always equals keyboard height + composer height + gap + safe area.
package dock
