// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package replay drives a dock headlessly from a YAML scenario.
//
// A scenario lists timed steps: keyboard motion, typing, streamed content,
// user scrolling. The runner advances a manual clock one display frame at a
// time, routes platform notifications through a real keyboard observer and
// records the committed geometry of every frame. Each frame is checked
// against the bottom inset invariant and the offset bounds.
package replay
