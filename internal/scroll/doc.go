// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scroll owns the message list content offset and its bottom inset.
//
// The bottom inset is always the sum of the interpolated keyboard height, the
// composer height, a fixed gap and the bottom safe area. Whether the list
// follows the bottom edge during a keyboard transition is decided once, from
// the geometry before the transition moved anything, and held until the
// transition settles. Outside transitions, content growth scrolls smoothly
// to the bottom only when the reader was already near it; otherwise a
// "new content" marker is raised and the offset is left alone.
package scroll
