// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package composer implements the growing multi-line text entry.
//
// The composer wraps a bubbles textarea. Its height follows its wrapped
// content between a minimum and a maximum; past the maximum the entry
// scrolls internally. Every text change is measured synchronously and height
// changes are reported through OnHeightChange so the scroll coordinator can
// fold them into the bottom inset on the same frame.
package composer
