// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small text and file helpers shared by the UI and
// configuration packages.
//
// # Key Functions
//
//   - WrapLines, CountLines: display-width aware soft wrapping
//   - TruncateWidth: column-based truncation
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
