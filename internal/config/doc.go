// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for glide.
//
// # Key Types
//
//   - Config: main configuration structure
//   - LayoutConfig: fixed inset contributions and the near-bottom threshold
//   - ComposerConfig: composer height bounds and entry limits
//   - KeyboardConfig: simulated keyboard geometry, timing and fallbacks
//   - Watcher: hot reload of the config file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (GLIDE_*)
//   - ~/.glide/config.toml, or the file given with --config
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	bounds := cfg.Composer.Bounds()
package config
