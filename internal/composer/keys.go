// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package composer

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the composer key bindings.
type KeyMap struct {
	Send    key.Binding
	Newline key.Binding
	Blur    key.Binding
}

// DefaultKeyMap returns the default composer bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("alt+enter", "newline"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss keyboard"),
		),
	}
}
