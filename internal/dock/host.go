// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dock

//go:generate mockgen -source=host.go -destination=../mock/host_mock.go -package=mock

// Host receives the discrete events of a dock.
type Host interface {
	OnSend(text string)
	OnFocus()
	OnBlur()
}

// NopHost ignores every event.
type NopHost struct{}

func (NopHost) OnSend(string) {}
func (NopHost) OnFocus()      {}
func (NopHost) OnBlur()       {}
