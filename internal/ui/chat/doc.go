// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the glide screen: a message list with a composer docked
above a simulated on-screen keyboard.

# Key Components

## Model (model.go)

Model is the Bubble Tea model. It owns a dock.Dock and acts as its host:
  - OnSend appends the user's message and starts a streamed reply
  - OnFocus and OnBlur raise and dismiss the keyboard

## Update Loop (update.go)

Routes keyboard transitions and animation frames to the dock, handles keys,
mouse wheel and resize, and moves streamed tokens into the transcript. After
every message the dock's offset and inset are copied into the components.

## View Rendering (view.go)

The screen is stacked top to bottom: sync HUD, message list, gap, composer,
keyboard and safe area. Each section is cut to its row count, so the list
shrinks exactly as much as the docked parts grow.

## Streaming (streaming.go, responder.go)

Responder paces canned replies with golang.org/x/time/rate and sends them
through the program. StreamingBuffer batches tokens so the transcript is
re-measured at most MaxFPS times per second.

# Usage

	m := chat.New(chat.Options{
		Config:   cfg,
		Observer: obs,
		Keyboard: kb,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	m.SetSend(p.Send)
	if _, err := p.Run(); err != nil {
		return err
	}
*/
package chat
