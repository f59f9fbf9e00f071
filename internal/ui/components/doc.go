// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual building blocks of the glide screen.

None of the components decide geometry. Heights and offsets come from the
dock each frame and the components only draw them, always filling exactly
the number of rows they are given so the screen never reflows mid-animation.

# Components

MessageList (message.go) - Transcript rendering with per-message caching.
Finished assistant replies go through glamour when markdown is enabled.

ChatViewport (viewport.go) - The message list window. Draws the transcript
at the coordinator's offset with a scroll bar, "more above" and "more below"
indicators, and the new-content pill.

StatusBar (statusbar.go) - Sync HUD with phase, progress, keyboard height,
bottom inset and offset. Narrow, medium and wide layouts.

KeyboardPanel (keyboard.go) - The simulated on-screen keyboard, cut to the
interpolated height.

# Usage

	theme := styles.NewTheme()
	list := components.NewMessageList(theme, 78, true, log)
	vp := components.NewChatViewport(theme)
	vp.SetSize(80, visibleRows)
	vp.SetContent(list.View(conv.Messages))
	vp.SetOffset(dock.Offset())
	view := vp.View()
*/
package components
