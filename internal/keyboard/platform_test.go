// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keyboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startKeyboard(t *testing.T, opts SoftKeyboardOptions) (*SoftKeyboard, <-chan Notification) {
	t.Helper()
	out := make(chan Notification, 32)
	kb := NewSoftKeyboard(func(n Notification) { out <- n }, opts)

	ctx, cancel := context.WithCancel(context.Background())
	go kb.Run(ctx)
	t.Cleanup(cancel)
	return kb, out
}

func next(t *testing.T, ch <-chan Notification) Notification {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
	}
	return Notification{}
}

func TestSoftKeyboard_ShowHide(t *testing.T) {
	kb, out := startKeyboard(t, SoftKeyboardOptions{
		Height:    9,
		Duration:  250 * time.Millisecond,
		CurveCode: 7,
	})

	kb.Show()
	n := next(t, out)
	assert.Equal(t, KindShow, n.Kind)
	assert.Equal(t, 9.0, n.EndHeight)
	require.NotNil(t, n.CurveCode)
	assert.Equal(t, 7, *n.CurveCode)
	assert.Equal(t, 250*time.Millisecond, n.Duration)

	kb.Hide()
	n = next(t, out)
	assert.Equal(t, KindHide, n.Kind)
	assert.Zero(t, n.EndHeight)
	assert.Equal(t, uint64(2), n.ID)
}

func TestSoftKeyboard_AccessoryAndExternal(t *testing.T) {
	kb, out := startKeyboard(t, SoftKeyboardOptions{Height: 9, AccessoryHeight: 2, Duration: time.Millisecond})

	kb.Show()
	next(t, out)

	kb.SetAccessory(true)
	n := next(t, out)
	assert.Equal(t, KindChange, n.Kind)
	assert.Equal(t, 11.0, n.EndHeight)

	kb.AttachExternal(true)
	n = next(t, out)
	assert.Equal(t, KindChange, n.Kind)
	assert.Equal(t, 2.0, n.EndHeight)

	kb.SetAccessory(false)
	n = next(t, out)
	assert.Equal(t, KindHide, n.Kind)
	assert.Zero(t, n.EndHeight)
}

func TestSoftKeyboard_NoNotificationWithoutMotion(t *testing.T) {
	kb, out := startKeyboard(t, SoftKeyboardOptions{Height: 9})

	kb.Hide()
	kb.SetAccessory(false)
	kb.Show()

	n := next(t, out)
	assert.Equal(t, uint64(1), n.ID)
	assert.Equal(t, KindShow, n.Kind)
}

func TestSoftKeyboard_DropMetadataAndEcho(t *testing.T) {
	kb, out := startKeyboard(t, SoftKeyboardOptions{
		Height:            9,
		Duration:          time.Millisecond,
		DropMetadataEvery: 2,
		EchoFrameChange:   true,
	})

	kb.Show()
	first := next(t, out)
	echo := next(t, out)
	assert.Equal(t, first.ID, echo.ID)
	assert.NotNil(t, first.CurveCode)

	kb.Hide()
	n := next(t, out)
	assert.Nil(t, n.CurveCode)
	assert.Zero(t, n.Duration)
}
