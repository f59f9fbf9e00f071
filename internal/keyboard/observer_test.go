// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keyboard_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jeranaias/glide/internal/keyboard"
	"github.com/jeranaias/glide/internal/mock"
)

func code(i int) *int { return &i }

func show(id uint64, h float64) keyboard.Notification {
	return keyboard.Notification{
		ID:        id,
		Kind:      keyboard.KindShow,
		EndHeight: h,
		Duration:  250 * time.Millisecond,
		CurveCode: code(7),
		Timestamp: time.Unix(10, 0),
	}
}

func TestObserver_DeliversOncePerMotion(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mock.NewMockListener(ctrl)

	obs := keyboard.NewObserver(keyboard.Options{})
	sub := obs.Subscribe(l)
	defer sub.Close()

	l.EXPECT().OnTransition(gomock.Any()).Do(func(tr keyboard.Transition) {
		assert.Equal(t, 300.0, tr.TargetHeight)
		assert.Equal(t, keyboard.CurvePlatformKeyboard, tr.Curve)
	}).Times(1)

	obs.Deliver(show(1, 300))
	echo := show(1, 300)
	echo.Kind = keyboard.KindChange
	obs.Deliver(echo)

	stats := obs.Stats()
	assert.Equal(t, 1, stats.Delivered)
	assert.Equal(t, 1, stats.Duplicates)
}

func TestObserver_FansOutToAllListeners(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := mock.NewMockListener(ctrl)
	b := mock.NewMockListener(ctrl)

	obs := keyboard.NewObserver(keyboard.Options{})
	obs.Subscribe(a)
	obs.Subscribe(b)

	a.EXPECT().OnTransition(gomock.Any()).Times(2)
	b.EXPECT().OnTransition(gomock.Any()).Times(2)

	obs.Deliver(show(1, 300))
	obs.Deliver(keyboard.Notification{ID: 2, Kind: keyboard.KindHide})
}

func TestObserver_UnsubscribeStopsDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mock.NewMockListener(ctrl)

	obs := keyboard.NewObserver(keyboard.Options{})
	sub := obs.Subscribe(l)

	l.EXPECT().OnTransition(gomock.Any()).Times(1)
	obs.Deliver(show(1, 300))

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, obs.Listeners())

	obs.Deliver(show(2, 200))
}

func TestObserver_DegradedMetadataFallsBack(t *testing.T) {
	var got []keyboard.Transition
	obs := keyboard.NewObserver(keyboard.Options{
		Fallback: keyboard.Fallback{Duration: 300 * time.Millisecond, Curve: keyboard.CurveEaseOut},
	})
	obs.Subscribe(keyboard.ListenerFunc(func(tr keyboard.Transition) { got = append(got, tr) }))

	obs.Deliver(keyboard.Notification{ID: 1, Kind: keyboard.KindShow, EndHeight: 280})

	require.Len(t, got, 1)
	assert.True(t, got[0].Degraded)
	assert.Equal(t, 300*time.Millisecond, got[0].Duration)
	assert.Equal(t, keyboard.CurveEaseOut, got[0].Curve)
	assert.Equal(t, 1, obs.Stats().Degraded)
}

func TestObserver_StampsMissingTimestamp(t *testing.T) {
	at := time.Unix(42, 0)
	var got keyboard.Transition
	obs := keyboard.NewObserver(keyboard.Options{Now: func() time.Time { return at }})
	obs.Subscribe(keyboard.ListenerFunc(func(tr keyboard.Transition) { got = tr }))

	n := show(1, 300)
	n.Timestamp = time.Time{}
	obs.Deliver(n)

	assert.Equal(t, at, got.StartedAt)
}

func TestObserver_CloseIgnoresLaterNotifications(t *testing.T) {
	calls := 0
	obs := keyboard.NewObserver(keyboard.Options{})
	obs.Subscribe(keyboard.ListenerFunc(func(keyboard.Transition) { calls++ }))

	obs.Close()
	obs.Deliver(show(1, 300))
	obs.Subscribe(keyboard.ListenerFunc(func(keyboard.Transition) { calls++ }))
	obs.Deliver(show(2, 300))

	assert.Zero(t, calls)
	assert.Zero(t, obs.Listeners())
}

func TestObserver_ConcurrentSubscribeAndDeliver(t *testing.T) {
	obs := keyboard.NewObserver(keyboard.Options{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := obs.Subscribe(keyboard.ListenerFunc(func(keyboard.Transition) {}))
			sub.Close()
		}()
	}
	for i := 1; i <= 50; i++ {
		obs.Deliver(show(uint64(i), float64(i)))
	}
	wg.Wait()
	assert.Equal(t, 50, obs.Stats().Delivered)
}

func TestObserver_ConcurrentDeliveriesStayInOrder(t *testing.T) {
	obs := keyboard.NewObserver(keyboard.Options{})

	var (
		mu      sync.Mutex
		seen    []uint64
		entered = make(chan struct{})
		release = make(chan struct{})
	)
	obs.Subscribe(keyboard.ListenerFunc(func(tr keyboard.Transition) {
		if tr.Seq == 1 {
			close(entered)
			<-release
		}
		mu.Lock()
		seen = append(seen, tr.Seq)
		mu.Unlock()
	}))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		obs.Deliver(show(1, 300))
	}()
	<-entered
	go func() {
		defer wg.Done()
		hide := show(2, 0)
		hide.Kind = keyboard.KindHide
		obs.Deliver(hide)
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, []uint64{1, 2}, seen)
}

func TestSubscription_CloseDuringFanOut(t *testing.T) {
	obs := keyboard.NewObserver(keyboard.Options{})

	calls := 0
	var subs [2]*keyboard.Subscription
	for i := range subs {
		other := 1 - i
		subs[i] = obs.Subscribe(keyboard.ListenerFunc(func(keyboard.Transition) {
			calls++
			subs[other].Close()
		}))
	}

	obs.Deliver(show(1, 300))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, obs.Listeners())

	obs.Deliver(show(2, 0))
	assert.Equal(t, 2, calls)
}
