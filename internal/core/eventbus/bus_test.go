package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startBus(t *testing.T, buffer int) *EventBus {
	t.Helper()
	bus := New(buffer)
	ctx, cancel := context.WithCancel(context.Background())
	go bus.Start(ctx)
	t.Cleanup(cancel)
	return bus
}

func TestEventBus_DeliversInOrder(t *testing.T) {
	bus := startBus(t, 8)

	var (
		mu  sync.Mutex
		got []uint64
	)
	done := make(chan struct{})
	bus.SubscribeFocusCleared(func(p FocusClearedPayload) {
		mu.Lock()
		got = append(got, p.Seq)
		n := len(got)
		mu.Unlock()
		if n == 3 {
			close(done)
		}
	})

	for i := uint64(1); i <= 3; i++ {
		bus.PublishFocusCleared(FocusClearedPayload{Seq: i})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("events not delivered")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []uint64{1, 2, 3}, got)
}

func TestEventBus_DropsWhenFull(t *testing.T) {
	bus := New(1) // not started, nothing drains the buffer

	var dropped []Event
	bus.OnDrop(func(e Event, _ any) { dropped = append(dropped, e) })

	bus.PublishEditorStopped(EditorStoppedPayload{})
	bus.PublishEditorStopped(EditorStoppedPayload{})

	require.Len(t, dropped, 1)
	assert.Equal(t, EventEditorStopped, dropped[0])
}

func TestEventBus_SubscriberPanicIsContained(t *testing.T) {
	bus := startBus(t, 8)

	panicked := make(chan any, 1)
	bus.OnPanic(func(_ Event, _ any, r any) { panicked <- r })

	delivered := make(chan struct{})
	bus.SubscribeEditorStarted(func(EditorStartedPayload) { panic("boom") })
	bus.SubscribeEditorStarted(func(EditorStartedPayload) { close(delivered) })

	bus.PublishEditorStarted(EditorStartedPayload{InvoiceID: "x"})

	select {
	case r := <-panicked:
		assert.Equal(t, "boom", r)
	case <-time.After(time.Second):
		t.Fatal("panic hook not called")
	}
	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("second subscriber not called")
	}
}

func TestEventBus_OnSubscribe(t *testing.T) {
	bus := New(1)
	var seen []Event
	bus.OnSubscribe(func(e Event) { seen = append(seen, e) })

	bus.SubscribeDocumentSaved(func(DocumentSavedPayload) {})

	assert.Equal(t, []Event{EventDocumentSaved}, seen)
}
