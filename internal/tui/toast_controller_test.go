package tui

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/folio/internal/core/notify"
)

func info(msg string) notify.Notification {
	return notify.Notification{Level: notify.LevelInfo, Message: msg}
}

func TestToastController_Push(t *testing.T) {
	c := NewToastController(0)

	c.Push(info("saved"))

	require.True(t, c.HasToasts())
	assert.Equal(t, "saved", c.Toasts()[0].notification.Message)
	assert.Equal(t, defaultToastTTL, c.Toasts()[0].remaining)
}

func TestToastController_ErrorsLiveLonger(t *testing.T) {
	c := NewToastController(time.Second)

	c.Push(notify.Notification{Level: notify.LevelError, Message: "write failed"})

	assert.Equal(t, 2*time.Second, c.Toasts()[0].remaining)
}

func TestToastController_RepeatsCollapse(t *testing.T) {
	c := NewToastController(time.Second)

	c.Push(info("totals block is required"))
	c.Tick(600 * time.Millisecond)
	c.Push(info("totals block is required"))

	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, 1, c.Toasts()[0].repeats)
	assert.Equal(t, time.Second, c.Toasts()[0].remaining, "a repeat restarts the ttl")

	c.Push(info("other"))
	c.Push(info("totals block is required"))
	assert.Len(t, c.Toasts(), 3, "only consecutive repeats collapse")
}

func TestToastController_EvictsOldest(t *testing.T) {
	c := NewToastController(0)

	for i := range defaultMaxToasts + 2 {
		c.Push(info(fmt.Sprintf("n%d", i)))
	}

	assert.Len(t, c.Toasts(), defaultMaxToasts)
	assert.Equal(t, "n2", c.Toasts()[0].notification.Message)
}

func TestToastController_Tick(t *testing.T) {
	c := NewToastController(time.Second)
	c.Push(info("expires"))
	c.Tick(500 * time.Millisecond)
	c.Push(info("survives"))

	c.Tick(600 * time.Millisecond)

	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, "survives", c.Toasts()[0].notification.Message)
}

func TestToastController_Dismiss(t *testing.T) {
	c := NewToastController(0)
	c.Dismiss()
	assert.False(t, c.HasToasts())

	c.Push(info("first"))
	c.Push(info("second"))
	c.Dismiss()

	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, "first", c.Toasts()[0].notification.Message)
}
