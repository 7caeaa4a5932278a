package tui

import (
	"time"

	"github.com/colonyops/folio/internal/core/notify"
)

const (
	defaultToastTTL   = 4 * time.Second
	defaultMaxToasts  = 4
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 44
)

type toast struct {
	notification notify.Notification
	remaining    time.Duration
	repeats      int
}

// ToastController keeps the stack of visible toasts. Errors stay twice as
// long as other levels. A notification repeating the newest toast bumps its
// repeat count instead of stacking, so a held key that keeps getting
// rejected shows one toast.
type ToastController struct {
	ttl     time.Duration
	toasts  []toast
	ticking bool
}

// NewToastController returns a controller with the given base TTL. A ttl of
// zero uses defaultToastTTL.
func NewToastController(ttl time.Duration) *ToastController {
	if ttl <= 0 {
		ttl = defaultToastTTL
	}
	return &ToastController{ttl: ttl}
}

func (c *ToastController) ttlFor(level notify.Level) time.Duration {
	if level == notify.LevelError {
		return 2 * c.ttl
	}
	return c.ttl
}

// Push adds a notification to the stack, evicting the oldest toast past
// defaultMaxToasts.
func (c *ToastController) Push(n notify.Notification) {
	if last := len(c.toasts) - 1; last >= 0 {
		prev := &c.toasts[last]
		if prev.notification.Level == n.Level && prev.notification.Message == n.Message {
			prev.repeats++
			prev.remaining = c.ttlFor(n.Level)
			return
		}
	}

	c.toasts = append(c.toasts, toast{
		notification: n,
		remaining:    c.ttlFor(n.Level),
	})
	if len(c.toasts) > defaultMaxToasts {
		c.toasts = c.toasts[len(c.toasts)-defaultMaxToasts:]
	}
}

// Tick counts d off every toast and drops the expired ones.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

func (c *ToastController) Toasts() []toast {
	return c.toasts
}

// Ticking reports whether a tick chain is scheduled.
func (c *ToastController) Ticking() bool {
	return c.ticking
}

func (c *ToastController) SetTicking(v bool) {
	c.ticking = v
}
