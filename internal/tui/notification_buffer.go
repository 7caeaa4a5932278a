package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/folio/internal/core/eventbus"
	"github.com/colonyops/folio/internal/core/notify"
)

// NotificationBuffer buffers notifications and emits coalesced drain signals.
type NotificationBuffer struct {
	mu            sync.Mutex
	notifications []notify.Notification
	signal        chan struct{}
}

// NewNotificationBuffer constructs a buffer for async notification delivery.
func NewNotificationBuffer() *NotificationBuffer {
	return &NotificationBuffer{
		notifications: make([]notify.Notification, 0),
		signal:        make(chan struct{}, 1),
	}
}

// Attach forwards every notification published on bus into the buffer.
// Subscribers run on the bus goroutine, so the editor picks them up through
// WaitForSignal.
func (b *NotificationBuffer) Attach(bus *eventbus.EventBus) {
	bus.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
		b.Push(notify.Notification{Level: p.Level, Message: p.Message})
	})
}

// Push appends a notification and emits a non-blocking drain signal. A
// notification repeating the last undrained one is dropped.
func (b *NotificationBuffer) Push(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.mu.Lock()
	if k := len(b.notifications); k > 0 {
		last := b.notifications[k-1]
		if last.Level == n.Level && last.Message == n.Message {
			b.mu.Unlock()
			return
		}
	}
	b.notifications = append(b.notifications, n)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain returns all buffered notifications and clears the buffer.
func (b *NotificationBuffer) Drain() []notify.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.notifications) == 0 {
		return nil
	}

	out := make([]notify.Notification, len(b.notifications))
	copy(out, b.notifications)
	b.notifications = b.notifications[:0]
	return out
}

// WaitForSignal blocks until there are notifications ready to drain.
func (b *NotificationBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return drainNotificationsMsg{}
	}
}
