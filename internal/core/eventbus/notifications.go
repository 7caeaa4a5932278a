package eventbus

import (
	"fmt"

	"github.com/colonyops/folio/internal/core/notify"
)

// NotificationRouter maps domain events to user-facing notifications.
type NotificationRouter struct {
	bus *EventBus
}

// NewNotificationRouter constructs a router for event-to-notification mappings.
func NewNotificationRouter(bus *EventBus) *NotificationRouter {
	return &NotificationRouter{bus: bus}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil {
		return
	}

	r.bus.SubscribeActionRejected(func(p ActionRejectedPayload) {
		if p.Err == nil {
			return
		}
		r.notifyf(notify.LevelWarning, "%s rejected: %v", p.Action, p.Err)
	})

	r.bus.SubscribeDocumentSaved(func(p DocumentSavedPayload) {
		r.notifyf(notify.LevelInfo, "saved %s", p.Path)
	})

	r.bus.SubscribeDraftChangedOnDisk(func(p DraftChangedOnDiskPayload) {
		r.notifyf(notify.LevelWarning, "%s changed on disk; saving overwrites it", p.Path)
	})
}

func (r *NotificationRouter) notifyf(level notify.Level, format string, args ...any) {
	r.bus.PublishNotificationPublished(NotificationPublishedPayload{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}
