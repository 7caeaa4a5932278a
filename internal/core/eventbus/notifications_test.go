package eventbus_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/folio/internal/core/eventbus"
	"github.com/colonyops/folio/internal/core/eventbus/testbus"
	"github.com/colonyops/folio/internal/core/notify"
)

func TestNotificationRouter_ActionRejected(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishActionRejected(eventbus.ActionRejectedPayload{
		Action: "block.remove",
		Err:    errors.New("block is required"),
	})
	p := testbus.FindPayload[eventbus.NotificationPublishedPayload](tb, t, eventbus.EventNotificationPublished)

	assert.Equal(t, notify.LevelWarning, p.Level)
	assert.Contains(t, p.Message, "block.remove")
	assert.Contains(t, p.Message, "block is required")
}

func TestNotificationRouter_ActionRejectedWithoutError_doesNotPublish(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishActionRejected(eventbus.ActionRejectedPayload{Action: "noop"})
	tb.AssertNotPublished(t, eventbus.EventNotificationPublished, 100*time.Millisecond)
}

func TestNotificationRouter_DocumentSaved(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishDocumentSaved(eventbus.DocumentSavedPayload{Path: "/tmp/inv.json"})
	p := testbus.FindPayload[eventbus.NotificationPublishedPayload](tb, t, eventbus.EventNotificationPublished)

	assert.Equal(t, notify.LevelInfo, p.Level)
	assert.Contains(t, p.Message, "/tmp/inv.json")
}

func TestNotificationRouter_DraftChangedOnDisk(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishDraftChangedOnDisk(eventbus.DraftChangedOnDiskPayload{Path: "/tmp/inv.json"})
	p := testbus.FindPayload[eventbus.NotificationPublishedPayload](tb, t, eventbus.EventNotificationPublished)

	assert.Equal(t, notify.LevelWarning, p.Level)
	assert.Contains(t, p.Message, "changed on disk")
}

func TestNotificationRouter_DocumentChanged_doesNotPublish(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishDocumentChanged(eventbus.DocumentChangedPayload{Action: "item.add"})
	tb.AssertNotPublished(t, eventbus.EventNotificationPublished, 100*time.Millisecond)
}

func TestNotificationRouter_NilRouter(t *testing.T) {
	var r *eventbus.NotificationRouter
	assert.NotPanics(t, r.Register)
}
