// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within folio.
package eventbus

import (
	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/navigation"
	"github.com/colonyops/folio/internal/core/notify"
)

// Keep list sorted A-Z
const (
	EventActionRejected        Event = "action.rejected"
	EventDocumentChanged       Event = "document.changed"
	EventDocumentSaved         Event = "document.saved"
	EventDraftChangedOnDisk    Event = "draft.changed-on-disk"
	EventEditorStarted         Event = "editor.started"
	EventEditorStopped         Event = "editor.stopped"
	EventFocusCleared          Event = "focus.cleared"
	EventFocusRequested        Event = "focus.requested"
	EventModeChoiceRequested   Event = "mode.choice-requested"
	EventNotificationPublished Event = "notification.published"
)

// Events lists every event the bus carries.
var Events = []Event{
	EventActionRejected,
	EventDocumentChanged,
	EventDocumentSaved,
	EventDraftChangedOnDisk,
	EventEditorStarted,
	EventEditorStopped,
	EventFocusCleared,
	EventFocusRequested,
	EventModeChoiceRequested,
	EventNotificationPublished,
}

// ActionRejectedPayload is emitted when an editor action violates a document
// invariant and is refused.
type ActionRejectedPayload struct {
	Action string
	Err    error
}

// DocumentChangedPayload is emitted after every accepted mutation. Invoice is
// an immutable snapshot.
type DocumentChangedPayload struct {
	Action  string
	Invoice *document.Invoice
}

// DocumentSavedPayload is emitted when the document is written to disk.
type DocumentSavedPayload struct {
	Path string
}

// DraftChangedOnDiskPayload is emitted when another program rewrites the
// draft being edited.
type DraftChangedOnDiskPayload struct {
	Path string
}

// EditorStartedPayload is emitted when the editor UI starts.
type EditorStartedPayload struct {
	InvoiceID string
}

// EditorStoppedPayload is emitted when the editor UI stops.
type EditorStoppedPayload struct{}

// FocusClearedPayload is emitted when the focus target with Seq was
// acknowledged and cleared.
type FocusClearedPayload struct {
	Seq uint64
}

// FocusRequestedPayload is emitted when a click resolved to a panel and an
// element inside it.
type FocusRequestedPayload struct {
	Panel navigation.Panel
	Focus document.FocusTarget
}

// ModeChoiceRequestedPayload is emitted when a click on a table needs the
// user to pick between content and layout editing.
type ModeChoiceRequestedPayload struct {
	Target document.ClickTarget
}

// NotificationPublishedPayload carries a user facing notification.
type NotificationPublishedPayload struct {
	Level   notify.Level
	Message string
}

func (bus *EventBus) PublishActionRejected(p ActionRejectedPayload) {
	bus.send(EventActionRejected, p)
}

func (bus *EventBus) SubscribeActionRejected(fn func(ActionRejectedPayload)) {
	subscribeTyped(bus, EventActionRejected, fn)
}

func (bus *EventBus) PublishDocumentChanged(p DocumentChangedPayload) {
	bus.send(EventDocumentChanged, p)
}

func (bus *EventBus) SubscribeDocumentChanged(fn func(DocumentChangedPayload)) {
	subscribeTyped(bus, EventDocumentChanged, fn)
}

func (bus *EventBus) PublishDocumentSaved(p DocumentSavedPayload) {
	bus.send(EventDocumentSaved, p)
}

func (bus *EventBus) SubscribeDocumentSaved(fn func(DocumentSavedPayload)) {
	subscribeTyped(bus, EventDocumentSaved, fn)
}

func (bus *EventBus) PublishDraftChangedOnDisk(p DraftChangedOnDiskPayload) {
	bus.send(EventDraftChangedOnDisk, p)
}

func (bus *EventBus) SubscribeDraftChangedOnDisk(fn func(DraftChangedOnDiskPayload)) {
	subscribeTyped(bus, EventDraftChangedOnDisk, fn)
}

func (bus *EventBus) PublishEditorStarted(p EditorStartedPayload) {
	bus.send(EventEditorStarted, p)
}

func (bus *EventBus) SubscribeEditorStarted(fn func(EditorStartedPayload)) {
	subscribeTyped(bus, EventEditorStarted, fn)
}

func (bus *EventBus) PublishEditorStopped(p EditorStoppedPayload) {
	bus.send(EventEditorStopped, p)
}

func (bus *EventBus) SubscribeEditorStopped(fn func(EditorStoppedPayload)) {
	subscribeTyped(bus, EventEditorStopped, fn)
}

func (bus *EventBus) PublishFocusCleared(p FocusClearedPayload) {
	bus.send(EventFocusCleared, p)
}

func (bus *EventBus) SubscribeFocusCleared(fn func(FocusClearedPayload)) {
	subscribeTyped(bus, EventFocusCleared, fn)
}

func (bus *EventBus) PublishFocusRequested(p FocusRequestedPayload) {
	bus.send(EventFocusRequested, p)
}

func (bus *EventBus) SubscribeFocusRequested(fn func(FocusRequestedPayload)) {
	subscribeTyped(bus, EventFocusRequested, fn)
}

func (bus *EventBus) PublishModeChoiceRequested(p ModeChoiceRequestedPayload) {
	bus.send(EventModeChoiceRequested, p)
}

func (bus *EventBus) SubscribeModeChoiceRequested(fn func(ModeChoiceRequestedPayload)) {
	subscribeTyped(bus, EventModeChoiceRequested, fn)
}

func (bus *EventBus) PublishNotificationPublished(p NotificationPublishedPayload) {
	bus.send(EventNotificationPublished, p)
}

func (bus *EventBus) SubscribeNotificationPublished(fn func(NotificationPublishedPayload)) {
	subscribeTyped(bus, EventNotificationPublished, fn)
}

// SubscribeAll registers fn for every event in Events. Used for recording and
// tracing.
func (bus *EventBus) SubscribeAll(fn func(Event, any)) {
	for _, e := range Events {
		bus.subscribe(e, func(p any) { fn(e, p) })
	}
}

func subscribeTyped[T any](bus *EventBus, event Event, fn func(T)) {
	bus.subscribe(event, func(p any) {
		if v, ok := p.(T); ok {
			fn(v)
		}
	})
}
