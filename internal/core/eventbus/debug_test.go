package eventbus_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/eventbus"
	"github.com/colonyops/folio/internal/core/eventbus/testbus"
	"github.com/colonyops/folio/internal/core/navigation"
)

func TestRegisterDebugLogger(t *testing.T) {
	tb := testbus.New(t)
	var buf bytes.Buffer
	eventbus.RegisterDebugLogger(tb.EventBus, zerolog.New(&buf).Level(zerolog.DebugLevel))

	tb.PublishDocumentChanged(eventbus.DocumentChangedPayload{
		Action:  "item.update",
		Invoice: &document.Invoice{ID: "inv"},
	})
	tb.PublishFocusRequested(eventbus.FocusRequestedPayload{
		Panel: navigation.PanelItems,
		Focus: document.FocusTarget{Section: document.FocusItems, Seq: 4},
	})
	tb.PublishFocusCleared(eventbus.FocusClearedPayload{Seq: 1})

	tb.AssertPublished(t, eventbus.EventFocusCleared)

	out := buf.String()
	assert.Contains(t, out, `"action":"item.update"`)
	assert.Contains(t, out, `"seq":4`)
	assert.NotContains(t, out, string(eventbus.EventFocusCleared), "trace events filtered at debug")
}
