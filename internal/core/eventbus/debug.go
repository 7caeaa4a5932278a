package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterDebugLogger logs bus activity. Document, focus and draft events
// are logged at debug with the fields that identify them; everything else
// at trace.
func RegisterDebugLogger(bus *EventBus, logger zerolog.Logger) {
	bus.OnPublish(func(event Event, payload any) {
		level := zerolog.TraceLevel
		fields := map[string]any{}

		switch p := payload.(type) {
		case DocumentChangedPayload:
			level = zerolog.DebugLevel
			fields["action"] = p.Action
		case DocumentSavedPayload:
			level = zerolog.DebugLevel
			fields["path"] = p.Path
		case FocusRequestedPayload:
			level = zerolog.DebugLevel
			fields["panel"] = string(p.Panel)
			fields["section"] = string(p.Focus.Section)
			fields["seq"] = p.Focus.Seq
		case FocusClearedPayload:
			fields["seq"] = p.Seq
		case DraftChangedOnDiskPayload:
			level = zerolog.DebugLevel
			fields["path"] = p.Path
		}

		logger.WithLevel(level).Str("event", string(event)).Fields(fields).Msg("event")
	})

	bus.OnDrop(func(event Event, _ any) {
		logger.Warn().Str("event", string(event)).Msg("event dropped: buffer full")
	})

	bus.OnPanic(func(event Event, _ any, recovered any) {
		logger.Error().
			Str("event", string(event)).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}
