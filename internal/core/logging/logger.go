package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return ComponentOf(log.Logger, name)
}

// ComponentOf derives a component logger from parent and attaches the
// ContextHook, so events logged with Ctx carry invoice and action fields.
func ComponentOf(parent zerolog.Logger, name string) zerolog.Logger {
	return parent.With().Str("cmp", name).Logger().Hook(ContextHook{})
}
