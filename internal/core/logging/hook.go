package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextFields lists the context values copied onto log events, by field
// name.
var contextFields = []struct {
	name string
	get  func(context.Context) string
}{
	{"invoice_id", GetInvoiceID},
	{"action", GetAction},
}

// ContextHook adds the invoice and Store action carried by an event's
// context. Events logged without Ctx are left untouched.
type ContextHook struct{}

// Run implements zerolog.Hook.
func (ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}
	for _, f := range contextFields {
		if v := f.get(ctx); v != "" {
			e.Str(f.name, v)
		}
	}
}
