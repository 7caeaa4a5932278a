package logging

import "context"

type contextKey string

const (
	invoiceIDKey contextKey = "invoice_id"
	actionKey    contextKey = "action"
)

// WithInvoiceID adds an invoice ID to the context.
func WithInvoiceID(ctx context.Context, invoiceID string) context.Context {
	return context.WithValue(ctx, invoiceIDKey, invoiceID)
}

// WithAction adds the name of the editor action being applied to the context.
func WithAction(ctx context.Context, action string) context.Context {
	return context.WithValue(ctx, actionKey, action)
}

// GetInvoiceID retrieves the invoice ID from the context.
// Returns empty string if not present.
func GetInvoiceID(ctx context.Context) string {
	if id, ok := ctx.Value(invoiceIDKey).(string); ok {
		return id
	}
	return ""
}

// GetAction retrieves the action name from the context.
// Returns empty string if not present.
func GetAction(ctx context.Context) string {
	if a, ok := ctx.Value(actionKey).(string); ok {
		return a
	}
	return ""
}
