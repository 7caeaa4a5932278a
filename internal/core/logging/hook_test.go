package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name      string
		setupCtx  func() context.Context
		wantKeys  []string
		wantEmpty []string
	}{
		{
			name: "both invoice_id and action",
			setupCtx: func() context.Context {
				ctx := context.Background()
				ctx = WithInvoiceID(ctx, "inv-123")
				ctx = WithAction(ctx, "item.add")
				return ctx
			},
			wantKeys: []string{"invoice_id", "action"},
		},
		{
			name: "only invoice_id",
			setupCtx: func() context.Context {
				return WithInvoiceID(context.Background(), "inv-123")
			},
			wantKeys:  []string{"invoice_id"},
			wantEmpty: []string{"action"},
		},
		{
			name: "only action",
			setupCtx: func() context.Context {
				return WithAction(context.Background(), "item.add")
			},
			wantKeys:  []string{"action"},
			wantEmpty: []string{"invoice_id"},
		},
		{
			name:      "no context values",
			setupCtx:  context.Background,
			wantEmpty: []string{"invoice_id", "action"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := tt.setupCtx()

			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(ctx).Msg("test")

			var logEntry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
				t.Fatalf("failed to parse log: %v", err)
			}

			for _, key := range tt.wantKeys {
				if _, ok := logEntry[key]; !ok {
					t.Errorf("expected %s to be present in log", key)
				}
			}

			for _, key := range tt.wantEmpty {
				if _, ok := logEntry[key]; ok {
					t.Errorf("expected %s to be absent from log", key)
				}
			}
		})
	}
}
