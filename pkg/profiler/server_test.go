package profiler

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_StartAndShutdown(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{
			name: "start and shutdown on port 0 (random)",
			port: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := New(tt.port, zerolog.Nop())

			ctx := context.Background()
			require.NoError(t, server.Start(ctx), "Start() error")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			assert.NoError(t, server.Shutdown(shutdownCtx), "Shutdown() error")
		})
	}
}

func TestServer_PprofEndpoints(t *testing.T) {
	server := New(0, zerolog.Nop())
	server.Handle("/debug/document", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"number":"2026-0001"}`)
	}))

	ctx := context.Background()
	require.NoError(t, server.Start(ctx), "Start() error")
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	baseURL := "http://" + server.Addr()

	tests := []struct {
		name     string
		endpoint string
	}{
		{
			name:     "index",
			endpoint: "/debug/pprof/",
		},
		{
			name:     "cmdline",
			endpoint: "/debug/pprof/cmdline",
		},
		{
			name:     "profile",
			endpoint: "/debug/pprof/profile?seconds=1",
		},
		{
			name:     "symbol",
			endpoint: "/debug/pprof/symbol",
		},
		{
			name:     "trace",
			endpoint: "/debug/pprof/trace?seconds=1",
		},
		{
			name:     "mounted handler",
			endpoint: "/debug/document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(baseURL + tt.endpoint)
			require.NoError(t, err, "GET %s error", tt.endpoint)
			defer func() {
				_ = resp.Body.Close()
			}()

			assert.Equal(t, http.StatusOK, resp.StatusCode, "GET %s status = %v, want %v", tt.endpoint, resp.StatusCode, http.StatusOK)
		})
	}
}

func TestServer_BindsLoopback(t *testing.T) {
	server := New(0, zerolog.Nop())
	assert.Empty(t, server.Addr())

	require.NoError(t, server.Start(context.Background()))
	defer func() { _ = server.Shutdown(context.Background()) }()

	assert.True(t, strings.HasPrefix(server.Addr(), "127.0.0.1:"), server.Addr())
}

func TestServer_StopsWithContext(t *testing.T) {
	server := New(0, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, server.Start(ctx))
	addr := server.Addr()
	cancel()

	assert.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/debug/pprof/")
		if err != nil {
			return true
		}
		_ = resp.Body.Close()
		return false
	}, 2*time.Second, 20*time.Millisecond)
}
