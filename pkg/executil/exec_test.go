package executil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_StderrCapped(t *testing.T) {
	long := strings.Repeat("A", maxStderrLen*2)
	err := Run(context.Background(), Command{Script: fmt.Sprintf("printf '%%s' '%s' >&2; exit 1", long)})
	require.Error(t, err)

	msg := err.Error()
	assert.LessOrEqual(t, len(msg), maxStderrLen+20)
	assert.Equal(t, strings.Repeat("A", maxStderrLen), msg[:maxStderrLen])
}

func TestRun_PreservesExitError(t *testing.T) {
	err := Run(context.Background(), Command{Script: "echo 'printer offline' >&2; exit 1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "printer offline")

	var exitErr *exec.ExitError
	assert.ErrorAs(t, err, &exitErr)
}

func TestRun_NoStderrReturnsExitError(t *testing.T) {
	err := Run(context.Background(), Command{Script: "exit 2"})

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode())
}

func TestRealExecutor_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("runs in dir with env", func(t *testing.T) {
		dir := t.TempDir()
		err := RealExecutor{}.Run(ctx, Command{
			Dir:    dir,
			Script: `printf '%s' "$FOLIO_INVOICE_NUMBER" > exported`,
			Env:    []string{"FOLIO_INVOICE_NUMBER=2026-0007"},
		})
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, "exported"))
		require.NoError(t, err)
		assert.Equal(t, "2026-0007", string(data))
	})

	t.Run("invalid directory", func(t *testing.T) {
		err := RealExecutor{}.Run(ctx, Command{Dir: "/nonexistent-dir-12345", Script: "true"})
		require.Error(t, err)
	})
}

func TestRecordingExecutor(t *testing.T) {
	t.Run("records commands", func(t *testing.T) {
		rec := &RecordingExecutor{}
		ctx := context.Background()

		_ = rec.Run(ctx, Command{Script: "lpr invoice.txt"})
		_ = rec.Run(ctx, Command{Dir: "/tmp/drafts", Script: "lp -d office invoice.txt"})

		require.Len(t, rec.Commands, 2)
		assert.Equal(t, "lpr invoice.txt", rec.Commands[0].Script)
		assert.Empty(t, rec.Commands[0].Dir)
		assert.Equal(t, "/tmp/drafts", rec.Commands[1].Dir)
	})

	t.Run("returns configured error", func(t *testing.T) {
		want := errors.New("printer offline")
		rec := &RecordingExecutor{Errors: map[string]error{"lpr invoice.txt": want}}

		assert.Equal(t, want, rec.Run(context.Background(), Command{Script: "lpr invoice.txt"}))
		assert.NoError(t, rec.Run(context.Background(), Command{Script: "true"}))
	})

	t.Run("reset clears commands", func(t *testing.T) {
		rec := &RecordingExecutor{}
		_ = rec.Run(context.Background(), Command{Script: "true"})
		require.Len(t, rec.Commands, 1)

		rec.Reset()
		assert.Empty(t, rec.Commands)
	})
}
