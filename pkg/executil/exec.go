// Package executil runs the user's shell hooks.
package executil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const maxStderrLen = 500

// Command is a shell script run with sh -c.
type Command struct {
	// Dir is the working directory. Empty inherits the current one.
	Dir    string
	Script string
	// Env holds KEY=VALUE pairs added to the inherited environment.
	Env []string
}

// Executor runs shell commands.
type Executor interface {
	Run(ctx context.Context, c Command) error
}

// RealExecutor runs commands with os/exec.
type RealExecutor struct{}

// Run implements Executor. See the package level Run.
func (RealExecutor) Run(ctx context.Context, c Command) error {
	return Run(ctx, c)
}

// Run executes c and discards its stdout. On failure the first 500 bytes of
// stderr become the error message, wrapping the *exec.ExitError.
func Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", c.Script)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &capWriter{buf: &stderr, limit: maxStderrLen}
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w", msg, err)
		}
		return err
	}
	return nil
}

// capWriter keeps the first limit bytes written and reports every write as
// complete.
type capWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *capWriter) Write(p []byte) (int, error) {
	if room := w.limit - w.buf.Len(); room > 0 {
		w.buf.Write(p[:min(len(p), room)])
	}
	return len(p), nil
}
