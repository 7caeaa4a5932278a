// Package utils holds small helpers shared by commands.
package utils

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// DeferredWriter holds messages meant for the terminal while a full screen
// program owns it. Identical lines are kept once. Safe for concurrent use.
type DeferredWriter struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	seen  map[string]bool
	lines int
}

// Write stores p. Complete lines already written are dropped.
func (d *DeferredWriter) Write(p []byte) (n int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	for _, line := range bytes.SplitAfter(p, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		if line[len(line)-1] == '\n' {
			if d.seen[string(line)] {
				continue
			}
			d.seen[string(line)] = true
			d.lines++
		}
		d.buf.Write(line)
	}
	return len(p), nil
}

// Printf formats a message, appending a newline when missing.
func (d *DeferredWriter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	_, _ = d.Write([]byte(msg))
}

// Len returns the number of distinct lines held.
func (d *DeferredWriter) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lines
}

// Flush writes all buffered data to w and clears the buffer.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.buf.Len() == 0 {
		return nil
	}

	d.seen = nil
	d.lines = 0
	_, err := d.buf.WriteTo(w)
	return err
}
