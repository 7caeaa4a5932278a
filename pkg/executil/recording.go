package executil

import (
	"context"
	"sync"
)

// RecordingExecutor records commands instead of running them.
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []Command

	// Errors maps a script to the error Run returns for it.
	Errors map[string]error
}

// Run records c and returns the configured error for its script.
func (e *RecordingExecutor) Run(_ context.Context, c Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, c)
	return e.Errors[c.Script]
}

// Reset clears recorded commands.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = nil
}
