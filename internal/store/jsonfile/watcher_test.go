package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatcher(t *testing.T) (*DraftWatcher, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := NewDraftWatcher(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w, dir
}

// collect gathers events until d elapses.
func collect(events <-chan DraftEvent, d time.Duration) []string {
	timeout := time.After(d)
	var names []string
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return names
			}
			names = append(names, filepath.Base(ev.Path))
		case <-timeout:
			return names
		}
	}
}

func TestDraftWatcher_Watch(t *testing.T) {
	t.Parallel()
	w, dir := newWatcher(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := w.Watch(ctx, "2026-0001.json")
	require.NoError(t, err)

	path := filepath.Join(dir, "2026-0001.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"templateId":"classic"}`), 0o644))

	select {
	case event := <-events:
		assert.Equal(t, path, event.Path)
		assert.False(t, event.Timestamp.IsZero())
	case <-ctx.Done():
		t.Fatal("timeout waiting for event")
	}
}

func TestDraftWatcher_Pattern(t *testing.T) {
	t.Parallel()
	w, dir := newWatcher(t)

	events, err := w.Watch(context.Background(), "2026-*.json")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "2026-0002.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2025-0009.json"), []byte(`{}`), 0o644))

	assert.Equal(t, []string{"2026-0002.json"}, collect(events, time.Second))
}

func TestDraftWatcher_IgnoresTempAndOtherFiles(t *testing.T) {
	t.Parallel()
	w, dir := newWatcher(t)

	events, err := w.Watch(context.Background(), "*")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".folio-123.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`x`), 0o644))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real.json"), []byte(`{}`), 0o644))

	assert.Equal(t, []string{"real.json"}, collect(events, time.Second))
}

func TestDraftWatcher_Debounce(t *testing.T) {
	t.Parallel()
	w, dir := newWatcher(t)

	events, err := w.Watch(context.Background(), "*")
	require.NoError(t, err)

	path := filepath.Join(dir, "draft.json")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Len(t, collect(events, time.Second), 1, "should receive exactly one debounced event")
}

func TestDraftWatcher_MarkSavedSuppressesOwnWrites(t *testing.T) {
	t.Parallel()
	w, dir := newWatcher(t)

	events, err := w.Watch(context.Background(), "*")
	require.NoError(t, err)

	path := filepath.Join(dir, "draft.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"v":1}`), 0o644))
	w.MarkSaved(path)
	assert.Empty(t, collect(events, time.Second))

	require.NoError(t, os.WriteFile(path, []byte(`{"v":2}`), 0o644))
	assert.Equal(t, []string{"draft.json"}, collect(events, time.Second))
}

func TestDraftWatcher_ContextCancellation(t *testing.T) {
	t.Parallel()
	w, _ := newWatcher(t)

	ctx, cancel := context.WithCancel(context.Background())
	events, err := w.Watch(ctx, "*")
	require.NoError(t, err)

	cancel()

	time.Sleep(100 * time.Millisecond)
	_, ok := <-events
	assert.False(t, ok, "channel should be closed after context cancellation")
}

func TestDraftWatcher_Close(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	w, err := NewDraftWatcher(dir)
	require.NoError(t, err)

	events, err := w.Watch(context.Background(), "*")
	require.NoError(t, err)

	require.NoError(t, w.Close())

	_, ok := <-events
	assert.False(t, ok, "channel should be closed after watcher close")
}

func TestDraftWatcher_BadPattern(t *testing.T) {
	t.Parallel()
	w, _ := newWatcher(t)

	_, err := w.Watch(context.Background(), "[")
	require.Error(t, err)
}

func TestMatchesPattern(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"*", "anything.json", true},
		{"", "anything.json", true},
		{"2026-*.json", "2026-0001.json", true},
		{"2026-*.json", "2025-0001.json", false},
		{"draft.json", "draft.json", true},
		{"draft.json", "draft-2.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"_"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesPattern(tt.pattern, tt.name))
		})
	}
}
