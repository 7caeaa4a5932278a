// Package jsonfile watches draft files stored as JSON for changes made by
// other programs.
package jsonfile

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

const (
	debounceDelay   = 250 * time.Millisecond
	eventBufferSize = 16
)

// DraftEvent reports that a draft file changed.
type DraftEvent struct {
	Path      string
	Timestamp time.Time
}

// DraftWatcher watches a drafts directory using fsnotify. Writes whose
// content matches the last content recorded with MarkSaved are not
// reported.
type DraftWatcher struct {
	dir     string
	watcher *fsnotify.Watcher

	mu          sync.Mutex
	subscribers map[string][]chan<- DraftEvent // pattern -> channels
	debounce    map[string]*time.Timer         // file name -> debounce timer
	known       map[string][sha256.Size]byte   // file name -> content hash

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDraftWatcher creates a watcher for dir. The directory is created if it
// doesn't exist.
func NewDraftWatcher(dir string) (*DraftWatcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	dw := &DraftWatcher{
		dir:         dir,
		watcher:     watcher,
		subscribers: make(map[string][]chan<- DraftEvent),
		debounce:    make(map[string]*time.Timer),
		known:       make(map[string][sha256.Size]byte),
		ctx:         ctx,
		cancel:      cancel,
	}

	dw.wg.Add(1)
	go dw.run()

	return dw, nil
}

// Watch returns a channel that receives events for draft files whose name
// matches pattern. Patterns use doublestar syntax; "" and "*" match every
// draft.
func (dw *DraftWatcher) Watch(ctx context.Context, pattern string) (<-chan DraftEvent, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	ch := make(chan DraftEvent, eventBufferSize)

	dw.mu.Lock()
	dw.subscribers[pattern] = append(dw.subscribers[pattern], ch)
	dw.mu.Unlock()

	// Handle context cancellation to unsubscribe
	go func() {
		select {
		case <-ctx.Done():
			dw.unsubscribe(pattern, ch)
		case <-dw.ctx.Done():
			// Watcher is closing, channel will be closed by Close()
		}
	}()

	return ch, nil
}

// MarkSaved records the current content of path as written by this process.
func (dw *DraftWatcher) MarkSaved(path string) {
	sum, ok := hashFile(path)
	if !ok {
		return
	}
	dw.mu.Lock()
	dw.known[filepath.Base(path)] = sum
	dw.mu.Unlock()
}

// Close stops watching and closes all subscriber channels.
func (dw *DraftWatcher) Close() error {
	dw.cancel()

	dw.mu.Lock()
	for _, timer := range dw.debounce {
		timer.Stop()
	}

	for _, subs := range dw.subscribers {
		for _, ch := range subs {
			close(ch)
		}
	}
	dw.subscribers = make(map[string][]chan<- DraftEvent)
	dw.mu.Unlock()

	err := dw.watcher.Close()
	dw.wg.Wait()
	return err
}

// unsubscribe removes a channel from the subscriber list and closes it.
func (dw *DraftWatcher) unsubscribe(pattern string, ch chan<- DraftEvent) {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	subs := dw.subscribers[pattern]
	for i, sub := range subs {
		if sub == ch {
			dw.subscribers[pattern] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
	if len(dw.subscribers[pattern]) == 0 {
		delete(dw.subscribers, pattern)
	}
}

func (dw *DraftWatcher) run() {
	defer dw.wg.Done()

	for {
		select {
		case <-dw.ctx.Done():
			return
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			dw.handleEvent(event)
		case _, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (dw *DraftWatcher) handleEvent(event fsnotify.Event) {
	// Only care about writes/creates/renames (file changes)
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	name := filepath.Base(event.Name)

	// Ignore non-JSON files and the hidden temp files of atomic writes
	if !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
		return
	}

	dw.mu.Lock()
	if timer, exists := dw.debounce[name]; exists {
		timer.Stop()
	}
	dw.debounce[name] = time.AfterFunc(debounceDelay, func() {
		dw.notifySubscribers(name)
	})
	dw.mu.Unlock()
}

func (dw *DraftWatcher) notifySubscribers(name string) {
	path := filepath.Join(dw.dir, name)
	sum, ok := hashFile(path)

	dw.mu.Lock()
	defer dw.mu.Unlock()

	delete(dw.debounce, name)

	if ok {
		if prev, seen := dw.known[name]; seen && prev == sum {
			return
		}
		dw.known[name] = sum
	}

	event := DraftEvent{Path: path, Timestamp: time.Now()}
	for pattern, subs := range dw.subscribers {
		if !matchesPattern(pattern, name) {
			continue
		}
		for _, ch := range subs {
			select {
			case ch <- event:
			default:
				// Channel full, drop event to prevent blocking
			}
		}
	}
}

func matchesPattern(pattern, name string) bool {
	if pattern == "" || pattern == "*" {
		return true
	}
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

func hashFile(path string) ([sha256.Size]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return [sha256.Size]byte{}, false
	}
	return sha256.Sum256(data), true
}
