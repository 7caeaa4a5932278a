// Package notify defines user facing notifications and where they are kept.
package notify

import (
	"context"
	"sync"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification event.
type Notification struct {
	ID        int64
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Store keeps notification history.
type Store interface {
	Save(ctx context.Context, n Notification) (int64, error)
	List(ctx context.Context) ([]Notification, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

// MemoryStore is a bounded in-memory Store. When full, the oldest
// notification is evicted.
type MemoryStore struct {
	mu     sync.Mutex
	limit  int
	nextID int64
	items  []Notification
}

// NewMemoryStore returns a store that keeps at most limit notifications.
// A limit below one keeps everything.
func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{limit: limit}
}

func (m *MemoryStore) Save(_ context.Context, n Notification) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	n.ID = m.nextID
	m.items = append(m.items, n)
	if m.limit > 0 && len(m.items) > m.limit {
		m.items = m.items[len(m.items)-m.limit:]
	}
	return n.ID, nil
}

// List returns notifications newest first.
func (m *MemoryStore) List(_ context.Context) ([]Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Notification, len(m.items))
	for i, n := range m.items {
		out[len(m.items)-1-i] = n
	}
	return out, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	m.items = nil
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), nil
}
