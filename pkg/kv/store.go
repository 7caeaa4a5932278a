// Package kv provides a generic thread-safe key-value store used for
// in-process registries and render caches.
package kv

import "sync"

// Store is a thread-safe generic key-value store.
type Store[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// New creates a new key-value store.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Set stores a value by key.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// GetOrCreate returns the value for key, calling create and storing its
// result on a miss. Errors are returned and nothing is stored. create runs
// without the lock held, so concurrent misses may call it more than once;
// the first stored value wins.
func (s *Store[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	if val, ok := s.Get(key); ok {
		return val, nil
	}

	val, err := create()
	if err != nil {
		var zero V
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.data[key]; ok {
		return existing, nil
	}
	s.data[key] = val
	return val, nil
}

// DeleteFunc removes every entry for which del returns true and reports how
// many were removed.
func (s *Store[K, V]) DeleteFunc(del func(K, V) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, v := range s.data {
		if del(k, v) {
			delete(s.data, k)
			n++
		}
	}
	return n
}

// Len returns the number of items in the store.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Keys returns all keys in the store.
func (s *Store[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]K, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}
