// Package primitive holds the in-memory counter, map, and set state served
// by the backend HTTP server. Primitives are addressed by name and created
// on first use. There is no persistence: the store exists so the benchmark
// harness has a concrete request/response surface to drive.
package primitive

import (
	"fmt"
	"sync"
)

// Store is the in-memory backend for all named primitives.
type Store struct {
	mu       sync.RWMutex
	counters map[string]int64
	maps     map[string]map[string]string
	sets     map[string]map[string]struct{}
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		counters: make(map[string]int64),
		maps:     make(map[string]map[string]string),
		sets:     make(map[string]map[string]struct{}),
	}
}

// CounterIncrement adds delta to the named counter and returns the new value.
func (s *Store) CounterIncrement(name string, delta int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[name] += delta
	return s.counters[name]
}

// CounterDecrement subtracts delta from the named counter and returns the
// new value.
func (s *Store) CounterDecrement(name string, delta int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[name] -= delta
	return s.counters[name]
}

// CounterGet returns the current value of the named counter. A counter that
// was never written reads as zero.
func (s *Store) CounterGet(name string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[name]
}

// MapPut stores value under key in the named map, returning the previous
// value and whether one existed.
func (s *Store) MapPut(name, key, value string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.maps[name]
	if !ok {
		m = make(map[string]string)
		s.maps[name] = m
	}
	old, existed := m[key]
	m[key] = value
	return old, existed
}

// MapGet returns the value under key in the named map, or NotFound.
func (s *Store) MapGet(name, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.maps[name]
	if !ok {
		return "", NewNotFoundError(fmt.Sprintf("key %q not found", key))
	}
	v, ok := m[key]
	if !ok {
		return "", NewNotFoundError(fmt.Sprintf("key %q not found", key))
	}
	return v, nil
}

// MapRemove deletes key from the named map and returns the removed value,
// or NotFound if the key was absent.
func (s *Store) MapRemove(name, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.maps[name]
	if !ok {
		return "", NewNotFoundError(fmt.Sprintf("key %q not found", key))
	}
	old, existed := m[key]
	if !existed {
		return "", NewNotFoundError(fmt.Sprintf("key %q not found", key))
	}
	delete(m, key)
	return old, nil
}

// SetAdd inserts elem into the named set, returning false if it was already
// present.
func (s *Store) SetAdd(name, elem string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[name]
	if !ok {
		set = make(map[string]struct{})
		s.sets[name] = set
	}
	if _, exists := set[elem]; exists {
		return false
	}
	set[elem] = struct{}{}
	return true
}

// SetContains reports whether elem is in the named set.
func (s *Store) SetContains(name, elem string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.sets[name]
	if !ok {
		return false
	}
	_, exists := set[elem]
	return exists
}

// SetRemove deletes elem from the named set, or returns NotFound if it was
// never added.
func (s *Store) SetRemove(name, elem string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[name]
	if !ok {
		return NewNotFoundError(fmt.Sprintf("element %q not found", elem))
	}
	if _, exists := set[elem]; !exists {
		return NewNotFoundError(fmt.Sprintf("element %q not found", elem))
	}
	delete(set, elem)
	return nil
}
