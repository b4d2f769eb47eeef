package store

import (
	"sync"

	"github.com/yourusername/guardrail/core"
)

// MemoryStore provides thread-safe in-memory storage for window states
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*core.WindowState
}

// Ensure MemoryStore implements Store interface
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string]*core.WindowState)}
}

// Get retrieves the window state for a given key
func (s *MemoryStore) Get(key string) *core.WindowState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.windows[key]
}

// Set stores the window state for a given key
func (s *MemoryStore) Set(key string, state *core.WindowState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows[key] = state
}

// Update runs fn with the map lock held
func (s *MemoryStore) Update(key string, fn UpdateFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows[key] = fn(s.windows[key])
}

// Delete removes the window state for a given key
func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
}

// Clear removes all window states
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.windows)
}
