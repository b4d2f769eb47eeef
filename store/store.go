package store

import "github.com/yourusername/guardrail/core"

// UpdateFunc receives the current window state (nil when absent) and
// returns the state to store.
type UpdateFunc func(current *core.WindowState) *core.WindowState

// Store defines the interface for throttle window state storage
type Store interface {
	Get(key string) *core.WindowState
	Set(key string, state *core.WindowState)

	// Update reads, transforms and writes the state for key as one atomic
	// step across every user of the store.
	Update(key string, fn UpdateFunc)

	Delete(key string)
	Clear()
}
