package core

import "time"

const (
	// DefaultLimit is the number of informational messages allowed per window
	DefaultLimit = 5
	// DefaultWindow is the length of a throttle window
	DefaultWindow = time.Second
)

// FixedWindow implements fixed-window message throttling
type FixedWindow struct {
	config Config
}

// NewFixedWindow creates a new fixed window with the given configuration.
// Non-positive values fall back to DefaultLimit and DefaultWindow.
func NewFixedWindow(config Config) *FixedWindow {
	if config.Limit <= 0 {
		config.Limit = DefaultLimit
	}
	if config.Window <= 0 {
		config.Window = DefaultWindow
	}
	return &FixedWindow{config: config}
}

// Config returns the effective window configuration
func (fw *FixedWindow) Config() Config {
	return fw.config
}

// Check decides what to do with one message given the current window state.
// It returns the updated state and the check result; the input state is not modified.
func (fw *FixedWindow) Check(state *WindowState, now time.Time) (*WindowState, CheckResult) {
	// Initialize new window if needed
	if state == nil {
		state = &WindowState{ResetAt: now}
	}

	newState := &WindowState{
		Count:   state.Count,
		ResetAt: state.ResetAt,
	}

	// Reset only once the window has strictly elapsed
	if now.Sub(newState.ResetAt) > fw.config.Window {
		newState.Count = 0
		newState.ResetAt = now
	}

	verdict := Drop
	switch {
	case newState.Count < fw.config.Limit:
		verdict = Emit
		newState.Count++
	case newState.Count == fw.config.Limit:
		// Step past the limit so the notice fires once per window
		verdict = Notice
		newState.Count++
	}

	remaining := fw.config.Limit - newState.Count
	if remaining < 0 {
		remaining = 0
	}

	resetIn := fw.config.Window - now.Sub(newState.ResetAt)
	if resetIn < 0 {
		resetIn = 0
	}

	return newState, CheckResult{
		Verdict:   verdict,
		Count:     newState.Count,
		Remaining: remaining,
		ResetIn:   resetIn,
	}
}
