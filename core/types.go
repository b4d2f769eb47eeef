package core

import "time"

// Config defines the throttle window policy
type Config struct {
	Limit  int           // Messages allowed per window before throttling
	Window time.Duration // Length of one throttle window
}

// Verdict is the outcome of a single throttle check
type Verdict int

const (
	// Emit means the message is within the window limit
	Emit Verdict = iota
	// Notice means the limit was just reached; emit the one-time throttled notice instead
	Notice
	// Drop means the window is already throttled
	Drop
)

func (v Verdict) String() string {
	switch v {
	case Emit:
		return "emit"
	case Notice:
		return "notice"
	case Drop:
		return "drop"
	default:
		return "unknown"
	}
}

// WindowState represents the current state of a throttle window
type WindowState struct {
	Count   int       // Messages counted since the last reset (notice included)
	ResetAt time.Time // Last time the window was reset
}

// Throttled reports whether the window has reached its limit
func (s *WindowState) Throttled(limit int) bool {
	return s != nil && s.Count >= limit
}

// CheckResult contains the result of a throttle check
type CheckResult struct {
	Verdict   Verdict       // What the caller should do with the message
	Count     int           // Window count after this check
	Remaining int           // Messages left before the notice fires
	ResetIn   time.Duration // Time until the window may reset
}
