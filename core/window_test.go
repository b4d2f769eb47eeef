package core

import (
	"testing"
	"time"
)

func TestFixedWindow_EmitsUpToLimit(t *testing.T) {
	window := NewFixedWindow(Config{Limit: 5, Window: time.Second})
	now := time.Now()

	var state *WindowState

	for i := 0; i < 5; i++ {
		var result CheckResult
		state, result = window.Check(state, now)

		if result.Verdict != Emit {
			t.Errorf("Message %d verdict = %v, want emit", i+1, result.Verdict)
		}
	}

	if state.Count != 5 {
		t.Errorf("Count = %d, want 5", state.Count)
	}
}

func TestFixedWindow_NoticeFiresOnce(t *testing.T) {
	window := NewFixedWindow(Config{Limit: 5, Window: time.Second})
	now := time.Now()

	var state *WindowState
	for i := 0; i < 5; i++ {
		state, _ = window.Check(state, now)
	}

	// 6th message becomes the throttled notice
	state, result := window.Check(state, now)
	if result.Verdict != Notice {
		t.Fatalf("6th verdict = %v, want notice", result.Verdict)
	}

	// 7th and later are dropped
	for i := 0; i < 20; i++ {
		state, result = window.Check(state, now.Add(500*time.Millisecond))
		if result.Verdict != Drop {
			t.Errorf("Message %d verdict = %v, want drop", i+7, result.Verdict)
		}
	}

	if state.Count != 6 {
		t.Errorf("Count = %d, want 6 (limit + notice)", state.Count)
	}
}

func TestFixedWindow_ResetsAfterWindow(t *testing.T) {
	window := NewFixedWindow(Config{Limit: 5, Window: time.Second})
	now := time.Now()

	var state *WindowState
	for i := 0; i < 10; i++ {
		state, _ = window.Check(state, now)
	}

	// Just past the window
	later := now.Add(time.Second + time.Millisecond)
	state, result := window.Check(state, later)
	if result.Verdict != Emit {
		t.Fatalf("verdict after window = %v, want emit", result.Verdict)
	}
	if state.Count != 1 {
		t.Errorf("Count = %d, want 1 (fresh window)", state.Count)
	}
	if !state.ResetAt.Equal(later) {
		t.Errorf("ResetAt = %v, want %v", state.ResetAt, later)
	}
}

func TestFixedWindow_ExactBoundaryDoesNotReset(t *testing.T) {
	window := NewFixedWindow(Config{Limit: 2, Window: time.Second})
	now := time.Now()

	var state *WindowState
	for i := 0; i < 3; i++ {
		state, _ = window.Check(state, now)
	}

	// Elapsed == window is not strictly greater; still throttled
	_, result := window.Check(state, now.Add(time.Second))
	if result.Verdict != Drop {
		t.Errorf("verdict at exact boundary = %v, want drop", result.Verdict)
	}
}

func TestFixedWindow_DoesNotMutateInput(t *testing.T) {
	window := NewFixedWindow(Config{Limit: 5, Window: time.Second})
	now := time.Now()

	state := &WindowState{Count: 2, ResetAt: now}
	newState, _ := window.Check(state, now)

	if state.Count != 2 {
		t.Errorf("input Count = %d, want 2", state.Count)
	}
	if newState.Count != 3 {
		t.Errorf("new Count = %d, want 3", newState.Count)
	}
}

func TestFixedWindow_CountNeverExceedsLimitPlusOne(t *testing.T) {
	window := NewFixedWindow(Config{Limit: 5, Window: time.Second})
	start := time.Now()

	var state *WindowState
	for i := 0; i < 1000; i++ {
		now := start.Add(time.Duration(i) * 7 * time.Millisecond)
		state, _ = window.Check(state, now)
		if state.Count > 6 {
			t.Fatalf("Count = %d at step %d, exceeds limit + 1", state.Count, i)
		}
	}
}

func TestFixedWindow_Defaults(t *testing.T) {
	window := NewFixedWindow(Config{})
	cfg := window.Config()

	if cfg.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d", cfg.Limit, DefaultLimit)
	}
	if cfg.Window != DefaultWindow {
		t.Errorf("Window = %v, want %v", cfg.Window, DefaultWindow)
	}
}

func TestFixedWindow_RemainingAndResetIn(t *testing.T) {
	window := NewFixedWindow(Config{Limit: 3, Window: time.Second})
	now := time.Now()

	state, result := window.Check(nil, now)
	if result.Remaining != 2 {
		t.Errorf("Remaining = %d, want 2", result.Remaining)
	}

	_, result = window.Check(state, now.Add(400*time.Millisecond))
	if result.ResetIn != 600*time.Millisecond {
		t.Errorf("ResetIn = %v, want 600ms", result.ResetIn)
	}
}

func TestVerdict_String(t *testing.T) {
	tests := []struct {
		verdict Verdict
		want    string
	}{
		{Emit, "emit"},
		{Notice, "notice"},
		{Drop, "drop"},
		{Verdict(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.verdict.String(); got != tt.want {
			t.Errorf("Verdict(%d).String() = %s, want %s", tt.verdict, got, tt.want)
		}
	}
}
