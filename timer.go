// timer.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements Timer, a player's optional per-turn clock. It is
// UI-facing only: it never forces a move or a pass.

package skrafl

import "time"

// Timer accumulates elapsed running time across start/stop cycles
type Timer struct {
	start   time.Time
	elapsed time.Duration
	running bool
}

// NewTimer constructs a Timer, optionally already running
func NewTimer(running bool) Timer {
	t := Timer{running: running}
	if running {
		t.start = time.Now()
	}
	return t
}

// Start resumes the timer if it is not already running
func (t *Timer) Start() {
	if !t.running {
		t.start = time.Now()
		t.running = true
	}
}

// Stop pauses the timer and returns the accumulated elapsed duration
func (t *Timer) Stop() time.Duration {
	if t.running {
		t.elapsed += time.Since(t.start)
		t.running = false
	}
	return t.elapsed
}

// Reset clears the accumulated duration and sets the running state
func (t *Timer) Reset(running bool) {
	t.start = time.Now()
	t.elapsed = 0
	t.running = running
}

// Elapsed returns the total accumulated duration, including time since
// the last Start if the timer is currently running
func (t *Timer) Elapsed() time.Duration {
	if t.running {
		return t.elapsed + time.Since(t.start)
	}
	return t.elapsed
}
