// Package slideshow manages the automatic cycling of content.
package slideshow

import (
	"sync"
	"time"
)

const defaultInterval = 60 * time.Second

// Manager handles the auto-advance timer state: play/pause, the configured
// interval, and the countdown until the next transition. The UI drives it
// from a one-second ticker and advances when Tick reports the interval has
// elapsed.
type Manager struct {
	mu                 sync.Mutex
	isPaused           bool
	wasPlayingBeforeOp bool // Tracks if slideshow was playing before a temp pause
	interval           time.Duration
	remaining          time.Duration
}

// NewManager creates a Manager. Interval is the time between automatic
// transitions; non-positive values fall back to the default.
func NewManager(interval time.Duration) *Manager {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Manager{
		isPaused:  true, // start paused until the user enables auto-advance
		interval:  interval,
		remaining: interval,
	}
}

// TogglePlayPause toggles the play/pause state.
func (m *Manager) TogglePlayPause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isPaused = !m.isPaused
	m.wasPlayingBeforeOp = false // user toggle overrides any operation-specific state
}

// Pause forces the slideshow to pause. If forOperation is true, it remembers
// whether the slideshow was playing so ResumeAfterOperation can restore it.
func (m *Manager) Pause(forOperation bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if forOperation {
		m.wasPlayingBeforeOp = !m.isPaused
	}
	m.isPaused = true
}

// ResumeAfterOperation resumes only if the slideshow was playing before
// Pause(true) was called.
func (m *Manager) ResumeAfterOperation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.wasPlayingBeforeOp {
		m.isPaused = false
	}
	m.wasPlayingBeforeOp = false
}

// IsPaused returns true if the slideshow is currently paused.
func (m *Manager) IsPaused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isPaused
}

// Interval returns the configured interval.
func (m *Manager) Interval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interval
}

// SetInterval changes the interval and restarts the countdown.
func (m *Manager) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = defaultInterval
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interval = interval
	m.remaining = interval
}

// Reset restarts the countdown from the full interval, used after any manual
// navigation so the next automatic transition is a full interval away.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remaining = m.interval
}

// Tick advances the countdown by step. It returns true when the interval has
// elapsed, resetting the countdown for the next cycle. While paused, Tick
// does nothing and returns false.
func (m *Manager) Tick(step time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.isPaused {
		return false
	}
	m.remaining -= step
	if m.remaining <= 0 {
		m.remaining = m.interval
		return true
	}
	return false
}

// Remaining returns the time left until the next automatic transition.
func (m *Manager) Remaining() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remaining
}
