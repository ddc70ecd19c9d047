package clock

import (
	"sync"
	"time"
)

// Clock supplies the current trusted timestamp. The subscription ledger takes
// a Clock instead of calling time.Now so tests can pin or advance time.
type Clock interface {
	Now() time.Time
}

// System is the wall-clock implementation.
type System struct{}

// Now returns the current UTC time.
func (System) Now() time.Time { return time.Now().UTC() }

// Fixed is a test clock that returns a programmable instant.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed creates a Fixed clock pinned to t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t.UTC()}
}

// Now returns the pinned instant.
func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set repins the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t.UTC()
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
