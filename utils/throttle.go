package utils

import "time"

// Throttle enforces a minimum interval between successive operations.
// The crawl is fully sequential, so a plain timestamp is enough.
type Throttle struct {
	interval time.Duration
	last     time.Time
}

// NewThrottle creates a Throttle with the given minimum interval.
// A zero or negative interval disables pacing.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Wait sleeps until at least the configured interval has passed since the
// previous call. The first call never sleeps.
func (t *Throttle) Wait() {
	if t.interval > 0 && !t.last.IsZero() {
		if elapsed := time.Since(t.last); elapsed < t.interval {
			time.Sleep(t.interval - elapsed)
		}
	}
	t.last = time.Now()
}
