package utils

import (
	"fmt"
	"time"
)

// RetryConfig holds the parameters for the backoff retry helper. It is used
// only for store warm-up (database pings); page fetches are never retried.
type RetryConfig struct {
	Attempts  int
	BaseDelay time.Duration
	Logger    *Logger
}

// Do runs fn up to Attempts times, doubling the delay between attempts.
func (r *RetryConfig) Do(name string, fn func() error) error {
	var lastErr error
	delay := r.BaseDelay

	for attempt := 1; attempt <= r.Attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < r.Attempts {
			if r.Logger != nil {
				r.Logger.Warn("[retry] %s attempt %d/%d failed: %v — next try in %v",
					name, attempt, r.Attempts, lastErr, delay)
			}
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", name, r.Attempts, lastErr)
}
