package utils

import (
	"testing"
	"time"
)

func TestThrottleEnforcesInterval(t *testing.T) {
	interval := 50 * time.Millisecond
	th := NewThrottle(interval)

	var timestamps []time.Time
	for i := 0; i < 3; i++ {
		th.Wait()
		timestamps = append(timestamps, time.Now())
	}

	for i := 1; i < len(timestamps); i++ {
		if gap := timestamps[i].Sub(timestamps[i-1]); gap < interval {
			t.Errorf("gap between call %d and %d: %v < minimum %v", i-1, i, gap, interval)
		}
	}
}

func TestThrottleFirstCallDoesNotSleep(t *testing.T) {
	th := NewThrottle(time.Second)

	start := time.Now()
	th.Wait()
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first Wait slept for %v", elapsed)
	}
}

func TestThrottleZeroInterval(t *testing.T) {
	th := NewThrottle(0)

	start := time.Now()
	for i := 0; i < 10; i++ {
		th.Wait()
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("zero-interval throttle slept for %v", elapsed)
	}
}
