package session

import (
	"context"
	"math"
	"sync"
	"time"
)

// DefaultRestSeconds applies when the user has no stored preference.
const DefaultRestSeconds = 60

// RestTimer is the countdown started whenever a set is completed. It holds
// a single absolute deadline; remaining time is always recomputed from
// endTime minus now, never decremented, so the poll interval cannot
// accumulate drift. Starting while running replaces the deadline — only one
// countdown is meaningful at a time.
//
// The timer is a UX nicety, not session data: it is never persisted and a
// process restart loses an in-flight countdown.
type RestTimer struct {
	mu       sync.Mutex
	endTime  time.Time
	active   bool
	duration time.Duration
	now      func() time.Time
}

// NewRestTimer creates an idle timer with the given default duration in
// seconds; zero or negative applies DefaultRestSeconds.
func NewRestTimer(defaultSeconds int) *RestTimer {
	if defaultSeconds <= 0 {
		defaultSeconds = DefaultRestSeconds
	}
	return &RestTimer{
		duration: time.Duration(defaultSeconds) * time.Second,
		now:      time.Now,
	}
}

// SetClock overrides the time source, for tests.
func (rt *RestTimer) SetClock(now func() time.Time) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.now = now
}

// SetDefaultDuration updates the duration used by Start, in seconds.
func (rt *RestTimer) SetDefaultDuration(seconds int) {
	if seconds <= 0 {
		return
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.duration = time.Duration(seconds) * time.Second
}

// Start begins a countdown of the default duration, replacing any countdown
// already running.
func (rt *RestTimer) Start() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.endTime = rt.now().Add(rt.duration)
	rt.active = true
}

// Adjust moves the deadline by delta, clamped so it never moves before now.
// No-op while idle.
func (rt *RestTimer) Adjust(delta time.Duration) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if !rt.active {
		return
	}
	end := rt.endTime.Add(delta)
	if now := rt.now(); end.Before(now) {
		end = now
	}
	rt.endTime = end
}

// Skip ends the countdown immediately.
func (rt *RestTimer) Skip() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.active = false
	rt.endTime = time.Time{}
}

// Active reports whether a countdown is running, accounting for natural
// expiry since the last observation.
func (rt *RestTimer) Active() bool {
	_, active := rt.Remaining()
	return active
}

// Remaining returns the whole seconds left (rounded up) and whether the
// timer is still running. Reaching zero transitions the timer to idle.
func (rt *RestTimer) Remaining() (int, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if !rt.active {
		return 0, false
	}
	left := rt.endTime.Sub(rt.now())
	secs := int(math.Ceil(left.Seconds()))
	if secs <= 0 {
		rt.active = false
		rt.endTime = time.Time{}
		return 0, false
	}
	return secs, true
}

// Run polls the countdown at the given interval, invoking tick with the
// remaining seconds while running and once more with zero on expiry. It
// returns when ctx is done. Polling only reads the deadline; it never
// contends with session mutations.
func (rt *RestTimer) Run(ctx context.Context, interval time.Duration, tick func(remaining int)) {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	wasActive := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			remaining, active := rt.Remaining()
			if active {
				wasActive = true
				tick(remaining)
			} else if wasActive {
				wasActive = false
				tick(0)
			}
		}
	}
}
