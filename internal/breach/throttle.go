package breach

import (
	"context"
	"sync"
	"time"
)

// Throttle serialises calls and keeps at least Interval between the end of
// one call and the start of the next. The zero value applies no spacing.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewThrottle returns a Throttle with the given minimum spacing.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Interval returns the minimum spacing.
func (t *Throttle) Interval() time.Duration {
	return t.interval
}

// Do waits for the spacing to elapse, then runs fn while holding the
// throttle. If ctx ends during the wait fn is not called.
func (t *Throttle) Do(ctx context.Context, fn func() error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.last.IsZero() {
		if wait := time.Until(t.last.Add(t.interval)); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	err := fn()
	t.last = time.Now()
	return err
}
