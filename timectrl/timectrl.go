package timectrl

import (
	"context"
	"sync"
	"time"
)

// Clock is an interface for reading the current time. The scoring and
// scanning paths take "now" as an argument, so handing them a Clock lets
// tests pin every query to a fixed instant.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FrozenClock always reports the same instant.
type FrozenClock struct {
	At time.Time
}

func (c FrozenClock) Now() time.Time { return c.At }

// RefreshController drives the daemon's periodic recompute cycle and
// notifies registered listeners on every tick. It implements Clock for
// components that want the controller's notion of now.
type RefreshController struct {
	mu       sync.RWMutex
	clock    Clock
	Interval time.Duration

	// lastTick tracks the time of the most recent completed tick.
	lastTick time.Time

	listeners []func(time.Time)
}

// NewRefreshController constructs a controller. A nil clock falls back to
// the system clock.
func NewRefreshController(clock Clock, interval time.Duration) *RefreshController {
	if clock == nil {
		clock = SystemClock{}
	}
	return &RefreshController{
		clock:    clock,
		Interval: interval,
		lastTick: clock.Now(),
	}
}

// Now returns the current time from the underlying clock. Implements Clock.
func (rc *RefreshController) Now() time.Time {
	return rc.clock.Now()
}

// LastTick returns the time of the most recent completed tick.
func (rc *RefreshController) LastTick() time.Time {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.lastTick
}

// AddListener registers a callback invoked on every tick. Listeners must
// be registered before Start.
func (rc *RefreshController) AddListener(fn func(time.Time)) {
	rc.listeners = append(rc.listeners, fn)
}

// Start runs the controller in a separate goroutine until the context is
// cancelled. Listeners fire once immediately and then on every interval.
// It returns a channel that is closed when the controller finishes.
func (rc *RefreshController) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		rc.tick()

		ticker := time.NewTicker(rc.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rc.tick()
			}
		}
	}()
	return done
}

func (rc *RefreshController) tick() {
	now := rc.clock.Now()

	rc.mu.Lock()
	rc.lastTick = now
	rc.mu.Unlock()

	for _, fn := range rc.listeners {
		fn(now)
	}
}
