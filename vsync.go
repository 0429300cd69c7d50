package scene

import (
	"context"
	"time"

	"github.com/grindlemire/go-scene/internal/debug"
)

// VSyncSource produces display refresh notifications.
// Run calls notify once per VSync with an increasing frame number, from its
// own goroutine, until ctx is done.
type VSyncSource interface {
	Run(ctx context.Context, notify func(frame uint32)) error
}

// TickerVSync simulates a display refreshing at a fixed interval.
type TickerVSync struct {
	interval time.Duration
}

// NewTickerVSync returns a source firing fps times per second.
func NewTickerVSync(fps int) *TickerVSync {
	if fps < 1 {
		fps = 60
	}
	return &TickerVSync{interval: time.Second / time.Duration(fps)}
}

// Interval returns the time between VSyncs.
func (t *TickerVSync) Interval() time.Duration {
	return t.interval
}

// Run the source.
func (t *TickerVSync) Run(ctx context.Context, notify func(frame uint32)) error {
	debug.Log("ticker vsync started at %s", t.interval)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	var frame uint32
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			frame++
			notify(frame)
		}
	}
}

// ManualVSync fires only when told to. Useful for tests and offline tools.
type ManualVSync struct {
	fire chan struct{}
	done chan struct{}
}

// NewManualVSync returns a source that fires on Fire.
func NewManualVSync() *ManualVSync {
	return &ManualVSync{
		fire: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Fire delivers one VSync. It blocks until Run has taken it, and returns
// false without firing once Run has returned.
func (m *ManualVSync) Fire() bool {
	select {
	case m.fire <- struct{}{}:
		return true
	case <-m.done:
		return false
	}
}

// Run the source. A ManualVSync can run once.
func (m *ManualVSync) Run(ctx context.Context, notify func(frame uint32)) error {
	defer close(m.done)

	var frame uint32
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-m.fire:
			frame++
			notify(frame)
		}
	}
}
