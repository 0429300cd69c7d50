package scene

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// ErrStageRunning is returned by Run when the stage is already running.
var ErrStageRunning = errors.New("scene: stage already running")

// Run starts the frame clock, the update goroutine and the VSync source,
// then runs the event loop on the calling goroutine, which must be the
// goroutine that created the stage. Blocks until ctx is done, Stop is called,
// or a background goroutine fails.
func (s *Stage) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrStageRunning
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.clock.Start()
	defer s.clock.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.driver.Run(gctx)
	})
	if s.vsync != nil {
		g.Go(func() error {
			return s.vsync.Run(gctx, s.driver.NotifyVSync)
		})
	}

	s.log.Info().Log("stage running")
	s.driver.Wake()

loop:
	for {
		select {
		case handler := <-s.eventQueue:
			handler()
		case <-s.stopCh:
			break loop
		case <-gctx.Done():
			break loop
		}
	}

	cancel()
	err := g.Wait()
	if err != nil {
		s.log.Err().Err(err).Log("stage stopped with error")
	} else {
		s.log.Info().Log("stage stopped")
	}
	return err
}

// Stop signals the Run loop to exit.
// Stop is idempotent - multiple calls are safe.
func (s *Stage) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// QueueEvent enqueues fn to run on the event goroutine.
// Safe to call from any goroutine. Use this to touch actors from renderers,
// VSync callbacks or other background work. Returns false if the stage is
// stopping or the queue is full.
func (s *Stage) QueueEvent(fn func()) bool {
	select {
	case s.eventQueue <- fn:
		return true
	case <-s.stopCh:
		return false
	default:
		s.log.Warning().Int("capacity", cap(s.eventQueue)).Log("event queue full, dropping event")
		return false
	}
}

// Step runs one update tick on the calling goroutine and returns its frame
// info. Only valid while Run is not executing; the caller then plays both
// the event and the update goroutine, which is how tests and offline tools
// drive a stage deterministically.
func (s *Stage) Step() FrameInfo {
	if s.running.Load() {
		panic("scene: Step called while the stage is running")
	}
	return s.frameInfo(s.driver.Tick())
}
