package scene

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/joeycumines/logiface"
	"github.com/prometheus/client_golang/prometheus"
)

// StageOption is a functional option for configuring a Stage.
type StageOption func(*Stage) error

// WithFrameRate sets the expected display refresh rate, which becomes the
// minimum frame interval used to extrapolate frame times.
// Default is 60 fps. Valid range is 1-240 fps.
func WithFrameRate(fps int) StageOption {
	return func(s *Stage) error {
		if fps < 1 {
			return fmt.Errorf("frame rate must be at least 1 fps")
		}
		if fps > 240 {
			return fmt.Errorf("frame rate cannot exceed 240 fps")
		}
		s.minInterval = uint64(time.Second.Microseconds()) / uint64(fps)
		return nil
	}
}

// WithMinimumFrameInterval sets the minimum frame interval directly.
func WithMinimumFrameInterval(d time.Duration) StageOption {
	return func(s *Stage) error {
		if d < time.Microsecond {
			return fmt.Errorf("minimum frame interval must be at least 1µs, got %s", d)
		}
		s.minInterval = uint64(d.Microseconds())
		return nil
	}
}

// WithStageSize sets the size of the root actor. Default is DefaultStageSize.
func WithStageSize(width, height float32) StageOption {
	return func(s *Stage) error {
		if width < 0 || height < 0 {
			return fmt.Errorf("stage size must not be negative, got %gx%g", width, height)
		}
		s.size = mgl32.Vec3{width, height, 0}
		return nil
	}
}

// WithVSyncSource sets the source that paces update ticks while Run
// executes. Without one, ticks only run through Step.
func WithVSyncSource(src VSyncSource) StageOption {
	return func(s *Stage) error {
		if src == nil {
			return fmt.Errorf("vsync source must not be nil")
		}
		s.vsync = src
		return nil
	}
}

// WithRenderer sets the receiver of every evaluated frame.
func WithRenderer(r Renderer) StageOption {
	return func(s *Stage) error {
		if r == nil {
			return fmt.Errorf("renderer must not be nil")
		}
		s.renderer = r
		return nil
	}
}

// WithLogger sets the structured logger. By default the stage logs through
// the package debug logger, which is off unless initialised.
func WithLogger(l *logiface.Logger[logiface.Event]) StageOption {
	return func(s *Stage) error {
		s.log = l
		return nil
	}
}

// WithMetrics registers the stage's Prometheus collectors with reg.
func WithMetrics(reg prometheus.Registerer) StageOption {
	return func(s *Stage) error {
		if reg == nil {
			return fmt.Errorf("metrics registerer must not be nil")
		}
		s.registerer = reg
		return nil
	}
}

// WithEventQueueSize sets the capacity of the QueueEvent buffer.
// Default is 256. Must be at least 1.
func WithEventQueueSize(size int) StageOption {
	return func(s *Stage) error {
		if size < 1 {
			return fmt.Errorf("event queue size must be at least 1")
		}
		s.eventQueueSize = size
		return nil
	}
}

// WithTimeSource replaces the clock used to timestamp VSyncs.
func WithTimeSource(ts TimeSource) StageOption {
	return func(s *Stage) error {
		if ts == nil {
			return fmt.Errorf("time source must not be nil")
		}
		s.timeSource = ts
		return nil
	}
}
