package scene

import (
	"time"

	"github.com/grindlemire/go-scene/internal/frameclock"
)

// TimeSource supplies monotonic microseconds to the frame clock.
type TimeSource = frameclock.TimeSource

// ManualTime is a TimeSource moved by hand.
type ManualTime = frameclock.ManualTime

// ClockState is the lifecycle state of the frame clock.
type ClockState = frameclock.State

const (
	ClockStopped   = frameclock.Stopped
	ClockRunning   = frameclock.Running
	ClockSuspended = frameclock.Suspended
	ClockSleeping  = frameclock.Sleeping
)

// Suspend stops ticking until Resume, e.g. when the application is hidden.
// VSyncs arriving while suspended are ignored.
func (s *Stage) Suspend() {
	s.clock.Suspend()
	s.log.Info().Log("stage suspended")
}

// Resume restarts ticking after Suspend. The first frame after resuming
// does not advance animations by the time spent suspended.
func (s *Stage) Resume() {
	s.clock.Resume()
	s.driver.Wake()
	s.log.Info().Log("stage resumed")
}

// ClockState returns the state of the frame clock.
func (s *Stage) ClockState() ClockState {
	return s.clock.State()
}

// SetMinimumFrameInterval changes the expected VSync interval at runtime.
func (s *Stage) SetMinimumFrameInterval(d time.Duration) {
	s.clock.SetMinimumFrameInterval(uint64(d.Microseconds()))
}

// MinimumFrameInterval returns the expected VSync interval.
func (s *Stage) MinimumFrameInterval() time.Duration {
	return time.Duration(s.clock.MinimumFrameInterval()) * time.Microsecond
}
