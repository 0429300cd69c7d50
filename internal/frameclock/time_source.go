package frameclock

import (
	"sync/atomic"
	"time"
)

// TimeSource returns a monotonic time in microseconds.
type TimeSource interface {
	NowMicros() uint64
}

// SystemTime reads the process monotonic clock, relative to its creation.
type SystemTime struct {
	start time.Time
}

// NewSystemTime returns a time source whose zero is now.
func NewSystemTime() *SystemTime {
	return &SystemTime{start: time.Now()}
}

func (s *SystemTime) NowMicros() uint64 {
	return uint64(time.Since(s.start).Microseconds())
}

// ManualTime is a TimeSource moved by hand. Safe for concurrent use.
type ManualTime struct {
	now atomic.Uint64
}

func (m *ManualTime) NowMicros() uint64 {
	return m.now.Load()
}

// Set moves the clock to micros.
func (m *ManualTime) Set(micros uint64) {
	m.now.Store(micros)
}

// Advance moves the clock forward by d.
func (m *ManualTime) Advance(d time.Duration) {
	m.now.Add(uint64(d.Microseconds()))
}
