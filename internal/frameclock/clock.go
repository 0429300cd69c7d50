package frameclock

import (
	"runtime"
	"sync/atomic"

	"github.com/joeycumines/logiface"
)

// DefaultMinimumFrameInterval is the frame interval of a 60Hz display, in
// microseconds.
const DefaultMinimumFrameInterval = 16667

// historySize is the number of past ticks averaged when update falls behind.
const historySize = 3

// State is the lifecycle state of a Clock.
type State uint8

const (
	Stopped State = iota
	Running
	Suspended
	Sleeping
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Sleeping:
		return "sleeping"
	default:
		return "unknown"
	}
}

// Prediction is the timing information handed to the animation and render
// steps of one tick.
type Prediction struct {
	// Delta is the time, in seconds, the tick advances animations by.
	Delta float32
	// LastVSyncMs is the time of the last VSync, in milliseconds.
	LastVSyncMs uint32
	// NextVSyncMs is the predicted time at which this tick is displayed.
	NextVSyncMs uint32
	// ExtraUpdates counts ticks run since the last VSync without a new one.
	ExtraUpdates uint32
	// FramesSinceLastUpdate counts VSyncs since the previous tick.
	FramesSinceLastUpdate uint32
}

// vsyncSample is one consistent read of the VSync-owned fields.
type vsyncSample struct {
	last  uint64
	prev  uint64
	frame uint32
	count uint64
}

// Clock tracks VSync timing and predicts render times.
type Clock struct {
	time TimeSource
	log  *logiface.Logger[logiface.Event]

	// VSync goroutine. seq is odd while a write is in progress.
	seq        atomic.Uint64
	lastVSync  atomic.Uint64
	prevVSync  atomic.Uint64
	lastFrame  atomic.Uint32
	vsyncCount atomic.Uint64

	// Event goroutine.
	minInterval atomic.Uint64
	runState    atomic.Uint32
	resumeEpoch atomic.Uint64
	resumeCount atomic.Uint64

	// Update goroutine.
	sleeping          atomic.Bool
	seenEpoch         uint64
	firstFrame        bool
	firstBaseCount    uint64
	lastSeenVSync     uint64
	lastSeenFrame     uint32
	history           [historySize]uint32
	writePos          int
	extraUpdates      uint32
	lastPredictedNext uint64
	pending           vsyncSample
	pendingFrames     uint32
}

// Option configures a Clock.
type Option func(*Clock)

// WithTimeSource replaces the system clock.
func WithTimeSource(ts TimeSource) Option {
	return func(c *Clock) {
		c.time = ts
	}
}

// WithLogger sets the logger used for trace output.
func WithLogger(l *logiface.Logger[logiface.Event]) Option {
	return func(c *Clock) {
		c.log = l
	}
}

// New returns a stopped clock.
func New(opts ...Option) *Clock {
	c := &Clock{}
	c.minInterval.Store(DefaultMinimumFrameInterval)
	for i := range c.history {
		c.history[i] = 1
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.time == nil {
		c.time = NewSystemTime()
	}
	return c
}

// SetMinimumFrameInterval sets the expected VSync interval in microseconds.
// Zero restores the default.
func (c *Clock) SetMinimumFrameInterval(micros uint64) {
	if micros == 0 {
		micros = DefaultMinimumFrameInterval
	}
	c.minInterval.Store(micros)
}

// MinimumFrameInterval returns the expected VSync interval in microseconds.
func (c *Clock) MinimumFrameInterval() uint64 {
	return c.minInterval.Load()
}

// Start begins accepting VSyncs. The next prediction is a first frame.
func (c *Clock) Start() {
	c.resume()
}

// Stop stops accepting VSyncs.
func (c *Clock) Stop() {
	c.runState.Store(uint32(Stopped))
}

// Suspend stops accepting VSyncs until Resume.
func (c *Clock) Suspend() {
	if State(c.runState.Load()) == Running {
		c.runState.Store(uint32(Suspended))
	}
}

// Resume starts accepting VSyncs again. The next prediction is a first frame.
func (c *Clock) Resume() {
	if State(c.runState.Load()) == Suspended {
		c.resume()
	}
}

func (c *Clock) resume() {
	c.resumeCount.Store(c.vsyncCount.Load())
	c.resumeEpoch.Add(1)
	c.runState.Store(uint32(Running))
}

// Sleep records that the update goroutine has stopped ticking.
func (c *Clock) Sleep() {
	c.sleeping.Store(true)
}

// WakeUp records that ticking resumes. The next prediction is a first frame.
func (c *Clock) WakeUp() {
	if !c.sleeping.Swap(false) {
		return
	}
	c.firstFrame = true
	c.firstBaseCount = c.vsyncCount.Load()
	c.extraUpdates = 0
}

// State returns the current lifecycle state.
func (c *Clock) State() State {
	s := State(c.runState.Load())
	if s == Running && c.sleeping.Load() {
		return Sleeping
	}
	return s
}

// SetVSyncTime records a VSync with the given frame number at the current
// time. Ignored unless the clock is running or sleeping.
// VSync goroutine only.
func (c *Clock) SetVSyncTime(frame uint32) {
	if State(c.runState.Load()) != Running {
		return
	}
	now := c.time.NowMicros()

	c.seq.Add(1)
	c.prevVSync.Store(c.lastVSync.Load())
	c.lastVSync.Store(now)
	c.lastFrame.Store(frame)
	c.vsyncCount.Add(1)
	c.seq.Add(1)
}

// VSyncCount returns the number of VSyncs recorded since creation.
func (c *Clock) VSyncCount() uint64 {
	return c.vsyncCount.Load()
}

func (c *Clock) sample() vsyncSample {
	for {
		s1 := c.seq.Load()
		if s1&1 == 1 {
			runtime.Gosched()
			continue
		}
		v := vsyncSample{
			last:  c.lastVSync.Load(),
			prev:  c.prevVSync.Load(),
			frame: c.lastFrame.Load(),
			count: c.vsyncCount.Load(),
		}
		if c.seq.Load() == s1 {
			return v
		}
	}
}

// PredictNextVSyncTime returns the timing for the tick about to run.
// Update goroutine only, once per tick, followed by TickDone.
func (c *Clock) PredictNextVSyncTime() Prediction {
	v := c.sample()

	if epoch := c.resumeEpoch.Load(); epoch != c.seenEpoch {
		c.seenEpoch = epoch
		c.firstFrame = true
		c.firstBaseCount = c.resumeCount.Load()
		c.extraUpdates = 0
	}

	interval := c.minInterval.Load()
	frames := v.frame - c.lastSeenFrame
	newVSync := v.count > 0 && v.last != c.lastSeenVSync

	var deltaMicros uint64
	switch {
	case c.firstFrame:
		if v.count-c.firstBaseCount >= 2 {
			deltaMicros = v.last - v.prev
		}
		c.extraUpdates = 0
	case newVSync:
		deltaMicros = v.last - c.lastSeenVSync
		c.extraUpdates = 0
	default:
		c.extraUpdates++
		deltaMicros = interval
	}
	if !newVSync {
		frames = 0
	}

	framesTillNext := float64(c.extraUpdates + 1)
	if frames > 1 {
		if avg := c.historyAverage(); avg > 1 {
			framesTillNext = avg
		}
	}

	base := v.last
	if v.count == 0 {
		base = c.time.NowMicros()
	}
	next := base + uint64(float64(interval)*framesTillNext)
	if next < c.lastPredictedNext {
		next = c.lastPredictedNext
	}
	c.lastPredictedNext = next

	c.pending = v
	c.pendingFrames = frames

	p := Prediction{
		Delta:                 float32(deltaMicros) / 1e6,
		LastVSyncMs:           uint32(base / 1000),
		NextVSyncMs:           uint32(next / 1000),
		ExtraUpdates:          c.extraUpdates,
		FramesSinceLastUpdate: frames,
	}

	c.log.Trace().
		Float32("delta", p.Delta).
		Int64("lastVSyncMs", int64(p.LastVSyncMs)).
		Int64("nextVSyncMs", int64(p.NextVSyncMs)).
		Int64("extraUpdates", int64(p.ExtraUpdates)).
		Log("predicted next vsync")
	return p
}

// TickDone commits the VSync state observed by the last prediction.
// Update goroutine only.
func (c *Clock) TickDone() {
	if c.pendingFrames > 0 {
		c.history[c.writePos] = c.pendingFrames
		c.writePos = (c.writePos + 1) % historySize
	}
	if c.pending.count > 0 {
		c.lastSeenVSync = c.pending.last
		c.lastSeenFrame = c.pending.frame
	}
	c.firstFrame = false
	c.pendingFrames = 0
}

func (c *Clock) historyAverage() float64 {
	var sum uint32
	for _, f := range c.history {
		sum += f
	}
	return float64(sum) / historySize
}
