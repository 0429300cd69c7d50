package scene

import (
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/joeycumines/logiface"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/grindlemire/go-scene/internal/debug"
	"github.com/grindlemire/go-scene/internal/frameclock"
	"github.com/grindlemire/go-scene/internal/message"
	"github.com/grindlemire/go-scene/internal/metrics"
	"github.com/grindlemire/go-scene/internal/property"
	"github.com/grindlemire/go-scene/internal/scenegraph"
	"github.com/grindlemire/go-scene/internal/update"
)

// DefaultStageSize is the size of the root actor unless WithStageSize is given.
var DefaultStageSize = mgl32.Vec3{800, 480, 0}

// Stage owns one scene: the root actor, the update goroutine that evaluates
// the scene, and the frame clock that paces it.
//
// The goroutine that creates a Stage is its event goroutine. Actors belong
// to that goroutine; other goroutines reach them through QueueEvent once Run
// is executing the event loop.
type Stage struct {
	session string
	log     *logiface.Logger[logiface.Event]

	clock   *frameclock.Clock
	buffers *property.Buffers
	queue   *message.Queue
	graph   *scenegraph.Graph
	driver  *update.Driver
	metrics *metrics.Metrics

	root        *Actor
	nextActorID uint32

	// Configuration (set via options)
	size           mgl32.Vec3
	minInterval    uint64
	vsync          VSyncSource
	renderer       Renderer
	registerer     prometheus.Registerer
	timeSource     frameclock.TimeSource
	eventQueueSize int

	// Event loop fields
	eventQueue chan func()
	stopCh     chan struct{}
	stopOnce   sync.Once
	running    atomic.Bool
}

// NewStage creates a stage with its root actor already on stage.
// Options are validated in order; the first failing option aborts creation.
func NewStage(opts ...StageOption) (*Stage, error) {
	s := &Stage{
		session:        uuid.NewString(),
		size:           DefaultStageSize,
		minInterval:    frameclock.DefaultMinimumFrameInterval,
		eventQueueSize: 256,
		stopCh:         make(chan struct{}),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.log == nil {
		s.log = debug.Logger()
	}
	if ctx := s.log.Clone(); ctx != nil {
		s.log = ctx.Str("session", s.session).Logger()
	}
	if s.registerer != nil {
		s.metrics = metrics.New(s.registerer)
	}

	clockOpts := []frameclock.Option{frameclock.WithLogger(s.log)}
	if s.timeSource != nil {
		clockOpts = append(clockOpts, frameclock.WithTimeSource(s.timeSource))
	}
	s.clock = frameclock.New(clockOpts...)
	s.clock.SetMinimumFrameInterval(s.minInterval)

	s.buffers = property.NewBuffers()
	s.queue = message.NewQueue(message.WithApplyObserver(s.metrics.ObserveMessage))
	s.graph = scenegraph.NewGraph(s.log)

	cfg := update.Config{
		Clock:   s.clock,
		Buffers: s.buffers,
		Queue:   s.queue,
		Graph:   s.graph,
		Metrics: s.metrics,
		Logger:  s.log,
	}
	if s.renderer != nil {
		cfg.Render = s.renderFrame
	}
	s.driver = update.New(cfg)
	s.eventQueue = make(chan func(), s.eventQueueSize)

	s.root = s.newRootActor()

	s.log.Info().
		Float32("width", s.size[0]).
		Float32("height", s.size[1]).
		Int64("minFrameIntervalUs", int64(s.minInterval)).
		Log("stage created")
	return s, nil
}

// Root returns the root actor. It is always on stage and cannot be
// reparented or destroyed.
func (s *Stage) Root() *Actor {
	return s.root
}

// Session returns the unique id of this stage, also attached to its logs.
func (s *Stage) Session() string {
	return s.session
}

// Size returns the size of the root actor.
func (s *Stage) Size() mgl32.Vec3 {
	return s.size
}

// CommittedFrame returns the number of completed update ticks.
// Safe from any goroutine.
func (s *Stage) CommittedFrame() uint64 {
	var n uint64
	s.buffers.ReadFrame(func(_ property.BufferIndex, frame uint64) {
		n = frame
	})
	return n
}

// NewActor creates an off-stage actor with default values, then applies opts.
func (s *Stage) NewActor(opts ...Option) *Actor {
	if s == nil {
		panic("scene: nil stage in NewActor")
	}
	a := allocateActor()
	a.initialize(s)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (s *Stage) allocateActorID() uint32 {
	s.nextActorID++
	return s.nextActorID
}

func (s *Stage) renderFrame(f update.Frame) {
	s.renderer.RenderFrame(s.frameInfo(f), f.Nodes)
}

func (s *Stage) frameInfo(f update.Frame) FrameInfo {
	return FrameInfo{
		Session:      s.session,
		Number:       f.Number,
		Delta:        f.Prediction.Delta,
		LastVSyncMs:  f.Prediction.LastVSyncMs,
		NextVSyncMs:  f.Prediction.NextVSyncMs,
		ExtraUpdates: f.Prediction.ExtraUpdates,
		Applied:      f.Applied,
		Evaluated:    f.Evaluated,
		Elapsed:      f.Elapsed,
	}
}
