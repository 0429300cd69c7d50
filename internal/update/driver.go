// Package update runs the update side of a scene: one tick per VSync, each
// tick draining the message queue into the scene graph, evaluating it and
// publishing the result by flipping the buffer index.
package update

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/joeycumines/logiface"

	"github.com/grindlemire/go-scene/internal/frameclock"
	"github.com/grindlemire/go-scene/internal/message"
	"github.com/grindlemire/go-scene/internal/metrics"
	"github.com/grindlemire/go-scene/internal/property"
	"github.com/grindlemire/go-scene/internal/scenegraph"
)

// Frame describes one completed tick.
type Frame struct {
	// Number counts completed ticks, starting at 1.
	Number     uint64
	Prediction frameclock.Prediction
	// Applied is the number of messages drained this tick.
	Applied int
	// Evaluated is the number of connected nodes updated this tick.
	Evaluated int
	// Nodes is the evaluated scene in pre-order. Only filled when a render
	// callback is installed.
	Nodes   []scenegraph.NodeSnapshot
	Elapsed time.Duration
}

// Config wires a Driver to the scene it updates.
type Config struct {
	Clock   *frameclock.Clock
	Buffers *property.Buffers
	Queue   *message.Queue
	Graph   *scenegraph.Graph

	// Render, if set, receives every frame on the update goroutine.
	Render func(Frame)

	Metrics *metrics.Metrics
	Logger  *logiface.Logger[logiface.Event]
}

// Driver owns the update goroutine.
type Driver struct {
	clock   *frameclock.Clock
	buffers *property.Buffers
	queue   *message.Queue
	graph   *scenegraph.Graph
	render  func(Frame)
	metrics *metrics.Metrics
	log     *logiface.Logger[logiface.Event]

	vsyncCh chan struct{}
	wakeCh  chan struct{}
	dirty   atomic.Bool

	// asleep is owned by the update goroutine.
	asleep bool
}

// New returns a driver for cfg. Clock, Buffers, Queue and Graph are required.
func New(cfg Config) *Driver {
	if cfg.Clock == nil || cfg.Buffers == nil || cfg.Queue == nil || cfg.Graph == nil {
		panic("scene: incomplete update driver config")
	}
	return &Driver{
		clock:   cfg.Clock,
		buffers: cfg.Buffers,
		queue:   cfg.Queue,
		graph:   cfg.Graph,
		render:  cfg.Render,
		metrics: cfg.Metrics,
		log:     cfg.Logger,
		vsyncCh: make(chan struct{}, 1),
		wakeCh:  make(chan struct{}, 1),
	}
}

// NotifyVSync records a VSync and schedules a tick. VSync goroutine only.
func (d *Driver) NotifyVSync(frame uint32) {
	d.clock.SetVSyncTime(frame)
	d.metrics.ObserveVSync()
	select {
	case d.vsyncCh <- struct{}{}:
	default:
	}
}

// Wake marks the scene as changed and wakes a sleeping update loop.
// Safe to call from any goroutine.
func (d *Driver) Wake() {
	d.dirty.Store(true)
	select {
	case d.wakeCh <- struct{}{}:
	default:
	}
}

// Asleep reports whether the loop is sleeping. Update goroutine only.
func (d *Driver) Asleep() bool {
	return d.asleep
}

// Run ticks once per VSync until ctx is done. While suspended or stopped no
// ticks run; once the scene has settled the loop sleeps until Wake.
func (d *Driver) Run(ctx context.Context) error {
	d.log.Debug().Log("update loop started")
	defer d.log.Debug().Log("update loop stopped")

	for {
		trigger := d.vsyncCh
		if d.asleep {
			trigger = nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-trigger:
		case <-d.wakeCh:
			if !d.asleep {
				// the next vsync picks the change up
				continue
			}
			d.asleep = false
			d.clock.WakeUp()
			d.log.Debug().Log("update loop woke up")
		}

		switch d.clock.State() {
		case frameclock.Stopped, frameclock.Suspended:
			continue
		}

		d.Tick()

		if d.canSleep() {
			d.asleep = true
			d.clock.Sleep()
			d.metrics.ObserveSleep()
			d.log.Debug().Log("update loop sleeping")
		}
	}
}

func (d *Driver) canSleep() bool {
	if d.dirty.Swap(false) {
		return false
	}
	return d.queue.Len() == 0 && d.graph.Settled()
}

// Tick runs one update tick. Update goroutine only; Run calls it, and tests
// or offline tools may call it directly when Run is not running.
func (d *Driver) Tick() Frame {
	start := time.Now()

	p := d.clock.PredictNextVSyncTime()
	idx := d.buffers.UpdateIndex()

	d.graph.ResetToBase(idx)
	applied := d.queue.DrainAndApply(idx)
	evaluated := d.graph.Update(idx)

	var nodes []scenegraph.NodeSnapshot
	if d.render != nil {
		nodes = d.graph.Snapshot(idx)
	}

	d.buffers.Swap()
	d.clock.TickDone()

	f := Frame{
		Number:     d.buffers.Frame(),
		Prediction: p,
		Applied:    applied,
		Evaluated:  evaluated,
		Nodes:      nodes,
		Elapsed:    time.Since(start),
	}
	d.metrics.ObserveTick(p, evaluated, f.Elapsed)

	d.log.Trace().
		Uint64("frame", f.Number).
		Int("applied", applied).
		Int("evaluated", evaluated).
		Dur("elapsed", f.Elapsed).
		Log("tick")

	if d.render != nil {
		d.render(f)
	}
	return f
}
