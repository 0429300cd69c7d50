package update

import (
	"context"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/go-scene/internal/frameclock"
	"github.com/grindlemire/go-scene/internal/message"
	"github.com/grindlemire/go-scene/internal/property"
	"github.com/grindlemire/go-scene/internal/scenegraph"
)

type fixture struct {
	clock   *frameclock.Clock
	time    *frameclock.ManualTime
	buffers *property.Buffers
	queue   *message.Queue
	graph   *scenegraph.Graph
	root    *scenegraph.Node
	frames  chan Frame
	driver  *Driver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		time:    &frameclock.ManualTime{},
		buffers: property.NewBuffers(),
		queue:   message.NewQueue(),
		graph:   scenegraph.NewGraph(nil),
		frames:  make(chan Frame, 16),
	}
	f.clock = frameclock.New(frameclock.WithTimeSource(f.time))
	f.clock.Start()
	f.root = scenegraph.NewNode(scenegraph.DefaultInit())
	f.queue.Enqueue(scenegraph.InstallRootMessage(f.graph, f.root))
	f.driver = New(Config{
		Clock:   f.clock,
		Buffers: f.buffers,
		Queue:   f.queue,
		Graph:   f.graph,
		Render:  func(fr Frame) { f.frames <- fr },
	})
	return f
}

func (f *fixture) run(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return f.driver.Run(ctx) })
	t.Cleanup(func() {
		cancel()
		require.NoError(t, g.Wait())
	})
}

func (f *fixture) vsync(frame uint32) {
	f.time.Advance(16 * time.Millisecond)
	f.driver.NotifyVSync(frame)
}

func (f *fixture) nextFrame(t *testing.T) Frame {
	t.Helper()
	select {
	case fr := <-f.frames:
		return fr
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a frame")
		return Frame{}
	}
}

func (f *fixture) noFrame(t *testing.T) {
	t.Helper()
	select {
	case fr := <-f.frames:
		t.Fatalf("unexpected frame %d", fr.Number)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDriver_Tick(t *testing.T) {
	f := newFixture(t)
	child := scenegraph.NewNode(scenegraph.DefaultInit())
	f.queue.Enqueue(scenegraph.AddNodeMessage(f.graph, child))
	f.queue.Enqueue(scenegraph.ConnectNodeMessage(f.graph, f.root, child, -1))
	f.queue.Enqueue(scenegraph.BakeMessage(child, scenegraph.PositionSlot, mgl32.Vec3{1, 2, 3}))

	fr := f.driver.Tick()
	<-f.frames

	assert.Equal(t, uint64(1), fr.Number)
	assert.Equal(t, 4, fr.Applied)
	assert.Equal(t, 2, fr.Evaluated)
	require.Len(t, fr.Nodes, 2)

	// the tick wrote buffer 0, which readers now see
	f.buffers.Read(func(idx property.BufferIndex) {
		assert.Equal(t, property.BufferIndex(0), idx)
		assert.Equal(t, mgl32.Vec3{1, 2, 3}, child.Position.Read(idx))
	})

	fr = f.driver.Tick()
	<-f.frames
	assert.Equal(t, uint64(2), fr.Number)
	assert.Zero(t, fr.Applied)
	f.buffers.Read(func(idx property.BufferIndex) {
		assert.Equal(t, mgl32.Vec3{1, 2, 3}, child.Position.Read(idx), "value carried into the other buffer")
	})
}

func TestDriver_TickWithoutRender(t *testing.T) {
	f := newFixture(t)
	d := New(Config{Clock: f.clock, Buffers: f.buffers, Queue: f.queue, Graph: f.graph})

	fr := d.Tick()

	assert.Nil(t, fr.Nodes)
	assert.Equal(t, 1, fr.Evaluated)
}

func TestDriver_IncompleteConfigPanics(t *testing.T) {
	assert.PanicsWithValue(t, "scene: incomplete update driver config", func() {
		New(Config{})
	})
}

func TestDriver_SleepsWhenSettledAndWakes(t *testing.T) {
	f := newFixture(t)
	f.run(t)

	// installing the root takes two ticks to settle
	f.vsync(1)
	f.nextFrame(t)
	f.vsync(2)
	f.nextFrame(t)

	f.vsync(3)
	f.noFrame(t)

	child := scenegraph.NewNode(scenegraph.DefaultInit())
	f.queue.Enqueue(scenegraph.AddNodeMessage(f.graph, child))
	f.queue.Enqueue(scenegraph.ConnectNodeMessage(f.graph, f.root, child, -1))
	f.driver.Wake()

	fr := f.nextFrame(t)
	assert.Equal(t, 2, fr.Applied)
	assert.Equal(t, 2, fr.Evaluated)
	assert.Zero(t, fr.Prediction.Delta, "first frame after wake-up")
}

func TestDriver_SuspendedDoesNotTick(t *testing.T) {
	f := newFixture(t)
	f.run(t)

	f.vsync(1)
	f.nextFrame(t)

	f.clock.Suspend()
	f.vsync(2)
	f.noFrame(t)

	f.clock.Resume()
	f.vsync(3)
	fr := f.nextFrame(t)
	assert.Equal(t, uint64(2), fr.Number)
}
