package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/grindlemire/go-scene/internal/scenegraph"
)

// Actor is a node of the user-facing scene hierarchy.
//
// Actors live on the event goroutine. Setters update the actor's cached
// target value immediately and, while the actor is on stage, send a
// deferred operation to its scene node; the update goroutine applies it on
// the next tick. Plain getters return the target value. Current* and World*
// getters return what the last completed tick computed.
type Actor struct {
	stage *Stage
	id    uint32
	name  string

	// Tree structure (single source of truth)
	children []*Actor
	parent   *Actor

	// node is non-nil exactly while the actor is on stage.
	node *scenegraph.Node

	isRoot           bool
	onStage          bool
	onStageSignalled bool
	destroyed        bool

	// Animatable targets
	position    mgl32.Vec3
	scale       mgl32.Vec3
	orientation mgl32.Quat
	color       mgl32.Vec4
	size        mgl32.Vec3
	visible     bool

	// Non-animatable flags
	parentOrigin        mgl32.Vec3
	anchorPoint         mgl32.Vec3
	inheritRotation     bool
	inheritScale        bool
	positionInheritance PositionInheritance
	colorMode           ColorMode
	drawMode            DrawMode
	sizeMode            SizeMode
	sizeModeFactor      mgl32.Vec3
	sensitive           bool
	leaveRequired       bool

	onStageSignal      Signal[*Actor]
	offStageSignal     Signal[*Actor]
	childAddedSignal   Signal[*Actor]
	childRemovedSignal Signal[*Actor]
}

// allocateActor is the first construction phase: memory only.
func allocateActor() *Actor {
	return &Actor{}
}

// initialize is the second construction phase: identity and defaults.
func (a *Actor) initialize(s *Stage) {
	a.stage = s
	a.id = s.allocateActorID()

	d := scenegraph.DefaultInit()
	a.position = d.Position
	a.scale = d.Scale
	a.orientation = d.Orientation
	a.color = d.Color
	a.size = d.Size
	a.visible = d.Visible
	a.parentOrigin = d.ParentOrigin
	a.anchorPoint = d.AnchorPoint
	a.inheritRotation = d.InheritRotation
	a.inheritScale = d.InheritScale
	a.positionInheritance = d.PositionInheritance
	a.colorMode = d.ColorMode
	a.drawMode = d.DrawMode
	a.sizeMode = d.SizeMode
	a.sizeModeFactor = d.SizeModeFactor
	a.sensitive = true
}

// newRootActor creates the root actor and installs its node.
func (s *Stage) newRootActor() *Actor {
	a := allocateActor()
	a.initialize(s)
	a.name = "root"
	a.isRoot = true
	a.size = s.size
	a.onStage = true
	a.onStageSignalled = true
	a.node = scenegraph.NewNode(a.nodeInit())
	s.enqueue(scenegraph.InstallRootMessage(s.graph, a.node))
	return a
}

// nodeInit snapshots the cached targets and flags for a new scene node.
func (a *Actor) nodeInit() scenegraph.Init {
	return scenegraph.Init{
		Name:                a.name,
		Position:            a.position,
		Scale:               a.scale,
		Orientation:         a.orientation,
		Color:               a.color,
		Size:                a.size,
		Visible:             a.visible,
		ParentOrigin:        a.parentOrigin,
		AnchorPoint:         a.anchorPoint,
		InheritRotation:     a.inheritRotation,
		InheritScale:        a.inheritScale,
		PositionInheritance: a.positionInheritance,
		ColorMode:           a.colorMode,
		DrawMode:            a.drawMode,
		SizeMode:            a.sizeMode,
		SizeModeFactor:      a.sizeModeFactor,
	}
}

// ID returns the actor's id, unique within its stage. Zero is never used.
func (a *Actor) ID() uint32 {
	return a.id
}

// Name returns the actor's name.
func (a *Actor) Name() string {
	return a.name
}

// SetName sets the actor's name.
func (a *Actor) SetName(name string) {
	a.checkAlive("SetName")
	a.name = name
	a.sendFlags(func(f *scenegraph.Flags) { f.Name = name })
}

// Stage returns the stage the actor was created by.
func (a *Actor) Stage() *Stage {
	return a.stage
}

// IsRoot reports whether a is the stage's root actor.
func (a *Actor) IsRoot() bool {
	return a.isRoot
}

// OnStage reports whether the actor is connected to the root.
func (a *Actor) OnStage() bool {
	return a.onStage
}

// IsNodeConnected reports whether the actor is on stage and paired with a
// scene node.
func (a *Actor) IsNodeConnected() bool {
	return a.onStage && a.node != nil
}

// IsDestroyed reports whether Destroy has been called.
func (a *Actor) IsDestroyed() bool {
	return a.destroyed
}

// OnStageSignal fires after the actor is connected to the root.
func (a *Actor) OnStageSignal() *Signal[*Actor] {
	return &a.onStageSignal
}

// OffStageSignal fires after the actor is disconnected from the root.
func (a *Actor) OffStageSignal() *Signal[*Actor] {
	return &a.offStageSignal
}

// ChildAddedSignal fires with the child after it is added to this actor.
func (a *Actor) ChildAddedSignal() *Signal[*Actor] {
	return &a.childAddedSignal
}

// ChildRemovedSignal fires with the child after it is removed from this actor.
func (a *Actor) ChildRemovedSignal() *Signal[*Actor] {
	return &a.childRemovedSignal
}

// Destroy releases the actor. Children are orphaned first, then the actor
// leaves its parent.
// Destroying the root or destroying twice panics.
func (a *Actor) Destroy() {
	if a.isRoot {
		panic("scene: cannot destroy the root actor")
	}
	if a.destroyed {
		panic("scene: actor destroyed twice")
	}

	for len(a.children) > 0 {
		a.Remove(a.children[len(a.children)-1])
	}
	// leaving the parent releases the scene node
	if a.parent != nil {
		a.parent.Remove(a)
	}
	a.destroyed = true
}

func (a *Actor) checkAlive(op string) {
	if a == nil {
		panic("scene: nil actor in " + op)
	}
	if a.destroyed {
		panic("scene: " + op + " on destroyed actor")
	}
}

// sendFlags forwards a flag change to the scene node, if any.
func (a *Actor) sendFlags(fn func(f *scenegraph.Flags)) {
	a.checkAlive("property write")
	if a.node == nil {
		return
	}
	a.stage.enqueue(scenegraph.SetFlagMessage(a.stage.graph, a.node, fn))
}
