package scenegraph

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/grindlemire/go-scene/internal/property"
)

// NodeID identifies a node for the lifetime of the process.
type NodeID uint64

var nextNodeID atomic.Uint64

// Default parent origin and anchor point.
var (
	ParentOriginTopLeft = mgl32.Vec3{0, 0, 0.5}
	AnchorPointCenter   = mgl32.Vec3{0.5, 0.5, 0.5}
)

// Init holds the values a node starts with. The event goroutine fills it
// from its cached targets before sending the node to the update goroutine.
type Init struct {
	Name string

	Position    mgl32.Vec3
	Scale       mgl32.Vec3
	Orientation mgl32.Quat
	Color       mgl32.Vec4
	Size        mgl32.Vec3
	Visible     bool

	ParentOrigin        mgl32.Vec3
	AnchorPoint         mgl32.Vec3
	InheritRotation     bool
	InheritScale        bool
	PositionInheritance PositionInheritance
	ColorMode           ColorMode
	DrawMode            DrawMode
	SizeMode            SizeMode
	SizeModeFactor      mgl32.Vec3
}

// DefaultInit returns the initial values of a freshly created object.
func DefaultInit() Init {
	return Init{
		Scale:               mgl32.Vec3{1, 1, 1},
		Orientation:         mgl32.QuatIdent(),
		Color:               mgl32.Vec4{1, 1, 1, 1},
		Visible:             true,
		ParentOrigin:        ParentOriginTopLeft,
		AnchorPoint:         AnchorPointCenter,
		InheritRotation:     true,
		InheritScale:        true,
		PositionInheritance: InheritParentPosition,
		ColorMode:           UseOwnMultiplyParentColor,
		DrawMode:            DrawNormal,
		SizeMode:            UseOwnSize,
		SizeModeFactor:      mgl32.Vec3{1, 1, 1},
	}
}

// Node is the update-side counterpart of one on-stage object.
type Node struct {
	id   NodeID
	name string

	// Animatable inputs. Baked by messages, reset to base every tick.
	Position    property.Slot[mgl32.Vec3]
	Scale       property.Slot[mgl32.Vec3]
	Orientation property.Slot[mgl32.Quat]
	Color       property.Slot[mgl32.Vec4]
	Size        property.Slot[mgl32.Vec3]
	Visible     property.Slot[bool]

	// Derived every tick for connected nodes.
	worldPosition    property.Slot[mgl32.Vec3]
	worldOrientation property.Slot[mgl32.Quat]
	worldScale       property.Slot[mgl32.Vec3]
	worldColor       property.Slot[mgl32.Vec4]
	worldMatrix      property.Slot[mgl32.Mat4]
	worldVisible     property.Slot[bool]
	effectiveSize    property.Slot[mgl32.Vec3]

	parentOrigin        mgl32.Vec3
	anchorPoint         mgl32.Vec3
	inheritRotation     bool
	inheritScale        bool
	positionInheritance PositionInheritance
	colorMode           ColorMode
	drawMode            DrawMode
	sizeMode            SizeMode
	sizeModeFactor      mgl32.Vec3

	isRoot    bool
	destroyed bool

	parent   *Node
	children []*Node
}

// NewNode allocates a node with a fresh id. Both buffers of every slot hold
// the initial values, and the world values start out equal to the local ones.
func NewNode(init Init) *Node {
	n := &Node{
		id:   NodeID(nextNodeID.Add(1)),
		name: init.Name,

		Position:    property.NewSlot(init.Position),
		Scale:       property.NewSlot(init.Scale),
		Orientation: property.NewSlot(init.Orientation),
		Color:       property.NewSlot(init.Color),
		Size:        property.NewSlot(init.Size),
		Visible:     property.NewSlot(init.Visible),

		worldPosition:    property.NewSlot(init.Position),
		worldOrientation: property.NewSlot(init.Orientation),
		worldScale:       property.NewSlot(init.Scale),
		worldColor:       property.NewSlot(init.Color),
		worldMatrix:      property.NewSlot(composeMatrix(init.Position, init.Orientation, init.Scale)),
		worldVisible:     property.NewSlot(init.Visible),
		effectiveSize:    property.NewSlot(init.Size),

		parentOrigin:        init.ParentOrigin,
		anchorPoint:         init.AnchorPoint,
		inheritRotation:     init.InheritRotation,
		inheritScale:        init.InheritScale,
		positionInheritance: init.PositionInheritance,
		colorMode:           init.ColorMode,
		drawMode:            init.DrawMode,
		sizeMode:            init.SizeMode,
		sizeModeFactor:      init.SizeModeFactor,
	}
	return n
}

// ID returns the node id. Safe from any goroutine.
func (n *Node) ID() NodeID {
	return n.id
}

// The accessors below are for the update goroutine.

func (n *Node) Name() string       { return n.name }
func (n *Node) Parent() *Node      { return n.parent }
func (n *Node) IsRoot() bool       { return n.isRoot }
func (n *Node) Destroyed() bool    { return n.destroyed }
func (n *Node) DrawMode() DrawMode { return n.drawMode }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// World-space reads. Event-side callers must hold the index from
// property.Buffers.Read.

func (n *Node) WorldPosition(idx property.BufferIndex) mgl32.Vec3 {
	return n.worldPosition.Read(idx)
}

func (n *Node) WorldOrientation(idx property.BufferIndex) mgl32.Quat {
	return n.worldOrientation.Read(idx)
}

func (n *Node) WorldScale(idx property.BufferIndex) mgl32.Vec3 {
	return n.worldScale.Read(idx)
}

func (n *Node) WorldColor(idx property.BufferIndex) mgl32.Vec4 {
	return n.worldColor.Read(idx)
}

func (n *Node) WorldMatrix(idx property.BufferIndex) mgl32.Mat4 {
	return n.worldMatrix.Read(idx)
}

func (n *Node) WorldVisible(idx property.BufferIndex) bool {
	return n.worldVisible.Read(idx)
}

func (n *Node) EffectiveSize(idx property.BufferIndex) mgl32.Vec3 {
	return n.effectiveSize.Read(idx)
}

func (n *Node) resetToBase(idx property.BufferIndex) {
	n.Position.ResetToBase(idx)
	n.Scale.ResetToBase(idx)
	n.Orientation.ResetToBase(idx)
	n.Color.ResetToBase(idx)
	n.Size.ResetToBase(idx)
	n.Visible.ResetToBase(idx)
}

func (n *Node) settled() bool {
	return n.Position.Settled() &&
		n.Scale.Settled() &&
		n.Orientation.Settled() &&
		n.Color.Settled() &&
		n.Size.Settled() &&
		n.Visible.Settled()
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}
