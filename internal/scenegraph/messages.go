package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/grindlemire/go-scene/internal/message"
	"github.com/grindlemire/go-scene/internal/property"
)

// The constructors below build the messages the event goroutine sends for a
// node. Each captures its arguments by value; a message addressed to a
// destroyed node does nothing.

// AddNodeMessage transfers ownership of n to g.
func AddNodeMessage(g *Graph, n *Node) message.Message {
	return message.Message{
		Kind:  message.KindAddNode,
		Apply: func(property.BufferIndex) { g.Add(n) },
	}
}

// InstallRootMessage transfers ownership of n to g and makes it the root.
func InstallRootMessage(g *Graph, n *Node) message.Message {
	return message.Message{
		Kind:  message.KindInstallRoot,
		Apply: func(property.BufferIndex) { g.InstallRoot(n) },
	}
}

// DestroyNodeMessage releases n.
func DestroyNodeMessage(g *Graph, n *Node) message.Message {
	return message.Message{
		Kind:  message.KindDestroyNode,
		Apply: func(property.BufferIndex) { g.Destroy(n) },
	}
}

// ConnectNodeMessage attaches child under parent at index (append when out
// of range).
func ConnectNodeMessage(g *Graph, parent, child *Node, index int) message.Message {
	return message.Message{
		Kind:  message.KindConnectNode,
		Apply: func(property.BufferIndex) { g.Connect(parent, child, index) },
	}
}

// DisconnectNodeMessage detaches n from its parent.
func DisconnectNodeMessage(g *Graph, n *Node) message.Message {
	return message.Message{
		Kind:  message.KindDisconnectNode,
		Apply: func(property.BufferIndex) { g.Disconnect(n) },
	}
}

// SlotSelector picks one input slot of a node.
type SlotSelector[T any] func(n *Node) *property.Slot[T]

// Input slot selectors.
var (
	PositionSlot    SlotSelector[mgl32.Vec3] = func(n *Node) *property.Slot[mgl32.Vec3] { return &n.Position }
	ScaleSlot       SlotSelector[mgl32.Vec3] = func(n *Node) *property.Slot[mgl32.Vec3] { return &n.Scale }
	OrientationSlot SlotSelector[mgl32.Quat] = func(n *Node) *property.Slot[mgl32.Quat] { return &n.Orientation }
	ColorSlot       SlotSelector[mgl32.Vec4] = func(n *Node) *property.Slot[mgl32.Vec4] { return &n.Color }
	SizeSlot        SlotSelector[mgl32.Vec3] = func(n *Node) *property.Slot[mgl32.Vec3] { return &n.Size }
	VisibleSlot     SlotSelector[bool]       = func(n *Node) *property.Slot[bool] { return &n.Visible }
)

// BakeMessage bakes v into the selected slot of n.
func BakeMessage[T any](n *Node, sel SlotSelector[T], v T) message.Message {
	return message.Message{
		Kind: message.KindBakeProperty,
		Apply: func(idx property.BufferIndex) {
			if n.destroyed {
				return
			}
			sel(n).Bake(idx, v)
		},
	}
}

// BakeRelativeMessage bakes combine(current, delta) into the selected slot.
func BakeRelativeMessage[T any](n *Node, sel SlotSelector[T], delta T, combine func(current, delta T) T) message.Message {
	return message.Message{
		Kind: message.KindBakeProperty,
		Apply: func(idx property.BufferIndex) {
			if n.destroyed {
				return
			}
			sel(n).BakeRelative(idx, delta, combine)
		},
	}
}

// BakeWithMessage bakes fn(current) into the selected slot. Component
// setters use it to change one field of a vector.
func BakeWithMessage[T any](n *Node, sel SlotSelector[T], fn func(current T) T) message.Message {
	return message.Message{
		Kind: message.KindBakeProperty,
		Apply: func(idx property.BufferIndex) {
			if n.destroyed {
				return
			}
			sel(n).BakeWith(idx, fn)
		},
	}
}

// Flags is the set of non-animatable node fields a flag message can change.
type Flags struct {
	ParentOrigin        mgl32.Vec3
	AnchorPoint         mgl32.Vec3
	InheritRotation     bool
	InheritScale        bool
	PositionInheritance PositionInheritance
	ColorMode           ColorMode
	DrawMode            DrawMode
	SizeMode            SizeMode
	SizeModeFactor      mgl32.Vec3
	Name                string
}

// Flags returns the current non-animatable fields of n.
func (n *Node) Flags() Flags {
	return Flags{
		ParentOrigin:        n.parentOrigin,
		AnchorPoint:         n.anchorPoint,
		InheritRotation:     n.inheritRotation,
		InheritScale:        n.inheritScale,
		PositionInheritance: n.positionInheritance,
		ColorMode:           n.colorMode,
		DrawMode:            n.drawMode,
		SizeMode:            n.sizeMode,
		SizeModeFactor:      n.sizeModeFactor,
		Name:                n.name,
	}
}

func (n *Node) setFlags(f Flags) {
	n.parentOrigin = f.ParentOrigin
	n.anchorPoint = f.AnchorPoint
	n.inheritRotation = f.InheritRotation
	n.inheritScale = f.InheritScale
	n.positionInheritance = f.PositionInheritance
	n.colorMode = f.ColorMode
	n.drawMode = f.DrawMode
	n.sizeMode = f.SizeMode
	n.sizeModeFactor = f.SizeModeFactor
	n.name = f.Name
}

// SetFlagMessage applies fn to a copy of the node's flags and stores the
// result. fn runs on the update goroutine.
func SetFlagMessage(g *Graph, n *Node, fn func(f *Flags)) message.Message {
	return message.Message{
		Kind: message.KindSetFlag,
		Apply: func(property.BufferIndex) {
			if n.destroyed {
				return
			}
			f := n.Flags()
			fn(&f)
			n.setFlags(f)
			g.markChanged()
		},
	}
}
