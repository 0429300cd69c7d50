package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/grindlemire/go-scene/internal/property"
)

// world is the evaluated world state of one node, passed down to its
// children during the update pass.
type world struct {
	position    mgl32.Vec3
	orientation mgl32.Quat
	scale       mgl32.Vec3
	color       mgl32.Vec4
	visible     bool
	size        mgl32.Vec3
}

var half = mgl32.Vec3{0.5, 0.5, 0.5}

func mulVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func mulVec4(a, b mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

// composeMatrix returns T * R * S.
func composeMatrix(position mgl32.Vec3, orientation mgl32.Quat, scale mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(position[0], position[1], position[2])
	s := mgl32.Scale3D(scale[0], scale[1], scale[2])
	return t.Mul4(orientation.Mat4()).Mul4(s)
}

// localWorld is the world state of a node with no parent: its local values.
func localWorld(n *Node, idx property.BufferIndex) world {
	return world{
		position:    n.Position.Read(idx),
		orientation: n.Orientation.Read(idx),
		scale:       n.Scale.Read(idx),
		color:       n.Color.Read(idx),
		visible:     n.Visible.Read(idx),
		size:        n.Size.Read(idx),
	}
}

// deriveWorld computes the world state of n from its parent's world state.
func deriveWorld(parent world, n *Node, idx property.BufferIndex) world {
	local := localWorld(n, idx)
	w := world{}

	if n.inheritScale {
		w.scale = mulVec3(parent.scale, local.scale)
	} else {
		w.scale = local.scale
	}

	if n.inheritRotation {
		w.orientation = parent.orientation.Mul(local.orientation)
	} else {
		w.orientation = local.orientation
	}

	switch n.sizeMode {
	case SizeEqualToParent:
		w.size = parent.size
	case SizeRelativeToParent:
		w.size = mulVec3(parent.size, n.sizeModeFactor)
	case SizeFixedOffsetFromParent:
		w.size = parent.size.Add(n.sizeModeFactor)
	default:
		w.size = local.size
	}

	anchorOffset := w.orientation.Rotate(mulVec3(mulVec3(half.Sub(n.anchorPoint), w.size), w.scale))

	switch n.positionInheritance {
	case UseParentPosition:
		w.position = parent.position.Add(anchorOffset)
	case UseParentPositionPlusLocalPosition:
		w.position = parent.position.Add(local.position).Add(anchorOffset)
	case DontInheritPosition:
		w.position = local.position.Add(anchorOffset)
	default:
		originOffset := mulVec3(n.parentOrigin.Sub(half), parent.size)
		rel := mulVec3(local.position.Add(originOffset), parent.scale)
		w.position = parent.position.Add(parent.orientation.Rotate(rel)).Add(anchorOffset)
	}

	switch n.colorMode {
	case UseOwnColor:
		w.color = local.color
	case UseParentColor:
		w.color = parent.color
	case UseOwnMultiplyParentAlpha:
		w.color = local.color
		w.color[3] *= parent.color[3]
	default:
		w.color = mulVec4(local.color, parent.color)
	}

	w.visible = local.visible && parent.visible
	return w
}

func (n *Node) writeWorld(w world, idx property.BufferIndex) {
	n.worldPosition.Write(idx, w.position)
	n.worldOrientation.Write(idx, w.orientation)
	n.worldScale.Write(idx, w.scale)
	n.worldColor.Write(idx, w.color)
	n.worldVisible.Write(idx, w.visible)
	n.effectiveSize.Write(idx, w.size)
	n.worldMatrix.Write(idx, composeMatrix(w.position, w.orientation, w.scale))
}
