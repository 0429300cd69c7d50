package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/grindlemire/go-scene/internal/scenegraph"
)

// PositionInheritance selects how an actor's world position derives from its
// parent.
type PositionInheritance = scenegraph.PositionInheritance

const (
	InheritParentPosition              = scenegraph.InheritParentPosition
	UseParentPosition                  = scenegraph.UseParentPosition
	UseParentPositionPlusLocalPosition = scenegraph.UseParentPositionPlusLocalPosition
	DontInheritPosition                = scenegraph.DontInheritPosition
)

// ColorMode selects how an actor's world color derives from its parent.
type ColorMode = scenegraph.ColorMode

const (
	UseOwnColor               = scenegraph.UseOwnColor
	UseParentColor            = scenegraph.UseParentColor
	UseOwnMultiplyParentColor = scenegraph.UseOwnMultiplyParentColor
	UseOwnMultiplyParentAlpha = scenegraph.UseOwnMultiplyParentAlpha
)

// DrawMode tells the graphics layer how to draw an actor.
type DrawMode = scenegraph.DrawMode

const (
	DrawNormal  = scenegraph.DrawNormal
	DrawOverlay = scenegraph.DrawOverlay
	DrawStencil = scenegraph.DrawStencil
)

// SizeMode selects how an actor's effective size derives from its parent.
type SizeMode = scenegraph.SizeMode

const (
	UseOwnSize                = scenegraph.UseOwnSize
	SizeEqualToParent         = scenegraph.SizeEqualToParent
	SizeRelativeToParent      = scenegraph.SizeRelativeToParent
	SizeFixedOffsetFromParent = scenegraph.SizeFixedOffsetFromParent
)

// NodeSnapshot is the per-node data handed to a Renderer.
type NodeSnapshot = scenegraph.NodeSnapshot

// Common parent origins and anchor points.
var (
	ParentOriginTopLeft = scenegraph.ParentOriginTopLeft
	ParentOriginCenter  = AnchorPointCenter
	AnchorPointTopLeft  = ParentOriginTopLeft
	AnchorPointCenter   = scenegraph.AnchorPointCenter
)

// DefaultSizeModeFactor is the size mode factor of a new actor.
var DefaultSizeModeFactor = mgl32.Vec3{1, 1, 1}

// ParsePositionInheritance parses an upper-case mode name such as
// "INHERIT_PARENT_POSITION". The same naming holds for the other Parse
// functions.
func ParsePositionInheritance(s string) (PositionInheritance, bool) {
	return scenegraph.ParsePositionInheritance(s)
}

func ParseColorMode(s string) (ColorMode, bool) {
	return scenegraph.ParseColorMode(s)
}

func ParseDrawMode(s string) (DrawMode, bool) {
	return scenegraph.ParseDrawMode(s)
}

func ParseSizeMode(s string) (SizeMode, bool) {
	return scenegraph.ParseSizeMode(s)
}
