package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/grindlemire/go-scene/internal/property"
	"github.com/grindlemire/go-scene/internal/scenegraph"
)

// Setters store the new target and, while on stage, send a bake to the
// scene node. Plain getters return targets; Current* getters return the
// value committed by the last completed tick, or the default when the actor
// is off stage.

func bake[T any](a *Actor, sel scenegraph.SlotSelector[T], v T) {
	a.checkAlive("property write")
	if a.node != nil {
		a.stage.enqueue(scenegraph.BakeMessage(a.node, sel, v))
	}
}

func bakeWith[T any](a *Actor, sel scenegraph.SlotSelector[T], fn func(T) T) {
	a.checkAlive("property write")
	if a.node != nil {
		a.stage.enqueue(scenegraph.BakeWithMessage(a.node, sel, fn))
	}
}

func bakeRelative[T any](a *Actor, sel scenegraph.SlotSelector[T], delta T, combine func(current, delta T) T) {
	a.checkAlive("property write")
	if a.node != nil {
		a.stage.enqueue(scenegraph.BakeRelativeMessage(a.node, sel, delta, combine))
	}
}

// current reads from the event buffer of a's node.
func current[T any](a *Actor, read func(n *scenegraph.Node, idx property.BufferIndex) T, def T) T {
	n := a.node
	if n == nil {
		return def
	}
	v := def
	a.stage.buffers.Read(func(idx property.BufferIndex) {
		v = read(n, idx)
	})
	return v
}

func setComponent3(i int, f float32) func(mgl32.Vec3) mgl32.Vec3 {
	return func(v mgl32.Vec3) mgl32.Vec3 {
		v[i] = f
		return v
	}
}

func setComponent4(i int, f float32) func(mgl32.Vec4) mgl32.Vec4 {
	return func(v mgl32.Vec4) mgl32.Vec4 {
		v[i] = f
		return v
	}
}

func addVec3(a, b mgl32.Vec3) mgl32.Vec3 { return a.Add(b) }
func addVec4(a, b mgl32.Vec4) mgl32.Vec4 { return a.Add(b) }
func mulQuat(a, b mgl32.Quat) mgl32.Quat { return a.Mul(b) }

func mulVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func axisAngle(angle float32, axis mgl32.Vec3) mgl32.Quat {
	if axis.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(angle, axis.Normalize())
}

// Position

// SetPosition sets the position relative to the parent origin.
func (a *Actor) SetPosition(v mgl32.Vec3) {
	a.position = v
	bake(a, scenegraph.PositionSlot, v)
}

// SetX sets the x component of the position.
func (a *Actor) SetX(x float32) { a.setPositionComponent(0, x) }

// SetY sets the y component of the position.
func (a *Actor) SetY(y float32) { a.setPositionComponent(1, y) }

// SetZ sets the z component of the position.
func (a *Actor) SetZ(z float32) { a.setPositionComponent(2, z) }

func (a *Actor) setPositionComponent(i int, f float32) {
	a.position[i] = f
	bakeWith(a, scenegraph.PositionSlot, setComponent3(i, f))
}

// MoveBy offsets the position by delta.
func (a *Actor) MoveBy(delta mgl32.Vec3) {
	a.position = a.position.Add(delta)
	bakeRelative(a, scenegraph.PositionSlot, delta, addVec3)
}

// Position returns the target position.
func (a *Actor) Position() mgl32.Vec3 {
	return a.position
}

// CurrentPosition returns the position as of the last completed tick.
func (a *Actor) CurrentPosition() mgl32.Vec3 {
	return current(a, func(n *scenegraph.Node, idx property.BufferIndex) mgl32.Vec3 {
		return n.Position.Read(idx)
	}, mgl32.Vec3{})
}

// WorldPosition returns the derived world position as of the last completed
// tick.
func (a *Actor) WorldPosition() mgl32.Vec3 {
	return current(a, (*scenegraph.Node).WorldPosition, mgl32.Vec3{})
}

// Scale

// SetScale sets the scale relative to the parent.
func (a *Actor) SetScale(v mgl32.Vec3) {
	a.scale = v
	bake(a, scenegraph.ScaleSlot, v)
}

// SetScaleX sets the x component of the scale.
func (a *Actor) SetScaleX(x float32) { a.setScaleComponent(0, x) }

// SetScaleY sets the y component of the scale.
func (a *Actor) SetScaleY(y float32) { a.setScaleComponent(1, y) }

// SetScaleZ sets the z component of the scale.
func (a *Actor) SetScaleZ(z float32) { a.setScaleComponent(2, z) }

func (a *Actor) setScaleComponent(i int, f float32) {
	a.scale[i] = f
	bakeWith(a, scenegraph.ScaleSlot, setComponent3(i, f))
}

// ScaleBy multiplies the scale component-wise by factor.
func (a *Actor) ScaleBy(factor mgl32.Vec3) {
	a.scale = mulVec3(a.scale, factor)
	bakeRelative(a, scenegraph.ScaleSlot, factor, mulVec3)
}

// Scale returns the target scale.
func (a *Actor) Scale() mgl32.Vec3 {
	return a.scale
}

// CurrentScale returns the scale as of the last completed tick.
func (a *Actor) CurrentScale() mgl32.Vec3 {
	return current(a, func(n *scenegraph.Node, idx property.BufferIndex) mgl32.Vec3 {
		return n.Scale.Read(idx)
	}, mgl32.Vec3{1, 1, 1})
}

// WorldScale returns the derived world scale as of the last completed tick.
func (a *Actor) WorldScale() mgl32.Vec3 {
	return current(a, (*scenegraph.Node).WorldScale, mgl32.Vec3{1, 1, 1})
}

// Orientation

// SetOrientation sets the orientation as a rotation of angle radians about
// axis.
func (a *Actor) SetOrientation(angle float32, axis mgl32.Vec3) {
	a.SetOrientationQuat(axisAngle(angle, axis))
}

// SetOrientationQuat sets the orientation relative to the parent.
func (a *Actor) SetOrientationQuat(q mgl32.Quat) {
	a.orientation = q
	bake(a, scenegraph.OrientationSlot, q)
}

// RotateBy composes a rotation of angle radians about axis with the current
// orientation.
func (a *Actor) RotateBy(angle float32, axis mgl32.Vec3) {
	a.RotateByQuat(axisAngle(angle, axis))
}

// RotateByQuat composes q with the current orientation.
func (a *Actor) RotateByQuat(q mgl32.Quat) {
	a.orientation = a.orientation.Mul(q)
	bakeRelative(a, scenegraph.OrientationSlot, q, mulQuat)
}

// Orientation returns the target orientation.
func (a *Actor) Orientation() mgl32.Quat {
	return a.orientation
}

// CurrentOrientation returns the orientation as of the last completed tick.
func (a *Actor) CurrentOrientation() mgl32.Quat {
	return current(a, func(n *scenegraph.Node, idx property.BufferIndex) mgl32.Quat {
		return n.Orientation.Read(idx)
	}, mgl32.QuatIdent())
}

// WorldOrientation returns the derived world orientation as of the last
// completed tick.
func (a *Actor) WorldOrientation() mgl32.Quat {
	return current(a, (*scenegraph.Node).WorldOrientation, mgl32.QuatIdent())
}

// WorldMatrix returns translation · rotation · scale of the world values.
func (a *Actor) WorldMatrix() mgl32.Mat4 {
	return current(a, (*scenegraph.Node).WorldMatrix, mgl32.Ident4())
}

// Color

// SetColor sets the color, combined with the parent color per the color mode.
func (a *Actor) SetColor(c mgl32.Vec4) {
	a.color = c
	bake(a, scenegraph.ColorSlot, c)
}

// SetColorRed sets the red component of the color.
func (a *Actor) SetColorRed(r float32) { a.setColorComponent(0, r) }

// SetColorGreen sets the green component of the color.
func (a *Actor) SetColorGreen(g float32) { a.setColorComponent(1, g) }

// SetColorBlue sets the blue component of the color.
func (a *Actor) SetColorBlue(b float32) { a.setColorComponent(2, b) }

// SetOpacity sets the alpha component of the color. It is not clamped.
func (a *Actor) SetOpacity(alpha float32) { a.setColorComponent(3, alpha) }

func (a *Actor) setColorComponent(i int, f float32) {
	a.color[i] = f
	bakeWith(a, scenegraph.ColorSlot, setComponent4(i, f))
}

// ColorBy adds delta to the color.
func (a *Actor) ColorBy(delta mgl32.Vec4) {
	a.color = a.color.Add(delta)
	bakeRelative(a, scenegraph.ColorSlot, delta, addVec4)
}

// OpacityBy adds delta to the alpha component.
func (a *Actor) OpacityBy(delta float32) {
	a.ColorBy(mgl32.Vec4{0, 0, 0, delta})
}

// Color returns the target color.
func (a *Actor) Color() mgl32.Vec4 {
	return a.color
}

// Opacity returns the alpha component of the target color.
func (a *Actor) Opacity() float32 {
	return a.color[3]
}

// CurrentColor returns the color as of the last completed tick.
func (a *Actor) CurrentColor() mgl32.Vec4 {
	return current(a, func(n *scenegraph.Node, idx property.BufferIndex) mgl32.Vec4 {
		return n.Color.Read(idx)
	}, mgl32.Vec4{1, 1, 1, 1})
}

// CurrentOpacity returns the alpha as of the last completed tick.
func (a *Actor) CurrentOpacity() float32 {
	return a.CurrentColor()[3]
}

// WorldColor returns the derived world color as of the last completed tick.
func (a *Actor) WorldColor() mgl32.Vec4 {
	return current(a, (*scenegraph.Node).WorldColor, mgl32.Vec4{1, 1, 1, 1})
}

// Size

// SetSize sets the actor size. The size mode decides how it is used.
func (a *Actor) SetSize(v mgl32.Vec3) {
	a.size = v
	bake(a, scenegraph.SizeSlot, v)
}

// SetWidth sets the x component of the size.
func (a *Actor) SetWidth(w float32) { a.setSizeComponent(0, w) }

// SetHeight sets the y component of the size.
func (a *Actor) SetHeight(h float32) { a.setSizeComponent(1, h) }

// SetDepth sets the z component of the size.
func (a *Actor) SetDepth(d float32) { a.setSizeComponent(2, d) }

func (a *Actor) setSizeComponent(i int, f float32) {
	a.size[i] = f
	bakeWith(a, scenegraph.SizeSlot, setComponent3(i, f))
}

// Size returns the target size.
func (a *Actor) Size() mgl32.Vec3 {
	return a.size
}

// CurrentSize returns the size as of the last completed tick.
func (a *Actor) CurrentSize() mgl32.Vec3 {
	return current(a, func(n *scenegraph.Node, idx property.BufferIndex) mgl32.Vec3 {
		return n.Size.Read(idx)
	}, mgl32.Vec3{})
}

// EffectiveSize returns the size after the size mode was applied.
func (a *Actor) EffectiveSize() mgl32.Vec3 {
	return current(a, (*scenegraph.Node).EffectiveSize, mgl32.Vec3{})
}

// Visibility

// SetVisible shows or hides the actor and its subtree.
func (a *Actor) SetVisible(visible bool) {
	a.visible = visible
	bake(a, scenegraph.VisibleSlot, visible)
}

// Visible returns the target visibility.
func (a *Actor) Visible() bool {
	return a.visible
}

// IsVisible returns the actor's own visibility as of the last completed
// tick.
func (a *Actor) IsVisible() bool {
	return current(a, func(n *scenegraph.Node, idx property.BufferIndex) bool {
		return n.Visible.Read(idx)
	}, true)
}

// WorldVisible reports whether the actor and all its ancestors were visible
// at the last completed tick.
func (a *Actor) WorldVisible() bool {
	return current(a, (*scenegraph.Node).WorldVisible, true)
}

// Non-animatable flags. These are cached on the actor and copied to the
// node by a flag message.

// SetParentOrigin sets the point of the parent, as a fraction of its size,
// that the position is relative to.
func (a *Actor) SetParentOrigin(v mgl32.Vec3) {
	a.parentOrigin = v
	a.sendFlags(func(f *scenegraph.Flags) { f.ParentOrigin = v })
}

// SetParentOriginX sets the x component of the parent origin.
func (a *Actor) SetParentOriginX(x float32) { a.setParentOriginComponent(0, x) }

// SetParentOriginY sets the y component of the parent origin.
func (a *Actor) SetParentOriginY(y float32) { a.setParentOriginComponent(1, y) }

// SetParentOriginZ sets the z component of the parent origin.
func (a *Actor) SetParentOriginZ(z float32) { a.setParentOriginComponent(2, z) }

func (a *Actor) setParentOriginComponent(i int, v float32) {
	a.parentOrigin[i] = v
	a.sendFlags(func(f *scenegraph.Flags) { f.ParentOrigin[i] = v })
}

// ParentOrigin returns the parent origin.
func (a *Actor) ParentOrigin() mgl32.Vec3 {
	return a.parentOrigin
}

// SetAnchorPoint sets the point of the actor, as a fraction of its size,
// that is placed at the position.
func (a *Actor) SetAnchorPoint(v mgl32.Vec3) {
	a.anchorPoint = v
	a.sendFlags(func(f *scenegraph.Flags) { f.AnchorPoint = v })
}

// SetAnchorPointX sets the x component of the anchor point.
func (a *Actor) SetAnchorPointX(x float32) { a.setAnchorPointComponent(0, x) }

// SetAnchorPointY sets the y component of the anchor point.
func (a *Actor) SetAnchorPointY(y float32) { a.setAnchorPointComponent(1, y) }

// SetAnchorPointZ sets the z component of the anchor point.
func (a *Actor) SetAnchorPointZ(z float32) { a.setAnchorPointComponent(2, z) }

func (a *Actor) setAnchorPointComponent(i int, v float32) {
	a.anchorPoint[i] = v
	a.sendFlags(func(f *scenegraph.Flags) { f.AnchorPoint[i] = v })
}

// AnchorPoint returns the anchor point.
func (a *Actor) AnchorPoint() mgl32.Vec3 {
	return a.anchorPoint
}

// SetInheritRotation sets whether the parent orientation is applied.
func (a *Actor) SetInheritRotation(inherit bool) {
	a.inheritRotation = inherit
	a.sendFlags(func(f *scenegraph.Flags) { f.InheritRotation = inherit })
}

// InheritRotation reports whether the parent orientation is applied.
func (a *Actor) InheritRotation() bool {
	return a.inheritRotation
}

// SetInheritScale sets whether the parent scale is applied.
func (a *Actor) SetInheritScale(inherit bool) {
	a.inheritScale = inherit
	a.sendFlags(func(f *scenegraph.Flags) { f.InheritScale = inherit })
}

// InheritScale reports whether the parent scale is applied.
func (a *Actor) InheritScale() bool {
	return a.inheritScale
}

// SetPositionInheritanceMode sets how the world position derives from the
// parent.
func (a *Actor) SetPositionInheritanceMode(mode PositionInheritance) {
	a.positionInheritance = mode
	a.sendFlags(func(f *scenegraph.Flags) { f.PositionInheritance = mode })
}

// PositionInheritanceMode returns the position inheritance mode.
func (a *Actor) PositionInheritanceMode() PositionInheritance {
	return a.positionInheritance
}

// SetColorMode sets how the world color derives from the parent color.
func (a *Actor) SetColorMode(mode ColorMode) {
	a.colorMode = mode
	a.sendFlags(func(f *scenegraph.Flags) { f.ColorMode = mode })
}

// ColorMode returns the color mode.
func (a *Actor) ColorMode() ColorMode {
	return a.colorMode
}

// SetDrawMode sets the draw mode passed to the renderer.
func (a *Actor) SetDrawMode(mode DrawMode) {
	a.drawMode = mode
	a.sendFlags(func(f *scenegraph.Flags) { f.DrawMode = mode })
}

// DrawMode returns the draw mode.
func (a *Actor) DrawMode() DrawMode {
	return a.drawMode
}

// SetSizeMode sets how the effective size derives from the parent size.
func (a *Actor) SetSizeMode(mode SizeMode) {
	a.sizeMode = mode
	a.sendFlags(func(f *scenegraph.Flags) { f.SizeMode = mode })
}

// SizeMode returns the size mode.
func (a *Actor) SizeMode() SizeMode {
	return a.sizeMode
}

// SetSizeModeFactor sets the factor used by SizeRelativeToParent and
// SizeFixedOffsetFromParent.
func (a *Actor) SetSizeModeFactor(v mgl32.Vec3) {
	a.sizeModeFactor = v
	a.sendFlags(func(f *scenegraph.Flags) { f.SizeModeFactor = v })
}

// SizeModeFactor returns the size mode factor.
func (a *Actor) SizeModeFactor() mgl32.Vec3 {
	return a.sizeModeFactor
}

// SetSensitive marks the actor as a target for input events. The flag is
// stored for input handling and does not reach the scene node.
func (a *Actor) SetSensitive(sensitive bool) {
	a.checkAlive("SetSensitive")
	a.sensitive = sensitive
}

// IsSensitive reports whether the actor receives input events.
func (a *Actor) IsSensitive() bool {
	return a.sensitive
}

// SetLeaveRequired sets whether the actor wants a leave event when a touch
// moves off it. Stored only.
func (a *Actor) SetLeaveRequired(required bool) {
	a.checkAlive("SetLeaveRequired")
	a.leaveRequired = required
}

// LeaveRequired reports whether the actor wants leave events.
func (a *Actor) LeaveRequired() bool {
	return a.leaveRequired
}
