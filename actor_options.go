package scene

import "github.com/go-gl/mathgl/mgl32"

// Option configures an Actor at creation, before it can be on stage.
type Option func(*Actor)

// WithName sets the actor name used by FindChildByName.
func WithName(name string) Option {
	return func(a *Actor) {
		a.name = name
	}
}

// WithPosition sets the initial position.
func WithPosition(x, y, z float32) Option {
	return func(a *Actor) {
		a.position = mgl32.Vec3{x, y, z}
	}
}

// WithSize sets the initial size.
func WithSize(width, height, depth float32) Option {
	return func(a *Actor) {
		a.size = mgl32.Vec3{width, height, depth}
	}
}

// WithScale sets the initial scale.
func WithScale(x, y, z float32) Option {
	return func(a *Actor) {
		a.scale = mgl32.Vec3{x, y, z}
	}
}

// WithOrientation sets the initial orientation to angle radians about axis.
func WithOrientation(angle float32, axis mgl32.Vec3) Option {
	return func(a *Actor) {
		a.orientation = axisAngle(angle, axis)
	}
}

// WithColor sets the initial color.
func WithColor(r, g, b, alpha float32) Option {
	return func(a *Actor) {
		a.color = mgl32.Vec4{r, g, b, alpha}
	}
}

// WithVisible sets the initial visibility.
func WithVisible(visible bool) Option {
	return func(a *Actor) {
		a.visible = visible
	}
}

// WithParentOrigin sets the point of the parent the position is relative to.
func WithParentOrigin(v mgl32.Vec3) Option {
	return func(a *Actor) {
		a.parentOrigin = v
	}
}

// WithAnchorPoint sets the point of the actor placed at its position.
func WithAnchorPoint(v mgl32.Vec3) Option {
	return func(a *Actor) {
		a.anchorPoint = v
	}
}

// WithColorMode sets how the world color combines with the parent's.
func WithColorMode(mode ColorMode) Option {
	return func(a *Actor) {
		a.colorMode = mode
	}
}

// WithDrawMode sets the draw mode passed to the renderer.
func WithDrawMode(mode DrawMode) Option {
	return func(a *Actor) {
		a.drawMode = mode
	}
}

// WithSizeMode sets the size mode and its factor.
func WithSizeMode(mode SizeMode, factor mgl32.Vec3) Option {
	return func(a *Actor) {
		a.sizeMode = mode
		a.sizeModeFactor = factor
	}
}

// WithPositionInheritance sets how the world position derives from the
// parent.
func WithPositionInheritance(mode PositionInheritance) Option {
	return func(a *Actor) {
		a.positionInheritance = mode
	}
}
