package scenegraph

// PositionInheritance selects how a node's world position derives from its
// parent.
type PositionInheritance uint8

const (
	// InheritParentPosition places the node relative to the parent's world
	// transform, offset by parent origin and anchor point.
	InheritParentPosition PositionInheritance = iota
	// UseParentPosition ignores the node's own position.
	UseParentPosition
	// UseParentPositionPlusLocalPosition adds the local position to the
	// parent's world position without applying the parent's rotation or scale.
	UseParentPositionPlusLocalPosition
	// DontInheritPosition treats the local position as the world position.
	DontInheritPosition
)

// ColorMode selects how a node's world color derives from its parent.
type ColorMode uint8

const (
	UseOwnColor ColorMode = iota
	UseParentColor
	UseOwnMultiplyParentColor
	UseOwnMultiplyParentAlpha
)

// DrawMode is passed through to the graphics layer.
type DrawMode uint8

const (
	DrawNormal DrawMode = iota
	DrawOverlay
	DrawStencil
)

// SizeMode selects how a node's effective size derives from its parent.
type SizeMode uint8

const (
	UseOwnSize SizeMode = iota
	SizeEqualToParent
	SizeRelativeToParent
	SizeFixedOffsetFromParent
)

var positionInheritanceNames = [...]string{
	InheritParentPosition:              "INHERIT_PARENT_POSITION",
	UseParentPosition:                  "USE_PARENT_POSITION",
	UseParentPositionPlusLocalPosition: "USE_PARENT_POSITION_PLUS_LOCAL_POSITION",
	DontInheritPosition:                "DONT_INHERIT_POSITION",
}

var colorModeNames = [...]string{
	UseOwnColor:               "USE_OWN_COLOR",
	UseParentColor:            "USE_PARENT_COLOR",
	UseOwnMultiplyParentColor: "USE_OWN_MULTIPLY_PARENT_COLOR",
	UseOwnMultiplyParentAlpha: "USE_OWN_MULTIPLY_PARENT_ALPHA",
}

var drawModeNames = [...]string{
	DrawNormal:  "NORMAL",
	DrawOverlay: "OVERLAY",
	DrawStencil: "STENCIL",
}

var sizeModeNames = [...]string{
	UseOwnSize:                "USE_OWN_SIZE",
	SizeEqualToParent:         "SIZE_EQUAL_TO_PARENT",
	SizeRelativeToParent:      "SIZE_RELATIVE_TO_PARENT",
	SizeFixedOffsetFromParent: "SIZE_FIXED_OFFSET_FROM_PARENT",
}

func enumName[E ~uint8](names []string, v E) string {
	if int(v) < len(names) {
		return names[v]
	}
	return "UNKNOWN"
}

func enumParse[E ~uint8](names []string, s string) (E, bool) {
	for i, n := range names {
		if n == s {
			return E(i), true
		}
	}
	return 0, false
}

func (m PositionInheritance) String() string { return enumName(positionInheritanceNames[:], m) }
func (m ColorMode) String() string           { return enumName(colorModeNames[:], m) }
func (m DrawMode) String() string            { return enumName(drawModeNames[:], m) }
func (m SizeMode) String() string            { return enumName(sizeModeNames[:], m) }

// ParsePositionInheritance maps a name such as "USE_PARENT_POSITION" to its mode.
func ParsePositionInheritance(s string) (PositionInheritance, bool) {
	return enumParse[PositionInheritance](positionInheritanceNames[:], s)
}

// ParseColorMode maps a name such as "USE_OWN_COLOR" to its mode.
func ParseColorMode(s string) (ColorMode, bool) {
	return enumParse[ColorMode](colorModeNames[:], s)
}

// ParseDrawMode maps "NORMAL", "OVERLAY" or "STENCIL" to its mode.
func ParseDrawMode(s string) (DrawMode, bool) {
	return enumParse[DrawMode](drawModeNames[:], s)
}

// ParseSizeMode maps a name such as "SIZE_EQUAL_TO_PARENT" to its mode.
func ParseSizeMode(s string) (SizeMode, bool) {
	return enumParse[SizeMode](sizeModeNames[:], s)
}

// MarshalText writes the mode by name, which is how snapshots carry it.
func (m DrawMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *DrawMode) UnmarshalText(b []byte) error {
	v, ok := ParseDrawMode(string(b))
	if !ok {
		return &UnknownModeError{Kind: "draw mode", Name: string(b)}
	}
	*m = v
	return nil
}

// UnknownModeError reports an unrecognised mode name.
type UnknownModeError struct {
	Kind string
	Name string
}

func (e *UnknownModeError) Error() string {
	return "unknown " + e.Kind + " " + `"` + e.Name + `"`
}
