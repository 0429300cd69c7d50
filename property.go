package scene

import "fmt"

// PropertyIndex identifies a default actor property.
type PropertyIndex int

const (
	PropertyParentOrigin PropertyIndex = iota
	PropertyParentOriginX
	PropertyParentOriginY
	PropertyParentOriginZ
	PropertyAnchorPoint
	PropertyAnchorPointX
	PropertyAnchorPointY
	PropertyAnchorPointZ
	PropertySize
	PropertySizeWidth
	PropertySizeHeight
	PropertySizeDepth
	PropertyPosition
	PropertyPositionX
	PropertyPositionY
	PropertyPositionZ
	PropertyWorldPosition
	PropertyWorldPositionX
	PropertyWorldPositionY
	PropertyWorldPositionZ
	PropertyOrientation
	PropertyWorldOrientation
	PropertyScale
	PropertyScaleX
	PropertyScaleY
	PropertyScaleZ
	PropertyWorldScale
	PropertyVisible
	PropertyColor
	PropertyColorRed
	PropertyColorGreen
	PropertyColorBlue
	PropertyColorAlpha
	PropertyWorldColor
	PropertyWorldMatrix
	PropertyName
	PropertySensitive
	PropertyLeaveRequired
	PropertyInheritRotation
	PropertyInheritScale
	PropertyColorMode
	PropertyPositionInheritance
	PropertyDrawMode
	PropertySizeMode
	PropertySizeModeFactor

	propertyCount
)

// PropertyCount is the number of default actor properties.
const PropertyCount = int(propertyCount)

// PropertyType is the value type of a property.
type PropertyType uint8

const (
	PropertyBoolean  PropertyType = iota // bool
	PropertyFloat                        // float32
	PropertyVector3                      // mgl32.Vec3
	PropertyVector4                      // mgl32.Vec4
	PropertyRotation                     // mgl32.Quat
	PropertyMatrix                       // mgl32.Mat4
	PropertyString                       // string
)

var propertyTypeNames = [...]string{
	PropertyBoolean:  "BOOLEAN",
	PropertyFloat:    "FLOAT",
	PropertyVector3:  "VECTOR3",
	PropertyVector4:  "VECTOR4",
	PropertyRotation: "ROTATION",
	PropertyMatrix:   "MATRIX",
	PropertyString:   "STRING",
}

func (t PropertyType) String() string {
	if int(t) < len(propertyTypeNames) {
		return propertyTypeNames[t]
	}
	return fmt.Sprintf("PropertyType(%d)", t)
}

func (i PropertyIndex) valid() bool {
	return i >= 0 && i < propertyCount
}

// String returns the property name, e.g. "position-x".
func (i PropertyIndex) String() string {
	if !i.valid() {
		return fmt.Sprintf("PropertyIndex(%d)", int(i))
	}
	return propertyTable[i].name
}
