package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/grindlemire/go-scene/internal/scenegraph"
)

type propertyDetails struct {
	name       string
	typ        PropertyType
	writable   bool
	animatable bool
	get        func(a *Actor) any
	set        func(a *Actor, v any) bool
}

func prop[T any](name string, typ PropertyType, animatable bool, get func(*Actor) T, set func(*Actor, T)) propertyDetails {
	d := propertyDetails{
		name:       name,
		typ:        typ,
		writable:   set != nil,
		animatable: animatable,
		get:        func(a *Actor) any { return get(a) },
	}
	if set != nil {
		d.set = func(a *Actor, v any) bool {
			t, ok := v.(T)
			if ok {
				set(a, t)
			}
			return ok
		}
	}
	return d
}

func component3(get func(*Actor) mgl32.Vec3, i int) func(*Actor) float32 {
	return func(a *Actor) float32 { return get(a)[i] }
}

func component4(get func(*Actor) mgl32.Vec4, i int) func(*Actor) float32 {
	return func(a *Actor) float32 { return get(a)[i] }
}

// enumProp binds a string-typed property to one of the mode enums.
// Unknown names leave the mode unchanged.
func enumProp[E fmt.Stringer](name string, get func(*Actor) E, parse func(string) (E, bool), set func(*Actor, E)) propertyDetails {
	return prop(name, PropertyString, false,
		func(a *Actor) string { return get(a).String() },
		func(a *Actor, s string) {
			e, ok := parse(s)
			if !ok {
				a.stage.log.Warning().
					Str("property", name).
					Str("value", s).
					Log("unknown enumeration name ignored")
				return
			}
			set(a, e)
		})
}

// Animatable properties read back the value committed by the last completed
// tick; the rest read the cached value.
var propertyTable = [propertyCount]propertyDetails{
	PropertyParentOrigin:  prop("parent-origin", PropertyVector3, false, (*Actor).ParentOrigin, (*Actor).SetParentOrigin),
	PropertyParentOriginX: prop("parent-origin-x", PropertyFloat, false, component3((*Actor).ParentOrigin, 0), (*Actor).SetParentOriginX),
	PropertyParentOriginY: prop("parent-origin-y", PropertyFloat, false, component3((*Actor).ParentOrigin, 1), (*Actor).SetParentOriginY),
	PropertyParentOriginZ: prop("parent-origin-z", PropertyFloat, false, component3((*Actor).ParentOrigin, 2), (*Actor).SetParentOriginZ),
	PropertyAnchorPoint:   prop("anchor-point", PropertyVector3, false, (*Actor).AnchorPoint, (*Actor).SetAnchorPoint),
	PropertyAnchorPointX:  prop("anchor-point-x", PropertyFloat, false, component3((*Actor).AnchorPoint, 0), (*Actor).SetAnchorPointX),
	PropertyAnchorPointY:  prop("anchor-point-y", PropertyFloat, false, component3((*Actor).AnchorPoint, 1), (*Actor).SetAnchorPointY),
	PropertyAnchorPointZ:  prop("anchor-point-z", PropertyFloat, false, component3((*Actor).AnchorPoint, 2), (*Actor).SetAnchorPointZ),

	PropertySize:       prop("size", PropertyVector3, true, (*Actor).CurrentSize, (*Actor).SetSize),
	PropertySizeWidth:  prop("size-width", PropertyFloat, true, component3((*Actor).CurrentSize, 0), (*Actor).SetWidth),
	PropertySizeHeight: prop("size-height", PropertyFloat, true, component3((*Actor).CurrentSize, 1), (*Actor).SetHeight),
	PropertySizeDepth:  prop("size-depth", PropertyFloat, true, component3((*Actor).CurrentSize, 2), (*Actor).SetDepth),

	PropertyPosition:       prop("position", PropertyVector3, true, (*Actor).CurrentPosition, (*Actor).SetPosition),
	PropertyPositionX:      prop("position-x", PropertyFloat, true, component3((*Actor).CurrentPosition, 0), (*Actor).SetX),
	PropertyPositionY:      prop("position-y", PropertyFloat, true, component3((*Actor).CurrentPosition, 1), (*Actor).SetY),
	PropertyPositionZ:      prop("position-z", PropertyFloat, true, component3((*Actor).CurrentPosition, 2), (*Actor).SetZ),
	PropertyWorldPosition:  prop[mgl32.Vec3]("world-position", PropertyVector3, false, (*Actor).WorldPosition, nil),
	PropertyWorldPositionX: prop[float32]("world-position-x", PropertyFloat, false, component3((*Actor).WorldPosition, 0), nil),
	PropertyWorldPositionY: prop[float32]("world-position-y", PropertyFloat, false, component3((*Actor).WorldPosition, 1), nil),
	PropertyWorldPositionZ: prop[float32]("world-position-z", PropertyFloat, false, component3((*Actor).WorldPosition, 2), nil),

	PropertyOrientation:      prop("orientation", PropertyRotation, true, (*Actor).CurrentOrientation, (*Actor).SetOrientationQuat),
	PropertyWorldOrientation: prop[mgl32.Quat]("world-orientation", PropertyRotation, false, (*Actor).WorldOrientation, nil),

	PropertyScale:      prop("scale", PropertyVector3, true, (*Actor).CurrentScale, (*Actor).SetScale),
	PropertyScaleX:     prop("scale-x", PropertyFloat, true, component3((*Actor).CurrentScale, 0), (*Actor).SetScaleX),
	PropertyScaleY:     prop("scale-y", PropertyFloat, true, component3((*Actor).CurrentScale, 1), (*Actor).SetScaleY),
	PropertyScaleZ:     prop("scale-z", PropertyFloat, true, component3((*Actor).CurrentScale, 2), (*Actor).SetScaleZ),
	PropertyWorldScale: prop[mgl32.Vec3]("world-scale", PropertyVector3, false, (*Actor).WorldScale, nil),

	PropertyVisible: prop("visible", PropertyBoolean, true, (*Actor).IsVisible, (*Actor).SetVisible),

	PropertyColor:       prop("color", PropertyVector4, true, (*Actor).CurrentColor, (*Actor).SetColor),
	PropertyColorRed:    prop("color-red", PropertyFloat, true, component4((*Actor).CurrentColor, 0), (*Actor).SetColorRed),
	PropertyColorGreen:  prop("color-green", PropertyFloat, true, component4((*Actor).CurrentColor, 1), (*Actor).SetColorGreen),
	PropertyColorBlue:   prop("color-blue", PropertyFloat, true, component4((*Actor).CurrentColor, 2), (*Actor).SetColorBlue),
	PropertyColorAlpha:  prop("color-alpha", PropertyFloat, true, component4((*Actor).CurrentColor, 3), (*Actor).SetOpacity),
	PropertyWorldColor:  prop[mgl32.Vec4]("world-color", PropertyVector4, false, (*Actor).WorldColor, nil),
	PropertyWorldMatrix: prop[mgl32.Mat4]("world-matrix", PropertyMatrix, false, (*Actor).WorldMatrix, nil),

	PropertyName:            prop("name", PropertyString, false, (*Actor).Name, (*Actor).SetName),
	PropertySensitive:       prop("sensitive", PropertyBoolean, false, (*Actor).IsSensitive, (*Actor).SetSensitive),
	PropertyLeaveRequired:   prop("leave-required", PropertyBoolean, false, (*Actor).LeaveRequired, (*Actor).SetLeaveRequired),
	PropertyInheritRotation: prop("inherit-rotation", PropertyBoolean, false, (*Actor).InheritRotation, (*Actor).SetInheritRotation),
	PropertyInheritScale:    prop("inherit-scale", PropertyBoolean, false, (*Actor).InheritScale, (*Actor).SetInheritScale),

	PropertyColorMode:           enumProp("color-mode", (*Actor).ColorMode, scenegraph.ParseColorMode, (*Actor).SetColorMode),
	PropertyPositionInheritance: enumProp("position-inheritance", (*Actor).PositionInheritanceMode, scenegraph.ParsePositionInheritance, (*Actor).SetPositionInheritanceMode),
	PropertyDrawMode:            enumProp("draw-mode", (*Actor).DrawMode, scenegraph.ParseDrawMode, (*Actor).SetDrawMode),
	PropertySizeMode:            enumProp("size-mode", (*Actor).SizeMode, scenegraph.ParseSizeMode, (*Actor).SetSizeMode),
	PropertySizeModeFactor:      prop("size-mode-factor", PropertyVector3, false, (*Actor).SizeModeFactor, (*Actor).SetSizeModeFactor),
}

var propertyIndexByName = func() map[string]PropertyIndex {
	m := make(map[string]PropertyIndex, propertyCount)
	for i := range propertyTable {
		m[propertyTable[i].name] = PropertyIndex(i)
	}
	return m
}()

// PropertyIndexByName returns the index of the named property.
func PropertyIndexByName(name string) (PropertyIndex, bool) {
	i, ok := propertyIndexByName[name]
	return i, ok
}

// PropertyNameOf returns the name of the property at index, or "" when index
// is out of range.
func PropertyNameOf(index PropertyIndex) string {
	if !index.valid() {
		return ""
	}
	return propertyTable[index].name
}

// PropertyTypeOf returns the value type of the property at index.
func PropertyTypeOf(index PropertyIndex) PropertyType {
	return details(index).typ
}

// IsPropertyWritable reports whether SetProperty accepts the property.
func IsPropertyWritable(index PropertyIndex) bool {
	return details(index).writable
}

// IsPropertyAnimatable reports whether the property lives in a
// double-buffered slot.
func IsPropertyAnimatable(index PropertyIndex) bool {
	return details(index).animatable
}

func details(index PropertyIndex) *propertyDetails {
	if !index.valid() {
		panic(fmt.Sprintf("scene: invalid property index %d", int(index)))
	}
	return &propertyTable[index]
}

// SetProperty sets the property at index. Float properties also accept
// float64 and int. Writing a read-only property or passing a value of the
// wrong type panics.
func (a *Actor) SetProperty(index PropertyIndex, v any) {
	a.checkAlive("SetProperty")
	d := details(index)
	if !d.writable {
		panic("scene: property " + d.name + " is read-only")
	}
	if d.typ == PropertyFloat {
		v = toFloat32(v)
	}
	if !d.set(a, v) {
		panic(fmt.Sprintf("scene: property %s expects %s, got %T", d.name, d.typ, v))
	}
}

// Property returns the value of the property at index.
func (a *Actor) Property(index PropertyIndex) any {
	return details(index).get(a)
}

func toFloat32(v any) any {
	switch f := v.(type) {
	case float64:
		return float32(f)
	case int:
		return float32(f)
	}
	return v
}

// Action names accepted by DoAction.
const (
	ActionShow = "show"
	ActionHide = "hide"
)

// DoAction performs a named action and reports whether the name was known.
func (a *Actor) DoAction(name string) bool {
	switch name {
	case ActionShow:
		a.SetVisible(true)
	case ActionHide:
		a.SetVisible(false)
	default:
		return false
	}
	return true
}
