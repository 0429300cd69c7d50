package scenefile

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	scene "github.com/grindlemire/go-scene"
)

// convertValue turns a decoded YAML value into the Go type SetProperty
// expects for index.
func convertValue(index scene.PropertyIndex, raw any) (any, error) {
	switch typ := scene.PropertyTypeOf(index); typ {
	case scene.PropertyBoolean:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("want a boolean, got %T", raw)
		}
		return b, nil

	case scene.PropertyFloat:
		return toFloat(raw)

	case scene.PropertyVector3:
		v, err := toFloats(raw, 3)
		if err != nil {
			return nil, err
		}
		return mgl32.Vec3{v[0], v[1], v[2]}, nil

	case scene.PropertyVector4:
		v, err := toFloats(raw, 4)
		if err != nil {
			return nil, err
		}
		return mgl32.Vec4{v[0], v[1], v[2], v[3]}, nil

	case scene.PropertyRotation:
		// [angle in degrees, axis x, axis y, axis z]
		v, err := toFloats(raw, 4)
		if err != nil {
			return nil, err
		}
		return rotation(v[0], v[1:]), nil

	case scene.PropertyString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("want a string, got %T", raw)
		}
		if err := checkMode(index, s); err != nil {
			return nil, err
		}
		return s, nil

	default:
		return nil, fmt.Errorf("%s values cannot be set from a scene file", typ)
	}
}

func toFloat(raw any) (float32, error) {
	switch n := raw.(type) {
	case int:
		return float32(n), nil
	case float64:
		return float32(n), nil
	}
	return 0, fmt.Errorf("want a number, got %T", raw)
}

func toFloats(raw any, n int) ([]float32, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("want a list of %d numbers, got %T", n, raw)
	}
	if len(list) != n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, len(list))
	}
	out := make([]float32, n)
	for i, item := range list {
		f, err := toFloat(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

// checkMode rejects unknown enumeration names for the string-typed
// properties that hold a mode.
func checkMode(index scene.PropertyIndex, name string) error {
	var ok bool
	switch index {
	case scene.PropertyColorMode:
		_, ok = scene.ParseColorMode(name)
	case scene.PropertyDrawMode:
		_, ok = scene.ParseDrawMode(name)
	case scene.PropertySizeMode:
		_, ok = scene.ParseSizeMode(name)
	case scene.PropertyPositionInheritance:
		_, ok = scene.ParsePositionInheritance(name)
	default:
		return nil
	}
	if !ok {
		return fmt.Errorf("unknown %s %q", scene.PropertyNameOf(index), name)
	}
	return nil
}

func vec3(v []float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

func vec4(v []float32) mgl32.Vec4 {
	return mgl32.Vec4{v[0], v[1], v[2], v[3]}
}

func rotation(degrees float32, axis []float32) mgl32.Quat {
	a := vec3(axis)
	if a.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(mgl32.DegToRad(degrees), a.Normalize())
}
