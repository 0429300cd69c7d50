package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyTable_NamesRoundTrip(t *testing.T) {
	require.Equal(t, PropertyCount, len(propertyTable))
	for i := PropertyIndex(0); i < propertyCount; i++ {
		name := PropertyNameOf(i)
		require.NotEmpty(t, name, "property %d has no name", i)

		got, ok := PropertyIndexByName(name)
		require.True(t, ok, name)
		assert.Equal(t, i, got)
		assert.Equal(t, name, i.String())
	}

	_, ok := PropertyIndexByName("rotation")
	assert.False(t, ok)
	assert.Empty(t, PropertyNameOf(propertyCount))
}

func TestPropertyTable_Metadata(t *testing.T) {
	type tc struct {
		index      PropertyIndex
		typ        PropertyType
		writable   bool
		animatable bool
	}

	tests := map[string]tc{
		"position":       {index: PropertyPosition, typ: PropertyVector3, writable: true, animatable: true},
		"color-alpha":    {index: PropertyColorAlpha, typ: PropertyFloat, writable: true, animatable: true},
		"world-matrix":   {index: PropertyWorldMatrix, typ: PropertyMatrix},
		"orientation":    {index: PropertyOrientation, typ: PropertyRotation, writable: true, animatable: true},
		"parent-origin":  {index: PropertyParentOrigin, typ: PropertyVector3, writable: true},
		"draw-mode":      {index: PropertyDrawMode, typ: PropertyString, writable: true},
		"visible":        {index: PropertyVisible, typ: PropertyBoolean, writable: true, animatable: true},
		"world-position": {index: PropertyWorldPosition, typ: PropertyVector3},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, name, PropertyNameOf(tt.index))
			assert.Equal(t, tt.typ, PropertyTypeOf(tt.index))
			assert.Equal(t, tt.writable, IsPropertyWritable(tt.index))
			assert.Equal(t, tt.animatable, IsPropertyAnimatable(tt.index))
		})
	}
}

func TestActor_SetProperty(t *testing.T) {
	type tc struct {
		name  string
		value any
		want  any
	}

	tests := map[string]tc{
		"vector":            {name: "position", value: mgl32.Vec3{1, 2, 3}, want: mgl32.Vec3{1, 2, 3}},
		"float component":   {name: "position-y", value: float32(4), want: float32(4)},
		"float64 converted": {name: "scale-x", value: 2.5, want: float32(2.5)},
		"int converted":     {name: "size-width", value: 30, want: float32(30)},
		"color":             {name: "color", value: mgl32.Vec4{1, 0, 0, 1}, want: mgl32.Vec4{1, 0, 0, 1}},
		"alpha":             {name: "color-alpha", value: float32(0.25), want: float32(0.25)},
		"bool":              {name: "visible", value: false, want: false},
		"name":              {name: "name", value: "hero", want: "hero"},
		"flag":              {name: "inherit-scale", value: false, want: false},
		"enum":              {name: "color-mode", value: "USE_PARENT_COLOR", want: "USE_PARENT_COLOR"},
		"size mode":         {name: "size-mode", value: "SIZE_EQUAL_TO_PARENT", want: "SIZE_EQUAL_TO_PARENT"},
		"unknown enum name": {name: "draw-mode", value: "SIDEWAYS", want: "NORMAL"},
		"anchor component":  {name: "anchor-point-x", value: float32(0), want: float32(0)},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, a := onStage(t)
			index, ok := PropertyIndexByName(tt.name)
			require.True(t, ok)

			a.SetProperty(index, tt.value)
			s.Step()

			assert.Equal(t, tt.want, a.Property(index))
		})
	}
}

func TestActor_PropertyReadsCommittedValue(t *testing.T) {
	s, a := onStage(t)

	a.SetProperty(PropertyPositionX, float32(9))
	assert.Equal(t, float32(0), a.Property(PropertyPositionX))
	assert.Equal(t, float32(9), a.Position()[0])

	s.Step()
	assert.Equal(t, float32(9), a.Property(PropertyPositionX))
	assert.Equal(t, float32(-391), a.Property(PropertyWorldPositionX))
}

func TestActor_SetPropertyPanics(t *testing.T) {
	type tc struct {
		index PropertyIndex
		value any
		want  string
	}

	tests := map[string]tc{
		"read-only": {
			index: PropertyWorldPosition,
			value: mgl32.Vec3{},
			want:  "scene: property world-position is read-only",
		},
		"type mismatch": {
			index: PropertyPosition,
			value: "left",
			want:  "scene: property position expects VECTOR3, got string",
		},
		"float mismatch": {
			index: PropertyColorRed,
			value: true,
			want:  "scene: property color-red expects FLOAT, got bool",
		},
		"invalid index": {
			index: PropertyIndex(-1),
			value: 1,
			want:  "scene: invalid property index -1",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, a := onStage(t)
			assert.PanicsWithValue(t, tt.want, func() { a.SetProperty(tt.index, tt.value) })
		})
	}
}

func TestPropertyType_String(t *testing.T) {
	assert.Equal(t, "ROTATION", PropertyRotation.String())
	assert.Equal(t, "PropertyType(42)", PropertyType(42).String())
	assert.Equal(t, "PropertyIndex(-3)", PropertyIndex(-3).String())
}
