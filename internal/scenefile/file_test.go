package scenefile

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scene "github.com/grindlemire/go-scene"
)

func TestParse_Errors(t *testing.T) {
	type tc struct {
		yaml    string
		wantErr string
	}

	tests := map[string]tc{
		"missing name": {
			yaml:    "actors: []",
			wantErr: "name is required",
		},
		"unknown field": {
			yaml:    "name: x\nactorz: []",
			wantErr: "failed to parse YAML",
		},
		"actor without name": {
			yaml:    "name: x\nactors:\n  - position: [1, 2, 3]",
			wantErr: "actors[0]: name is required",
		},
		"duplicate actor": {
			yaml:    "name: x\nactors:\n  - name: a\n    children:\n      - name: a",
			wantErr: `duplicate actor name "a"`,
		},
		"root is reserved": {
			yaml:    "name: x\nactors:\n  - name: root",
			wantErr: `duplicate actor name "root"`,
		},
		"short vector": {
			yaml:    "name: x\nactors:\n  - name: a\n    color: [1, 1, 1]",
			wantErr: "color needs 4 components, got 3",
		},
		"unknown mode": {
			yaml:    "name: x\nactors:\n  - name: a\n    drawMode: SIDEWAYS",
			wantErr: `unknown draw-mode "SIDEWAYS"`,
		},
		"unknown property": {
			yaml:    "name: x\nactors:\n  - name: a\n    properties:\n      wobble: 1",
			wantErr: `unknown property "wobble"`,
		},
		"read-only property": {
			yaml:    "name: x\nactors:\n  - name: a\n    properties:\n      world-position: [1, 2, 3]",
			wantErr: `property "world-position" is read-only`,
		},
		"property type": {
			yaml:    "name: x\nactors:\n  - name: a\n    properties:\n      position-x: left",
			wantErr: "want a number, got string",
		},
		"step unknown actor": {
			yaml:    "name: x\nsteps:\n  - frame: 1\n    actor: ghost\n    action: hide",
			wantErr: `steps[0]: unknown actor "ghost"`,
		},
		"step without change": {
			yaml:    "name: x\nactors:\n  - name: a\nsteps:\n  - frame: 1\n    actor: a",
			wantErr: "step has no change",
		},
		"step with two changes": {
			yaml:    "name: x\nactors:\n  - name: a\nsteps:\n  - frame: 1\n    actor: a\n    action: hide\n    remove: true",
			wantErr: "step has 2 changes, want one",
		},
		"step frame zero": {
			yaml:    "name: x\nactors:\n  - name: a\nsteps:\n  - frame: 0\n    actor: a\n    action: hide",
			wantErr: "frame must be at least 1",
		},
		"step moves root": {
			yaml:    "name: x\nsteps:\n  - frame: 1\n    actor: root\n    remove: true",
			wantErr: "the root actor cannot be moved or destroyed",
		},
		"step unknown action": {
			yaml:    "name: x\nactors:\n  - name: a\nsteps:\n  - frame: 1\n    actor: a\n    action: dance",
			wantErr: `unknown action "dance"`,
		},
		"negative stage": {
			yaml:    "name: x\nstage:\n  width: -1",
			wantErr: "stage size must not be negative",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scene file")
}

func TestFile_StageOptions(t *testing.T) {
	f, err := Parse([]byte("name: x\nstage:\n  height: 100\n  fps: 30"))
	require.NoError(t, err)

	s, err := scene.NewStage(f.StageOptions()...)
	require.NoError(t, err)

	assert.Equal(t, mgl32.Vec3{800, 100, 0}, s.Size())
	assert.Equal(t, uint64(0), f.LastFrame())
	assert.InDelta(t, 33.333, s.MinimumFrameInterval().Seconds()*1000, 0.001)
}

func TestScene_Build(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "panel.yaml"))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), f.LastFrame())

	s, err := scene.NewStage(f.StageOptions()...)
	require.NoError(t, err)
	sc, err := f.Build(s)
	require.NoError(t, err)

	panel := sc.Actor("panel")
	require.NotNil(t, panel)
	assert.Same(t, s.Root(), panel.Parent())
	assert.Same(t, s.Root(), sc.Actor("root"))
	assert.Equal(t, 2, panel.ChildCount())

	button := sc.Actor("button")
	assert.Equal(t, mgl32.Vec3{10, 20, 0}, button.Position())
	assert.Equal(t, scene.DrawOverlay, button.DrawMode())

	label := sc.Actor("label")
	assert.Equal(t, scene.UseOwnColor, label.ColorMode())
	assert.Equal(t, scene.SizeRelativeToParent, label.SizeMode())
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 1}, label.SizeModeFactor())
	assert.False(t, sc.Done())
}

func TestScene_ApplyThrough(t *testing.T) {
	yaml := `
name: steps
actors:
  - name: a
  - name: b
steps:
  - frame: 3
    actor: a
    action: hide
  - frame: 1
    actor: a
    set:
      position: [1, 2, 3]
      name: renamed
  - frame: 2
    actor: b
    addTo: a
  - frame: 4
    actor: a
    addTo: b
`
	f, err := Parse([]byte(yaml))
	require.NoError(t, err)
	s, err := scene.NewStage()
	require.NoError(t, err)
	sc, err := f.Build(s)
	require.NoError(t, err)
	a, b := sc.Actor("a"), sc.Actor("b")

	require.NoError(t, sc.ApplyThrough(1))
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, a.Position())
	assert.Equal(t, "renamed", a.Name())
	assert.Same(t, s.Root(), b.Parent())

	require.NoError(t, sc.ApplyThrough(3))
	assert.Same(t, a, b.Parent())
	assert.False(t, a.Visible())

	err = sc.ApplyThrough(4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot add to its own descendant")
	assert.True(t, sc.Done())
}

func TestScene_StepOnDestroyedActor(t *testing.T) {
	yaml := `
name: destroy
actors:
  - name: a
steps:
  - frame: 1
    actor: a
    destroy: true
  - frame: 2
    actor: a
    moveBy: [1, 0, 0]
`
	f, err := Parse([]byte(yaml))
	require.NoError(t, err)
	p, err := NewPlayer(f)
	require.NoError(t, err)

	out, err := p.Step()
	require.NoError(t, err)
	assert.Len(t, out.Nodes, 1)

	_, err = p.Step()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "actor was destroyed")
}

func TestScene_OverlappingPropertiesApplyInIndexOrder(t *testing.T) {
	yaml := `
name: overlap
actors:
  - name: a
    properties:
      position-x: 5
      position: [1, 2, 3]
      color-alpha: 0.5
      color: [0, 0, 1, 1]
steps:
  - frame: 1
    actor: a
    set:
      size-height: 7
      size: [10, 20, 30]
`
	f, err := Parse([]byte(yaml))
	require.NoError(t, err)

	// map order varies between runs, so build several times
	for range 20 {
		s, err := scene.NewStage()
		require.NoError(t, err)
		sc, err := f.Build(s)
		require.NoError(t, err)
		require.NoError(t, sc.ApplyThrough(1))

		a := sc.Actor("a")
		assert.Equal(t, mgl32.Vec3{5, 2, 3}, a.Position())
		assert.Equal(t, mgl32.Vec4{0, 0, 1, 0.5}, a.Color())
		assert.Equal(t, mgl32.Vec3{10, 7, 30}, a.Size())
	}
}
