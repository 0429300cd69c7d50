// Package scenefile loads scene descriptions from YAML and plays them
// against a stage: the actor tree to build and a script of per-frame
// changes.
package scenefile

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	scene "github.com/grindlemire/go-scene"
)

// File is a parsed scene description.
type File struct {
	// Name identifies the scene in output and golden files.
	Name string `yaml:"name"`

	Stage  StageConfig `yaml:"stage,omitempty"`
	Actors []Actor     `yaml:"actors"`
	Steps  []Step      `yaml:"steps,omitempty"`
}

// StageConfig holds stage options. Zero values keep the stage defaults.
type StageConfig struct {
	Width  float32 `yaml:"width,omitempty"`
	Height float32 `yaml:"height,omitempty"`
	FPS    int     `yaml:"fps,omitempty"`
}

// Rotation is an angle in degrees about an axis.
type Rotation struct {
	Angle float32   `yaml:"angle"`
	Axis  []float32 `yaml:"axis"`
}

// Actor describes one actor and its subtree. Unset fields keep the actor
// defaults.
type Actor struct {
	Name                string    `yaml:"name"`
	Position            []float32 `yaml:"position,omitempty"`
	Scale               []float32 `yaml:"scale,omitempty"`
	Size                []float32 `yaml:"size,omitempty"`
	Color               []float32 `yaml:"color,omitempty"`
	Orientation         *Rotation `yaml:"orientation,omitempty"`
	Visible             *bool     `yaml:"visible,omitempty"`
	ParentOrigin        []float32 `yaml:"parentOrigin,omitempty"`
	AnchorPoint         []float32 `yaml:"anchorPoint,omitempty"`
	ColorMode           string    `yaml:"colorMode,omitempty"`
	DrawMode            string    `yaml:"drawMode,omitempty"`
	SizeMode            string    `yaml:"sizeMode,omitempty"`
	SizeModeFactor      []float32 `yaml:"sizeModeFactor,omitempty"`
	PositionInheritance string    `yaml:"positionInheritance,omitempty"`

	// Properties sets any writable property by name, e.g. "color-alpha".
	Properties map[string]any `yaml:"properties,omitempty"`

	Children []Actor `yaml:"children,omitempty"`
}

// Step is a scripted change applied before the tick of Frame.
// Exactly one change field must be set.
type Step struct {
	Frame uint64 `yaml:"frame"`
	Actor string `yaml:"actor"`

	Set       map[string]any `yaml:"set,omitempty"`
	Action    string         `yaml:"action,omitempty"`
	MoveBy    []float32      `yaml:"moveBy,omitempty"`
	ScaleBy   []float32      `yaml:"scaleBy,omitempty"`
	ColorBy   []float32      `yaml:"colorBy,omitempty"`
	OpacityBy *float32       `yaml:"opacityBy,omitempty"`
	RotateBy  *Rotation      `yaml:"rotateBy,omitempty"`
	Remove    bool           `yaml:"remove,omitempty"`
	AddTo     string         `yaml:"addTo,omitempty"`
	Destroy   bool           `yaml:"destroy,omitempty"`
}

// Load reads and parses a scene file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scene description. Unknown fields are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	return &f, nil
}

// StageOptions returns the stage options the file asks for.
func (f *File) StageOptions() []scene.StageOption {
	var opts []scene.StageOption
	if f.Stage.Width > 0 || f.Stage.Height > 0 {
		size := scene.DefaultStageSize
		if f.Stage.Width > 0 {
			size[0] = f.Stage.Width
		}
		if f.Stage.Height > 0 {
			size[1] = f.Stage.Height
		}
		opts = append(opts, scene.WithStageSize(size[0], size[1]))
	}
	if f.Stage.FPS > 0 {
		opts = append(opts, scene.WithFrameRate(f.Stage.FPS))
	}
	return opts
}

// LastFrame returns the frame of the last scripted step, or 0.
func (f *File) LastFrame() uint64 {
	var last uint64
	for _, st := range f.Steps {
		last = max(last, st.Frame)
	}
	return last
}

var errNoChange = errors.New("step has no change")

// Validate checks names, vector lengths, property names and mode names.
func (f *File) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("name is required")
	}
	if f.Stage.Width < 0 || f.Stage.Height < 0 {
		return fmt.Errorf("stage size must not be negative")
	}
	if f.Stage.FPS < 0 {
		return fmt.Errorf("stage fps must not be negative")
	}

	names := map[string]bool{"root": true}
	var walk func(path string, actors []Actor) error
	walk = func(path string, actors []Actor) error {
		for i := range actors {
			a := &actors[i]
			where := fmt.Sprintf("%s[%d]", path, i)
			if a.Name == "" {
				return fmt.Errorf("%s: name is required", where)
			}
			if names[a.Name] {
				return fmt.Errorf("%s: duplicate actor name %q", where, a.Name)
			}
			names[a.Name] = true
			if err := a.validate(); err != nil {
				return fmt.Errorf("%s (%s): %w", where, a.Name, err)
			}
			if err := walk(where+".children", a.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk("actors", f.Actors); err != nil {
		return err
	}

	for i, st := range f.Steps {
		if err := st.validate(names); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}

func (a *Actor) validate() error {
	vectors := []struct {
		name string
		v    []float32
		n    int
	}{
		{"position", a.Position, 3},
		{"scale", a.Scale, 3},
		{"size", a.Size, 3},
		{"color", a.Color, 4},
		{"parentOrigin", a.ParentOrigin, 3},
		{"anchorPoint", a.AnchorPoint, 3},
		{"sizeModeFactor", a.SizeModeFactor, 3},
	}
	for _, v := range vectors {
		if err := checkLen(v.name, v.v, v.n); err != nil {
			return err
		}
	}
	if a.Orientation != nil {
		if err := checkLen("orientation.axis", a.Orientation.Axis, 3); err != nil {
			return err
		}
	}

	modes := []struct {
		index scene.PropertyIndex
		value string
	}{
		{scene.PropertyColorMode, a.ColorMode},
		{scene.PropertyDrawMode, a.DrawMode},
		{scene.PropertySizeMode, a.SizeMode},
		{scene.PropertyPositionInheritance, a.PositionInheritance},
	}
	for _, m := range modes {
		if m.value == "" {
			continue
		}
		if err := checkMode(m.index, m.value); err != nil {
			return err
		}
	}

	return checkProperties(a.Properties)
}

func (st *Step) validate(names map[string]bool) error {
	if st.Frame == 0 {
		return fmt.Errorf("frame must be at least 1")
	}
	if !names[st.Actor] {
		return fmt.Errorf("unknown actor %q", st.Actor)
	}

	changes := 0
	count := func(set bool) {
		if set {
			changes++
		}
	}
	count(len(st.Set) > 0)
	count(st.Action != "")
	count(st.MoveBy != nil)
	count(st.ScaleBy != nil)
	count(st.ColorBy != nil)
	count(st.OpacityBy != nil)
	count(st.RotateBy != nil)
	count(st.Remove)
	count(st.AddTo != "")
	count(st.Destroy)
	switch {
	case changes == 0:
		return errNoChange
	case changes > 1:
		return fmt.Errorf("step has %d changes, want one", changes)
	}

	if st.Actor == "root" && (st.Remove || st.Destroy || st.AddTo != "") {
		return fmt.Errorf("the root actor cannot be moved or destroyed")
	}
	if st.AddTo != "" && !names[st.AddTo] {
		return fmt.Errorf("unknown parent %q", st.AddTo)
	}
	if st.Action != "" && st.Action != scene.ActionShow && st.Action != scene.ActionHide {
		return fmt.Errorf("unknown action %q", st.Action)
	}
	if err := checkLen("moveBy", st.MoveBy, 3); err != nil {
		return err
	}
	if err := checkLen("scaleBy", st.ScaleBy, 3); err != nil {
		return err
	}
	if err := checkLen("colorBy", st.ColorBy, 4); err != nil {
		return err
	}
	if st.RotateBy != nil {
		if err := checkLen("rotateBy.axis", st.RotateBy.Axis, 3); err != nil {
			return err
		}
	}
	return checkProperties(st.Set)
}

func checkLen(name string, v []float32, n int) error {
	if v != nil && len(v) != n {
		return fmt.Errorf("%s needs %d components, got %d", name, n, len(v))
	}
	return nil
}

func checkProperties(props map[string]any) error {
	for name, raw := range props {
		index, ok := scene.PropertyIndexByName(name)
		if !ok {
			return fmt.Errorf("unknown property %q", name)
		}
		if !scene.IsPropertyWritable(index) {
			return fmt.Errorf("property %q is read-only", name)
		}
		if _, err := convertValue(index, raw); err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
	}
	return nil
}
