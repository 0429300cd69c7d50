package scenefile

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	scene "github.com/grindlemire/go-scene"
)

// Scene is a File built on a stage. Event goroutine only.
type Scene struct {
	file   *File
	stage  *scene.Stage
	actors map[string]*scene.Actor

	// next is the index of the first step not yet applied; steps are
	// kept sorted by frame.
	steps []Step
	next  int
}

// Build creates the file's actors on s and adds them under the root.
func (f *File) Build(s *scene.Stage) (*Scene, error) {
	sc := &Scene{
		file:   f,
		stage:  s,
		actors: map[string]*scene.Actor{"root": s.Root()},
		steps:  sortedSteps(f.Steps),
	}
	for i := range f.Actors {
		if err := sc.build(s.Root(), &f.Actors[i]); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

func (sc *Scene) build(parent *scene.Actor, def *Actor) error {
	a := sc.stage.NewActor(def.options()...)
	if err := setProperties(a, def.Properties); err != nil {
		return fmt.Errorf("actor %q: %w", def.Name, err)
	}
	sc.actors[def.Name] = a
	parent.Add(a)

	for i := range def.Children {
		if err := sc.build(a, &def.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

func (def *Actor) options() []scene.Option {
	opts := []scene.Option{scene.WithName(def.Name)}
	if def.Position != nil {
		p := vec3(def.Position)
		opts = append(opts, scene.WithPosition(p[0], p[1], p[2]))
	}
	if def.Scale != nil {
		v := vec3(def.Scale)
		opts = append(opts, scene.WithScale(v[0], v[1], v[2]))
	}
	if def.Size != nil {
		v := vec3(def.Size)
		opts = append(opts, scene.WithSize(v[0], v[1], v[2]))
	}
	if def.Color != nil {
		c := vec4(def.Color)
		opts = append(opts, scene.WithColor(c[0], c[1], c[2], c[3]))
	}
	if def.Orientation != nil {
		q := rotation(def.Orientation.Angle, def.Orientation.Axis)
		opts = append(opts, func(a *scene.Actor) { a.SetOrientationQuat(q) })
	}
	if def.Visible != nil {
		opts = append(opts, scene.WithVisible(*def.Visible))
	}
	if def.ParentOrigin != nil {
		opts = append(opts, scene.WithParentOrigin(vec3(def.ParentOrigin)))
	}
	if def.AnchorPoint != nil {
		opts = append(opts, scene.WithAnchorPoint(vec3(def.AnchorPoint)))
	}
	if m, ok := scene.ParseColorMode(def.ColorMode); ok {
		opts = append(opts, scene.WithColorMode(m))
	}
	if m, ok := scene.ParseDrawMode(def.DrawMode); ok {
		opts = append(opts, scene.WithDrawMode(m))
	}
	if m, ok := scene.ParsePositionInheritance(def.PositionInheritance); ok {
		opts = append(opts, scene.WithPositionInheritance(m))
	}
	if m, ok := scene.ParseSizeMode(def.SizeMode); ok {
		factor := scene.DefaultSizeModeFactor
		if def.SizeModeFactor != nil {
			factor = vec3(def.SizeModeFactor)
		}
		opts = append(opts, scene.WithSizeMode(m, factor))
	}
	return opts
}

// Actor returns the actor built for name, or nil. "root" is the stage root.
func (sc *Scene) Actor(name string) *scene.Actor {
	return sc.actors[name]
}

// ApplyThrough applies every step with a frame up to and including frame
// that has not been applied yet, in file order within a frame.
func (sc *Scene) ApplyThrough(frame uint64) error {
	for sc.next < len(sc.steps) && sc.steps[sc.next].Frame <= frame {
		st := sc.steps[sc.next]
		sc.next++
		if err := sc.apply(st); err != nil {
			return fmt.Errorf("frame %d, actor %q: %w", st.Frame, st.Actor, err)
		}
	}
	return nil
}

// Done reports whether every step has been applied.
func (sc *Scene) Done() bool {
	return sc.next >= len(sc.steps)
}

func (sc *Scene) apply(st Step) error {
	a := sc.actors[st.Actor]
	if a == nil {
		return fmt.Errorf("unknown actor")
	}
	if a.IsDestroyed() {
		return fmt.Errorf("actor was destroyed")
	}

	switch {
	case len(st.Set) > 0:
		if err := setProperties(a, st.Set); err != nil {
			return err
		}
	case st.Action != "":
		a.DoAction(st.Action)
	case st.MoveBy != nil:
		a.MoveBy(vec3(st.MoveBy))
	case st.ScaleBy != nil:
		a.ScaleBy(vec3(st.ScaleBy))
	case st.ColorBy != nil:
		a.ColorBy(vec4(st.ColorBy))
	case st.OpacityBy != nil:
		a.OpacityBy(*st.OpacityBy)
	case st.RotateBy != nil:
		a.RotateByQuat(rotation(st.RotateBy.Angle, st.RotateBy.Axis))
	case st.Remove:
		a.Unparent()
	case st.AddTo != "":
		parent := sc.actors[st.AddTo]
		if parent.IsDestroyed() {
			return fmt.Errorf("parent %q was destroyed", st.AddTo)
		}
		for p := parent; p != nil; p = p.Parent() {
			if p == a {
				return fmt.Errorf("cannot add to its own descendant %q", st.AddTo)
			}
		}
		parent.Add(a)
	case st.Destroy:
		a.Destroy()
	}
	return nil
}

// setProperties applies props in property index order, so a whole value
// such as "position" lands before a component such as "position-x".
func setProperties(a *scene.Actor, props map[string]any) error {
	names := slices.Collect(maps.Keys(props))
	slices.SortFunc(names, func(x, y string) int {
		ix, _ := scene.PropertyIndexByName(x)
		iy, _ := scene.PropertyIndexByName(y)
		return cmp.Compare(ix, iy)
	})

	for _, name := range names {
		index, _ := scene.PropertyIndexByName(name)
		v, err := convertValue(index, props[name])
		if err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		a.SetProperty(index, v)
	}
	return nil
}

func sortedSteps(steps []Step) []Step {
	out := slices.Clone(steps)
	slices.SortStableFunc(out, func(a, b Step) int {
		return cmp.Compare(a.Frame, b.Frame)
	})
	return out
}
