package scene

import (
	"fmt"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActor_AddAndRemove(t *testing.T) {
	s, _ := newTestStage(t)
	parent := s.NewActor(WithName("parent"))
	a := s.NewActor(WithName("a"))
	b := s.NewActor(WithName("b"))

	parent.Add(a)
	parent.Add(b)

	require.Equal(t, 2, parent.ChildCount())
	assert.Same(t, a, parent.ChildAt(0))
	assert.Same(t, b, parent.ChildAt(1))
	assert.Same(t, parent, a.Parent())

	parent.Remove(a)
	assert.Equal(t, 1, parent.ChildCount())
	assert.Nil(t, a.Parent())
	assert.Same(t, b, parent.ChildAt(0))
}

func TestActor_AddTwiceIsNoop(t *testing.T) {
	s, _ := newTestStage(t)
	parent := s.NewActor()
	child := s.NewActor()

	added := 0
	parent.ChildAddedSignal().Connect(func(*Actor) { added++ })

	parent.Add(child)
	parent.Add(child)

	assert.Equal(t, 1, parent.ChildCount())
	assert.Equal(t, 1, added)
}

func TestActor_AddMovesBetweenParents(t *testing.T) {
	s, _ := newTestStage(t)
	p1 := s.NewActor()
	p2 := s.NewActor()
	child := s.NewActor()

	var events []string
	p1.ChildRemovedSignal().Connect(func(*Actor) { events = append(events, "p1 removed") })
	p2.ChildAddedSignal().Connect(func(*Actor) { events = append(events, "p2 added") })

	p1.Add(child)
	p2.Add(child)

	assert.Equal(t, 0, p1.ChildCount())
	assert.Equal(t, 1, p2.ChildCount())
	assert.Same(t, p2, child.Parent())
	assert.Equal(t, []string{"p1 removed", "p2 added"}, events)
}

func TestActor_ReAddDuringRemovalCallback(t *testing.T) {
	s, _ := newTestStage(t)
	parent := s.NewActor()
	child := s.NewActor()
	parent.Add(child)

	var disconnect Disconnect
	disconnect = parent.ChildRemovedSignal().Connect(func(c *Actor) {
		disconnect()
		parent.Add(c)
	})

	parent.Remove(child)

	require.Equal(t, 1, parent.ChildCount())
	assert.Same(t, child, parent.ChildAt(0))
	assert.Same(t, parent, child.Parent())
}

func TestActor_ReparentDuringRemovalCallbackWins(t *testing.T) {
	s, _ := newTestStage(t)
	p1 := s.NewActor()
	p2 := s.NewActor()
	child := s.NewActor()
	p1.Add(child)

	var disconnect Disconnect
	disconnect = p1.ChildRemovedSignal().Connect(func(c *Actor) {
		disconnect()
		p1.Add(c)
	})

	p2.Add(child)

	assert.Same(t, p1, child.Parent())
	assert.Equal(t, 1, p1.ChildCount())
	assert.Equal(t, 0, p2.ChildCount())
}

func TestActor_ReAddDuringOffStageCallback(t *testing.T) {
	s, _ := newTestStage(t)
	old := s.NewActor(WithName("old"))
	newParent := s.NewActor(WithName("new"))
	child := s.NewActor(WithName("child"))
	s.Root().Add(old)
	s.Root().Add(newParent)
	old.Add(child)

	var seenParent *Actor
	var offStage, onStage int
	child.OnStageSignal().Connect(func(*Actor) { onStage++ })
	once(child.OffStageSignal(), func(c *Actor) {
		offStage++
		seenParent = c.Parent()
		newParent.Add(c)
	})

	old.Remove(child)

	assert.Nil(t, seenParent, "off-stage callbacks see the actor detached")
	assert.Equal(t, 1, offStage)
	assert.Equal(t, 1, onStage)
	assert.Same(t, newParent, child.Parent())
	assert.Equal(t, 0, old.ChildCount())
	require.Equal(t, 1, newParent.ChildCount())
	assert.True(t, child.OnStage())
	assert.True(t, child.IsNodeConnected())

	s.Step()
	assert.Equal(t, mgl32.Vec3{-400, -240, 0}, child.WorldPosition())
}

// once connects fn to sig for a single emission.
func once(sig *Signal[*Actor], fn func(*Actor)) {
	var disconnect Disconnect
	disconnect = sig.Connect(func(a *Actor) {
		disconnect()
		fn(a)
	})
}

// checkHierarchy asserts that every actor in all agrees with its parent,
// has no more than one parent, is not its own ancestor and is on stage
// exactly when its parent chain reaches the root.
func checkHierarchy(t *testing.T, step string, all []*Actor) {
	t.Helper()
	owners := map[*Actor]int{}
	for _, a := range all {
		for _, c := range a.children {
			owners[c]++
			if c.parent != a {
				t.Errorf("%s: %s is a child of %s but reports parent %q", step, c.name, a.name, nameOf(c.parent))
			}
		}
	}
	for _, a := range all {
		if owners[a] > 1 {
			t.Errorf("%s: %s has %d parents", step, a.name, owners[a])
		}
		if a.parent != nil && !slices.Contains(a.parent.children, a) {
			t.Errorf("%s: %s reports parent %s which does not list it", step, a.name, a.parent.name)
		}

		reachesRoot := a.isRoot
		for p, n := a.parent, 0; p != nil; p, n = p.parent, n+1 {
			if p == a || n > len(all) {
				t.Errorf("%s: %s is its own ancestor", step, a.name)
				break
			}
			reachesRoot = p.isRoot
		}
		if a.onStage != reachesRoot {
			t.Errorf("%s: %s on stage = %v, connected to root = %v", step, a.name, a.onStage, reachesRoot)
		}
		if a.IsNodeConnected() != a.onStage {
			t.Errorf("%s: %s node connected = %v, on stage = %v", step, a.name, a.IsNodeConnected(), a.onStage)
		}
	}
}

func nameOf(a *Actor) string {
	if a == nil {
		return "<nil>"
	}
	return a.name
}

// preOrder returns the names of a's subtree in pre-order with depths.
func preOrder(a *Actor) []string {
	var out []string
	var walk func(a *Actor, depth int)
	walk = func(a *Actor, depth int) {
		out = append(out, fmt.Sprintf("%d:%s", depth, a.name))
		for _, c := range a.children {
			walk(c, depth+1)
		}
	}
	walk(a, 0)
	return out
}

func TestActor_HierarchySequences(t *testing.T) {
	// Every case starts from root{a{c, d}, b} plus the off-stage tree x{y}.
	type world map[string]*Actor
	type op struct {
		name string
		do   func(w world)
	}
	type tc struct {
		ops []op
	}

	tests := map[string]tc{
		"plain moves": {
			ops: []op{
				{"add off-stage tree", func(w world) { w["root"].Add(w["x"]) }},
				{"insert reorders", func(w world) { w["a"].Insert(0, w["d"]) }},
				{"move to sibling", func(w world) { w["b"].Add(w["c"]) }},
				{"insert across parents", func(w world) { w["x"].Insert(0, w["c"]) }},
				{"remove on-stage subtree", func(w world) { w["root"].Remove(w["b"]) }},
				{"add under detached", func(w world) { w["b"].Add(w["a"]) }},
				{"insert back at front", func(w world) { w["root"].Insert(0, w["b"]) }},
			},
		},
		"off-stage callback adds elsewhere": {
			ops: []op{
				{"connect", func(w world) {
					once(w["c"].OffStageSignal(), func(c *Actor) { w["b"].Add(c) })
				}},
				{"remove", func(w world) { w["a"].Remove(w["c"]) }},
				{"move to detached tree", func(w world) { w["y"].Add(w["c"]) }},
				{"attach detached tree", func(w world) { w["b"].Insert(0, w["x"]) }},
			},
		},
		"off-stage callback adds to same parent": {
			ops: []op{
				{"connect", func(w world) {
					once(w["d"].OffStageSignal(), func(d *Actor) { w["a"].Insert(0, d) })
				}},
				{"remove", func(w world) { w["a"].Remove(w["d"]) }},
			},
		},
		"child-removed callback reparents": {
			ops: []op{
				{"connect", func(w world) {
					once(w["a"].ChildRemovedSignal(), func(c *Actor) { w["x"].Add(c) })
				}},
				{"remove", func(w world) { w["a"].Remove(w["d"]) }},
				{"attach", func(w world) { w["root"].Add(w["x"]) }},
			},
		},
		"on-stage callback reorders root": {
			ops: []op{
				{"connect", func(w world) {
					once(w["y"].OnStageSignal(), func(*Actor) { w["root"].Insert(0, w["b"]) })
				}},
				{"attach", func(w world) { w["root"].Add(w["x"]) }},
			},
		},
		"on-stage callback detaches itself": {
			ops: []op{
				{"connect", func(w world) {
					once(w["y"].OnStageSignal(), func(y *Actor) { y.Unparent() })
				}},
				{"attach", func(w world) { w["a"].Add(w["x"]) }},
				{"re-add", func(w world) { w["x"].Add(w["y"]) }},
			},
		},
		"off-stage subtree only": {
			ops: []op{
				{"detach a", func(w world) { w["a"].Unparent() }},
				{"move between detached", func(w world) { w["y"].Add(w["d"]) }},
				{"insert", func(w world) { w["x"].Insert(0, w["d"]) }},
				{"nest", func(w world) { w["d"].Add(w["a"]) }},
				{"attach all", func(w world) { w["b"].Add(w["x"]) }},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var rendered []string
			s, _ := newTestStage(t, WithRenderer(RendererFunc(func(_ FrameInfo, nodes []NodeSnapshot) {
				rendered = rendered[:0]
				for _, n := range nodes {
					rendered = append(rendered, fmt.Sprintf("%d:%s", n.Depth, n.Name))
				}
			})))

			w := world{"root": s.Root()}
			for _, n := range []string{"a", "b", "c", "d", "x", "y"} {
				w[n] = s.NewActor(WithName(n))
			}
			w["root"].Add(w["a"])
			w["root"].Add(w["b"])
			w["a"].Add(w["c"])
			w["a"].Add(w["d"])
			w["x"].Add(w["y"])

			all := make([]*Actor, 0, len(w))
			for _, a := range w {
				all = append(all, a)
			}

			checkHierarchy(t, "setup", all)
			for i, o := range tt.ops {
				o.do(w)
				checkHierarchy(t, o.name, all)

				// tick after every other step so some changes share a drain
				if i%2 == 1 {
					s.Step()
					assert.Equal(t, preOrder(s.Root()), rendered, "after %s", o.name)
				}
			}

			s.Step()
			assert.Equal(t, preOrder(s.Root()), rendered)
		})
	}
}

func TestActor_Insert(t *testing.T) {
	type tc struct {
		index int
		want  []string
	}

	tests := map[string]tc{
		"front":         {index: 0, want: []string{"x", "a", "b", "c"}},
		"middle":        {index: 1, want: []string{"a", "x", "b", "c"}},
		"past the end":  {index: 10, want: []string{"a", "b", "c", "x"}},
		"negative":      {index: -1, want: []string{"a", "b", "c", "x"}},
		"exactly count": {index: 3, want: []string{"a", "b", "c", "x"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, _ := newTestStage(t)
			parent := s.NewActor()
			for _, n := range []string{"a", "b", "c"} {
				parent.Add(s.NewActor(WithName(n)))
			}

			parent.Insert(tt.index, s.NewActor(WithName("x")))

			assert.Equal(t, tt.want, names(parent.Children()))
		})
	}
}

func TestActor_InsertReordersExistingChild(t *testing.T) {
	s, _ := newTestStage(t)
	parent := s.NewActor()
	a := s.NewActor(WithName("a"))
	b := s.NewActor(WithName("b"))
	c := s.NewActor(WithName("c"))
	parent.Add(a)
	parent.Add(b)
	parent.Add(c)

	parent.Insert(0, c)

	assert.Equal(t, []string{"c", "a", "b"}, names(parent.Children()))
}

func TestActor_HierarchyPanics(t *testing.T) {
	type tc struct {
		op   func(s *Stage)
		want string
	}

	tests := map[string]tc{
		"add self": {
			op: func(s *Stage) {
				a := s.NewActor()
				a.Add(a)
			},
			want: "scene: cannot add an actor to itself",
		},
		"add root": {
			op: func(s *Stage) {
				s.NewActor().Add(s.Root())
			},
			want: "scene: cannot reparent the root actor",
		},
		"add ancestor": {
			op: func(s *Stage) {
				a := s.NewActor()
				b := s.NewActor()
				c := s.NewActor()
				a.Add(b)
				b.Add(c)
				c.Add(a)
			},
			want: "scene: cannot add an ancestor as a child",
		},
		"insert self": {
			op: func(s *Stage) {
				a := s.NewActor()
				a.Insert(0, a)
			},
			want: "scene: cannot add an actor to itself",
		},
		"remove self": {
			op: func(s *Stage) {
				a := s.NewActor()
				a.Remove(a)
			},
			want: "scene: cannot remove an actor from itself",
		},
		"child index out of range": {
			op: func(s *Stage) {
				s.NewActor().ChildAt(0)
			},
			want: "scene: child index out of range",
		},
		"other stage": {
			op: func(s *Stage) {
				other, err := NewStage()
				if err != nil {
					panic(err)
				}
				s.Root().Add(other.NewActor())
			},
			want: "scene: actor belongs to a different stage",
		},
		"destroy root": {
			op: func(s *Stage) {
				s.Root().Destroy()
			},
			want: "scene: cannot destroy the root actor",
		},
		"destroy twice": {
			op: func(s *Stage) {
				a := s.NewActor()
				a.Destroy()
				a.Destroy()
			},
			want: "scene: actor destroyed twice",
		},
		"add destroyed": {
			op: func(s *Stage) {
				a := s.NewActor()
				a.Destroy()
				s.Root().Add(a)
			},
			want: "scene: Add of destroyed actor",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, _ := newTestStage(t)
			assert.PanicsWithValue(t, tt.want, func() { tt.op(s) })
		})
	}
}

func TestActor_RemoveUnknownChildIsNoop(t *testing.T) {
	s, _ := newTestStage(t)
	parent := s.NewActor()
	stranger := s.NewActor()

	removed := 0
	parent.ChildRemovedSignal().Connect(func(*Actor) { removed++ })

	parent.Remove(stranger)

	assert.Zero(t, removed)
}

func TestActor_Unparent(t *testing.T) {
	s, _ := newTestStage(t)
	child := s.NewActor()
	s.Root().Add(child)

	child.Unparent()
	child.Unparent()

	assert.Nil(t, child.Parent())
	assert.Zero(t, s.Root().ChildCount())
}

func TestActor_ChildrenReturnsCopy(t *testing.T) {
	s, _ := newTestStage(t)
	parent := s.NewActor()
	parent.Add(s.NewActor())

	kids := parent.Children()
	kids[0] = nil

	assert.NotNil(t, parent.ChildAt(0))
}

func TestActor_Find(t *testing.T) {
	s, _ := newTestStage(t)
	a := s.NewActor(WithName("a"))
	b := s.NewActor(WithName("b"))
	c := s.NewActor(WithName("c"))
	dup := s.NewActor(WithName("b"))
	a.Add(b)
	b.Add(c)
	a.Add(dup)

	type tc struct {
		find func() *Actor
		want *Actor
	}

	tests := map[string]tc{
		"self by name":            {find: func() *Actor { return a.FindChildByName("a") }, want: a},
		"grandchild by name":      {find: func() *Actor { return a.FindChildByName("c") }, want: c},
		"first match in preorder": {find: func() *Actor { return a.FindChildByName("b") }, want: b},
		"missing name":            {find: func() *Actor { return a.FindChildByName("zzz") }, want: nil},
		"by id":                   {find: func() *Actor { return a.FindChildByID(c.ID()) }, want: c},
		"self by id":              {find: func() *Actor { return b.FindChildByID(b.ID()) }, want: b},
		"not below":               {find: func() *Actor { return b.FindChildByID(dup.ID()) }, want: nil},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Same(t, tt.want, tt.find())
		})
	}
}

func TestActor_IDsAreUniqueAndNonZero(t *testing.T) {
	s, _ := newTestStage(t)
	seen := map[uint32]bool{s.Root().ID(): true}
	for i := 0; i < 100; i++ {
		id := s.NewActor().ID()
		require.NotZero(t, id)
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}

func TestActor_DestroyOrphansChildren(t *testing.T) {
	s, _ := newTestStage(t)
	parent := s.NewActor()
	a := s.NewActor()
	b := s.NewActor()
	parent.Add(a)
	parent.Add(b)
	s.Root().Add(parent)

	parent.Destroy()

	assert.True(t, parent.IsDestroyed())
	assert.Nil(t, a.Parent())
	assert.Nil(t, b.Parent())
	assert.Zero(t, parent.ChildCount())
	assert.Zero(t, s.Root().ChildCount())
	assert.False(t, a.OnStage())
}

func names(actors []*Actor) []string {
	out := make([]string, len(actors))
	for i, a := range actors {
		out[i] = a.Name()
	}
	return out
}
