package scene

import "slices"

// Add appends child to a's children. If child has another parent it is
// removed from it first, which fires that parent's child-removed signal.
// Adding a child that is already a's child does nothing.
//
// Add panics when child is a itself, the root, an ancestor of a, destroyed,
// or from another stage.
func (a *Actor) Add(child *Actor) {
	a.checkChild("Add", child)

	if child.parent == a {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}

	// a removal callback may already have reparented the child
	if child.parent != nil {
		a.stage.log.Debug().
			Int64("child", int64(child.id)).
			Log("child reparented during removal, add skipped")
		return
	}

	a.children = append(a.children, child)
	child.setParent(a, -1)
	a.childAddedSignal.emit(child)
}

// Insert places child at index among a's children, appending when index is
// past the end. Unlike Add it also moves a child that a already owns.
// The guards are the same as for Add.
func (a *Actor) Insert(index int, child *Actor) {
	a.checkChild("Insert", child)

	if child.parent != nil {
		child.parent.Remove(child)
	}
	if child.parent != nil {
		a.stage.log.Debug().
			Int64("child", int64(child.id)).
			Log("child reparented during removal, insert skipped")
		return
	}

	if index < 0 || index >= len(a.children) {
		index = len(a.children)
	}
	a.children = slices.Insert(a.children, index, child)
	child.setParent(a, index)
	a.childAddedSignal.emit(child)
}

// Remove detaches child from a. The child leaves the stage if a is on stage,
// and a's child-removed signal fires last. Removing an actor that is not a
// child of a does nothing.
func (a *Actor) Remove(child *Actor) {
	if a == child {
		panic("scene: cannot remove an actor from itself")
	}
	if child == nil {
		panic("scene: nil child in Remove")
	}

	i := slices.Index(a.children, child)
	if i < 0 {
		return
	}
	a.children = slices.Delete(a.children, i, i+1)
	child.setParent(nil, -1)
	a.childRemovedSignal.emit(child)
}

// Unparent removes a from its parent, if any.
func (a *Actor) Unparent() {
	if a.parent != nil {
		a.parent.Remove(a)
	}
}

// Parent returns a's parent, or nil.
func (a *Actor) Parent() *Actor {
	return a.parent
}

// ChildCount returns the number of children.
func (a *Actor) ChildCount() int {
	return len(a.children)
}

// ChildAt returns the child at index i. It panics when i is out of range.
func (a *Actor) ChildAt(i int) *Actor {
	if i < 0 || i >= len(a.children) {
		panic("scene: child index out of range")
	}
	return a.children[i]
}

// Children returns a copy of a's child list.
func (a *Actor) Children() []*Actor {
	return slices.Clone(a.children)
}

// FindChildByName searches a and its descendants depth first and returns
// the first actor named name, or nil.
func (a *Actor) FindChildByName(name string) *Actor {
	return a.find(func(c *Actor) bool { return c.name == name })
}

// FindChildByID searches a and its descendants depth first and returns the
// actor with the given id, or nil.
func (a *Actor) FindChildByID(id uint32) *Actor {
	return a.find(func(c *Actor) bool { return c.id == id })
}

func (a *Actor) find(match func(*Actor) bool) *Actor {
	stack := []*Actor{a}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if match(c) {
			return c
		}
		for i := len(c.children) - 1; i >= 0; i-- {
			stack = append(stack, c.children[i])
		}
	}
	return nil
}

// isAncestorOf reports whether a appears on other's parent chain.
func (a *Actor) isAncestorOf(other *Actor) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == a {
			return true
		}
	}
	return false
}

func (a *Actor) checkChild(op string, child *Actor) {
	a.checkAlive(op)
	if child == nil {
		panic("scene: nil child in " + op)
	}
	if child == a {
		panic("scene: cannot add an actor to itself")
	}
	if child.isRoot {
		panic("scene: cannot reparent the root actor")
	}
	if child.destroyed {
		panic("scene: " + op + " of destroyed actor")
	}
	if child.stage != a.stage {
		panic("scene: actor belongs to a different stage")
	}
	if child.isAncestorOf(a) {
		panic("scene: cannot add an ancestor as a child")
	}
}

// setParent links a to parent, connecting or disconnecting it from the
// stage as needed. index is the position among parent's children, or -1
// when appended.
func (a *Actor) setParent(parent *Actor, index int) {
	if parent != nil {
		a.parent = parent
		if parent.onStage {
			a.connectToStage(index)
		}
		return
	}

	// cleared first so off-stage callbacks see a detached actor and may
	// add it elsewhere
	a.parent = nil
	if a.onStage {
		a.disconnectFromStage()
	}
}
