package scenegraph

import (
	"slices"

	"github.com/joeycumines/logiface"

	"github.com/grindlemire/go-scene/internal/property"
)

// changeSettleTicks is how many ticks a structural change takes to reach both
// buffers of the derived values.
const changeSettleTicks = 2

// Graph owns every node handed to the update goroutine.
// All methods are update goroutine only.
type Graph struct {
	nodes map[NodeID]*Node
	root  *Node

	// changed counts ticks until a structural or flag change has been
	// evaluated into both buffers.
	changed uint8

	log *logiface.Logger[logiface.Event]
}

// NewGraph returns an empty graph. log may be nil.
func NewGraph(log *logiface.Logger[logiface.Event]) *Graph {
	return &Graph{
		nodes: make(map[NodeID]*Node),
		log:   log,
	}
}

// Len returns the number of live nodes, connected or not.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Root returns the installed root, or nil.
func (g *Graph) Root() *Node {
	return g.root
}

// Node returns the live node with the given id, or nil.
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes[id]
}

// Add takes ownership of n. The node is inert until connected.
func (g *Graph) Add(n *Node) {
	if n.destroyed {
		g.log.Debug().Uint64("node", uint64(n.id)).Log("add of destroyed node ignored")
		return
	}
	g.nodes[n.id] = n
}

// InstallRoot marks n as the root of the evaluated hierarchy.
func (g *Graph) InstallRoot(n *Node) {
	if n.destroyed {
		return
	}
	if n.parent != nil {
		panic("scene: root node has a parent")
	}
	if g.root != nil && g.root != n {
		g.root.isRoot = false
	}
	g.nodes[n.id] = n
	n.isRoot = true
	g.root = n
	g.markChanged()
}

// Connect inserts child into parent's child list at index, or appends when
// index is out of range. Connecting a node that already has a parent is a
// programming error.
func (g *Graph) Connect(parent, child *Node, index int) {
	if parent.destroyed || child.destroyed {
		g.log.Debug().
			Uint64("parent", uint64(parent.id)).
			Uint64("child", uint64(child.id)).
			Log("connect involving destroyed node ignored")
		return
	}
	if child.parent != nil {
		panic("scene: node already has a parent")
	}
	if child.isRoot {
		panic("scene: cannot connect the root node")
	}

	if index < 0 || index >= len(parent.children) {
		parent.children = append(parent.children, child)
	} else {
		parent.children = slices.Insert(parent.children, index, child)
	}
	child.parent = parent
	g.markChanged()
}

// Disconnect removes n from its parent. Its own children stay attached, so
// the whole subtree becomes inert.
func (g *Graph) Disconnect(n *Node) {
	if n.destroyed || n.parent == nil {
		return
	}
	g.detach(n)
	g.markChanged()
}

func (g *Graph) detach(n *Node) {
	p := n.parent
	if i := p.indexOf(n); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = nil
}

// Destroy releases n. Destroying a node twice is a no-op. Any remaining
// children are orphaned and stay inert until destroyed themselves.
func (g *Graph) Destroy(n *Node) {
	if n.destroyed {
		return
	}
	if n.parent != nil {
		g.detach(n)
	}
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	n.destroyed = true
	if g.root == n {
		g.root = nil
	}
	delete(g.nodes, n.id)
	g.markChanged()
}

// ResetToBase brings the write buffer of every live node's inputs up to the
// committed value. Called at the start of each tick, before the drain.
func (g *Graph) ResetToBase(idx property.BufferIndex) {
	for _, n := range g.nodes {
		n.resetToBase(idx)
	}
}

// Update evaluates world values for every node connected to the root, in
// pre-order, and returns how many nodes were evaluated.
func (g *Graph) Update(idx property.BufferIndex) int {
	if g.changed > 0 {
		g.changed--
	}
	if g.root == nil {
		return 0
	}

	w := localWorld(g.root, idx)
	g.root.writeWorld(w, idx)
	count := 1

	type item struct {
		node   *Node
		parent world
	}
	stack := make([]item, 0, len(g.root.children))
	for i := len(g.root.children) - 1; i >= 0; i-- {
		stack = append(stack, item{g.root.children[i], w})
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cw := deriveWorld(it.parent, it.node, idx)
		it.node.writeWorld(cw, idx)
		count++

		for i := len(it.node.children) - 1; i >= 0; i-- {
			stack = append(stack, item{it.node.children[i], cw})
		}
	}
	return count
}

// Settled reports whether both buffers hold the same values for every node,
// which lets the update loop sleep.
func (g *Graph) Settled() bool {
	if g.changed > 0 {
		return false
	}
	for _, n := range g.nodes {
		if !n.settled() {
			return false
		}
	}
	return true
}

// MarkChanged forces the next two ticks to run. Flag messages call it after
// changing a field that feeds the world values.
func (g *Graph) MarkChanged() {
	g.markChanged()
}

func (g *Graph) markChanged() {
	g.changed = changeSettleTicks
}
