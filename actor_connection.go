package scene

import (
	"slices"

	"github.com/grindlemire/go-scene/internal/scenegraph"
)

// connectToStage pairs a and its subtree with new scene nodes. The walk
// finishes before any on-stage signal fires, so callbacks see the whole
// subtree already connected.
func (a *Actor) connectToStage(index int) {
	type entry struct {
		actor *Actor
		index int
	}

	var connected []*Actor
	stack := []entry{{a, index}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		e.actor.attachNode(e.index)
		connected = append(connected, e.actor)

		kids := e.actor.children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, entry{kids[i], -1})
		}
	}

	for _, c := range connected {
		c.notifyOnStage()
	}
}

func (a *Actor) attachNode(index int) {
	s := a.stage
	a.onStage = true
	a.node = scenegraph.NewNode(a.nodeInit())
	s.enqueue(scenegraph.AddNodeMessage(s.graph, a.node))
	s.enqueue(scenegraph.ConnectNodeMessage(s.graph, a.parent.node, a.node, index))
}

func (a *Actor) notifyOnStage() {
	// a callback earlier in the list may have taken this actor off stage
	if !a.onStage || a.onStageSignalled {
		return
	}
	a.onStageSignalled = true
	a.onStageSignal.emit(a)
}

// disconnectFromStage releases the scene nodes of a and its subtree,
// children before parents, then fires off-stage signals in the same order.
func (a *Actor) disconnectFromStage() {
	s := a.stage
	if a.node != nil {
		s.enqueue(scenegraph.DisconnectNodeMessage(s.graph, a.node))
	}

	var order []*Actor
	stack := []*Actor{a}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, c)
		stack = append(stack, c.children...)
	}
	slices.Reverse(order)

	for _, c := range order {
		c.onStage = false
		if c.node != nil {
			s.enqueue(scenegraph.DestroyNodeMessage(s.graph, c.node))
			c.node = nil
		}
	}

	for _, c := range order {
		c.notifyOffStage()
	}
}

func (a *Actor) notifyOffStage() {
	if a.onStage || !a.onStageSignalled {
		return
	}
	a.onStageSignalled = false
	a.offStageSignal.emit(a)
}
