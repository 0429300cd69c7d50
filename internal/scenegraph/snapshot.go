package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/grindlemire/go-scene/internal/property"
)

// NodeSnapshot is a read-only copy of the values the graphics layer needs
// for one node.
type NodeSnapshot struct {
	ID          NodeID     `json:"id"`
	Name        string     `json:"name,omitempty"`
	Depth       int        `json:"depth"`
	WorldMatrix mgl32.Mat4 `json:"worldMatrix"`
	Position    mgl32.Vec3 `json:"position"`
	Color       mgl32.Vec4 `json:"color"`
	Size        mgl32.Vec3 `json:"size"`
	Visible     bool       `json:"visible"`
	DrawMode    DrawMode   `json:"drawMode"`
}

// Snapshot copies the world values at idx of every connected node in
// pre-order. Call after Update with the same index.
func (g *Graph) Snapshot(idx property.BufferIndex) []NodeSnapshot {
	if g.root == nil {
		return nil
	}
	out := make([]NodeSnapshot, 0, len(g.nodes))
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		out = append(out, NodeSnapshot{
			ID:          n.id,
			Name:        n.name,
			Depth:       depth,
			WorldMatrix: n.worldMatrix.Read(idx),
			Position:    n.worldPosition.Read(idx),
			Color:       n.worldColor.Read(idx),
			Size:        n.effectiveSize.Read(idx),
			Visible:     n.worldVisible.Read(idx),
			DrawMode:    n.drawMode,
		})
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	walk(g.root, 0)
	return out
}
