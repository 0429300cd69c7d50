// Package scenegraph holds the update-side scene representation.
//
// A [Node] is created on the event goroutine, handed to the update goroutine
// by an add-node message and owned by the [Graph] from then on. Every field
// of a Node is read and written only by the update goroutine once the add
// message has been applied, except for the property slots at the event
// buffer index, which event-side readers access through property.Buffers.
//
// Nodes connected to the installed root are evaluated every tick in
// pre-order; a disconnected subtree is inert until its nodes are destroyed.
package scenegraph
