// Package scene keeps a retained scene graph in sync between the goroutine
// that edits it and the goroutine that evaluates it for display.
//
// Users import this single package for the complete public API: stage
// lifecycle, actor construction and hierarchy, properties and signals.
//
// A [Stage] owns three goroutines. The event goroutine (the one that calls
// [Stage.Run]) owns every [Actor]; actor setters never block and never touch
// the scene directly. Instead each change becomes a deferred operation that
// the update goroutine applies at the start of its next tick. The update
// goroutine evaluates world transforms, colors and visibility once per VSync
// into double-buffered slots and then flips the buffer index, so Current*
// and World* getters always see a complete frame. The VSync goroutine only
// timestamps display refreshes for the frame clock.
//
// Example:
//
//	stage, err := scene.NewStage(scene.WithVSyncSource(scene.NewTickerVSync(60)))
//	if err != nil {
//		return err
//	}
//	box := stage.NewActor(scene.WithName("box"), scene.WithSize(100, 100, 0))
//	stage.Root().Add(box)
//	box.MoveBy(mgl32.Vec3{10, 0, 0})
//	return stage.Run(ctx)
package scene
