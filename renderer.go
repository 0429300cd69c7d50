package scene

import "time"

// FrameInfo describes one completed update tick.
type FrameInfo struct {
	// Session identifies the stage that produced the frame.
	Session string `json:"session"`
	// Number counts completed ticks, starting at 1.
	Number uint64 `json:"frame"`
	// Delta is the time in seconds animations advanced by.
	Delta float32 `json:"delta"`
	// LastVSyncMs and NextVSyncMs are the last VSync time and the predicted
	// time this frame reaches the display.
	LastVSyncMs  uint32 `json:"lastVSyncMs"`
	NextVSyncMs  uint32 `json:"nextVSyncMs"`
	ExtraUpdates uint32 `json:"extraUpdates"`
	// Applied is the number of deferred operations applied this tick.
	Applied int `json:"applied"`
	// Evaluated is the number of on-stage actors evaluated this tick.
	Evaluated int           `json:"evaluated"`
	Elapsed   time.Duration `json:"elapsedNs"`
}

// Renderer receives the evaluated scene after every tick.
// RenderFrame runs on the update goroutine and must not touch actors;
// nodes is a private copy it may keep.
type Renderer interface {
	RenderFrame(info FrameInfo, nodes []NodeSnapshot)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(info FrameInfo, nodes []NodeSnapshot)

// RenderFrame calls f.
func (f RendererFunc) RenderFrame(info FrameInfo, nodes []NodeSnapshot) {
	f(info, nodes)
}
