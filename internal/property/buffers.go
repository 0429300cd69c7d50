package property

import "sync"

// BufferIndex selects one of the two storage locations of a Slot.
type BufferIndex uint8

// Other returns the opposite buffer index.
func (i BufferIndex) Other() BufferIndex {
	return 1 - i
}

// Buffers owns the process-wide buffer index for one scene.
//
// The update goroutine writes slots at UpdateIndex for the duration of a
// tick and then calls Swap. Readers call Read, which pins the event index
// (the buffer holding the last completed tick) for the duration of the
// callback. Swap waits for pinned readers, so a reader never observes a
// buffer that the update goroutine has started writing.
type Buffers struct {
	mu     sync.RWMutex
	update BufferIndex
	frame  uint64
}

// NewBuffers returns buffers with the update index at 0.
func NewBuffers() *Buffers {
	return &Buffers{}
}

// UpdateIndex returns the buffer the in-progress tick writes to.
// Update goroutine only.
func (b *Buffers) UpdateIndex() BufferIndex {
	return b.update
}

// Frame returns the number of completed swaps. Update goroutine only.
func (b *Buffers) Frame() uint64 {
	return b.frame
}

// Swap flips the update and event roles of the two buffers.
// Called once per tick by the update goroutine after all writes are done.
func (b *Buffers) Swap() {
	b.mu.Lock()
	b.update = b.update.Other()
	b.frame++
	b.mu.Unlock()
}

// Read calls fn with the event index. Values read from slots at that index
// inside fn are the committed values of the last completed tick.
func (b *Buffers) Read(fn func(idx BufferIndex)) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	fn(b.update.Other())
}

// ReadFrame is Read that also reports the number of completed ticks.
func (b *Buffers) ReadFrame(fn func(idx BufferIndex, frame uint64)) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	fn(b.update.Other(), b.frame)
}
