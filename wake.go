package scene

import "github.com/grindlemire/go-scene/internal/message"

// enqueue sends msg to the update goroutine and marks the scene dirty.
func (s *Stage) enqueue(msg message.Message) {
	if s == nil {
		panic("scene: nil stage in enqueue")
	}
	s.queue.Enqueue(msg)
	s.markDirty()
}

// markDirty wakes the update loop if it is sleeping so the pending
// operations are applied on the next tick.
func (s *Stage) markDirty() {
	if s == nil {
		panic("scene: nil stage in markDirty")
	}
	s.driver.Wake()
}
