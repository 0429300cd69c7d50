package scene

// Signal delivers notifications about an actor to connected callbacks.
//
// Thread Safety Rules:
//   - Connect, the returned Disconnect and emission all happen on the event
//     goroutine, so Signal carries no lock
//   - Callbacks may connect, disconnect and mutate the hierarchy; a callback
//     connected during an emission first runs on the next emission
type Signal[T any] struct {
	slots []*signalSlot[T]
}

type signalSlot[T any] struct {
	fn     func(T)
	active bool
}

// Disconnect is a handle that removes a callback from its signal.
// Calling it more than once is safe.
type Disconnect func()

// Connect registers fn and returns a handle that removes it.
func (s *Signal[T]) Connect(fn func(T)) Disconnect {
	if fn == nil {
		panic("scene: nil signal callback")
	}
	slot := &signalSlot[T]{fn: fn, active: true}
	s.slots = append(s.slots, slot)
	return func() {
		slot.active = false
	}
}

// Len returns the number of connected callbacks.
func (s *Signal[T]) Len() int {
	n := 0
	for _, slot := range s.slots {
		if slot.active {
			n++
		}
	}
	return n
}

// emit calls every active callback in connection order.
func (s *Signal[T]) emit(v T) {
	if len(s.slots) == 0 {
		return
	}
	// copy active slots and drop inactive ones
	active := s.slots[:0:0]
	for _, slot := range s.slots {
		if slot.active {
			active = append(active, slot)
		}
	}
	s.slots = active

	snapshot := make([]*signalSlot[T], len(active))
	copy(snapshot, active)
	for _, slot := range snapshot {
		if slot.active {
			slot.fn(v)
		}
	}
}
