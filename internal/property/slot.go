package property

// Slot is a double-buffered value.
//
// A Slot also tracks its base value: the last value baked into it. At the
// start of every tick the update goroutine calls ResetToBase so that the
// write buffer starts from the committed value instead of the value of two
// ticks ago.
type Slot[T any] struct {
	value [2]T
	base  T

	// pending counts resets still needed before both buffers hold base.
	pending uint8
}

// NewSlot returns a slot with both buffers holding initial.
func NewSlot[T any](initial T) Slot[T] {
	return Slot[T]{
		value: [2]T{initial, initial},
		base:  initial,
	}
}

// Read returns the value stored in buffer idx. It has no side effects.
func (s *Slot[T]) Read(idx BufferIndex) T {
	return s.value[idx]
}

// Write stores v in buffer idx only. The base value is untouched, which makes
// Write the right call for derived values recomputed every tick.
func (s *Slot[T]) Write(idx BufferIndex, v T) {
	s.value[idx] = v
}

// Base returns the last baked value.
func (s *Slot[T]) Base() T {
	return s.base
}

// Bake sets the value for the tick being written as if it had always held v.
func (s *Slot[T]) Bake(idx BufferIndex, v T) {
	s.value[idx] = v
	s.base = v
	s.pending = 1
}

// BakeRelative bakes combine(current, delta), where current is the value in
// the write buffer. After ResetToBase that is the committed value of the
// previous tick plus any bakes already applied during this tick.
func (s *Slot[T]) BakeRelative(idx BufferIndex, delta T, combine func(current, delta T) T) {
	s.Bake(idx, combine(s.value[idx], delta))
}

// BakeWith bakes fn(current). Component setters (x, y, alpha...) use it to
// replace one field of a composite value.
func (s *Slot[T]) BakeWith(idx BufferIndex, fn func(current T) T) {
	s.Bake(idx, fn(s.value[idx]))
}

// ResetToBase copies the base value into buffer idx if the slot changed since
// the other buffer was last written.
func (s *Slot[T]) ResetToBase(idx BufferIndex) {
	if s.pending == 0 {
		return
	}
	s.value[idx] = s.base
	s.pending--
}

// Settled reports whether both buffers hold the base value.
func (s *Slot[T]) Settled() bool {
	return s.pending == 0
}
