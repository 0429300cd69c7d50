// Package property implements the double-buffered value store shared by the
// event and update goroutines.
//
// Every animatable scene value lives in a [Slot], which holds two copies of
// the value. The update goroutine writes the copy selected by the current
// [BufferIndex] while readers on the event goroutine read the other copy,
// which holds the value as of the last completed tick. The index is not
// stored per slot: it is owned by [Buffers] and flips for every slot at once
// when the update goroutine finishes a tick.
//
// Thread Safety Rules:
//   - Slot writes happen only on the update goroutine, at the update index
//   - Slot reads from other goroutines happen only inside [Buffers.Read]
//   - [Buffers.Swap] is called once per tick, by the update goroutine
package property
