// Package message implements the ordered queue of deferred operations sent
// from the event goroutine to the update goroutine.
//
// A [Message] is a closure that captures its target and arguments by value.
// Producers call [Queue.Enqueue] from any goroutine; nothing runs inline. The
// update goroutine calls [Queue.DrainAndApply] exactly once per tick, which
// applies every message enqueued before the drain began in FIFO order.
package message
