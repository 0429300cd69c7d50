// Package frameclock predicts when the frame being computed will reach the
// display.
//
// Three goroutines touch a [Clock], and every field has exactly one writer:
//   - the VSync source calls [Clock.SetVSyncTime] and owns the raw VSync
//     timestamps, published through a sequence lock
//   - the event goroutine owns the minimum interval and the run state
//     ([Clock.Start], [Clock.Stop], [Clock.Suspend], [Clock.Resume])
//   - the update goroutine owns the prediction history and the sleeping flag
//     ([Clock.PredictNextVSyncTime], [Clock.TickDone], [Clock.Sleep],
//     [Clock.WakeUp])
//
// Nothing in this package blocks or allocates per call, and a stalled VSync
// source is not an error: predictions keep extrapolating from the minimum
// frame interval.
package frameclock
