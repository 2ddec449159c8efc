// Package reactive provides the Cell primitive: an externally owned
// mutable value slot with synchronous change notification.
//
// A Cell holds a single value and an ordered list of observers. Writing
// a value that compares equal to the current one is a no-op and fires
// nothing; an effective write fires every observer, synchronously, in
// registration order:
//
//	count := NewCell(0)
//	stop := count.Observe(func() {
//	    fmt.Println("count is now", count.Get())
//	})
//	count.Set(5) // observer fires
//	count.Set(5) // no-op, nothing fires
//	stop()       // idempotent
//
// There is no automatic dependency discovery and no update batching:
// observation is explicit, and every notification runs to completion
// before the write that caused it returns. Higher-level wiring (derived
// state, fan-out, peer synchronization) lives in package bind.
package reactive
