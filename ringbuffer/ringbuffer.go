// Package ringbuffer implements a fixed-capacity circular FIFO queue.
//
// Storage is sized once, at construction, to capacity+1 slots. The headroom
// slot keeps read == write reachable only when the queue is empty, so
// fullness is decided by the live element counter alone. Nothing allocates
// after construction and nothing panics on a full or empty queue: push and
// pop report partial success through booleans and counts.
//
// Concurrency contract: SPSC. One goroutine may call the push family
// (Push, PushSlice, PushMany) while one other goroutine calls the pop
// family (Pop, PopMany, PeekAndPop, Peek, Clear, Snapshot, All). The
// injected Locker only guards the element counter; the read and write
// indices are advanced outside of it. Multiple producers or multiple
// consumers are not supported, see WithSPSCGuard.
package ringbuffer

import "iter"

// Sink is anything that accepts elements from a sequence and reports how
// many it stored. Every *Queue[T] is a Sink[T], whatever its capacity or
// locking policy.
type Sink[T any] interface {
	PushMany(seq iter.Seq[T]) int
}

// Observable is the read-only surface used by the Prometheus collector.
type Observable interface {
	Size() int
	Capacity() int
	Stats() Stats
}
