package ringbuffer

import (
	"runtime"
	"sync/atomic"
)

const goschedEvery = 64 // reduce runtime.Gosched() frequency in hot loops

// SpinLocker is a CAS spin lock. The critical sections it protects in a
// Queue are a single counter update, so spinning is usually cheaper than
// parking the goroutine. The zero value is unlocked.
type SpinLocker struct {
	state atomic.Uint32
}

// Lock spins until the lock is acquired, yielding the processor every
// goschedEvery failed attempts.
func (l *SpinLocker) Lock() {
	var spins uint32
	for !l.state.CompareAndSwap(0, 1) {
		spins++
		if spins%goschedEvery == 0 {
			runtime.Gosched()
		}
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
func (l *SpinLocker) TryLock() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Unlock releases the lock. Unlocking an unlocked SpinLocker is a no-op.
func (l *SpinLocker) Unlock() {
	l.state.Store(0)
}
