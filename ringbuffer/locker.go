package ringbuffer

// Locker guards the live element counter of a Queue.
// *sync.Mutex, *sync.RWMutex and *SpinLocker all satisfy it.
type Locker interface {
	Lock()
	Unlock()
}

// NopLocker performs no synchronization. It is the default Locker and is
// enough when the counter is only touched from one goroutine, or under the
// SPSC contract where the counter itself is atomic.
type NopLocker struct{}

// Lock does nothing.
func (NopLocker) Lock() {}

// Unlock does nothing.
func (NopLocker) Unlock() {}
