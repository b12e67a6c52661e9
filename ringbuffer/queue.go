package ringbuffer

import (
	"iter"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Queue is a bounded FIFO ring over capacity+1 preallocated slots.
//
// Popped elements are not destroyed: the slot keeps its old value until a
// later push overwrites it (see WithZeroOnPop).
type Queue[T any] struct {
	_         cpu.CacheLinePad
	capacity  uint64
	storage   []T // capacity+1 slots, the extra one is headroom
	lock      Locker
	zeroOnPop bool
	guard     bool
	_         cpu.CacheLinePad

	// producer side
	write             atomic.Uint64
	pushActive        atomic.Uint32
	pushAttempts      atomic.Uint64
	pushed            atomic.Uint64
	pushFailedQIsFull atomic.Uint64
	_                 cpu.CacheLinePad

	// consumer side
	read              atomic.Uint64
	popActive         atomic.Uint32
	popAttempts       atomic.Uint64
	popped            atomic.Uint64
	popFailedQIsEmpty atomic.Uint64
	clears            atomic.Uint64
	moved             atomic.Uint64
	_                 cpu.CacheLinePad

	count atomic.Uint64 // live elements, mutated under lock only
	_     cpu.CacheLinePad
}

// New creates a queue holding at most capacity elements.
// Capacity must be > 0.
func New[T any](capacity int, options ...Option) *Queue[T] {
	if capacity <= 0 {
		panic("capacity must be > 0")
	}

	return newQueue(make([]T, capacity+1), options)
}

// NewWithStorage creates a queue on top of caller-provided storage.
// The logical capacity is len(storage)-1, so storage must hold at least
// two slots. The queue takes ownership of storage.
func NewWithStorage[T any](storage []T, options ...Option) *Queue[T] {
	if len(storage) < 2 {
		panic("storage must hold capacity+1 slots and capacity must be > 0")
	}

	return newQueue(storage, options)
}

func newQueue[T any](storage []T, options []Option) *Queue[T] {
	opts := applyOptions(options...)

	return &Queue[T]{
		capacity:  uint64(len(storage) - 1),
		storage:   storage,
		lock:      opts.locker,
		zeroOnPop: opts.zeroOnPop,
		guard:     opts.spscGuard,
	}
}

// advance moves a physical index n slots forward, modulo capacity+1.
// n must not exceed capacity.
func (q *Queue[T]) advance(i, n uint64) uint64 {
	i += n
	if i > q.capacity {
		i -= q.capacity + 1
	}
	return i
}

func (q *Queue[T]) enterPush() {
	if q.guard && !q.pushActive.CompareAndSwap(0, 1) {
		panic("ringbuffer: concurrent push on SPSC queue - only one producer allowed")
	}
}

func (q *Queue[T]) leavePush() {
	if q.guard {
		q.pushActive.Store(0)
	}
}

func (q *Queue[T]) enterPop() {
	if q.guard && !q.popActive.CompareAndSwap(0, 1) {
		panic("ringbuffer: concurrent pop on SPSC queue - only one consumer allowed")
	}
}

func (q *Queue[T]) leavePop() {
	if q.guard {
		q.popActive.Store(0)
	}
}

// commitPush publishes pushed elements that were already written to the
// slots preceding w.
func (q *Queue[T]) commitPush(w, pushed uint64) {
	if pushed == 0 {
		return
	}

	q.write.Store(w)
	q.pushed.Add(pushed)

	q.lock.Lock()
	defer q.lock.Unlock()
	q.count.Add(pushed)
}

// release drops n elements that the read index has already moved past.
func (q *Queue[T]) release(n uint64) {
	q.popped.Add(n)

	q.lock.Lock()
	defer q.lock.Unlock()
	q.count.Add(^(n - 1))
}

// zero clears n slots starting at physical index from, wrapping around.
func (q *Queue[T]) zero(from, n uint64) {
	first := min(n, uint64(len(q.storage))-from)
	clear(q.storage[from : from+first])
	clear(q.storage[:n-first])
}

// Push stores v at the back of the queue.
// Returns false if the queue is full; nothing is overwritten.
// Must be called from the single producer goroutine.
func (q *Queue[T]) Push(v T) bool {
	q.enterPush()
	defer q.leavePush()

	q.pushAttempts.Add(1)
	if q.count.Load() >= q.capacity {
		q.pushFailedQIsFull.Add(1)
		return false
	}

	w := q.write.Load()
	q.storage[w] = v
	q.commitPush(q.advance(w, 1), 1)
	return true
}

// PushSlice stores values in order until the queue is full and returns
// how many were stored. A result smaller than len(values) means the tail
// of values was rejected; elements already in the queue are untouched.
// Must be called from the single producer goroutine.
func (q *Queue[T]) PushSlice(values []T) int {
	q.enterPush()
	defer q.leavePush()

	q.pushAttempts.Add(1)
	n := uint64(len(values))
	if free := q.capacity - q.count.Load(); n > free {
		n = free
		q.pushFailedQIsFull.Add(1)
	}
	if n == 0 {
		return 0
	}

	w := q.write.Load()
	first := min(n, uint64(len(q.storage))-w)
	copy(q.storage[w:], values[:first])
	copy(q.storage, values[first:n])

	q.commitPush(q.advance(w, n), n)
	return int(n)
}

// PushMany stores elements pulled from seq until seq ends or the queue is
// full, and returns how many were stored. Pulling stops as soon as the
// last free slot is taken, so no element is pulled without being stored.
// A call on a full queue pulls nothing and counts as a full-queue failure.
// Must be called from the single producer goroutine.
func (q *Queue[T]) PushMany(seq iter.Seq[T]) int {
	q.enterPush()
	defer q.leavePush()

	q.pushAttempts.Add(1)
	size := q.count.Load()
	if size >= q.capacity {
		q.pushFailedQIsFull.Add(1)
		return 0
	}

	w := q.write.Load()
	var pushed uint64
	for v := range seq {
		q.storage[w] = v
		w = q.advance(w, 1)
		pushed++
		if size+pushed == q.capacity {
			break
		}
	}

	q.commitPush(w, pushed)
	return int(pushed)
}

// Pop removes the front element without returning it.
// Returns false if the queue is empty.
// Must be called from the single consumer goroutine.
func (q *Queue[T]) Pop() bool {
	q.enterPop()
	defer q.leavePop()

	return q.pop()
}

func (q *Queue[T]) pop() bool {
	q.popAttempts.Add(1)
	if q.count.Load() == 0 {
		q.popFailedQIsEmpty.Add(1)
		return false
	}

	r := q.read.Load()
	if q.zeroOnPop {
		var zero T
		q.storage[r] = zero
	}
	q.read.Store(q.advance(r, 1))
	q.release(1)
	return true
}

// PopMany removes up to n front elements in one step and returns how many
// were removed. n is clamped to the current size.
// Must be called from the single consumer goroutine.
func (q *Queue[T]) PopMany(n int) int {
	q.enterPop()
	defer q.leavePop()

	return q.popMany(n)
}

func (q *Queue[T]) popMany(n int) int {
	if n <= 0 {
		return 0
	}

	q.popAttempts.Add(1)
	k := min(uint64(n), q.count.Load())
	if k == 0 {
		q.popFailedQIsEmpty.Add(1)
		return 0
	}

	r := q.read.Load()
	if q.zeroOnPop {
		q.zero(r, k)
	}
	q.read.Store(q.advance(r, k))
	q.release(k)
	return int(k)
}

// Peek returns a copy of the front element without removing it.
// On an empty queue it returns whatever the front slot holds: the zero
// value before the first push, a stale element afterwards. Check IsEmpty
// or use PeekAndPop when that matters.
func (q *Queue[T]) Peek() T {
	return q.storage[q.read.Load()]
}

// PeekAndPop copies the front element into out and removes it.
// If the queue is empty, out is left untouched and false is returned.
// Must be called from the single consumer goroutine.
func (q *Queue[T]) PeekAndPop(out *T) bool {
	q.enterPop()
	defer q.leavePop()

	if q.count.Load() == 0 {
		q.popAttempts.Add(1)
		q.popFailedQIsEmpty.Add(1)
		return false
	}

	*out = q.storage[q.read.Load()]
	return q.pop()
}

// Clear drops every element by collapsing the read index onto the write
// index. Storage is not zeroed unless WithZeroOnPop is set.
// Must not run concurrently with a push.
func (q *Queue[T]) Clear() {
	q.enterPop()
	defer q.leavePop()

	q.lock.Lock()
	defer q.lock.Unlock()

	if q.zeroOnPop {
		q.zero(q.read.Load(), q.count.Load())
	}
	q.count.Store(0)
	q.read.Store(q.write.Load())
	q.clears.Add(1)
}

// MoveTo moves as many elements as dst accepts from the front of q to dst,
// preserving order, and returns how many were moved. dst may have any
// capacity and locking policy. Elements are pushed into dst first and
// then popped from q, exactly as many as dst accepted.
//
// Moving a queue into itself is a no-op.
func (q *Queue[T]) MoveTo(dst Sink[T]) int {
	if d, ok := dst.(*Queue[T]); ok && d == q {
		return 0
	}

	accepted := dst.PushMany(q.All())
	moved := q.PopMany(accepted)
	q.moved.Add(uint64(moved))
	return moved
}

// Capacity returns the fixed queue capacity, in elements.
func (q *Queue[T]) Capacity() int {
	return int(q.capacity)
}

// CapacityBytes returns the fixed queue capacity, in bytes of element
// storage. The headroom slot is not counted.
func (q *Queue[T]) CapacityBytes() uintptr {
	var zero T
	return uintptr(q.capacity) * unsafe.Sizeof(zero)
}

// Size returns the number of elements currently stored.
func (q *Queue[T]) Size() int {
	return int(q.count.Load())
}

// FreeSpace returns how many more elements the queue accepts right now.
func (q *Queue[T]) FreeSpace() int {
	return int(q.capacity - q.count.Load())
}

// IsEmpty reports whether the queue holds no elements.
func (q *Queue[T]) IsEmpty() bool {
	return q.count.Load() == 0
}

// IsFull reports whether the queue holds capacity elements.
func (q *Queue[T]) IsFull() bool {
	return q.count.Load() >= q.capacity
}
