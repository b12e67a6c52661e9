package ringbuffer

import "iter"

// Iterator walks the elements that were live when it was created, oldest
// first. It holds the queue storage plus a start and an end position and
// wraps from the last physical slot back to slot 0.
//
// An Iterator is single pass. Pushes do not disturb it; pops and clears
// performed after its creation make it yield stale data, so iterate from
// the consumer goroutine.
type Iterator[T any] struct {
	storage []T
	cur     uint64
	end     uint64
	started bool
	done    bool
}

// Snapshot returns an iterator over the counted window [read, read+Size()).
// Elements a concurrent producer has written but not yet counted are not
// part of it.
func (q *Queue[T]) Snapshot() Iterator[T] {
	n := q.count.Load()
	r := q.read.Load()
	return Iterator[T]{
		storage: q.storage,
		cur:     r,
		end:     q.advance(r, n),
	}
}

// Next advances the iterator and reports whether Value holds an element.
func (it *Iterator[T]) Next() bool {
	if it.done {
		return false
	}

	if it.started {
		it.cur++
		if it.cur >= uint64(len(it.storage)) {
			it.cur = 0
		}
	}
	it.started = true

	if it.cur == it.end {
		it.done = true
		return false
	}
	return true
}

// Value returns the element at the current position.
func (it *Iterator[T]) Value() T {
	return it.storage[it.cur]
}

// All returns the elements of a snapshot taken now as a sequence.
// Like the Iterator backing it, the sequence can be ranged over once.
func (q *Queue[T]) All() iter.Seq[T] {
	it := q.Snapshot()
	return func(yield func(T) bool) {
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}
