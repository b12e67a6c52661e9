// Package staticvec implements a variable-length sequence over a fixed
// backing array. Capacity is chosen once; nothing allocates afterwards and
// every operation that could run out of room or out of bounds reports it
// through a boolean or a count.
package staticvec

import (
	"iter"
	"unsafe"
)

// Vector is a sequence of at most Capacity elements.
type Vector[T any] struct {
	size    int
	storage []T
}

// New creates an empty vector holding at most capacity elements.
// Capacity must be > 0.
func New[T any](capacity int) *Vector[T] {
	if capacity <= 0 {
		panic("capacity must be > 0")
	}

	return &Vector[T]{storage: make([]T, capacity)}
}

// NewWithStorage creates an empty vector on top of caller-provided storage;
// its capacity is len(storage).
func NewWithStorage[T any](storage []T) *Vector[T] {
	if len(storage) == 0 {
		panic("capacity must be > 0")
	}

	return &Vector[T]{storage: storage}
}

// Append adds e at the end. Returns false if the vector is full.
func (v *Vector[T]) Append(e T) bool {
	if v.size >= len(v.storage) {
		return false
	}

	v.storage[v.size] = e
	v.size++
	return true
}

// Insert places e at index, shifting later elements one position right.
// An index at or past the end appends. Returns false if the vector is full.
func (v *Vector[T]) Insert(index int, e T) bool {
	if v.size >= len(v.storage) {
		return false
	}

	if index < 0 {
		index = 0
	}
	if index >= v.size {
		v.storage[v.size] = e
		v.size++
		return true
	}

	copy(v.storage[index+1:v.size+1], v.storage[index:v.size])
	v.storage[index] = e
	v.size++
	return true
}

// RemoveIndex deletes the element at index, shifting later elements one
// position left. Returns false if index is out of range.
func (v *Vector[T]) RemoveIndex(index int) bool {
	if index < 0 || index >= v.size {
		return false
	}

	copy(v.storage[index:v.size-1], v.storage[index+1:v.size])
	v.size--

	var zero T
	v.storage[v.size] = zero
	return true
}

// RemoveFunc deletes every element for which match returns true, keeping
// the order of the others, and returns how many were removed.
func (v *Vector[T]) RemoveFunc(match func(T) bool) int {
	w := 0
	for r := 0; r < v.size; r++ {
		if match(v.storage[r]) {
			continue
		}
		if w != r {
			v.storage[w] = v.storage[r]
		}
		w++
	}

	removed := v.size - w
	clear(v.storage[w:v.size])
	v.size = w
	return removed
}

// RemoveValue deletes every element equal to value and returns how many
// were removed.
func RemoveValue[T comparable](v *Vector[T], value T) int {
	return v.RemoveFunc(func(e T) bool { return e == value })
}

// At returns the element at index. ok is false if index is out of range.
func (v *Vector[T]) At(index int) (e T, ok bool) {
	if index < 0 || index >= v.size {
		return e, false
	}
	return v.storage[index], true
}

// Set overwrites the element at index. Returns false if index is out of
// range; Set never grows the vector.
func (v *Vector[T]) Set(index int, e T) bool {
	if index < 0 || index >= v.size {
		return false
	}
	v.storage[index] = e
	return true
}

// Clear removes every element. Released slots are zeroed so they do not
// keep referenced memory alive.
func (v *Vector[T]) Clear() {
	clear(v.storage[:v.size])
	v.size = 0
}

// CopyFrom replaces the contents of v with the first elements of other,
// as many as fit, and returns how many were copied.
func (v *Vector[T]) CopyFrom(other *Vector[T]) int {
	if other == v {
		return v.size
	}

	n := copy(v.storage, other.storage[:other.size])
	if n < v.size {
		clear(v.storage[n:v.size])
	}
	v.size = n
	return n
}

// Slice returns the live elements. The slice aliases the vector storage
// and is valid until the next mutation.
func (v *Vector[T]) Slice() []T {
	return v.storage[:v.size:v.size]
}

// All iterates over index/element pairs from front to back.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, v.storage[i]) {
				return
			}
		}
	}
}

// Backward iterates over index/element pairs from back to front.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.size - 1; i >= 0; i-- {
			if !yield(i, v.storage[i]) {
				return
			}
		}
	}
}

// Size returns the number of elements.
func (v *Vector[T]) Size() int { return v.size }

// Capacity returns the maximum number of elements.
func (v *Vector[T]) Capacity() int { return len(v.storage) }

// CapacityBytes returns the size of the backing array in bytes.
func (v *Vector[T]) CapacityBytes() uintptr {
	var zero T
	return uintptr(len(v.storage)) * unsafe.Sizeof(zero)
}

// IsEmpty reports whether the vector has no elements.
func (v *Vector[T]) IsEmpty() bool { return v.size == 0 }

// IsFull reports whether the vector holds Capacity elements.
func (v *Vector[T]) IsFull() bool { return v.size == len(v.storage) }
