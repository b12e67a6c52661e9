package ringbuffer

// Stats is a point-in-time copy of the queue counters.
type Stats struct {
	PushAttempts      uint64
	Pushed            uint64
	PushFailedQIsFull uint64 // push calls that rejected at least one element

	PopAttempts       uint64
	Popped            uint64
	PopFailedQIsEmpty uint64

	Clears uint64
	Moved  uint64 // elements handed to another queue by MoveTo
}

// Stats retrieves the current statistics of the queue.
func (q *Queue[T]) Stats() Stats {
	return Stats{
		PushAttempts:      q.pushAttempts.Load(),
		Pushed:            q.pushed.Load(),
		PushFailedQIsFull: q.pushFailedQIsFull.Load(),
		PopAttempts:       q.popAttempts.Load(),
		Popped:            q.popped.Load(),
		PopFailedQIsEmpty: q.popFailedQIsEmpty.Load(),
		Clears:            q.clears.Load(),
		Moved:             q.moved.Load(),
	}
}

// ResetStats sets every counter back to zero.
func (q *Queue[T]) ResetStats() {
	q.pushAttempts.Store(0)
	q.pushed.Store(0)
	q.pushFailedQIsFull.Store(0)
	q.popAttempts.Store(0)
	q.popped.Store(0)
	q.popFailedQIsEmpty.Store(0)
	q.clears.Store(0)
	q.moved.Store(0)
}
