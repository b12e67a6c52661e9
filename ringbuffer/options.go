package ringbuffer

// Option configures a Queue at construction time.
type Option func(*queueOptions)

type queueOptions struct {
	locker    Locker
	zeroOnPop bool
	spscGuard bool
}

// WithLocker sets the locking policy guarding the element counter.
// The Locker is owned by the queue from then on. A nil Locker keeps the
// default NopLocker.
func WithLocker(l Locker) Option {
	return func(opts *queueOptions) {
		if l != nil {
			opts.locker = l
		}
	}
}

// WithZeroOnPop makes Pop, PopMany and Clear overwrite released slots with
// the zero value, so that memory referenced by popped elements can be
// garbage collected before the slot is reused. PopMany and Clear become
// O(n) in the number of released elements.
func WithZeroOnPop() Option {
	return func(opts *queueOptions) {
		opts.zeroOnPop = true
	}
}

// WithSPSCGuard enables runtime detection of SPSC contract violations:
// a push that overlaps another push, or a pop that overlaps another pop,
// panics. Costs one CAS per call.
func WithSPSCGuard() Option {
	return func(opts *queueOptions) {
		opts.spscGuard = true
	}
}

func applyOptions(options ...Option) *queueOptions {
	opts := &queueOptions{
		locker: NopLocker{},
	}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	return opts
}
