package efgsupport

// Option configures a support enumeration.
type Option func(e *enumerator)

// WithWorkers runs the branches of the first candidate loop on up to n
// goroutines. The result is identical to a sequential run. The oracle
// must be safe for concurrent use when n > 1.
func WithWorkers(n int) Option {
	return func(e *enumerator) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLimit stops the search once n supports have been accepted.
// The accepted supports are the first n a full run would produce.
func WithLimit(n int) Option {
	return func(e *enumerator) {
		if n > 0 {
			e.limit = n
		}
	}
}
