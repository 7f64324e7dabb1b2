package ui

// requestTracker tags each user-triggered action chain with a generation.
// Responses are applied only while no newer chain has completed, so a slow
// search can never overwrite the result of a later one.
type requestTracker struct {
	issued  uint64
	applied uint64
}

// next starts a new action chain and returns its generation
func (t *requestTracker) next() uint64 {
	t.issued++
	return t.issued
}

// stale reports whether a newer chain has already completed
func (t *requestTracker) stale(gen uint64) bool {
	return gen <= t.applied
}

// complete records gen as finished. It returns false, changing nothing, when gen is stale.
func (t *requestTracker) complete(gen uint64) bool {
	if t.stale(gen) {
		return false
	}
	t.applied = gen
	return true
}

// pending reports whether the newest chain is still in flight
func (t *requestTracker) pending() bool {
	return t.issued > t.applied
}
