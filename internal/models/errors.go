package models

import "errors"

// Error kinds shared by the resolver, fetcher and snapshot builder.
// Callers classify failures with errors.Is.
var (
	// ErrTransport covers non-2xx responses and failed requests to either provider
	ErrTransport = errors.New("transport error")

	// ErrNotFound is returned when a search produced no candidates
	ErrNotFound = errors.New("location not found")

	// ErrDataIntegrity covers malformed payloads, misaligned series and unknown weather codes
	ErrDataIntegrity = errors.New("data integrity error")
)
