package identity

import "errors"

// Sentinel kinds for resolution errors.
var (
	// ErrAllocationExhausted means the allocation scan limit was exceeded,
	// which points at a corrupted used-id set upstream.
	ErrAllocationExhausted = errors.New("identifier allocation exhausted")

	// ErrEmptyMatchKey means a caller tried to resolve an unnamed record.
	ErrEmptyMatchKey = errors.New("empty match key")
)
