package repository

import "errors"

// Sentinel kinds for summary store errors.
var (
	ErrNotFound = errors.New("identity not found")
)
