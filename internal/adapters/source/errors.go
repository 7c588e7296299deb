package source

import "errors"

// Sentinel kinds for source errors.
var (
	// ErrMissingSource means a required table is absent. Fatal to the run;
	// no partial output is produced.
	ErrMissingSource = errors.New("required source table missing")
)
