package dao

import "errors"

// Common, reusable DAO errors.  Using sentinel variables allows callers to
// reliably detect error conditions via errors.Is/As instead of brittle string
// comparisons.

var (
	// ErrNotFound is returned when the requested process does not exist in
	// the repository.
	ErrNotFound = errors.New("dao: process not found")

	// ErrAlreadyExists is returned when inserting a process whose PID is
	// already present.  The existing entry is left untouched.
	ErrAlreadyExists = errors.New("dao: process already exists")
)
