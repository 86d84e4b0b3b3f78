package domain

import "errors"

var (
	// ErrToolMissing is returned when the compiler under test is not present at
	// its configured path. No case is attempted when it occurs.
	ErrToolMissing = errors.New("compiler under test not found")
	// ErrCasesFailed is returned when at least one case did not pass.
	ErrCasesFailed = errors.New("one or more cases failed")
	// ErrUnknownCase is returned when a requested case is not registered.
	ErrUnknownCase = errors.New("unknown case")
	// ErrDuplicateCase is returned when two cases share a name.
	ErrDuplicateCase = errors.New("duplicate case")
)
