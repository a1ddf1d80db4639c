// Package errors defines the failure kinds surfaced by the collaboration
// engines. Every engine operation fails with exactly one of these sentinels,
// possibly wrapped with context via fmt.Errorf and %w.
package errors

import "fmt"

var (
	// ErrNotFound means a referenced entity id does not exist in the project.
	ErrNotFound = fmt.Errorf("not found")
	// ErrInvalidReference means a dangling or self-referential link, e.g. a
	// reply pointing at a message outside the project.
	ErrInvalidReference = fmt.Errorf("invalid reference")
	// ErrForbidden means the acting participant lacks rights for the mutation.
	ErrForbidden = fmt.Errorf("forbidden")
	// ErrInvalidStatus means a malformed enum value, e.g. an unknown task
	// status or file category.
	ErrInvalidStatus = fmt.Errorf("invalid status")

	ErrWorkerPanic     = fmt.Errorf("worker panic")
	ErrEmptyWords      = fmt.Errorf("no words have been found")
	ErrInvalidPassword = fmt.Errorf("password does not meet complexity requirements")
)
