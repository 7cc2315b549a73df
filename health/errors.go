package health

import "errors"

var (
	// ErrCheckFailed indicates a health check reported a failure.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout indicates a health check did not finish in time.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckPanicked indicates a health check panicked while performing.
	ErrCheckPanicked = errors.New("health: check panicked")

	// ErrMissingCollaborator indicates a check needs a collaborator it was not given.
	ErrMissingCollaborator = errors.New("health: required collaborator not configured")

	// ErrNilCheck indicates a nil Check was handed to Run.
	ErrNilCheck = errors.New("health: check is nil")
)
