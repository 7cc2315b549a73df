package runner

import "errors"

var (
	// ErrNotConfigured indicates the runner has no event dispatcher.
	ErrNotConfigured = errors.New("runner: no event dispatcher configured")

	// ErrDiscovery wraps failures while dispatching discovery events.
	ErrDiscovery = errors.New("runner: discovery failed")

	// ErrCache wraps report cache failures.
	ErrCache = errors.New("runner: report cache failed")
)
