package discovery

import "errors"

var (
	// ErrHandlerFailed indicates a subscribed handler returned an error or panicked.
	ErrHandlerFailed = errors.New("discovery: handler failed")

	// ErrUnknownEvent indicates an event type the bus does not route.
	ErrUnknownEvent = errors.New("discovery: unknown event")

	// ErrNilPlugin indicates a nil plugin was subscribed.
	ErrNilPlugin = errors.New("discovery: plugin is nil")
)
