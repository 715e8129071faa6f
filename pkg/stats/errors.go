package stats

import "errors"

var (
	// ErrStorageUnavailable means the storage engine could not be loaded. The tracker is degraded
	// until it is initialized again.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrConnectionFailure means the database file could not be opened or created.
	// The tracker is degraded until it is initialized again.
	ErrConnectionFailure = errors.New("connection failure")

	// ErrQueryFailure means a single read or write failed. The tracker remains usable.
	ErrQueryFailure = errors.New("query failure")

	// ErrClosed means the tracker was closed, or never opened.
	ErrClosed = errors.New("tracker is closed")
)

// Result is the outcome of a tracker operation: the value handed to the caller,
// and the diagnostic explaining why the value is a default, if it is.
type Result[T any] struct {
	Value T
	Err   error
}

func ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}
