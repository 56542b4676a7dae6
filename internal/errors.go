package internal

import "errors"

var (
	// ErrInfiniteLoop is raised when a flush or a render effect keeps re-triggering itself.
	ErrInfiniteLoop = errors.New("sigflow: potential infinite loop detected")

	// ErrCleanup wraps a value recovered from a cleanup or a child destroy during frame teardown.
	ErrCleanup = errors.New("sigflow: teardown failed")
)
