package sigflow

import (
	"github.com/AnatoleLucet/sigflow/internal"
	"github.com/AnatoleLucet/sigflow/internal/keyed"
)

var (
	// ErrInfiniteLoop is panicked when a flush or a render effect keeps re-triggering itself.
	ErrInfiniteLoop = internal.ErrInfiniteLoop

	// ErrCleanup wraps a panic recovered while tearing a frame down. Those are logged, not returned.
	ErrCleanup = internal.ErrCleanup

	// ErrDestroy wraps a panic recovered from a WithDestroy callback.
	ErrDestroy = keyed.ErrDestroy
)
