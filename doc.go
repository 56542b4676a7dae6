// Package sigflow is a fine-grained reactive core: signals, lazy computeds and effects
// whose runs own the effects they create.
//
// Every run of an effect opens a Frame. Effects created during that run are its children,
// destroyed (children first, then the run's cleanups) before the next run or when the
// parent is destroyed. A child tracks its own dependencies, so it can re-run without its
// parent.
//
// NewEffect re-runs once the write or Batch that changed a dependency completes.
// NewRenderEffect re-runs synchronously inside the write, and once at the end of a Batch
// however many times it was triggered in it.
//
// MapKeyed and MapKeyedBy derive a slice from a reactive one, mapping each element once
// for as long as its key stays in the slice.
//
// A reactive graph belongs to the goroutine that created it.
package sigflow
