// Package keyed reconciles successive snapshots of a sequence by key, reusing the
// value mapped for an element for as long as its key stays in the sequence.
package keyed

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/multierr"
)

// ErrDestroy wraps a value recovered from a destroy callback.
var ErrDestroy = errors.New("sigflow: destroy callback failed")

// Config wires a Reconciler. I is the type of the position tracker handed to Map.
type Config[T any, K comparable, U any, I any] struct {
	// Key identifies an element across snapshots. Duplicate keys are allowed.
	Key func(T) K

	// Map is called once per new element, with the tracker of its position.
	Map func(item T, index I) U

	// NewIndex creates a tracker holding i, SetIndex moves it.
	NewIndex func(i int) I
	SetIndex func(index I, i int)

	// Destroy is called once for every element leaving the sequence. Optional.
	Destroy func(U)
}

// Stats describes the last Update.
type Stats struct {
	Created   int
	Reused    int
	Moved     int
	Destroyed int
}

type Reconciler[T any, K comparable, U any, I any] struct {
	cfg Config[T, K, U, I]

	items   []T
	keys    []K
	mapped  []U
	indexes []I

	stats Stats
}

// Identity is the default key: the element itself.
func Identity[T comparable](item T) T {
	return item
}

func New[T any, K comparable, U any, I any](cfg Config[T, K, U, I]) *Reconciler[T, K, U, I] {
	return &Reconciler[T, K, U, I]{cfg: cfg}
}

// Update diffs items against the previous snapshot and returns the mapped sequence.
//
// Elements are matched by key: a common prefix and suffix are kept as is, the
// remaining old elements are matched through a key to new positions table, where
// repeated keys pair up in sequence order. Unmatched old elements are destroyed,
// unmatched new ones are mapped. Panics from Map propagate. Panics from Destroy are
// collected; every destroy still runs, the snapshot is committed, and the combined
// failure is then re-panicked.
func (r *Reconciler[T, K, U, I]) Update(items []T) []U {
	r.stats = Stats{}

	n := len(items)
	if n == 0 {
		var failures error
		if len(r.mapped) > 0 {
			removed := r.mapped
			r.commit(nil, nil, nil, nil)

			for _, u := range removed {
				failures = multierr.Append(failures, r.destroy(u))
			}
		}

		if failures != nil {
			panic(failures)
		}
		return []U{}
	}

	keys := make([]K, n)
	for j, item := range items {
		keys[j] = r.cfg.Key(item)
	}

	mapped := make([]U, n)
	indexes := make([]I, n)

	// first run, or the previous snapshot was empty
	if len(r.mapped) == 0 {
		for j, item := range items {
			mapped[j], indexes[j] = r.create(item, j)
		}

		r.commit(items, keys, mapped, indexes)
		return slices.Clone(mapped)
	}

	old := len(r.keys)

	// common prefix, positions unchanged
	start := 0
	for end := min(old, n); start < end && r.keys[start] == keys[start]; start++ {
		mapped[start] = r.mapped[start]
		indexes[start] = r.indexes[start]
		r.stats.Reused++
	}

	tempMapped := make([]U, n)
	tempIndexes := make([]I, n)
	from := make([]int, n) // old position of a reused element, -1 if none
	for j := range from {
		from[j] = -1
	}

	// common suffix, stashed at their new position
	end, newEnd := old-1, n-1
	for ; end >= start && newEnd >= start && r.keys[end] == keys[newEnd]; end, newEnd = end-1, newEnd-1 {
		tempMapped[newEnd] = r.mapped[end]
		tempIndexes[newEnd] = r.indexes[end]
		from[newEnd] = end
	}

	// key -> first new position in the dirty region, next chains repeated keys
	positions := make(map[K]int, newEnd-start+1)
	next := make([]int, newEnd+1)
	for j := newEnd; j >= start; j-- {
		k := keys[j]
		if i, ok := positions[k]; ok {
			next[j] = i
		} else {
			next[j] = -1
		}
		positions[k] = j
	}

	var failures error
	for i := start; i <= end; i++ {
		k := r.keys[i]

		if j, ok := positions[k]; ok && j != -1 {
			tempMapped[j] = r.mapped[i]
			tempIndexes[j] = r.indexes[i]
			from[j] = i
			positions[k] = next[j]
			continue
		}

		failures = multierr.Append(failures, r.destroy(r.mapped[i]))
	}

	for j := start; j < n; j++ {
		if from[j] == -1 {
			mapped[j], indexes[j] = r.create(items[j], j)
			continue
		}

		mapped[j] = tempMapped[j]
		indexes[j] = tempIndexes[j]
		r.stats.Reused++

		if from[j] != j {
			r.cfg.SetIndex(indexes[j], j)
			r.stats.Moved++
		}
	}

	r.commit(items, keys, mapped, indexes)

	if failures != nil {
		panic(failures)
	}
	return slices.Clone(mapped)
}

// Stats of the last Update.
func (r *Reconciler[T, K, U, I]) Stats() Stats {
	return r.stats
}

// Len returns the number of tracked elements.
func (r *Reconciler[T, K, U, I]) Len() int {
	return len(r.mapped)
}

// Index returns the tracker of the element at position i.
func (r *Reconciler[T, K, U, I]) Index(i int) I {
	return r.indexes[i]
}

// Reset destroys every tracked element and forgets the snapshot.
func (r *Reconciler[T, K, U, I]) Reset() {
	r.Update(nil)
}

func (r *Reconciler[T, K, U, I]) create(item T, j int) (U, I) {
	index := r.cfg.NewIndex(j)
	u := r.cfg.Map(item, index)
	r.stats.Created++

	return u, index
}

func (r *Reconciler[T, K, U, I]) destroy(u U) (err error) {
	r.stats.Destroyed++

	if r.cfg.Destroy == nil {
		return nil
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrDestroy, p)
		}
	}()

	r.cfg.Destroy(u)
	return nil
}

func (r *Reconciler[T, K, U, I]) commit(items []T, keys []K, mapped []U, indexes []I) {
	r.items = slices.Clone(items)
	r.keys = keys
	r.mapped = mapped
	r.indexes = indexes
}
