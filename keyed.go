package sigflow

import (
	"github.com/AnatoleLucet/sigflow/internal"
	"github.com/AnatoleLucet/sigflow/internal/keyed"
)

type keyedConfig[U any] struct {
	destroy func(U)
}

type KeyedOption[U any] func(*keyedConfig[U])

// WithDestroy is called once for every mapped value whose element left the sequence.
func WithDestroy[U any](fn func(U)) KeyedOption[U] {
	return func(c *keyedConfig[U]) {
		c.destroy = fn
	}
}

// MapKeyed maps a reactive slice, calling mapFn once per element for as long as it stays in the slice.
// Elements are their own key. See MapKeyedBy.
func MapKeyed[T comparable, U any](source func() []T, mapFn func(item T, index *Signal[int]) U, opts ...KeyedOption[U]) *Computed[[]U] {
	return MapKeyedBy(source, keyed.Identity[T], mapFn, opts...)
}

// MapKeyedBy maps a reactive slice, matching elements across changes by key.
//
// mapFn runs untracked and outside of any effect, once per new element. Its index signal
// is written when the element moves. Elements sharing a key are matched in order.
// The returned computed notifies its readers on every change of source.
//
// When created inside an effect or an owner, every mapped value is destroyed with it.
func MapKeyedBy[T any, K comparable, U any](source func() []T, key func(T) K, mapFn func(item T, index *Signal[int]) U, opts ...KeyedOption[U]) *Computed[[]U] {
	var cfg keyedConfig[U]
	for _, opt := range opts {
		opt(&cfg)
	}

	rt := internal.GetRuntime()

	r := keyed.New(keyed.Config[T, K, U, *Signal[int]]{
		Key:      key,
		Map:      mapFn,
		NewIndex: func(i int) *Signal[int] { return NewSignal(i) },
		SetIndex: func(s *Signal[int], i int) { s.Write(i) },
		Destroy:  cfg.destroy,
	})

	rt.OnCleanup(func() {
		rt.Untrack(r.Reset)
	})

	return newComputed(func() []U {
		items := source()

		var mapped []U
		rt.Untrack(func() {
			// index writes of one pass notify render effects once
			rt.Batch(func() {
				rt.Detach(func() {
					mapped = r.Update(items)
				})
			})
		})

		s := r.Stats()
		internal.GetConfig().Metrics.KeyedOps(s.Created, s.Reused, s.Moved, s.Destroyed)

		return mapped
	}, internal.NeverEqual)
}
