package internal

import (
	"reflect"
	"slices"
)

// EqualFunc reports whether two values are equal. Writes of an equal value are dropped.
type EqualFunc func(a, b any) bool

type Signal struct {
	rt *Runtime

	value   any
	version uint64
	equal   EqualFunc

	subs []*Computation

	// set when the signal holds the output of a computed
	producer *Computation
}

func (r *Runtime) NewSignal(initial any, equal EqualFunc) *Signal {
	if equal == nil {
		equal = IsEqual
	}

	return &Signal{
		rt:    r,
		value: initial,
		equal: equal,
	}
}

// Read the current value, tracking the dependency if within a reactive context.
func (s *Signal) Read() any {
	s.refresh()
	s.rt.tracker.Track(s)

	return s.value
}

// Peek reads the current value without tracking.
func (s *Signal) Peek() any {
	s.refresh()

	return s.value
}

func (s *Signal) Write(v any) {
	if s.producer != nil {
		panic("sigflow: cannot write to a computed")
	}

	if s.equal(s.value, v) {
		return
	}

	s.value = v
	s.version++

	s.rt.propagate(s)
}

func (s *Signal) Version() uint64 {
	s.refresh()

	return s.version
}

func (s *Signal) refresh() {
	if s.producer != nil {
		s.producer.refresh()
	}
}

func (s *Signal) addSub(c *Computation) {
	if !slices.Contains(s.subs, c) {
		s.subs = append(s.subs, c)
	}
}

func (s *Signal) removeSub(c *Computation) {
	if i := slices.Index(s.subs, c); i >= 0 {
		s.subs = slices.Delete(s.subs, i, i+1)
	}
}

// propagate marks computeds downstream of s dirty and notifies the effects depending on them.
func (r *Runtime) propagate(s *Signal) {
	var notified []*Computation
	r.markSubs(s, &notified)

	for _, c := range notified {
		c.notify()
	}

	r.Schedule()
}

func (r *Runtime) markSubs(s *Signal, notified *[]*Computation) {
	// clonning to avoid mutation during iteration
	for _, sub := range slices.Clone(s.subs) {
		if sub.out != nil {
			// a dirty computed already notified its own dependents
			if !sub.dirty {
				sub.dirty = true
				r.markSubs(sub.out, notified)
			}
			continue
		}

		if !slices.Contains(*notified, sub) {
			*notified = append(*notified, sub)
		}
	}
}

// IsEqual compares with == when the dynamic values are comparable, and reports false otherwise.
func IsEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() {
		return false
	}

	return va.Equal(vb)
}

// NeverEqual makes every write propagate.
func NeverEqual(a, b any) bool {
	return false
}
