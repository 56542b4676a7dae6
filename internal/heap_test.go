package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityHeap(t *testing.T) {
	r := NewRuntime()
	node := func(depth int) *Computation {
		return r.NewComputation(EffectUser, r.Root(), depth, func(func(func())) {})
	}

	drain := func(h *PriorityHeap) []*Computation {
		out := []*Computation{}
		h.Drain(func(c *Computation) { out = append(out, c) })
		return out
	}

	t.Run("shallowest first, insertion order within a depth", func(t *testing.T) {
		h := NewHeap()
		a, b, c, d := node(2), node(0), node(2), node(1)

		for _, n := range []*Computation{a, b, c, d} {
			h.Insert(n)
		}

		assert.Equal(t, 4, h.Len())
		assert.Equal(t, []*Computation{b, d, a, c}, drain(h))
		assert.Equal(t, 0, h.Len())
	})

	t.Run("ignores duplicates and disposed nodes", func(t *testing.T) {
		h := NewHeap()
		a, b := node(0), node(0)
		b.disposed = true

		h.Insert(a)
		h.Insert(a)
		h.Insert(b)

		assert.Equal(t, []*Computation{a}, drain(h))
	})

	t.Run("remove", func(t *testing.T) {
		h := NewHeap()
		a, b, c := node(1), node(1), node(1)
		h.Insert(a)
		h.Insert(b)
		h.Insert(c)

		h.Remove(b)
		h.Remove(a)

		assert.Equal(t, []*Computation{c}, drain(h))
	})

	t.Run("grows past the initial depth", func(t *testing.T) {
		h := NewHeap()
		deep, shallow := node(40), node(3)

		h.Insert(deep)
		h.Insert(shallow)

		assert.Equal(t, []*Computation{shallow, deep}, drain(h))
	})

	t.Run("picks up shallower nodes inserted while draining", func(t *testing.T) {
		h := NewHeap()
		a, b, c := node(1), node(2), node(0)
		h.Insert(a)
		h.Insert(b)

		out := []*Computation{}
		h.Drain(func(n *Computation) {
			out = append(out, n)
			if n == a {
				h.Insert(c)
			}
		})

		assert.Equal(t, []*Computation{a, c, b}, out)
	})

	t.Run("clear", func(t *testing.T) {
		h := NewHeap()
		a := node(0)
		h.Insert(a)

		h.Clear()

		assert.Equal(t, 0, h.Len())
		assert.False(t, a.inHeap)
		assert.Empty(t, drain(h))
	})
}
