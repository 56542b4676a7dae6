package keyed

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tracker struct {
	at    int
	moves int
}

type entry struct {
	id    int
	item  string
	index *tracker
}

type harness struct {
	r         *Reconciler[string, string, *entry, *tracker]
	next      int
	created   []string
	destroyed []string
}

func newHarness(destroy func(*entry)) *harness {
	h := &harness{}

	h.r = New(Config[string, string, *entry, *tracker]{
		Key: Identity[string],
		Map: func(item string, index *tracker) *entry {
			h.next++
			h.created = append(h.created, item)
			return &entry{id: h.next, item: item, index: index}
		},
		NewIndex: func(i int) *tracker { return &tracker{at: i} },
		SetIndex: func(t *tracker, i int) {
			t.at = i
			t.moves++
		},
		Destroy: func(e *entry) {
			h.destroyed = append(h.destroyed, e.item)
			if destroy != nil {
				destroy(e)
			}
		},
	})

	return h
}

func itemsOf(entries []*entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.item
	}
	return out
}

func TestReconciler(t *testing.T) {
	t.Run("first run maps in order", func(t *testing.T) {
		h := newHarness(nil)

		out := h.r.Update([]string{"a", "b", "c"})

		assert.Equal(t, []string{"a", "b", "c"}, itemsOf(out))
		assert.Equal(t, []string{"a", "b", "c"}, h.created)
		assert.Equal(t, Stats{Created: 3}, h.r.Stats())
		assert.Equal(t, 3, h.r.Len())
	})

	t.Run("prefix keeps trackers untouched", func(t *testing.T) {
		h := newHarness(nil)
		before := h.r.Update([]string{"a", "b", "c", "d", "e"})

		after := h.r.Update([]string{"a", "x", "y", "e"})

		assert.Same(t, before[0], after[0])
		assert.Same(t, before[4], after[3])
		assert.Equal(t, 0, before[0].index.moves)
		assert.Equal(t, 1, before[4].index.moves)
		assert.Equal(t, 3, before[4].index.at)
		assert.Equal(t, Stats{Created: 2, Reused: 2, Moved: 1, Destroyed: 3}, h.r.Stats())
	})

	t.Run("unchanged update is a no-op", func(t *testing.T) {
		h := newHarness(nil)
		h.r.Update([]string{"a", "b"})

		h.r.Update([]string{"a", "b"})

		assert.Equal(t, Stats{Reused: 2}, h.r.Stats())
		assert.Len(t, h.created, 2)
	})

	t.Run("duplicate keys", func(t *testing.T) {
		h := newHarness(nil)
		before := h.r.Update([]string{"a", "b", "a", "b"})

		after := h.r.Update([]string{"b", "a", "a"})

		// the first old "a" pairs with the first new one
		assert.Same(t, before[0], after[1])
		assert.Same(t, before[2], after[2])
		assert.Same(t, before[1], after[0])
		assert.Equal(t, []string{"b"}, h.destroyed)
	})

	t.Run("reset destroys everything", func(t *testing.T) {
		h := newHarness(nil)
		h.r.Update([]string{"a", "b"})

		h.r.Reset()

		assert.Equal(t, []string{"a", "b"}, h.destroyed)
		assert.Equal(t, 0, h.r.Len())
		assert.Empty(t, h.r.Update(nil))
	})

	t.Run("destroy failures are combined after commit", func(t *testing.T) {
		h := newHarness(func(e *entry) {
			if e.item != "c" {
				panic("boom " + e.item)
			}
		})
		h.r.Update([]string{"a", "b", "c", "d"})

		var recovered any
		func() {
			defer func() { recovered = recover() }()
			h.r.Update([]string{"d"})
		}()

		err, ok := recovered.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrDestroy)
		assert.ErrorContains(t, err, "boom a")
		assert.ErrorContains(t, err, "boom b")
		assert.Equal(t, []string{"a", "b", "c"}, h.destroyed)

		assert.Equal(t, 1, h.r.Len())
		assert.Equal(t, 0, h.r.Index(0).at)
	})

	t.Run("map panics propagate", func(t *testing.T) {
		r := New(Config[int, int, int, int]{
			Key:      Identity[int],
			Map:      func(item int, _ int) int { panic("nope") },
			NewIndex: func(i int) int { return i },
			SetIndex: func(int, int) {},
		})

		assert.PanicsWithValue(t, "nope", func() { r.Update([]int{1}) })
	})
}

func TestReconcilerRandomized(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	alphabet := []string{"a", "b", "c", "d", "e", "f", "g"}

	randomItems := func() []string {
		n := rng.IntN(9)
		out := make([]string, n)
		for i := range out {
			out[i] = alphabet[rng.IntN(len(alphabet))]
		}
		return out
	}

	h := newHarness(nil)
	var prev []*entry

	for step := range 500 {
		items := randomItems()
		out := h.r.Update(items)

		if diff := cmp.Diff(items, itemsOf(out)); diff != "" {
			t.Fatalf("step %d: mapped items mismatch (-want +got):\n%s", step, diff)
		}
		require.Len(t, out, len(items), "step %d", step)

		// trackers hold current positions
		for i, e := range out {
			require.Equal(t, i, e.index.at, "step %d: tracker of %q", step, e.item)
		}

		// every key kept its entries up to the multiset intersection
		oldCount, newCount := map[string]int{}, map[string]int{}
		for _, e := range prev {
			oldCount[e.item]++
		}
		for _, item := range items {
			newCount[item]++
		}

		wantReused := 0
		for k, n := range newCount {
			wantReused += min(n, oldCount[k])
		}

		prevIDs := map[int]bool{}
		for _, e := range prev {
			prevIDs[e.id] = true
		}
		reused := 0
		for _, e := range out {
			if prevIDs[e.id] {
				reused++
			}
		}

		stats := h.r.Stats()
		require.Equal(t, wantReused, reused, "step %d: %v -> %v", step, itemsOf(prev), items)
		require.Equal(t, wantReused, stats.Reused, "step %d", step)
		require.Equal(t, len(items)-wantReused, stats.Created, "step %d", step)
		require.Equal(t, len(prev)-wantReused, stats.Destroyed, "step %d", step)

		prev = out
	}
}
