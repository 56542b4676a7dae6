package sigflow

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputed(t *testing.T) {
	t.Run("derives value from signal", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		double := NewComputed(func() int {
			log = append(log, "doubling")
			return count.Read() * 2
		})
		plustwo := NewComputed(func() int {
			log = append(log, "adding")
			return double.Read() + 2
		})

		assert.Equal(t, 1, count.Read())
		assert.Equal(t, 2, double.Read())
		assert.Equal(t, 4, plustwo.Read())

		count.Write(10)
		assert.Equal(t, 10, count.Read())
		assert.Equal(t, 20, double.Read())
		assert.Equal(t, 22, plustwo.Read())

		assert.Equal(t, []string{
			"doubling",
			"adding",
			"doubling",
			"adding",
		}, log)
	})

	t.Run("is lazy", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		double := NewComputed(func() int {
			log = append(log, "doubling")
			return count.Read() * 2
		})

		count.Write(2)
		count.Write(3)
		assert.Empty(t, log)

		assert.Equal(t, 6, double.Peek())
		assert.Equal(t, 6, double.Read())
		assert.Equal(t, []string{"doubling"}, log)
	})

	t.Run("does not propagate when value unchanged", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		a := NewComputed(func() int {
			log = append(log, "running a")
			return count.Read() * 0 // always returns 0
		})
		b := NewComputed(func() int {
			log = append(log, "running b")
			return a.Read() + 1
		})

		a.Read()
		b.Read()

		count.Write(10) // should recompute a but not b since a's value didn't change
		assert.Equal(t, 1, b.Read())

		assert.Equal(t, []string{
			"running a",
			"running b",
			"running a",
		}, log)
	})

	t.Run("equality cutoff skips effects", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		parity := NewComputed(func() int { return count.Read() % 2 })

		NewEffect(func(onCleanup func(func())) {
			log = append(log, fmt.Sprintf("parity %d", parity.Read()))
		})

		count.Write(3)
		count.Write(4)

		assert.Equal(t, []string{
			"parity 1",
			"parity 0",
		}, log)
	})

	t.Run("custom equality", func(t *testing.T) {
		runs := 0

		words := NewSignal([]string{"a"})
		sized := NewComputed(func() []string { return words.Read() }, WithEqual(func(a, b []string) bool {
			return len(a) == len(b)
		}))

		NewEffect(func(onCleanup func(func())) {
			sized.Read()
			runs++
		})

		words.Write([]string{"b"})
		words.Write([]string{"b", "c"})

		assert.Equal(t, 2, runs)
	})
}
