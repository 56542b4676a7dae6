package sigflow

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		count := NewSignal(0)
		assert.Equal(t, 0, count.Read())

		count.Write(10)
		assert.Equal(t, 10, count.Read())
	})

	t.Run("update", func(t *testing.T) {
		count := NewSignal(1)
		count.Update(func(n int) int { return n + 1 })

		assert.Equal(t, 2, count.Peek())
	})

	t.Run("zero values", func(t *testing.T) {
		err := NewSignal[error](nil)
		assert.Nil(t, err.Read())

		err.Write(errors.New("oops"))
		assert.EqualError(t, err.Read(), "oops")

		err.Write(nil)
		assert.Nil(t, err.Read())
	})

	t.Run("equal writes do not notify", func(t *testing.T) {
		log := []string{}

		name := NewSignal("a")
		NewEffect(func(onCleanup func(func())) {
			log = append(log, name.Read())
		})

		name.Write("a")
		name.Write("b")

		assert.Equal(t, []string{"a", "b"}, log)
	})

	t.Run("custom equality", func(t *testing.T) {
		log := []string{}

		name := NewSignal("a", WithEqual(strings.EqualFold))
		NewEffect(func(onCleanup func(func())) {
			log = append(log, name.Read())
		})

		name.Write("A")
		name.Write("b")

		assert.Equal(t, []string{"a", "b"}, log)
	})

	t.Run("never equal", func(t *testing.T) {
		log := []int{}

		count := NewSignal(1, WithNeverEqual[int]())
		NewEffect(func(onCleanup func(func())) {
			log = append(log, count.Read())
		})

		count.Write(1)

		assert.Equal(t, []int{1, 1}, log)
	})

	t.Run("peek does not track", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		NewEffect(func(onCleanup func(func())) {
			log = append(log, fmt.Sprintf("effect %d", count.Peek()))
		})

		count.Write(10)

		assert.Equal(t, []string{"effect 0"}, log)
	})

	t.Run("each goroutine has its own graph", func(t *testing.T) {
		done := make(chan []int)

		go func() {
			log := []int{}

			count := NewSignal(0)
			NewEffect(func(onCleanup func(func())) {
				log = append(log, count.Read())
			})
			count.Write(1)
			Release()

			done <- log
		}()

		assert.Equal(t, []int{0, 1}, <-done)
	})
}
