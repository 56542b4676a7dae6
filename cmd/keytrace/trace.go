package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/AnatoleLucet/sigflow"
)

type traceOptions struct {
	NoColor bool
	Summary bool
}

type totals struct {
	created   int
	moved     int
	destroyed int
}

// entry is the mapped value of one element.
type entry struct {
	key   string
	index *sigflow.Signal[int]
	watch *sigflow.EffectRef
}

type tracer struct {
	w io.Writer

	create  *color.Color
	move    *color.Color
	destroy *color.Color
	step    *color.Color

	totals totals
	muted  bool
}

func newTracer(w io.Writer, noColor bool) *tracer {
	t := &tracer{
		w:       w,
		create:  color.New(color.FgGreen),
		move:    color.New(color.FgYellow),
		destroy: color.New(color.FgRed),
		step:    color.New(color.Bold),
	}

	if noColor {
		for _, c := range []*color.Color{t.create, t.move, t.destroy, t.step} {
			c.DisableColor()
		}
	}

	return t
}

func (t *tracer) event(c *color.Color, verb, format string, args ...any) {
	if t.muted {
		return
	}

	fmt.Fprintf(t.w, "  %s %s\n", c.Sprint(verb), fmt.Sprintf(format, args...))
}

// Trace replays script through a keyed mapping and writes one line per event.
func Trace(w io.Writer, script *Script, opts traceOptions) error {
	t := newTracer(w, opts.NoColor)

	owner := sigflow.NewOwner()
	defer func() {
		t.muted = true
		owner.Dispose()
	}()

	return owner.Run(func() error {
		source := sigflow.NewSignal(script.Steps[0])

		rows := sigflow.MapKeyedBy(source.Read, script.KeyOf, func(item any, index *sigflow.Signal[int]) *entry {
			e := &entry{key: script.KeyOf(item), index: index}

			t.totals.created++
			t.event(t.create, "create", "%s at %d", e.key, index.Peek())

			prev := index.Peek()
			e.watch = sigflow.NewRenderEffect(func(onCleanup func(func())) {
				at := index.Read()
				if at == prev {
					return
				}

				t.totals.moved++
				t.event(t.move, "move", "%s %d -> %d", e.key, prev, at)
				prev = at
			})

			return e
		}, sigflow.WithDestroy(func(e *entry) {
			e.watch.Destroy()

			t.totals.destroyed++
			t.event(t.destroy, "destroy", "%s", e.key)
		}))

		header := func(i int) {
			fmt.Fprintln(w, t.step.Sprintf("step %d", i))
		}

		var keys []string
		header(0)
		sigflow.NewEffect(func(onCleanup func(func())) {
			keys = keys[:0]
			for _, e := range rows.Read() {
				keys = append(keys, e.key)
			}
		})
		fmt.Fprintf(w, "  = [%s]\n", strings.Join(keys, " "))

		for i, step := range script.Steps[1:] {
			header(i + 1)
			source.Write(step)
			fmt.Fprintf(w, "  = [%s]\n", strings.Join(keys, " "))
		}

		if opts.Summary {
			fmt.Fprintf(w, "%d steps: %d created, %d moved, %d destroyed\n",
				len(script.Steps), t.totals.created, t.totals.moved, t.totals.destroyed)
		}

		return nil
	})
}
