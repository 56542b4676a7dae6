package internal

// maxFlushRuns bounds the number of host effect runs a single flush may execute.
const maxFlushRuns = 100000

// Runtime holds the reactive state of one goroutine.
// Nodes keep a pointer to the runtime that created them, so a graph is confined to that goroutine.
type Runtime struct {
	heap    *PriorityHeap
	tracker *Tracker
	batcher *Batcher
	frames  *FrameStack
	settled *SettledQueue

	// ambient default owner, used when nothing else provides one
	root *Owner

	// number of effect creation runs in progress outside of a flush
	holding int

	flushing bool
}

func NewRuntime() *Runtime {
	r := &Runtime{
		heap:    NewHeap(),
		tracker: NewTracker(),
		batcher: NewBatcher(),
		frames:  NewFrameStack(),
		settled: NewSettledQueue(),
	}
	r.root = newOwner(r, nil)

	return r
}

func (r *Runtime) Root() *Owner { return r.root }

func (r *Runtime) Frames() *FrameStack { return r.frames }

func (r *Runtime) Tracker() *Tracker { return r.tracker }

// CurrentOwner returns the ambient owner, falling back to the runtime root.
func (r *Runtime) CurrentOwner() *Owner {
	if o := r.tracker.CurrentOwner(); o != nil {
		return o
	}

	return r.root
}

// Schedule flushes pending host effects unless a batch, a flush or an effect creation is in progress.
func (r *Runtime) Schedule() {
	if r.batcher.IsBatching() || r.flushing || r.holding > 0 {
		return
	}

	r.Flush()
}

// hold runs the first run of an effect. Effects notified meanwhile, the new one included,
// wait for it to return.
func (r *Runtime) hold(fn func()) {
	r.holding++
	defer func() {
		r.holding--
		r.Schedule()
	}()

	fn()
}

// Flush drains the effect heap, parents before children, then runs settled callbacks.
func (r *Runtime) Flush() {
	if r.flushing {
		return
	}

	func() {
		r.flushing = true
		defer func() { r.flushing = false }()

		runs := 0
		r.heap.Drain(func(c *Computation) {
			runs++
			if runs > maxFlushRuns {
				r.heap.Clear()
				panic(ErrInfiniteLoop)
			}

			c.runIfChanged()
		})
	}()

	r.settled.Run()
}

// Batch runs fn, deferring render effect runs and the host flush until the outermost batch ends.
func (r *Runtime) Batch(fn func()) {
	r.batcher.Batch(fn, r.endBatch)
}

func (r *Runtime) IsBatching() bool {
	return r.batcher.IsBatching()
}

func (r *Runtime) endBatch() {
	pending := r.batcher.Drain()
	GetConfig().Metrics.BatchFlush(len(pending))

	// every pending effect runs, the first panic is raised once the flush is done
	var failure any
	for _, e := range pending {
		func() {
			defer func() {
				if rec := recover(); rec != nil && failure == nil {
					failure = rec
				}
			}()

			e.run(true)
		}()
	}

	r.Schedule()

	if failure != nil {
		panic(failure)
	}
}

func (r *Runtime) Untrack(fn func()) {
	r.tracker.RunUntracked(fn)
}

// Detach runs fn with no current frame, so effects created inside are roots.
func (r *Runtime) Detach(fn func()) {
	r.frames.Run(nil, fn)
}

// OnCleanup registers fn on the current frame, or on the ambient owner outside of any effect body.
func (r *Runtime) OnCleanup(fn func()) {
	if f := r.frames.Current(); f != nil {
		f.OnCleanup(fn)
		return
	}

	if o := r.tracker.CurrentOwner(); o != nil {
		o.OnCleanup(fn)
	}
}

// OnSettled registers fn to run once after the next flush completes.
func (r *Runtime) OnSettled(fn func()) {
	r.settled.Enqueue(fn)
}
