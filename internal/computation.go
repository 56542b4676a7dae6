package internal

import "slices"

type EffectType int

const (
	// runs synchronously inside the write that triggered it
	EffectRender EffectType = iota
	// deferred to the end of the write or batch, parents first
	EffectUser
	// computed value, recomputed lazily on read
	EffectMemo
)

func (t EffectType) String() string {
	switch t {
	case EffectRender:
		return "render"
	case EffectUser:
		return "user"
	case EffectMemo:
		return "memo"
	default:
		return "unknown"
	}
}

// Computation is a tracked unit of work: the body of an effect or the compute function of a computed.
type Computation struct {
	rt    *Runtime
	owner *Owner
	typ   EffectType

	// nesting depth, orders deferred runs so parents run before their children
	depth int

	fn      func(onCleanup func(func())) // effect body
	compute func() any                   // computed body
	out     *Signal                      // computed output

	deps     []*Signal
	versions []uint64 // version of each dep when it was read

	// cleanups registered by the last run, called before the next one
	cleanups []func()

	// called when a dependency changed
	notify func()

	dirty       bool
	initialized bool
	disposed    bool
	computing   bool

	// used by the heap
	inHeap bool
}

// NewComputed creates a lazily evaluated computation whose value is exposed by Signal().
func (r *Runtime) NewComputed(compute func() any, equal EqualFunc) *Computation {
	c := &Computation{
		rt:      r,
		owner:   r.CurrentOwner(),
		typ:     EffectMemo,
		compute: compute,
		dirty:   true,
	}
	c.out = r.NewSignal(nil, equal)
	c.out.producer = c

	return c
}

// NewComputation creates an effect computation. It does not run until Run is called.
// User effects are re-run by the next flush, other types must set their own notify hook.
func (r *Runtime) NewComputation(typ EffectType, owner *Owner, depth int, fn func(onCleanup func(func()))) *Computation {
	c := &Computation{
		rt:    r,
		owner: owner,
		typ:   typ,
		depth: depth,
		fn:    fn,
	}
	c.notify = func() { r.heap.Insert(c) }

	return c
}

func (c *Computation) Signal() *Signal { return c.out }

func (c *Computation) Type() EffectType { return c.typ }

func (c *Computation) Depth() int { return c.depth }

func (c *Computation) IsDisposed() bool { return c.disposed }

// SetNotify replaces the hook called when a dependency changes.
func (c *Computation) SetNotify(fn func()) { c.notify = fn }

// Deps returns the signals read during the last run.
func (c *Computation) Deps() []*Signal { return slices.Clone(c.deps) }

// Run executes the effect body: previous cleanups first, then the body with fresh dependency tracking.
// A panic is handed to the owner's error handlers, or re-panics if there are none.
func (c *Computation) Run() {
	if c.disposed {
		return
	}

	c.runCleanups()
	c.clearDeps()
	c.initialized = true

	GetConfig().Metrics.EffectRun(c.typ)

	defer c.owner.recover()
	defer func() {
		// disposed by its own body, drop what it read since
		if c.disposed {
			c.clearDeps()
		}
	}()

	c.rt.tracker.RunWithComputation(c, func() {
		c.fn(c.onCleanup)
	})
}

func (c *Computation) runIfChanged() {
	if c.disposed || !c.depsChanged() {
		return
	}

	c.Run()
}

// Dispose stops the computation and runs its pending cleanups.
func (c *Computation) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true

	c.rt.heap.Remove(c)
	c.clearDeps()
	c.runCleanups()
}

func (c *Computation) onCleanup(fn func()) {
	c.cleanups = append(c.cleanups, fn)
}

func (c *Computation) runCleanups() {
	cleanups := c.cleanups
	c.cleanups = nil

	for _, fn := range cleanups {
		fn()
	}
}

func (c *Computation) refresh() {
	// a read from inside its own compute sees the previous value
	if c.disposed || !c.dirty || c.computing {
		return
	}

	if c.initialized && !c.depsChanged() {
		c.dirty = false
		return
	}

	c.recompute()
}

func (c *Computation) recompute() {
	c.clearDeps()
	GetConfig().Metrics.EffectRun(c.typ)

	c.computing = true
	defer func() {
		c.computing = false

		// compute panicked, the next read retries it
		if c.dirty {
			c.initialized = false
		}
	}()

	var value any
	c.rt.tracker.RunWithComputation(c, func() {
		value = c.compute()
	})
	c.dirty = false

	if !c.initialized || !c.out.equal(c.out.value, value) {
		c.out.value = value
		c.out.version++
	}
	c.initialized = true
}

// depsChanged brings computed dependencies up to date and compares versions with the last run.
func (c *Computation) depsChanged() bool {
	for i, dep := range c.deps {
		dep.refresh()

		if dep.version != c.versions[i] {
			return true
		}
	}

	return false
}

func (c *Computation) link(s *Signal) {
	// dont link if already present
	if slices.Contains(c.deps, s) {
		return
	}

	c.deps = append(c.deps, s)
	c.versions = append(c.versions, s.version)
	s.addSub(c)
}

func (c *Computation) clearDeps() {
	for _, dep := range c.deps {
		dep.removeSub(c)
	}

	c.deps = nil
	c.versions = nil
}
