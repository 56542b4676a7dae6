package internal

// EffectOptions configures nested and render effects.
type EffectOptions struct {
	// scheduling context, defaults to the parent frame's owner, then the ambient owner
	Owner *Owner

	// maps the ambient frame to the effective parent; nil keeps the ambient frame
	Bind func(parent *Frame) *Frame

	// used in diagnostics only
	Name string
}

// effect is the lifecycle shared by nested and render effects.
type effect struct {
	rt     *Runtime
	comp   *Computation
	owner  *Owner
	parent *Frame
	frame  *Frame // current incarnation
	name   string

	body func(onCleanup func(func()))

	destroyed bool
}

func (r *Runtime) newEffect(typ EffectType, body func(onCleanup func(func())), opts EffectOptions) *effect {
	parent := r.frames.Current()
	if opts.Bind != nil {
		parent = opts.Bind(parent)
	}

	owner := opts.Owner
	if owner == nil && parent != nil {
		owner = parent.owner
	}
	if owner == nil {
		owner = r.CurrentOwner()
	}

	depth := 0
	if parent != nil {
		depth = parent.depth + 1
	}

	e := &effect{
		rt:     r,
		owner:  owner,
		parent: parent,
		name:   opts.Name,
		body:   body,
	}
	e.comp = r.NewComputation(typ, owner, depth, e.execute)

	if parent != nil {
		parent.AddChild(e)
	}
	owner.Bind(e)

	return e
}

// execute is one run of the underlying computation: a fresh frame wraps the body,
// and the frame is torn down before the next run or on destroy.
func (e *effect) execute(onCleanup func(func())) {
	// teardown may be in flight
	if e.destroyed {
		return
	}

	var cleanups []func()
	frame := NewFrame(e.owner, e.parent, func(fn func()) {
		cleanups = append(cleanups, fn)
	})
	e.frame = frame

	teardown := func() {
		pending := cleanups
		cleanups = nil

		_ = e.rt.frames.Clear(frame, pending)
	}
	onCleanup(teardown)

	// destroyed by its own body: what the body created or registered since is torn down too
	defer func() {
		if e.destroyed {
			teardown()
		}
	}()

	e.rt.frames.Run(frame, func() {
		e.body(frame.OnCleanup)
	})
}

// Destroy is idempotent. It detaches the effect from its parent frame and owner,
// then disposes the computation, which tears the current frame down.
func (e *effect) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true

	if e.parent != nil {
		e.parent.RemoveChild(e)
	}
	e.owner.Unbind(e)

	e.comp.Dispose()

	GetConfig().Metrics.EffectDestroyed()
}

func (e *effect) IsDestroyed() bool { return e.destroyed }

func (e *effect) Frame() *Frame { return e.frame }

func (e *effect) Parent() *Frame { return e.parent }

func (e *effect) Owner() *Owner { return e.owner }

func (e *effect) Name() string { return e.name }

func (e *effect) Computation() *Computation { return e.comp }

// NestedEffect re-runs on the flush following a dependency change.
// Effects created by its body are destroyed and recreated with each run.
type NestedEffect struct {
	*effect
}

func (r *Runtime) NewNestedEffect(body func(onCleanup func(func())), opts EffectOptions) *NestedEffect {
	e := &NestedEffect{r.newEffect(EffectUser, body, opts)}
	r.hold(e.comp.Run)

	return e
}
