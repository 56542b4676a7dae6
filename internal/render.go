package internal

// maxRenderReruns bounds how many times a render effect may re-trigger itself in a row.
const maxRenderReruns = 1000

// RenderEffect runs synchronously: at creation, and inside the write that changed one of its
// dependencies. Every notification forces a run, whatever the new values. Inside a batch, runs
// are deferred to the end of the outermost batch and deduplicated.
type RenderEffect struct {
	*effect

	running bool
	again   bool
}

func (r *Runtime) NewRenderEffect(body func(onCleanup func(func())), opts EffectOptions) *RenderEffect {
	e := &RenderEffect{effect: r.newEffect(EffectRender, body, opts)}
	e.comp.SetNotify(func() { e.run(false) })

	r.hold(e.runNow)

	return e
}

// run is the single entry for every render run. Calls from the batch flush pass fromBridge.
func (e *RenderEffect) run(fromBridge bool) {
	if e.destroyed {
		return
	}

	if !fromBridge && e.rt.batcher.Defer(e) {
		return
	}

	e.runNow()
}

// Run requests a run, deferred if a batch is active.
func (e *RenderEffect) Run() {
	e.run(false)
}

func (e *RenderEffect) runNow() {
	// a dependency changed while the body was running, run again once it returns
	if e.running {
		e.again = true
		return
	}

	e.running = true
	defer func() { e.running = false }()

	for i := 0; ; i++ {
		if i >= maxRenderReruns {
			panic(ErrInfiniteLoop)
		}

		e.again = false
		e.comp.Run()

		if !e.again || e.destroyed {
			return
		}
	}
}
