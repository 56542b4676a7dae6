package internal

import (
	"iter"
	"slices"
)

// Destroyer is anything whose lifetime can be ended by an owner or a frame.
type Destroyer interface {
	Destroy()
}

// Owner is a host lifecycle scope. Effects created under it are destroyed when it is disposed.
type Owner struct {
	rt *Runtime

	// cleanup functions called once, on the next dispose
	cleanups []func()

	// called on every dispose
	disposers []func()

	// panic error handlers
	catchers []func(any)

	// the context values of this owner
	context map[any]any

	// effects bound to this owner's lifetime
	bound []Destroyer

	parent   *Owner
	children []*Owner
}

// NewOwner creates an owner parented to the ambient one, if any.
func (r *Runtime) NewOwner() *Owner {
	return newOwner(r, r.tracker.CurrentOwner())
}

func newOwner(r *Runtime, parent *Owner) *Owner {
	o := &Owner{
		rt:       r,
		cleanups: make([]func(), 0),
		context:  make(map[any]any),
	}

	if parent != nil {
		parent.AddChild(o)
	}

	return o
}

// Run fn with this owner as the ambient owner.
// A panic is handed to the error handlers of this owner or its ancestors, or re-panics if there are none.
func (o *Owner) Run(fn func() error) (err error) {
	defer o.recover()

	o.rt.tracker.RunWithOwner(o, func() {
		err = fn()
	})

	return err
}

func (o *Owner) recover() {
	if r := recover(); r != nil {
		if !o.handle(r) {
			panic(r)
		}
	}
}

func (o *Owner) handle(r any) bool {
	for owner := o; owner != nil; owner = owner.parent {
		if len(owner.catchers) == 0 {
			continue
		}

		for _, catcher := range owner.catchers {
			catcher(r)
		}
		return true
	}

	return false
}

func (o *Owner) Parent() *Owner { return o.parent }

func (parent *Owner) AddChild(child *Owner) {
	child.parent = parent

	if !slices.Contains(parent.children, child) {
		parent.children = append(parent.children, child)
	}
}

func (parent *Owner) RemoveChild(child *Owner) {
	if i := slices.Index(parent.children, child); i >= 0 {
		parent.children = slices.Delete(parent.children, i, i+1)
	}
}

func (o *Owner) Children() iter.Seq[*Owner] {
	return slices.Values(slices.Clone(o.children))
}

// Bind ties d to this owner: disposing the owner destroys d.
func (o *Owner) Bind(d Destroyer) {
	if !slices.Contains(o.bound, d) {
		o.bound = append(o.bound, d)
	}
}

func (o *Owner) Unbind(d Destroyer) {
	if i := slices.Index(o.bound, d); i >= 0 {
		o.bound = slices.Delete(o.bound, i, i+1)
	}
}

// Dispose child owners then bound effects, both last created first, then run the cleanups.
// The owner is detached from its parent and stays usable afterwards.
func (o *Owner) Dispose() {
	if o.parent != nil {
		o.parent.RemoveChild(o)
		o.parent = nil
	}

	children := o.children
	o.children = nil
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	bound := o.bound
	o.bound = nil
	for i := len(bound) - 1; i >= 0; i-- {
		bound[i].Destroy()
	}

	cleanups := o.cleanups
	o.cleanups = nil
	for _, fn := range cleanups {
		fn()
	}

	for _, fn := range o.disposers {
		fn()
	}
}

func (o *Owner) OnCleanup(fn func()) {
	o.cleanups = append(o.cleanups, fn)
}

func (o *Owner) OnDispose(fn func()) {
	o.disposers = append(o.disposers, fn)
}

func (o *Owner) OnError(fn func(any)) {
	o.catchers = append(o.catchers, fn)
}
