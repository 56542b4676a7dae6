package sigflow

import "github.com/AnatoleLucet/sigflow/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

func equalOf[T any](eq func(a, b T) bool) internal.EqualFunc {
	if eq == nil {
		return nil
	}

	return func(a, b any) bool {
		return eq(as[T](a), as[T](b))
	}
}

type Signal[T any] struct {
	signal *internal.Signal
}

// NewSignal creates your tipical read/write signal.
func NewSignal[T any](initial T, opts ...SignalOption[T]) *Signal[T] {
	cfg := newSignalConfig(opts)

	return &Signal[T]{
		internal.GetRuntime().NewSignal(initial, cfg.equal),
	}
}

// Read the current value of the signal, tracking the dependency if within a reactive context.
func (s *Signal[T]) Read() T {
	return as[T](s.signal.Read())
}

// Peek reads the current value without tracking it.
func (s *Signal[T]) Peek() T {
	return as[T](s.signal.Peek())
}

// Write a new value to the signal, triggering updates to any dependents.
func (s *Signal[T]) Write(v T) {
	s.signal.Write(v)
}

// Update writes fn applied to the current (untracked) value.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Write(fn(s.Peek()))
}

type Computed[T any] struct {
	computed *internal.Computation
}

// NewComputed creates a computed signal that derives its value from other signals (its a memo).
// It is evaluated lazily, on the first read after one of its dependencies changed.
func NewComputed[T any](compute func() T, opts ...SignalOption[T]) *Computed[T] {
	cfg := newSignalConfig(opts)

	return newComputed(compute, cfg.equal)
}

func newComputed[T any](compute func() T, equal internal.EqualFunc) *Computed[T] {
	return &Computed[T]{
		internal.GetRuntime().NewComputed(func() any {
			return compute()
		}, equal),
	}
}

// Read the current value of the computed signal, tracking the dependency if within a reactive context.
func (c *Computed[T]) Read() T {
	return as[T](c.computed.Signal().Read())
}

// Peek reads the current value without tracking it.
func (c *Computed[T]) Peek() T {
	return as[T](c.computed.Signal().Peek())
}

// Batch runs fn and defers effect runs until it returns.
// Render effects triggered several times in the batch run once, in the order they were first triggered.
// Nested batches run inline; only the outermost one flushes, even if fn panics.
func Batch(fn func()) {
	internal.GetRuntime().Batch(fn)
}

// Untrack runs the given function without tracking any reactive dependencies.
func Untrack[T any](fn func() T) T {
	var result T
	internal.GetRuntime().Untrack(func() { result = fn() })
	return result
}

// OnCleanup registers a function to be called before the current effect re-runs or is destroyed.
// Outside of an effect body, it is called when the current owner is disposed.
func OnCleanup(fn func()) {
	internal.GetRuntime().OnCleanup(fn)
}

// OnSettled registers a function to be called once the next flush completes.
func OnSettled(fn func()) {
	internal.GetRuntime().OnSettled(fn)
}

type Context[T any] struct {
	ctx *internal.Context
}

// NewContext creates a new reactive context with an initial value.
func NewContext[T any](initial T) *Context[T] {
	return &Context[T]{
		internal.GetRuntime().NewContext(initial),
	}
}

// Value retrieves the current value of the context,
// inheriting from parent owners if not set in the current owner.
func (c *Context[T]) Value() T {
	return as[T](c.ctx.Value())
}

// Set a new value for the context in the current owner.
func (c *Context[T]) Set(value T) {
	c.ctx.Set(value)
}

type Owner struct {
	owner *internal.Owner
}

// NewOwner creates a new reactive owner.
// An owner manages the lifecycle of reactive nodes created within its context.
func NewOwner() *Owner {
	return &Owner{
		internal.GetRuntime().NewOwner(),
	}
}

// Run a function within the context of this owner.
// Effects created within the function outside of any effect body are bound to this owner,
// and are destroyed when owner.Dispose() is called on this owner. Inside an effect body,
// new effects keep the owner of their parent frame; pass WithOwner to bind them here instead.
func (o *Owner) Run(fn func() error) error { return o.owner.Run(fn) }

// Dispose this owner and all its children.
func (o *Owner) Dispose() { o.owner.Dispose() }

// Add a cleanup function to be called ONCE when the owner is disposed.
func (o *Owner) OnCleanup(fn func()) { o.owner.OnCleanup(fn) }

// Add a function to be called when the owner is disposed (each time Dispose is called).
func (o *Owner) OnDispose(fn func()) { o.owner.OnDispose(fn) }

// Add a function to be called when a panic occurs within this owner.
// If no error listener is registered, the panic will propagate as usual.
func (o *Owner) OnError(fn func(any)) { o.owner.OnError(fn) }

// Release forgets the reactive runtime of the calling goroutine.
// Call it before a goroutine that used sigflow exits. Nodes already created keep working.
func Release() {
	internal.ReleaseRuntime()
}
