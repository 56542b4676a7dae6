package sigflow

import "github.com/AnatoleLucet/sigflow/internal"

// Frame is the lifetime scope of one run of an effect.
// Effects created while a frame is current are destroyed when that run ends.
type Frame struct {
	frame *internal.Frame
}

func wrapFrame(f *internal.Frame) *Frame {
	if f == nil {
		return nil
	}

	return &Frame{f}
}

func (f *Frame) unwrap() *internal.Frame {
	if f == nil {
		return nil
	}

	return f.frame
}

// CurrentFrame returns the frame of the effect body being executed, or nil.
func CurrentFrame() *Frame {
	return wrapFrame(internal.GetRuntime().Frames().Current())
}

// Parent returns the enclosing frame, nil at the root or once the frame is torn down.
func (f *Frame) Parent() *Frame { return wrapFrame(f.frame.Parent()) }

// Depth is 0 for root effects.
func (f *Frame) Depth() int { return f.frame.Depth() }

// Owner returns the owner effects created in this frame inherit.
func (f *Frame) Owner() *Owner { return &Owner{f.frame.Owner()} }

// Children returns the number of live effects created in this frame.
func (f *Frame) Children() int { return len(f.frame.Children()) }

type effectHandle interface {
	Destroy()
	IsDestroyed() bool
	Frame() *internal.Frame
}

// EffectRef controls an effect created by NewEffect or NewRenderEffect.
type EffectRef struct {
	effect effectHandle
}

// Destroy the effect and every effect nested in it. Calling it again does nothing.
func (e *EffectRef) Destroy() { e.effect.Destroy() }

func (e *EffectRef) IsDestroyed() bool { return e.effect.IsDestroyed() }

// Frame returns the frame of the effect's latest run.
func (e *EffectRef) Frame() *Frame { return wrapFrame(e.effect.Frame()) }

// NewEffect creates an effect that runs now and re-runs after any of its dependencies change,
// once the current write or batch completes.
//
// Effects created inside fn are children of this run: they are destroyed before the next
// run and when this effect is destroyed, children before the cleanups registered with onCleanup.
// A child tracks its own dependencies; changing them re-runs the child only.
func NewEffect(fn func(onCleanup func(func())), opts ...EffectOption) *EffectRef {
	e := internal.GetRuntime().NewNestedEffect(fn, newEffectOptions(opts))

	return &EffectRef{e}
}

// NewRenderEffect creates an effect that runs now and synchronously inside every write
// changing one of its dependencies, even when the new values are equal.
// Within Batch, its runs are deferred to the end of the batch and deduplicated.
func NewRenderEffect(fn func(onCleanup func(func())), opts ...EffectOption) *EffectRef {
	e := internal.GetRuntime().NewRenderEffect(fn, newEffectOptions(opts))

	return &EffectRef{e}
}
