package internal

import (
	"fmt"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Frame is the lifetime scope of one run of a nested effect.
// It owns the effects created while it is current; its parent pointer is a plain back-reference.
type Frame struct {
	owner  *Owner
	parent *Frame
	depth  int

	children []Destroyer

	// registers a cleanup for the run owning this frame
	onCleanup func(func())
}

func NewFrame(owner *Owner, parent *Frame, onCleanup func(func())) *Frame {
	depth := 0
	if parent != nil {
		depth = parent.depth + 1
	}

	return &Frame{
		owner:     owner,
		parent:    parent,
		depth:     depth,
		onCleanup: onCleanup,
	}
}

func (f *Frame) Owner() *Owner { return f.owner }

func (f *Frame) Parent() *Frame { return f.parent }

func (f *Frame) Depth() int { return f.depth }

func (f *Frame) Children() []Destroyer { return slices.Clone(f.children) }

func (f *Frame) AddChild(d Destroyer) {
	if !slices.Contains(f.children, d) {
		f.children = append(f.children, d)
	}
}

func (f *Frame) RemoveChild(d Destroyer) {
	if i := slices.Index(f.children, d); i >= 0 {
		f.children = slices.Delete(f.children, i, i+1)
	}
}

func (f *Frame) OnCleanup(fn func()) {
	if f.onCleanup != nil {
		f.onCleanup(fn)
	}
}

// FrameStack tracks the frames of the effect bodies currently executing.
type FrameStack struct {
	frames []*Frame
}

func NewFrameStack() *FrameStack {
	return &FrameStack{}
}

// Current returns the top of the stack, or nil.
func (s *FrameStack) Current() *Frame {
	if len(s.frames) == 0 {
		return nil
	}

	return s.frames[len(s.frames)-1]
}

// Push makes f current. A nil frame hides the frames below it.
func (s *FrameStack) Push(f *Frame) {
	s.frames = append(s.frames, f)
}

func (s *FrameStack) Pop() *Frame {
	if len(s.frames) == 0 {
		return nil
	}

	f := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]

	return f
}

func (s *FrameStack) Len() int {
	return len(s.frames)
}

// Run fn with f pushed, popping it even if fn panics.
func (s *FrameStack) Run(f *Frame, fn func()) {
	s.Push(f)
	defer s.Pop()

	fn()
}

// Clear tears f down: it is detached from its parent, its children are destroyed
// (last created first), then every cleanup runs. A panicking child or cleanup is
// logged and does not stop the others. The recovered failures are returned combined.
func (s *FrameStack) Clear(f *Frame, cleanups []func()) error {
	f.parent = nil

	children := f.children
	f.children = nil

	var errs error
	for i := len(children) - 1; i >= 0; i-- {
		errs = multierr.Append(errs, isolate("child destroy", children[i].Destroy))
	}

	for _, fn := range cleanups {
		errs = multierr.Append(errs, isolate("cleanup", fn))
	}

	return errs
}

func isolate(stage string, fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		cfg := GetConfig()
		cfg.Logger.Error("sigflow: teardown failed", zap.String("stage", stage), zap.Any("panic", r))
		cfg.Metrics.TeardownFailure()

		err = fmt.Errorf("%w: %s: %v", ErrCleanup, stage, r)
	}()

	fn()
	return nil
}
