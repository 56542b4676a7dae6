package internal

import "slices"

type Batcher struct {
	// each nested batch increases the depth by 1
	// if depth > 0, render effect runs and the host flush wait for the outermost batch
	depth int

	// render effects requested during the batch, in first-requested order
	pending []*RenderEffect
}

func NewBatcher() *Batcher {
	return &Batcher{
		depth: 0,
	}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

// Batch runs fn and calls onComplete once the outermost batch returns, even if fn panics.
func (b *Batcher) Batch(fn, onComplete func()) {
	b.depth++
	defer func() {
		b.depth--
		if b.depth == 0 && onComplete != nil {
			onComplete()
		}
	}()

	fn()
}

// Defer queues e when a batch is active and reports whether it did.
func (b *Batcher) Defer(e *RenderEffect) bool {
	if !b.IsBatching() {
		return false
	}

	if !slices.Contains(b.pending, e) {
		b.pending = append(b.pending, e)
	}

	return true
}

// Drain returns the queued render effects and empties the queue.
func (b *Batcher) Drain() []*RenderEffect {
	pending := b.pending
	b.pending = nil

	return pending
}
