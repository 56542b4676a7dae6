package internal

type Tracker struct {
	tracking bool

	currentOwner       *Owner       // for lifecycle/cleanup tracking
	currentComputation *Computation // for reactive dependency tracking
}

func NewTracker() *Tracker {
	return &Tracker{
		tracking: true,
	}
}

func (t *Tracker) CurrentOwner() *Owner { return t.currentOwner }

func (t *Tracker) CurrentComputation() *Computation { return t.currentComputation }

func (t *Tracker) RunWithOwner(owner *Owner, fn func()) {
	prev := t.currentOwner
	t.currentOwner = owner
	defer func() { t.currentOwner = prev }()

	fn()
}

// RunWithComputation runs fn with c collecting the dependencies read by fn.
// Tracking is re-enabled for the duration, even inside an untracked region.
func (t *Tracker) RunWithComputation(c *Computation, fn func()) {
	prevOwner := t.currentOwner
	prevComputation := t.currentComputation
	prevTracking := t.tracking

	t.currentOwner = c.owner
	t.currentComputation = c
	t.tracking = true

	defer func() {
		t.currentOwner = prevOwner
		t.currentComputation = prevComputation
		t.tracking = prevTracking
	}()

	fn()
}

func (t *Tracker) RunUntracked(fn func()) {
	prev := t.tracking
	t.tracking = false
	defer func() { t.tracking = prev }()

	fn()
}

func (t *Tracker) Track(s *Signal) {
	if t.ShouldTrack() {
		t.currentComputation.link(s)
	}
}

func (t *Tracker) ShouldTrack() bool {
	return t.currentComputation != nil && t.tracking
}
