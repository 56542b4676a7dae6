package internal

// Context is a value looked up through the owner hierarchy.
type Context struct {
	rt      *Runtime
	initial any
}

func (r *Runtime) NewContext(initial any) *Context {
	return &Context{rt: r, initial: initial}
}

// Value walks up from the ambient owner and returns the closest value set, or the initial one.
func (c *Context) Value() any {
	for o := c.rt.tracker.CurrentOwner(); o != nil; o = o.parent {
		if v, ok := o.context[c]; ok {
			return v
		}
	}

	return c.initial
}

// Set stores the value on the ambient owner. Without an ambient owner it does nothing.
func (c *Context) Set(value any) {
	if o := c.rt.tracker.CurrentOwner(); o != nil {
		o.context[c] = value
	}
}
