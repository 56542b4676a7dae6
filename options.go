package sigflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/AnatoleLucet/sigflow/internal"
)

// Option configures the process wide behaviour of sigflow.
type Option func(*internal.Config)

// Configure applies opts on top of the current configuration.
// It is meant to be called once at startup, before any reactive node is created.
func Configure(opts ...Option) {
	cfg := *internal.GetConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	internal.SetConfig(cfg)
}

// WithLogger sets the logger used to report teardown failures. nil disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(c *internal.Config) {
		c.Logger = logger
	}
}

// WithMetrics registers scheduler counters on reg. nil disables metrics.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *internal.Config) {
		if reg == nil {
			c.Metrics = nil
			return
		}

		c.Metrics = internal.NewMetrics(reg, "")
	}
}

type signalConfig struct {
	equal internal.EqualFunc
}

type SignalOption[T any] func(*signalConfig)

func newSignalConfig[T any](opts []SignalOption[T]) signalConfig {
	var cfg signalConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithEqual replaces the equality check deciding whether a write (or a recompute) is a change.
// Dependents are not notified of a value equal to the previous one.
func WithEqual[T any](eq func(a, b T) bool) SignalOption[T] {
	return func(c *signalConfig) {
		c.equal = equalOf(eq)
	}
}

// WithNeverEqual makes every write a change, even with the same value.
func WithNeverEqual[T any]() SignalOption[T] {
	return func(c *signalConfig) {
		c.equal = internal.NeverEqual
	}
}

type EffectOption func(*internal.EffectOptions)

func newEffectOptions(opts []EffectOption) internal.EffectOptions {
	var o internal.EffectOptions
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithOwner schedules the effect under owner instead of the inherited one.
// Disposing owner destroys the effect.
func WithOwner(owner *Owner) EffectOption {
	return func(o *internal.EffectOptions) {
		if owner != nil {
			o.Owner = owner.owner
		}
	}
}

// WithBind picks the parent frame of the effect from the ambient one (possibly nil).
// Returning nil makes the effect a root.
func WithBind(bind func(current *Frame) *Frame) EffectOption {
	return func(o *internal.EffectOptions) {
		o.Bind = func(parent *internal.Frame) *internal.Frame {
			return bind(wrapFrame(parent)).unwrap()
		}
	}
}

// Detached creates the effect as a root, outliving the run of the effect it is created in.
func Detached() EffectOption {
	return func(o *internal.EffectOptions) {
		o.Bind = func(*internal.Frame) *internal.Frame { return nil }
	}
}

func WithName(name string) EffectOption {
	return func(o *internal.EffectOptions) {
		o.Name = name
	}
}
