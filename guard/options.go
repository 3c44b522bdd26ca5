package guard

import "github.com/jonwraymond/streamops/observe"

// Option configures a guard.
type Option func(*options)

type options struct {
	logger    observe.Logger
	metrics   observe.Metrics
	violation func(error)
}

func applyOptions(opts []Option) options {
	o := options{
		logger:  observe.NopLogger(),
		metrics: observe.NopMetrics(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger attaches a logger. Guards log admission decisions at
// debug level and protocol violations at error level.
func WithLogger(l observe.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records admissions, outcomes and protocol violations.
func WithMetrics(m observe.Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithViolationHandler overrides how producer protocol violations are
// surfaced. The default logs them through the configured logger. Tests
// use this to capture violations deterministically.
func WithViolationHandler(fn func(error)) Option {
	return func(o *options) {
		o.violation = fn
	}
}
