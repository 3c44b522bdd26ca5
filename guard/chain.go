package guard

import (
	"github.com/jonwraymond/streamops/resilience"
	"github.com/jonwraymond/streamops/stream"
)

// Chain composes multiple admission policies around one stream.
type Chain[T any] struct {
	cfg chainConfig
}

type chainConfig struct {
	circuitBreaker *resilience.CircuitBreaker
	bulkhead       *resilience.Bulkhead
	rateLimiter    *resilience.RateLimiter
	guardOpts      []Option
}

// ChainOption configures a Chain.
type ChainOption func(*chainConfig)

// NewChain creates a new guard chain.
func NewChain[T any](opts ...ChainOption) *Chain[T] {
	c := &Chain[T]{}
	for _, opt := range opts {
		opt(&c.cfg)
	}
	return c
}

// WithCircuitBreaker adds a circuit breaker to the chain.
func WithCircuitBreaker(cb *resilience.CircuitBreaker) ChainOption {
	return func(c *chainConfig) {
		c.circuitBreaker = cb
	}
}

// WithBulkhead adds bulkhead isolation to the chain.
func WithBulkhead(b *resilience.Bulkhead) ChainOption {
	return func(c *chainConfig) {
		c.bulkhead = b
	}
}

// WithRateLimiter adds rate limiting to the chain.
func WithRateLimiter(rl *resilience.RateLimiter) ChainOption {
	return func(c *chainConfig) {
		c.rateLimiter = rl
	}
}

// WithOptions passes guard options (logger, metrics, violation
// handler) to every guard the chain builds.
func WithOptions(opts ...Option) ChainOption {
	return func(c *chainConfig) {
		c.guardOpts = append(c.guardOpts, opts...)
	}
}

// Subscriber returns downstream wrapped with the configured guards.
//
// Admission is checked in the order:
// 1. Rate Limiter (if configured) - limits subscription rate
// 2. Bulkhead (if configured) - limits concurrent subscriptions
// 3. Circuit Breaker (if configured) - prevents cascading failures
//
// A rejection by an outer policy reaches the inner guards as a
// terminal error; configure the breaker's IsFailure predicate with
// resilience.IsNotPermitted if those rejections should not count as
// backend failures.
func (c *Chain[T]) Subscriber(downstream stream.Subscriber[T]) stream.Subscriber[T] {
	s := downstream

	// Build from the inside out
	if c.cfg.circuitBreaker != nil {
		s = NewCircuitBreakerSubscriber(c.cfg.circuitBreaker, s, c.cfg.guardOpts...)
	}
	if c.cfg.bulkhead != nil {
		s = NewBulkheadSubscriber(c.cfg.bulkhead, s, c.cfg.guardOpts...)
	}
	if c.cfg.rateLimiter != nil {
		s = NewSubscriber(c.cfg.rateLimiter, s, c.cfg.guardOpts...)
	}

	return s
}

// Publisher wraps p so every subscription passes through the chain.
func (c *Chain[T]) Publisher(p stream.Publisher[T]) stream.Publisher[T] {
	return stream.PublisherFunc[T](func(s stream.Subscriber[T]) {
		p.Subscribe(c.Subscriber(s))
	})
}

// SingleSubscriber returns downstream wrapped with the configured
// guards, in the same order as Subscriber.
func (c *Chain[T]) SingleSubscriber(downstream stream.SingleSubscriber[T]) stream.SingleSubscriber[T] {
	s := downstream

	// Build from the inside out
	if c.cfg.circuitBreaker != nil {
		s = NewCircuitBreakerSingle(c.cfg.circuitBreaker, s, c.cfg.guardOpts...)
	}
	if c.cfg.bulkhead != nil {
		s = NewBulkheadSingle(c.cfg.bulkhead, s, c.cfg.guardOpts...)
	}
	if c.cfg.rateLimiter != nil {
		s = NewSingle(c.cfg.rateLimiter, s, c.cfg.guardOpts...)
	}

	return s
}

// Single wraps p so every subscription passes through the chain.
func (c *Chain[T]) Single(p stream.Single[T]) stream.Single[T] {
	return stream.SingleFunc[T](func(s stream.SingleSubscriber[T]) {
		p.Subscribe(c.SingleSubscriber(s))
	})
}
