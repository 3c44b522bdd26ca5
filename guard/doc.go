// Package guard gates reactive subscriptions behind an admission
// policy.
//
// A guard sits between an upstream producer and a downstream consumer.
// When the upstream establishes the subscription, the guard consults
// the policy exactly once. If admission is granted, signals pass
// through; when the stream ends, the policy hears the outcome exactly
// once. If admission is denied, the upstream handle is cancelled, the
// downstream still receives OnSubscribe (so it may legally cancel
// later) and then a terminal rejection error, and the policy is never
// told an outcome it is not owed.
//
// The hard part is that three actors race: the producer delivering a
// terminal signal, the consumer cancelling, and the admission step
// itself. The guard serializes the single outcome report across all of
// them with compare-and-swap state machines; it never blocks, locks or
// spawns goroutines.
//
// # Usage
//
//	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//	    Name: "backend",
//	})
//
//	upstream.Subscribe(guard.NewCircuitBreakerSubscriber(cb, downstream))
//
// Multiple policies compose with a Chain:
//
//	chain := guard.NewChain[Event](
//	    guard.WithRateLimiter(rl),
//	    guard.WithBulkhead(bh),
//	    guard.WithCircuitBreaker(cb),
//	)
//	guarded := chain.Publisher(upstream)
package guard
