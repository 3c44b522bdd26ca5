// Package resilience provides admission policies for protected work.
//
// A policy decides, once per unit of work, whether that work may
// proceed, and is told exactly once how each admitted unit ended. This
// permit protocol is what the guard package consumes when it wraps a
// stream subscription:
//
//   - TryAcquire: consulted once, before the work starts. It must not
//     block; a false return means the work is rejected outright.
//
//   - ReportSuccess / ReportFailure: exactly one of these follows every
//     successful TryAcquire. Neither is called for rejected work.
//
//   - ReportRelease (optional, via Releaser): hands reserved capacity
//     back without judging the outcome, used when the consumer abandons
//     admitted work before it finishes.
//
// # Policies
//
// The package provides three policies:
//
//   - Circuit Breaker: rejects admissions after a threshold of
//     failures, then probes for recovery after a timeout.
//
//   - Bulkhead: caps the number of concurrently admitted units to
//     prevent resource exhaustion.
//
//   - Rate Limiter: token bucket controlling the admission rate;
//     outcomes do not affect it.
//
// # Usage
//
//	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//	    Name:         "backend",
//	    MaxFailures:  5,
//	    ResetTimeout: time.Minute,
//	})
//
//	if !cb.TryAcquire() {
//	    return cb.OpenError()
//	}
//	err := callBackend(ctx)
//	if err != nil {
//	    cb.ReportFailure(err)
//	} else {
//	    cb.ReportSuccess()
//	}
//
// Each policy also keeps an Execute convenience that runs a function
// through the permit protocol in one call.
//
// All policies are safe for concurrent use; a single instance is
// typically shared by many in-flight units of work.
package resilience
