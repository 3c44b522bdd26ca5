package guard

import (
	"github.com/jonwraymond/streamops/resilience"
	"github.com/jonwraymond/streamops/stream"
)

// Single is the single-result guard shape: subscription-established
// followed by exactly one of OnSuccess or OnError. OnSuccess plays the
// role of the completion signal but carries the payload.
type Single[T any] struct {
	ctl        *controller
	downstream stream.SingleSubscriber[T]
}

// NewSingle wraps downstream with an arbitrary admission policy.
func NewSingle[T any](policy resilience.Policy, downstream stream.SingleSubscriber[T], opts ...Option) *Single[T] {
	return newSingle(bind(policy), downstream, opts)
}

// NewCircuitBreakerSingle wraps downstream with a circuit breaker.
func NewCircuitBreakerSingle[T any](cb *resilience.CircuitBreaker, downstream stream.SingleSubscriber[T], opts ...Option) *Single[T] {
	return newSingle(bindCircuitBreaker(cb), downstream, opts)
}

// NewBulkheadSingle wraps downstream with a bulkhead.
func NewBulkheadSingle[T any](bh *resilience.Bulkhead, downstream stream.SingleSubscriber[T], opts ...Option) *Single[T] {
	return newSingle(bindBulkhead(bh), downstream, opts)
}

func newSingle[T any](b binding, downstream stream.SingleSubscriber[T], opts []Option) *Single[T] {
	if downstream == nil {
		panic("guard: nil downstream subscriber")
	}
	return &Single[T]{
		ctl:        newController(b, applyOptions(opts)),
		downstream: downstream,
	}
}

// OnSubscribe accepts the upstream handle, consults the policy once,
// and forwards subscription-established downstream.
func (s *Single[T]) OnSubscribe(upstream stream.Subscription) {
	s.ctl.handleSubscribe(upstream, s.downstream.OnSubscribe, s.downstream.OnError)
}

// OnSuccess reports success to the policy (once) and forwards the
// value unless the subscription was already disposed.
func (s *Single[T]) OnSuccess(value T) {
	s.ctl.handleComplete(func() {
		s.downstream.OnSuccess(value)
	})
}

// OnError reports the failure to the policy (once) and forwards the
// error unless the subscription was already disposed.
func (s *Single[T]) OnError(err error) {
	s.ctl.handleError(err, s.downstream.OnError)
}

// Cancel stops the guarded run. Idempotent.
func (s *Single[T]) Cancel() {
	s.ctl.Cancel()
}

// Cancelled reports whether the guarded run has been disposed.
func (s *Single[T]) Cancelled() bool {
	return s.ctl.Cancelled()
}

var (
	_ stream.SingleSubscriber[int] = (*Single[int])(nil)
	_ stream.Subscription          = (*Single[int])(nil)
)
