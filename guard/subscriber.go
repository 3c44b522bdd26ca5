package guard

import (
	"github.com/jonwraymond/streamops/resilience"
	"github.com/jonwraymond/streamops/stream"
)

// Subscriber is the multi-item guard shape. It implements
// stream.Subscriber so it can be handed to any Publisher, and
// stream.Subscription so the downstream consumer can cancel the
// guarded run through it.
type Subscriber[T any] struct {
	ctl        *controller
	downstream stream.Subscriber[T]
}

// NewSubscriber wraps downstream with an arbitrary admission policy.
// Policies implementing resilience.Releaser have their capacity handed
// back when the consumer cancels an admitted run; all others have the
// cancellation counted as a success.
func NewSubscriber[T any](policy resilience.Policy, downstream stream.Subscriber[T], opts ...Option) *Subscriber[T] {
	return newSubscriber(bind(policy), downstream, opts)
}

// NewCircuitBreakerSubscriber wraps downstream with a circuit breaker.
// Rejected admissions surface the breaker's OpenError downstream.
func NewCircuitBreakerSubscriber[T any](cb *resilience.CircuitBreaker, downstream stream.Subscriber[T], opts ...Option) *Subscriber[T] {
	return newSubscriber(bindCircuitBreaker(cb), downstream, opts)
}

// NewBulkheadSubscriber wraps downstream with a bulkhead. Rejected
// admissions surface the bulkhead's FullError downstream; cancelling
// an admitted run releases the slot without judging the outcome.
func NewBulkheadSubscriber[T any](bh *resilience.Bulkhead, downstream stream.Subscriber[T], opts ...Option) *Subscriber[T] {
	return newSubscriber(bindBulkhead(bh), downstream, opts)
}

func newSubscriber[T any](b binding, downstream stream.Subscriber[T], opts []Option) *Subscriber[T] {
	if downstream == nil {
		panic("guard: nil downstream subscriber")
	}
	return &Subscriber[T]{
		ctl:        newController(b, applyOptions(opts)),
		downstream: downstream,
	}
}

// OnSubscribe accepts the upstream handle, consults the policy once,
// and forwards subscription-established downstream.
func (s *Subscriber[T]) OnSubscribe(upstream stream.Subscription) {
	s.ctl.handleSubscribe(upstream, s.downstream.OnSubscribe, s.downstream.OnError)
}

// OnNext forwards the item iff a permit is held and the subscription
// has not been disposed; otherwise the item is dropped.
func (s *Subscriber[T]) OnNext(value T) {
	if s.ctl.permittedNext() {
		s.downstream.OnNext(value)
	}
}

// OnError reports the failure to the policy (once) and forwards the
// error unless the subscription was already disposed.
func (s *Subscriber[T]) OnError(err error) {
	s.ctl.handleError(err, s.downstream.OnError)
}

// OnComplete reports success to the policy (once) and forwards the
// completion unless the subscription was already disposed.
func (s *Subscriber[T]) OnComplete() {
	s.ctl.handleComplete(s.downstream.OnComplete)
}

// Cancel stops the guarded run: the upstream handle is cancelled and,
// if a permit is still held, the policy hears the abandonment instead
// of an outcome. Idempotent.
func (s *Subscriber[T]) Cancel() {
	s.ctl.Cancel()
}

// Cancelled reports whether the guarded run has been disposed.
func (s *Subscriber[T]) Cancelled() bool {
	return s.ctl.Cancelled()
}

var (
	_ stream.Subscriber[int] = (*Subscriber[int])(nil)
	_ stream.Subscription    = (*Subscriber[int])(nil)
)
