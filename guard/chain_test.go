package guard

import (
	"errors"
	"testing"

	"github.com/jonwraymond/streamops/resilience"
	"github.com/jonwraymond/streamops/stream"
)

func TestChainSuccessPath(t *testing.T) {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{Name: "backend"})
	bh := resilience.NewBulkhead(resilience.BulkheadConfig{Name: "workers", MaxConcurrent: 2})
	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{Name: "ingress", Rate: 100, Burst: 10})

	chain := NewChain[int](
		WithCircuitBreaker(cb),
		WithBulkhead(bh),
		WithRateLimiter(rl),
	)

	publisher := stream.PublisherFunc[int](func(s stream.Subscriber[int]) {
		s.OnSubscribe(stream.NewSubscription(nil))
		s.OnNext(1)
		s.OnNext(2)
		s.OnComplete()
	})

	downstream := &recordingSubscriber[int]{}
	chain.Publisher(publisher).Subscribe(downstream)

	if downstream.subscribes != 1 {
		t.Errorf("downstream subscribed %d times, want 1", downstream.subscribes)
	}
	if len(downstream.items) != 2 {
		t.Errorf("downstream items = %v, want 2 items", downstream.items)
	}
	if downstream.completes != 1 || len(downstream.errs) != 0 {
		t.Errorf("downstream completes=%d errs=%v; want 1, none", downstream.completes, downstream.errs)
	}
	if got := bh.Metrics().Active; got != 0 {
		t.Errorf("bulkhead active = %d after completion, want 0", got)
	}
	if cb.State() != resilience.StateClosed {
		t.Errorf("breaker state = %v, want closed", cb.State())
	}
}

func TestChainRateLimiterRejection(t *testing.T) {
	// The breaker must not count the limiter's rejections as backend
	// failures, so it filters not-permitted errors out.
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:        "backend",
		MaxFailures: 1,
		IsFailure: func(err error) bool {
			return !resilience.IsNotPermitted(err)
		},
	})
	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{Name: "ingress", Rate: 0.001, Burst: 1})

	chain := NewChain[int](
		WithCircuitBreaker(cb),
		WithRateLimiter(rl),
	)

	publisher := stream.PublisherFunc[int](func(s stream.Subscriber[int]) {
		s.OnSubscribe(stream.NewSubscription(nil))
		s.OnNext(1)
		s.OnComplete()
	})
	guarded := chain.Publisher(publisher)

	first := &recordingSubscriber[int]{}
	guarded.Subscribe(first)
	if first.completes != 1 {
		t.Fatalf("first subscription completes = %d, want 1", first.completes)
	}

	// The burst is spent; the next subscription is rejected at the edge.
	second := &recordingSubscriber[int]{}
	guarded.Subscribe(second)

	if len(second.errs) != 1 || !errors.Is(second.errs[0], resilience.ErrRateLimitExceeded) {
		t.Fatalf("second subscription errors = %v, want ErrRateLimitExceeded", second.errs)
	}
	if len(second.items) != 0 || second.completes != 0 {
		t.Errorf("signals leaked past the rate limiter: items=%v completes=%d",
			second.items, second.completes)
	}
	if cb.State() != resilience.StateClosed {
		t.Errorf("breaker state = %v after filtered rejection, want closed", cb.State())
	}
}

func TestChainBulkheadRejectionReleasesNothing(t *testing.T) {
	bh := resilience.NewBulkhead(resilience.BulkheadConfig{Name: "workers", MaxConcurrent: 1})
	chain := NewChain[int](WithBulkhead(bh))

	// Hold the only slot with a run that never terminates.
	holder := chain.Subscriber(&recordingSubscriber[int]{})
	holder.OnSubscribe(stream.NewSubscription(nil))

	rejected := &recordingSubscriber[int]{}
	chain.Subscriber(rejected).OnSubscribe(stream.NewSubscription(nil))

	if len(rejected.errs) != 1 || !errors.Is(rejected.errs[0], resilience.ErrBulkheadFull) {
		t.Fatalf("rejected errors = %v, want ErrBulkheadFull", rejected.errs)
	}
	if got := bh.Metrics().Active; got != 1 {
		t.Errorf("bulkhead active = %d, want 1 (rejection owes no release)", got)
	}
	if got := bh.Metrics().Rejected; got != 1 {
		t.Errorf("bulkhead rejected = %d, want 1", got)
	}
}

func TestChainSingle(t *testing.T) {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{Name: "lookup"})
	chain := NewChain[string](WithCircuitBreaker(cb))

	single := stream.SingleFunc[string](func(s stream.SingleSubscriber[string]) {
		s.OnSubscribe(stream.NewSubscription(nil))
		s.OnSuccess("payload")
	})

	downstream := &recordingSingle[string]{}
	chain.Single(single).Subscribe(downstream)

	if len(downstream.values) != 1 || downstream.values[0] != "payload" {
		t.Errorf("downstream values = %v, want [payload]", downstream.values)
	}
}

func TestChainEmptyIsPassthrough(t *testing.T) {
	chain := NewChain[int]()
	downstream := &recordingSubscriber[int]{}

	if got := chain.Subscriber(downstream); got != stream.Subscriber[int](downstream) {
		t.Error("empty chain should return the downstream unchanged")
	}
}
