package guard

import (
	"fmt"

	"github.com/jonwraymond/streamops/resilience"
)

// binding is what a concrete guard supplies to the lifecycle
// controller: the policy's admission check, its outcome reports, the
// abandonment report used when the consumer cancels an admitted run
// before a terminal signal, and the rejection error delivered
// downstream when admission is denied.
type binding struct {
	name         string
	tryAcquire   func() bool
	onSuccess    func()
	onFailure    func(error)
	onAbandon    func()
	notPermitted func() error
}

// bind picks the tightest binding for the given policy.
func bind(p resilience.Policy) binding {
	switch p := p.(type) {
	case *resilience.CircuitBreaker:
		return bindCircuitBreaker(p)
	case *resilience.Bulkhead:
		return bindBulkhead(p)
	case *resilience.RateLimiter:
		return bindRateLimiter(p)
	default:
		return bindPolicy(p)
	}
}

// bindPolicy adapts any Policy. Policies that implement Releaser hand
// their capacity back on abandonment; all others have it counted as a
// success, since the run produced no failure evidence.
func bindPolicy(p resilience.Policy) binding {
	abandon := p.ReportSuccess
	if r, ok := p.(resilience.Releaser); ok {
		abandon = r.ReportRelease
	}
	return binding{
		name:       p.Name(),
		tryAcquire: p.TryAcquire,
		onSuccess:  p.ReportSuccess,
		onFailure:  p.ReportFailure,
		onAbandon:  abandon,
		notPermitted: func() error {
			return fmt.Errorf("policy %q: %w", p.Name(), resilience.ErrNotPermitted)
		},
	}
}

func bindCircuitBreaker(cb *resilience.CircuitBreaker) binding {
	b := bindPolicy(cb)
	b.notPermitted = cb.OpenError
	return b
}

func bindBulkhead(bh *resilience.Bulkhead) binding {
	b := bindPolicy(bh)
	b.notPermitted = bh.FullError
	return b
}

func bindRateLimiter(rl *resilience.RateLimiter) binding {
	b := bindPolicy(rl)
	b.notPermitted = rl.LimitError
	return b
}
