package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/streamops/resilience"
)

// CircuitBreakerChecker reports the health of a circuit breaker:
// closed is healthy, half-open is degraded (the breaker is probing
// recovery), open is unhealthy.
type CircuitBreakerChecker struct {
	cb *resilience.CircuitBreaker
}

// NewCircuitBreakerChecker creates a checker for the given breaker.
func NewCircuitBreakerChecker(cb *resilience.CircuitBreaker) *CircuitBreakerChecker {
	return &CircuitBreakerChecker{cb: cb}
}

// Name returns the breaker's configured name.
func (c *CircuitBreakerChecker) Name() string {
	return c.cb.Name()
}

// Check reports the breaker state.
func (c *CircuitBreakerChecker) Check(ctx context.Context) Result {
	// Check context first
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	metrics := c.cb.Metrics()
	details := map[string]any{
		"state":    metrics.State.String(),
		"failures": metrics.Failures,
	}
	if !metrics.LastFailure.IsZero() {
		details["last_failure"] = metrics.LastFailure
	}

	switch metrics.State {
	case resilience.StateOpen:
		return Unhealthy(
			fmt.Sprintf("circuit breaker %q is open", c.cb.Name()),
			c.cb.OpenError(),
		).WithDetails(details)
	case resilience.StateHalfOpen:
		return Degraded(
			fmt.Sprintf("circuit breaker %q is probing recovery", c.cb.Name()),
		).WithDetails(details)
	default:
		return Healthy(
			fmt.Sprintf("circuit breaker %q is closed", c.cb.Name()),
		).WithDetails(details)
	}
}

// BulkheadCheckerConfig configures the bulkhead health checker.
type BulkheadCheckerConfig struct {
	// DegradedThreshold is the fraction of slots in use that triggers
	// degraded status. Value should be between 0 and 1. Default: 0.8
	DegradedThreshold float64
}

// BulkheadChecker reports the saturation of a bulkhead: degraded when
// most slots are taken, unhealthy when none are free.
type BulkheadChecker struct {
	bh     *resilience.Bulkhead
	config BulkheadCheckerConfig
}

// NewBulkheadChecker creates a checker for the given bulkhead.
func NewBulkheadChecker(bh *resilience.Bulkhead, config ...BulkheadCheckerConfig) *BulkheadChecker {
	cfg := BulkheadCheckerConfig{DegradedThreshold: 0.8}
	if len(config) > 0 {
		cfg = config[0]
		if cfg.DegradedThreshold <= 0 || cfg.DegradedThreshold >= 1 {
			cfg.DegradedThreshold = 0.8
		}
	}
	return &BulkheadChecker{bh: bh, config: cfg}
}

// Name returns the bulkhead's configured name.
func (c *BulkheadChecker) Name() string {
	return c.bh.Name()
}

// Check reports the bulkhead saturation.
func (c *BulkheadChecker) Check(ctx context.Context) Result {
	// Check context first
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	metrics := c.bh.Metrics()
	details := map[string]any{
		"active":         metrics.Active,
		"available":      metrics.Available,
		"max_concurrent": metrics.MaxConcurrent,
		"rejected":       metrics.Rejected,
	}

	usage := float64(metrics.Active) / float64(metrics.MaxConcurrent)

	switch {
	case metrics.Available <= 0:
		return Unhealthy(
			fmt.Sprintf("bulkhead %q has no free slots", c.bh.Name()),
			c.bh.FullError(),
		).WithDetails(details)
	case usage >= c.config.DegradedThreshold:
		return Degraded(
			fmt.Sprintf("bulkhead %q is %.0f%% saturated", c.bh.Name(), usage*100),
		).WithDetails(details)
	default:
		return Healthy(
			fmt.Sprintf("bulkhead %q has %d free slots", c.bh.Name(), metrics.Available),
		).WithDetails(details)
	}
}

var (
	_ Checker = (*CircuitBreakerChecker)(nil)
	_ Checker = (*BulkheadChecker)(nil)
)
