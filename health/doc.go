// Package health surfaces the state of admission policies as health
// checks.
//
// A Checker is any component that can report its health status. The
// Status type represents the health state: Healthy, Degraded, or
// Unhealthy. The package ships checkers for the resilience policies
// (an open circuit breaker is unhealthy, a saturated bulkhead is
// degraded) and an Aggregator that combines checkers into one
// composite check.
//
// # Basic Usage
//
//	cbCheck := health.NewCircuitBreakerChecker(cb)
//
//	result := cbCheck.Check(ctx)
//	if result.Status == health.StatusUnhealthy {
//	    log.Printf("breaker open: %s", result.Message)
//	}
//
// # Aggregating Health Checks
//
// Use Aggregator to combine multiple health checks into a single
// composite check:
//
//	agg := health.NewAggregator()
//	agg.Register("backend-breaker", health.NewCircuitBreakerChecker(cb))
//	agg.Register("db-bulkhead", health.NewBulkheadChecker(bh))
//
//	results := agg.CheckAll(ctx)
//	overall := agg.OverallStatus(results)
package health
