package resilience

import "errors"

// Sentinel errors for resilience operations.
var (
	// ErrNotPermitted is the generic admission rejection. The named
	// rejections below all match it via errors.Is.
	ErrNotPermitted = errors.New("resilience: call not permitted")

	// ErrCircuitOpen is returned when the circuit breaker is open.
	ErrCircuitOpen = errors.New("resilience: circuit breaker is open")

	// ErrRateLimitExceeded is returned when the rate limit is exceeded.
	ErrRateLimitExceeded = errors.New("resilience: rate limit exceeded")

	// ErrBulkheadFull is returned when the bulkhead is at capacity.
	ErrBulkheadFull = errors.New("resilience: bulkhead at capacity")
)

// IsNotPermitted reports whether err is an admission rejection from
// any policy.
func IsNotPermitted(err error) bool {
	return errors.Is(err, ErrNotPermitted) ||
		errors.Is(err, ErrCircuitOpen) ||
		errors.Is(err, ErrRateLimitExceeded) ||
		errors.Is(err, ErrBulkheadFull)
}
