package resilience

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// BulkheadConfig configures the bulkhead.
type BulkheadConfig struct {
	// Name identifies this bulkhead in rejection errors and telemetry.
	// Default: "bulkhead"
	Name string

	// MaxConcurrent is the maximum number of concurrent admissions.
	// Default: 10
	MaxConcurrent int

	// MaxWait is the maximum time Acquire waits for a slot.
	// Default: 0 (no waiting, fail immediately)
	MaxWait time.Duration
}

// Bulkhead limits concurrent admissions. TryAcquire reserves a slot;
// any of the Report methods hands it back. An admitted run therefore
// holds its slot until exactly one outcome or release report arrives.
type Bulkhead struct {
	config BulkheadConfig
	sem    *semaphore.Weighted

	mu        sync.Mutex
	active    int
	maxActive int
	rejected  int64
}

// NewBulkhead creates a new bulkhead.
func NewBulkhead(config BulkheadConfig) *Bulkhead {
	// Apply defaults
	if config.Name == "" {
		config.Name = "bulkhead"
	}
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 10
	}

	return &Bulkhead{
		config: config,
		sem:    semaphore.NewWeighted(int64(config.MaxConcurrent)),
	}
}

// Name returns the configured bulkhead name.
func (b *Bulkhead) Name() string {
	return b.config.Name
}

// TryAcquire reserves a slot without waiting.
func (b *Bulkhead) TryAcquire() bool {
	if !b.sem.TryAcquire(1) {
		b.mu.Lock()
		b.rejected++
		b.mu.Unlock()
		return false
	}
	b.admitted()
	return true
}

// Acquire reserves a slot, waiting up to MaxWait when none is free.
// Returns ErrBulkheadFull if no slot frees up in time.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	if b.sem.TryAcquire(1) {
		b.admitted()
		return nil
	}

	// No immediate slot available
	if b.config.MaxWait <= 0 {
		b.mu.Lock()
		b.rejected++
		b.mu.Unlock()
		return ErrBulkheadFull
	}

	waitCtx, cancel := context.WithTimeout(ctx, b.config.MaxWait)
	defer cancel()

	if err := b.sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		b.mu.Lock()
		b.rejected++
		b.mu.Unlock()
		return ErrBulkheadFull
	}

	b.admitted()
	return nil
}

// ReportSuccess releases the slot held by an admitted run.
func (b *Bulkhead) ReportSuccess() {
	b.Release()
}

// ReportFailure releases the slot held by an admitted run. The error
// does not affect the bulkhead.
func (b *Bulkhead) ReportFailure(err error) {
	b.Release()
}

// ReportRelease releases the slot of an admitted run that was
// abandoned before a terminal outcome.
func (b *Bulkhead) ReportRelease() {
	b.Release()
}

// Release releases a slot in the bulkhead. Each release must pair with
// a prior successful acquire.
func (b *Bulkhead) Release() {
	b.mu.Lock()
	if b.active <= 0 {
		// Unbalanced release, nothing to hand back
		b.mu.Unlock()
		return
	}
	b.active--
	b.mu.Unlock()
	b.sem.Release(1)
}

// FullError returns the rejection error delivered when this bulkhead
// denies admission. It matches ErrBulkheadFull via errors.Is.
func (b *Bulkhead) FullError() error {
	return fmt.Errorf("bulkhead %q: %w", b.config.Name, ErrBulkheadFull)
}

// Execute runs the operation within the bulkhead.
func (b *Bulkhead) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := b.Acquire(ctx); err != nil {
		return err
	}
	defer b.Release()

	return op(ctx)
}

func (b *Bulkhead) admitted() {
	b.mu.Lock()
	b.active++
	if b.active > b.maxActive {
		b.maxActive = b.active
	}
	b.mu.Unlock()
}

// Metrics returns current bulkhead metrics.
func (b *Bulkhead) Metrics() BulkheadMetrics {
	b.mu.Lock()
	defer b.mu.Unlock()

	return BulkheadMetrics{
		Active:        b.active,
		MaxActive:     b.maxActive,
		Available:     b.config.MaxConcurrent - b.active,
		MaxConcurrent: b.config.MaxConcurrent,
		Rejected:      b.rejected,
	}
}

// BulkheadMetrics contains bulkhead statistics.
type BulkheadMetrics struct {
	Active        int
	MaxActive     int
	Available     int
	MaxConcurrent int
	Rejected      int64
}

var (
	_ Policy   = (*Bulkhead)(nil)
	_ Releaser = (*Bulkhead)(nil)
)
