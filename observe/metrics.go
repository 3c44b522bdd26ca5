package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome classifies how an admitted subscription ended.
type Outcome string

const (
	// OutcomeSuccess means the stream completed normally.
	OutcomeSuccess Outcome = "success"
	// OutcomeFailure means the stream ended in an error.
	OutcomeFailure Outcome = "failure"
	// OutcomeAbandoned means the consumer cancelled before a terminal
	// signal.
	OutcomeAbandoned Outcome = "abandoned"
)

// Metrics records guard lifecycle events.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordAdmission records an admission decision for the named policy.
	RecordAdmission(ctx context.Context, policy string, admitted bool)

	// RecordOutcome records the terminal outcome of an admitted
	// subscription.
	RecordOutcome(ctx context.Context, policy string, outcome Outcome)

	// RecordViolation records a producer-side protocol violation.
	RecordViolation(ctx context.Context, policy string)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter          metric.Meter
	admissionCount metric.Int64Counter
	outcomeCount   metric.Int64Counter
	violationCount metric.Int64Counter
}

// NewMetrics creates a Metrics instance recording through the given
// meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	admissionCount, err := meter.Int64Counter(
		"stream.guard.admissions",
		metric.WithDescription("Admission decisions made by guarded subscriptions"),
		metric.WithUnit("{subscription}"),
	)
	if err != nil {
		return nil, err
	}

	outcomeCount, err := meter.Int64Counter(
		"stream.guard.outcomes",
		metric.WithDescription("Terminal outcomes of admitted subscriptions"),
		metric.WithUnit("{subscription}"),
	)
	if err != nil {
		return nil, err
	}

	violationCount, err := meter.Int64Counter(
		"stream.guard.violations",
		metric.WithDescription("Producer protocol violations observed by guards"),
		metric.WithUnit("{violation}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:          meter,
		admissionCount: admissionCount,
		outcomeCount:   outcomeCount,
		violationCount: violationCount,
	}, nil
}

func (m *metricsImpl) RecordAdmission(ctx context.Context, policy string, admitted bool) {
	m.admissionCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("policy.name", policy),
		attribute.Bool("admitted", admitted),
	))
}

func (m *metricsImpl) RecordOutcome(ctx context.Context, policy string, outcome Outcome) {
	m.outcomeCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("policy.name", policy),
		attribute.String("outcome", string(outcome)),
	))
}

func (m *metricsImpl) RecordViolation(ctx context.Context, policy string) {
	m.violationCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("policy.name", policy),
	))
}

// nopMetrics discards everything.
type nopMetrics struct{}

// NopMetrics returns a Metrics that records nothing. It is the default
// for guards built without WithMetrics.
func NopMetrics() Metrics {
	return nopMetrics{}
}

func (nopMetrics) RecordAdmission(ctx context.Context, policy string, admitted bool) {}
func (nopMetrics) RecordOutcome(ctx context.Context, policy string, outcome Outcome) {}
func (nopMetrics) RecordViolation(ctx context.Context, policy string)                {}
