package guard

import (
	"context"

	"github.com/jonwraymond/streamops/observe"
	"github.com/jonwraymond/streamops/stream"
)

// controller is the permit-gated lifecycle shared by both guard
// shapes. It owns one permit and one disposal cell, implements
// stream.Subscription so the downstream consumer cancels through it,
// and serializes the policy's single outcome report across the three
// racing actors: the producer's terminal signal, the consumer's
// Cancel, and the admission step itself.
type controller struct {
	permit   permit
	disposal disposal

	binding   binding
	violation func(error)
	logger    observe.Logger
	metrics   observe.Metrics
}

func newController(b binding, o options) *controller {
	logger := o.logger.WithPolicy(b.name)
	violation := o.violation
	if violation == nil {
		violation = func(err error) {
			logger.Error(context.Background(), "stream protocol violation",
				observe.Field{Key: "error", Value: err.Error()})
		}
	}
	return &controller{
		binding:   b,
		violation: violation,
		logger:    logger,
		metrics:   o.metrics,
	}
}

// handleSubscribe runs the subscription-established signal. The first
// upstream handle wins the disposal cell; only then is the policy
// consulted. On admission the downstream sees OnSubscribe with this
// controller as its handle. On rejection the upstream handle is
// cancelled without any policy release (nothing is owed), the
// downstream still sees OnSubscribe so a later Cancel from it is
// legal, and then the rejection is delivered as the terminal error.
func (c *controller) handleSubscribe(upstream stream.Subscription, forward func(stream.Subscription), terminate func(error)) {
	if upstream == nil {
		panic("guard: nil upstream subscription")
	}
	if !c.disposal.setOnce(upstream, c.violated) {
		return
	}
	if c.permit.tryAcquire(c.binding.tryAcquire) {
		c.metrics.RecordAdmission(context.Background(), c.binding.name, true)
		c.logger.Debug(context.Background(), "subscription admitted")
		forward(c)
		return
	}
	c.metrics.RecordAdmission(context.Background(), c.binding.name, false)
	c.logger.Debug(context.Background(), "subscription rejected")
	c.disposal.disposeOnce()
	forward(c)
	terminate(c.binding.notPermitted())
}

// permittedNext reports whether an item signal may pass downstream:
// a permit is held and the subscription has not been disposed.
func (c *controller) permittedNext() bool {
	return c.permit.acquired() && !c.disposal.isDisposed()
}

// handleError runs the error-terminal signal. The release winner
// reports the failure to the policy; the loser swallows the error
// because the downstream has already been notified by the other path.
func (c *controller) handleError(err error, forward func(error)) {
	if !c.permit.releaseOnce() {
		return
	}
	c.binding.onFailure(err)
	c.metrics.RecordOutcome(context.Background(), c.binding.name, observe.OutcomeFailure)
	if !c.disposal.isDisposed() {
		forward(err)
	}
}

// handleComplete runs the completion-terminal signal, symmetric to
// handleError with a success outcome. The single-result shape reuses
// it with the value capture in forward.
func (c *controller) handleComplete(forward func()) {
	if !c.permit.releaseOnce() {
		return
	}
	c.binding.onSuccess()
	c.metrics.RecordOutcome(context.Background(), c.binding.name, observe.OutcomeSuccess)
	if !c.disposal.isDisposed() {
		forward()
	}
}

// Cancel disposes the guarded subscription. If the permit is still
// held, the abandonment report fires; the permit CAS makes this
// mutually exclusive with the terminal signals' outcome reports.
// Repeated calls are no-ops.
func (c *controller) Cancel() {
	if !c.disposal.disposeOnce() {
		return
	}
	if c.permit.releaseOnce() {
		c.binding.onAbandon()
		c.metrics.RecordOutcome(context.Background(), c.binding.name, observe.OutcomeAbandoned)
	}
}

// Cancelled reports whether the subscription has been disposed.
func (c *controller) Cancelled() bool {
	return c.disposal.isDisposed()
}

func (c *controller) violated(err error) {
	c.metrics.RecordViolation(context.Background(), c.binding.name)
	c.violation(err)
}

var _ stream.Subscription = (*controller)(nil)
