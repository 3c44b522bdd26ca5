package stream

// Subscription is the handle a producer gives its consumer when a
// subscription is established. The consumer uses it to stop the
// producer's work early.
//
// Contract:
// - Concurrency: Cancel and Cancelled must be safe for concurrent use.
// - Cancel is idempotent; calls after the first are no-ops.
type Subscription interface {
	// Cancel releases the producer-side resources of this subscription.
	Cancel()

	// Cancelled reports whether Cancel has been called.
	Cancelled() bool
}

// Subscriber consumes a multi-item stream.
//
// Contract:
// - OnSubscribe is called exactly once, before any other signal.
// - OnNext may be called any number of times after OnSubscribe.
// - At most one of OnError or OnComplete is called; no signal follows
//   a terminal one.
type Subscriber[T any] interface {
	OnSubscribe(s Subscription)
	OnNext(value T)
	OnError(err error)
	OnComplete()
}

// SingleSubscriber consumes a single-result stream: exactly one of
// OnSuccess or OnError follows OnSubscribe.
type SingleSubscriber[T any] interface {
	OnSubscribe(s Subscription)
	OnSuccess(value T)
	OnError(err error)
}

// Publisher produces a multi-item stream. Subscribe may be called any
// number of times; each call starts an independent subscription.
type Publisher[T any] interface {
	Subscribe(s Subscriber[T])
}

// Single produces exactly one value or an error per subscription.
type Single[T any] interface {
	Subscribe(s SingleSubscriber[T])
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc[T any] func(s Subscriber[T])

// Subscribe calls f(s).
func (f PublisherFunc[T]) Subscribe(s Subscriber[T]) { f(s) }

// SingleFunc adapts a function to the Single interface.
type SingleFunc[T any] func(s SingleSubscriber[T])

// Subscribe calls f(s).
func (f SingleFunc[T]) Subscribe(s SingleSubscriber[T]) { f(s) }
