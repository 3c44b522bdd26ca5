package stream

import "sync/atomic"

// subscription is a one-shot Subscription backed by an atomic flag.
type subscription struct {
	cancelled atomic.Bool
	onCancel  func()
}

// NewSubscription returns a Subscription that invokes onCancel the
// first time Cancel is called. onCancel may be nil.
func NewSubscription(onCancel func()) Subscription {
	return &subscription{onCancel: onCancel}
}

func (s *subscription) Cancel() {
	if !s.cancelled.CompareAndSwap(false, true) {
		return
	}
	if s.onCancel != nil {
		s.onCancel()
	}
}

func (s *subscription) Cancelled() bool {
	return s.cancelled.Load()
}
