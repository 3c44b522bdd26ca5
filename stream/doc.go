// Package stream defines the push-based stream contracts shared by the
// rest of the module.
//
// A Publisher delivers signals to a Subscriber in a fixed grammar:
// OnSubscribe exactly once, OnNext zero or more times, then at most one
// of OnError or OnComplete. A Single is the request/response shape:
// OnSubscribe exactly once, then exactly one of OnSuccess or OnError.
//
// Signals are delivered synchronously in whatever goroutine the
// producer runs in. Different signals on the same subscriber may arrive
// from different goroutines; implementations that keep state across
// signals must tolerate that.
//
// Cancellation flows the other way: the consumer calls Cancel on the
// Subscription it received in OnSubscribe, and the producer stops
// delivering as soon as it observes the cancellation.
package stream
