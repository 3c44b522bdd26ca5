package stream

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestNewSubscription_Cancel(t *testing.T) {
	var calls int
	s := NewSubscription(func() { calls++ })

	if s.Cancelled() {
		t.Error("Cancelled() = true before Cancel")
	}

	s.Cancel()

	if !s.Cancelled() {
		t.Error("Cancelled() = false after Cancel")
	}
	if calls != 1 {
		t.Errorf("onCancel calls = %d, want 1", calls)
	}
}

func TestNewSubscription_CancelIdempotent(t *testing.T) {
	var calls int
	s := NewSubscription(func() { calls++ })

	s.Cancel()
	s.Cancel()
	s.Cancel()

	if calls != 1 {
		t.Errorf("onCancel calls = %d, want 1", calls)
	}
}

func TestNewSubscription_NilCancel(t *testing.T) {
	s := NewSubscription(nil)

	s.Cancel() // Must not panic

	if !s.Cancelled() {
		t.Error("Cancelled() = false after Cancel")
	}
}

func TestNewSubscription_ConcurrentCancel(t *testing.T) {
	var calls atomic.Int64
	s := NewSubscription(func() { calls.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Cancel()
		}()
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("onCancel calls = %d, want 1", got)
	}
}
