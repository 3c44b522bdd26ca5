package guard

import "sync/atomic"

// permitState tracks the admission decision for one subscription.
type permitState int32

const (
	// permitPending means no decision has been made yet.
	permitPending permitState = iota
	// permitAcquired means the policy granted admission; exactly one
	// outcome report is owed.
	permitAcquired
	// permitRejected means the policy denied admission; no outcome
	// report is ever owed. Terminal.
	permitRejected
	// permitReleased means the owed outcome has been reported. Terminal.
	permitReleased
)

func (s permitState) String() string {
	switch s {
	case permitPending:
		return "pending"
	case permitAcquired:
		return "acquired"
	case permitRejected:
		return "rejected"
	case permitReleased:
		return "released"
	default:
		return "unknown"
	}
}

// permit is the single-winner admission state machine. The only legal
// transitions are pending->acquired, pending->rejected and
// acquired->released, each taken by exactly one compare-and-swap
// winner.
type permit struct {
	state atomic.Int32
}

// tryAcquire consults the policy's admission check at most once.
// Callers that find the state already past pending lose without the
// policy being touched. The winner owns the cell, so a rejection is a
// plain store.
func (p *permit) tryAcquire(try func() bool) bool {
	if !p.state.CompareAndSwap(int32(permitPending), int32(permitAcquired)) {
		return false
	}
	if !try() {
		p.state.Store(int32(permitRejected))
		return false
	}
	return true
}

// acquired reports whether a permit is held and not yet released.
func (p *permit) acquired() bool {
	return permitState(p.state.Load()) == permitAcquired
}

// releaseOnce returns true only to the single caller that moves the
// permit from acquired to released. Racing terminal signals and
// cancellation all funnel through here; the loser must not report an
// outcome.
func (p *permit) releaseOnce() bool {
	return p.state.CompareAndSwap(int32(permitAcquired), int32(permitReleased))
}
