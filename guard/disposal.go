package guard

import (
	"sync/atomic"

	"github.com/jonwraymond/streamops/stream"
)

// disposalCell tags the lifecycle of the upstream handle. A nil
// pointer in the disposal cell means no handle has arrived yet.
type disposalCell struct {
	disposed bool
	upstream stream.Subscription // nil in the disposed cell
}

// disposal is a one-shot reference cell for the upstream subscription
// handle. Once it holds a live handle or the disposed tag it never
// changes again, except for the single live->disposed transition.
type disposal struct {
	cell atomic.Pointer[disposalCell]
}

// setOnce stores the first upstream handle. A redundant handle is
// cancelled on the spot and reported through violation, since a
// well-formed producer establishes a subscription at most once. Errors
// from cancelling the redundant handle are not surfaced; the violation
// report is.
func (d *disposal) setOnce(upstream stream.Subscription, violation func(error)) bool {
	if d.cell.CompareAndSwap(nil, &disposalCell{upstream: upstream}) {
		return true
	}
	upstream.Cancel()
	if cur := d.cell.Load(); cur != nil && !cur.disposed {
		violation(ErrAlreadySubscribed)
	}
	return false
}

// disposeOnce moves the cell to its terminal disposed tag, cancelling
// any live handle it captured. Only the transition's winner observes
// true, so side effects hung off it fire at most once.
func (d *disposal) disposeOnce() bool {
	if cur := d.cell.Load(); cur != nil && cur.disposed {
		return false
	}
	old := d.cell.Swap(&disposalCell{disposed: true})
	if old != nil && old.disposed {
		return false
	}
	if old != nil && old.upstream != nil {
		old.upstream.Cancel()
	}
	return true
}

// isDisposed reports whether the cell reached its terminal tag.
func (d *disposal) isDisposed() bool {
	cur := d.cell.Load()
	return cur != nil && cur.disposed
}
