package resilience

// Policy admits or rejects protected work and is told how each
// admitted unit of work ended.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use; one
//   Policy instance is shared by many in-flight units of work.
// - TryAcquire must not block.
// - Exactly one ReportSuccess or ReportFailure call follows each
//   successful TryAcquire; no outcome call follows a rejected one.
type Policy interface {
	// Name identifies the policy instance in errors and telemetry.
	Name() string

	// TryAcquire reports whether the protected work may proceed. It may
	// update internal counters or reserve capacity as a side effect.
	TryAcquire() bool

	// ReportSuccess records that an admitted unit of work completed
	// normally.
	ReportSuccess()

	// ReportFailure records that an admitted unit of work ended in err.
	ReportFailure(err error)
}

// Releaser is implemented by policies that reserve capacity in
// TryAcquire and can hand it back without judging the outcome, e.g.
// when the consumer abandons admitted work before a terminal signal.
type Releaser interface {
	ReportRelease()
}
