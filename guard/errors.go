package guard

import "errors"

// ErrAlreadySubscribed reports a producer-side protocol violation: a
// second subscription-established signal arrived on a guard that
// already holds an upstream handle. The redundant handle is cancelled;
// the original subscription is unaffected.
var ErrAlreadySubscribed = errors.New("guard: upstream subscription already set")
