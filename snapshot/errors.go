package snapshot

import "github.com/pkg/errors"

// ErrInvariantViolation is returned by Builder.Freeze when the data
// fed to it violates one of the §3 invariants the stop-time kernel is
// entitled to assume (non-monotone stop-time tables, an admin
// reference outside the admin array, ...), and by Builder.AddTrip when
// a trip's stop-time count does not match its journey pattern. Per SPEC_FULL §7 this is
// the "programmer invariant violation" error kind: it should not occur
// against correctly built data, and once it does, the caller gets a
// wrapped error with a stack so the root cause survives.
var ErrInvariantViolation = errors.New("snapshot: invariant violation")

func invariantErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvariantViolation, format, args...)
}
