package runway

import "errors"

// ErrInvariantViolation is the sentinel wrapped by every assertion failure
// in this package and by CheckInvariants. An invariant breach indicates a
// scheduler bug and is treated as fatal.
var ErrInvariantViolation = errors.New("runway: invariant violation")
