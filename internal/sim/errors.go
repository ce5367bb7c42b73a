// Package sim is the simulation driver: it loads descriptors, seeds the
// fuel-reserve RNG, spawns the controller and aircraft agents, and joins
// them at the end of the run.
package sim

import "errors"

// Sentinel errors for the driver's failure modes. cmd/runwaysim maps each
// to an exit code via errors.Is in exactly one place.
var (
	ErrBadInvocation      = errors.New("sim: wrong argument count")
	ErrInputUnreadable    = errors.New("sim: input file could not be opened or read")
	ErrBadDescriptorCount = errors.New("sim: aircraft count out of range (must be 1-1000)")
)
