package runway

import (
	"fmt"

	"github.com/bfunes/runwaysim/internal/descriptor"
)

// CheckInvariants validates the runway's core consistency invariants
// against a Snapshot: occupancy bounds, class-count accounting, no
// class-mixing, and direction-class agreement. Aircraft agents call this
// immediately after admission and immediately after departure; a non-nil
// error is fatal and the caller is expected to panic on it.
func CheckInvariants(s Snapshot) error {
	if s.Occupants < 0 || s.Occupants > 2 {
		return fmt.Errorf("%w: occupants=%d out of [0,2]", ErrInvariantViolation, s.Occupants)
	}
	if sum := s.CommercialOnRunway + s.CargoOnRunway + s.EmergencyOnRunway; sum != s.Occupants {
		return fmt.Errorf("%w: class counts sum to %d, occupants=%d", ErrInvariantViolation, sum, s.Occupants)
	}
	if s.CommercialOnRunway > 0 && s.CargoOnRunway > 0 {
		return fmt.Errorf("%w: commercial and cargo sharing the runway", ErrInvariantViolation)
	}
	if s.CommercialOnRunway > 0 && s.Direction != descriptor.North {
		return fmt.Errorf("%w: commercial on runway but direction=%s", ErrInvariantViolation, s.Direction)
	}
	if s.CargoOnRunway > 0 && s.Direction != descriptor.South {
		return fmt.Errorf("%w: cargo on runway but direction=%s", ErrInvariantViolation, s.Direction)
	}
	return nil
}
