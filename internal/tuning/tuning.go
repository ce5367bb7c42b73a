// Package tuning collects the named constants that govern admission
// scheduling: capacity, rest, fuel bounds, and timing. It has no
// dependencies so every other package can import it without risk of a
// cycle.
package tuning

import "time"

// Tuning holds every constant the controller and aircraft agents consult.
// Zero value is not meaningful; use Default or a config-loaded override of
// it.
type Tuning struct {
	RunwayCapacity int
	RestLimit      int

	DirectionStreakLimit int
	DirectionClampValue  int
	ClassStreakLimit     int

	FuelReserveMinSeconds int
	FuelReserveMaxSeconds int

	EmergencyDeadline       time.Duration
	DirectionSwitchDuration time.Duration
	RestDuration            time.Duration
	ControllerPollInterval  time.Duration

	MaxAircraft int
}

// Default returns the admission controller's standard operating constants.
func Default() Tuning {
	return Tuning{
		RunwayCapacity:          2,
		RestLimit:               8,
		DirectionStreakLimit:    3,
		DirectionClampValue:     2,
		ClassStreakLimit:        4,
		FuelReserveMinSeconds:   20,
		FuelReserveMaxSeconds:   60,
		EmergencyDeadline:       30 * time.Second,
		DirectionSwitchDuration: 5 * time.Second,
		RestDuration:            5 * time.Second,
		ControllerPollInterval:  100 * time.Millisecond,
		MaxAircraft:             1000,
	}
}
