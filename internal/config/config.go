// Package config loads an optional YAML file that overrides a subset of
// the default tuning constants, for experimenting with the simulation
// without recompiling. Absence of a config file is not an error.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bfunes/runwaysim/internal/tuning"
)

// overrides mirrors the fields of tuning.Tuning a user may want to tweak
// from a config file. Durations are expressed in whole seconds/
// milliseconds in YAML for readability; absent fields leave the default
// untouched, while a field present with value 0 overrides it to 0.
type overrides struct {
	RunwayCapacity          *int `yaml:"runway_capacity"`
	RestLimit               *int `yaml:"rest_limit"`
	DirectionStreakLimit    *int `yaml:"direction_streak_limit"`
	DirectionClampValue     *int `yaml:"direction_clamp_value"`
	ClassStreakLimit        *int `yaml:"class_streak_limit"`
	FuelReserveMinSeconds   *int `yaml:"fuel_reserve_min_seconds"`
	FuelReserveMaxSeconds   *int `yaml:"fuel_reserve_max_seconds"`
	EmergencyDeadlineSec    *int `yaml:"emergency_deadline_seconds"`
	DirectionSwitchSec      *int `yaml:"direction_switch_seconds"`
	RestDurationSec         *int `yaml:"rest_duration_seconds"`
	ControllerPollMillis    *int `yaml:"controller_poll_millis"`
	MaxAircraft             *int `yaml:"max_aircraft"`
}

// Load reads path (if non-empty) and applies any overrides it names on top
// of base. An empty path returns base unchanged.
func Load(path string, base tuning.Tuning) (tuning.Tuning, error) {
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read tuning config: %w", err)
	}
	var o overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return base, fmt.Errorf("parse tuning config: %w", err)
	}

	out := base
	if o.RunwayCapacity != nil {
		out.RunwayCapacity = *o.RunwayCapacity
	}
	if o.RestLimit != nil {
		out.RestLimit = *o.RestLimit
	}
	if o.DirectionStreakLimit != nil {
		out.DirectionStreakLimit = *o.DirectionStreakLimit
	}
	if o.DirectionClampValue != nil {
		out.DirectionClampValue = *o.DirectionClampValue
	}
	if o.ClassStreakLimit != nil {
		out.ClassStreakLimit = *o.ClassStreakLimit
	}
	if o.FuelReserveMinSeconds != nil {
		out.FuelReserveMinSeconds = *o.FuelReserveMinSeconds
	}
	if o.FuelReserveMaxSeconds != nil {
		out.FuelReserveMaxSeconds = *o.FuelReserveMaxSeconds
	}
	if o.EmergencyDeadlineSec != nil {
		out.EmergencyDeadline = time.Duration(*o.EmergencyDeadlineSec) * time.Second
	}
	if o.DirectionSwitchSec != nil {
		out.DirectionSwitchDuration = time.Duration(*o.DirectionSwitchSec) * time.Second
	}
	if o.RestDurationSec != nil {
		out.RestDuration = time.Duration(*o.RestDurationSec) * time.Second
	}
	if o.ControllerPollMillis != nil {
		out.ControllerPollInterval = time.Duration(*o.ControllerPollMillis) * time.Millisecond
	}
	if o.MaxAircraft != nil {
		out.MaxAircraft = *o.MaxAircraft
	}
	return out, nil
}
