// Package control implements the controller decision loop: the single
// coordinator that cycles forever, admitting waiting aircraft, switching
// direction, and taking mandatory rests.
package control

import (
	"context"

	"github.com/bfunes/runwaysim/internal/clock"
	"github.com/bfunes/runwaysim/internal/descriptor"
	"github.com/bfunes/runwaysim/internal/obslog"
	"github.com/bfunes/runwaysim/internal/runway"
	"github.com/bfunes/runwaysim/internal/tuning"
)

// EventRecorder is notified of direction switches and rests, for the
// simulation driver's end-of-run summary.
type EventRecorder interface {
	RecordDirectionSwitch()
	RecordRest()
}

// Tower is the single decision-making actor cycling over runway.Snapshot
// state. It never mutates runway state directly except through the
// Monitor's own operations, so every admission, switch, and rest is
// observed consistently by any other reader.
type Tower struct {
	Monitor  *runway.Controller
	Tuning   tuning.Tuning
	Clock    clock.Clock
	Narrator *obslog.Narrator
	Logger   *obslog.Logger
	Recorder EventRecorder

	commercialStreak int
	cargoStreak      int
}

// Run executes the decision loop until ctx is cancelled. The shutdown flag
// is checked at the top of every iteration; no lock is ever held across
// the check.
func (t *Tower) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		t.tick()
		t.Clock.Sleep(t.Tuning.ControllerPollInterval)
	}
}

func (t *Tower) recordSwitch() {
	if t.Recorder != nil {
		t.Recorder.RecordDirectionSwitch()
	}
}

func (t *Tower) recordRest() {
	if t.Recorder != nil {
		t.Recorder.RecordRest()
	}
}

func opposite(d descriptor.Direction) descriptor.Direction {
	if d == descriptor.North {
		return descriptor.South
	}
	return descriptor.North
}

// tick evaluates one iteration of the seven-step decision order: the
// first actionable condition wins; every other branch is deferred to a
// later iteration.
func (t *Tower) tick() {
	snap := t.Monitor.Snapshot()

	// Step 1: mandatory rest.
	if snap.SinceRest >= t.Tuning.RestLimit && snap.Occupants == 0 {
		t.Narrator.TakingBreak()
		if err := t.Monitor.TakeRest(); err != nil {
			t.logError("rest", err)
			return
		}
		t.recordRest()
		return
	}

	// Step 2: direction-exhaustion check.
	if snap.ConsecutiveInDirection > t.Tuning.DirectionStreakLimit && snap.Occupants == 0 {
		oppositeWanted := false
		if snap.Direction == descriptor.North {
			oppositeWanted = snap.WaitingCargo > 0 || snap.LowFuelCargo > 0
		} else {
			oppositeWanted = snap.WaitingCommercial > 0 || snap.LowFuelCommercial > 0
		}
		if oppositeWanted {
			to := opposite(snap.Direction)
			if t.switchDirection(snap.Direction, to) {
				return
			}
		} else {
			// Clamp rather than reset to 0: one more same-direction admission
			// reaches the streak limit but not beyond it, so the check will
			// not immediately re-fire next iteration but also is not disabled
			// for long.
			t.Monitor.ClampConsecutive(t.Tuning.DirectionClampValue)
		}
	}

	// Re-read state: steps 1-2 may have mutated it.
	snap = t.Monitor.Snapshot()

	// Step 3: admission window.
	if snap.Occupants >= t.Tuning.RunwayCapacity ||
		snap.SinceRest >= t.Tuning.RestLimit ||
		snap.ConsecutiveInDirection > t.Tuning.DirectionStreakLimit {
		return
	}

	// Step 4: low-fuel priority, with an overdue emergency folded in as a
	// hard fast-path: an overdue emergency competes with low-fuel waiters
	// on the same enqueue-sequence basis rather than being silently
	// starved by a deadline with no enforcement mechanism.
	if t.admitByLowFuelOrOverdueEmergency(snap) {
		return
	}

	// Step 5: class-streak forced switch.
	if t.forcedStreakSwitch(snap) {
		return
	}

	// Step 6: ordinary emergency priority (no low-fuel waiting).
	if snap.WaitingEmergency > 0 && snap.LowFuelCommercial == 0 && snap.LowFuelCargo == 0 {
		if t.admitEmergency() {
			return
		}
	}

	// Step 7: normal class admission, preferring the current direction.
	t.normalClassAdmission(snap)
}

func (t *Tower) logError(action string, err error) {
	if t.Logger != nil {
		t.Logger.Error("controller action failed", "action", action, "error", err)
	}
}

func (t *Tower) switchDirection(from, to descriptor.Direction) bool {
	t.Narrator.SwitchingDirection(from, to)
	if err := t.Monitor.SwitchDirection(to); err != nil {
		t.logError("switch-direction", err)
		return false
	}
	t.Narrator.DirectionSwitched(to)
	t.recordSwitch()
	return true
}

func (t *Tower) admitEmergency() bool {
	ticket, ok := t.Monitor.Admit(descriptor.Emergency, false)
	if !ok {
		return false
	}
	_ = ticket
	t.commercialStreak = 0
	t.cargoStreak = 0
	return true
}

func (t *Tower) admitLowFuel(snap runway.Snapshot, class descriptor.Class) bool {
	wantDir, _ := class.PreferredDirection()
	blockingOccupant := snap.CargoOnRunway
	if class == descriptor.Cargo {
		blockingOccupant = snap.CommercialOnRunway
	}
	if blockingOccupant > 0 {
		return false
	}
	if snap.Direction != wantDir {
		if snap.Occupants != 0 {
			return false
		}
		if !t.switchDirection(snap.Direction, wantDir) {
			return false
		}
	}
	if _, ok := t.Monitor.Admit(class, true); !ok {
		return false
	}
	t.commercialStreak = 0
	t.cargoStreak = 0
	return true
}

func (t *Tower) admitByLowFuelOrOverdueEmergency(snap runway.Snapshot) bool {
	overdueEmergency := snap.HasEmergencyWaiting && snap.OldestEmergencyWait >= t.Tuning.EmergencyDeadline

	type candidate struct {
		class   descriptor.Class
		lowFuel bool
		seq     uint64
	}
	var candidates []candidate
	if snap.LowFuelCommercial > 0 {
		candidates = append(candidates, candidate{descriptor.Commercial, true, snap.LowFuelCommercialHeadSeq})
	}
	if snap.LowFuelCargo > 0 {
		candidates = append(candidates, candidate{descriptor.Cargo, true, snap.LowFuelCargoHeadSeq})
	}
	if overdueEmergency {
		candidates = append(candidates, candidate{descriptor.Emergency, false, snap.EmergencyHeadSeq})
	}
	if len(candidates) == 0 {
		return false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.seq < best.seq {
			best = c
		}
	}

	if best.class == descriptor.Emergency {
		return t.admitEmergency()
	}
	return t.admitLowFuel(snap, best.class)
}

func (t *Tower) forcedStreakSwitch(snap runway.Snapshot) bool {
	if snap.Occupants != 0 {
		return false
	}
	if t.commercialStreak >= t.Tuning.ClassStreakLimit && snap.WaitingCargo > 0 {
		if snap.Direction != descriptor.South {
			if !t.switchDirection(snap.Direction, descriptor.South) {
				return false
			}
		}
		if _, ok := t.Monitor.Admit(descriptor.Cargo, false); ok {
			t.commercialStreak = 0
			t.cargoStreak = 1
			return true
		}
	}
	if t.cargoStreak >= t.Tuning.ClassStreakLimit && snap.WaitingCommercial > 0 {
		if snap.Direction != descriptor.North {
			if !t.switchDirection(snap.Direction, descriptor.North) {
				return false
			}
		}
		if _, ok := t.Monitor.Admit(descriptor.Commercial, false); ok {
			t.cargoStreak = 0
			t.commercialStreak = 1
			return true
		}
	}
	return false
}

func (t *Tower) normalClassAdmission(snap runway.Snapshot) {
	tryCommercial := func() bool {
		if snap.WaitingCommercial == 0 || snap.CargoOnRunway > 0 {
			return false
		}
		if snap.Direction != descriptor.North {
			if snap.Occupants != 0 || !t.switchDirection(snap.Direction, descriptor.North) {
				return false
			}
		}
		if _, ok := t.Monitor.Admit(descriptor.Commercial, false); ok {
			t.commercialStreak++
			t.cargoStreak = 0
			return true
		}
		return false
	}
	tryCargo := func() bool {
		if snap.WaitingCargo == 0 || snap.CommercialOnRunway > 0 {
			return false
		}
		if snap.Direction != descriptor.South {
			if snap.Occupants != 0 || !t.switchDirection(snap.Direction, descriptor.South) {
				return false
			}
		}
		if _, ok := t.Monitor.Admit(descriptor.Cargo, false); ok {
			t.cargoStreak++
			t.commercialStreak = 0
			return true
		}
		return false
	}

	if snap.Direction == descriptor.North {
		if tryCommercial() {
			return
		}
		tryCargo()
		return
	}
	if tryCargo() {
		return
	}
	tryCommercial()
}
