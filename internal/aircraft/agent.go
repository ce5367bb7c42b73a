// Package aircraft implements the aircraft agent protocol: enqueue, wait
// for admission (fuel-aware for commercial/cargo, direct for emergency),
// occupy the runway, and depart.
package aircraft

import (
	"github.com/bfunes/runwaysim/internal/clock"
	"github.com/bfunes/runwaysim/internal/descriptor"
	"github.com/bfunes/runwaysim/internal/obslog"
	"github.com/bfunes/runwaysim/internal/runway"
)

// AdmissionRecorder is notified of each admission, for the simulation
// driver's end-of-run summary. Defined here (the consumer) rather than in
// the recorder's package, per Go convention.
type AdmissionRecorder interface {
	RecordAdmission(class descriptor.Class, lowFuel bool)
}

// Agent runs one aircraft's protocol exactly once, per its Descriptor.
type Agent struct {
	Descriptor descriptor.Descriptor
	Monitor    *runway.Controller
	Clock      clock.Clock
	Narrator   *obslog.Narrator
	Logger     *obslog.Logger
	Recorder   AdmissionRecorder
}

// Run executes the agent protocol to completion. It panics on an
// invariant violation: an assertion failure indicates a scheduler bug,
// not a recoverable condition.
func (a *Agent) Run() {
	d := a.Descriptor
	arrival := a.Clock.Now()
	ticket := a.Monitor.Enqueue(d.Class)

	var dir descriptor.Direction
	lowFuel := false

	if d.Class == descriptor.Emergency {
		dir = a.Monitor.AwaitAdmission(ticket)
	} else {
		deadline := arrival.Add(d.FuelReserve)
		waitDir, expired := a.Monitor.AwaitAdmissionOrDeadline(ticket, deadline)
		if expired {
			if a.Monitor.PromoteToLowFuel(ticket) {
				lowFuel = true
				a.Narrator.LowFuelPromotion(d.Class, d.ID)
			}
			dir = a.Monitor.AwaitAdmission(ticket)
		} else {
			dir = waitDir
		}
	}

	a.assertInvariants("post-admission")
	if a.Recorder != nil {
		a.Recorder.RecordAdmission(d.Class, lowFuel)
	}
	a.Narrator.Admitted(d.Class, d.ID, int(d.FuelReserve.Seconds()), dir)

	a.Narrator.RunwayBegin(d.Class, d.ID, int(d.RunwayOccupancy.Seconds()))
	a.Clock.Sleep(d.RunwayOccupancy)
	a.Narrator.RunwayComplete(d.Class, d.ID)

	a.Monitor.Depart(d.Class)
	a.assertInvariants("post-departure")
	a.Narrator.Departed(d.Class, d.ID)
}

func (a *Agent) assertInvariants(phase string) {
	snap := a.Monitor.Snapshot()
	if err := runway.CheckInvariants(snap); err != nil {
		if a.Logger != nil {
			a.Logger.Error("invariant violation", "phase", phase, "aircraft", a.Descriptor.ID, "error", err)
		}
		panic(err)
	}
}
