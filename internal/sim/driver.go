package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/bfunes/runwaysim/internal/aircraft"
	"github.com/bfunes/runwaysim/internal/clock"
	"github.com/bfunes/runwaysim/internal/control"
	"github.com/bfunes/runwaysim/internal/descriptor"
	"github.com/bfunes/runwaysim/internal/obslog"
	"github.com/bfunes/runwaysim/internal/randgen"
	"github.com/bfunes/runwaysim/internal/runway"
	"github.com/bfunes/runwaysim/internal/tuning"
)

// Driver owns one end-to-end simulation run: load descriptors, spawn the
// controller, spawn aircraft agents at their scheduled arrival times, join
// everything, and report a summary.
type Driver struct {
	Tuning   tuning.Tuning
	Clock    clock.Clock
	Rand     *randgen.Rand
	Narrator *obslog.Narrator
	Logger   *obslog.Logger
}

// Run loads the descriptor file at path and drives the simulation to
// completion. It returns a sentinel-wrapped error on input or descriptor
// problems; otherwise nil once every agent has departed and the controller
// has been cancelled.
func (d *Driver) Run(ctx context.Context, path string) error {
	descriptors, err := descriptor.Load(path, d.Tuning, d.Rand)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}
	if len(descriptors) == 0 || len(descriptors) > d.Tuning.MaxAircraft {
		return fmt.Errorf("%w: got %d", ErrBadDescriptorCount, len(descriptors))
	}

	d.Narrator.Startup(len(descriptors))

	monitor := runway.NewController(d.Tuning, d.Clock)
	history := NewHistory(d.Clock)

	towerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tower := &control.Tower{
		Monitor:  monitor,
		Tuning:   d.Tuning,
		Clock:    d.Clock,
		Narrator: d.Narrator,
		Logger:   d.Logger,
		Recorder: history,
	}
	towerDone := make(chan struct{})
	go func() {
		defer close(towerDone)
		tower.Run(towerCtx)
	}()

	var wg sync.WaitGroup
	for _, desc := range descriptors {
		d.Clock.Sleep(desc.InterArrivalDelay)
		wg.Add(1)
		go func(desc descriptor.Descriptor) {
			defer wg.Done()
			agent := &aircraft.Agent{
				Descriptor: desc,
				Monitor:    monitor,
				Clock:      d.Clock,
				Narrator:   d.Narrator,
				Logger:     d.Logger,
				Recorder:   history,
			}
			agent.Run()
		}(desc)
	}
	wg.Wait()

	cancel()
	<-towerDone

	d.Narrator.Done()
	s := history.Summary()
	d.Narrator.Summary(s.CommercialAdmissions, s.CargoAdmissions, s.EmergencyAdmissions,
		s.LowFuelPromotions, s.DirectionSwitches, s.Rests, s.Elapsed.Seconds())

	const recentEventCount = 5
	if recent := history.Recent(recentEventCount); len(recent) > 0 {
		d.Narrator.RecentEventsHeader(len(recent))
		for _, e := range recent {
			switch e.Kind {
			case "admission":
				d.Narrator.RecentAdmission(e.Class, e.LowFuel)
			case "switch":
				d.Narrator.RecentSwitch()
			case "rest":
				d.Narrator.RecentRest()
			}
		}
	}
	return nil
}
