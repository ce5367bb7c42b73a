package obslog

import (
	"fmt"
	"io"
	"sync"

	"github.com/bfunes/runwaysim/internal/descriptor"
)

// Narrator emits fixed, human-readable status lines as plain text to an
// io.Writer rather than through slog, since their wording is part of the
// simulation's observable contract. Tests construct a Narrator over a
// bytes.Buffer to assert on ordering and content. Writes from concurrent
// callers are serialised, one line at a time.
type Narrator struct {
	mu sync.Mutex
	w  io.Writer
}

// NewNarrator returns a Narrator writing to w.
func NewNarrator(w io.Writer) *Narrator {
	return &Narrator{w: w}
}

func (n *Narrator) printf(format string, args ...any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, format+"\n", args...)
}

// Startup announces the simulation size and controller arrival.
func (n *Narrator) Startup(count int) {
	n.printf("Starting runway simulation with %d aircraft ...", count)
	n.printf("The air traffic controller arrived and is beginning operations")
}

// Admitted announces an aircraft's admission to the runway.
func (n *Narrator) Admitted(class descriptor.Class, id int, fuelSeconds int, dir descriptor.Direction) {
	n.printf("%s aircraft %d (fuel: %ds) is now on the runway (direction: %s)", class, id, fuelSeconds, dir)
}

// RunwayBegin announces the start of an aircraft's runway occupancy.
func (n *Narrator) RunwayBegin(class descriptor.Class, id int, runwaySeconds int) {
	n.printf("%s aircraft %d begins runway operations for %d seconds", class, id, runwaySeconds)
}

// RunwayComplete announces the end of an aircraft's runway occupancy.
func (n *Narrator) RunwayComplete(class descriptor.Class, id int) {
	n.printf("%s aircraft %d completes runway operations and prepares to depart", class, id)
}

// Departed announces an aircraft has cleared the runway.
func (n *Narrator) Departed(class descriptor.Class, id int) {
	n.printf("%s aircraft %d has cleared the runway", class, id)
}

// LowFuelPromotion announces an aircraft exhausting its fuel reserve while
// still waiting.
func (n *Narrator) LowFuelPromotion(class descriptor.Class, id int) {
	n.printf("EMERGENCY: %s Aircraft %d has ran out of reserved fuel and will land imminently!", class, id)
}

// TakingBreak announces the controller beginning a mandatory rest.
func (n *Narrator) TakingBreak() {
	n.printf("The air traffic controller is taking a break now.")
}

// SwitchingDirection announces a direction switch beginning; its
// completion is announced separately by DirectionSwitched.
func (n *Narrator) SwitchingDirection(from, to descriptor.Direction) {
	n.printf("Switching runway direction from %s to %s", from, to)
}

// DirectionSwitched announces a direction switch has completed.
func (n *Narrator) DirectionSwitched(to descriptor.Direction) {
	n.printf("Runway direction switched to %s", to)
}

// Done announces simulation termination.
func (n *Narrator) Done() {
	n.printf("Runway simulation done.")
}

// Summary prints the end-of-run report. It always follows Done.
func (n *Narrator) Summary(commercial, cargo, emergency, lowFuel, switches, rests int, elapsedSeconds float64) {
	n.printf("Summary: commercial=%d cargo=%d emergency=%d low_fuel_promotions=%d direction_switches=%d rests=%d elapsed=%.2fs",
		commercial, cargo, emergency, lowFuel, switches, rests, elapsedSeconds)
}

// RecentEventsHeader introduces the tail-of-run event listing that follows
// Summary.
func (n *Narrator) RecentEventsHeader(count int) {
	n.printf("Last %d events:", count)
}

// RecentAdmission prints one admission event from the tail-of-run listing.
func (n *Narrator) RecentAdmission(class descriptor.Class, lowFuel bool) {
	if lowFuel {
		n.printf("  - admission: %s (low-fuel)", class)
		return
	}
	n.printf("  - admission: %s", class)
}

// RecentSwitch prints one direction-switch event from the tail-of-run
// listing.
func (n *Narrator) RecentSwitch() {
	n.printf("  - direction switch")
}

// RecentRest prints one rest event from the tail-of-run listing.
func (n *Narrator) RecentRest() {
	n.printf("  - rest")
}
