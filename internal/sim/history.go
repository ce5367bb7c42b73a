package sim

import (
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/bfunes/runwaysim/internal/clock"
	"github.com/bfunes/runwaysim/internal/descriptor"
)

// historyCap bounds the recent-events cache regardless of run size. 1000
// aircraft can each produce at most one admission event plus however many
// direction switches and rests the controller takes, so 2048 leaves
// headroom without letting the cache grow unbounded for a larger caller;
// entries beyond the cap simply age out of Recent's view, which only ever
// reports a handful of the most recent ones.
const historyCap = 2048

// Event is one admission, direction-switch, or rest, recorded for the
// recent-events cache. It never feeds back into scheduling decisions. Seq
// orders events for Recent, since the cache itself makes no ordering
// guarantee once it starts evicting.
type Event struct {
	Seq     uint64
	Kind    string
	Class   descriptor.Class
	LowFuel bool
	At      time.Time
}

// History is a bounded recorder of admission, direction-switch, and rest
// events, implementing both aircraft.AdmissionRecorder and
// control.EventRecorder by duck typing. Summary's counters are plain
// running totals; the LRU cache backs Recent, which the driver consults
// to print the tail of the run after the summary line.
type History struct {
	mu    sync.Mutex
	cache *expirable.LRU[uint64, Event]
	seq   uint64
	clk   clock.Clock
	start time.Time

	commercialAdmissions int
	cargoAdmissions      int
	emergencyAdmissions  int
	lowFuelPromotions    int
	directionSwitches    int
	rests                int
}

// NewHistory returns an empty History recorder starting its elapsed-time
// clock now.
func NewHistory(clk clock.Clock) *History {
	return &History{
		cache: expirable.NewLRU[uint64, Event](historyCap, nil, 0),
		clk:   clk,
		start: clk.Now(),
	}
}

// RecordAdmission appends an admission event and updates its class and
// low-fuel counters.
func (h *History) RecordAdmission(class descriptor.Class, lowFuel bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	h.cache.Add(h.seq, Event{Seq: h.seq, Kind: "admission", Class: class, LowFuel: lowFuel, At: h.clk.Now()})
	switch class {
	case descriptor.Commercial:
		h.commercialAdmissions++
	case descriptor.Cargo:
		h.cargoAdmissions++
	case descriptor.Emergency:
		h.emergencyAdmissions++
	}
	if lowFuel {
		h.lowFuelPromotions++
	}
}

// RecordDirectionSwitch appends a direction-switch event.
func (h *History) RecordDirectionSwitch() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	h.cache.Add(h.seq, Event{Seq: h.seq, Kind: "switch", At: h.clk.Now()})
	h.directionSwitches++
}

// RecordRest appends a rest event.
func (h *History) RecordRest() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	h.cache.Add(h.seq, Event{Seq: h.seq, Kind: "rest", At: h.clk.Now()})
	h.rests++
}

// Recent returns the last n events still held in the cache, oldest first.
// Events older than historyCap entries back have already aged out of the
// cache and are not returned.
func (h *History) Recent(n int) []Event {
	h.mu.Lock()
	values := h.cache.Values()
	h.mu.Unlock()

	sort.Slice(values, func(i, j int) bool { return values[i].Seq < values[j].Seq })
	if len(values) > n {
		values = values[len(values)-n:]
	}
	return values
}

// Summary is the end-of-run report the driver prints after the controller
// is cancelled.
type Summary struct {
	CommercialAdmissions int
	CargoAdmissions      int
	EmergencyAdmissions  int
	LowFuelPromotions    int
	DirectionSwitches    int
	Rests                int
	Elapsed              time.Duration
}

// Summary computes the end-of-run report from the recorded counters.
func (h *History) Summary() Summary {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Summary{
		CommercialAdmissions: h.commercialAdmissions,
		CargoAdmissions:      h.cargoAdmissions,
		EmergencyAdmissions:  h.emergencyAdmissions,
		LowFuelPromotions:    h.lowFuelPromotions,
		DirectionSwitches:    h.directionSwitches,
		Rests:                h.rests,
		Elapsed:              h.clk.Now().Sub(h.start),
	}
}
