// Package runway holds the single guarded monitor for runway occupancy,
// direction, rest, and the per-(class, fuel-tier) waiting queues. Every
// operation that reads or writes shared runway state goes through this
// package so the invariants of the data model are enforced in one place.
package runway

import (
	"fmt"
	"sync"
	"time"

	"github.com/bfunes/runwaysim/internal/clock"
	"github.com/bfunes/runwaysim/internal/descriptor"
	"github.com/bfunes/runwaysim/internal/tuning"
)

type Class = descriptor.Class
type Direction = descriptor.Direction

// Controller is the single monitor guarding runway occupancy, direction,
// rest, and admission queues: one struct, one mutex, public methods
// documented thread-safe, private helpers documented "must hold the lock."
// It blocks callers via condition variables, one per class, bound to the
// same mutex.
type Controller struct {
	mu sync.Mutex

	tuning tuning.Tuning
	clk    clock.Clock

	occupants          int
	commercialOnRunway int
	cargoOnRunway      int
	emergencyOnRunway  int

	direction               Direction
	consecutiveInDirection int
	sinceRest              int

	seq uint64

	commercialNormal  waitQueue
	commercialLowFuel waitQueue
	cargoNormal       waitQueue
	cargoLowFuel      waitQueue
	emergencyWaiting  waitQueue

	commercialCond *sync.Cond
	cargoCond      *sync.Cond
	emergencyCond  *sync.Cond
}

// NewController returns a Controller with an empty runway facing north.
func NewController(tn tuning.Tuning, clk clock.Clock) *Controller {
	c := &Controller{tuning: tn, clk: clk, direction: descriptor.North}
	c.commercialCond = sync.NewCond(&c.mu)
	c.cargoCond = sync.NewCond(&c.mu)
	c.emergencyCond = sync.NewCond(&c.mu)
	return c
}

func (c *Controller) condFor(class Class) *sync.Cond {
	switch class {
	case descriptor.Commercial:
		return c.commercialCond
	case descriptor.Cargo:
		return c.cargoCond
	default:
		return c.emergencyCond
	}
}

func (c *Controller) normalQueue(class Class) *waitQueue {
	switch class {
	case descriptor.Commercial:
		return &c.commercialNormal
	case descriptor.Cargo:
		return &c.cargoNormal
	default:
		return &c.emergencyWaiting
	}
}

func (c *Controller) lowFuelQueue(class Class) *waitQueue {
	switch class {
	case descriptor.Commercial:
		return &c.commercialLowFuel
	case descriptor.Cargo:
		return &c.cargoLowFuel
	default:
		return nil
	}
}

// Enqueue registers a waiting aircraft of class and returns its ticket.
// Non-blocking: it only inserts into the appropriate normal-tier queue.
func (c *Controller) Enqueue(class Class) *Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &Ticket{seq: c.seq, class: class, enqueuedAt: c.clk.Now()}
	c.normalQueue(class).push(t)
	return t
}

// PromoteToLowFuel moves tk from the normal-tier queue to the low-fuel
// queue for its class. It is a no-op (returns false) if tk has already
// been admitted or already promoted — an agent must never regress from
// low-fuel back to normal, and must never be promoted twice.
func (c *Controller) PromoteToLowFuel(t *Ticket) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.admitted || t.lowFuel {
		return false
	}
	q := c.lowFuelQueue(t.class)
	if q == nil {
		return false // emergency agents have no low-fuel tier
	}
	if !c.normalQueue(t.class).remove(t) {
		return false
	}
	t.lowFuel = true
	q.push(t)
	return true
}

// AwaitAdmission blocks until tk is admitted, with no deadline. Used by
// emergency agents, which do not track fuel.
func (c *Controller) AwaitAdmission(t *Ticket) Direction {
	c.mu.Lock()
	defer c.mu.Unlock()
	for !t.admitted {
		c.condFor(t.class).Wait()
	}
	return t.direction
}

// AwaitAdmissionOrDeadline blocks until tk is admitted or until deadline
// passes, whichever comes first, using a timed condition wait: a one-shot
// timer goroutine broadcasts the class condition at the deadline so the
// waiter re-checks and, finding itself still unadmitted, returns with
// expired=true so the caller can promote to low-fuel.
func (c *Controller) AwaitAdmissionOrDeadline(t *Ticket, deadline time.Time) (dir Direction, expired bool) {
	c.mu.Lock()
	cond := c.condFor(t.class)
	if !t.admitted {
		go c.wakeAt(t.class, deadline)
	}
	for !t.admitted && c.clk.Now().Before(deadline) {
		cond.Wait()
	}
	admitted := t.admitted
	dir = t.direction
	c.mu.Unlock()
	return dir, !admitted
}

func (c *Controller) wakeAt(class Class, at time.Time) {
	if remaining := at.Sub(c.clk.Now()); remaining > 0 {
		c.clk.Sleep(remaining)
	}
	c.mu.Lock()
	c.condFor(class).Broadcast()
	c.mu.Unlock()
}

// Admit pops the front ticket of class's queue (the low-fuel tier when
// lowFuel is true, the normal tier otherwise; it does not fall back to the
// other tier when the chosen one is empty) and unblocks it. Preconditions — capacity,
// direction, rest — are the controller decision loop's responsibility;
// Admit performs the accounting unconditionally. Accounting happens before
// the waiter is signaled, so the controller's own next iteration never
// observes stale counts.
func (c *Controller) Admit(class Class, lowFuel bool) (*Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var q *waitQueue
	if lowFuel {
		q = c.lowFuelQueue(class)
	} else {
		q = c.normalQueue(class)
	}
	if q == nil || q.len() == 0 {
		return nil, false
	}
	t := q.popFront()
	t.admitted = true
	t.direction = c.direction

	c.occupants++
	switch class {
	case descriptor.Commercial:
		c.commercialOnRunway++
	case descriptor.Cargo:
		c.cargoOnRunway++
	case descriptor.Emergency:
		c.emergencyOnRunway++
	}
	c.consecutiveInDirection++
	c.sinceRest++

	c.condFor(class).Broadcast()
	return t, true
}

// Depart decrements occupancy for class. It never touches direction or
// since_rest.
func (c *Controller) Depart(class Class) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.occupants--
	switch class {
	case descriptor.Commercial:
		c.commercialOnRunway--
	case descriptor.Cargo:
		c.cargoOnRunway--
	case descriptor.Emergency:
		c.emergencyOnRunway--
	}
}

// SwitchDirection blocks for the configured switch duration and then sets
// the runway's direction to to, resetting consecutive_in_direction to 0.
// The caller (the control loop) must have already verified occupants = 0;
// because the controller is the only goroutine that ever admits, and it is
// the one calling SwitchDirection, no admission can occur during the
// sleep.
func (c *Controller) SwitchDirection(to Direction) error {
	c.mu.Lock()
	if c.occupants != 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: occupants=%d", ErrInvariantViolation, c.occupants)
	}
	c.mu.Unlock()

	c.clk.Sleep(c.tuning.DirectionSwitchDuration)

	c.mu.Lock()
	c.direction = to
	c.consecutiveInDirection = 0
	c.mu.Unlock()
	return nil
}

// ClampConsecutive sets consecutive_in_direction to value. Used only by
// the direction-exhaustion check's clamp path when no waiter wants the
// opposite direction.
func (c *Controller) ClampConsecutive(value int) {
	c.mu.Lock()
	c.consecutiveInDirection = value
	c.mu.Unlock()
}

// TakeRest blocks for the configured rest duration and resets since_rest
// to 0. The caller must have already verified occupants = 0.
func (c *Controller) TakeRest() error {
	c.mu.Lock()
	if c.occupants != 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: occupants=%d", ErrInvariantViolation, c.occupants)
	}
	c.mu.Unlock()

	c.clk.Sleep(c.tuning.RestDuration)

	c.mu.Lock()
	c.sinceRest = 0
	c.mu.Unlock()
	return nil
}

// Snapshot is a point-in-time, consistent copy of runway and queue state,
// used by the control loop to make decisions without holding the lock
// across its own policy logic.
type Snapshot struct {
	Occupants          int
	CommercialOnRunway int
	CargoOnRunway      int
	EmergencyOnRunway  int

	Direction              Direction
	ConsecutiveInDirection int
	SinceRest              int

	WaitingCommercial int
	WaitingCargo      int
	WaitingEmergency  int
	LowFuelCommercial int
	LowFuelCargo      int

	OldestEmergencyWait time.Duration
	HasEmergencyWaiting bool

	// Head sequence numbers let the control loop break ties between an
	// overdue emergency and a waiting low-fuel aircraft by true enqueue
	// order (lower seq waited longer), since seq is a single counter shared
	// across every class and tier.
	LowFuelCommercialHeadSeq uint64
	LowFuelCargoHeadSeq      uint64
	EmergencyHeadSeq         uint64
}

// Snapshot returns a consistent copy of all monitor-guarded state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		Occupants:              c.occupants,
		CommercialOnRunway:     c.commercialOnRunway,
		CargoOnRunway:          c.cargoOnRunway,
		EmergencyOnRunway:      c.emergencyOnRunway,
		Direction:              c.direction,
		ConsecutiveInDirection: c.consecutiveInDirection,
		SinceRest:              c.sinceRest,
		WaitingCommercial:      c.commercialNormal.len(),
		WaitingCargo:           c.cargoNormal.len(),
		WaitingEmergency:       c.emergencyWaiting.len(),
		LowFuelCommercial:      c.commercialLowFuel.len(),
		LowFuelCargo:           c.cargoLowFuel.len(),
	}
	if head := c.emergencyWaiting.peek(); head != nil {
		s.HasEmergencyWaiting = true
		s.OldestEmergencyWait = c.clk.Now().Sub(head.enqueuedAt)
		s.EmergencyHeadSeq = head.seq
	}
	if head := c.commercialLowFuel.peek(); head != nil {
		s.LowFuelCommercialHeadSeq = head.seq
	}
	if head := c.cargoLowFuel.peek(); head != nil {
		s.LowFuelCargoHeadSeq = head.seq
	}
	return s
}
