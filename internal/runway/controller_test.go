package runway_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfunes/runwaysim/internal/clock"
	"github.com/bfunes/runwaysim/internal/descriptor"
	"github.com/bfunes/runwaysim/internal/runway"
	"github.com/bfunes/runwaysim/internal/tuning"
)

func newTestController() (*runway.Controller, *clock.Fake) {
	fc := clock.NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	return runway.NewController(tuning.Default(), fc), fc
}

func TestEnqueueAdmitFIFOWithinClass(t *testing.T) {
	c, _ := newTestController()
	a := c.Enqueue(descriptor.Commercial)
	b := c.Enqueue(descriptor.Commercial)

	admitted, ok := c.Admit(descriptor.Commercial, false)
	require.True(t, ok)
	assert.Same(t, a, admitted)

	admitted, ok = c.Admit(descriptor.Commercial, false)
	require.True(t, ok)
	assert.Same(t, b, admitted)
}

func TestAdmitPreferLowFuelTier(t *testing.T) {
	c, _ := newTestController()
	normal := c.Enqueue(descriptor.Cargo)
	lowFuel := c.Enqueue(descriptor.Cargo)
	require.True(t, c.PromoteToLowFuel(lowFuel))

	admitted, ok := c.Admit(descriptor.Cargo, true)
	require.True(t, ok)
	assert.Same(t, lowFuel, admitted)

	admitted, ok = c.Admit(descriptor.Cargo, false)
	require.True(t, ok)
	assert.Same(t, normal, admitted)
}

func TestPromoteToLowFuelRejectsDoublePromotion(t *testing.T) {
	c, _ := newTestController()
	tk := c.Enqueue(descriptor.Commercial)
	require.True(t, c.PromoteToLowFuel(tk))
	assert.False(t, c.PromoteToLowFuel(tk))
}

func TestPromoteToLowFuelRejectsAfterAdmission(t *testing.T) {
	c, _ := newTestController()
	tk := c.Enqueue(descriptor.Commercial)
	_, ok := c.Admit(descriptor.Commercial, false)
	require.True(t, ok)
	assert.False(t, c.PromoteToLowFuel(tk))
}

func TestAdmitAccountingBeforeSignal(t *testing.T) {
	c, _ := newTestController()
	tk := c.Enqueue(descriptor.Commercial)

	admittedDir := make(chan descriptor.Direction, 1)
	go func() {
		admittedDir <- c.AwaitAdmission(tk)
	}()

	// Give the waiter a moment to block on the condition variable before
	// admitting, so this exercises the real wait path rather than a
	// same-goroutine shortcut.
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Admit(descriptor.Commercial, false)
	require.True(t, ok)

	select {
	case dir := <-admittedDir:
		assert.Equal(t, descriptor.North, dir)
	case <-time.After(time.Second):
		t.Fatal("waiter never woke")
	}

	snap := c.Snapshot()
	assert.Equal(t, 1, snap.Occupants)
	assert.Equal(t, 1, snap.CommercialOnRunway)
	assert.Equal(t, 1, snap.ConsecutiveInDirection)
	assert.Equal(t, 1, snap.SinceRest)
}

func TestAwaitAdmissionOrDeadlineExpires(t *testing.T) {
	c, fc := newTestController()
	tk := c.Enqueue(descriptor.Cargo)
	deadline := fc.Now().Add(20 * time.Second)

	result := make(chan bool, 1)
	go func() {
		_, expired := c.AwaitAdmissionOrDeadline(tk, deadline)
		result <- expired
	}()

	time.Sleep(5 * time.Millisecond)
	fc.Advance(20 * time.Second)

	select {
	case expired := <-result:
		assert.True(t, expired)
	case <-time.After(time.Second):
		t.Fatal("wait never returned after deadline")
	}
}

func TestAwaitAdmissionOrDeadlineAdmittedBeforeDeadline(t *testing.T) {
	c, fc := newTestController()
	tk := c.Enqueue(descriptor.Commercial)
	deadline := fc.Now().Add(30 * time.Second)

	result := make(chan bool, 1)
	go func() {
		_, expired := c.AwaitAdmissionOrDeadline(tk, deadline)
		result <- expired
	}()

	time.Sleep(5 * time.Millisecond)
	_, ok := c.Admit(descriptor.Commercial, false)
	require.True(t, ok)

	select {
	case expired := <-result:
		assert.False(t, expired)
	case <-time.After(time.Second):
		t.Fatal("wait never returned after admission")
	}
}

func TestDepartDoesNotTouchDirectionOrRest(t *testing.T) {
	c, _ := newTestController()
	c.Enqueue(descriptor.Commercial)
	_, ok := c.Admit(descriptor.Commercial, false)
	require.True(t, ok)

	before := c.Snapshot()
	c.Depart(descriptor.Commercial)
	after := c.Snapshot()

	assert.Equal(t, before.ConsecutiveInDirection, after.ConsecutiveInDirection)
	assert.Equal(t, before.SinceRest, after.SinceRest)
	assert.Equal(t, 0, after.Occupants)
}

func TestSwitchDirectionRequiresEmptyRunway(t *testing.T) {
	c, _ := newTestController()
	c.Enqueue(descriptor.Commercial)
	_, ok := c.Admit(descriptor.Commercial, false)
	require.True(t, ok)

	err := c.SwitchDirection(descriptor.South)
	assert.ErrorIs(t, err, runway.ErrInvariantViolation)
}

func TestSwitchDirectionBlocksForConfiguredDuration(t *testing.T) {
	c, fc := newTestController()
	done := make(chan error, 1)
	go func() { done <- c.SwitchDirection(descriptor.South) }()

	time.Sleep(5 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("SwitchDirection returned before the clock advanced")
	default:
	}

	fc.Advance(tuning.Default().DirectionSwitchDuration)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("SwitchDirection never returned")
	}
	assert.Equal(t, descriptor.South, c.Snapshot().Direction)
	assert.Equal(t, 0, c.Snapshot().ConsecutiveInDirection)
}

func TestCheckInvariantsCatchesClassMixing(t *testing.T) {
	snap := runway.Snapshot{
		Occupants:          2,
		CommercialOnRunway: 1,
		CargoOnRunway:      1,
		Direction:          descriptor.North,
	}
	err := runway.CheckInvariants(snap)
	assert.ErrorIs(t, err, runway.ErrInvariantViolation)
}

func TestCheckInvariantsPassesOnConsistentState(t *testing.T) {
	snap := runway.Snapshot{
		Occupants:          1,
		CommercialOnRunway: 1,
		Direction:          descriptor.North,
	}
	assert.NoError(t, runway.CheckInvariants(snap))
}
