package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfunes/runwaysim/internal/clock"
)

func TestRealClockSleepsApproximately(t *testing.T) {
	c := clock.Real{}
	start := c.Now()
	c.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, c.Now().Sub(start), 5*time.Millisecond)
}

func TestFakeClockSleepReleasedByAdvance(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fc := clock.NewFake(start)

	done := make(chan time.Time, 1)
	go func() {
		fc.Sleep(10 * time.Second)
		done <- fc.Now()
	}()

	select {
	case <-done:
		t.Fatal("Sleep returned before Advance")
	case <-time.After(20 * time.Millisecond):
	}

	fc.Advance(10 * time.Second)

	select {
	case woke := <-done:
		require.Equal(t, start.Add(10*time.Second), woke)
	case <-time.After(time.Second):
		t.Fatal("Sleep never returned after Advance")
	}
}

func TestFakeClockMultipleWaitersWakeIndependently(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fc := clock.NewFake(start)

	short := make(chan struct{})
	long := make(chan struct{})
	go func() { fc.Sleep(1 * time.Second); close(short) }()
	go func() { fc.Sleep(5 * time.Second); close(long) }()

	fc.Advance(1 * time.Second)
	select {
	case <-short:
	case <-time.After(time.Second):
		t.Fatal("short waiter did not wake")
	}
	select {
	case <-long:
		t.Fatal("long waiter woke too early")
	case <-time.After(20 * time.Millisecond):
	}

	fc.Advance(4 * time.Second)
	select {
	case <-long:
	case <-time.After(time.Second):
		t.Fatal("long waiter did not wake")
	}
}
