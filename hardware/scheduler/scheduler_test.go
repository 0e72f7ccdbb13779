// This file is part of saturncore.

package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saturnist/corehw/hardware/scheduler"
)

func TestFiresInCycleOrder(t *testing.T) {
	s := scheduler.New()
	var order []string

	a := s.Register("a", nil, func(ctx *scheduler.Context) { order = append(order, "a") })
	b := s.Register("b", nil, func(ctx *scheduler.Context) { order = append(order, "b") })

	s.ScheduleAt(b, 10)
	s.ScheduleAt(a, 5)

	s.AdvanceUntil(20)
	require.Equal(t, []string{"a", "b"}, order)
	require.Equal(t, uint64(20), s.Now())
}

func TestSameCycleFIFOTiebreak(t *testing.T) {
	s := scheduler.New()
	var order []string

	a := s.Register("a", nil, func(ctx *scheduler.Context) { order = append(order, "a") })
	b := s.Register("b", nil, func(ctx *scheduler.Context) { order = append(order, "b") })

	// scheduled for the same cycle; "a" was scheduled first so it fires first
	s.ScheduleAt(a, 10)
	s.ScheduleAt(b, 10)

	s.AdvanceUntil(10)
	require.Equal(t, []string{"a", "b"}, order)
}

func TestRescheduleSupersedes(t *testing.T) {
	s := scheduler.New()
	fired := 0

	a := s.Register("a", nil, func(ctx *scheduler.Context) { fired++ })
	s.ScheduleAt(a, 100)
	s.ScheduleAt(a, 5) // supersedes the cycle-100 scheduling

	s.AdvanceUntil(10)
	require.Equal(t, 1, fired)

	s.AdvanceUntil(200)
	require.Equal(t, 1, fired, "the superseded cycle-100 firing must not also fire")
}

func TestCancelTombstones(t *testing.T) {
	s := scheduler.New()
	fired := false

	a := s.Register("a", nil, func(ctx *scheduler.Context) { fired = true })
	s.ScheduleAt(a, 5)
	s.Cancel(a)

	s.AdvanceUntil(10)
	require.False(t, fired)
	require.Equal(t, uint64(10), s.Now())
}

func TestReschedulePeriodicEvent(t *testing.T) {
	s := scheduler.New()
	count := 0

	var id scheduler.EventID
	id = s.Register("periodic", nil, func(ctx *scheduler.Context) {
		count++
		if count < 5 {
			ctx.Reschedule(10)
		}
	})
	s.ScheduleAfter(id, 10)

	s.AdvanceUntil(1000)
	require.Equal(t, 5, count)
}

func TestScheduleInPastClampsToNowPlusOne(t *testing.T) {
	s := scheduler.New()
	fired := uint64(0)

	a := s.Register("a", nil, func(ctx *scheduler.Context) { fired = ctx.Cycle() })
	s.AdvanceUntil(50)
	s.ScheduleAt(a, 10) // already in the past relative to now=50

	s.AdvanceUntil(51)
	require.Equal(t, uint64(51), fired)
}

func TestRationalFactor(t *testing.T) {
	s := scheduler.New()
	var fireCycle uint64

	a := s.Register("a", nil, func(ctx *scheduler.Context) { fireCycle = ctx.Cycle() })
	s.SetRational(a, 1, 3) // caller units are thirds of a master cycle
	s.ScheduleAfter(a, 9)  // 9 thirds == 3 master cycles

	s.AdvanceUntil(10)
	require.Equal(t, uint64(3), fireCycle)
}

func TestMonotonicity(t *testing.T) {
	s := scheduler.New()
	var lastCycle uint64

	a := s.Register("a", nil, func(ctx *scheduler.Context) {
		require.GreaterOrEqual(t, ctx.Cycle(), lastCycle)
		require.LessOrEqual(t, ctx.Cycle(), uint64(100))
		lastCycle = ctx.Cycle()
		if ctx.Cycle() < 100 {
			ctx.Reschedule(7)
		}
	})
	s.ScheduleAfter(a, 7)
	s.AdvanceUntil(100)
	require.Equal(t, uint64(100), s.Now())
}
