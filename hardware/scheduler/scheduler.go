// This file is part of saturncore; the cycle-stepping idiom (an integer
// cycle count returned from a unit of work, driving an outer callback) is
// grounded on JetSetIlly/Gopher2600's hardware/cpu.CPU.ExecuteInstruction
// (GPLv3), generalised here into the general-purpose multi-component event
// scheduler spec §4.1 describes.

// Package scheduler implements the global monotonic-cycle event scheduler
// (spec §3, §4.1, §8 property 7): a single counter that every component
// (SH-2s, SH-1, CD drive, YGR, SCU, VDP2 scanline prep) schedules events
// against, so that the whole machine advances in lockstep on one timeline.
package scheduler

import (
	"container/heap"

	"github.com/saturnist/corehw/errors"
	"github.com/saturnist/corehw/logger"
)

// EventID identifies a registered event. Valid IDs are always > 0; the zero
// value is reserved for "no event".
type EventID uint32

// Context is passed to a firing event's callback. It exposes the cycle the
// event fired at and the idiomatic way for a periodic event to requeue
// itself.
type Context struct {
	sched *Scheduler
	id    EventID
	cycle uint64
}

// Cycle returns the absolute cycle this event fired at.
func (c *Context) Cycle() uint64 {
	return c.cycle
}

// Reschedule is the common idiom for periodic events: schedule this same
// event id to fire again delta (caller-domain) cycles from now, honouring
// the event's rational clock-ratio.
func (c *Context) Reschedule(delta uint64) {
	c.sched.ScheduleAfter(c.id, delta)
}

// RescheduleAt schedules this same event id to fire at an absolute
// master-clock cycle, bypassing the rational factor.
func (c *Context) RescheduleAt(absolute uint64) {
	c.sched.ScheduleAt(c.id, absolute)
}

// Callback is invoked when a scheduled event fires.
type Callback func(ctx *Context)

type event struct {
	id       EventID
	name     string
	context  interface{}
	callback Callback

	num, den uint64 // rational clock-ratio, schedule_after multiplies delta by num/den

	generation uint64 // bumped on every (re)schedule and on cancel; tombstones stale heap items
	scheduled  bool
	cycle      uint64 // valid only while scheduled
}

// heapItem is what actually lives in the heap. Carries a copy of the
// event's generation at push time so a superseded or cancelled schedule can
// be detected and skipped cheaply on pop, without searching/removing from
// the middle of the heap.
type heapItem struct {
	id         EventID
	cycle      uint64
	seq        uint64
	generation uint64
}

type eventHeap []heapItem

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].cycle != h[j].cycle {
		return h[i].cycle < h[j].cycle
	}
	// same-cycle ties fire in FIFO order of their schedule calls (spec §4.1)
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(heapItem)) }
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Scheduler is the single global monotonic cycle clock and event heap
// described in spec §3/§4.1. The zero value is not usable; use New.
type Scheduler struct {
	now    uint64
	heap   eventHeap
	events map[EventID]*event
	nextID EventID
	seq    uint64
}

// New creates an empty Scheduler whose cycle counter starts at zero.
func New() *Scheduler {
	return &Scheduler{
		events: make(map[EventID]*event),
	}
}

// Now returns the current master cycle.
func (s *Scheduler) Now() uint64 {
	return s.now
}

// SetNow forces the master cycle counter to cycle, used only by save-state
// restore: every already-registered event keeps its id and callback, so
// pending schedules (themselves relative to "now" at ScheduleAfter time)
// still fire in the same relative order once execution resumes.
func (s *Scheduler) SetNow(cycle uint64) {
	s.now = cycle
}

// Register allocates a new event slot, initially unscheduled. name is used
// only for diagnostics.
func (s *Scheduler) Register(name string, context interface{}, callback Callback) EventID {
	s.nextID++
	id := s.nextID
	s.events[id] = &event{
		id:       id,
		name:     name,
		context:  context,
		callback: callback,
		num:      1,
		den:      1,
	}
	return id
}

// SetRational sets the event's caller-side clock-ratio: schedule_after's
// delta is multiplied by num/den before being added to the master-cycle
// base (spec §4.1; used by the CD drive, which counts in thirds of a
// master cycle).
func (s *Scheduler) SetRational(id EventID, num, den uint64) {
	e, ok := s.events[id]
	if !ok || den == 0 {
		return
	}
	e.num, e.den = num, den
}

// ScheduleAt places the event on the heap to fire at absolute cycle
// target. A re-schedule supersedes any prior scheduling for this id.
// Scheduling for a cycle at or before "now" clamps to now+1 (spec §4.1
// failure model).
func (s *Scheduler) ScheduleAt(id EventID, target uint64) {
	e, ok := s.events[id]
	if !ok {
		return
	}
	if target <= s.now {
		target = s.now + 1
	}
	e.generation++
	e.scheduled = true
	e.cycle = target
	s.seq++
	heap.Push(&s.heap, heapItem{id: id, cycle: target, seq: s.seq, generation: e.generation})
}

// ScheduleAfter places the event on the heap to fire delta (caller-domain)
// cycles from now, scaled by the event's rational clock-ratio.
func (s *Scheduler) ScheduleAfter(id EventID, delta uint64) {
	e, ok := s.events[id]
	if !ok {
		return
	}
	scaled := delta * e.num / e.den
	if delta > 0 && scaled == 0 {
		scaled = 1
	}
	s.ScheduleAt(id, s.now+scaled)
}

// Cancel tombstones the event's current scheduling, if any. The event
// remains registered and may be scheduled again later.
func (s *Scheduler) Cancel(id EventID) {
	e, ok := s.events[id]
	if !ok {
		return
	}
	e.generation++
	e.scheduled = false
}

// IsScheduled reports whether the event currently has a live (not
// cancelled, not yet fired) scheduling.
func (s *Scheduler) IsScheduled(id EventID) bool {
	e, ok := s.events[id]
	return ok && e.scheduled
}

// AdvanceUntil repeatedly pops and fires the earliest live event with
// cycle <= target, advancing s.Now() monotonically. When the heap is
// exhausted (or the next event is beyond target) the cycle counter is
// advanced the rest of the way to target. Callbacks must not panic; an
// unhandled panic is a fatal internal error per spec §7 and is re-raised
// after logging, since there is no recovery strategy the scheduler itself
// can apply.
func (s *Scheduler) AdvanceUntil(target uint64) {
	if target < s.now {
		return
	}
	for s.heap.Len() > 0 {
		top := s.heap[0]
		if top.cycle > target {
			break
		}
		heap.Pop(&s.heap)

		e, ok := s.events[top.id]
		if !ok || e.generation != top.generation {
			// stale: cancelled or superseded by a later reschedule
			continue
		}

		s.now = top.cycle
		e.scheduled = false

		ctx := &Context{sched: s, id: top.id, cycle: top.cycle}
		s.fire(e, ctx)
	}
	if s.now < target {
		s.now = target
	}
}

func (s *Scheduler) fire(e *event, ctx *Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Logf(logger.Allow, "scheduler", "event %q panicked: %v", e.name, r)
			panic(errors.Errorf(errors.SchedulerError, r))
		}
	}()
	e.callback(ctx)
}
