package sh2

// WDT is the SH-2's watchdog timer, shared between two modes: interval
// timer (periodic interrupt) and watchdog (reset if not serviced). Only the
// interval-timer mode is exercised by typical Saturn software, so that is
// what's modelled (spec §3 "WDT").
type WDT struct {
	Counter uint8
	enabled bool
	watchdogMode bool

	Prescale uint32
	accum    uint32

	intc *INTC
}

// NewWDT creates a watchdog/interval timer that requests interrupts
// through intc.
func NewWDT(intc *INTC) *WDT {
	return &WDT{Prescale: 64, intc: intc}
}

// SetMode selects watchdog-reset mode (true) or interval-timer mode
// (false).
func (w *WDT) SetMode(watchdog bool) { w.watchdogMode = watchdog }

// Enable starts or stops the counter.
func (w *WDT) Enable(on bool) { w.enabled = on }

// Advance ticks the counter by cycles master-clock cycles. In interval
// mode an overflow requests an interrupt; in watchdog mode the caller
// observes the returned overflowed flag and is responsible for issuing a
// CPU reset.
func (w *WDT) Advance(cycles uint32) (overflowed bool) {
	if !w.enabled {
		return false
	}
	w.accum += cycles
	for w.accum >= w.Prescale {
		w.accum -= w.Prescale
		w.Counter++
		if w.Counter == 0 {
			overflowed = true
			if !w.watchdogMode {
				w.intc.Request("WDT-ITI")
			}
		}
	}
	return overflowed
}
