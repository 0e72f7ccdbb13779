package sh1

import "github.com/saturnist/corehw/hardware/sh2"

// itsTimerChannel is one of the ITU's five 16-bit timers: a counter, two
// compare registers (GRA/GRB), and a selectable clock divider. Grounded on
// sh2.FRT (the SH-2's single free-running timer), generalised to a bank of
// five and to the ITU's four selectable prescale ratios instead of the
// FRT's fixed one.
type itsTimerChannel struct {
	Counter uint16
	GRA     uint16
	GRB     uint16

	// Prescale is one of 1 (phi), 2 (phi/2), 4 (phi/4), 8 (phi/8) -- spec
	// §4.4 "prescalers phi/phi2/phi4/phi8".
	Prescale uint32
	accum    uint32

	EnableCompareAIRQ bool
	EnableCompareBIRQ bool
	EnableOverflowIRQ bool

	CompareAFlag bool
	CompareBFlag bool
	OverflowFlag bool

	intc    *sh2.INTC
	aName   string
	bName   string
	ovName  string
}

func newTimerChannel(intc *sh2.INTC, aName, bName, ovName string) *itsTimerChannel {
	return &itsTimerChannel{Prescale: 1, intc: intc, aName: aName, bName: bName, ovName: ovName}
}

func (t *itsTimerChannel) advance(cycles uint32) {
	t.accum += cycles
	for t.accum >= t.Prescale {
		t.accum -= t.Prescale
		t.Counter++

		if t.Counter == t.GRA {
			t.CompareAFlag = true
			if t.EnableCompareAIRQ {
				t.intc.Request(t.aName)
			}
		}
		if t.Counter == t.GRB {
			t.CompareBFlag = true
			if t.EnableCompareBIRQ {
				t.intc.Request(t.bName)
			}
		}
		if t.Counter == 0 {
			t.OverflowFlag = true
			if t.EnableOverflowIRQ {
				t.intc.Request(t.ovName)
			}
		}
	}
}

// ITU is the SH-1's integrated timer unit: five independent timer channels
// sharing one interrupt controller (spec §4.4).
type ITU struct {
	Channels [5]*itsTimerChannel
}

// NewITU creates the five-channel timer unit, each channel requesting
// interrupts through intc under its own named sources.
func NewITU(intc *sh2.INTC) *ITU {
	itu := &ITU{}
	for i := range itu.Channels {
		itu.Channels[i] = newTimerChannel(intc,
			itsSourceName(i, "A"), itsSourceName(i, "B"), itsSourceName(i, "V"))
	}
	return itu
}

func itsSourceName(channel int, suffix string) string {
	return "ITU" + string(rune('0'+channel)) + "-" + suffix
}

// Advance ticks every channel by cycles master-clock cycles.
func (itu *ITU) Advance(cycles uint32) {
	for _, ch := range itu.Channels {
		ch.advance(cycles)
	}
}
