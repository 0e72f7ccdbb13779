package sh1

import "github.com/saturnist/corehw/hardware/sh2"

// ADC is the SH-1's 4-channel, 10-bit analogue-to-digital converter. The CD
// block firmware never samples real analogue inputs, so each channel simply
// reports a caller-supplied fixed value -- enough to satisfy firmware that
// probes it at boot without modelling conversion timing.
type ADC struct {
	Channels [4]uint16

	ScanMode bool
	Scanning bool

	EnableIRQ bool
	done      bool

	intc *sh2.INTC
}

// NewADC creates a 4-channel converter that requests its conversion-end
// interrupt through intc.
func NewADC(intc *sh2.INTC) *ADC {
	return &ADC{intc: intc}
}

// StartConversion begins a (instant) conversion pass over the enabled
// channels, raising the end-of-conversion interrupt if enabled.
func (a *ADC) StartConversion() {
	a.Scanning = true
	a.done = true
	a.Scanning = false
	if a.EnableIRQ {
		a.intc.Request("ADC-ADI")
	}
}

// Result reads back the last sampled value for channel ch.
func (a *ADC) Result(ch int) uint16 {
	return a.Channels[ch]
}
