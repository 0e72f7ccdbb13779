package scu

import (
	"sort"

	"github.com/saturnist/corehw/errors"
	"github.com/saturnist/corehw/logger"
)

// Bus is the subset of hardware/bus.Bus the SCU needs to move bytes between
// memory regions. A *bus.Bus satisfies this directly.
type Bus interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Write8(addr uint32, v uint8)
	Write16(addr uint32, v uint16)
	Write32(addr uint32, v uint32)
}

// Simplified address-map ranges the SCU's write-restriction table consults
// (spec §4.7 "hardware restrictions"). The spec does not pin exact physical
// addresses, so these follow the real machine's well-known layout closely
// enough to exercise every named restriction; a from-scratch MMIO map is a
// front-end/Saturn-wiring concern, not the SCU's.
const (
	WRAMLowLo, WRAMLowHi   = 0x00200000, 0x002FFFFF
	WRAMHighLo, WRAMHighHi = 0x06000000, 0x060FFFFF
	ABusLo, ABusHi         = 0x02000000, 0x04FFFFFF
	VDP1VRAMLo, VDP1VRAMHi = 0x05C00000, 0x05C7FFFF
	VDP1RegLo, VDP1RegHi   = 0x05D00000, 0x05DFFFFF
	VDP2Lo, VDP2Hi         = 0x05E00000, 0x05FBFFFF
)

func inRange(addr, lo, hi uint32) bool { return addr >= lo && addr <= hi }

// StartFactor names what triggers a DMA channel (spec §4.7).
type StartFactor uint8

const (
	StartSoftware StartFactor = iota
	StartVBlankIn
	StartVBlankOut
	StartHBlankIn
	StartTimer0
	StartTimer1
	StartSoundRequest
	StartCDSectorEnd
)

// Channel is one of the SCU's three DMA channels. Priority 0 is serviced
// first when more than one channel is ready for the same start factor at
// once (spec §4.7 "priority levels 0-2, 0 highest").
type Channel struct {
	Priority int

	Indirect          bool
	IndirectTableAddr uint32

	Source, Dest         uint32
	Count                uint32
	SourceStep, DestStep int32
	WordSize             int // 1, 2 or 4 bytes per transfer unit

	StartFactor     StartFactor
	Enabled         bool
	InterruptMasked bool

	Busy bool
}

// indirectEntry is the simplified 12-byte table-entry layout this module
// uses for indirect-mode transfers: a count longword, a source-address
// longword whose bit 31 doubles as the table terminator, and a destination
// address longword.
type indirectEntry struct {
	count      uint32
	source     uint32
	terminator bool
	dest       uint32
}

// SCU is the System Control Unit's DMA subsystem (spec §2.7, §4.7).
type SCU struct {
	Channels [3]Channel

	bus Bus

	// RaiseInterrupt fires when channel ch completes and its interrupt is
	// unmasked.
	RaiseInterrupt func(ch int)

	aBusBusy bool
	bBusBusy bool
}

// New creates an SCU whose DMA engine moves bytes across bus.
func New(bus Bus) *SCU {
	return &SCU{bus: bus}
}

// ABusBusy reports whether a DMA transfer currently owns the A-Bus, stalling
// CPU access to it (spec §4.7 "CPU access ... stalled during DMA on that
// bus").
func (s *SCU) ABusBusy() bool { return s.aBusBusy }

// BBusBusy is ABusBusy's B-Bus equivalent.
func (s *SCU) BBusBusy() bool { return s.bBusBusy }

// Trigger fires every enabled channel whose start factor matches, in
// priority order (spec §4.7). Software-triggered channels are started
// individually via StartSoftware, typically by calling Trigger directly
// after configuring channel 0.
func (s *SCU) Trigger(factor StartFactor) {
	order := []int{0, 1, 2}
	sort.SliceStable(order, func(i, j int) bool {
		return s.Channels[order[i]].Priority < s.Channels[order[j]].Priority
	})
	for _, ch := range order {
		c := &s.Channels[ch]
		if c.Enabled && c.StartFactor == factor && !c.Busy {
			s.execute(ch)
		}
	}
}

func (s *SCU) execute(ch int) {
	c := &s.Channels[ch]
	c.Busy = true
	defer func() { c.Busy = false }()

	s.aBusBusy = inRange(c.Source, ABusLo, ABusHi) || inRange(c.Dest, ABusLo, ABusHi)
	s.bBusBusy = inRange(c.Source, WRAMHighLo, WRAMHighHi) || inRange(c.Dest, WRAMHighLo, WRAMHighHi)
	defer func() { s.aBusBusy, s.bBusBusy = false, false }()

	if c.Indirect {
		s.executeIndirect(ch)
		return
	}
	s.executeDirect(ch)
}

func (s *SCU) executeDirect(ch int) {
	c := &s.Channels[ch]
	width := c.WordSize
	if width == 0 {
		width = 4
	}

	for c.Count > 0 {
		if reason := s.checkRead(c.Source); reason != "" {
			logger.Logf(logger.Groups.SCU, "scu", "channel %d: %s", ch, errors.Errorf(errors.SCUProhibitedDMA, reason).Error())
			return
		}
		if reason := s.checkWrite(c.Dest, width); reason != "" {
			logger.Logf(logger.Groups.SCU, "scu", "channel %d: %s", ch, errors.Errorf(errors.SCUProhibitedDMA, reason).Error())
			return
		}

		s.copyUnit(c.Source, c.Dest, width)

		c.Source = uint32(int64(c.Source) + int64(c.SourceStep))
		c.Dest = uint32(int64(c.Dest) + int64(c.DestStep))
		c.Count--
	}

	s.complete(ch)
}

func (s *SCU) executeIndirect(ch int) {
	c := &s.Channels[ch]
	width := c.WordSize
	if width == 0 {
		width = 4
	}

	tableAddr := c.IndirectTableAddr
	for {
		e := s.readIndirectEntry(tableAddr)
		tableAddr += 12

		remaining := e.count
		src, dst := e.source&0x7FFFFFFF, e.dest
		for remaining > 0 {
			if reason := s.checkRead(src); reason != "" {
				logger.Logf(logger.Groups.SCU, "scu", "channel %d (indirect): %s", ch, errors.Errorf(errors.SCUProhibitedDMA, reason).Error())
				return
			}
			if reason := s.checkWrite(dst, width); reason != "" {
				logger.Logf(logger.Groups.SCU, "scu", "channel %d (indirect): %s", ch, errors.Errorf(errors.SCUProhibitedDMA, reason).Error())
				return
			}
			s.copyUnit(src, dst, width)
			src += uint32(width)
			dst += uint32(width)
			remaining--
		}

		if e.terminator {
			break
		}
	}

	c.Count = 0
	s.complete(ch)
}

func (s *SCU) readIndirectEntry(addr uint32) indirectEntry {
	count := s.bus.Read32(addr)
	source := s.bus.Read32(addr + 4)
	dest := s.bus.Read32(addr + 8)
	return indirectEntry{
		count:      count,
		source:     source,
		terminator: source&0x80000000 != 0,
		dest:       dest,
	}
}

func (s *SCU) copyUnit(src, dst uint32, width int) {
	switch width {
	case 1:
		s.bus.Write8(dst, s.bus.Read8(src))
	case 2:
		s.bus.Write16(dst, s.bus.Read16(src))
	default:
		s.bus.Write32(dst, s.bus.Read32(src))
	}
}

func (s *SCU) complete(ch int) {
	if !s.Channels[ch].InterruptMasked && s.RaiseInterrupt != nil {
		s.RaiseInterrupt(ch)
	}
}

// checkRead reports a non-empty reason if addr cannot be DMA-read (spec
// §4.7: WRAM-L unreachable, VDP2 area reads disallowed).
func (s *SCU) checkRead(addr uint32) string {
	if inRange(addr, WRAMLowLo, WRAMLowHi) {
		return "WRAM-Low is not DMA-reachable via SCU"
	}
	if inRange(addr, VDP2Lo, VDP2Hi) {
		return "VDP2 area reads are not allowed"
	}
	return ""
}

// checkWrite reports a non-empty reason if addr/width cannot be DMA-written
// (spec §4.7: WRAM-L unreachable, A-Bus writes disallowed, VDP1 register
// writes must be word-sized).
func (s *SCU) checkWrite(addr uint32, width int) string {
	if inRange(addr, WRAMLowLo, WRAMLowHi) {
		return "WRAM-Low is not DMA-reachable via SCU"
	}
	if inRange(addr, ABusLo, ABusHi) {
		return "A-Bus writes are not allowed"
	}
	if inRange(addr, VDP1RegLo, VDP1RegHi) && width != 2 {
		return "VDP1 register writes must be word-sized"
	}
	return ""
}
