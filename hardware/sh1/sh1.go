package sh1

import (
	"github.com/saturnist/corehw/hardware/bus"
	"github.com/saturnist/corehw/hardware/sh2"
	"github.com/saturnist/corehw/system"
)

// DREQ channel indices, matching spec §4.4 ("DMAC channel 0 is the
// sector-data path from YGR to on-chip RAM; channel 1 is the host-data
// path").
const (
	DREQSector = 0
	DREQHost   = 1
)

// CPU is the SH-1 CD-block processor: an sh2.CPU interpreter core (reused
// unmodified for its decode table and instruction execution, per spec §4.4)
// wired to the SH-1's own 64 KB on-chip ROM, 4 KB on-chip RAM, and on-chip
// peripheral layout (ITU, DMAC, SCI x2, PFC, WDT, ADC, BSC, INTC, TPC).
type CPU struct {
	*sh2.CPU

	Bus *bus.Bus
	ROM ROM
	RAM RAM

	ITU  *ITU
	DMAC *sh2.DMAC
	SCI  [2]*sh2.SCI
	PFC  PFC
	WDT  *sh2.WDT
	ADC  *ADC
	BSC  sh2.BSC
	TPC  TPC
	INTC *sh2.INTC

	// CyclesPerBit is the SCI channel 0 bit clock used for the bit-serial
	// CD-drive link; when non-zero, SerialAdvance below invokes the
	// configured rx/tx callbacks every CyclesPerBit cycles (spec §4.4: "the
	// serial channel 0 bit-clock is configurable").
	CyclesPerBit uint32
	bitAccum     uint32

	serialRx func() uint8
	serialTx func(b uint8)
}

// NewCPU builds an SH-1 with its full peripheral set wired up, its on-chip
// ROM and RAM mapped onto a fresh bus, and its INTC's interrupt delivery
// hooked to the embedded sh2.CPU.
func NewCPU(instance *system.Instance) *CPU {
	b := bus.New("sh1")
	core := sh2.NewCPU(instance, "sh1", b)

	c := &CPU{
		CPU:  core,
		Bus:  b,
		INTC: sh2.NewINTC(core),
	}
	c.ITU = NewITU(c.INTC)
	c.DMAC = sh2.NewDMAC(b)
	c.SCI[0] = sh2.NewSCI(c.INTC, "SCI0-TX", "SCI0-RX")
	c.SCI[1] = sh2.NewSCI(c.INTC, "SCI1-TX", "SCI1-RX")
	c.WDT = sh2.NewWDT(c.INTC)
	c.ADC = NewADC(c.INTC)

	c.mapMemory()
	return c
}

func (c *CPU) mapMemory() {
	c.Bus.Map(&bus.Region{
		Name: "rom", Lo: 0x00000000, Hi: ROMSize - 1,
		Read8: c.ROM.Read8, Read16: c.ROM.Read16, Read32: c.ROM.Read32,
		Cost: func(uint32, int) int { return 1 },
	})
	c.Bus.Map(&bus.Region{
		Name: "ram", Lo: 0x00200000, Hi: 0x00200000 + RAMSize - 1,
		Read8: c.RAM.Read8, Read16: c.RAM.Read16, Read32: c.RAM.Read32,
		Write8: c.RAM.Write8, Write16: c.RAM.Write16, Write32: c.RAM.Write32,
		Cost: func(uint32, int) int { return 1 },
	})
}

// LoadROM validates and installs the 64 KB CD-block firmware image.
func (c *CPU) LoadROM(data []byte) error {
	return c.ROM.Load(data)
}

// SetSerialHandlers installs the SCI0 link callbacks: rx is invoked every
// CyclesPerBit cycles to pull the next byte driven by the CD drive into
// SCI0's RDR, and tx is invoked at the same cadence to hand SCI0's TDR to
// the CD drive. Each call carries a whole byte; individual bits are not
// clocked.
func (c *CPU) SetSerialHandlers(rx func() uint8, tx func(b uint8)) {
	c.serialRx = rx
	c.serialTx = tx
}

// SerialAdvance ticks the SCI0 bit clock by cycles master-clock cycles,
// invoking the rx/tx handlers whenever CyclesPerBit cycles have elapsed.
func (c *CPU) SerialAdvance(cycles uint32) {
	if c.CyclesPerBit == 0 {
		return
	}
	c.bitAccum += cycles
	for c.bitAccum >= c.CyclesPerBit {
		c.bitAccum -= c.CyclesPerBit
		if c.serialRx != nil {
			c.SCI[0].Receive(c.serialRx())
		}
		if c.serialTx != nil {
			c.serialTx(c.SCI[0].TDR)
		}
	}
}

// AssertDREQ notifies the DMAC that the named channel's request line has
// gone active, advancing that channel one transfer unit (spec §4.4:
// "DREQ#-driven transfers ... the SH-1 DMAC advances its channel one unit
// per dispatch").
func (c *CPU) AssertDREQ(channel int) {
	c.DMAC.Run(channel)
}

// Advance ticks every cycle-driven peripheral (ITU, WDT, serial bit clock)
// by cycles master-clock cycles; callers invoke this once per Step() after
// reading its returned cycle count.
func (c *CPU) Advance(cycles int) {
	n := uint32(cycles)
	c.ITU.Advance(n)
	c.WDT.Advance(n)
	c.SerialAdvance(n)
}
