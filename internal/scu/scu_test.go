package scu_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saturnist/corehw/internal/scu"
)

// fakeBus is a sparse byte-addressable memory standing in for
// hardware/bus.Bus in these tests.
type fakeBus struct {
	mem map[uint32]uint8
}

func newFakeBus() *fakeBus { return &fakeBus{mem: make(map[uint32]uint8)} }

func (b *fakeBus) Read8(addr uint32) uint8 { return b.mem[addr] }
func (b *fakeBus) Read16(addr uint32) uint16 {
	return uint16(b.Read8(addr)) | uint16(b.Read8(addr+1))<<8
}
func (b *fakeBus) Read32(addr uint32) uint32 {
	return uint32(b.Read16(addr)) | uint32(b.Read16(addr+2))<<16
}
func (b *fakeBus) Write8(addr uint32, v uint8) { b.mem[addr] = v }
func (b *fakeBus) Write16(addr uint32, v uint16) {
	b.Write8(addr, uint8(v))
	b.Write8(addr+1, uint8(v>>8))
}
func (b *fakeBus) Write32(addr uint32, v uint32) {
	b.Write16(addr, uint16(v))
	b.Write16(addr+2, uint16(v>>16))
}

// TestDirectTransferCopiesWords covers the ordinary, unrestricted direct-mode
// path: WRAM-High to WRAM-High.
func TestDirectTransferCopiesWords(t *testing.T) {
	bus := newFakeBus()
	bus.Write32(scu.WRAMHighLo, 0xCAFEBABE)

	s := scu.New(bus)
	s.Channels[0] = scu.Channel{
		Priority:    0,
		Source:      scu.WRAMHighLo,
		Dest:        scu.WRAMHighLo + 0x100,
		Count:       1,
		SourceStep:  4,
		DestStep:    4,
		WordSize:    4,
		StartFactor: scu.StartSoftware,
		Enabled:     true,
	}

	raised := -1
	s.RaiseInterrupt = func(ch int) { raised = ch }

	s.Trigger(scu.StartSoftware)

	require.Equal(t, uint32(0xCAFEBABE), bus.Read32(scu.WRAMHighLo+0x100))
	require.Equal(t, uint32(0), s.Channels[0].Count)
	require.Equal(t, 0, raised)
}

// TestSceneS6ABusWriteProhibited is spec scenario S6: a DMA configured to
// write from WRAM-High into an A-Bus address must stop with its transfer
// count unchanged, because the write is prohibited outright; the channel's
// completion interrupt is not raised.
func TestSceneS6ABusWriteProhibited(t *testing.T) {
	bus := newFakeBus()
	bus.Write32(scu.WRAMHighLo, 0x11223344)

	s := scu.New(bus)
	s.Channels[1] = scu.Channel{
		Priority:    1,
		Source:      scu.WRAMHighLo,
		Dest:        scu.ABusLo,
		Count:       4,
		SourceStep:  4,
		DestStep:    4,
		WordSize:    4,
		StartFactor: scu.StartSoftware,
		Enabled:     true,
	}

	raised := false
	s.RaiseInterrupt = func(ch int) { raised = true }

	s.Trigger(scu.StartSoftware)

	require.Equal(t, uint32(4), s.Channels[1].Count, "transfer count must be unchanged when the prohibition fires")
	require.False(t, raised, "a prohibited transfer never reaches completion")
	require.Zero(t, bus.Read32(scu.ABusLo))
}

func TestWRAMLowUnreachableAsSourceOrDest(t *testing.T) {
	bus := newFakeBus()
	s := scu.New(bus)

	s.Channels[0] = scu.Channel{
		Source: scu.WRAMLowLo, Dest: scu.WRAMHighLo, Count: 1, WordSize: 4,
		StartFactor: scu.StartSoftware, Enabled: true,
	}
	s.Trigger(scu.StartSoftware)
	require.Equal(t, uint32(1), s.Channels[0].Count)

	s.Channels[0] = scu.Channel{
		Source: scu.WRAMHighLo, Dest: scu.WRAMLowLo, Count: 1, WordSize: 4,
		StartFactor: scu.StartSoftware, Enabled: true,
	}
	s.Trigger(scu.StartSoftware)
	require.Equal(t, uint32(1), s.Channels[0].Count)
}

func TestVDP2AreaReadProhibited(t *testing.T) {
	bus := newFakeBus()
	s := scu.New(bus)
	s.Channels[0] = scu.Channel{
		Source: scu.VDP2Lo, Dest: scu.WRAMHighLo, Count: 1, WordSize: 4,
		StartFactor: scu.StartSoftware, Enabled: true,
	}
	s.Trigger(scu.StartSoftware)
	require.Equal(t, uint32(1), s.Channels[0].Count)
}

func TestVDP1RegisterWriteMustBeWordSized(t *testing.T) {
	bus := newFakeBus()
	bus.Write32(scu.WRAMHighLo, 0xAABBCCDD)
	s := scu.New(bus)

	s.Channels[0] = scu.Channel{
		Source: scu.WRAMHighLo, Dest: scu.VDP1RegLo, Count: 1, WordSize: 4,
		StartFactor: scu.StartSoftware, Enabled: true,
	}
	s.Trigger(scu.StartSoftware)
	require.Equal(t, uint32(1), s.Channels[0].Count, "long-sized write to a VDP1 register must be rejected")

	s.Channels[0] = scu.Channel{
		Source: scu.WRAMHighLo, Dest: scu.VDP1RegLo, Count: 1, WordSize: 2,
		StartFactor: scu.StartSoftware, Enabled: true,
	}
	s.Trigger(scu.StartSoftware)
	require.Equal(t, uint32(0), s.Channels[0].Count, "word-sized write to a VDP1 register is permitted")
}

func TestIndirectModeWalksTableUntilTerminator(t *testing.T) {
	bus := newFakeBus()
	bus.Write32(0x1000, 0xA)
	bus.Write32(0x1004, 0xB)
	bus.Write32(0x1008, 0xC)

	const table = scu.WRAMHighLo + 0x1000
	// entry 0: copy 1 word from 0x1000 -> 0x2000, not terminal
	bus.Write32(table+0, 1)
	bus.Write32(table+4, 0x1000)
	bus.Write32(table+8, 0x2000)
	// entry 1: copy 1 word from 0x1004 -> 0x2004, terminal
	bus.Write32(table+12, 1)
	bus.Write32(table+16, 0x1004|0x80000000)
	bus.Write32(table+20, 0x2004)

	s := scu.New(bus)
	s.Channels[0] = scu.Channel{
		Indirect: true, IndirectTableAddr: table, WordSize: 4,
		StartFactor: scu.StartSoftware, Enabled: true,
	}
	s.Trigger(scu.StartSoftware)

	require.Equal(t, uint32(0xA), bus.Read32(0x2000))
	require.Equal(t, uint32(0xB), bus.Read32(0x2004))
}

func TestPriorityOrderingServicesLowestFirst(t *testing.T) {
	bus := newFakeBus()
	bus.Write32(scu.WRAMHighLo, 1)
	bus.Write32(scu.WRAMHighLo+0x10, 2)

	s := scu.New(bus)
	var order []int
	s.RaiseInterrupt = func(ch int) { order = append(order, ch) }

	s.Channels[0] = scu.Channel{
		Priority: 2, Source: scu.WRAMHighLo, Dest: scu.WRAMHighLo + 0x100,
		Count: 1, WordSize: 4, StartFactor: scu.StartVBlankIn, Enabled: true,
	}
	s.Channels[1] = scu.Channel{
		Priority: 0, Source: scu.WRAMHighLo + 0x10, Dest: scu.WRAMHighLo + 0x110,
		Count: 1, WordSize: 4, StartFactor: scu.StartVBlankIn, Enabled: true,
	}

	s.Trigger(scu.StartVBlankIn)

	require.Equal(t, []int{1, 0}, order)
}
