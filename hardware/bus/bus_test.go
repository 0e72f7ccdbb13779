// This file is part of saturncore.

package bus_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saturnist/corehw/hardware/bus"
)

func TestReadWriteRoundTrip(t *testing.T) {
	b := bus.New("test")
	mem := make([]uint8, 0x1000)

	require.NoError(t, b.Map(&bus.Region{
		Name: "ram",
		Lo:   0x1000,
		Hi:   0x1FFF,
		Read8: func(addr uint32) uint8 {
			return mem[addr-0x1000]
		},
		Write8: func(addr uint32, v uint8) {
			mem[addr-0x1000] = v
		},
	}))

	b.Write8(0x1234, 0x42)
	require.Equal(t, uint8(0x42), b.Read8(0x1234))
}

func TestOverlappingRegionRejected(t *testing.T) {
	b := bus.New("test")
	require.NoError(t, b.Map(&bus.Region{Name: "a", Lo: 0x1000, Hi: 0x1FFF}))
	err := b.Map(&bus.Region{Name: "b", Lo: 0x1800, Hi: 0x2800})
	require.Error(t, err)
}

func TestUnmappedAddressIsOpenBus(t *testing.T) {
	b := bus.New("test")
	require.Equal(t, uint8(0xFF), b.Read8(0xDEADBEEF))
	require.Equal(t, uint32(0xFFFFFFFF), b.Read32(0xDEADBEEF))
}

func TestWriteToUnmappedIsIgnored(t *testing.T) {
	b := bus.New("test")
	// should not panic
	b.Write8(0xDEADBEEF, 1)
}

func TestWordAccessIsAlignedDownBeforeDispatch(t *testing.T) {
	b := bus.New("test")
	var sawAddr uint32
	require.NoError(t, b.Map(&bus.Region{
		Name: "regs",
		Lo:   0,
		Hi:   0xFF,
		Read16: func(addr uint32) uint16 {
			sawAddr = addr
			return 0
		},
	}))
	b.Read16(0x07)
	require.Equal(t, uint32(0x06), sawAddr)
}

// TestPeekPokePurity is the direct expression of spec §8 property 4: for
// all regions and all addresses, repeated peeks return the same value and
// never alter observable state.
func TestPeekPokePurity(t *testing.T) {
	b := bus.New("test")
	reads := 0
	var fifo []uint8

	require.NoError(t, b.Map(&bus.Region{
		Name: "fifo",
		Lo:   0,
		Hi:   0xF,
		Read8: func(addr uint32) uint8 {
			reads++
			if len(fifo) == 0 {
				return 0
			}
			v := fifo[0]
			fifo = fifo[1:] // normal reads consume the FIFO head
			return v
		},
		Peek8: func(addr uint32) uint8 {
			if len(fifo) == 0 {
				return 0
			}
			return fifo[0] // peek never consumes
		},
	}))

	fifo = []uint8{0x11, 0x22, 0x33}

	first := b.Peek8(0)
	second := b.Peek8(0)
	third := b.Peek8(0)

	require.Equal(t, first, second)
	require.Equal(t, second, third)
	require.Equal(t, uint8(0x11), first)
	require.Equal(t, 0, reads, "peek must never invoke the side-effecting Read8")
	require.Len(t, fifo, 3, "peek must never consume the FIFO")
}

func TestPokeDoesNotAdvanceWritePosition(t *testing.T) {
	b := bus.New("test")
	var normalWrites, pokes int

	require.NoError(t, b.Map(&bus.Region{
		Name:   "fifo",
		Lo:     0,
		Hi:     0xF,
		Write8: func(addr uint32, v uint8) { normalWrites++ },
		Poke8:  func(addr uint32, v uint8) { pokes++ },
	}))

	b.Poke8(0, 0x99)
	require.Equal(t, 0, normalWrites)
	require.Equal(t, 1, pokes)
}

func TestStallPredicate(t *testing.T) {
	b := bus.New("test")
	ready := false

	require.NoError(t, b.Map(&bus.Region{
		Name:          "fifo",
		Lo:            0,
		Hi:            0xF,
		WaitPredicate: func(addr uint32) bool { return !ready },
	}))

	require.True(t, b.Stall(0))
	ready = true
	require.False(t, b.Stall(0))
}

func TestStallDefaultsToFalse(t *testing.T) {
	b := bus.New("test")
	require.NoError(t, b.Map(&bus.Region{Name: "plain", Lo: 0, Hi: 0xF}))
	require.False(t, b.Stall(0))
	require.False(t, b.Stall(0xFFFFFFFF)) // unmapped
}
