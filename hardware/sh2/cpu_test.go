// This file is part of saturncore.

package sh2_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saturnist/corehw/hardware/sh2"
	"github.com/saturnist/corehw/random"
	"github.com/saturnist/corehw/system"
)

// fakeMemory is a flat 32-bit address space backed by a map, good enough to
// exercise the interpreter without the full bus package.
type fakeMemory struct {
	m map[uint32]uint8
}

func newFakeMemory() *fakeMemory {
	return &fakeMemory{m: make(map[uint32]uint8)}
}

func (f *fakeMemory) Read8(addr uint32) uint8 { return f.m[addr] }

func (f *fakeMemory) Read16(addr uint32) uint16 {
	return uint16(f.Read8(addr))<<8 | uint16(f.Read8(addr+1))
}

func (f *fakeMemory) Read32(addr uint32) uint32 {
	return uint32(f.Read16(addr))<<16 | uint32(f.Read16(addr+2))
}

func (f *fakeMemory) Write8(addr uint32, v uint8) { f.m[addr] = v }

func (f *fakeMemory) Write16(addr uint32, v uint16) {
	f.Write8(addr, uint8(v>>8))
	f.Write8(addr+1, uint8(v))
}

func (f *fakeMemory) Write32(addr uint32, v uint32) {
	f.Write16(addr, uint16(v>>16))
	f.Write16(addr+2, uint16(v))
}

func (f *fakeMemory) Cost(addr uint32, width int) int { return 1 }

// putInstruction writes a 16-bit opcode big-endian at addr, matching SH-2's
// wire format.
func (f *fakeMemory) putInstruction(addr uint32, opcode uint16) {
	f.Write16(addr, opcode)
}

type fixedCycle struct{ c uint64 }

func (f fixedCycle) Cycle() uint64 { return f.c }

func newTestCPU(mem *fakeMemory) *sh2.CPU {
	ins := system.NewInstance(fixedCycle{})
	return sh2.NewCPU(ins, "test", mem)
}

func TestResetReadsVectorTable(t *testing.T) {
	mem := newFakeMemory()
	mem.Write32(0x00000000, 0x00001000) // reset PC
	mem.Write32(0x00000004, 0x00002000) // reset SP

	c := newTestCPU(mem)
	c.Reset()

	require.Equal(t, uint32(0x00001000), c.Regs.PC)
	require.Equal(t, uint32(0x00002000), c.Regs.R[15])
	require.Equal(t, uint32(0), c.Regs.VBR)
	require.Equal(t, uint8(15), c.Regs.SR.I())
}

func TestMOVImmAndADD(t *testing.T) {
	mem := newFakeMemory()
	mem.Write32(0, 0x1000)
	mem.Write32(4, 0x2000)
	c := newTestCPU(mem)
	c.Reset()

	// MOV #5,R1 ; MOV #3,R2 ; ADD R2,R1
	mem.putInstruction(0x1000, 0xE105) // 1110 nnnn(0001) iiiiiiii(00000101)
	mem.putInstruction(0x1002, 0xE203) // MOV #3,R2
	mem.putInstruction(0x1004, 0x312C) // ADD Rm,Rn: 0011 nnnn(0001) mmmm(0010) 1100

	_, err := c.Step()
	require.NoError(t, err)
	require.Equal(t, uint32(5), c.Regs.R[1])

	_, err = c.Step()
	require.NoError(t, err)
	require.Equal(t, uint32(3), c.Regs.R[2])

	_, err = c.Step()
	require.NoError(t, err)
	require.Equal(t, uint32(8), c.Regs.R[1])
	require.Equal(t, uint32(0x1006), c.Regs.PC)
}

func TestBRADelaySlot(t *testing.T) {
	mem := newFakeMemory()
	mem.Write32(0, 0x1000)
	mem.Write32(4, 0x2000)
	c := newTestCPU(mem)
	c.Reset()

	// BRA +4 (disp=2, target = PC+4+2*2=PC+8) ; delay slot: MOV #1,R0 ; (skipped) ; target: MOV #2,R0
	mem.putInstruction(0x1000, 0xA002) // BRA disp=2
	mem.putInstruction(0x1002, 0xE001) // MOV #1,R0 (delay slot)
	mem.putInstruction(0x1004, 0xE0FF) // would be skipped
	mem.putInstruction(0x1008, 0xE002) // MOV #2,R0 (branch target: 0x1000+4+4=0x1008)

	_, err := c.Step() // BRA: sets up delay slot, PC becomes 0x1002
	require.NoError(t, err)
	require.Equal(t, uint32(0x1002), c.Regs.PC)

	_, err = c.Step() // delay slot instruction executes, then PC jumps to target
	require.NoError(t, err)
	require.Equal(t, uint32(1), c.Regs.R[0])
	require.Equal(t, uint32(0x1008), c.Regs.PC)

	_, err = c.Step()
	require.NoError(t, err)
	require.Equal(t, uint32(2), c.Regs.R[0])
}

func TestInterruptNotTakenDuringDelaySlot(t *testing.T) {
	mem := newFakeMemory()
	mem.Write32(0, 0x1000)
	mem.Write32(4, 0x3000)
	mem.Write32(0x00000044, 0x00009000) // vector 17*4=0x44

	c := newTestCPU(mem)
	c.Reset()
	c.Regs.SR.SetI(0) // unmask all levels

	mem.putInstruction(0x1000, 0xA000) // BRA +0 (disp=0, target=PC+4)
	mem.putInstruction(0x1002, 0xE005) // delay slot: MOV #5,R0

	_, err := c.Step() // BRA: the next instruction now runs in a delay slot
	require.NoError(t, err)

	// the interrupt is raised while delaySlot is true, and it must not be
	// taken there -- verify by checking the delay slot instruction's effect
	// (R0==5) actually took place, meaning the CPU did not redirect into
	// the interrupt handler mid-delay-slot.
	c.RequestInterrupt("test-source", 1, 17)
	_, err = c.Step()
	require.NoError(t, err)
	require.Equal(t, uint32(5), c.Regs.R[0])
}

func TestTRAPA(t *testing.T) {
	mem := newFakeMemory()
	mem.Write32(0, 0x1000)
	mem.Write32(4, 0x4000)
	mem.Write32((32+1)*4, 0x00005000) // TRAPA #1 vector

	c := newTestCPU(mem)
	c.Reset()

	mem.putInstruction(0x1000, 0xC301) // TRAPA #1: 1100 0011 iiiiiiii(00000001)

	_, err := c.Step()
	require.NoError(t, err)
	require.Equal(t, uint32(0x5000), c.Regs.PC)
	require.Equal(t, uint32(0x4000-8), c.Regs.R[15]) // SR and PC both pushed
}

func TestDecodeTableIllegalDefaultsEverywhere(t *testing.T) {
	table := sh2.GlobalTable()
	d := table.Decode(0xFFFF, false)
	require.Equal(t, sh2.OpIllegal, d.Op)
}

func TestDecodeTableBranchIllegalInSlot(t *testing.T) {
	table := sh2.GlobalTable()
	d := table.Decode(0xA000, true) // BRA decoded in a delay slot
	require.Equal(t, sh2.OpIllegalSlot, d.Op)
}

var _ = random.CycleSource(fixedCycle{})
