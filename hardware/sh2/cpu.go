package sh2

import (
	"github.com/saturnist/corehw/errors"
	"github.com/saturnist/corehw/logger"
	"github.com/saturnist/corehw/system"
)

// Memory is the subset of hardware/bus.Bus the interpreter needs. A *bus.Bus
// satisfies this automatically; tests may substitute a lighter fake.
type Memory interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Write8(addr uint32, v uint8)
	Write16(addr uint32, v uint16)
	Write32(addr uint32, v uint32)
	Cost(addr uint32, width int) int
}

// Vector numbers for the fixed exceptions (spec §4.3 "Exceptions").
const (
	VectorPowerOnReset   = 0
	VectorManualReset    = 1
	VectorAddressError   = 4
	VectorIllegal        = 6
	VectorIllegalSlot    = 8
	VectorTRAPABase      = 32 // TRAPA #imm traps to vector 32+imm
)

// pendingInterrupt is the single-slot cache of the highest-priority pending
// interrupt request, refreshed by the owning Saturn/INTC before each
// instruction (spec §3 "pending-interrupt cache `{source, level}`").
type pendingInterrupt struct {
	active bool
	source string
	level  uint8
	vector uint32
}

// CPU implements the SH-2 interpreter described in spec §3/§4.3. Both Saturn
// CPUs (master and slave) are separate instances of this type.
type CPU struct {
	instance *system.Instance
	name     string // "master" or "slave", used only for diagnostics

	Regs Registers

	delaySlot   bool
	delayTarget uint32

	sleeping bool

	pending pendingInterrupt

	table *Table
	mem   Memory

	// Breakpoints and Suspended are the debug hooks. A breakpoint hit on
	// instruction fetch is logged and execution continues; there is no
	// watchpoint set. Suspended freezes this CPU for run_frame without
	// touching any other component.
	Breakpoints map[uint32]bool
	Suspended   bool

	// TotalCycles is a free-running count of cycles this CPU has executed,
	// exposed for tracing and tests; it plays no role in interpretation.
	TotalCycles uint64

	// fetchPC is the address of the instruction currently executing, used
	// by the PC-relative addressing modes (MOV.W/L @(disp,PC), MOVA).
	fetchPC uint32
}

// NewCPU is the preferred method of initialisation.
func NewCPU(instance *system.Instance, name string, mem Memory) *CPU {
	return &CPU{
		instance:    instance,
		name:        name,
		mem:         mem,
		table:       GlobalTable(),
		Breakpoints: make(map[uint32]bool),
	}
}

// Plumb replaces the memory bus, eg. after a save-state load rebuilds the
// bus graph.
func (c *CPU) Plumb(mem Memory) {
	c.mem = mem
}

// Reset puts the CPU into its power-on-reset state: PC and SP are read from
// the reset vector at the bottom of memory, VBR=0, SR.I=15 (spec §8
// scenario S1).
func (c *CPU) Reset() {
	c.Regs.Reset()
	c.delaySlot = false
	c.delayTarget = 0
	c.sleeping = false
	c.pending = pendingInterrupt{}

	c.Regs.PC = c.mem.Read32(0x00000000)
	c.Regs.R[15] = c.mem.Read32(0x00000004)
}

// RequestInterrupt records a pending interrupt request. Only the
// highest-priority request seen since the last acceptance is kept (spec
// §3: "pending-interrupt cache"). Level 0 means "no interrupt" and is never
// accepted.
func (c *CPU) RequestInterrupt(source string, level uint8, vector uint32) {
	if level == 0 {
		return
	}
	if c.pending.active && c.pending.level >= level {
		return
	}
	c.pending = pendingInterrupt{active: true, source: source, level: level, vector: vector}
}

// ClearInterrupt withdraws a previously requested interrupt from source,
// used by edge-triggered sources once acknowledged and by level-triggered
// CD-block IRQs 6/7 when software clears HIRQ (spec §4.3).
func (c *CPU) ClearInterrupt(source string) {
	if c.pending.source == source {
		c.pending = pendingInterrupt{}
	}
}

// Step executes exactly one instruction (the one currently fetched in a
// delay slot, if delaySlot is set) and returns the number of cycles it
// consumed, which the caller uses to advance the scheduler (spec §4.3:
// "Cycles reported per instruction drive the scheduler").
func (c *CPU) Step() (int, error) {
	if c.Suspended {
		return 0, nil
	}

	if c.sleeping {
		if c.pending.active {
			c.sleeping = false
		} else {
			return 1, nil
		}
	}

	// interrupt acceptance happens only at non-delay-slot instruction
	// boundaries (spec §4.3, §8 property "Delay-slot invariant")
	if !c.delaySlot && c.pending.active && c.pending.level > c.Regs.SR.I() {
		c.acceptInterrupt()
	}

	fetchPC := c.Regs.PC
	c.fetchPC = fetchPC
	if c.Breakpoints[fetchPC] {
		logger.Logf(logger.Groups.SH2Exec, c.name, "breakpoint hit at %#08x", fetchPC)
	}

	opcode := c.mem.Read16(fetchPC)
	cycles := c.mem.Cost(fetchPC, 2)

	decoded := c.table.Decode(opcode, c.delaySlot)

	inSlot := c.delaySlot
	target := c.delayTarget
	c.delaySlot = false

	switch decoded.Op {
	case OpIllegal:
		c.raise(VectorIllegal, errors.Errorf(errors.IllegalInstruction, opcode, fetchPC))
		return cycles, nil
	case OpIllegalSlot:
		c.raise(VectorIllegalSlot, errors.Errorf(errors.IllegalSlotInstruction, opcode, fetchPC))
		return cycles, nil
	}

	c.Regs.PC += 2

	extra, err := c.execute(decoded)
	if err != nil {
		return cycles, err
	}
	cycles += extra

	if inSlot {
		c.Regs.PC = target
	}

	c.TotalCycles += uint64(cycles)
	return cycles, nil
}

func (c *CPU) acceptInterrupt() {
	p := c.pending
	logger.Logf(logger.Groups.SH2Intr, c.name, "accepting interrupt %s level %d", p.source, p.level)
	c.pushStack(c.Regs.SR.Raw())
	c.pushStack(c.Regs.PC)
	c.Regs.SR.SetI(min8(p.level, 15))
	c.Regs.PC = c.mem.Read32(p.vector * 4)
	c.pending = pendingInterrupt{}
}

// raise enters a fixed hardware exception: push SR and PC, jump through the
// vector table (spec §4.3 "Exceptions"). Transient hardware exceptions are
// handled entirely inside the CPU; they never propagate out of Step (spec
// §7).
func (c *CPU) raise(vector uint32, logged error) {
	logger.Log(logger.Groups.SH2Intr, c.name, logged.Error())
	c.pushStack(c.Regs.SR.Raw())
	c.pushStack(c.Regs.PC)
	c.Regs.PC = c.mem.Read32(vector * 4)
}

func (c *CPU) pushStack(v uint32) {
	c.Regs.R[15] -= 4
	c.mem.Write32(c.Regs.R[15], v)
}

func (c *CPU) popStack() uint32 {
	v := c.mem.Read32(c.Regs.R[15])
	c.Regs.R[15] += 4
	return v
}

func min8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}
