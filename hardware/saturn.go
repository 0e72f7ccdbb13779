// This file is part of saturncore; Saturn's construction -- every
// peripheral built by value and wired together through named callbacks
// rather than any owning any other -- follows spec §9's description of the
// SH-1<->YGR<->SH-2 relationship, generalised to the whole machine.

// Package hardware assembles every component package (scheduler, bus, the
// two SH-2 cores, the SH-1 CD-block, YGR, SCU, SMPC, VDP1, VDP2) into the
// single top-level Saturn type (spec §2.12, §4.10).
package hardware

import (
	"encoding/gob"
	"io"

	"github.com/saturnist/corehw/config"
	"github.com/saturnist/corehw/errors"
	"github.com/saturnist/corehw/hardware/bus"
	"github.com/saturnist/corehw/hardware/scheduler"
	"github.com/saturnist/corehw/hardware/sh1"
	"github.com/saturnist/corehw/hardware/sh2"
	"github.com/saturnist/corehw/internal/cd"
	"github.com/saturnist/corehw/internal/disc"
	"github.com/saturnist/corehw/internal/scu"
	"github.com/saturnist/corehw/internal/smpc"
	"github.com/saturnist/corehw/internal/vdp1"
	"github.com/saturnist/corehw/internal/vdp2"
	"github.com/saturnist/corehw/internal/ygr"
	"github.com/saturnist/corehw/logger"
	"github.com/saturnist/corehw/system"
)

// Memory sizes and bus addresses (spec §4.2, §4.10). The spec does not pin
// an IPL load address; this follows the real machine's well-known layout,
// the same choice internal/scu's address-map consts already made.
const (
	WRAMLowSize  = 1 * 1024 * 1024
	WRAMHighSize = 1 * 1024 * 1024
	IPLSize      = 512 * 1024

	iplBase = 0x00000000

	// vdp2Width/vdp2Height is this core's fixed output resolution; the real
	// chip's many resolution modes are a front-end presentation concern
	// this module doesn't model (spec §1 Non-goals).
	vdp2Width  = 320
	vdp2Height = 224

	// cyclesPerFrameNTSC/PAL approximate the 26.8MHz (NTSC) / 26.6MHz (PAL)
	// master clock divided by the field rate; RunFrame treats a frame as
	// this fixed cycle window rather than deriving it from VDP2's own
	// HBlank/VBlank counters, a documented simplification (see DESIGN.md).
	cyclesPerFrameNTSC = 447443
	cyclesPerFramePAL  = 531562
)

// schedCycleSource adapts *scheduler.Scheduler to random.CycleSource so the
// Saturn's Instance can be seeded from the same timeline everything else
// runs against.
type schedCycleSource struct{ s *scheduler.Scheduler }

func (c schedCycleSource) Cycle() uint64 { return c.s.Now() }

// Saturn is the top-level emulation core (spec §2.12, §4.10): every
// component built by value, wired together at construction, advanced one
// frame at a time by RunFrame.
type Saturn struct {
	Instance  *system.Instance
	Config    *config.Config
	Scheduler *scheduler.Scheduler

	WRAMLow  *flatMemory
	WRAMHigh *flatMemory
	IPL      *flatMemory

	MainBus *bus.Bus

	Master     *sh2.CPU
	Slave      *sh2.CPU
	MasterINTC *sh2.INTC
	SlaveINTC  *sh2.INTC

	SH1 *sh1.CPU

	CD   *cd.Drive
	YGR  *ygr.YGR
	SCU  *scu.SCU
	SMPC *smpc.SMPC
	VDP1 *vdp1.VDP1
	VDP2 *vdp2.VDP2

	Framebuffer *vdp2.SoftwareSink

	masterEvent scheduler.EventID
	slaveEvent  scheduler.EventID
	sh1Event    scheduler.EventID
	started     bool
}

// NewSaturn constructs a Saturn with every peripheral wired and performs a
// hard reset, leaving it ready for LoadIPL.
func NewSaturn() *Saturn {
	sched := scheduler.New()
	inst := system.NewInstance(schedCycleSource{sched})

	s := &Saturn{
		Instance:  inst,
		Config:    inst.Config,
		Scheduler: sched,
		WRAMLow:   newFlatMemory(WRAMLowSize),
		WRAMHigh:  newFlatMemory(WRAMHighSize),
		IPL:       newFlatMemory(IPLSize),
		MainBus:   bus.New("main"),
	}
	s.IPL.readOnly = true

	s.Master = sh2.NewCPU(inst, "master", s.MainBus)
	s.Slave = sh2.NewCPU(inst, "slave", s.MainBus)
	s.MasterINTC = sh2.NewINTC(s.Master)
	s.SlaveINTC = sh2.NewINTC(s.Slave)

	s.SH1 = sh1.NewCPU(inst)
	s.CD = cd.NewDrive()
	s.YGR = ygr.New()
	s.SCU = scu.New(s.MainBus)
	s.SMPC = smpc.New(inst.Config.AreaCode)
	s.VDP1 = vdp1.New()
	s.VDP2 = vdp2.New(vdp2Width, vdp2Height)
	s.Framebuffer = vdp2.NewSoftwareSink()
	s.VDP2.Sink = s.Framebuffer.FrameSink()

	s.mapMemory()
	s.wire()
	s.Reset(true)
	return s
}

// mapMemory lays out the main bus (spec §4.2): WRAM-Low, WRAM-High, the IPL
// ROM, and VDP1/VDP2's VRAM windows, at the same addresses internal/scu's
// write-restriction table already assumes.
func (s *Saturn) mapMemory() {
	s.MainBus.Map(&bus.Region{
		Name: "ipl", Lo: iplBase, Hi: iplBase + IPLSize - 1,
		Read8: s.IPL.Read8, Read16: s.IPL.Read16, Read32: s.IPL.Read32,
		Cost: func(uint32, int) int { return 1 },
	})
	s.MainBus.Map(&bus.Region{
		Name: "wram-low", Lo: scu.WRAMLowLo, Hi: scu.WRAMLowHi,
		Read8: s.WRAMLow.Read8, Read16: s.WRAMLow.Read16, Read32: s.WRAMLow.Read32,
		Write8: s.WRAMLow.Write8, Write16: s.WRAMLow.Write16, Write32: s.WRAMLow.Write32,
		Cost: func(uint32, int) int { return 1 },
	})
	s.MainBus.Map(&bus.Region{
		Name: "wram-high", Lo: scu.WRAMHighLo, Hi: scu.WRAMHighHi,
		Read8: s.WRAMHigh.Read8, Read16: s.WRAMHigh.Read16, Read32: s.WRAMHigh.Read32,
		Write8: s.WRAMHigh.Write8, Write16: s.WRAMHigh.Write16, Write32: s.WRAMHigh.Write32,
		Cost: func(uint32, int) int { return 1 },
	})
	s.MainBus.Map(&bus.Region{
		Name: "vdp1-vram", Lo: scu.VDP1VRAMLo, Hi: scu.VDP1VRAMHi,
		Read8:   func(a uint32) uint8 { return s.VDP1.VRAM[(a-scu.VDP1VRAMLo)%vdp1.VRAMSize] },
		Read16:  func(a uint32) uint16 { return s.VDP1.ReadVRAM16(a - scu.VDP1VRAMLo) },
		Write16: func(a uint32, v uint16) { s.VDP1.WriteVRAM16(a-scu.VDP1VRAMLo, v) },
		Cost:    func(uint32, int) int { return 1 },
	})
	s.MainBus.Map(&bus.Region{
		Name: "vdp2-vram", Lo: scu.VDP2Lo, Hi: scu.VDP2Lo + vdp2.VRAMSize - 1,
		Read8:  func(a uint32) uint8 { return s.VDP2.VRAM[a-scu.VDP2Lo] },
		Write8: func(a uint32, v uint8) { s.VDP2.VRAM[a-scu.VDP2Lo] = v },
		Cost:   func(uint32, int) int { return 1 },
	})
}

// wire connects the cyclic SH-1<->YGR<->SH-2 relationship and the SCU/SMPC
// interrupt lines into the master SH-2's INTC (spec §9).
func (s *Saturn) wire() {
	s.MasterINTC.Configure("SCU-DMA0", 6, 0x4B)
	s.MasterINTC.Configure("SCU-DMA1", 6, 0x4C)
	s.MasterINTC.Configure("SCU-DMA2", 6, 0x4D)
	s.MasterINTC.Configure("SMPC", 8, 0x4E)
	s.MasterINTC.Configure("YGR-External", 7, 0x50)

	s.SCU.RaiseInterrupt = func(ch int) {
		switch ch {
		case 0:
			s.MasterINTC.Request("SCU-DMA0")
		case 1:
			s.MasterINTC.Request("SCU-DMA1")
		case 2:
			s.MasterINTC.Request("SCU-DMA2")
		}
	}
	s.SMPC.RaiseInterrupt = func() { s.MasterINTC.Request("SMPC") }
	s.SMPC.OnReset = func(hard bool) { s.Reset(hard) }
	s.SMPC.PollPort1 = func() uint16 { return 0 }
	s.SMPC.PollPort2 = func() uint16 { return 0 }

	s.YGR.RaiseSH1Interrupt = func() { s.SH1.INTC.Request("YGR-Command") }
	s.YGR.RaiseSCUInterrupt = func() { s.MasterINTC.Request("YGR-External") }
	s.YGR.ClearSCUInterrupt = func() { s.MasterINTC.Clear("YGR-External") }
	s.YGR.DREQHost = func() { s.SH1.AssertDREQ(sh1.DREQHost) }
	s.YGR.DREQSector = func() { s.SH1.AssertDREQ(sh1.DREQSector) }
	s.SH1.INTC.Configure("YGR-Command", 5, 0x4A)

	s.SH1.SetSerialHandlers(s.CD.SerialTx, s.CD.SerialRx)
}

// cyclesPerFrame returns the current video standard's frame window.
func (s *Saturn) cyclesPerFrame() uint64 {
	if s.Config.VideoStandard == config.PAL {
		return cyclesPerFramePAL
	}
	return cyclesPerFrameNTSC
}

func (s *Saturn) stepCPU(c *sh2.CPU) scheduler.Callback {
	return func(ctx *scheduler.Context) {
		if c.Suspended {
			ctx.Reschedule(1)
			return
		}
		cost, err := c.Step()
		if err != nil {
			logger.Logf("saturn", "%v", err)
			cost = 1
		}
		if cost < 1 {
			cost = 1
		}
		ctx.Reschedule(uint64(cost))
	}
}

// ensureRunning registers the self-rescheduling step events for the master
// and slave SH-2s and the SH-1, using the periodic-event idiom
// hardware/scheduler's Context.Reschedule documents. Done lazily on first RunFrame rather
// than in NewSaturn so LoadIPL/LoadState can still mutate CPU state first.
func (s *Saturn) ensureRunning() {
	if s.started {
		return
	}
	s.masterEvent = s.Scheduler.Register("master-sh2", s.Master, s.stepCPU(s.Master))
	s.slaveEvent = s.Scheduler.Register("slave-sh2", s.Slave, s.stepCPU(s.Slave))
	s.sh1Event = s.Scheduler.Register("sh1", s.SH1, func(ctx *scheduler.Context) {
		if s.SH1.Suspended {
			ctx.Reschedule(1)
			return
		}
		cost, err := s.SH1.Step()
		if err != nil {
			logger.Logf("saturn", "%v", err)
			cost = 1
		}
		if cost < 1 {
			cost = 1
		}
		s.SH1.Advance(cost)
		s.CD.Advance(uint32(cost))
		ctx.Reschedule(uint64(cost))
	})
	s.Scheduler.ScheduleAfter(s.masterEvent, 1)
	s.Scheduler.ScheduleAfter(s.slaveEvent, 1)
	s.Scheduler.ScheduleAfter(s.sh1Event, 1)
	s.started = true
}

// RunFrame advances every clock domain by one frame's worth of cycles, then
// runs VDP1's command list and VDP2's scanline compositor and fires the
// SCU/VDP1 VBlank housekeeping (spec §2.12 run_frame, §4.8/§4.9). A frame
// is a fixed master-cycle window rather than one derived from VDP2's own
// HBlank/VBlank counters -- a deliberate simplification, see DESIGN.md.
func (s *Saturn) RunFrame() {
	s.ensureRunning()
	target := s.Scheduler.Now() + s.cyclesPerFrame()
	s.Scheduler.AdvanceUntil(target)

	s.SCU.Trigger(scu.StartVBlankIn)
	s.VDP1.RunCommandList()
	s.VDP2.SpriteFB = s.VDP1.DisplayBuffer()[:]
	s.VDP2.RunFrame()
	s.VDP1.VBlankOut(true)
	s.SCU.Trigger(scu.StartVBlankOut)
}

// GetFramebuffer returns the most recently composed frame: its pixel
// buffer (little-endian XRGB8888, spec §4.10), width, and height.
func (s *Saturn) GetFramebuffer() (pixels []uint32, width, height int) {
	return s.Framebuffer.Pixels, s.Framebuffer.Width, s.Framebuffer.Height
}

// LoadIPL validates and installs the 512KB IPL boot ROM image.
func (s *Saturn) LoadIPL(data []byte) error {
	if len(data) != IPLSize {
		return errors.Errorf(errors.IPLSizeError, IPLSize, len(data))
	}
	copy(s.IPL.data, data)
	return nil
}

// OpenTray opens the CD drive's tray.
func (s *Saturn) OpenTray() { s.CD.OpenTray() }

// CloseTray closes the CD drive's tray.
func (s *Saturn) CloseTray() { s.CD.CloseTray() }

// LoadDisc inserts d and notifies the drive of a disc-changed condition.
func (s *Saturn) LoadDisc(d *disc.Disc) { s.CD.OnDiscLoaded(d) }

// EjectDisc removes the current disc.
func (s *Saturn) EjectDisc() { s.CD.OnDiscEjected() }

// Reset performs a soft or hard reset (spec §4.10, scenario S1). A hard
// reset zeroes both WRAMs; a soft reset does not. Neither touches the IPL
// ROM.
func (s *Saturn) Reset(hard bool) {
	if hard {
		s.WRAMLow.zero()
		s.WRAMHigh.zero()
	}
	s.Master.Reset()
	s.Slave.Reset()
	s.Slave.Suspended = true // the slave SH-2 starts halted; IPL wakes it
	s.SH1.Reset()
	s.CD.Reset()
}

// FactoryReset is a hard reset that also restores every configuration knob
// to its spec-mandated default (spec §6).
func (s *Saturn) FactoryReset() {
	s.Config.SetDefaults()
	s.SMPC.SetAreaCode(s.Config.AreaCode)
	s.Reset(true)
}

// saturnState is the gob-serializable save-state payload (spec §2.12
// save/load state). It captures every component's architecturally visible
// state; it does not capture the CD drive's in-flight byte-serial transfer
// position or VDP1's rendered framebuffer pixels (both are cheaply
// regenerated -- the next report/command-list run reproduces them from
// state that IS captured), nor the scheduler's pending event queue (the
// step events ensureRunning registered stay live across LoadState; only the
// absolute cycle count is restored). See DESIGN.md.
type saturnState struct {
	Cycle uint64

	WRAMLow  []byte
	WRAMHigh []byte

	MasterRegs sh2.Registers
	SlaveRegs  sh2.Registers
	SlaveHalt  bool

	SH1Regs sh2.Registers
	SH1RAM  []byte

	SCUChannels [3]scu.Channel

	SMPCIREG         [7]uint8
	SMPCOREG         [32]uint8
	SMPCAreaCode     uint8
	SMPCRTC          smpc.RTC
	SMPCResetEnabled bool

	VDP1VRAM            []byte
	VDP1CommandListAddr uint32
	VDP1SystemClip      vdp1.Rect
	VDP1UserClip        vdp1.Rect
	VDP1UserClipOn      bool
	VDP1LocalCoord      vdp1.Vertex
	VDP1TransparentMesh bool

	VDP2VRAM           []byte
	VDP2CRAM           []byte
	VDP2CRAMMode       vdp2.CRAMMode
	VDP2NBG            [4]vdp2.NBG
	VDP2Sprite         vdp2.SpriteLayer
	VDP2BackColor      uint32
	VDP2Window0        vdp2.Window
	VDP2Window1        vdp2.Window
	VDP2WindowLogic    vdp2.WindowLogic
	VDP2ColorCalcRatio int
	VDP2Deinterlace    config.DeinterlaceMode

	CDCommand       cd.CDCommand
	CDStatus        cd.CDStatus
	CDCurrFAD       disc.FAD
	CDSeekOperation cd.Operation
	CDPlaying       bool
	CDScanActive    bool
	CDScanForward   bool
	CDReadSpeed     uint8
	CDTrayOpen      bool
}

// SaveState encodes the Saturn's current architecturally visible state to
// out (spec §2.12).
func (s *Saturn) SaveState(out io.Writer) error {
	st := saturnState{
		Cycle:    s.Scheduler.Now(),
		WRAMLow:  append([]byte(nil), s.WRAMLow.data...),
		WRAMHigh: append([]byte(nil), s.WRAMHigh.data...),

		MasterRegs: s.Master.Regs,
		SlaveRegs:  s.Slave.Regs,
		SlaveHalt:  s.Slave.Suspended,

		SH1Regs: s.SH1.Regs,
		SH1RAM:  append([]byte(nil), s.SH1.RAM.Bytes()...),

		SCUChannels: s.SCU.Channels,

		SMPCIREG:         s.SMPC.IREG,
		SMPCOREG:         s.SMPC.OREG,
		SMPCAreaCode:     s.SMPC.AreaCode(),
		SMPCRTC:          s.SMPC.RTC(),
		SMPCResetEnabled: s.SMPC.ResetEnabled(),

		VDP1VRAM:            append([]byte(nil), s.VDP1.VRAM[:]...),
		VDP1CommandListAddr: s.VDP1.CommandListAddr,
		VDP1SystemClip:      s.VDP1.SystemClip,
		VDP1UserClip:        s.VDP1.UserClip,
		VDP1UserClipOn:      s.VDP1.UserClipOn,
		VDP1LocalCoord:      s.VDP1.LocalCoord,
		VDP1TransparentMesh: s.VDP1.TransparentMeshes,

		VDP2VRAM:           append([]byte(nil), s.VDP2.VRAM[:]...),
		VDP2CRAM:           append([]byte(nil), s.VDP2.CRAM[:]...),
		VDP2CRAMMode:       s.VDP2.CRAMMode,
		VDP2NBG:            s.VDP2.NBG,
		VDP2Sprite:         s.VDP2.Sprite,
		VDP2BackColor:      s.VDP2.BackColor,
		VDP2Window0:        s.VDP2.Window0,
		VDP2Window1:        s.VDP2.Window1,
		VDP2WindowLogic:    s.VDP2.WindowLogic,
		VDP2ColorCalcRatio: s.VDP2.ColorCalcRatio,
		VDP2Deinterlace:    s.VDP2.Deinterlace,

		CDCommand:       s.CD.Command,
		CDStatus:        s.CD.Status,
		CDCurrFAD:       s.CD.CurrFAD,
		CDSeekOperation: s.CD.SeekOperation,
		CDPlaying:       s.CD.Playing,
		CDScanActive:    s.CD.ScanActive,
		CDScanForward:   s.CD.ScanForward,
		CDReadSpeed:     s.CD.ReadSpeed,
		CDTrayOpen:      s.CD.TrayOpen,
	}
	if err := gob.NewEncoder(out).Encode(&st); err != nil {
		return errors.Errorf(errors.StateError, err)
	}
	return nil
}

// LoadState restores state previously written by SaveState into this
// already-constructed, already-running Saturn. Every scheduler event stays
// registered across the call; only the cycle counter is rewound/advanced.
func (s *Saturn) LoadState(in io.Reader) error {
	var st saturnState
	if err := gob.NewDecoder(in).Decode(&st); err != nil {
		return errors.Errorf(errors.StateError, err)
	}

	s.Scheduler.SetNow(st.Cycle)

	copy(s.WRAMLow.data, st.WRAMLow)
	copy(s.WRAMHigh.data, st.WRAMHigh)

	s.Master.Regs = st.MasterRegs
	s.Slave.Regs = st.SlaveRegs
	s.Slave.Suspended = st.SlaveHalt

	s.SH1.Regs = st.SH1Regs
	s.SH1.RAM.LoadBytes(st.SH1RAM)

	s.SCU.Channels = st.SCUChannels

	s.SMPC.IREG = st.SMPCIREG
	s.SMPC.OREG = st.SMPCOREG
	s.SMPC.SetAreaCode(st.SMPCAreaCode)
	s.SMPC.SetRTC(st.SMPCRTC)
	s.SMPC.SetResetEnabled(st.SMPCResetEnabled)

	copy(s.VDP1.VRAM[:], st.VDP1VRAM)
	s.VDP1.CommandListAddr = st.VDP1CommandListAddr
	s.VDP1.SystemClip = st.VDP1SystemClip
	s.VDP1.UserClip = st.VDP1UserClip
	s.VDP1.UserClipOn = st.VDP1UserClipOn
	s.VDP1.LocalCoord = st.VDP1LocalCoord
	s.VDP1.TransparentMeshes = st.VDP1TransparentMesh

	copy(s.VDP2.VRAM[:], st.VDP2VRAM)
	copy(s.VDP2.CRAM[:], st.VDP2CRAM)
	s.VDP2.CRAMMode = st.VDP2CRAMMode
	s.VDP2.NBG = st.VDP2NBG
	s.VDP2.Sprite = st.VDP2Sprite
	s.VDP2.BackColor = st.VDP2BackColor
	s.VDP2.Window0 = st.VDP2Window0
	s.VDP2.Window1 = st.VDP2Window1
	s.VDP2.WindowLogic = st.VDP2WindowLogic
	s.VDP2.ColorCalcRatio = st.VDP2ColorCalcRatio
	s.VDP2.Deinterlace = st.VDP2Deinterlace

	s.CD.Command = st.CDCommand
	s.CD.Status = st.CDStatus
	s.CD.CurrFAD = st.CDCurrFAD
	s.CD.SeekOperation = st.CDSeekOperation
	s.CD.Playing = st.CDPlaying
	s.CD.ScanActive = st.CDScanActive
	s.CD.ScanForward = st.CDScanForward
	s.CD.ReadSpeed = st.CDReadSpeed
	s.CD.TrayOpen = st.CDTrayOpen

	return nil
}
