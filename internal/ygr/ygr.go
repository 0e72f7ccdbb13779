package ygr

// HIRQ flag bits (spec §4.6 "HIRQ"). Only the low 14 bits are assigned;
// HIRQMask below determines which of them can raise the SCU interrupt.
const (
	HIRQCMOK HIRQFlag = 0x0001
	HIRQDRDY HIRQFlag = 0x0002
	HIRQCSCT HIRQFlag = 0x0004
	HIRQBFUL HIRQFlag = 0x0008
	HIRQPEND HIRQFlag = 0x0010
	HIRQDCHG HIRQFlag = 0x0020
	HIRQESEL HIRQFlag = 0x0040
	HIRQEHST HIRQFlag = 0x0080
	HIRQECPY HIRQFlag = 0x0100
	HIRQEFLS HIRQFlag = 0x0200
	HIRQSCDQ HIRQFlag = 0x0400
	HIRQMPED HIRQFlag = 0x0800
	HIRQMPCM HIRQFlag = 0x1000
	HIRQMPST HIRQFlag = 0x2000

	// HIRQMask is the set of bits that are actually assigned meaning; bits
	// outside it (0xC000) are never interpreted, only stored and read back
	// (spec §12 "unk* undocumented-bit preservation").
	HIRQMask HIRQFlag = 0x3FFF
)

// HIRQFlag is one or more HIRQ bits.
type HIRQFlag uint16

const fifoDepth = 6

// TRCTL is the sector-data FIFO's transfer-control state (spec §4.6
// "6-word FIFO with TRCTL.DIR/TE/RES semantics").
type TRCTL struct {
	Dir bool // true: CD (SH-1) side feeds the FIFO; false: host drains it
	TE  bool // transfer enable
}

// YGR is the gate array state shared between the CD-block's SH-1 view and
// the main-board SH-2's host view (spec §4.6).
type YGR struct {
	// CR is the host-written command mailbox, words 0-3; writing word 3
	// latches the command and raises IRQ6 on the SH-1.
	CR [4]uint16
	// RR is the CD-side-written response mailbox, words 0-3; writing word
	// 3 latches the response and sets HIRQCMOK.
	RR [4]uint16

	// hirq holds the full 16-bit flag register, including the unassigned
	// upper bits, which are preserved verbatim but never interpreted.
	hirq     uint16
	hirqMask uint16

	TRCTL TRCTL
	fifo  [fifoDepth]uint16
	head  int
	count int

	// RaiseSH1Interrupt fires when the host latches a new command (CR4
	// written), waking the CD-block firmware.
	RaiseSH1Interrupt func()
	// RaiseSCUInterrupt and ClearSCUInterrupt track HIRQ&HIRQMASK's
	// level-triggered external interrupt line into the SCU.
	RaiseSCUInterrupt func()
	ClearSCUInterrupt func()
	// DREQHost fires on every successful PushSectorWord, pulsing the SH-1
	// DMAC request line hardware/sh1.DREQHost. DREQSector (for
	// hardware/sh1.DREQSector) is never fired by this package, and neither
	// line follows TRCTL.
	DREQHost   func()
	DREQSector func()
}

// New returns a YGR in its power-on state (no command pending, no
// interrupts asserted).
func New() *YGR {
	return &YGR{}
}

// WriteCR latches command word n (0-3) of the host mailbox. Writing word 3
// completes the command and wakes the CD-block SH-1.
func (y *YGR) WriteCR(word int, v uint16) {
	y.CR[word] = v
	if word == 3 && y.RaiseSH1Interrupt != nil {
		y.RaiseSH1Interrupt()
	}
}

// ReadCR reads back command word n.
func (y *YGR) ReadCR(word int) uint16 { return y.CR[word] }

// WriteRR latches response word n (0-3) of the CD-side mailbox. Writing
// word 3 completes the response and sets HIRQCMOK.
func (y *YGR) WriteRR(word int, v uint16) {
	y.RR[word] = v
	if word == 3 {
		y.SetHIRQ(HIRQCMOK)
	}
}

// ReadRR reads back response word n.
func (y *YGR) ReadRR(word int) uint16 { return y.RR[word] }

// HostWriteHIRQ is the host side's write-AND-only access to HIRQ: any bit
// that is 0 in v is cleared, and no bit can ever be set this way (spec
// §4.6 "host can only clear via write-AND").
func (y *YGR) HostWriteHIRQ(v uint16) {
	y.hirq &= v
	y.updateSCU()
}

// SetHIRQ is the CD-block (SH-1) side's write-OR-only access to HIRQ: bits
// set in v are asserted, and no bit can ever be cleared this way (spec
// §4.6 "SH-1 can only set via write-OR").
func (y *YGR) SetHIRQ(bits HIRQFlag) {
	y.hirq |= uint16(bits)
	y.updateSCU()
}

// ReadHIRQ returns the full 16-bit HIRQ register, including its
// unassigned upper bits.
func (y *YGR) ReadHIRQ() uint16 { return y.hirq }

// WriteHIRQMask sets which HIRQ bits can raise the SCU interrupt.
func (y *YGR) WriteHIRQMask(v uint16) {
	y.hirqMask = v
	y.updateSCU()
}

// ReadHIRQMask returns the current mask register.
func (y *YGR) ReadHIRQMask() uint16 { return y.hirqMask }

func (y *YGR) updateSCU() {
	active := y.hirq&y.hirqMask&uint16(HIRQMask) != 0
	switch {
	case active && y.RaiseSCUInterrupt != nil:
		y.RaiseSCUInterrupt()
	case !active && y.ClearSCUInterrupt != nil:
		y.ClearSCUInterrupt()
	}
}

// WriteTRCTL applies a new transfer-control state. Setting RES empties the
// FIFO immediately.
func (y *YGR) WriteTRCTL(dir, te, res bool) {
	y.TRCTL.Dir = dir
	y.TRCTL.TE = te
	if res {
		y.head, y.count = 0, 0
	}
}

// PushSectorWord enqueues one word from the CD side, pulsing DREQHost so
// the host's DMAC can drain it. Returns false if the FIFO is already full.
func (y *YGR) PushSectorWord(v uint16) bool {
	if y.count >= fifoDepth {
		y.SetHIRQ(HIRQBFUL)
		return false
	}
	y.fifo[(y.head+y.count)%fifoDepth] = v
	y.count++
	if y.count == fifoDepth {
		y.SetHIRQ(HIRQBFUL)
	}
	if y.DREQHost != nil {
		y.DREQHost()
	}
	return true
}

// PopSectorWord dequeues one word for the host side. Returns false if the
// FIFO is empty.
func (y *YGR) PopSectorWord() (uint16, bool) {
	if y.count == 0 {
		return 0, false
	}
	v := y.fifo[y.head]
	y.head = (y.head + 1) % fifoDepth
	y.count--
	return v, true
}

// FIFOLen reports how many words are currently queued.
func (y *YGR) FIFOLen() int { return y.count }
