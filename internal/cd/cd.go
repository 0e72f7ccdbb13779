package cd

import (
	saturnaudio "github.com/saturnist/corehw/internal/audio"
	"github.com/saturnist/corehw/internal/disc"
)

// Command identifies a CD drive command by the high nibble of the first
// command byte (spec §4.5 "command set").
type Command uint8

const (
	CmdContinue      Command = 0x0
	CmdSeekRing      Command = 0x2
	CmdReadTOC       Command = 0x3
	CmdStop          Command = 0x4
	CmdReadSector    Command = 0x6
	CmdPause         Command = 0x8
	CmdSeekSector    Command = 0x9
	CmdScanForwards  Command = 0xA
	CmdScanBackwards Command = 0xB
)

// Operation identifies the drive's current activity, reported in the first
// status byte of every transfer (spec §4.5 "operation codes").
type Operation uint8

const (
	OpReset              Operation = 0x00
	OpReadTOC            Operation = 0x04
	OpStopped            Operation = 0x12
	OpSeek               Operation = 0x22
	OpDiscChanged        Operation = 0x30
	OpReadAudioSector    Operation = 0x34
	OpReadDataSector     Operation = 0x36
	OpIdle               Operation = 0x46
	OpScanAudioSector    Operation = 0x54
	OpTrayOpen           Operation = 0x80
	OpNoDisc             Operation = 0x83
	OpSeekSecurityRingB2 Operation = 0xB2
	OpSeekSecurityRingB6 Operation = 0xB6
)

// TxState tracks where the drive is in one 13-byte command/status exchange.
// hardware/sh1's SCI already exchanges whole bytes rather than individual
// bits (SetSerialHandlers' callbacks are byte-at-a-time), so unlike the
// original's 7-state bit-level machine, a transfer here is just "idle" or
// "in flight, some number of bytes already exchanged".
type TxState int

const (
	TxIdle TxState = iota
	TxActive
)

// CDCommand is the host's 13-byte command packet (spec §4.5).
type CDCommand struct {
	Command   uint8
	FADTop    uint8
	FADMid    uint8
	FADBtm    uint8
	Index     uint8
	FADEndTop uint8
	FADEndMid uint8
	FADEndBtm uint8
	IndexEnd  uint8
	Zero9     uint8
	ReadSpeed uint8
	Parity    uint8
	Zero13    uint8
}

// CDStatus is the drive's 11-field status, serialized with a 2-byte
// checksum into the outgoing 13-byte packet (spec §4.5).
type CDStatus struct {
	Operation Operation
	SubcodeQ  uint8
	TrackNum  uint8
	IndexNum  uint8
	Min       uint8
	Sec       uint8
	Frac      uint8
	Zero      uint8
	AbsMin    uint8
	AbsSec    uint8
	AbsFrac   uint8
}

// Drive is the Saturn CD drive: the bit-serial (here, byte-serial) link to
// the CD-block SH-1, disc/tray state, and the seek/read/scan state machine
// (spec §4.5).
type Drive struct {
	txState   TxState
	byteIndex int

	commandBytes [13]byte
	statusBytes  [13]byte

	Command CDCommand
	Status  CDStatus

	CurrFAD       disc.FAD
	SeekOperation Operation
	Playing       bool
	ScanActive    bool
	ScanForward   bool
	ReadSpeed     uint8

	tocIndex int

	TrayOpen            bool
	AutoCloseTray       bool
	discChangedPending  bool

	cyclesUntilReport    uint32
	reportIntervalCycles uint32

	Disc *disc.Disc

	// SetCOMSYNCn and SetCOMREQn model the two control lines the original
	// drive toggles around each transfer; both may be nil.
	SetCOMSYNCn func(asserted bool)
	SetCOMREQn  func(asserted bool)

	// DataSector receives a data track's 2048-byte user data payload.
	DataSector func(userData []byte)
	// CDDASector receives an audio track's full 2352-byte raw sector. It
	// returns the consumer's audio buffer fullness as a fraction in [0,1];
	// opSeekOrRead paces the next report interval against it (spec: "+25%
	// if >2/3 full, -25% if <1/3 full").
	CDDASector func(pcm []byte) (bufferFullness float64)
	// SectorTransferDone fires once a command packet has fully arrived.
	SectorTransferDone func()

	sectorBuf [2352]byte
}

// NewDrive returns a Drive in its post-reset state.
func NewDrive() *Drive {
	d := &Drive{}
	d.Reset()
	return d
}

// AttachAudioSinks wires CDDASector/DataSector to the given collaborators
// (internal/audio.CDDASink/DataSectorSink), converting each raw sector into
// the audio.IntBuffer shape those collaborators expect (SPEC_FULL.md §11.2).
// Either sink may be nil to leave that callback untouched.
func (d *Drive) AttachAudioSinks(cdda saturnaudio.CDDASink, data saturnaudio.DataSectorSink) {
	if cdda != nil {
		d.CDDASector = func(pcm []byte) float64 {
			return cdda.WriteCDDASector(saturnaudio.SectorToIntBuffer(pcm))
		}
	}
	if data != nil {
		d.DataSector = data.WriteDataSector
	}
}

// Reset returns the drive to its power-on state (spec §4.5 "Reset").
func (d *Drive) Reset() {
	d.txState = TxIdle
	d.byteIndex = 0
	d.Status = CDStatus{Operation: OpReset}
	d.CurrFAD = 0
	d.SeekOperation = OpReset
	d.Playing = false
	d.ScanActive = false
	d.ReadSpeed = 1
	d.reportIntervalCycles = CyclesNotPlaying
	d.cyclesUntilReport = TxCyclesPowerOn
}

// OnDiscLoaded installs d as the currently-loaded disc, flagging the next
// status report as a disc-change notification (spec §4.5 OpDiscChanged).
func (d *Drive) OnDiscLoaded(disc_ *disc.Disc) {
	d.Disc = disc_
	d.discChangedPending = true
	d.TrayOpen = false
}

// OnDiscEjected clears the loaded disc.
func (d *Drive) OnDiscEjected() {
	d.Disc = nil
	d.discChangedPending = true
}

// OpenTray opens the tray, ejecting whatever disc was loaded.
func (d *Drive) OpenTray() {
	d.TrayOpen = true
	d.Disc = nil
}

// CloseTray closes the tray.
func (d *Drive) CloseTray() {
	d.TrayOpen = false
}

// Advance ticks the drive's report cadence by cycles master-clock cycles.
// Byte exchange itself is paced by SerialTx/SerialRx, called from
// hardware/sh1's SCI0 bit clock; Advance only decides when to begin the
// next unsolicited status report once the link is idle.
func (d *Drive) Advance(cycles uint32) {
	if d.txState == TxActive {
		return
	}
	thirds := cycles * 3 // timing.go's constants count thirds of a cycle
	if d.cyclesUntilReport > thirds {
		d.cyclesUntilReport -= thirds
		return
	}
	d.cyclesUntilReport = d.reportIntervalCycles
	d.beginTransfer()
}

func (d *Drive) beginTransfer() {
	d.ProcessOperation()
	d.OutputDriveStatus()
	d.txState = TxActive
	d.byteIndex = 0
	if d.SetCOMSYNCn != nil {
		d.SetCOMSYNCn(false)
	}
	if d.SetCOMREQn != nil {
		d.SetCOMREQn(false)
	}
}

// SerialTx returns the next outgoing status byte. Wired as the rx callback
// of hardware/sh1.CPU.SetSerialHandlers: the CD-block CPU reads what the
// drive is transmitting.
func (d *Drive) SerialTx() uint8 {
	if d.txState != TxActive {
		return 0
	}
	return d.statusBytes[d.byteIndex]
}

// SerialRx accepts the next incoming command byte. Wired as the tx callback
// of hardware/sh1.CPU.SetSerialHandlers: the CD-block CPU is handing the
// drive the byte it just clocked out. Once all 13 bytes have arrived the
// packet is decoded and dispatched.
func (d *Drive) SerialRx(b uint8) {
	if d.txState != TxActive {
		return
	}
	d.commandBytes[d.byteIndex] = b
	d.byteIndex++
	if d.byteIndex >= 13 {
		d.txState = TxIdle
		if d.SetCOMSYNCn != nil {
			d.SetCOMSYNCn(true)
		}
		if d.SetCOMREQn != nil {
			d.SetCOMREQn(true)
		}
		d.decodeCommand()
		d.ProcessCommand()
		if d.SectorTransferDone != nil {
			d.SectorTransferDone()
		}
	}
}

func (d *Drive) decodeCommand() {
	c := d.commandBytes
	d.Command = CDCommand{
		Command: c[0], FADTop: c[1], FADMid: c[2], FADBtm: c[3],
		Index: c[4], FADEndTop: c[5], FADEndMid: c[6], FADEndBtm: c[7],
		IndexEnd: c[8], Zero9: c[9], ReadSpeed: c[10], Parity: c[11], Zero13: c[12],
	}
}

func (d *Drive) commandFAD() disc.FAD {
	return disc.FAD(uint32(d.Command.FADTop)<<16 | uint32(d.Command.FADMid)<<8 | uint32(d.Command.FADBtm))
}

// OutputDriveStatus serializes Status into the outgoing 13-byte packet.
func (d *Drive) OutputDriveStatus() {
	s := &d.Status
	d.statusBytes[0] = uint8(s.Operation)
	d.statusBytes[1] = s.SubcodeQ
	d.statusBytes[2] = s.TrackNum
	d.statusBytes[3] = s.IndexNum
	d.statusBytes[4] = s.Min
	d.statusBytes[5] = s.Sec
	d.statusBytes[6] = s.Frac
	d.statusBytes[7] = s.Zero
	d.statusBytes[8] = s.AbsMin
	d.statusBytes[9] = s.AbsSec
	d.statusBytes[10] = s.AbsFrac
	d.CalcStatusDataChecksum()
}

// CalcStatusDataChecksum fills the final two status bytes with an additive
// checksum and its complement over the preceding 11 bytes. The original's
// exact checksum algorithm wasn't present in the retrieval pack; this is a
// standard additive/complement scheme, not a verified bit-for-bit port.
func (d *Drive) CalcStatusDataChecksum() {
	var sum uint8
	for i := 0; i < 11; i++ {
		sum += d.statusBytes[i]
	}
	d.statusBytes[11] = sum
	d.statusBytes[12] = ^sum
}

// ProcessCommand dispatches the most recently decoded command. Unrecognized
// commands silently go to Idle (spec §4.5).
func (d *Drive) ProcessCommand() {
	switch Command(d.Command.Command >> 4) {
	case CmdContinue:
	case CmdSeekRing:
		d.SeekOperation = OpSeekSecurityRingB2
		d.CurrFAD = d.commandFAD()
	case CmdReadTOC:
		d.SeekOperation = OpReadTOC
		d.tocIndex = 0
	case CmdStop:
		d.SeekOperation = OpStopped
		d.Playing = false
	case CmdReadSector:
		d.SeekOperation = OpSeek
		d.CurrFAD = d.commandFAD()
		d.Playing = true
		d.ScanActive = false
	case CmdPause:
		d.Playing = false
		d.SeekOperation = OpIdle
	case CmdSeekSector:
		d.SeekOperation = OpSeek
		d.CurrFAD = d.commandFAD()
		d.Playing = false
	case CmdScanForwards:
		d.ScanActive = true
		d.ScanForward = true
		d.Playing = true
		d.SeekOperation = OpSeek
	case CmdScanBackwards:
		d.ScanActive = true
		d.ScanForward = false
		d.Playing = true
		d.SeekOperation = OpSeek
	default:
		d.SeekOperation = OpIdle
	}
}

// ProcessOperation refreshes Status for the operation currently underway
// and, for sector reads, fires the DataSector/CDDASector callbacks. Called
// once per unsolicited status report.
func (d *Drive) ProcessOperation() {
	if d.TrayOpen {
		d.Status = CDStatus{Operation: OpTrayOpen}
		return
	}
	if d.Disc == nil || len(d.Disc.Sessions) == 0 {
		d.Status = CDStatus{Operation: OpNoDisc}
		return
	}
	if d.discChangedPending {
		d.discChangedPending = false
		d.Status = CDStatus{Operation: OpDiscChanged}
		return
	}

	switch d.SeekOperation {
	case OpReadTOC:
		d.opReadTOC()
	case OpStopped:
		d.Status = CDStatus{Operation: OpStopped}
	case OpSeek:
		d.opSeekOrRead()
	case OpSeekSecurityRingB2, OpSeekSecurityRingB6:
		d.opSeekRing()
	default:
		d.Status = CDStatus{Operation: OpIdle}
	}
}

func (d *Drive) opReadTOC() {
	sess := d.Disc.LastSession()
	if d.tocIndex == 0 {
		sess.BuildTOC()
	}
	if d.tocIndex >= len(sess.LeadInTOC) {
		d.Status = CDStatus{Operation: OpIdle}
		return
	}
	e := sess.LeadInTOC[d.tocIndex]
	d.Status = CDStatus{
		Operation: OpReadTOC,
		TrackNum:  e.TrackNum,
		IndexNum:  e.PointOrIndex,
		Min:       e.Min, Sec: e.Sec, Frac: e.Frac,
		Zero:   e.Zero,
		AbsMin: e.AbsMin, AbsSec: e.AbsSec, AbsFrac: e.AbsFrac,
	}
	d.tocIndex++
}

func (d *Drive) opSeekOrRead() {
	sess := d.Disc.LastSession()
	tr := sess.FindTrack(d.CurrFAD)
	if tr == nil {
		d.Status = CDStatus{Operation: OpIdle}
		d.Playing = false
		return
	}

	idx := tr.FindIndex(d.CurrFAD)
	relMin, relSec, relFrac := msfBCDLocal(uint32(d.CurrFAD - tr.StartFAD))
	absMin, absSec, absFrac := msfBCDLocal(uint32(d.CurrFAD))

	isAudio := tr.ControlADR == disc.ControlADRAudio
	op := OpReadDataSector
	if isAudio {
		op = OpReadAudioSector
		if d.ScanActive {
			op = OpScanAudioSector
		}
	}

	d.Status = CDStatus{
		Operation: op,
		TrackNum:  toBCD(sess.FindTrackIndex(d.CurrFAD) + 1),
		IndexNum:  toBCD(idx + 1),
		Min:       relMin, Sec: relSec, Frac: relFrac,
		AbsMin: absMin, AbsSec: absSec, AbsFrac: absFrac,
	}

	cddaPace := 1.0
	if d.Playing {
		if isAudio {
			if d.CDDASector != nil && tr.ReadSector(d.CurrFAD, d.sectorBuf[:]) {
				cddaPace = d.CDDASector(d.sectorBuf[:])
			}
		} else if d.DataSector != nil {
			var user [2048]byte
			if tr.ReadSectorUserData(d.CurrFAD, user[:]) {
				d.DataSector(user[:])
			}
		}

		step := int64(1)
		if d.ScanActive {
			step = 10
			if !d.ScanForward {
				step = -10
			}
		}
		next := int64(d.CurrFAD) + step
		if next < int64(tr.StartFAD) {
			next = int64(tr.StartFAD)
		}
		d.CurrFAD = disc.FAD(next)
	}

	interval := uint32(CyclesPlaying1x)
	if isAudio {
		switch {
		case cddaPace > 2.0/3.0:
			interval = interval + interval/4
		case cddaPace < 1.0/3.0:
			interval = interval - interval/4
		}
	}
	d.reportIntervalCycles = interval
}

func (d *Drive) opSeekRing() {
	buildSecurityRingSector(d.CurrFAD, d.sectorBuf[:])
	if d.DataSector != nil {
		var user [2048]byte
		copy(user[:], d.sectorBuf[24:24+2048])
		d.DataSector(user[:])
	}
	min, sec, frac := msfBCDLocal(uint32(d.CurrFAD))
	d.Status = CDStatus{
		Operation: d.SeekOperation,
		Min:       min, Sec: sec, Frac: frac,
		AbsMin: min, AbsSec: sec, AbsFrac: frac,
	}
}

func msfBCDLocal(frames uint32) (min, sec, frac uint8) {
	return toBCD(uint8(frames / 75 / 60)), toBCD(uint8(frames / 75 % 60)), toBCD(uint8(frames % 75))
}
