package smpc

// Command is one of the SMPC's host-issued COMREG commands (spec §2.8).
// Only the subset this module actually models is named; the rest of the
// real command set (SSHON/SSHOFF/SNDON/SNDOFF/CKCHG*/...) are power and
// clock-speed toggles this emulation core doesn't need to act on, since it
// has no separate "slave SH-2 powered down" state to honour.
type Command uint8

const (
	CmdINTBACK  Command = 0x10 // interrupt back: area code + RTC + pad poll
	CmdSETTIME  Command = 0x16 // write the RTC from IREG
	CmdRESENAB  Command = 0x19 // enable the reset button
	CmdRESDISA  Command = 0x1A // disable the reset button
)

// RTC is the battery-backed real-time clock's fields, stored as plain
// binary (not BCD) internally; BCD packing happens only at the OREG
// boundary, matching how the real chip presents it to software.
type RTC struct {
	Year           uint16
	Month, Day     uint8
	Hour, Minute   uint8
	Second         uint8
}

// SMPC is the System Manager peripheral (spec §2.8).
type SMPC struct {
	IREG [7]uint8
	OREG [32]uint8
	SF   bool // command-in-progress status flag

	areaCode uint8
	rtc      RTC

	resetEnabled bool

	// PollPort1 and PollPort2 return the current 16-bit digital-button
	// bitmap for each of the two controller ports (spec §6). A nil callback
	// polls as "nothing pressed".
	PollPort1 func() uint16
	PollPort2 func() uint16

	// RaiseInterrupt fires when a command completes.
	RaiseInterrupt func()
	// OnReset fires when a reset is actually requested (button press or
	// software NMI-style request) and the reset button is enabled.
	OnReset func(hard bool)
}

// New creates an SMPC reporting the given area code (spec §6; one of
// config.AreaJapan/AreaNorthAmerica/AreaEurope) with the reset button
// enabled, matching power-on defaults.
func New(areaCode uint8) *SMPC {
	return &SMPC{
		areaCode:     areaCode,
		resetEnabled: true,
	}
}

// AreaCode returns the configured area code.
func (s *SMPC) AreaCode() uint8 { return s.areaCode }

// SetAreaCode changes the reported area code.
func (s *SMPC) SetAreaCode(code uint8) { s.areaCode = code }

// SetRTC sets the clock directly (eg. from a front-end's wall-clock read or
// a deterministic test fixture); this module never reads the host clock
// itself.
func (s *SMPC) SetRTC(rtc RTC) { s.rtc = rtc }

// RTC returns the current clock value.
func (s *SMPC) RTC() RTC { return s.rtc }

func toBCD(v uint8) uint8 {
	return (v/10)<<4 | (v % 10)
}

func fromBCD(v uint8) uint8 {
	return (v>>4)*10 + v&0xF
}

// Execute runs cmd, consuming IREG and producing OREG, exactly as a single
// synchronous step (this module has no notion of the command taking
// multiple host-visible cycles; SF is asserted then immediately cleared
// around the side effects so a caller polling SF never observes it stuck).
func (s *SMPC) Execute(cmd Command) {
	s.SF = true
	defer func() {
		s.SF = false
		if s.RaiseInterrupt != nil {
			s.RaiseInterrupt()
		}
	}()

	switch cmd {
	case CmdINTBACK:
		s.execINTBACK()
	case CmdSETTIME:
		s.execSETTIME()
	case CmdRESENAB:
		s.resetEnabled = true
	case CmdRESDISA:
		s.resetEnabled = false
	}
}

// execINTBACK fills OREG with the area code, the RTC (BCD-packed, as real
// software expects), and one digital-pad report per port (spec §6: "two
// digital ports, each exposing a 16-bit button bitmap at poll time").
func (s *SMPC) execINTBACK() {
	s.OREG[0] = s.areaCode

	y := s.rtc.Year
	s.OREG[1] = toBCD(uint8(y / 100))
	s.OREG[2] = toBCD(uint8(y % 100))
	s.OREG[3] = toBCD(s.rtc.Month)
	s.OREG[4] = toBCD(s.rtc.Day)
	s.OREG[5] = toBCD(s.rtc.Hour)
	s.OREG[6] = toBCD(s.rtc.Minute)
	s.OREG[7] = toBCD(s.rtc.Second)

	p1 := s.poll(s.PollPort1)
	p2 := s.poll(s.PollPort2)
	s.OREG[8] = uint8(p1 >> 8)
	s.OREG[9] = uint8(p1)
	s.OREG[10] = uint8(p2 >> 8)
	s.OREG[11] = uint8(p2)
}

func (s *SMPC) poll(cb func() uint16) uint16 {
	if cb == nil {
		return 0
	}
	return cb()
}

// execSETTIME writes the RTC from IREG, the BCD-packed inverse of
// execINTBACK's encoding.
func (s *SMPC) execSETTIME() {
	s.rtc.Year = uint16(fromBCD(s.IREG[0]))*100 + uint16(fromBCD(s.IREG[1]))
	s.rtc.Month = fromBCD(s.IREG[2])
	s.rtc.Day = fromBCD(s.IREG[3])
	s.rtc.Hour = fromBCD(s.IREG[4])
	s.rtc.Minute = fromBCD(s.IREG[5])
	s.rtc.Second = fromBCD(s.IREG[6])
}

// RequestReset asks the system to reset. It only actually fires OnReset if
// the reset button is currently enabled (spec §2.8; software can disable
// the reset button via RESDISA to prevent accidental resets mid-save).
func (s *SMPC) RequestReset(hard bool) {
	if !s.resetEnabled || s.OnReset == nil {
		return
	}
	s.OnReset(hard)
}

// ResetEnabled reports whether the reset button currently fires a reset.
func (s *SMPC) ResetEnabled() bool { return s.resetEnabled }

// SetResetEnabled forces the reset-button-enabled flag directly, used by
// save-state restore (RESENAB/RESDISA are the only other way to change it).
func (s *SMPC) SetResetEnabled(v bool) { s.resetEnabled = v }
