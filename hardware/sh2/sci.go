package sh2

// SCI is one serial communication interface channel. The SH-2 exposes two;
// the SH-1 (package sh1) reuses this type for its CD-block link channels
// (spec §4.4: "SCI (2 serial channels used as the CD-drive link)").
type SCI struct {
	TDR uint8 // transmit data register
	RDR uint8 // receive data register

	TxEnable bool
	RxEnable bool

	TxEmptyIRQ bool
	RxFullIRQ  bool

	TxEmpty bool
	RxFull  bool

	onTransmit func(b uint8)

	intc   *INTC
	txName string
	rxName string
}

// NewSCI creates a serial channel that requests interrupts through intc
// under txName/rxName (so that two channels on the same CPU don't collide).
func NewSCI(intc *INTC, txName, rxName string) *SCI {
	return &SCI{intc: intc, txName: txName, rxName: rxName, TxEmpty: true}
}

// SetTransmitHandler installs the function invoked whenever a byte is
// written to TDR while transmission is enabled, eg. to feed the SH-1/SCU
// bit-serial link (spec §4.4, §4.5).
func (s *SCI) SetTransmitHandler(fn func(b uint8)) {
	s.onTransmit = fn
}

// Transmit writes v to TDR and, if transmission is enabled, immediately
// hands it to the transmit handler -- the real UART's bit-serial timing is
// not separately modelled since no software depends on it.
func (s *SCI) Transmit(v uint8) {
	s.TDR = v
	if !s.TxEnable {
		return
	}
	if s.onTransmit != nil {
		s.onTransmit(v)
	}
	s.TxEmpty = true
	if s.TxEmptyIRQ {
		s.intc.Request(s.txName)
	}
}

// Receive delivers an incoming byte to RDR, raising the receive-full
// interrupt if enabled.
func (s *SCI) Receive(v uint8) {
	s.RDR = v
	s.RxFull = true
	if s.RxEnable && s.RxFullIRQ {
		s.intc.Request(s.rxName)
	}
}
