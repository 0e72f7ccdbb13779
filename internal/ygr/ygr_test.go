package ygr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saturnist/corehw/internal/ygr"
)

func TestWriteCRLatchesOnWordThree(t *testing.T) {
	y := ygr.New()
	fired := false
	y.RaiseSH1Interrupt = func() { fired = true }

	y.WriteCR(0, 0x1234)
	require.False(t, fired)
	y.WriteCR(3, 0xABCD)
	require.True(t, fired)
	require.Equal(t, uint16(0x1234), y.ReadCR(0))
	require.Equal(t, uint16(0xABCD), y.ReadCR(3))
}

func TestWriteRRSetsCMOK(t *testing.T) {
	y := ygr.New()
	y.WriteHIRQMask(uint16(ygr.HIRQMask))
	y.WriteRR(3, 0x0001)
	require.NotZero(t, y.ReadHIRQ()&uint16(ygr.HIRQCMOK))
}

func TestHostWriteIsAndOnlyCannotSetBits(t *testing.T) {
	y := ygr.New()
	y.SetHIRQ(ygr.HIRQDRDY)
	y.HostWriteHIRQ(uint16(ygr.HIRQCMOK)) // attempt to "set" CMOK via host write
	require.Zero(t, y.ReadHIRQ()&uint16(ygr.HIRQCMOK))
	// and it does clear the bit not present in the AND mask
	require.Zero(t, y.ReadHIRQ()&uint16(ygr.HIRQDRDY))
}

func TestSH1WriteIsOrOnlyCannotClearBits(t *testing.T) {
	y := ygr.New()
	y.SetHIRQ(ygr.HIRQDRDY | ygr.HIRQCSCT)
	y.SetHIRQ(0) // OR with zero must not clear anything
	require.Equal(t, uint16(ygr.HIRQDRDY|ygr.HIRQCSCT), y.ReadHIRQ())
}

func TestUnassignedBitsRoundTripWithoutAffectingSCU(t *testing.T) {
	y := ygr.New()
	scuRaised := false
	y.RaiseSCUInterrupt = func() { scuRaised = true }
	y.WriteHIRQMask(0xFFFF)

	y.SetHIRQ(ygr.HIRQFlag(0xC000)) // only unassigned upper bits
	require.Equal(t, uint16(0xC000), y.ReadHIRQ())
	require.False(t, scuRaised)
}

func TestSCUInterruptTracksMaskedHIRQ(t *testing.T) {
	y := ygr.New()
	var asserted bool
	y.RaiseSCUInterrupt = func() { asserted = true }
	y.ClearSCUInterrupt = func() { asserted = false }

	y.WriteHIRQMask(uint16(ygr.HIRQDRDY))
	y.SetHIRQ(ygr.HIRQCSCT) // masked out, no interrupt
	require.False(t, asserted)

	y.SetHIRQ(ygr.HIRQDRDY)
	require.True(t, asserted)

	y.HostWriteHIRQ(^uint16(ygr.HIRQDRDY))
	require.False(t, asserted)
}

func TestFIFORoundTripAndFullFlag(t *testing.T) {
	y := ygr.New()
	dreqCount := 0
	y.DREQHost = func() { dreqCount++ }

	for i := uint16(0); i < 6; i++ {
		require.True(t, y.PushSectorWord(i))
	}
	require.Equal(t, 6, dreqCount)
	require.False(t, y.PushSectorWord(99)) // full
	require.NotZero(t, y.ReadHIRQ()&uint16(ygr.HIRQBFUL))

	for i := uint16(0); i < 6; i++ {
		v, ok := y.PopSectorWord()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	_, ok := y.PopSectorWord()
	require.False(t, ok)
}

func TestTRCTLResetClearsFIFO(t *testing.T) {
	y := ygr.New()
	y.PushSectorWord(1)
	y.PushSectorWord(2)
	require.Equal(t, 2, y.FIFOLen())

	y.WriteTRCTL(true, true, true)
	require.Equal(t, 0, y.FIFOLen())
}
