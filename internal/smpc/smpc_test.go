package smpc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saturnist/corehw/config"
	"github.com/saturnist/corehw/internal/smpc"
)

func TestAreaCodeRoundTrip(t *testing.T) {
	s := smpc.New(config.AreaEurope)
	require.Equal(t, uint8(config.AreaEurope), s.AreaCode())
	s.SetAreaCode(config.AreaNorthAmerica)
	require.Equal(t, uint8(config.AreaNorthAmerica), s.AreaCode())
}

func TestSETTIMEThenINTBACKRoundTripsBCD(t *testing.T) {
	s := smpc.New(config.AreaJapan)
	s.IREG = [7]uint8{0x19, 0x98, 0x07, 0x15, 0x12, 0x30, 0x45}
	s.Execute(smpc.CmdSETTIME)

	rtc := s.RTC()
	require.Equal(t, uint16(1998), rtc.Year)
	require.Equal(t, uint8(7), rtc.Month)
	require.Equal(t, uint8(15), rtc.Day)

	s.Execute(smpc.CmdINTBACK)
	require.Equal(t, uint8(0x19), s.OREG[1])
	require.Equal(t, uint8(0x98), s.OREG[2])
	require.Equal(t, uint8(0x07), s.OREG[3])
	require.Equal(t, uint8(0x15), s.OREG[4])
	require.Equal(t, uint8(0x12), s.OREG[5])
	require.Equal(t, uint8(0x30), s.OREG[6])
	require.Equal(t, uint8(0x45), s.OREG[7])
}

func TestINTBACKReportsAreaCodeAndPadState(t *testing.T) {
	s := smpc.New(config.AreaNorthAmerica)
	s.PollPort1 = func() uint16 { return 0xBEEF }
	s.PollPort2 = func() uint16 { return 0 }

	raised := false
	s.RaiseInterrupt = func() { raised = true }

	s.Execute(smpc.CmdINTBACK)

	require.True(t, raised)
	require.False(t, s.SF)
	require.Equal(t, uint8(config.AreaNorthAmerica), s.OREG[0])
	require.Equal(t, uint8(0xBE), s.OREG[8])
	require.Equal(t, uint8(0xEF), s.OREG[9])
	require.Equal(t, uint8(0), s.OREG[10])
}

func TestResetDisabledSuppressesRequestReset(t *testing.T) {
	s := smpc.New(config.AreaJapan)
	fired := false
	s.OnReset = func(hard bool) { fired = true }

	s.Execute(smpc.CmdRESDISA)
	require.False(t, s.ResetEnabled())
	s.RequestReset(true)
	require.False(t, fired)

	s.Execute(smpc.CmdRESENAB)
	require.True(t, s.ResetEnabled())
	s.RequestReset(true)
	require.True(t, fired)
}
