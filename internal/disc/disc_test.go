package disc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saturnist/corehw/internal/disc"
)

func TestFADMSFRoundTrip(t *testing.T) {
	msf := disc.MSF{Min: 1, Sec: 2, Frac: 3}
	fad := msf.ToFAD()
	require.Equal(t, disc.FAD(1*75*60+2*75+3+150), fad)
	require.Equal(t, msf, fad.ToMSF())
}

type memReader struct{ data []byte }

func (m *memReader) ReadAt(offset int64, out []byte) int {
	if offset < 0 || offset >= int64(len(m.data)) {
		return 0
	}
	n := copy(out, m.data[offset:])
	return n
}

func TestReadSectorSynthesizesMissingParts(t *testing.T) {
	userData := make([]byte, 2048)
	for i := range userData {
		userData[i] = byte(i)
	}
	reader := &memReader{data: userData}

	tr := disc.Track{
		Reader:     reader,
		ControlADR: disc.ControlADRData,
		StartFAD:   150,
		EndFAD:     150,
	}
	tr.SetSectorSize(2048)

	out := make([]byte, 2352)
	require.True(t, tr.ReadSector(150, out))

	// synthesized sync pattern
	require.Equal(t, byte(0x00), out[0])
	require.Equal(t, byte(0xFF), out[1])
	require.Equal(t, byte(0x00), out[11])
	// synthesized mode byte (mode 1, non-mode2 data track)
	require.Equal(t, byte(0x01), out[0xF])
	// user data landed at the right offset
	require.Equal(t, userData[0], out[16])
}

func TestSessionBuildTOC(t *testing.T) {
	var s disc.Session
	s.NumTracks = 1
	s.StartFAD = 150
	s.EndFAD = 1000
	s.Tracks[0] = disc.Track{
		ControlADR: disc.ControlADRData,
		StartFAD:   150,
		EndFAD:     1000,
		Index01FAD: 150,
	}
	s.BuildTOC()

	require.Len(t, s.LeadInTOC, 4) // A0, A1, A2, track 1
	require.Equal(t, uint8(0xA0), s.LeadInTOC[0].PointOrIndex)
	require.Equal(t, uint8(0xA1), s.LeadInTOC[1].PointOrIndex)
	require.Equal(t, uint8(0xA2), s.LeadInTOC[2].PointOrIndex)
	require.Equal(t, uint8(0x01), s.LeadInTOC[3].PointOrIndex) // BCD 1 == 0x01
}

func TestFindTrack(t *testing.T) {
	var s disc.Session
	s.NumTracks = 2
	s.Tracks[0] = disc.Track{StartFAD: 150, EndFAD: 999, ControlADR: disc.ControlADRData}
	s.Tracks[1] = disc.Track{StartFAD: 1000, EndFAD: 2000, ControlADR: disc.ControlADRAudio}

	require.Equal(t, uint8(0), s.FindTrackIndex(500))
	require.Equal(t, uint8(1), s.FindTrackIndex(1500))
	require.Equal(t, uint8(0xFF), s.FindTrackIndex(3000))
	require.Nil(t, s.FindTrack(3000))
}
