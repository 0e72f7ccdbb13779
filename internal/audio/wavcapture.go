package audio

import (
	"io"

	gaaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVCaptureSink is a CDDASink/DataSectorSink reference implementation
// backed by github.com/go-audio/wav, used by this package's tests to capture
// the samples and data a drive emits (SPEC_FULL.md §11.2).
// It is not part of any production playback path.
type WAVCaptureSink struct {
	enc *wav.Encoder

	// Fullness is returned verbatim from WriteCDDASector; tests set it to
	// drive the drive's pacing behaviour.
	Fullness float64

	// DataSectors accumulates every sector WriteDataSector receives, each a
	// defensive copy.
	DataSectors [][]byte
}

// NewWAVCaptureSink creates a sink writing 16-bit stereo PCM at SampleRate
// to w as it arrives. Close must be called to finalize the WAV header.
func NewWAVCaptureSink(w io.WriteSeeker) *WAVCaptureSink {
	return &WAVCaptureSink{
		enc:      wav.NewEncoder(w, SampleRate, 16, 2, 1),
		Fullness: 0.5,
	}
}

// WriteCDDASector implements CDDASink.
func (s *WAVCaptureSink) WriteCDDASector(buf *gaaudio.IntBuffer) float64 {
	s.enc.Write(buf)
	return s.Fullness
}

// WriteDataSector implements DataSectorSink.
func (s *WAVCaptureSink) WriteDataSector(data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	s.DataSectors = append(s.DataSectors, cp)
}

// Close finalizes the WAV stream.
func (s *WAVCaptureSink) Close() error {
	return s.enc.Close()
}
