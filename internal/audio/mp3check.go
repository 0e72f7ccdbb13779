package audio

import (
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// MP3RoundTrip decodes r as an MP3 stream, returning its sample rate. No
// code path in this module ever produces an MP3 stream -- the CD drive only
// ever emits raw PCM sectors (spec §6) -- this exists purely so CD audio
// test fixtures can assert "this is definitely not an MP3 stream" using the
// same decoder a real consumer would, rather than an ad hoc byte check
// (SPEC_FULL.md §11.2: "round-trip check placeholder ... symmetry only").
func MP3RoundTrip(r io.Reader) (sampleRate int, err error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return 0, err
	}
	return dec.SampleRate(), nil
}
