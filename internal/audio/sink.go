package audio

import "github.com/go-audio/audio"

// SampleRate is the CD-DA sample rate; every sector this package converts
// is stamped with it regardless of the drive's read speed, since read speed
// only changes how often sectors arrive, not their content.
const SampleRate = 44100

// CDDASink receives one CD-DA sector's worth of stereo PCM (588 frames,
// already normalised to little-endian S16 per spec §6) and reports back how
// full its output buffer is, as a fraction in [0,1], so the CD drive can
// pace its next read interval (spec: "+25% if >2/3 full, -25% if <1/3
// full").
type CDDASink interface {
	WriteCDDASector(buf *audio.IntBuffer) (bufferFullness float64)
}

// DataSectorSink receives one data sector's 2048-byte user-data payload.
type DataSectorSink interface {
	WriteDataSector(data []byte)
}

// SectorToIntBuffer converts a raw 2352-byte little-endian S16 stereo CD-DA
// sector into an audio.IntBuffer, the shape CDDASink receives;
// internal/cd's Drive.AttachAudioSinks uses it on every raw audio sector.
func SectorToIntBuffer(sector []byte) *audio.IntBuffer {
	data := make([]int, len(sector)/2)
	for i := range data {
		lo, hi := sector[i*2], sector[i*2+1]
		data[i] = int(int16(uint16(lo) | uint16(hi)<<8))
	}
	return &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
}
