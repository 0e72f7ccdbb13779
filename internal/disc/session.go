package disc

// TOCEntry is one raw lead-in table-of-contents entry as transmitted by the
// ReadTOC command (spec §4.5 "ReadTOC").
type TOCEntry struct {
	ControlADR    uint8
	TrackNum      uint8 // 0x00 for lead-in pointer entries
	PointOrIndex  uint8 // 0xA0/0xA1/0xA2 pointers, or BCD track number
	Min, Sec, Frac uint8 // relative time, BCD
	Zero          uint8
	AbsMin, AbsSec, AbsFrac uint8 // absolute time, BCD
}

// Session is one recording session: up to 99 tracks plus a lead-in TOC
// (spec §3 "each owning up to 99 tracks and a lead-in TOC").
type Session struct {
	Tracks         [99]Track
	FirstTrackIndex int // 0-based index of the first populated track
	NumTracks      int

	StartFAD FAD
	EndFAD   FAD

	LeadInTOC []TOCEntry
}

// FindTrackIndex returns the 0-based index of the track containing fad, or
// 0xFF if none does.
func (s *Session) FindTrackIndex(fad FAD) uint8 {
	for i := 0; i < s.NumTracks; i++ {
		t := &s.Tracks[s.FirstTrackIndex+i]
		if fad >= t.StartFAD && fad <= t.EndFAD {
			return uint8(s.FirstTrackIndex + i)
		}
	}
	return 0xFF
}

// FindTrack returns the track containing fad, or nil if none does.
func (s *Session) FindTrack(fad FAD) *Track {
	idx := s.FindTrackIndex(fad)
	if idx == 0xFF {
		return nil
	}
	return &s.Tracks[idx]
}

// BuildTOC regenerates LeadInTOC from the current track set (spec §4.5
// ReadTOC, §8 scenario S3): pointer entries A0 (first track), A1 (last
// track), A2 (lead-out), followed by one entry per populated track.
func (s *Session) BuildTOC() {
	firstNum, lastNum := 0, 0
	for i := range s.Tracks {
		if s.Tracks[i].ControlADR != 0 {
			if firstNum == 0 {
				firstNum = i + 1
			}
			lastNum = i + 1
		}
	}
	if firstNum == 0 {
		s.LeadInTOC = nil
		return
	}

	leadOutFAD := s.EndFAD + 1
	startMin, startSec, startFrac := msfBCD(uint32(s.StartFAD))

	entries := make([]TOCEntry, 0, 3+s.NumTracks)
	entries = append(entries, TOCEntry{
		ControlADR: s.Tracks[firstNum-1].ControlADR, PointOrIndex: 0xA0,
		Min: startMin, Sec: startSec, Frac: startFrac,
		AbsMin: toBCD(uint32(firstNum)),
	})
	entries = append(entries, TOCEntry{
		ControlADR: s.Tracks[lastNum-1].ControlADR, PointOrIndex: 0xA1,
		Min: startMin, Sec: startSec, Frac: startFrac,
		AbsMin: toBCD(uint32(lastNum)),
	})
	loMin, loSec, loFrac := msfBCD(uint32(leadOutFAD))
	entries = append(entries, TOCEntry{
		ControlADR: s.Tracks[lastNum-1].ControlADR, PointOrIndex: 0xA2,
		Min: startMin, Sec: startSec, Frac: startFrac,
		AbsMin: loMin, AbsSec: loSec, AbsFrac: loFrac,
	})

	for i := range s.Tracks {
		t := &s.Tracks[i]
		if t.ControlADR == 0 {
			continue
		}
		relFAD := uint32(t.Index01FAD - t.StartFAD)
		min, sec, frac := msfBCD(relFAD)
		amin, asec, afrac := msfBCD(uint32(t.Index01FAD))
		entries = append(entries, TOCEntry{
			ControlADR: t.ControlADR, PointOrIndex: toBCD(uint32(i + 1)),
			Min: min, Sec: sec, Frac: frac,
			AbsMin: amin, AbsSec: asec, AbsFrac: afrac,
		})
	}
	s.LeadInTOC = entries
}
