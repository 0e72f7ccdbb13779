// This file is part of saturncore; CDDASink/DataSectorSink give the CD
// drive's audio/data-sector callbacks (internal/cd.Drive.CDDASector/
// DataSector) a named collaborator boundary instead of bare func fields,
// grounded on github.com/go-audio/audio's IntBuffer as the pack's own
// PCM-buffer representation (SPEC_FULL.md §11.2).

// Package audio defines the CD drive's audio/data-sector output
// collaborators and a go-audio/wav-backed reference implementation used by
// tests to capture what the drive would have emitted.
package audio
