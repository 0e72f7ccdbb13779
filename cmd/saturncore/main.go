// cmd/saturncore is a determinism harness (spec §8 property 1): load an IPL
// image and an optional flat-binary single-track disc image, run N frames,
// and print a hash of the resulting framebuffer plus the elapsed cycle
// count, so two runs of identical inputs can be diffed for a mismatch.
package main

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/saturnist/corehw/hardware"
	"github.com/saturnist/corehw/internal/disc"
)

func main() {
	app := cli.NewApp()
	app.Name = "saturncore"
	app.Usage = "saturncore --ipl <file> [--disc <file>] --frames <n>"
	app.Description = "Runs the Saturn core headlessly and prints a deterministic framebuffer hash"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "ipl",
			Usage: "path to the 512KB IPL boot ROM image",
		},
		cli.StringFlag{
			Name:  "disc",
			Usage: "path to a flat-binary single-track 2048-byte-sector data disc image (optional)",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "number of frames to run",
			Value: 60,
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("saturncore failed", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	iplPath := c.String("ipl")
	if iplPath == "" {
		cli.ShowAppHelp(c)
		return fmt.Errorf("--ipl is required")
	}

	iplData, err := os.ReadFile(iplPath)
	if err != nil {
		return fmt.Errorf("reading IPL image: %w", err)
	}

	saturn := hardware.NewSaturn()
	if err := saturn.LoadIPL(iplData); err != nil {
		return fmt.Errorf("loading IPL image: %w", err)
	}

	if discPath := c.String("disc"); discPath != "" {
		discData, err := os.ReadFile(discPath)
		if err != nil {
			return fmt.Errorf("reading disc image: %w", err)
		}
		saturn.LoadDisc(flatDataDisc(discData))
	}

	frames := c.Int("frames")
	if frames <= 0 {
		return fmt.Errorf("--frames must be positive")
	}

	for i := 0; i < frames; i++ {
		saturn.RunFrame()
	}

	pixels, width, height := saturn.GetFramebuffer()
	h := fnv.New64a()
	for _, p := range pixels {
		fmt.Fprintf(h, "%08x", p)
	}

	fmt.Printf("frames=%d cycles=%d framebuffer=%dx%d hash=%016x\n",
		frames, saturn.Scheduler.Now(), width, height, h.Sum64())
	return nil
}

// memReader is a disc.BinaryReader over an in-memory byte slice.
type memReader struct{ data []byte }

func (m memReader) ReadAt(offset int64, out []byte) int {
	if offset < 0 || offset >= int64(len(m.data)) {
		return 0
	}
	return copy(out, m.data[offset:])
}

// flatDataDisc wraps data as a single-session, single-track, 2048-byte
// data-sector disc -- the simplest container this module's disc model can
// express (spec §1 Non-goals excludes a real BIN/CUE container reader).
func flatDataDisc(data []byte) *disc.Disc {
	sectorCount := disc.FAD(len(data) / 2048)
	if len(data)%2048 != 0 {
		sectorCount++
	}

	track := disc.Track{
		Reader:     memReader{data: data},
		ControlADR: disc.ControlADRData,
		StartFAD:   150,
		EndFAD:     150 + disc.FAD(sectorCount) - 1,
		Index01FAD: 150,
		Indices:    []disc.Index{{StartFAD: 150, EndFAD: 150 + disc.FAD(sectorCount) - 1}},
	}
	track.SetSectorSize(2048)

	session := disc.Session{
		FirstTrackIndex: 0,
		NumTracks:       1,
		StartFAD:        track.StartFAD,
		EndFAD:          track.EndFAD,
	}
	session.Tracks[0] = track

	return &disc.Disc{Sessions: []disc.Session{session}}
}
