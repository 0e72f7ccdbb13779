// This file is part of saturncore; adapted from JetSetIlly/Gopher2600 (GPLv3).

package config_test

import (
	"testing"

	"github.com/saturnist/corehw/config"
	"github.com/saturnist/corehw/test"
)

func TestDefaults(t *testing.T) {
	c := config.NewConfig()
	test.ExpectEquality(t, c.UseLLE, false)
	test.ExpectEquality(t, c.SH2CacheEmulation, true)
	test.ExpectEquality(t, c.VideoStandard, config.NTSC)
	test.ExpectEquality(t, c.AreaCode, uint8(config.AreaJapan))
	test.ExpectEquality(t, c.DeinterlaceMode, config.DeinterlaceNone)
	test.ExpectEquality(t, c.TransparentMeshes, false)
	test.ExpectEquality(t, c.AudioInterpolation, config.AudioLinear)
	test.ExpectEquality(t, c.ThreadedVDPRendering, false)
}

func TestMutateThenRestoreDefaults(t *testing.T) {
	c := config.NewConfig()
	c.SH2CacheEmulation = false
	c.VideoStandard = config.PAL
	c.AreaCode = config.AreaEurope

	test.ExpectEquality(t, c.SH2CacheEmulation, false)

	c.SetDefaults()
	test.ExpectEquality(t, c.SH2CacheEmulation, true)
	test.ExpectEquality(t, c.VideoStandard, config.NTSC)
}
