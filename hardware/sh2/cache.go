package sh2

// Cache models the SH-2's on-chip 4-way, 128-line, 16-byte-per-line cache
// (spec §4.3 "Cache emulation"). It sits in front of the on-chip bus; when
// disabled every access bypasses it entirely and behaves as a direct read.
// Toggling Enabled mid-run is always safe: Lookup/Fill only touch state
// while Enabled is true, so a cache that's been switched off simply stops
// being consulted rather than needing to be flushed.
type Cache struct {
	Enabled bool

	lines [128][4]cacheLine
	lru   [128][4]uint8 // per-set access order, index 0 = most recently used way
}

type cacheLine struct {
	valid bool
	tag   uint32
	data  [16]byte
}

const cacheLineBytes = 16

func cacheIndex(addr uint32) (tag uint32, set uint32, offset uint32) {
	tag = addr / (cacheLineBytes * 128)
	set = (addr / cacheLineBytes) % 128
	offset = addr % cacheLineBytes
	return
}

// Lookup reports whether addr currently hits the cache; on a hit it
// returns the cached byte and touches the LRU order.
func (c *Cache) Lookup(addr uint32) (v byte, hit bool) {
	if !c.Enabled {
		return 0, false
	}
	tag, set, offset := cacheIndex(addr)
	for way := 0; way < 4; way++ {
		line := &c.lines[set][way]
		if line.valid && line.tag == tag {
			c.touch(set, uint8(way))
			return line.data[offset], true
		}
	}
	return 0, false
}

// Fill allocates a line for addr using LRU replacement, loading its
// contents via read (typically the direct bus read), and returns the
// requested byte (spec §4.3: "misses allocate using LRU replacement").
func (c *Cache) Fill(addr uint32, read func(lineBase uint32, n int) []byte) byte {
	tag, set, offset := cacheIndex(addr)
	if c.lru[set] == [4]uint8{} {
		// the zero value is not a valid access order; seed it with ways 0-3
		c.lru[set] = [4]uint8{0, 1, 2, 3}
	}
	way := c.lru[set][3] // least-recently-used way in this set
	line := &c.lines[set][way]

	lineBase := addr - offset
	copy(line.data[:], read(lineBase, cacheLineBytes))
	line.valid = true
	line.tag = tag

	c.touch(set, way)
	return line.data[offset]
}

// Purge invalidates every line whose tag matches addr (spec §4.3: "Purge is
// addressable via the SH-2 cache control register").
func (c *Cache) Purge(addr uint32) {
	tag, set, _ := cacheIndex(addr)
	for way := 0; way < 4; way++ {
		if c.lines[set][way].tag == tag {
			c.lines[set][way].valid = false
		}
	}
}

// PurgeAll invalidates the entire cache.
func (c *Cache) PurgeAll() {
	for set := range c.lines {
		for way := range c.lines[set] {
			c.lines[set][way] = cacheLine{}
		}
	}
}

func (c *Cache) touch(set uint32, way uint8) {
	order := &c.lru[set]
	pos := 0
	for i, w := range order {
		if w == way {
			pos = i
			break
		}
	}
	copy(order[1:pos+1], order[0:pos])
	order[0] = way
}
