package vdp1

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp5(v int) int {
	if v < 0 {
		return 0
	}
	if v > 31 {
		return 31
	}
	return v
}

// LineStepper walks the integer points of a line from (x0,y0) to (x1,y1)
// using Bresenham's algorithm, automatically choosing X-major or Y-major
// stepping from whichever axis has the larger span (spec §4.8 "LineStepper
// (Bresenham X-major/Y-major, optional antialiasing)"). AntiAlias is
// carried as configuration for callers that want to blend edge pixels; this
// stepper itself only produces the ideal integer path.
type LineStepper struct {
	AntiAlias bool

	x, y   int
	x1, y1 int
	dx, dy int
	sx, sy int
	err    int
	xMajor bool
	done   bool
}

// NewLineStepper creates a stepper over the inclusive line (x0,y0)-(x1,y1).
func NewLineStepper(x0, y0, x1, y1 int) *LineStepper {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	return &LineStepper{
		x: x0, y: y0, x1: x1, y1: y1,
		dx: dx, dy: dy, sx: sx, sy: sy,
		err:    dx + dy,
		xMajor: dx >= -dy,
	}
}

// Point returns the current integer coordinate.
func (l *LineStepper) Point() (int, int) { return l.x, l.y }

// Major reports true if this line's longer span is along X.
func (l *LineStepper) Major() bool { return l.xMajor }

// Done reports whether the stepper has produced its final point.
func (l *LineStepper) Done() bool { return l.done }

// Next advances to the following point. A no-op once Done.
func (l *LineStepper) Next() {
	if l.done {
		return
	}
	if l.x == l.x1 && l.y == l.y1 {
		l.done = true
		return
	}
	e2 := 2 * l.err
	if e2 >= l.dy {
		l.err += l.dy
		l.x += l.sx
	}
	if e2 <= l.dx {
		l.err += l.dx
		l.y += l.sy
	}
}

// TextureStepper maps a run of destLen destination pixels onto texLen
// source texels with an integer accumulator, so that a 1:1 run advances one
// texel per pixel and a shrunk/stretched run advances non-uniformly without
// ever drifting (spec §4.8 "TextureStepper (1-D integer texel index stepper
// with accumulator)").
type TextureStepper struct {
	pos    int
	accum  int
	texLen int
	destLen int
}

// NewTextureStepper creates a stepper over texLen texels spread across
// destLen destination pixels.
func NewTextureStepper(texLen, destLen int) *TextureStepper {
	if destLen <= 0 {
		destLen = 1
	}
	if texLen <= 0 {
		texLen = 1
	}
	return &TextureStepper{texLen: texLen, destLen: destLen}
}

// Index returns the current texel index.
func (t *TextureStepper) Index() int { return t.pos }

// Next advances one destination pixel, carrying the accumulator.
func (t *TextureStepper) Next() {
	t.accum += t.texLen
	for t.accum >= t.destLen {
		t.accum -= t.destLen
		t.pos++
	}
}

// GouraudChannelStepper linearly interpolates a single 5-bit colour channel
// across n steps, saturating the result to [0,31] (spec §4.8 "5-bit linear
// interpolation, saturation-clamped").
type GouraudChannelStepper struct {
	c0, c1 int
	n, i   int
}

// NewGouraudChannelStepper creates a stepper from c0 to c1 over n steps.
func NewGouraudChannelStepper(c0, c1, n int) *GouraudChannelStepper {
	if n < 1 {
		n = 1
	}
	return &GouraudChannelStepper{c0: c0, c1: c1, n: n}
}

// Value returns the current interpolated, saturated channel value.
func (g *GouraudChannelStepper) Value() int {
	return clamp5(g.c0 + (g.c1-g.c0)*g.i/g.n)
}

// Next advances one step, clamped at the final step.
func (g *GouraudChannelStepper) Next() {
	if g.i < g.n {
		g.i++
	}
}

// GouraudStepper is three GouraudChannelStepper instances, one per RGB
// channel (spec §4.8 "GouraudStepper (3x GouraudChannelStepper for R/G/B)").
type GouraudStepper struct {
	R, G, B *GouraudChannelStepper
}

// NewGouraudStepper creates a stepper interpolating from c0 to c1 (each a
// [3]int of 5-bit R,G,B) over n steps.
func NewGouraudStepper(c0, c1 [3]int, n int) *GouraudStepper {
	return &GouraudStepper{
		R: NewGouraudChannelStepper(c0[0], c1[0], n),
		G: NewGouraudChannelStepper(c0[1], c1[1], n),
		B: NewGouraudChannelStepper(c0[2], c1[2], n),
	}
}

// RGB returns the current interpolated colour.
func (g *GouraudStepper) RGB() (r, gr, b int) {
	return g.R.Value(), g.G.Value(), g.B.Value()
}

// Next advances all three channels one step.
func (g *GouraudStepper) Next() {
	g.R.Next()
	g.G.Next()
	g.B.Next()
}

// Edge is one side of a quad, stepped in Q16.16 fixed point across a fixed
// number of major steps regardless of the edge's own natural span -- the
// "minor edges advance via m_dmaj" idiom spec §4.8 describes, where the
// longer of a quad's two edges picks the step count and the shorter edge is
// stretched or compressed onto that same count.
type Edge struct {
	xFP, xStepFP int64
	steps, i     int
}

// NewEdge creates an edge whose X runs from x0 to x1, stepped over
// majorSteps steps (the quad's major-edge step count, not necessarily this edge's own
// span).
func NewEdge(x0, x1, majorSteps int) *Edge {
	if majorSteps < 1 {
		majorSteps = 1
	}
	dx := int64(x1-x0) << 16
	return &Edge{
		xFP:     int64(x0) << 16,
		xStepFP: dx / int64(majorSteps),
		steps:   majorSteps,
	}
}

// X returns the edge's current integer X coordinate.
func (e *Edge) X() int { return int(e.xFP >> 16) }

// Next advances the edge one major step.
func (e *Edge) Next() {
	if e.i < e.steps {
		e.xFP += e.xStepFP
		e.i++
	}
}

// Vertex is one command-list vertex, in screen coordinates after the
// active local-coordinate offset has been applied.
type Vertex struct {
	X, Y int
}

// QuadStepper walks a quad scanline by scanline: a left edge (v0->v3) and a
// right edge (v1->v2), both stepped over the longer edge's vertical span
// (spec §4.8 "Edge+QuadStepper (paired edges, longer edge determines step
// count)").
type QuadStepper struct {
	Left, Right *Edge
	TopY        int
	Rows        int
	row         int
}

// NewQuadStepper creates a stepper over the quad v0 (top-left), v1
// (top-right), v2 (bottom-right), v3 (bottom-left).
func NewQuadStepper(v0, v1, v2, v3 Vertex) *QuadStepper {
	leftSpan := abs(v3.Y - v0.Y)
	rightSpan := abs(v2.Y - v1.Y)
	span := leftSpan
	if rightSpan > span {
		span = rightSpan
	}
	top := v0.Y
	if v1.Y < top {
		top = v1.Y
	}
	// span is the major edge's vertical delta; the quad covers span+1
	// scanlines (eg. a 16-pixel-tall sprite has vertices 15 apart but 16
	// rows), while the edges themselves step span times to reach their
	// target exactly on the final row.
	return &QuadStepper{
		Left:  NewEdge(v0.X, v3.X, span),
		Right: NewEdge(v1.X, v2.X, span),
		TopY:  top,
		Rows:  span + 1,
	}
}

// Row returns the current scanline's Y and its inclusive [left,right] X
// span.
func (q *QuadStepper) Row() (y, left, right int) {
	return q.TopY + q.row, q.Left.X(), q.Right.X()
}

// Done reports whether every row has been produced.
func (q *QuadStepper) Done() bool { return q.row >= q.Rows }

// Next advances to the next scanline.
func (q *QuadStepper) Next() {
	q.Left.Next()
	q.Right.Next()
	q.row++
}
