package diag

import (
	"io"

	"github.com/bradleyjkemp/memviz"
)

// Graph dumps a dot-format rendering of root's construction-time wiring --
// every field, pointer, and (by following the struct graph) every callback
// closure captured during wiring -- to w. Intended as a one-shot debugging
// aid for tracing "who calls whom" in the Saturn's cyclic peripheral graph
// (SH-1 <-> YGR <-> SH-2 <-> SCU <-> ...), not something wired into the hot
// path.
func Graph(w io.Writer, root interface{}) error {
	memviz.Map(w, root)
	return nil
}
