// This file is part of saturncore; a construction-time callback-wiring
// dump and an opt-in stats HTTP server are diagnostic-channel extras this
// module adds beyond what any single pack example shows wired together
// (spec §7's diagnostic channel establishes the per-group logger; this
// package is the observability layer SPEC_FULL.md §11.1 asks for on top of
// it).

// Package diag provides two opt-in diagnostics: Graph, which dumps the
// construction-time component callback-wiring graph for debugging "who
// calls whom" in the Saturn's cyclic peripheral graph, and Dashboard, an
// HTTP server plotting live scheduler/YGR/SCU metrics.
package diag
