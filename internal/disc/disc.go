package disc

// Disc is zero or more recording sessions (spec §3 "a disc has zero or more
// sessions"). An empty Disc (no sessions) represents a tray with no disc
// loaded.
type Disc struct {
	Sessions []Session
}

// LastSession returns the disc's most recent session, which is the one the
// CD drive always reads from (spec §4.5 uses `m_disc.sessions.back()`
// throughout). Panics if the disc has no sessions; callers check
// len(Sessions) first.
func (d *Disc) LastSession() *Session {
	return &d.Sessions[len(d.Sessions)-1]
}
