// This file is part of saturncore.
//
// saturncore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// saturncore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with saturncore.  If not, see <https://www.gnu.org/licenses/>.

// Package logger implements the diagnostic channel described in spec §7: a
// tagged logger with per-group enablement that is a cheap no-op
// when a group is disabled.
//
// Entries are kept in a fixed-capacity ring so that a long-running emulation
// session never grows the logger without bound; once full, the oldest entry
// is discarded to make room for the newest.
package logger

import (
	"fmt"
	"io"
)

// Permission gates whether a Log/Logf call is recorded at all. Diagnostic
// groups (see Group) are the usual implementation; tests sometimes use the
// Allow/Deny constants directly.
type Permission interface {
	AllowLogging() bool
}

type alwaysAllow struct{}

func (alwaysAllow) AllowLogging() bool { return true }

type alwaysDeny struct{}

func (alwaysDeny) AllowLogging() bool { return false }

// Allow is a Permission that is always granted.
var Allow Permission = alwaysAllow{}

// Deny is a Permission that is never granted.
var Deny Permission = alwaysDeny{}

// entry is one logged line, already formatted as "tag: detail".
type entry string

// Logger is a ring-buffered, tagged log. The zero value is not usable; use
// NewLogger.
type Logger struct {
	capacity int
	entries  []entry
}

// NewLogger creates a Logger with room for capacity entries.
func NewLogger(capacity int) *Logger {
	if capacity <= 0 {
		capacity = 1
	}
	return &Logger{capacity: capacity}
}

func format(tag string, detail interface{}) string {
	switch d := detail.(type) {
	case error:
		return fmt.Sprintf("%s: %s", tag, d.Error())
	case fmt.Stringer:
		return fmt.Sprintf("%s: %s", tag, d.String())
	default:
		return fmt.Sprintf("%s: %v", tag, d)
	}
}

// Log records detail under tag, subject to perm.AllowLogging(). detail may be
// an error, a fmt.Stringer, or anything %v can format.
func (l *Logger) Log(perm Permission, tag string, detail interface{}) {
	if !perm.AllowLogging() {
		return
	}
	l.push(entry(format(tag, detail)))
}

// Logf is the formatted variant of Log.
func (l *Logger) Logf(perm Permission, tag string, format string, args ...interface{}) {
	if !perm.AllowLogging() {
		return
	}
	l.push(entry(fmt.Sprintf("%s: %s", tag, fmt.Sprintf(format, args...))))
}

func (l *Logger) push(e entry) {
	l.entries = append(l.entries, e)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// Clear discards all entries.
func (l *Logger) Clear() {
	l.entries = l.entries[:0]
}

// Write writes every retained entry to w, one per line.
func (l *Logger) Write(w io.Writer) {
	for _, e := range l.entries {
		fmt.Fprintf(w, "%s\n", e)
	}
}

// Tail writes the most recent n entries (or fewer, if there aren't n) to w.
func (l *Logger) Tail(w io.Writer, n int) {
	if n > len(l.entries) {
		n = len(l.entries)
	}
	if n <= 0 {
		return
	}
	for _, e := range l.entries[len(l.entries)-n:] {
		fmt.Fprintf(w, "%s\n", e)
	}
}

// def is the package-level logger used by the free functions below, for
// call sites that don't need their own instance.
var def = NewLogger(10000)

// Log records detail under tag on the package-level default logger.
func Log(tag string, detail interface{}) {
	def.Log(Allow, tag, detail)
}

// Logf is the formatted variant of Log, on the package-level default logger.
func Logf(tag string, format string, args ...interface{}) {
	def.Logf(Allow, tag, format, args...)
}

// Write writes the package-level default logger's entries to w.
func Write(w io.Writer) {
	def.Write(w)
}

// Tail writes the package-level default logger's most recent n entries to w.
func Tail(w io.Writer, n int) {
	def.Tail(w, n)
}

// Clear discards all entries from the package-level default logger.
func Clear() {
	def.Clear()
}
