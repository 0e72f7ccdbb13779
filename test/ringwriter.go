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

package test

// RingWriter keeps only the most recently written `limit` bytes, unlike
// CappedWriter which keeps only the earliest.
type RingWriter struct {
	buf   []byte
	limit int
}

// NewRingWriter creates a RingWriter with the given capacity.
func NewRingWriter(limit int) (*RingWriter, error) {
	return &RingWriter{limit: limit}, nil
}

func (r *RingWriter) Write(p []byte) (int, error) {
	r.buf = append(r.buf, p...)
	if len(r.buf) > r.limit {
		r.buf = r.buf[len(r.buf)-r.limit:]
	}
	return len(p), nil
}

// Reset empties the writer's buffer.
func (r *RingWriter) Reset() {
	r.buf = r.buf[:0]
}

func (r *RingWriter) String() string {
	return string(r.buf)
}
