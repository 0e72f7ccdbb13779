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

// CappedWriter accumulates writes up to a fixed capacity and silently
// discards anything beyond it (rather than wrapping, see RingWriter for
// that).
type CappedWriter struct {
	buf   []byte
	limit int
}

// NewCappedWriter creates a CappedWriter with the given capacity.
func NewCappedWriter(limit int) (*CappedWriter, error) {
	return &CappedWriter{limit: limit}, nil
}

func (c *CappedWriter) Write(p []byte) (int, error) {
	room := c.limit - len(c.buf)
	if room <= 0 {
		return len(p), nil
	}
	if room > len(p) {
		room = len(p)
	}
	c.buf = append(c.buf, p[:room]...)
	return len(p), nil
}

// Reset empties the writer's buffer.
func (c *CappedWriter) Reset() {
	c.buf = c.buf[:0]
}

func (c *CappedWriter) String() string {
	return string(c.buf)
}
