/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package repoll

// Mask is a bitset of interest/ready flags, platform-independent (§4.2).
// Each Container implementation translates Mask to and from its native
// representation (epoll event bits, select fd_set membership, ...).
type Mask uint8

const (
	In Mask = 1 << iota
	Pri
	Out
	Err
	Hup
	Invalid
)

func (m Mask) Has(flag Mask) bool {
	return m&flag != 0
}

func (m Mask) String() string {
	if m == 0 {
		return "none"
	}
	s := ""
	for _, f := range []struct {
		bit  Mask
		name string
	}{
		{In, "in"}, {Pri, "pri"}, {Out, "out"}, {Err, "err"}, {Hup, "hup"}, {Invalid, "invalid"},
	} {
		if m.Has(f.bit) {
			if s != "" {
				s += "|"
			}
			s += f.name
		}
	}
	return s
}
