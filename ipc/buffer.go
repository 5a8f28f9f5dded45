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

package ipc

// DefaultBufferSize is the fixed capacity given to a data source's
// read_cache and write_buff when none is supplied through config,
// per §3 of the spec (64 KiB).
const DefaultBufferSize = 64 * 1024

// Buffer is the append-at-tail / consume-at-head byte buffer backing a
// data source's read_cache and write_buff (§4.4). It never grows past
// its fixed capacity: writing past Left() or reading past Size() is a
// programmer error, not a recoverable condition, exactly as the spec
// states.
type Buffer struct {
	buf  []byte
	r, w int // read cursor, write cursor; unread bytes are buf[r:w]
}

// NewBuffer allocates a Buffer with the given fixed capacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}
	return &Buffer{buf: make([]byte, capacity)}
}

// Capacity returns the fixed byte capacity of the buffer.
func (b *Buffer) Capacity() int {
	return len(b.buf)
}

// Size returns the number of unread bytes currently buffered.
func (b *Buffer) Size() int {
	return b.w - b.r
}

// Left returns the number of bytes still free at the tail.
func (b *Buffer) Left() int {
	return len(b.buf) - b.w
}

// WriteDest returns the mutable tail window a reader (recv, or an
// encoder) may fill. The caller must call Advance with however many
// bytes it actually wrote.
func (b *Buffer) WriteDest() []byte {
	return b.buf[b.w:]
}

// Advance commits n freshly written bytes at the tail. It panics if n
// would write past capacity — an invariant violation upstream, not a
// condition this buffer can recover from.
func (b *Buffer) Advance(n int) {
	if n < 0 || n > b.Left() {
		panic("ipc: buffer.Advance past capacity")
	}
	b.w += n
}

// ReadDest returns the unread head window.
func (b *Buffer) ReadDest() []byte {
	return b.buf[b.r:b.w]
}

// Skip moves the read cursor forward by n bytes, consuming them. Once
// every byte has been read the cursors reset to the start so the next
// write reclaims the whole capacity again (§4.4).
func (b *Buffer) Skip(n int) {
	if n < 0 || n > b.Size() {
		panic("ipc: buffer.Skip past size")
	}
	b.r += n
	if b.r == b.w {
		b.r, b.w = 0, 0
	}
}

// Append is a convenience wrapper for callers (the default encoder)
// that already hold the bytes to add, rather than writing directly
// into WriteDest. It reports false, appending nothing, if len(p)
// exceeds Left().
func (b *Buffer) Append(p []byte) bool {
	if len(p) > b.Left() {
		return false
	}
	copy(b.WriteDest(), p)
	b.Advance(len(p))
	return true
}

// Reset empties the buffer without releasing its backing array.
func (b *Buffer) Reset() {
	b.r, b.w = 0, 0
}

// Release drops the backing array so it can be garbage collected. The
// Buffer must not be used again afterward.
func (b *Buffer) Release() {
	b.buf = nil
	b.r, b.w = 0, 0
}
