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

// Wire frame layout (§3, §6), all integers big-endian:
//
//	offset  size  field
//	  0      1    version
//	  1      3    magic ASCII "Ray"
//	  4      4    total length (header + payload)
//	  8      4    command id
//	 12      8    session id
//	 20      4    crc32 (IEEE) over [0..20) + payload
//	 24      8    reserved, zero
//	 32      N    payload
const (
	FrameVersion    byte   = 1
	FrameMagic      string = "Ray"
	HeaderLength    int    = 32
	MaxFrameLength  int    = 2_048_000
	MaxPayloadBytes int    = MaxFrameLength - HeaderLength

	offVersion = 0
	offMagic   = 1
	offLength  = 4
	offCommand = 8
	offSession = 12
	offCRC     = 20
	offReserve = 24
)

// Frame is one application message, decoded from or destined for the
// wire per the default codec (§4.5).
type Frame struct {
	Command   uint32
	SessionID uint64
	Payload   []byte
}
