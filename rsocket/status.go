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

// Package rsocket wraps raw, non-blocking TCP socket primitives (§4.1)
// behind one platform-independent API, with the error taxonomy the
// reactors need to distinguish "try again" from "this connection is
// dead" without string-matching an errno.
package rsocket

// Status is the outcome of a primitive call, distinguishing transient
// conditions a reactor should retry from ones that end the connection.
type Status uint8

const (
	StatusDone Status = iota
	StatusClosed
	StatusTimeout
	StatusInProgress // non-blocking connect/accept still pending
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusClosed:
		return "closed"
	case StatusTimeout:
		return "timeout"
	case StatusInProgress:
		return "in-progress"
	default:
		return "unknown"
	}
}

// SockOpt names the boolean/int socket options set_option accepts (§4.1).
type SockOpt uint8

const (
	OptKeepAlive SockOpt = iota
	OptDebug
	OptBroadcast
	OptReuseAddr
	OptSndBuf
	OptRcvBuf
	OptNonblock
	OptLinger
	OptTCPDeferAccept
	OptTCPNoDelay
	OptFreebind
)

// ShutdownHow selects which half of the connection shutdown closes.
type ShutdownHow uint8

const (
	ShutdownRead ShutdownHow = iota
	ShutdownWrite
	ShutdownBoth
)
