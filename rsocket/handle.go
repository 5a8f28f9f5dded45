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

package rsocket

import "time"

// Addr is a resolved IPv4 TCP endpoint. The wildcard IP "0.0.0.0" means
// "any local address" to Bind, matching §4.6's "pass NULL
// node when the address is the wildcard" instruction.
type Addr struct {
	IP   string
	Port int
}

// Handle is the fd-level socket handle every platform implementation
// returns from Create. Its zero value is not a valid handle.
type Handle int

// Socket is the set of raw, non-blocking socket primitives the server
// and client reactors drive directly, without going through net.Conn,
// so every byte moved crosses exactly the read_cache / write_buff
// boundary the reactor state machines expect (§4.1).
type Socket interface {
	// Create opens an IPv4 stream socket and sets SO_REUSEADDR.
	Create() (Handle, error)

	Bind(h Handle, addr Addr) error
	Listen(h Handle, backlog int) error

	// Connect starts a non-blocking connect. A still-pending connect
	// reports StatusInProgress; completion is observed via writable
	// readiness on h. The socket's SO_ERROR is not read: callers judge
	// failure from the Err/Hup readiness bits.
	Connect(h Handle, addr Addr, timeout time.Duration) (Status, error)

	// Accept reports StatusInProgress (not an error) on would-block.
	Accept(listener Handle) (Handle, Addr, Status, error)

	// Send reports bytes actually written; would-block is StatusDone
	// with n == 0, never an error.
	Send(h Handle, buf []byte, timeout time.Duration) (n int, status Status, err error)

	// Recv reports bytes actually read; zero bytes with StatusClosed
	// means the peer closed the connection; would-block is StatusDone
	// with n == 0.
	Recv(h Handle, buf []byte, timeout time.Duration) (n int, status Status, err error)

	Shutdown(h Handle, how ShutdownHow) error
	Close(h Handle) error

	SetBlocking(h Handle, blocking bool) error
	SetOption(h Handle, opt SockOpt, value int) error

	// FD exposes the raw descriptor for registration in a readiness
	// Container.
	FD(h Handle) int
}

// New returns the Socket implementation for the running platform.
func New() Socket {
	return newSocket()
}
