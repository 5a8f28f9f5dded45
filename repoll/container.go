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

// Package repoll abstracts the readiness-polling primitive (§4.2) the
// reactors in rsocket/server and rsocket/client drive their check loop
// with. Container is level-triggered on every platform: a caller that
// leaves Out interest registered after its write buffer drains will
// busy-loop, by contract, exactly as on a raw epoll/select fd.
package repoll

import "github.com/ray820328/rbase/logger"

// Item is one registered descriptor: its readiness interest and an
// opaque back-reference the caller gets back in a Ready result, without
// the Container needing to know what it points to.
type Item struct {
	Fd       int
	Interest Mask
	UserData interface{}
}

// Ready is one fired descriptor handed back from Poll.
type Ready struct {
	Fd       int
	UserData interface{}
	Events   Mask
}

// Container is the readiness abstraction every platform implementation
// (epoll, POSIX select, Windows winsock select) satisfies identically.
type Container interface {
	// Add registers item.Fd with item.Interest, remembering UserData.
	Add(item Item) error

	// Modify updates the interest mask for an already-registered fd.
	Modify(item Item) error

	// Remove unregisters fd and discards any result already queued for
	// it this turn, so a stale event cannot be dispatched after removal.
	Remove(fd int) error

	// Poll waits up to timeoutMs milliseconds (0 = return immediately,
	// negative = block until at least one event) and returns every
	// descriptor with at least one ready event. A timeout with zero
	// events is reported as a nil slice and a nil error, not an error.
	Poll(timeoutMs int) ([]Ready, error)

	// Close releases the underlying OS resource (epoll fd, ...).
	Close() error

	// Len reports how many descriptors are currently registered.
	Len() int
}

// New builds the Container implementation appropriate for the running
// platform: epoll on Linux, winsock select on Windows, POSIX select
// everywhere else — selected at compile time via build-tagged files.
func New(capacity int, log logger.Logger) (Container, error) {
	if log == nil {
		log = logger.Discard()
	}
	return newContainer(capacity, log)
}
