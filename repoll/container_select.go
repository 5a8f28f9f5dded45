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

//go:build !linux && !windows

package repoll

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/ray820328/rbase/logger"
)

// selectContainer is the POSIX fallback Container for platforms without
// epoll (BSD family, darwin). It satisfies the same level-triggered
// contract by re-evaluating every registered fd's membership in fresh
// read/write/except fd_sets on every Poll call.
type selectContainer struct {
	mu     sync.Mutex
	items  map[int]Item
	log    logger.Logger
	closed bool
}

func newContainer(capacity int, log logger.Logger) (Container, error) {
	if capacity <= 0 {
		capacity = 256
	}
	return &selectContainer{items: make(map[int]Item, capacity), log: log}, nil
}

func (c *selectContainer) Add(item Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed.Error()
	}
	if item.Fd >= unix.FD_SETSIZE {
		return ErrRegister.Error()
	}
	c.items[item.Fd] = item
	return nil
}

func (c *selectContainer) Modify(item Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed.Error()
	}
	if _, ok := c.items[item.Fd]; !ok {
		return ErrUnknownFd.Error()
	}
	c.items[item.Fd] = item
	return nil
}

func (c *selectContainer) Remove(fd int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, fd)
	return nil
}

func (c *selectContainer) Poll(timeoutMs int) ([]Ready, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed.Error()
	}
	items := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		items = append(items, it)
	}
	c.mu.Unlock()

	if len(items) == 0 {
		if timeoutMs > 0 {
			time.Sleep(time.Duration(timeoutMs) * time.Millisecond)
		}
		return nil, nil
	}

	var rfds, wfds, efds unix.FdSet
	maxFd := 0
	for _, it := range items {
		if it.Interest.Has(In) || it.Interest.Has(Pri) {
			fdSet(&rfds, it.Fd)
		}
		if it.Interest.Has(Out) {
			fdSet(&wfds, it.Fd)
		}
		fdSet(&efds, it.Fd)
		if it.Fd > maxFd {
			maxFd = it.Fd
		}
	}

	var tv *unix.Timeval
	if timeoutMs >= 0 {
		t := unix.NsecToTimeval(int64(timeoutMs) * int64(time.Millisecond))
		tv = &t
	}

	n, err := unix.Select(maxFd+1, &rfds, &wfds, &efds, tv)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, ErrPoll.Error(err)
	}
	if n == 0 {
		return nil, nil
	}

	out := make([]Ready, 0, n)
	for _, it := range items {
		var m Mask
		if fdIsSet(&rfds, it.Fd) {
			m |= In
		}
		if fdIsSet(&wfds, it.Fd) {
			m |= Out
		}
		if fdIsSet(&efds, it.Fd) {
			m |= Err
		}
		if m != 0 {
			out = append(out, Ready{Fd: it.Fd, UserData: it.UserData, Events: m})
		}
	}
	return out, nil
}

func (c *selectContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.items = nil
	return nil
}

func (c *selectContainer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func fdSet(set *unix.FdSet, fd int) {
	set.Bits[fd/64] |= 1 << (uint(fd) % 64)
}

func fdIsSet(set *unix.FdSet, fd int) bool {
	return set.Bits[fd/64]&(1<<(uint(fd)%64)) != 0
}
