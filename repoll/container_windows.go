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

//go:build windows

package repoll

import (
	"sync"
	"time"

	"golang.org/x/sys/windows"

	"github.com/ray820328/rbase/logger"
)

// winselectContainer is the Windows Container. Winsock has no epoll
// equivalent reachable from golang.org/x/sys/windows, so per §4.2's
// "fall back to select" instruction this drives windows.Select the
// same way the POSIX fallback drives unix.Select.
type winselectContainer struct {
	mu     sync.Mutex
	items  map[int]Item
	log    logger.Logger
	closed bool
}

func newContainer(capacity int, log logger.Logger) (Container, error) {
	if capacity <= 0 {
		capacity = 256
	}
	return &winselectContainer{items: make(map[int]Item, capacity), log: log}, nil
}

func (c *winselectContainer) Add(item Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed.Error()
	}
	c.items[item.Fd] = item
	return nil
}

func (c *winselectContainer) Modify(item Item) error {
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

func (c *winselectContainer) Remove(fd int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, fd)
	return nil
}

func (c *winselectContainer) Poll(timeoutMs int) ([]Ready, error) {
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

	var rfds, wfds, efds windows.FdSet
	for _, it := range items {
		if it.Interest.Has(In) || it.Interest.Has(Pri) {
			winFdSet(&rfds, windows.Handle(it.Fd))
		}
		if it.Interest.Has(Out) {
			winFdSet(&wfds, windows.Handle(it.Fd))
		}
		winFdSet(&efds, windows.Handle(it.Fd))
	}

	var tv *windows.Timeval
	if timeoutMs >= 0 {
		t := windows.NsecToTimeval(int64(timeoutMs) * int64(time.Millisecond))
		tv = &t
	}

	n, err := windows.Select(0, &rfds, &wfds, &efds, tv)
	if err != nil {
		return nil, ErrPoll.Error(err)
	}
	if n == 0 {
		return nil, nil
	}

	out := make([]Ready, 0, n)
	for _, it := range items {
		var m Mask
		if winFdIsSet(&rfds, windows.Handle(it.Fd)) {
			m |= In
		}
		if winFdIsSet(&wfds, windows.Handle(it.Fd)) {
			m |= Out
		}
		if winFdIsSet(&efds, windows.Handle(it.Fd)) {
			m |= Err
		}
		if m != 0 {
			out = append(out, Ready{Fd: it.Fd, UserData: it.UserData, Events: m})
		}
	}
	return out, nil
}

func (c *winselectContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.items = nil
	return nil
}

func (c *winselectContainer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func winFdSet(set *windows.FdSet, h windows.Handle) {
	if int32(set.Count) >= int32(len(set.Array)) {
		return
	}
	set.Array[set.Count] = h
	set.Count++
}

func winFdIsSet(set *windows.FdSet, h windows.Handle) bool {
	for i := uint32(0); i < set.Count; i++ {
		if set.Array[i] == h {
			return true
		}
	}
	return false
}
