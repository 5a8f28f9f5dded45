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

//go:build linux

package repoll

import (
	"sync"

	"golang.org/x/sys/unix"

	"github.com/ray820328/rbase/logger"
)

// epollContainer is the Linux Container, backed directly by epoll_create1
// / epoll_ctl / epoll_wait through golang.org/x/sys/unix — the same
// syscall package the rest of this module's POSIX code reaches for
// instead of hand-rolling raw syscall numbers.
type epollContainer struct {
	mu      sync.Mutex
	epfd    int
	items   map[int]Item
	events  []unix.EpollEvent
	removed map[int]struct{}
	log     logger.Logger
	closed  bool
}

func newContainer(capacity int, log logger.Logger) (Container, error) {
	if capacity <= 0 {
		capacity = 256
	}
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, ErrCreate.Error(err)
	}
	return &epollContainer{
		epfd:    epfd,
		items:   make(map[int]Item, capacity),
		events:  make([]unix.EpollEvent, capacity),
		removed: make(map[int]struct{}),
		log:     log,
	}, nil
}

func toEpollEvents(m Mask) uint32 {
	var e uint32
	if m.Has(In) {
		e |= unix.EPOLLIN
	}
	if m.Has(Pri) {
		e |= unix.EPOLLPRI
	}
	if m.Has(Out) {
		e |= unix.EPOLLOUT
	}
	if m.Has(Err) {
		e |= unix.EPOLLERR
	}
	if m.Has(Hup) {
		e |= unix.EPOLLHUP
	}
	return e
}

func fromEpollEvents(e uint32) Mask {
	var m Mask
	if e&unix.EPOLLIN != 0 {
		m |= In
	}
	if e&unix.EPOLLPRI != 0 {
		m |= Pri
	}
	if e&unix.EPOLLOUT != 0 {
		m |= Out
	}
	if e&unix.EPOLLERR != 0 {
		m |= Err
	}
	if e&unix.EPOLLHUP != 0 {
		m |= Hup
	}
	return m
}

func (c *epollContainer) Add(item Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed.Error()
	}
	ev := unix.EpollEvent{Events: toEpollEvents(item.Interest), Fd: int32(item.Fd)}
	if err := unix.EpollCtl(c.epfd, unix.EPOLL_CTL_ADD, item.Fd, &ev); err != nil {
		return ErrRegister.Error(err)
	}
	c.items[item.Fd] = item
	delete(c.removed, item.Fd)
	return nil
}

func (c *epollContainer) Modify(item Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed.Error()
	}
	if _, ok := c.items[item.Fd]; !ok {
		return ErrUnknownFd.Error()
	}
	ev := unix.EpollEvent{Events: toEpollEvents(item.Interest), Fd: int32(item.Fd)}
	if err := unix.EpollCtl(c.epfd, unix.EPOLL_CTL_MOD, item.Fd, &ev); err != nil {
		return ErrModify.Error(err)
	}
	c.items[item.Fd] = item
	return nil
}

func (c *epollContainer) Remove(fd int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed.Error()
	}
	if _, ok := c.items[fd]; !ok {
		return nil
	}
	_ = unix.EpollCtl(c.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	delete(c.items, fd)
	c.removed[fd] = struct{}{}
	return nil
}

func (c *epollContainer) Poll(timeoutMs int) ([]Ready, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed.Error()
	}
	events := c.events
	c.mu.Unlock()

	n, err := unix.EpollWait(c.epfd, events, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, ErrPoll.Error(err)
	}
	if n == 0 {
		return nil, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Ready, 0, n)
	for i := 0; i < n; i++ {
		fd := int(events[i].Fd)
		if _, gone := c.removed[fd]; gone {
			continue // removed earlier this turn, skip the stale event
		}
		item, ok := c.items[fd]
		if !ok {
			continue
		}
		out = append(out, Ready{Fd: fd, UserData: item.UserData, Events: fromEpollEvents(events[i].Events)})
	}
	c.removed = make(map[int]struct{})
	return out, nil
}

func (c *epollContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return unix.Close(c.epfd)
}

func (c *epollContainer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
