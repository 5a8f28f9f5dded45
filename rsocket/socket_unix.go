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

//go:build !windows

package rsocket

import (
	"net"
	"time"

	"golang.org/x/sys/unix"
)

type posixSocket struct{}

func newSocket() Socket {
	return &posixSocket{}
}

func (s *posixSocket) Create() (Handle, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return 0, ErrCreate.Error(err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return 0, ErrCreate.Error(err)
	}
	return Handle(fd), nil
}

func toSockaddr(addr Addr) (unix.Sockaddr, error) {
	sa := &unix.SockaddrInet4{Port: addr.Port}
	if addr.IP == "" || addr.IP == "0.0.0.0" {
		return sa, nil
	}
	ip := net.ParseIP(addr.IP)
	if ip == nil {
		return nil, ErrResolve.Error()
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return nil, ErrResolve.Error()
	}
	copy(sa.Addr[:], ip4)
	return sa, nil
}

func fromSockaddr(sa unix.Sockaddr) Addr {
	in4, ok := sa.(*unix.SockaddrInet4)
	if !ok {
		return Addr{}
	}
	return Addr{IP: net.IP(in4.Addr[:]).String(), Port: in4.Port}
}

func (s *posixSocket) Bind(h Handle, addr Addr) error {
	sa, err := toSockaddr(addr)
	if err != nil {
		return err
	}
	if err := unix.Bind(int(h), sa); err != nil {
		return ErrBind.Error(err)
	}
	return nil
}

func (s *posixSocket) Listen(h Handle, backlog int) error {
	if backlog <= 0 {
		backlog = 128
	}
	if err := unix.Listen(int(h), backlog); err != nil {
		return ErrListen.Error(err)
	}
	return nil
}

func (s *posixSocket) Connect(h Handle, addr Addr, timeout time.Duration) (Status, error) {
	sa, err := toSockaddr(addr)
	if err != nil {
		return StatusUnknown, err
	}
	err = unix.Connect(int(h), sa)
	if err == nil {
		return StatusDone, nil
	}
	if err == unix.EINPROGRESS {
		return StatusInProgress, nil
	}
	return StatusUnknown, ErrConnect.Error(err)
}

func (s *posixSocket) Accept(listener Handle) (Handle, Addr, Status, error) {
	fd, sa, err := unix.Accept4(int(listener), unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, Addr{}, StatusInProgress, nil
		}
		if err == unix.EINTR || err == unix.ECONNABORTED {
			return 0, Addr{}, StatusInProgress, nil
		}
		return 0, Addr{}, StatusUnknown, ErrAccept.Error(err)
	}
	return Handle(fd), fromSockaddr(sa), StatusDone, nil
}

func (s *posixSocket) Send(h Handle, buf []byte, timeout time.Duration) (int, Status, error) {
	n, err := unix.Write(int(h), buf)
	if err == nil {
		return n, StatusDone, nil
	}
	switch err {
	case unix.EAGAIN, unix.EWOULDBLOCK:
		return 0, StatusDone, nil
	case unix.EPIPE, unix.ECONNRESET:
		return 0, StatusClosed, nil
	case unix.EINTR, unix.EPROTOTYPE:
		return 0, StatusDone, nil
	}
	return 0, StatusUnknown, ErrSend.Error(err)
}

func (s *posixSocket) Recv(h Handle, buf []byte, timeout time.Duration) (int, Status, error) {
	n, err := unix.Read(int(h), buf)
	if err != nil {
		switch err {
		case unix.EAGAIN, unix.EWOULDBLOCK:
			return 0, StatusDone, nil
		case unix.EINTR:
			return 0, StatusDone, nil
		case unix.ECONNRESET:
			return 0, StatusClosed, nil
		}
		return 0, StatusUnknown, ErrRecv.Error(err)
	}
	if n == 0 {
		return 0, StatusClosed, nil
	}
	return n, StatusDone, nil
}

func (s *posixSocket) Shutdown(h Handle, how ShutdownHow) error {
	var w int
	switch how {
	case ShutdownRead:
		w = unix.SHUT_RD
	case ShutdownWrite:
		w = unix.SHUT_WR
	default:
		w = unix.SHUT_RDWR
	}
	if err := unix.Shutdown(int(h), w); err != nil {
		return ErrShutdown.Error(err)
	}
	return nil
}

func (s *posixSocket) Close(h Handle) error {
	if err := unix.Close(int(h)); err != nil {
		return ErrClose.Error(err)
	}
	return nil
}

func (s *posixSocket) SetBlocking(h Handle, blocking bool) error {
	if err := unix.SetNonblock(int(h), !blocking); err != nil {
		return ErrSetOpt.Error(err)
	}
	return nil
}

func (s *posixSocket) SetOption(h Handle, opt SockOpt, value int) error {
	fd := int(h)
	var err error
	switch opt {
	case OptKeepAlive:
		err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_KEEPALIVE, value)
	case OptDebug:
		err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_DEBUG, value)
	case OptBroadcast:
		err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_BROADCAST, value)
	case OptReuseAddr:
		err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, value)
	case OptSndBuf:
		err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_SNDBUF, value)
	case OptRcvBuf:
		err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_RCVBUF, value)
	case OptNonblock:
		err = unix.SetNonblock(fd, value != 0)
	case OptLinger:
		l := unix.Linger{Onoff: 1, Linger: int32(value)}
		if value == 0 {
			l.Onoff = 0
		}
		err = unix.SetsockoptLinger(fd, unix.SOL_SOCKET, unix.SO_LINGER, &l)
	case OptTCPDeferAccept:
		err = setTCPDeferAccept(fd, value)
	case OptTCPNoDelay:
		err = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, value)
	case OptFreebind:
		err = setFreebind(fd, value)
	}
	if err != nil {
		return ErrSetOpt.Error(err)
	}
	return nil
}

func (s *posixSocket) FD(h Handle) int {
	return int(h)
}
