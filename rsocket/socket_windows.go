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

package rsocket

import (
	"net"
	"time"

	"golang.org/x/sys/windows"
)

type winsockSocket struct{}

func newSocket() Socket {
	return &winsockSocket{}
}

func (s *winsockSocket) Create() (Handle, error) {
	fd, err := windows.Socket(windows.AF_INET, windows.SOCK_STREAM, windows.IPPROTO_TCP)
	if err != nil {
		return 0, ErrCreate.Error(err)
	}
	if err := windows.SetsockoptInt(fd, windows.SOL_SOCKET, windows.SO_REUSEADDR, 1); err != nil {
		_ = windows.Closesocket(fd)
		return 0, ErrCreate.Error(err)
	}
	if err := windows.SetNonblock(fd, true); err != nil {
		_ = windows.Closesocket(fd)
		return 0, ErrCreate.Error(err)
	}
	return Handle(fd), nil
}

func toWinSockaddr(addr Addr) (windows.Sockaddr, error) {
	sa := &windows.SockaddrInet4{Port: addr.Port}
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

func fromWinSockaddr(sa windows.Sockaddr) Addr {
	in4, ok := sa.(*windows.SockaddrInet4)
	if !ok {
		return Addr{}
	}
	return Addr{IP: net.IP(in4.Addr[:]).String(), Port: in4.Port}
}

func (s *winsockSocket) Bind(h Handle, addr Addr) error {
	sa, err := toWinSockaddr(addr)
	if err != nil {
		return err
	}
	if err := windows.Bind(windows.Handle(h), sa); err != nil {
		return ErrBind.Error(err)
	}
	return nil
}

func (s *winsockSocket) Listen(h Handle, backlog int) error {
	if backlog <= 0 {
		backlog = 128
	}
	if err := windows.Listen(windows.Handle(h), backlog); err != nil {
		return ErrListen.Error(err)
	}
	return nil
}

func (s *winsockSocket) Connect(h Handle, addr Addr, timeout time.Duration) (Status, error) {
	sa, err := toWinSockaddr(addr)
	if err != nil {
		return StatusUnknown, err
	}
	err = windows.Connect(windows.Handle(h), sa)
	if err == nil {
		return StatusDone, nil
	}
	if err == windows.WSAEWOULDBLOCK {
		return StatusInProgress, nil
	}
	return StatusUnknown, ErrConnect.Error(err)
}

func (s *winsockSocket) Accept(listener Handle) (Handle, Addr, Status, error) {
	fd, sa, err := windows.Accept(windows.Handle(listener))
	if err != nil {
		if err == windows.WSAEWOULDBLOCK {
			return 0, Addr{}, StatusInProgress, nil
		}
		return 0, Addr{}, StatusUnknown, ErrAccept.Error(err)
	}
	_ = windows.SetNonblock(fd, true)
	return Handle(fd), fromWinSockaddr(sa), StatusDone, nil
}

func (s *winsockSocket) Send(h Handle, buf []byte, timeout time.Duration) (int, Status, error) {
	n, err := windows.Write(windows.Handle(h), buf)
	if err == nil {
		return n, StatusDone, nil
	}
	switch err {
	case windows.WSAEWOULDBLOCK:
		return 0, StatusDone, nil
	case windows.WSAECONNRESET:
		return 0, StatusClosed, nil
	}
	return 0, StatusUnknown, ErrSend.Error(err)
}

func (s *winsockSocket) Recv(h Handle, buf []byte, timeout time.Duration) (int, Status, error) {
	n, err := windows.Read(windows.Handle(h), buf)
	if err != nil {
		if err == windows.WSAEWOULDBLOCK {
			return 0, StatusDone, nil
		}
		if err == windows.WSAECONNRESET {
			return 0, StatusClosed, nil
		}
		return 0, StatusUnknown, ErrRecv.Error(err)
	}
	if n == 0 {
		return 0, StatusClosed, nil
	}
	return n, StatusDone, nil
}

func (s *winsockSocket) Shutdown(h Handle, how ShutdownHow) error {
	var w int
	switch how {
	case ShutdownRead:
		w = windows.SHUT_RD
	case ShutdownWrite:
		w = windows.SHUT_WR
	default:
		w = windows.SHUT_RDWR
	}
	if err := windows.Shutdown(windows.Handle(h), w); err != nil {
		return ErrShutdown.Error(err)
	}
	return nil
}

func (s *winsockSocket) Close(h Handle) error {
	if err := windows.Closesocket(windows.Handle(h)); err != nil {
		return ErrClose.Error(err)
	}
	return nil
}

func (s *winsockSocket) SetBlocking(h Handle, blocking bool) error {
	if err := windows.SetNonblock(windows.Handle(h), !blocking); err != nil {
		return ErrSetOpt.Error(err)
	}
	return nil
}

func (s *winsockSocket) SetOption(h Handle, opt SockOpt, value int) error {
	fd := windows.Handle(h)
	var err error
	switch opt {
	case OptKeepAlive:
		err = windows.SetsockoptInt(fd, windows.SOL_SOCKET, windows.SO_KEEPALIVE, value)
	case OptBroadcast:
		err = windows.SetsockoptInt(fd, windows.SOL_SOCKET, windows.SO_BROADCAST, value)
	case OptReuseAddr:
		err = windows.SetsockoptInt(fd, windows.SOL_SOCKET, windows.SO_REUSEADDR, value)
	case OptSndBuf:
		err = windows.SetsockoptInt(fd, windows.SOL_SOCKET, windows.SO_SNDBUF, value)
	case OptRcvBuf:
		err = windows.SetsockoptInt(fd, windows.SOL_SOCKET, windows.SO_RCVBUF, value)
	case OptNonblock:
		err = windows.SetNonblock(fd, value != 0)
	case OptTCPNoDelay:
		err = windows.SetsockoptInt(fd, windows.IPPROTO_TCP, windows.TCP_NODELAY, value)
	case OptDebug, OptLinger, OptTCPDeferAccept, OptFreebind:
		// Not meaningfully supported by winsock; treated as a no-op
		// rather than failing the whole set_option call.
	}
	if err != nil {
		return ErrSetOpt.Error(err)
	}
	return nil
}

func (s *winsockSocket) FD(h Handle) int {
	return int(h)
}
