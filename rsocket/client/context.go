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

package client

import (
	"time"

	"github.com/ray820328/rbase/config"
	liberr "github.com/ray820328/rbase/errors"
	"github.com/ray820328/rbase/ipc"
	"github.com/ray820328/rbase/logger"
	"github.com/ray820328/rbase/metrics"
	"github.com/ray820328/rbase/repoll"
	"github.com/ray820328/rbase/rsocket"
)

// sendRecvSpin mirrors the server reactor's in-call send/recv timeout.
const sendRecvSpin = 3 * time.Millisecond

// State is the client reactor's lifecycle state (§4.7): init ->
// ready-pending -> started -> stopped -> closed, reusing the same enum
// the server and the data sources share.
type State = ipc.State

// Context is one client reactor: a single outbound data source, driven
// through connect and then the same check/send shape a server session
// uses (§4.7).
type Context struct {
	cfg *config.Config
	log logger.Logger
	met metrics.Registry

	onFrame ipc.FrameHandler

	state State

	sock rsocket.Socket
	poll repoll.Container

	handle rsocket.Handle
	fd     int

	connectDeadline time.Time

	ds *ipc.DataSource
}

// New builds a Context in State init; onFrame is invoked once per frame
// decoded off the connection. met may be nil, in which case metrics.Nop
// is used.
func New(cfg *config.Config, log logger.Logger, met metrics.Registry, onFrame ipc.FrameHandler) *Context {
	if log == nil {
		log = logger.Discard()
	}
	if met == nil {
		met = metrics.Nop
	}
	return &Context{
		cfg:     cfg,
		log:     log.WithFields(logger.Fields{"reactor": "client", "id": cfg.ID}),
		met:     met,
		onFrame: onFrame,
		state:   ipc.StateInit,
		sock:    rsocket.New(),
	}
}

// State reports the reactor's current lifecycle state.
func (c *Context) State() State { return c.state }

// resolveAddr turns cfg.ip:cfg.port into the one address this build
// supports; cfg.ip is validated as a dotted-quad, so there is exactly
// one candidate, but the shape is kept open for a future resolver to
// hand back more than one (§4.7: "tries each resolved address in
// order").
func (c *Context) resolveAddr() (rsocket.Addr, error) {
	if c.cfg.IP == "" || c.cfg.Port <= 0 {
		return rsocket.Addr{}, ErrResolve.Error()
	}
	return rsocket.Addr{IP: c.cfg.IP, Port: c.cfg.Port}, nil
}

// Init allocates the readiness container. Safe to call only from the
// zero value returned by New.
func (c *Context) Init() error {
	if c.state != ipc.StateInit {
		return ErrState.Error()
	}
	poll, err := repoll.New(1, c.log)
	if err != nil {
		return err
	}
	c.poll = poll
	return nil
}

// Open resolves cfg.ip:cfg.port, creates a non-blocking socket, and
// starts the connect. Registers read+write+error interest and
// transitions to StateReadyPending (§4.7).
func (c *Context) Open() error {
	if c.state != ipc.StateInit {
		return ErrState.Error()
	}

	addr, err := c.resolveAddr()
	if err != nil {
		return err
	}

	h, err := c.sock.Create()
	if err != nil {
		return ErrConnect.Error(err)
	}
	if err := c.sock.SetBlocking(h, false); err != nil {
		_ = c.sock.Close(h)
		return ErrConnect.Error(err)
	}
	if err := rsocket.ApplySockFlag(c.sock, h, c.cfg.SockFlag); err != nil {
		_ = c.sock.Close(h)
		return ErrConnect.Error(err)
	}

	status, err := c.sock.Connect(h, addr, c.cfg.ConnectTimeout)
	if err != nil {
		_ = c.sock.Close(h)
		return ErrConnect.Error(err)
	}

	c.handle = h
	c.fd = c.sock.FD(h)

	interest := repoll.In | repoll.Out | repoll.Err
	if err := c.poll.Add(repoll.Item{Fd: c.fd, Interest: interest, UserData: c.fd}); err != nil {
		_ = c.sock.Close(h)
		return ErrConnect.Error(err)
	}

	timeout := c.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	c.connectDeadline = time.Now().Add(timeout)

	c.state = ipc.StateReadyPending
	if status == rsocket.StatusDone {
		// Loopback connects can complete synchronously; Start still
		// has to run once to allocate the data source and flip state.
		c.log.Debug("connect completed synchronously")
	}
	c.log.Info("connect in progress")
	return nil
}

// Start polls until the connect completes or the connect timeout
// elapses, then allocates the data source and transitions to
// StateStarted (§4.7).
func (c *Context) Start() error {
	if c.state != ipc.StateReadyPending {
		return ErrState.Error()
	}

	for {
		if time.Now().After(c.connectDeadline) {
			_ = c.teardownSocket()
			c.state = ipc.StateError
			return ErrTimeout.Error()
		}

		remaining := time.Until(c.connectDeadline)
		ready, err := c.poll.Poll(int(remaining / time.Millisecond))
		if err != nil {
			return err
		}

		done := false
		for _, r := range ready {
			if r.Fd != c.fd {
				continue
			}
			if r.Events.Has(repoll.Err) || r.Events.Has(repoll.Hup) {
				_ = c.teardownSocket()
				c.state = ipc.StateError
				return ErrConnect.Error()
			}
			if r.Events.Has(repoll.Out) {
				done = true
			}
		}
		if done {
			break
		}
	}

	c.ds = ipc.NewDataSource(0, ipc.RoleOutboundClient, c.cfg.BufferSize, c.log)
	c.ds.Fd = c.fd
	c.ds.Timeout = ipc.NewTimeout(sendRecvSpin, ipc.Unbounded)
	head, err := ipc.Chain(c.ds, ipc.NewDefaultCodec())
	if err != nil {
		_ = c.teardownSocket()
		c.state = ipc.StateError
		return err
	}
	c.ds.Handler = head
	c.ds.State = ipc.StateStarted

	if err := c.poll.Modify(repoll.Item{Fd: c.fd, Interest: repoll.In | repoll.Err, UserData: c.fd}); err != nil {
		_ = c.teardownSocket()
		c.state = ipc.StateError
		return err
	}

	c.state = ipc.StateStarted
	c.met.SessionsActive().Set(1)
	c.log.Info("connected")
	return nil
}

// Check runs one non-blocking poll turn over the single data source,
// the same shape as a server session (§4.7).
func (c *Context) Check() error {
	if c.state != ipc.StateStarted {
		return ErrState.Error()
	}

	ready, err := c.poll.Poll(int(c.cfg.PollTimeoutClient / time.Millisecond))
	if err != nil {
		return err
	}

	for _, r := range ready {
		if r.Fd != c.fd {
			continue
		}
		c.checkSession(r.Events)
	}
	return nil
}

func (c *Context) checkSession(events repoll.Mask) {
	if events.Has(repoll.Err) {
		_ = c.Close()
		return
	}

	if events.Has(repoll.Out) {
		if err := c.drainWrite(); err != nil {
			_ = c.Close()
			return
		}
	}

	if events.Has(repoll.In) && c.ds.ReadCache.Left() > 0 {
		n, status, err := c.sock.Recv(c.handle, c.ds.ReadCache.WriteDest(), sendRecvSpin)
		if err != nil {
			c.met.DecodeErrors().Inc()
			_ = c.Close()
			return
		}
		if status == rsocket.StatusClosed || (n == 0 && status != rsocket.StatusDone) {
			_ = c.Close()
			return
		}
		if n > 0 {
			c.ds.ReadCache.Advance(n)
			c.met.BytesIn().Add(float64(n))
			if err := c.ds.PumpIn(); err != nil {
				c.met.DecodeErrors().Inc()
				_ = c.Close()
				return
			}
			for _, f := range c.ds.Drain() {
				if c.onFrame != nil {
					c.onFrame(c.ds.ID, f)
				}
			}
		}
	}

	c.updateWritableInterest()
}

// drainWrite flushes as much of write_buff as the kernel accepts
// without blocking, leaving the unsent tail intact.
func (c *Context) drainWrite() error {
	for c.ds.WriteBuff.Size() > 0 {
		n, status, err := c.sock.Send(c.handle, c.ds.WriteBuff.ReadDest(), sendRecvSpin)
		if err != nil {
			return err
		}
		if status == rsocket.StatusClosed {
			return ipc.ErrBrokenPipeOut.Error()
		}
		if n == 0 {
			return nil
		}
		c.ds.WriteBuff.Skip(n)
		c.met.BytesOut().Add(float64(n))
	}
	return nil
}

func (c *Context) updateWritableInterest() {
	interest := repoll.In | repoll.Err
	if c.ds.WriteBuff.Size() > 0 {
		interest |= repoll.Out
	}
	_ = c.poll.Modify(repoll.Item{Fd: c.fd, Interest: interest, UserData: c.fd})
}

// Send encodes frame onto the connection's write_buff and raises
// writable interest so the next Check flushes it (§4.7). An
// ErrCacheFull is returned with the connection left as it is; any
// other encode failure closes the reactor before it is returned.
func (c *Context) Send(frame *ipc.Frame) error {
	if c.state != ipc.StateStarted {
		return ErrState.Error()
	}
	if err := c.ds.PumpOut(frame); err != nil {
		if !liberr.Is(err, ipc.ErrCacheFull) {
			_ = c.Close()
		}
		return err
	}
	c.updateWritableInterest()
	return nil
}

// Stop transitions the reactor to StateStopped; from then on Check and
// Send both return ErrState, and Close releases the connection.
func (c *Context) Stop() error {
	if c.state != ipc.StateStarted {
		return ErrState.Error()
	}
	c.state = ipc.StateStopped
	return nil
}

func (c *Context) teardownSocket() error {
	var err error
	if c.poll != nil {
		_ = c.poll.Remove(c.fd)
	}
	if c.handle != 0 || c.fd != 0 {
		err = c.sock.Close(c.handle)
	}
	return err
}

// Close releases the data source, unregisters and closes the socket,
// and transitions to StateClosed (§4.7).
func (c *Context) Close() error {
	if c.state == ipc.StateClosed {
		return nil
	}
	if c.ds != nil {
		c.ds.Release()
	}
	err := c.teardownSocket()
	c.state = ipc.StateClosed
	c.met.SessionsActive().Set(0)
	if err != nil {
		return ErrClose.Error(err)
	}
	return nil
}

// Uninit releases the readiness container itself. Call after Close.
func (c *Context) Uninit() error {
	if c.poll != nil {
		if err := c.poll.Close(); err != nil {
			return ErrClose.Error(err)
		}
	}
	c.state = ipc.StateUninit
	return nil
}
