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

package server

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/ray820328/rbase/config"
	liberr "github.com/ray820328/rbase/errors"
	"github.com/ray820328/rbase/ipc"
	"github.com/ray820328/rbase/logger"
	"github.com/ray820328/rbase/metrics"
	"github.com/ray820328/rbase/rctx"
	"github.com/ray820328/rbase/repoll"
	"github.com/ray820328/rbase/rsocket"
)

// sendRecvSpin is the tiny in-call timeout every send/recv is given,
// per §5/§9: transient interruptions are absorbed here rather than
// re-entering the reactor loop.
const sendRecvSpin = 3 * time.Millisecond

// Context is one server reactor: a listener plus a bounded-id session
// table, driven entirely from Check (§4.6).
type Context struct {
	cfg *config.Config
	log logger.Logger
	met metrics.Registry

	onFrame ipc.FrameHandler

	state State

	sock rsocket.Socket
	poll repoll.Container

	listenerHandle rsocket.Handle
	listenerFd     int
	opened         bool

	sidIssued bool
	nextSID   uint64

	sessions *rctx.Map[uint64, *ipc.DataSource]
}

// State is the reactor's lifecycle state, reusing ipc.State (§4.6's
// server state machine is a subset of the same enum the data sources
// use: init/ready/started/stopped/closed/full/error).
type State = ipc.State

// New builds a Context in State init; onFrame is invoked once per frame
// decoded off any session, with the session id it arrived on. met may
// be nil, in which case metrics.Nop is used.
func New(cfg *config.Config, log logger.Logger, met metrics.Registry, onFrame ipc.FrameHandler) *Context {
	if log == nil {
		log = logger.Discard()
	}
	if met == nil {
		met = metrics.Nop
	}
	return &Context{
		cfg:      cfg,
		log:      log.WithFields(logger.Fields{"reactor": "server", "id": cfg.ID}),
		met:      met,
		onFrame:  onFrame,
		state:    ipc.StateInit,
		sock:     rsocket.New(),
		sessions: rctx.New[uint64, *ipc.DataSource](),
	}
}

// State reports the reactor's current lifecycle state.
func (c *Context) State() State { return c.state }

// SessionCount reports how many sessions are currently registered.
func (c *Context) SessionCount() int { return c.sessions.Len() }

// Init allocates the readiness container (the session map is already
// allocated by New). Safe to call only while State() == StateInit, as
// returned by New.
func (c *Context) Init() error {
	if c.state != ipc.StateInit {
		return ErrState.Error()
	}
	capacity := int(c.cfg.SidMax-c.cfg.SidMin) + 1
	poll, err := repoll.New(capacity, c.log)
	if err != nil {
		return err
	}
	c.poll = poll
	return nil
}

// Open resolves cfg.ip:cfg.port, creates, binds, listens, and registers
// the listener in the readiness container with read+error interest
// (§4.6). Transitions to StateReady.
func (c *Context) Open() error {
	if c.state != ipc.StateInit {
		return ErrState.Error()
	}

	h, err := c.sock.Create()
	if err != nil {
		return ErrOpen.Error(err)
	}
	if err := c.sock.SetBlocking(h, false); err != nil {
		_ = c.sock.Close(h)
		return ErrOpen.Error(err)
	}
	if err := rsocket.ApplySockFlag(c.sock, h, c.cfg.SockFlag); err != nil {
		_ = c.sock.Close(h)
		return ErrOpen.Error(err)
	}
	addr := rsocket.Addr{IP: c.cfg.IP, Port: c.cfg.Port}
	if err := c.sock.Bind(h, addr); err != nil {
		_ = c.sock.Close(h)
		return ErrOpen.Error(err)
	}
	if err := c.sock.Listen(h, c.cfg.Backlog); err != nil {
		_ = c.sock.Close(h)
		return ErrOpen.Error(err)
	}

	c.listenerHandle = h
	c.listenerFd = c.sock.FD(h)
	c.opened = true

	if err := c.poll.Add(repoll.Item{Fd: c.listenerFd, Interest: repoll.In | repoll.Err}); err != nil {
		_ = c.sock.Close(h)
		return ErrOpen.Error(err)
	}

	c.state = ipc.StateReady
	c.log.Info("server listening")
	return nil
}

// Start transitions the reactor to StateStarted, after which Check may
// be called.
func (c *Context) Start() error {
	if c.state != ipc.StateReady {
		return ErrState.Error()
	}
	c.state = ipc.StateStarted
	return nil
}

// Check runs one non-blocking poll turn and dispatches every ready
// descriptor, exactly the shape described in §4.6.
func (c *Context) Check() error {
	if c.state != ipc.StateStarted && c.state != ipc.StateFull {
		return ErrState.Error()
	}

	ready, err := c.poll.Poll(int(c.cfg.PollTimeoutServer / time.Millisecond))
	if err != nil {
		return err
	}

	for _, r := range ready {
		if r.Fd == c.listenerFd {
			c.checkListener(r.Events)
			if c.state == ipc.StateClosed {
				return nil
			}
			continue
		}

		sid, ok := r.UserData.(uint64)
		if !ok {
			continue
		}
		ds, ok := c.sessions.Load(sid)
		if !ok {
			// Removed earlier in this same turn; §5 removal safety.
			continue
		}
		c.checkSession(ds, r.Events)
	}
	return nil
}

func (c *Context) checkListener(events repoll.Mask) {
	if events.Has(repoll.Err) {
		c.log.Error("listener descriptor reported error, closing server")
		_ = c.Close()
		return
	}
	if !events.Has(repoll.In) {
		return
	}

	burst := c.cfg.AcceptBurst
	if burst <= 0 {
		burst = 10
	}
	for i := 0; i < burst; i++ {
		h, _, status, err := c.sock.Accept(c.listenerHandle)
		if status == rsocket.StatusInProgress {
			return
		}
		if err != nil {
			c.log.WithFields(logger.Fields{"error": err.Error()}).Warn("accept failed")
			return
		}

		sid, ok := c.nextSessionID()
		if !ok {
			_ = c.sock.Close(h)
			c.log.Warn("session id space exhausted, refusing accept")
			return
		}

		if err := rsocket.ApplySockFlag(c.sock, h, c.cfg.SockFlag); err != nil {
			_ = c.sock.Close(h)
			c.log.WithFields(logger.Fields{"error": err.Error()}).Error("applying sock_flag to accepted session failed")
			continue
		}

		ds := ipc.NewDataSource(sid, ipc.RoleAcceptedSession, c.cfg.BufferSize, c.log)
		ds.Fd = c.sock.FD(h)
		ds.Timeout = ipc.NewTimeout(sendRecvSpin, ipc.Unbounded)
		head, err := ipc.Chain(ds, ipc.NewDefaultCodec())
		if err != nil {
			_ = c.sock.Close(h)
			c.log.WithFields(logger.Fields{"error": err.Error()}).Error("codec chain setup failed")
			continue
		}
		ds.Handler = head
		ds.State = ipc.StateStarted

		if err := c.poll.Add(repoll.Item{Fd: ds.Fd, Interest: repoll.In | repoll.Err, UserData: sid}); err != nil {
			_ = c.sock.Close(h)
			c.log.WithFields(logger.Fields{"error": err.Error()}).Error("failed to register accepted session")
			continue
		}

		c.sessions.Store(sid, ds)
		c.met.SessionsAccepted().Inc()
		c.met.SessionsActive().Set(float64(c.sessions.Len()))
	}
}

// nextSessionID hands out the next id in [sid_min, sid_max], reporting
// false (and flipping the reactor to StateFull) once the range is
// exhausted (§4.6, §8 scenario 6).
func (c *Context) nextSessionID() (uint64, bool) {
	if c.state == ipc.StateFull {
		return 0, false
	}
	if !c.sidIssued {
		c.nextSID = c.cfg.SidMin
		c.sidIssued = true
	} else {
		c.nextSID++
	}
	if c.nextSID > c.cfg.SidMax {
		c.state = ipc.StateFull
		return 0, false
	}
	return c.nextSID, true
}

func (c *Context) checkSession(ds *ipc.DataSource, events repoll.Mask) {
	if events.Has(repoll.Err) {
		c.closeSession(ds.ID)
		return
	}

	if events.Has(repoll.Out) {
		if err := c.drainWrite(ds); err != nil {
			c.closeSession(ds.ID)
			return
		}
	}

	if events.Has(repoll.In) && ds.ReadCache.Left() > 0 {
		n, status, err := c.sock.Recv(rsocket.Handle(ds.Fd), ds.ReadCache.WriteDest(), sendRecvSpin)
		if err != nil {
			c.met.DecodeErrors().Inc()
			c.closeSession(ds.ID)
			return
		}
		if status == rsocket.StatusClosed || (n == 0 && status != rsocket.StatusDone) {
			c.closeSession(ds.ID)
			return
		}
		if n > 0 {
			ds.ReadCache.Advance(n)
			c.met.BytesIn().Add(float64(n))
			if err := ds.PumpIn(); err != nil {
				c.met.DecodeErrors().Inc()
				c.closeSession(ds.ID)
				return
			}
			for _, f := range ds.Drain() {
				if c.onFrame != nil {
					c.onFrame(ds.ID, f)
				}
			}
		}
	}

	c.updateWritableInterest(ds)
}

// drainWrite flushes as much of write_buff as the kernel accepts
// without blocking, per §4.6/§8's would-block-safety invariant: the
// unsent tail is left intact for the next writable readiness.
func (c *Context) drainWrite(ds *ipc.DataSource) error {
	for ds.WriteBuff.Size() > 0 {
		n, status, err := c.sock.Send(rsocket.Handle(ds.Fd), ds.WriteBuff.ReadDest(), sendRecvSpin)
		if err != nil {
			return err
		}
		if status == rsocket.StatusClosed {
			return ipc.ErrBrokenPipeOut.Error()
		}
		if n == 0 {
			// Would-block: kernel made no progress this turn, keep interest.
			return nil
		}
		ds.WriteBuff.Skip(n)
		c.met.BytesOut().Add(float64(n))
	}
	return nil
}

// updateWritableInterest enforces §8's writable-interest liveness
// invariant: Out interest is registered iff write_buff is non-empty.
func (c *Context) updateWritableInterest(ds *ipc.DataSource) {
	interest := repoll.In | repoll.Err
	if ds.WriteBuff.Size() > 0 {
		interest |= repoll.Out
	}
	_ = c.poll.Modify(repoll.Item{Fd: ds.Fd, Interest: interest, UserData: ds.ID})
}

// Send encodes frame onto the named session's write_buff and raises
// writable interest so the next Check flushes it. An ErrCacheFull is
// returned with the session left as it is; any other encode failure
// closes the session before it is returned.
func (c *Context) Send(sessionID uint64, frame *ipc.Frame) error {
	ds, ok := c.sessions.Load(sessionID)
	if !ok {
		return ErrUnknownSession.Error()
	}
	if err := ds.PumpOut(frame); err != nil {
		if !liberr.Is(err, ipc.ErrCacheFull) {
			_ = c.closeSession(sessionID)
		}
		return err
	}
	c.updateWritableInterest(ds)
	return nil
}

// closeSession tears a single session down: remove it from the session
// map, release its buffers, then unregister its socket from the
// readiness container and close the OS socket — in that order, per the
// peer-reset teardown scenario.
func (c *Context) closeSession(sessionID uint64) error {
	ds, ok := c.sessions.Load(sessionID)
	if !ok {
		return nil
	}
	c.sessions.Delete(sessionID)
	ds.Release()

	var result *multierror.Error
	if err := c.poll.Remove(ds.Fd); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.sock.Close(rsocket.Handle(ds.Fd)); err != nil {
		result = multierror.Append(result, err)
	}
	c.met.SessionsActive().Set(float64(c.sessions.Len()))
	return result.ErrorOrNil()
}

// Stop transitions the reactor to StateStopped; Check can no longer be
// called, but Send still works until Close.
func (c *Context) Stop() error {
	if c.state != ipc.StateStarted && c.state != ipc.StateFull {
		return ErrState.Error()
	}
	c.state = ipc.StateStopped
	return nil
}

// Close tears down every session concurrently (one goroutine per
// session, fanned out with errgroup, errors aggregated with
// multierror), then unregisters and closes the listener socket, and
// clears the session map (§4.6). The readiness container stays open
// until Uninit.
func (c *Context) Close() error {
	var g errgroup.Group

	ids := make([]uint64, 0, c.sessions.Len())
	c.sessions.Walk(func(id uint64, _ *ipc.DataSource) bool {
		ids = append(ids, id)
		return true
	})

	for _, id := range ids {
		id := id
		g.Go(func() error {
			return c.closeSession(id)
		})
	}
	closeErr := g.Wait()

	c.sessions.Clean()

	if c.opened {
		_ = c.poll.Remove(c.listenerFd)
		_ = c.sock.Close(c.listenerHandle)
		c.opened = false
	}

	c.state = ipc.StateClosed
	if closeErr != nil {
		return ErrClose.Error(closeErr)
	}
	return nil
}

// Uninit releases the readiness container itself. Call after Close.
func (c *Context) Uninit() error {
	if c.poll != nil {
		if err := c.poll.Close(); err != nil {
			return fmt.Errorf("server: uninit: %w", err)
		}
	}
	c.state = ipc.StateUninit
	return nil
}
