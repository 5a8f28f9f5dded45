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

package ipc

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ray820328/rbase/logger"
)

// DataSource is the per-connection bookkeeping a reactor keeps for a
// listener, an outbound client, or one accepted session (§3). It owns
// the two fixed buffers, the codec chain, and the inbox the reactor
// drains on each Check.
type DataSource struct {
	mu sync.Mutex

	ID   uint64
	Role Role

	// DebugID correlates this data source across log lines; it never
	// touches the wire, unlike ID (the protocol's session id).
	DebugID string

	State State

	Fd int // raw descriptor, meaningful once Role != RoleListener or after Open

	ReadCache *Buffer
	WriteBuff *Buffer

	Handler Handler
	Timeout *Timeout

	Log logger.Logger

	inbox   []*Frame
	lastErr error
}

// NewDataSource builds a DataSource with fixed-capacity buffers of the
// given size (DefaultBufferSize when bufSize <= 0).
func NewDataSource(id uint64, role Role, bufSize int, log logger.Logger) *DataSource {
	if log == nil {
		log = logger.Discard()
	}
	ds := &DataSource{
		ID:        id,
		Role:      role,
		DebugID:   uuid.NewString(),
		State:     StateInit,
		ReadCache: NewBuffer(bufSize),
		WriteBuff: NewBuffer(bufSize),
	}
	ds.Log = log.WithFields(logger.Fields{"data_source": ds.DebugID, "role": role.String()})
	return ds
}

// notify queues a decoded frame for the owning reactor to drain. Called
// by the codec chain's default OnNotify.
func (d *DataSource) notify(f *Frame) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inbox = append(d.inbox, f)
}

// notifyError records the last codec failure observed on this source.
func (d *DataSource) notifyError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastErr = err
}

// LastError returns the last error recorded via notifyError, if any.
func (d *DataSource) LastError() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// Drain empties and returns every frame queued since the last Drain.
func (d *DataSource) Drain() []*Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.inbox) == 0 {
		return nil
	}
	out := d.inbox
	d.inbox = nil
	return out
}

// PumpIn feeds everything currently buffered in ReadCache through the
// handler chain, looping until the chain reports ResultNeedMore (no
// complete frame left) or an error occurs. Each decoded Frame is
// appended to the inbox via the chain's OnNotify.
func (d *DataSource) PumpIn() error {
	if d.Handler == nil {
		return ErrCacheNull.Error()
	}
	for {
		f, res, err := d.Handler.Process(d, d.ReadCache)
		switch res {
		case ResultOK:
			if err := d.Handler.OnNotify(d, f); err != nil {
				return err
			}
		case ResultNeedMore:
			return nil
		case ResultError:
			d.Handler.OnError(d, err)
			return err
		}
	}
}

// PumpOut encodes f onto WriteBuff through the handler chain.
func (d *DataSource) PumpOut(f *Frame) error {
	if d.Handler == nil {
		return ErrCacheNull.Error()
	}
	res, err := d.Handler.Encode(d, f, d.WriteBuff)
	if res == ResultError {
		d.Handler.OnError(d, err)
		return err
	}
	return nil
}

// Release tears down buffers and chain hooks, used when a data source
// transitions to StateClosed (§3 invariant: it must leave both the
// readiness container and the session map at this point).
func (d *DataSource) Release() {
	if d.Handler != nil {
		_ = d.Handler.OnAfter(d)
	}
	if d.ReadCache != nil {
		d.ReadCache.Release()
	}
	if d.WriteBuff != nil {
		d.WriteBuff.Release()
	}
	d.State = StateClosed
}
