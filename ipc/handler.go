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

// Result is what a Handler reports after being offered a buffer.
type Result uint8

const (
	// ResultOK means a full unit of work (one frame) was consumed.
	ResultOK Result = iota
	// ResultNeedMore means the buffer holds a partial frame; the caller
	// should stop, keep the bytes, and retry once more arrive.
	ResultNeedMore
	// ResultError means decoding/encoding failed outright; see the error
	// returned alongside this Result.
	ResultError
)

// Handler is one link in a data source's codec chain (§4.5). A chain
// is built front-to-back with Chain and driven by Process on the
// owning data source; each link may transform the frame, or simply
// observe it and call the next link itself.
type Handler interface {
	// OnBefore runs once when the handler is attached to a chain.
	OnBefore(ds *DataSource) error

	// Process consumes as much of in as it can, returning a decoded
	// Frame (ResultOK), signalling ResultNeedMore, or failing outright.
	Process(ds *DataSource, in *Buffer) (*Frame, Result, error)

	// Encode renders a Frame to the wire representation, appended to
	// out. Returns ResultError (with ErrCacheFull) if out lacks room.
	Encode(ds *DataSource, f *Frame, out *Buffer) (Result, error)

	// OnAfter runs once when the handler is detached (data source
	// closing), giving it a chance to release any held resources.
	OnAfter(ds *DataSource) error

	// OnNotify is called with each decoded frame (DataSource.PumpIn
	// calls it on the chain head). The default chain has exactly one
	// link, so the base OnNotify implementation simply stores the frame
	// on the DataSource.
	OnNotify(ds *DataSource, f *Frame) error

	// OnError is called by the chain when Process or Encode fails, so
	// the handler can release any partially built state before the
	// data source itself reacts to the failure.
	OnError(ds *DataSource, err error)

	// next returns the next link in the chain, or nil at the tail.
	next() Handler
	// setNext wires this handler's successor.
	setNext(h Handler)
}

// BaseHandler is embedded by concrete handlers to get no-op lifecycle
// hooks and chain linkage for free, mirroring how the rest of this
// codebase favors small composable structs over deep inheritance.
type BaseHandler struct {
	nextHandler Handler
}

func (b *BaseHandler) OnBefore(*DataSource) error { return nil }
func (b *BaseHandler) OnAfter(*DataSource) error  { return nil }

func (b *BaseHandler) OnNotify(ds *DataSource, f *Frame) error {
	ds.notify(f)
	return nil
}

func (b *BaseHandler) OnError(ds *DataSource, err error) { ds.notifyError(err) }
func (b *BaseHandler) next() Handler                     { return b.nextHandler }
func (b *BaseHandler) setNext(h Handler)                 { b.nextHandler = h }

// Chain links handlers in order, returning the head. Each handler's
// OnBefore is invoked immediately, in order, matching attach-time
// wiring elsewhere in this codebase (logger/hclog adapters, codec
// chains alike).
func Chain(ds *DataSource, handlers ...Handler) (Handler, error) {
	if len(handlers) == 0 {
		return nil, nil
	}
	for i := 0; i < len(handlers)-1; i++ {
		handlers[i].setNext(handlers[i+1])
	}
	for _, h := range handlers {
		if err := h.OnBefore(ds); err != nil {
			return nil, err
		}
	}
	return handlers[0], nil
}
