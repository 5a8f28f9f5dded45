/*
MIT License

Copyright (c) 2019 Nicolas JUHEL

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// Package rctx provides the generic concurrent map used by the server
// reactor's session table. It is a trimmed adaptation of the teacher's
// context.MapManage[T]: the context-cancellation plumbing is dropped
// (the reactor's session map lives and dies with the reactor itself,
// not with a context.Context), keeping only the atomic key/value
// bookkeeping the teacher already built on sync.Map.
package rctx

import (
	"sync"
	"sync/atomic"
)

// FuncWalk is called for every entry during Walk; returning false stops
// the iteration early.
type FuncWalk[K comparable, V any] func(key K, val V) bool

// Map is a thread-safe key/value table keyed by a comparable type. The
// server reactor uses Map[uint64, *ipc.DataSource] for its session
// table, and Close tears sessions down concurrently (one goroutine per
// session via errgroup), so the entry count is kept in an atomic
// counter rather than a plain int.
type Map[K comparable, V any] struct {
	m sync.Map
	n atomic.Int64
}

// New creates an empty Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{}
}

// Load returns the value stored for key, if any.
func (m *Map[K, V]) Load(key K) (V, bool) {
	v, ok := m.m.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

// Store sets the value for key, replacing any previous value.
func (m *Map[K, V]) Store(key K, val V) {
	if _, loaded := m.m.Swap(key, val); !loaded {
		m.n.Add(1)
	}
}

// Delete removes key from the map, reporting whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	_, loaded := m.m.LoadAndDelete(key)
	if loaded {
		m.n.Add(-1)
	}
	return loaded
}

// Len returns the number of entries currently stored.
func (m *Map[K, V]) Len() int {
	return int(m.n.Load())
}

// Walk iterates every entry, stopping early if fct returns false.
func (m *Map[K, V]) Walk(fct FuncWalk[K, V]) {
	m.m.Range(func(key, val any) bool {
		return fct(key.(K), val.(V))
	})
}

// Clean removes every entry.
func (m *Map[K, V]) Clean() {
	m.m.Range(func(key, _ any) bool {
		m.m.Delete(key)
		m.n.Add(-1)
		return true
	})
}
