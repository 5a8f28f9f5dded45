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

// Package metrics is the optional prometheus instrumentation surface
// (§3.5): a server or client reactor publishes through a Registry
// passed to its New; a reactor run without one uses Nop and
// behaves identically, so metrics never become load-bearing for any
// invariant the reactors guarantee.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry is what rsocket/server and rsocket/client publish counters
// and gauges through.
type Registry interface {
	SessionsAccepted() prometheus.Counter
	SessionsActive() prometheus.Gauge
	BytesIn() prometheus.Counter
	BytesOut() prometheus.Counter
	DecodeErrors() prometheus.Counter
}

type registry struct {
	sessionsAccepted prometheus.Counter
	sessionsActive   prometheus.Gauge
	bytesIn          prometheus.Counter
	bytesOut         prometheus.Counter
	decodeErrors     prometheus.Counter
}

// New builds a Registry with every metric registered on reg under the
// given subsystem name, so a process hosting both a server and a
// client reactor can tell their series apart.
func New(reg prometheus.Registerer, subsystem string) Registry {
	r := &registry{
		sessionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rbase", Subsystem: subsystem, Name: "sessions_accepted_total",
			Help: "Total sessions accepted since start.",
		}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rbase", Subsystem: subsystem, Name: "sessions_active",
			Help: "Sessions currently present in the session map.",
		}),
		bytesIn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rbase", Subsystem: subsystem, Name: "bytes_in_total",
			Help: "Total bytes received across all sessions.",
		}),
		bytesOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rbase", Subsystem: subsystem, Name: "bytes_out_total",
			Help: "Total bytes sent across all sessions.",
		}),
		decodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rbase", Subsystem: subsystem, Name: "decode_errors_total",
			Help: "Total frames rejected by the decode chain.",
		}),
	}
	reg.MustRegister(r.sessionsAccepted, r.sessionsActive, r.bytesIn, r.bytesOut, r.decodeErrors)
	return r
}

func (r *registry) SessionsAccepted() prometheus.Counter { return r.sessionsAccepted }
func (r *registry) SessionsActive() prometheus.Gauge     { return r.sessionsActive }
func (r *registry) BytesIn() prometheus.Counter          { return r.bytesIn }
func (r *registry) BytesOut() prometheus.Counter         { return r.bytesOut }
func (r *registry) DecodeErrors() prometheus.Counter     { return r.decodeErrors }

type nop struct{}

func (nop) SessionsAccepted() prometheus.Counter { return discardCounter }
func (nop) SessionsActive() prometheus.Gauge     { return discardGauge }
func (nop) BytesIn() prometheus.Counter          { return discardCounter }
func (nop) BytesOut() prometheus.Counter         { return discardCounter }
func (nop) DecodeErrors() prometheus.Counter     { return discardCounter }

var (
	discardCounter = prometheus.NewCounter(prometheus.CounterOpts{Name: "rbase_discard_counter"})
	discardGauge   = prometheus.NewGauge(prometheus.GaugeOpts{Name: "rbase_discard_gauge"})
)

// Nop is a Registry that records nothing, for reactors run without
// a caller-supplied Registry.
var Nop Registry = nop{}
