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

package logger

import (
	"io"
	"log"

	hclog "github.com/hashicorp/go-hclog"
)

// hcAdapter satisfies hclog.Logger by delegating to the wrapped Logger,
// the same bridging pattern as the teacher's logger/hclog.go.
type hcAdapter struct {
	o *logger
}

func (o *logger) HCLog() hclog.Logger {
	return &hcAdapter{o: o}
}

func (h *hcAdapter) Log(level hclog.Level, msg string, args ...interface{}) {
	switch level {
	case hclog.Trace, hclog.Debug:
		h.o.Debug(msg, args...)
	case hclog.Warn:
		h.o.Warn(msg, args...)
	case hclog.Error:
		h.o.Error(msg, args...)
	default:
		h.o.Info(msg, args...)
	}
}

func (h *hcAdapter) Trace(msg string, args ...interface{}) { h.o.Debug(msg, args...) }
func (h *hcAdapter) Debug(msg string, args ...interface{}) { h.o.Debug(msg, args...) }
func (h *hcAdapter) Info(msg string, args ...interface{})  { h.o.Info(msg, args...) }
func (h *hcAdapter) Warn(msg string, args ...interface{})  { h.o.Warn(msg, args...) }
func (h *hcAdapter) Error(msg string, args ...interface{}) { h.o.Error(msg, args...) }

func (h *hcAdapter) IsTrace() bool { return h.o.GetLevel() == DebugLevel }
func (h *hcAdapter) IsDebug() bool { return h.o.GetLevel() <= DebugLevel }
func (h *hcAdapter) IsInfo() bool  { return h.o.GetLevel() <= InfoLevel }
func (h *hcAdapter) IsWarn() bool  { return h.o.GetLevel() <= WarnLevel }
func (h *hcAdapter) IsError() bool { return h.o.GetLevel() <= ErrorLevel }

func (h *hcAdapter) ImpliedArgs() []interface{} { return nil }

func (h *hcAdapter) With(args ...interface{}) hclog.Logger {
	f := Fields{}
	for i := 0; i+1 < len(args); i += 2 {
		if k, ok := args[i].(string); ok {
			f[k] = args[i+1]
		}
	}
	return &hcAdapter{o: h.o.WithFields(f).(*logger)}
}

func (h *hcAdapter) Name() string { return "rbase" }

func (h *hcAdapter) Named(name string) hclog.Logger {
	return &hcAdapter{o: h.o.WithFields(Fields{"name": name}).(*logger)}
}

func (h *hcAdapter) ResetNamed(name string) hclog.Logger {
	return h.Named(name)
}

func (h *hcAdapter) SetLevel(level hclog.Level) {
	switch level {
	case hclog.Trace, hclog.Debug:
		h.o.SetLevel(DebugLevel)
	case hclog.Warn:
		h.o.SetLevel(WarnLevel)
	case hclog.Error:
		h.o.SetLevel(ErrorLevel)
	default:
		h.o.SetLevel(InfoLevel)
	}
}

func (h *hcAdapter) GetLevel() hclog.Level {
	switch h.o.GetLevel() {
	case DebugLevel:
		return hclog.Debug
	case WarnLevel:
		return hclog.Warn
	case ErrorLevel:
		return hclog.Error
	default:
		return hclog.Info
	}
}

func (h *hcAdapter) StandardLogger(opts *hclog.StandardLoggerOptions) *log.Logger {
	return log.New(h.StandardWriter(opts), "", 0)
}

func (h *hcAdapter) StandardWriter(_ *hclog.StandardLoggerOptions) io.Writer {
	return io.Discard
}
