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

// Package logger is the leveled, structured logging facade used by every
// reactor and codec in this module. It is a narrow adaptation of the
// teacher's logger package: the same Level/Fields shape and the same
// hclog adapter, backed by logrus instead of the teacher's own
// multi-hook engine (file/syslog/stdout fan-out is not needed here —
// see DESIGN.md).
package logger

import hclog "github.com/hashicorp/go-hclog"

// Level mirrors the teacher's logger/level.Level ordering.
type Level uint8

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Fields are structured key/value pairs attached to a log entry.
type Fields map[string]interface{}

// Logger is the minimal leveled logging surface the reactors depend on.
type Logger interface {
	SetLevel(lvl Level)
	GetLevel() Level

	SetFields(f Fields) Logger
	WithFields(f Fields) Logger

	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// HCLog adapts this Logger to hashicorp's hclog.Logger, for wiring
	// into hashicorp-ecosystem helpers (go-multierror callers, etc.)
	// the same way the teacher's logger/hclog.go does.
	HCLog() hclog.Logger
}
