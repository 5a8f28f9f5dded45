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
	"os"

	"github.com/sirupsen/logrus"
)

type logger struct {
	l   *logrus.Entry
	lvl Level
}

// New returns a Logger writing to stderr in logrus's text formatter,
// matching the teacher's default of "never crash without an explicit
// sink configured".
func New() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)

	return &logger{
		l:   logrus.NewEntry(l),
		lvl: InfoLevel,
	}
}

// Discard returns a Logger that drops every entry, used whenever a
// reactor is constructed without an explicit logger.
func Discard() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return &logger{l: logrus.NewEntry(l), lvl: ErrorLevel}
}

func toLogrusLevel(lvl Level) logrus.Level {
	switch lvl {
	case DebugLevel:
		return logrus.DebugLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func (o *logger) SetLevel(lvl Level) {
	o.lvl = lvl
	o.l.Logger.SetLevel(toLogrusLevel(lvl))
}

func (o *logger) GetLevel() Level {
	return o.lvl
}

func (o *logger) SetFields(f Fields) Logger {
	o.l = o.l.Logger.WithFields(logrus.Fields(f))
	return o
}

func (o *logger) WithFields(f Fields) Logger {
	return &logger{l: o.l.WithFields(logrus.Fields(f)), lvl: o.lvl}
}

func (o *logger) Debug(msg string, args ...interface{}) {
	o.l.Debugf(msg, args...)
}

func (o *logger) Info(msg string, args ...interface{}) {
	o.l.Infof(msg, args...)
}

func (o *logger) Warn(msg string, args ...interface{}) {
	o.l.Warnf(msg, args...)
}

func (o *logger) Error(msg string, args ...interface{}) {
	o.l.Errorf(msg, args...)
}
