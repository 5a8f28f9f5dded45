/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// Package errors provides the coded-error convention shared by every
// package in this module: a numeric CodeError classification, optional
// parent-error chaining, and compatibility with the standard errors.Is
// and errors.As.
package errors

import (
	goerrors "errors"
	"fmt"
	"runtime"
	"strings"
)

// Error extends the standard error with a numeric code and a parent
// chain, so a caller can ask "is this a closed-pipe error" without
// string-matching the message.
type Error interface {
	error

	// IsCode reports whether this error's own code equals code.
	IsCode(code CodeError) bool
	// HasCode reports whether this error or any of its parents carries code.
	HasCode(code CodeError) bool
	// GetCode returns this error's own code.
	GetCode() CodeError

	// Add appends non-nil errors to the parent chain.
	Add(parent ...error)
	// HasParent reports whether at least one parent is chained.
	HasParent() bool
	// GetParent returns the parent chain, optionally including this error first.
	GetParent(withSelf bool) []error

	// GetTrace renders the file:line this error was created at.
	GetTrace() string

	// Unwrap exposes the parent chain to errors.Is / errors.As.
	Unwrap() []error
}

type ers struct {
	c CodeError
	m string
	p []Error
	t runtime.Frame
}

func getFrame() runtime.Frame {
	var frame runtime.Frame
	pc := make([]uintptr, 1)

	if n := runtime.Callers(3, pc); n == 0 {
		return frame
	}

	frames := runtime.CallersFrames(pc)
	frame, _ = frames.Next()
	return frame
}

// New creates an Error with the given code and message, optionally
// chaining parent errors (nil and already-chained duplicates are
// filtered out).
func New(code uint16, message string, parent ...error) Error {
	e := &ers{
		c: CodeError(code),
		m: message,
		t: getFrame(),
	}
	e.Add(parent...)
	return e
}

// Newf is New with a fmt.Sprintf-formatted message.
func Newf(code uint16, pattern string, args ...interface{}) Error {
	return New(code, fmt.Sprintf(pattern, args...))
}

// Make wraps a plain error into an Error (code 0) unless it already is one.
func Make(err error) Error {
	if err == nil {
		return nil
	}

	var e Error
	if goerrors.As(err, &e) {
		return e
	}

	return &ers{c: UnknownError, m: err.Error(), t: getFrame()}
}

func (e *ers) Error() string {
	if e == nil {
		return ""
	}
	return e.m
}

func (e *ers) IsCode(code CodeError) bool {
	return e.c == code
}

func (e *ers) HasCode(code CodeError) bool {
	if e.IsCode(code) {
		return true
	}
	for _, p := range e.p {
		if p.HasCode(code) {
			return true
		}
	}
	return false
}

func (e *ers) GetCode() CodeError {
	return e.c
}

func (e *ers) Add(parent ...error) {
	for _, v := range parent {
		if v == nil {
			continue
		}
		if er, ok := v.(*ers); ok && er == e {
			continue
		}
		e.p = append(e.p, Make(v))
	}
}

func (e *ers) HasParent() bool {
	return len(e.p) > 0
}

func (e *ers) GetParent(withSelf bool) []error {
	out := make([]error, 0, len(e.p)+1)
	if withSelf {
		out = append(out, e)
	}
	for _, p := range e.p {
		out = append(out, p)
	}
	return out
}

func (e *ers) GetTrace() string {
	if e.t.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", e.t.File, e.t.Line)
}

func (e *ers) Unwrap() []error {
	return e.GetParent(false)
}

// Is lets errors.Is match by code when both sides carry one, falling
// back to message comparison otherwise.
func (e *ers) Is(target error) bool {
	other, ok := target.(*ers)
	if !ok {
		return false
	}
	if e.c != UnknownError && other.c != UnknownError {
		return e.c == other.c
	}
	return strings.EqualFold(e.m, other.m)
}

// Is reports whether err is an Error carrying code.
func Is(err error, code CodeError) bool {
	var e Error
	if !goerrors.As(err, &e) {
		return false
	}
	return e.HasCode(code)
}

// Get extracts the Error interface out of err, if present.
func Get(err error) Error {
	var e Error
	if goerrors.As(err, &e) {
		return e
	}
	return nil
}
