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

package errors

import (
	"math"
	"strconv"
)

// idMsgFct stores the mapping between a registered error code and the
// function that renders its message. Every package that defines its own
// CodeError range registers one function here, in its own init().
var idMsgFct = make(map[CodeError]Message)

// Message renders the human-readable text for a CodeError.
type Message func(code CodeError) (message string)

// CodeError is a numeric error classification, similar in spirit to an
// HTTP status code. Each package that needs its own error codes reserves
// a range below and starts counting from it with iota.
type CodeError uint16

const (
	// UnknownError is returned when no specific code applies.
	UnknownError CodeError = 0

	// UnknownMessage is the rendered text for UnknownError.
	UnknownMessage = "unknown error"
)

// Package code ranges. Each range leaves headroom for a package to grow
// without colliding with its neighbor.
const (
	MinPkgIpc     CodeError = 100
	MinPkgRepoll  CodeError = 200
	MinPkgRSocket CodeError = 300
	MinPkgServer  CodeError = 400
	MinPkgClient  CodeError = 500
	MinPkgConfig  CodeError = 600

	MinAvailable CodeError = 1000
)

// ParseCodeError clamps an int64 into the valid CodeError range.
func ParseCodeError(i int64) CodeError {
	if i < 0 {
		return UnknownError
	} else if i >= int64(math.MaxUint16) {
		return math.MaxUint16
	}
	return CodeError(i)
}

// Uint16 returns the raw numeric value of the code.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// String renders the numeric code as a decimal string.
func (c CodeError) String() string {
	return strconv.Itoa(int(c))
}

// Message returns the registered text for the code, or UnknownMessage if
// nothing registered it (or it resolves to the empty string).
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}
	if f, ok := idMsgFct[findRangeStart(c)]; ok {
		if m := f(c); m != "" {
			return m
		}
	}
	return UnknownMessage
}

// findRangeStart returns the registered range-start key that code falls
// under (the largest registered start <= code), so a package only has to
// register once for the whole block of codes it defines with iota.
func findRangeStart(code CodeError) CodeError {
	var best CodeError
	var found bool

	for start := range idMsgFct {
		if start <= code && (!found || start > best) {
			best = start
			found = true
		}
	}

	return best
}

// Error builds a new Error from the code, with optional parents.
func (c CodeError) Error(parent ...error) Error {
	return New(c.Uint16(), c.Message(), parent...)
}

// RegisterIdFctMessage registers the message function for every code
// starting at start. Packages call this once from init().
func RegisterIdFctMessage(start CodeError, fct Message) {
	idMsgFct[start] = fct
}

// ExistInMapMessage reports whether a message function is already
// registered for the given starting code, used to detect range
// collisions between packages at init time.
func ExistInMapMessage(start CodeError) bool {
	_, ok := idMsgFct[start]
	return ok
}
