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

	liberr "github.com/ray820328/rbase/errors"
)

const (
	ErrState liberr.CodeError = iota + liberr.MinPkgServer
	ErrOpen
	ErrFull
	ErrUnknownSession
	ErrClose
)

func init() {
	if liberr.ExistInMapMessage(ErrState) {
		panic(fmt.Errorf("rbase/rsocket/server: error code collision at MinPkgServer"))
	}
	liberr.RegisterIdFctMessage(ErrState, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrState:
		return "server-state: operation not valid in the current state"
	case ErrOpen:
		return "server-open: unable to open the listening socket"
	case ErrFull:
		return "server-full: session id space exhausted"
	case ErrUnknownSession:
		return "server-unknown-session: no session registered under that id"
	case ErrClose:
		return "server-close: one or more sessions failed to close cleanly"
	}
	return liberr.UnknownMessage
}
