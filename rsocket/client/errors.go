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

package client

import (
	"fmt"

	liberr "github.com/ray820328/rbase/errors"
)

const (
	ErrState liberr.CodeError = iota + liberr.MinPkgClient
	ErrResolve
	ErrConnect
	ErrTimeout
	ErrClose
)

func init() {
	if liberr.ExistInMapMessage(ErrState) {
		panic(fmt.Errorf("rbase/rsocket/client: error code collision at MinPkgClient"))
	}
	liberr.RegisterIdFctMessage(ErrState, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrState:
		return "client-state: operation not valid in the current state"
	case ErrResolve:
		return "client-resolve: unable to resolve any address for the configured endpoint"
	case ErrConnect:
		return "client-connect: unable to create or connect the socket"
	case ErrTimeout:
		return "client-timeout: connection did not complete within the connect timeout"
	case ErrClose:
		return "client-close: the session failed to close cleanly"
	}
	return liberr.UnknownMessage
}
