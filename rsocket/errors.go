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

package rsocket

import (
	"fmt"

	liberr "github.com/ray820328/rbase/errors"
)

const (
	ErrCreate liberr.CodeError = iota + liberr.MinPkgRSocket
	ErrBind
	ErrListen
	ErrConnect
	ErrAccept
	ErrSend
	ErrRecv
	ErrShutdown
	ErrClose
	ErrSetOpt
	ErrResolve
)

func init() {
	if liberr.ExistInMapMessage(ErrCreate) {
		panic(fmt.Errorf("rbase/rsocket: error code collision at MinPkgRSocket"))
	}
	liberr.RegisterIdFctMessage(ErrCreate, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrCreate:
		return "rsocket-create: unable to create the socket"
	case ErrBind:
		return "rsocket-bind: unable to bind the socket"
	case ErrListen:
		return "rsocket-listen: unable to listen on the socket"
	case ErrConnect:
		return "rsocket-connect: connect failed"
	case ErrAccept:
		return "rsocket-accept: accept failed"
	case ErrSend:
		return "rsocket-send: send failed"
	case ErrRecv:
		return "rsocket-recv: recv failed"
	case ErrShutdown:
		return "rsocket-shutdown: shutdown failed"
	case ErrClose:
		return "rsocket-close: close failed"
	case ErrSetOpt:
		return "rsocket-setopt: setting the socket option failed"
	case ErrResolve:
		return "rsocket-resolve: address could not be resolved"
	}
	return liberr.UnknownMessage
}
