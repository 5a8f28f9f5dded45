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

package repoll

import (
	"fmt"

	liberr "github.com/ray820328/rbase/errors"
)

const (
	ErrCreate liberr.CodeError = iota + liberr.MinPkgRepoll
	ErrRegister
	ErrModify
	ErrRemove
	ErrPoll
	ErrClosed
	ErrUnknownFd
)

func init() {
	if liberr.ExistInMapMessage(ErrCreate) {
		panic(fmt.Errorf("rbase/repoll: error code collision at MinPkgRepoll"))
	}
	liberr.RegisterIdFctMessage(ErrCreate, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrCreate:
		return "repoll-create: unable to allocate the readiness container"
	case ErrRegister:
		return "repoll-register: unable to register the descriptor"
	case ErrModify:
		return "repoll-modify: unable to update interest for the descriptor"
	case ErrRemove:
		return "repoll-remove: unable to unregister the descriptor"
	case ErrPoll:
		return "repoll-poll: waiting on the readiness container failed"
	case ErrClosed:
		return "repoll-closed: the readiness container is already closed"
	case ErrUnknownFd:
		return "repoll-unknown-fd: descriptor is not registered"
	}
	return liberr.UnknownMessage
}
