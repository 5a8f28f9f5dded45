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

package ipc

import (
	"fmt"

	liberr "github.com/ray820328/rbase/errors"
)

// Error codes for the ipc package (§7). ErrNeedMore is a control-flow
// signal rather than a failure, and ErrCacheFull is returned to the
// sender of the frame with the data source left as it is; every other
// code tears the owning data source down.
const (
	ErrNeedMore liberr.CodeError = iota + liberr.MinPkgIpc
	ErrMagic
	ErrVersion
	ErrDecode
	ErrEncode
	ErrCacheFull
	ErrCacheNull
	ErrConnect
	ErrBrokenPipeIn
	ErrBrokenPipeOut
)

func init() {
	if liberr.ExistInMapMessage(ErrNeedMore) {
		panic(fmt.Errorf("rbase/ipc: error code collision at MinPkgIpc"))
	}
	liberr.RegisterIdFctMessage(ErrNeedMore, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrNeedMore:
		return "ipc-need-more: not enough bytes buffered yet"
	case ErrMagic:
		return "ipc-magic: frame magic does not match"
	case ErrVersion:
		return "ipc-version: frame version does not match"
	case ErrDecode:
		return "ipc-decode: frame length or crc is invalid"
	case ErrEncode:
		return "ipc-encode: unable to encode frame"
	case ErrCacheFull:
		return "ipc-cache-full: write buffer cannot accept the encoded frame"
	case ErrCacheNull:
		return "ipc-cache-null: expected buffer is missing"
	case ErrConnect:
		return "ipc-connect: transport-level connect failed"
	case ErrBrokenPipeIn:
		return "ipc-broken-pipe-in: kernel signaled a dead pipe while reading"
	case ErrBrokenPipeOut:
		return "ipc-broken-pipe-out: kernel signaled a dead pipe while writing"
	}
	return liberr.UnknownMessage
}
