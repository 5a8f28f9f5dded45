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

// sockFlagBits lists every SockOpt a Config.SockFlag bit can select, in
// bit order (bit i selects sockFlagBits[i]). §4.1 defines set_option as
// a boolean toggle, so a set bit always applies its option with value 1.
var sockFlagBits = []SockOpt{
	OptKeepAlive,
	OptDebug,
	OptBroadcast,
	OptReuseAddr,
	OptSndBuf,
	OptRcvBuf,
	OptNonblock,
	OptLinger,
	OptTCPDeferAccept,
	OptTCPNoDelay,
	OptFreebind,
}

// ApplySockFlag decodes flags bit by bit against sockFlagBits and calls
// SetOption(h, opt, 1) for every bit that is set, stopping at the first
// failure (§6's sock_flag, applied right after Create/Accept).
func ApplySockFlag(s Socket, h Handle, flags uint32) error {
	for i, opt := range sockFlagBits {
		if flags&(1<<uint(i)) == 0 {
			continue
		}
		if err := s.SetOption(h, opt, 1); err != nil {
			return err
		}
	}
	return nil
}
