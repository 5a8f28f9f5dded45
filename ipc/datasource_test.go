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

package ipc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ray820328/rbase/ipc"
)

var _ = Describe("[TC-DS] data source pumps", func() {
	It("[TC-DS-001] PumpOut then feeding the bytes through PumpIn yields the same frame", func() {
		ds := ipc.NewDataSource(9, ipc.RoleAcceptedSession, 0, nil)
		ds.Handler = ipc.NewDefaultCodec()

		err := ds.PumpOut(&ipc.Frame{Command: 3, SessionID: 9, Payload: []byte("ping")})
		Expect(err).NotTo(HaveOccurred())

		Expect(ds.ReadCache.Append(ds.WriteBuff.ReadDest())).To(BeTrue())
		ds.WriteBuff.Skip(ds.WriteBuff.Size())

		Expect(ds.PumpIn()).NotTo(HaveOccurred())

		frames := ds.Drain()
		Expect(frames).To(HaveLen(1))
		Expect(frames[0].Command).To(Equal(uint32(3)))
		Expect(string(frames[0].Payload)).To(Equal("ping"))
	})

	It("[TC-DS-002] Drain returns nil once nothing is pending", func() {
		ds := ipc.NewDataSource(1, ipc.RoleAcceptedSession, 0, nil)
		Expect(ds.Drain()).To(BeNil())
	})

	It("[TC-DS-003] Release transitions the source to closed and frees its buffers", func() {
		ds := ipc.NewDataSource(1, ipc.RoleAcceptedSession, 0, nil)
		ds.Handler = ipc.NewDefaultCodec()
		ds.Release()
		Expect(ds.State).To(Equal(ipc.StateClosed))
		Expect(ds.ReadCache.Capacity()).To(Equal(0))
	})

	It("[TC-DS-004] PumpOut surfaces a cache-full error without panicking", func() {
		ds := ipc.NewDataSource(1, ipc.RoleAcceptedSession, ipc.HeaderLength, nil)
		ds.Handler = ipc.NewDefaultCodec()

		err := ds.PumpOut(&ipc.Frame{Command: 1, SessionID: 1, Payload: []byte("too big for the buffer")})
		Expect(err).To(HaveOccurred())
	})
})
