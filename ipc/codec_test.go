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

var _ = Describe("[TC-CODEC] default length-prefixed codec", func() {
	var codec *ipc.DefaultCodec
	var ds *ipc.DataSource

	BeforeEach(func() {
		codec = ipc.NewDefaultCodec()
		ds = ipc.NewDataSource(1, ipc.RoleAcceptedSession, 0, nil)
		ds.Handler = codec
	})

	It("[TC-CODEC-001] round-trips a frame through encode then decode", func() {
		out := ipc.NewBuffer(1024)
		in := &ipc.Frame{Command: 7, SessionID: 42, Payload: []byte("hello")}

		res, err := codec.Encode(ds, in, out)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(ipc.ResultOK))

		got, res, err := codec.Process(ds, out)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(ipc.ResultOK))
		Expect(got.Command).To(Equal(uint32(7)))
		Expect(got.SessionID).To(Equal(uint64(42)))
		Expect(string(got.Payload)).To(Equal("hello"))
		Expect(out.Size()).To(Equal(0))
	})

	It("[TC-CODEC-002] reports need-more on a header that hasn't fully arrived", func() {
		in := ipc.NewBuffer(64)
		Expect(in.Append([]byte{ipc.FrameVersion, 'R', 'a', 'y'})).To(BeTrue())

		f, res, err := codec.Process(ds, in)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(ipc.ResultNeedMore))
		Expect(f).To(BeNil())
		Expect(in.Size()).To(Equal(4))
	})

	It("[TC-CODEC-003] reports need-more when the declared length exceeds what's buffered", func() {
		out := ipc.NewBuffer(1024)
		full := ipc.NewBuffer(1024)
		in := &ipc.Frame{Command: 1, SessionID: 1, Payload: []byte("0123456789")}
		_, err := codec.Encode(ds, in, out)
		Expect(err).NotTo(HaveOccurred())

		partial := out.ReadDest()[:ipc.HeaderLength+3]
		Expect(full.Append(partial)).To(BeTrue())

		f, res, err := codec.Process(ds, full)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(ipc.ResultNeedMore))
		Expect(f).To(BeNil())
	})

	It("[TC-CODEC-004] decodes two frames buffered back to back", func() {
		out := ipc.NewBuffer(1024)
		a := &ipc.Frame{Command: 1, SessionID: 1, Payload: []byte("a")}
		b := &ipc.Frame{Command: 2, SessionID: 2, Payload: []byte("bb")}
		_, err := codec.Encode(ds, a, out)
		Expect(err).NotTo(HaveOccurred())
		_, err = codec.Encode(ds, b, out)
		Expect(err).NotTo(HaveOccurred())

		got1, res1, err1 := codec.Process(ds, out)
		Expect(err1).NotTo(HaveOccurred())
		Expect(res1).To(Equal(ipc.ResultOK))
		Expect(got1.Command).To(Equal(uint32(1)))

		got2, res2, err2 := codec.Process(ds, out)
		Expect(err2).NotTo(HaveOccurred())
		Expect(res2).To(Equal(ipc.ResultOK))
		Expect(got2.Command).To(Equal(uint32(2)))
		Expect(out.Size()).To(Equal(0))
	})

	It("[TC-CODEC-005] rejects a frame with the wrong magic", func() {
		in := ipc.NewBuffer(64)
		header := make([]byte, ipc.HeaderLength)
		header[0] = ipc.FrameVersion
		copy(header[1:4], "Bad")
		Expect(in.Append(header)).To(BeTrue())

		_, res, err := codec.Process(ds, in)
		Expect(res).To(Equal(ipc.ResultError))
		Expect(err).To(HaveOccurred())
	})

	It("[TC-CODEC-006] rejects a frame with a corrupted crc", func() {
		out := ipc.NewBuffer(1024)
		in := &ipc.Frame{Command: 1, SessionID: 1, Payload: []byte("abc")}
		_, err := codec.Encode(ds, in, out)
		Expect(err).NotTo(HaveOccurred())

		out.ReadDest()[ipc.HeaderLength] ^= 0xFF // flip a payload bit

		_, res, err := codec.Process(ds, out)
		Expect(res).To(Equal(ipc.ResultError))
		Expect(err).To(HaveOccurred())
	})

	It("[TC-CODEC-007] refuses to encode a payload larger than the max frame allows", func() {
		out := ipc.NewBuffer(ipc.MaxFrameLength)
		huge := &ipc.Frame{Command: 1, SessionID: 1, Payload: make([]byte, ipc.MaxPayloadBytes+1)}

		res, err := codec.Encode(ds, huge, out)
		Expect(res).To(Equal(ipc.ResultError))
		Expect(err).To(HaveOccurred())
	})

	It("[TC-CODEC-008] reports cache-full when the destination buffer is too small", func() {
		out := ipc.NewBuffer(ipc.HeaderLength) // no room for any payload
		f := &ipc.Frame{Command: 1, SessionID: 1, Payload: []byte("abc")}

		res, err := codec.Encode(ds, f, out)
		Expect(res).To(Equal(ipc.ResultError))
		Expect(err).To(HaveOccurred())
	})
})
