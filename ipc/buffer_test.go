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
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ray820328/rbase/ipc"
)

func TestIPC(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "rbase ipc suite")
}

var _ = Describe("[TC-BUF] fixed-capacity buffer", func() {
	It("[TC-BUF-001] reports capacity, size and left correctly as it fills", func() {
		b := ipc.NewBuffer(8)
		Expect(b.Capacity()).To(Equal(8))
		Expect(b.Size()).To(Equal(0))
		Expect(b.Left()).To(Equal(8))

		Expect(b.Append([]byte("abcd"))).To(BeTrue())
		Expect(b.Size()).To(Equal(4))
		Expect(b.Left()).To(Equal(4))
	})

	It("[TC-BUF-002] refuses to append past capacity", func() {
		b := ipc.NewBuffer(4)
		Expect(b.Append([]byte("abcde"))).To(BeFalse())
		Expect(b.Size()).To(Equal(0))
	})

	It("[TC-BUF-003] consumes from the head and resets once fully drained", func() {
		b := ipc.NewBuffer(8)
		Expect(b.Append([]byte("abcd"))).To(BeTrue())

		Expect(string(b.ReadDest())).To(Equal("abcd"))
		b.Skip(2)
		Expect(string(b.ReadDest())).To(Equal("cd"))
		Expect(b.Left()).To(Equal(4))

		b.Skip(2)
		Expect(b.Size()).To(Equal(0))
		Expect(b.Left()).To(Equal(8))
	})

	It("[TC-BUF-004] panics when skipping past what was buffered", func() {
		b := ipc.NewBuffer(4)
		Expect(b.Append([]byte("ab"))).To(BeTrue())
		Expect(func() { b.Skip(3) }).To(Panic())
	})

	It("[TC-BUF-005] panics when advancing past capacity", func() {
		b := ipc.NewBuffer(4)
		Expect(func() { b.Advance(5) }).To(Panic())
	})

	It("[TC-BUF-006] release drops the backing array", func() {
		b := ipc.NewBuffer(4)
		b.Release()
		Expect(b.Capacity()).To(Equal(0))
	})
})
