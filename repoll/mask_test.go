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

package repoll_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ray820328/rbase/repoll"
)

func TestRepoll(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "rbase repoll suite")
}

var _ = Describe("[TC-MASK] interest/ready bitset", func() {
	It("[TC-MASK-001] combines and tests flags independently", func() {
		m := repoll.In | repoll.Err
		Expect(m.Has(repoll.In)).To(BeTrue())
		Expect(m.Has(repoll.Err)).To(BeTrue())
		Expect(m.Has(repoll.Out)).To(BeFalse())
	})

	It("[TC-MASK-002] renders a readable string", func() {
		Expect((repoll.In | repoll.Out).String()).To(Equal("in|out"))
		Expect(repoll.Mask(0).String()).To(Equal("none"))
	})
})

var _ = Describe("[TC-CONT] readiness container lifecycle", func() {
	It("[TC-CONT-001] creates, registers and removes descriptors without error", func() {
		c, err := repoll.New(16, nil)
		Expect(err).NotTo(HaveOccurred())
		defer c.Close()

		r, w, perr := pipeFds()
		Expect(perr).NotTo(HaveOccurred())
		defer closeFd(r)
		defer closeFd(w)

		Expect(c.Add(repoll.Item{Fd: r, Interest: repoll.In, UserData: "reader"})).NotTo(HaveOccurred())
		Expect(c.Len()).To(Equal(1))

		Expect(c.Modify(repoll.Item{Fd: r, Interest: repoll.In | repoll.Err, UserData: "reader"})).NotTo(HaveOccurred())
		Expect(c.Remove(r)).NotTo(HaveOccurred())
		Expect(c.Len()).To(Equal(0))
	})

	It("[TC-CONT-002] reports a ready descriptor once data is written", func() {
		c, err := repoll.New(16, nil)
		Expect(err).NotTo(HaveOccurred())
		defer c.Close()

		r, w, perr := pipeFds()
		Expect(perr).NotTo(HaveOccurred())
		defer closeFd(r)
		defer closeFd(w)

		Expect(c.Add(repoll.Item{Fd: r, Interest: repoll.In, UserData: 99})).NotTo(HaveOccurred())
		writeByte(w)

		ready, err := c.Poll(1000)
		Expect(err).NotTo(HaveOccurred())
		Expect(ready).To(HaveLen(1))
		Expect(ready[0].UserData).To(Equal(99))
		Expect(ready[0].Events.Has(repoll.In)).To(BeTrue())
	})

	It("[TC-CONT-003] times out with no events when nothing is ready", func() {
		c, err := repoll.New(16, nil)
		Expect(err).NotTo(HaveOccurred())
		defer c.Close()

		r, w, perr := pipeFds()
		Expect(perr).NotTo(HaveOccurred())
		defer closeFd(r)
		defer closeFd(w)

		Expect(c.Add(repoll.Item{Fd: r, Interest: repoll.In, UserData: 1})).NotTo(HaveOccurred())

		ready, err := c.Poll(10)
		Expect(err).NotTo(HaveOccurred())
		Expect(ready).To(BeEmpty())
	})

	It("[TC-CONT-004] rejects Modify on an fd that was never added", func() {
		c, err := repoll.New(16, nil)
		Expect(err).NotTo(HaveOccurred())
		defer c.Close()

		err = c.Modify(repoll.Item{Fd: 999999, Interest: repoll.In})
		Expect(err).To(HaveOccurred())
	})
})
