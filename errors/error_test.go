/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors_test

import (
	"fmt"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liberr "github.com/ray820328/rbase/errors"
)

func TestErrors(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "rbase errors suite")
}

var _ = Describe("[TC-ERR] coded errors", func() {
	Context("New", func() {
		It("[TC-ERR-001] carries its own code", func() {
			e := liberr.New(42, "boom")
			Expect(e.GetCode()).To(Equal(liberr.CodeError(42)))
			Expect(e.Error()).To(Equal("boom"))
		})

		It("[TC-ERR-002] chains parents and finds a code among them", func() {
			parent := liberr.New(7, "root cause")
			e := liberr.New(42, "boom", parent)
			Expect(e.HasParent()).To(BeTrue())
			Expect(e.HasCode(7)).To(BeTrue())
			Expect(e.IsCode(7)).To(BeFalse())
		})

		It("[TC-ERR-003] filters nil parents", func() {
			e := liberr.New(42, "boom", nil, nil)
			Expect(e.HasParent()).To(BeFalse())
		})
	})

	Context("Newf", func() {
		It("[TC-ERR-004] formats the message", func() {
			e := liberr.Newf(1, "value=%d", 9)
			Expect(e.Error()).To(Equal("value=9"))
		})
	})

	Context("Is / Get", func() {
		It("[TC-ERR-005] Is matches a wrapped code", func() {
			e := liberr.New(99, "nope")
			Expect(liberr.Is(e, 99)).To(BeTrue())
			Expect(liberr.Is(e, 1)).To(BeFalse())
			Expect(liberr.Is(fmt.Errorf("plain"), 99)).To(BeFalse())
		})

		It("[TC-ERR-006] Get extracts the Error interface", func() {
			e := liberr.New(5, "x")
			Expect(liberr.Get(e)).NotTo(BeNil())
			Expect(liberr.Get(fmt.Errorf("plain"))).To(BeNil())
		})
	})

	Context("Message registry", func() {
		It("[TC-ERR-007] an unregistered code renders UnknownMessage", func() {
			Expect(liberr.CodeError(65000).Message()).To(Equal(liberr.UnknownMessage))
		})
	})
})
