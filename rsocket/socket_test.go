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

package rsocket_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ray820328/rbase/rsocket"
)

func TestRSocket(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "rbase rsocket suite")
}

var _ = Describe("[TC-SOCK] raw socket primitives", func() {
	var sock rsocket.Socket

	BeforeEach(func() {
		sock = rsocket.New()
	})

	It("[TC-SOCK-001] a listener accepts a connecting client and exchanges bytes", func() {
		listener, err := sock.Create()
		Expect(err).NotTo(HaveOccurred())
		defer sock.Close(listener)

		Expect(sock.Bind(listener, rsocket.Addr{IP: "127.0.0.1", Port: 0})).NotTo(HaveOccurred())
		Expect(sock.Listen(listener, 8)).NotTo(HaveOccurred())
		Expect(sock.SetBlocking(listener, false)).NotTo(HaveOccurred())

		// Resolve the ephemeral port the kernel picked.
		port := localPort(sock, listener)
		Expect(port).To(BeNumerically(">", 0))

		client, err := sock.Create()
		Expect(err).NotTo(HaveOccurred())
		defer sock.Close(client)
		Expect(sock.SetBlocking(client, false)).NotTo(HaveOccurred())

		status, err := sock.Connect(client, rsocket.Addr{IP: "127.0.0.1", Port: port}, time.Second)
		Expect(err).NotTo(HaveOccurred())
		Expect(status == rsocket.StatusDone || status == rsocket.StatusInProgress).To(BeTrue())

		var accepted rsocket.Handle
		Eventually(func() rsocket.Status {
			h, _, st, aerr := sock.Accept(listener)
			Expect(aerr).NotTo(HaveOccurred())
			if st == rsocket.StatusDone {
				accepted = h
			}
			return st
		}, time.Second, 5*time.Millisecond).Should(Equal(rsocket.StatusDone))
		defer sock.Close(accepted)

		n, st, err := sock.Send(client, []byte("hi"), time.Second)
		Expect(err).NotTo(HaveOccurred())
		Expect(st).To(Equal(rsocket.StatusDone))
		Expect(n).To(Equal(2))

		buf := make([]byte, 16)
		var got int
		Eventually(func() int {
			n, st, rerr := sock.Recv(accepted, buf, time.Second)
			Expect(rerr).NotTo(HaveOccurred())
			Expect(st).To(Equal(rsocket.StatusDone))
			got += n
			return got
		}, time.Second, 5*time.Millisecond).Should(Equal(2))
		Expect(string(buf[:2])).To(Equal("hi"))
	})

	It("[TC-SOCK-002] recv on a closed peer reports closed with zero bytes", func() {
		listener, err := sock.Create()
		Expect(err).NotTo(HaveOccurred())
		defer sock.Close(listener)
		Expect(sock.Bind(listener, rsocket.Addr{IP: "127.0.0.1", Port: 0})).NotTo(HaveOccurred())
		Expect(sock.Listen(listener, 8)).NotTo(HaveOccurred())
		Expect(sock.SetBlocking(listener, false)).NotTo(HaveOccurred())
		port := localPort(sock, listener)

		client, err := sock.Create()
		Expect(err).NotTo(HaveOccurred())
		Expect(sock.SetBlocking(client, false)).NotTo(HaveOccurred())
		_, err = sock.Connect(client, rsocket.Addr{IP: "127.0.0.1", Port: port}, time.Second)
		Expect(err).NotTo(HaveOccurred())

		var accepted rsocket.Handle
		Eventually(func() rsocket.Status {
			h, _, st, aerr := sock.Accept(listener)
			Expect(aerr).NotTo(HaveOccurred())
			if st == rsocket.StatusDone {
				accepted = h
			}
			return st
		}, time.Second, 5*time.Millisecond).Should(Equal(rsocket.StatusDone))

		Expect(sock.Close(client)).NotTo(HaveOccurred())

		buf := make([]byte, 16)
		Eventually(func() rsocket.Status {
			_, st, rerr := sock.Recv(accepted, buf, time.Second)
			Expect(rerr).NotTo(HaveOccurred())
			return st
		}, time.Second, 5*time.Millisecond).Should(Equal(rsocket.StatusClosed))
		sock.Close(accepted)
	})

	It("[TC-SOCK-003] set_option accepts the keepalive, reuseaddr, buffer-size and nodelay options without error", func() {
		h, err := sock.Create()
		Expect(err).NotTo(HaveOccurred())
		defer sock.Close(h)

		for _, opt := range []rsocket.SockOpt{
			rsocket.OptKeepAlive, rsocket.OptReuseAddr, rsocket.OptSndBuf,
			rsocket.OptRcvBuf, rsocket.OptTCPNoDelay,
		} {
			Expect(sock.SetOption(h, opt, 1)).NotTo(HaveOccurred())
		}
	})
})

// localPort reads back the ephemeral port the kernel assigned to a
// freshly bound listener, via the platform getsockname call from
// golang.org/x/sys (fdLocalPort) — the simplest way to resolve it without exposing
// getsockname through the rsocket.Socket contract itself.
func localPort(sock rsocket.Socket, h rsocket.Handle) int {
	fd := sock.FD(h)
	return fdLocalPort(fd)
}
