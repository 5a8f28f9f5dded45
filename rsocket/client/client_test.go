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

package client_test

import (
	"encoding/binary"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ray820328/rbase/config"
	"github.com/ray820328/rbase/ipc"
	"github.com/ray820328/rbase/rsocket/client"
)

func TestClient(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "rbase rsocket/client suite")
}

var nextPort = 24100

func allocPort() int {
	nextPort++
	return nextPort
}

func newTestConfig(port int) *config.Config {
	cfg := &config.Config{
		SidMin: 1,
		SidMax: 1,
		IP:     "127.0.0.1",
		Port:   port,
	}
	cfg.Defaults()
	return cfg
}

func netAddr(port int) string {
	return "127.0.0.1:" + strconv.Itoa(port)
}

type frameCollector struct {
	mu     sync.Mutex
	frames []*ipc.Frame
}

func (f *frameCollector) onFrame(_ uint64, frame *ipc.Frame) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, frame)
}

func (f *frameCollector) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func (f *frameCollector) last() *ipc.Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames[len(f.frames)-1]
}

func encodeFrame(cmd uint32, payload []byte) []byte {
	ds := ipc.NewDataSource(0, ipc.RoleOutboundClient, 0, nil)
	head, err := ipc.Chain(ds, ipc.NewDefaultCodec())
	Expect(err).NotTo(HaveOccurred())
	ds.Handler = head

	Expect(ds.PumpOut(&ipc.Frame{Command: cmd, Payload: payload})).NotTo(HaveOccurred())
	out := make([]byte, ds.WriteBuff.Size())
	copy(out, ds.WriteBuff.ReadDest())
	return out
}

func decodeFrames(data []byte) []*ipc.Frame {
	ds := ipc.NewDataSource(0, ipc.RoleOutboundClient, 0, nil)
	head, err := ipc.Chain(ds, ipc.NewDefaultCodec())
	Expect(err).NotTo(HaveOccurred())
	ds.Handler = head

	Expect(ds.ReadCache.Append(data)).To(BeTrue())
	Expect(ds.PumpIn()).NotTo(HaveOccurred())
	return ds.Drain()
}

var _ = Describe("[TC-CLI] client reactor", func() {
	It("[TC-CLI-001] connects, exchanges one frame, and tears down cleanly", func() {
		port := allocPort()
		lis, err := net.Listen("tcp", netAddr(port))
		Expect(err).NotTo(HaveOccurred())
		defer lis.Close()

		accepted := make(chan net.Conn, 1)
		go func() {
			c, aerr := lis.Accept()
			if aerr == nil {
				accepted <- c
			}
		}()

		cfg := newTestConfig(port)
		fc := &frameCollector{}
		cli := client.New(cfg, nil, nil, fc.onFrame)
		Expect(cli.Init()).NotTo(HaveOccurred())
		Expect(cli.Open()).NotTo(HaveOccurred())
		Expect(cli.Start()).NotTo(HaveOccurred())
		defer cli.Close()

		Expect(cli.State()).To(Equal(ipc.StateStarted))

		var peer net.Conn
		Eventually(accepted, "2s", "5ms").Should(Receive(&peer))
		defer peer.Close()

		_, err = peer.Write(encodeFrame(1, []byte("hello")))
		Expect(err).NotTo(HaveOccurred())

		Eventually(func() int {
			_ = cli.Check()
			return fc.len()
		}, "2s", "5ms").Should(Equal(1))

		got := fc.last()
		Expect(got.Command).To(Equal(uint32(1)))
		Expect(string(got.Payload)).To(Equal("hello"))

		Expect(cli.Send(&ipc.Frame{Command: 2, Payload: []byte("world")})).NotTo(HaveOccurred())

		for i := 0; i < 10; i++ {
			_ = cli.Check()
			time.Sleep(5 * time.Millisecond)
		}

		_ = peer.SetReadDeadline(time.Now().Add(2 * time.Second))
		buf := make([]byte, 256)
		n, err := peer.Read(buf)
		Expect(err).NotTo(HaveOccurred())

		frames := decodeFrames(buf[:n])
		Expect(frames).To(HaveLen(1))
		Expect(frames[0].Command).To(Equal(uint32(2)))
		Expect(string(frames[0].Payload)).To(Equal("world"))
	})

	It("[TC-CLI-002] fails Start with an error when nothing is listening", func() {
		port := allocPort()

		cfg := newTestConfig(port)
		cfg.ConnectTimeout = 50 * time.Millisecond

		cli := client.New(cfg, nil, nil, nil)
		Expect(cli.Init()).NotTo(HaveOccurred())
		Expect(cli.Open()).NotTo(HaveOccurred())

		err := cli.Start()
		Expect(err).To(HaveOccurred())
	})

	It("[TC-CLI-003] tears the session down when the peer resets", func() {
		port := allocPort()
		lis, err := net.Listen("tcp", netAddr(port))
		Expect(err).NotTo(HaveOccurred())
		defer lis.Close()

		accepted := make(chan net.Conn, 1)
		go func() {
			c, aerr := lis.Accept()
			if aerr == nil {
				accepted <- c
			}
		}()

		cfg := newTestConfig(port)
		fc := &frameCollector{}
		cli := client.New(cfg, nil, nil, fc.onFrame)
		Expect(cli.Init()).NotTo(HaveOccurred())
		Expect(cli.Open()).NotTo(HaveOccurred())
		Expect(cli.Start()).NotTo(HaveOccurred())

		var peer net.Conn
		Eventually(accepted, "2s", "5ms").Should(Receive(&peer))
		Expect(peer.Close()).NotTo(HaveOccurred())

		Eventually(func() ipc.State {
			_ = cli.Check()
			return cli.State()
		}, "2s", "5ms").Should(Equal(ipc.StateClosed))
	})

	It("[TC-CLI-004] rejects an oversize frame header and closes the session", func() {
		port := allocPort()
		lis, err := net.Listen("tcp", netAddr(port))
		Expect(err).NotTo(HaveOccurred())
		defer lis.Close()

		accepted := make(chan net.Conn, 1)
		go func() {
			c, aerr := lis.Accept()
			if aerr == nil {
				accepted <- c
			}
		}()

		cfg := newTestConfig(port)
		cli := client.New(cfg, nil, nil, nil)
		Expect(cli.Init()).NotTo(HaveOccurred())
		Expect(cli.Open()).NotTo(HaveOccurred())
		Expect(cli.Start()).NotTo(HaveOccurred())

		var peer net.Conn
		Eventually(accepted, "2s", "5ms").Should(Receive(&peer))
		defer peer.Close()

		h := make([]byte, ipc.HeaderLength)
		h[0] = ipc.FrameVersion
		copy(h[1:4], ipc.FrameMagic)
		binary.BigEndian.PutUint32(h[4:8], uint32(ipc.MaxFrameLength+1))

		_, err = peer.Write(h)
		Expect(err).NotTo(HaveOccurred())

		Eventually(func() ipc.State {
			_ = cli.Check()
			return cli.State()
		}, "2s", "5ms").Should(Equal(ipc.StateClosed))
	})

	It("[TC-CLI-005] closes the session on a frame too large for the read buffer", func() {
		port := allocPort()
		lis, err := net.Listen("tcp", netAddr(port))
		Expect(err).NotTo(HaveOccurred())
		defer lis.Close()

		accepted := make(chan net.Conn, 1)
		go func() {
			c, aerr := lis.Accept()
			if aerr == nil {
				accepted <- c
			}
		}()

		cfg := newTestConfig(port)
		cfg.BufferSize = 128
		cli := client.New(cfg, nil, nil, nil)
		Expect(cli.Init()).NotTo(HaveOccurred())
		Expect(cli.Open()).NotTo(HaveOccurred())
		Expect(cli.Start()).NotTo(HaveOccurred())

		var peer net.Conn
		Eventually(accepted, "2s", "5ms").Should(Receive(&peer))
		defer peer.Close()

		h := make([]byte, ipc.HeaderLength)
		h[0] = ipc.FrameVersion
		copy(h[1:4], ipc.FrameMagic)
		binary.BigEndian.PutUint32(h[4:8], uint32(cfg.BufferSize+1))

		_, err = peer.Write(h)
		Expect(err).NotTo(HaveOccurred())

		Eventually(func() ipc.State {
			_ = cli.Check()
			return cli.State()
		}, "2s", "5ms").Should(Equal(ipc.StateClosed))
	})
})
