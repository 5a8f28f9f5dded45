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

package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ray820328/rbase/ipc"
	"github.com/ray820328/rbase/logger"
	"github.com/ray820328/rbase/metrics"
	"github.com/ray820328/rbase/rsocket/client"
)

func newEchoCommand(configPath *string) *cobra.Command {
	var ip string
	var port int
	var message string

	cmd := &cobra.Command{
		Use:   "echo",
		Short: "Connect to a running server, send one frame, and print the reply",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()
			cfg, err := loadConfig(*configPath, ip, port, log)
			if err != nil {
				return err
			}

			met := metrics.New(prometheus.NewRegistry(), "rbase_echo_client")

			replies := make(chan *ipc.Frame, 1)
			cli := client.New(cfg, log, met, func(_ uint64, f *ipc.Frame) {
				replies <- f
			})

			if err := cli.Init(); err != nil {
				return err
			}
			if err := cli.Open(); err != nil {
				return err
			}
			if err := cli.Start(); err != nil {
				return err
			}
			defer func() {
				_ = cli.Close()
				_ = cli.Uninit()
			}()

			if err := cli.Send(&ipc.Frame{Command: 1, Payload: []byte(message)}); err != nil {
				return err
			}

			deadline := time.Now().Add(5 * time.Second)
			for time.Now().Before(deadline) {
				if err := cli.Check(); err != nil {
					return err
				}
				select {
				case f := <-replies:
					fmt.Printf("reply: command=%d payload=%q\n", f.Command, string(f.Payload))
					return nil
				default:
					time.Sleep(5 * time.Millisecond)
				}
			}
			return fmt.Errorf("no reply within the wait window")
		},
	}

	cmd.Flags().StringVar(&ip, "ip", "127.0.0.1", "server address")
	cmd.Flags().IntVar(&port, "port", 9630, "server port")
	cmd.Flags().StringVar(&message, "message", "ping", "payload to send")
	return cmd
}
