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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ray820328/rbase/ipc"
	"github.com/ray820328/rbase/logger"
	"github.com/ray820328/rbase/metrics"
	"github.com/ray820328/rbase/rsocket/server"
)

func newServeCommand(configPath *string) *cobra.Command {
	var ip string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the echo server reactor until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()
			cfg, err := loadConfig(*configPath, ip, port, log)
			if err != nil {
				return err
			}

			met := metrics.New(prometheus.NewRegistry(), "rbase_echo_server")

			var srv *server.Context
			srv = server.New(cfg, log, met, func(sessionID uint64, f *ipc.Frame) {
				log.WithFields(logger.Fields{
					"session": sessionID,
					"command": f.Command,
					"bytes":   len(f.Payload),
				}).Info("echoing frame back")
				if err := srv.Send(sessionID, f); err != nil {
					log.WithFields(logger.Fields{"error": err.Error()}).Warn("echo send failed")
				}
			})

			if err := srv.Init(); err != nil {
				return err
			}
			if err := srv.Open(); err != nil {
				return err
			}
			if err := srv.Start(); err != nil {
				return err
			}
			log.WithFields(logger.Fields{"ip": cfg.IP, "port": cfg.Port}).Info("server started")

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			ticker := time.NewTicker(5 * time.Millisecond)
			defer ticker.Stop()

			for {
				select {
				case <-sigCh:
					log.Info("shutting down")
					_ = srv.Stop()
					_ = srv.Close()
					return srv.Uninit()
				case <-ticker.C:
					if err := srv.Check(); err != nil {
						log.WithFields(logger.Fields{"error": err.Error()}).Error("check failed")
					}
				}
			}
		},
	}

	cmd.Flags().StringVar(&ip, "ip", "0.0.0.0", "address to bind")
	cmd.Flags().IntVar(&port, "port", 9630, "port to bind")
	return cmd
}
