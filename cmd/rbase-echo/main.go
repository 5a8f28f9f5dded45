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

// Command rbase-echo is a small demo binary wiring one server reactor
// and one client reactor together over a real TCP loopback connection,
// echoing every frame the server receives back to the client it came
// from.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ray820328/rbase/config"
	"github.com/ray820328/rbase/logger"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "rbase-echo",
		Short: "Demo server/client pair for the rbase IPC transport",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a reactor config file (yaml/json/toml)")

	root.AddCommand(newServeCommand(&configPath))
	root.AddCommand(newEchoCommand(&configPath))

	return root
}

func loadConfig(path string, ip string, port int, log logger.Logger) (*config.Config, error) {
	if path != "" {
		return config.Load(path, log, nil)
	}
	cfg := &config.Config{
		SidMin: 1,
		SidMax: 65535,
		IP:     ip,
		Port:   port,
	}
	cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
