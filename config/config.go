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

// Package config carries the reactor configuration (§6) plus the
// ambient tuning knobs every reactor needs in practice, loaded through
// viper and validated with go-playground/validator the way the
// teacher's component configs are.
package config

import (
	"fmt"
	"time"

	libval "github.com/go-playground/validator/v10"

	liberr "github.com/ray820328/rbase/errors"
	"github.com/ray820328/rbase/ipc"
)

// Config is shared by both the server and the client reactor; fields
// only one side consumes are simply ignored by the other (sid_min/
// sid_max by the client, connect_timeout by the server, ...).
type Config struct {
	// ID identifies this reactor instance in logs and metrics.
	ID uint64 `mapstructure:"id" json:"id" yaml:"id"`

	// SidMin/SidMax bound the session id counter (server only).
	SidMin uint64 `mapstructure:"sid_min" json:"sid_min" yaml:"sid_min" validate:"required"`
	SidMax uint64 `mapstructure:"sid_max" json:"sid_max" yaml:"sid_max" validate:"required,gtefield=SidMin"`

	// IP is IPv4 text, "0.0.0.0" meaning any local address.
	IP   string `mapstructure:"ip" json:"ip" yaml:"ip" validate:"required,ip4_addr"`
	Port int    `mapstructure:"port" json:"port" yaml:"port" validate:"required,min=1,max=65535"`

	// Backlog is the listen() backlog; 0 means the §4.6 default (128).
	Backlog int `mapstructure:"backlog" json:"backlog" yaml:"backlog" validate:"gte=0"`

	// SockFlag is a bit field selecting from the §4.1 socket option set
	// (one bit per rsocket.SockOpt ordinal), applied right after Create.
	SockFlag uint32 `mapstructure:"sock_flag" json:"sock_flag" yaml:"sock_flag"`

	// EncryptMsg is reserved and currently ignored by the core: TLS is
	// an explicit non-goal, but the field round-trips so a
	// TLS-capable peer's config still parses here.
	EncryptMsg bool `mapstructure:"encrypt_msg" json:"encrypt_msg" yaml:"encrypt_msg"`

	// AcceptBurst bounds the listener's per-check accept loop (§4.6).
	AcceptBurst int `mapstructure:"accept_burst" json:"accept_burst" yaml:"accept_burst" validate:"gte=0"`

	// ConnectTimeout bounds the client's non-blocking connect (§4.7).
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" json:"connect_timeout" yaml:"connect_timeout"`

	// PollTimeoutServer/PollTimeoutClient are the poll(timeout_ms)
	// values each reactor's check loop passes to its Container.
	PollTimeoutServer time.Duration `mapstructure:"poll_timeout_server" json:"poll_timeout_server" yaml:"poll_timeout_server"`
	PollTimeoutClient time.Duration `mapstructure:"poll_timeout_client" json:"poll_timeout_client" yaml:"poll_timeout_client"`

	// BufferSize is the fixed capacity given to every data source's
	// read_cache and write_buff.
	BufferSize int `mapstructure:"buffer_size" json:"buffer_size" yaml:"buffer_size" validate:"gte=0"`
}

// Defaults applies every default mentioned in §4.6/§4.7/§3 to zero
// fields, in place.
func (c *Config) Defaults() {
	if c.Backlog == 0 {
		c.Backlog = 128
	}
	if c.AcceptBurst == 0 {
		c.AcceptBurst = 10
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 3 * time.Second
	}
	if c.PollTimeoutClient == 0 {
		c.PollTimeoutClient = 10 * time.Millisecond
	}
	if c.BufferSize == 0 {
		c.BufferSize = ipc.DefaultBufferSize
	}
}

// Validate checks every struct tag above and reports every violated
// constraint chained onto one liberr.Error, the same shape the
// teacher's component configs return from their own Validate().
func (c *Config) Validate() liberr.Error {
	e := ErrValidation.Error()

	if err := libval.New().Struct(c); err != nil {
		if ive, ok := err.(*libval.InvalidValidationError); ok {
			e.Add(ive)
		} else if ves, ok := err.(libval.ValidationErrors); ok {
			for _, fe := range ves {
				e.Add(fmt.Errorf("config field '%s' fails constraint '%s'", fe.Namespace(), fe.ActualTag()))
			}
		} else {
			e.Add(err)
		}
	}

	if !e.HasParent() {
		return nil
	}
	return e
}
