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

package config

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	liberr "github.com/ray820328/rbase/errors"
	"github.com/ray820328/rbase/logger"
)

// Load reads a reactor Config from path (yaml/json/toml, detected by
// extension) through viper, falls back to environment variables with
// the same dotted keys (upper-cased, underscored), applies Defaults,
// and Validates before returning.
//
// If onChange is non-nil, viper watches path (via fsnotify) and calls
// onChange with the freshly re-unmarshaled and re-validated Config on
// every write; a reload that fails validation is logged and dropped,
// leaving the caller on its last-known-good Config.
func Load(path string, log logger.Logger, onChange func(*Config)) (*Config, error) {
	if log == nil {
		log = logger.Discard()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, ErrLoad.Error(err)
	}

	cfg, err := unmarshal(v)
	if err != nil {
		return nil, err
	}

	if onChange != nil {
		v.OnConfigChange(func(e fsnotify.Event) {
			reloaded, rerr := unmarshal(v)
			if rerr != nil {
				log.WithFields(logger.Fields{"path": e.Name, "error": rerr.Error()}).Error("config reload rejected")
				return
			}
			onChange(reloaded)
		})
		v.WatchConfig()
	}

	return cfg, nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ErrLoad.Error(err)
	}

	cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		var e liberr.Error = err
		return nil, e
	}
	return &cfg, nil
}
