// Licensed to LinDB under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. LinDB licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package config holds the TOML/env-driven configuration for a Pool,
// following the toml+env struct-tag convention used throughout lindb's
// own config package.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v7"
)

// PoolConfig configures one worker pool.
type PoolConfig struct {
	// Threads is the maximum number of workers the pool may admit.
	// Values below 1 are normalized to 1.
	Threads int `toml:"threads" env:"THREADS"`
	// QueueWarnDepth logs a warning once the input queue backlog
	// exceeds this many buffered items. Zero disables the check.
	QueueWarnDepth int `toml:"queue-warn-depth" env:"QUEUE_WARN_DEPTH"`
}

// NewDefaultPoolConfig returns the configuration a Pool uses when none
// is supplied explicitly.
func NewDefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Threads:        4,
		QueueWarnDepth: 1024,
	}
}

// LoadPoolConfig reads a PoolConfig from a TOML file at path, then
// overlays any THREADS/QUEUE_WARN_DEPTH environment variables on top,
// following lindb's own config/storage.go convention of pairing a
// `toml` tag with an `env` tag on the same struct field.
func LoadPoolConfig(path string) (PoolConfig, error) {
	cfg := NewDefaultPoolConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return PoolConfig{}, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return PoolConfig{}, err
	}
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	return cfg, nil
}
