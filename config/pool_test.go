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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadPoolConfig_NoPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadPoolConfig("")
	assert.NoError(t, err)
	assert.Equal(t, NewDefaultPoolConfig(), cfg)
}

func TestLoadPoolConfig_TomlOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.toml")
	assert.NoError(t, os.WriteFile(path, []byte("threads = 16\nqueue-warn-depth = 2048\n"), 0o600))

	cfg, err := LoadPoolConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, 16, cfg.Threads)
	assert.Equal(t, 2048, cfg.QueueWarnDepth)
}

func TestLoadPoolConfig_EnvOverridesToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.toml")
	assert.NoError(t, os.WriteFile(path, []byte("threads = 4\n"), 0o600))

	t.Setenv("THREADS", "9")
	cfg, err := LoadPoolConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, 9, cfg.Threads)
}

func TestLoadPoolConfig_ZeroThreadsNormalizedToOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.toml")
	assert.NoError(t, os.WriteFile(path, []byte("threads = 0\n"), 0o600))

	cfg, err := LoadPoolConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, 1, cfg.Threads)
}

func TestLoadPoolConfig_MissingFileErrors(t *testing.T) {
	_, err := LoadPoolConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(t, err)
}
