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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadJobConfig_ParsesTransformAndArgs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	content := "transform: sleep\nargs:\n  delay: 5ms\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := loadJobConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "sleep", cfg.Transform)
	assert.Equal(t, "5ms", cfg.Args["delay"])
}

func TestLoadJobConfig_MissingFileErrors(t *testing.T) {
	_, err := loadJobConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
