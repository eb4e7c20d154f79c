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

	"gopkg.in/yaml.v3"
)

// jobConfig is the shape of a --config file: a named transform plus the
// fixed ArgMap forwarded to every invocation. It exists so a run can be
// reproduced from a checked-in file instead of a long flag line.
type jobConfig struct {
	Transform string         `yaml:"transform"`
	Args      map[string]any `yaml:"args"`
}

func loadJobConfig(path string) (jobConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return jobConfig{}, err
	}
	var cfg jobConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return jobConfig{}, err
	}
	return cfg, nil
}
