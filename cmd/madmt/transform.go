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
	"fmt"
	"strings"
	"time"

	"github.com/cspotcode/MadMultithreading/workerpool"
)

// transformFunc is the shape every named transform below implements:
// spec.md's callable, specialized to string in, string out.
type transformFunc func(string, workerpool.ArgMap) (*string, error)

// transforms are the named callables cmd/madmt can bind by name. Each
// is deliberately small: this CLI exists to drive the engine, not to
// be a text-processing tool in its own right.
var transforms = map[string]transformFunc{
	"identity": func(line string, _ workerpool.ArgMap) (*string, error) {
		return &line, nil
	},
	"upper": func(line string, _ workerpool.ArgMap) (*string, error) {
		out := strings.ToUpper(line)
		return &out, nil
	},
	"reverse": func(line string, _ workerpool.ArgMap) (*string, error) {
		runes := []rune(line)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		out := string(runes)
		return &out, nil
	},
	// sleep demonstrates a callable that blocks on ArgMap-supplied
	// duration, and intentionally suppresses output for blank lines
	// by returning a nil *string, which workerpool.Run never sends on
	// its value stream.
	"sleep": func(line string, args workerpool.ArgMap) (*string, error) {
		if strings.TrimSpace(line) == "" {
			return nil, nil
		}
		d := 10 * time.Millisecond
		if raw, ok := args["delay"]; ok {
			if s, ok := raw.(string); ok {
				if parsed, err := time.ParseDuration(s); err == nil {
					d = parsed
				}
			}
		}
		time.Sleep(d)
		return &line, nil
	},
	"fail-on-empty": func(line string, _ workerpool.ArgMap) (*string, error) {
		if strings.TrimSpace(line) == "" {
			return nil, fmt.Errorf("empty line")
		}
		return &line, nil
	},
}

func lookupTransform(name string) (transformFunc, error) {
	fn, ok := transforms[name]
	if !ok {
		return nil, fmt.Errorf("unknown transform %q (available: identity, upper, reverse, sleep, fail-on-empty)", name)
	}
	return fn, nil
}
