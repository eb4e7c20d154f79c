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

package concurrent

import "github.com/cspotcode/MadMultithreading/pkg/errorpkg"

// ArgMap is a finite mapping from argument name to value, forwarded
// unchanged to every invocation of a bound callable. A nil or empty
// ArgMap means "invoke with the pipeline item only".
type ArgMap map[string]any

// CallableRef is the Callable Binder's output: an opaque, reusable
// handle to a user function, bound once per Submission and invoked
// once per Item of that Submission.
//
// A dynamic host would resolve name at runtime and reconstruct the
// callable's source inside each worker's scope; a statically typed
// host has no such indirection to perform; the caller's Go closure is
// already directly invocable from any goroutine. CallableRef exists
// anyway so the binding step — and its one failure mode,
// BindingError — is represented explicitly anyway.
type CallableRef[I, O any] struct {
	name string
	fn   func(I, ArgMap) (O, error)
}

// Bind resolves name to fn, producing a CallableRef usable by every
// Item of one Submission. It fails with *errorpkg.BindingError if fn
// is nil — the one case where "the named function cannot be resolved"
// has a direct Go analogue.
func Bind[I, O any](name string, fn func(I, ArgMap) (O, error)) (*CallableRef[I, O], error) {
	if fn == nil {
		return nil, &errorpkg.BindingError{Name: name}
	}
	return &CallableRef[I, O]{name: name, fn: fn}, nil
}

// Name returns the symbol this callable was bound under.
func (c *CallableRef[I, O]) Name() string { return c.name }

// Invoke calls the bound callable with one Item's value and the
// Submission's fixed extra arguments.
func (c *CallableRef[I, O]) Invoke(value I, args ArgMap) (O, error) {
	return c.fn(value, args)
}
