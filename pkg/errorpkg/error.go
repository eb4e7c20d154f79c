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

// Package errorpkg defines the typed error kinds the engine can raise,
// plus a helper for turning a recover() value into an error.
package errorpkg

import "fmt"

// BindingError is raised when a named callable cannot be resolved by
// the Callable Binder. It is fatal for the Submission or Pool that
// requested the binding, and for nothing else.
type BindingError struct {
	Name string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("binding error: callable %q could not be resolved", e.Name)
}

// InitializationError wraps a fault raised by a Pool's initialization
// closure inside a single Worker. That Worker exits; every other
// Worker in the Pool keeps running.
type InitializationError struct {
	WorkerID uint64
	Cause    error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("worker %d: initialization failed: %v", e.WorkerID, e.Cause)
}

func (e *InitializationError) Unwrap() error { return e.Cause }

// ItemError wraps a fault the user callable raised for a specific
// input. The engine does not construct it: workerpool.Result.Err holds
// the callable's own error (or the recovered panic), and the error
// stream pairs it with its input index via workerpool.IndexedError.
type ItemError struct {
	Index uint64
	Cause error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Cause)
}

func (e *ItemError) Unwrap() error { return e.Cause }

// ShutdownError is raised synchronously to a caller that attempts an
// operation against a Pool or Submission after Close has been called.
type ShutdownError struct {
	Op string
}

func (e *ShutdownError) Error() string {
	return fmt.Sprintf("%s: pool is closed", e.Op)
}

// Error turns a recover() value into an error, wrapping it as-is if it
// already is one.
func Error(recovered any) error {
	if recovered == nil {
		return nil
	}
	if err, ok := recovered.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", recovered)
}
