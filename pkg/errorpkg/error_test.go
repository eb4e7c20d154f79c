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

package errorpkg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_NilRecoverIsNil(t *testing.T) {
	assert.NoError(t, Error(nil))
}

func TestError_WrapsNonErrorPanic(t *testing.T) {
	err := Error("kaboom")
	assert.EqualError(t, err, "panic: kaboom")
}

func TestError_PassesThroughErrorPanic(t *testing.T) {
	want := errors.New("boom")
	assert.Equal(t, want, Error(want))
}

func TestInitializationError_Unwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := &InitializationError{WorkerID: 3, Cause: cause}
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "worker 3")
}

func TestItemError_Unwraps(t *testing.T) {
	cause := errors.New("bad input")
	err := &ItemError{Index: 7, Cause: cause}
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "item 7")
}

func TestShutdownError_Message(t *testing.T) {
	err := &ShutdownError{Op: "submit"}
	assert.Equal(t, "submit: pool is closed", err.Error())
}
