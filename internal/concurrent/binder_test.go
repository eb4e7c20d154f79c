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

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cspotcode/MadMultithreading/pkg/errorpkg"
)

func TestBind_NilFnFails(t *testing.T) {
	ref, err := Bind[int, int]("nilfn", nil)
	assert.Nil(t, ref)
	var bindErr *errorpkg.BindingError
	assert.ErrorAs(t, err, &bindErr)
	assert.Equal(t, "nilfn", bindErr.Name)
}

func TestBind_InvokeRoundTrips(t *testing.T) {
	ref, err := Bind("double", func(v int, args ArgMap) (int, error) {
		return v * 2, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "double", ref.Name())

	out, err := ref.Invoke(21, nil)
	assert.NoError(t, err)
	assert.Equal(t, 42, out)
}

func TestBind_InvokePropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	ref, err := Bind("fail", func(v int, args ArgMap) (int, error) {
		return 0, wantErr
	})
	assert.NoError(t, err)

	_, err = ref.Invoke(1, nil)
	assert.Equal(t, wantErr, err)
}

func TestBind_ArgsForwarded(t *testing.T) {
	ref, err := Bind("withArgs", func(v int, args ArgMap) (string, error) {
		prefix, _ := args["prefix"].(string)
		return prefix, nil
	})
	assert.NoError(t, err)

	out, err := ref.Invoke(0, ArgMap{"prefix": "hi"})
	assert.NoError(t, err)
	assert.Equal(t, "hi", out)
}
