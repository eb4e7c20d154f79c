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

package workerpool

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerger_InOrderArrivalEmitsImmediately(t *testing.T) {
	var m merger[int]
	for i := 0; i < 3; i++ {
		ready := m.onResult(Result[int]{Index: uint64(i)})
		assert.Len(t, ready, 1)
		assert.Equal(t, uint64(i), ready[0].Index)
	}
}

func TestMerger_OutOfOrderBuffersUntilGapFills(t *testing.T) {
	var m merger[int]

	ready := m.onResult(Result[int]{Index: 2})
	assert.Empty(t, ready)

	ready = m.onResult(Result[int]{Index: 1})
	assert.Empty(t, ready)

	ready = m.onResult(Result[int]{Index: 0})
	assert.Len(t, ready, 3)
	for i, r := range ready {
		assert.Equal(t, uint64(i), r.Index)
	}
}

func TestMerger_RandomPermutationEmitsAscending(t *testing.T) {
	const n = 500
	order := rand.Perm(n)

	var m merger[int]
	var emitted []uint64
	for _, idx := range order {
		ready := m.onResult(Result[int]{Index: uint64(idx)})
		for _, r := range ready {
			emitted = append(emitted, r.Index)
		}
	}

	assert.Len(t, emitted, n)
	for i, idx := range emitted {
		assert.Equal(t, uint64(i), idx)
	}
}
