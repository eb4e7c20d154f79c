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
	"sync"
	"sync/atomic"

	"github.com/cspotcode/MadMultithreading/internal/concurrent"
)

// Submission is one call's worth of state: the bound callable, its
// fixed extra arguments, its own result queue, and the ordering merger
// that restores caller order when sort is requested. Several
// Submissions may run concurrently against the same Pool; each only
// ever sees its own results because each owns its own result queue.
type Submission[I, O any] struct {
	pool  *Pool
	bound *concurrent.CallableRef[I, *O]
	args  ArgMap

	wait bool // false => fire-and-forget, no resultQueue
	sort bool

	nextIndex     atomic.Uint64
	receivedCount atomic.Uint64

	resultQueue *concurrent.Queue[Result[O]]

	closeOnce sync.Once

	merger merger[O]
}

// Begin binds fn under the given name and allocates the Submission's
// result queue (unless wait is false, i.e. fire-and-forget).
func Begin[I, O any](pool *Pool, name string, fn func(I, ArgMap) (*O, error), args ArgMap, wait, sort bool) (*Submission[I, O], error) {
	bound, err := concurrent.Bind[I, *O](name, fn)
	if err != nil {
		return nil, err
	}
	s := &Submission[I, O]{
		pool:  pool,
		bound: bound,
		args:  args,
		wait:  wait,
		sort:  sort,
	}
	if wait {
		s.resultQueue = concurrent.NewQueue[Result[O]]()
	}
	return s, nil
}

// Submit enqueues one input item, performed once per pipeline element.
// The caller is responsible for calling drainInto/finishInto to read
// back results; Submit itself never blocks on the result queue.
func (s *Submission[I, O]) Submit(value I) error {
	if s.pool.Stopped() {
		return errShutdown
	}
	index := s.nextIndex.Add(1) - 1

	sink := s.resultQueue
	task := concurrent.NewTask(index, func() {
		out, err := s.bound.Invoke(value, s.args)
		if sink == nil {
			return
		}
		sink.Push(Result[O]{Index: index, Value: out, Err: err})
	}, func(panicErr error) {
		if sink == nil {
			return
		}
		sink.Push(Result[O]{Index: index, Err: panicErr})
	})
	return s.pool.engine.Submit(task)
}

// drainInto performs a non-blocking drain of whatever results are
// already buffered, pushing ready (possibly reordered) results onto
// values/errs. Used after every Submit so a long-running stream stays
// bounded in memory instead of buffering every result until Finish.
func (s *Submission[I, O]) drainInto(values chan<- Result[O], errs chan<- *IndexedError) {
	if s.resultQueue == nil {
		return
	}
	for {
		r, ok := s.resultQueue.TryPop()
		if !ok {
			return
		}
		s.receivedCount.Add(1)
		s.onResult(r, values, errs)
	}
}

// finishInto block-consumes the result queue until every submitted
// item has produced a result, then releases the queue. If wait is
// false, it returns immediately: no output was ever going to be
// produced.
func (s *Submission[I, O]) finishInto(values chan<- Result[O], errs chan<- *IndexedError) {
	defer s.Close()
	if !s.wait {
		return
	}
	total := s.nextIndex.Load()
	for s.receivedCount.Load() < total {
		r, ok := s.resultQueue.Pop()
		if !ok {
			return
		}
		s.receivedCount.Add(1)
		s.onResult(r, values, errs)
	}
}

func (s *Submission[I, O]) onResult(r Result[O], values chan<- Result[O], errs chan<- *IndexedError) {
	emit := func(r Result[O]) {
		if r.Value != nil {
			values <- r
		}
		if r.Err != nil {
			errs <- &IndexedError{Index: r.Index, Err: r.Err}
		}
	}
	if !s.sort {
		emit(r)
		return
	}
	for _, ready := range s.merger.onResult(r) {
		emit(ready)
	}
}

// Close releases the Submission's result queue. Safe to call more than
// once and safe to call concurrently with a worker still publishing to
// it: the queue simply stops accepting pushes.
func (s *Submission[I, O]) Close() {
	s.closeOnce.Do(func() {
		if s.resultQueue != nil {
			s.resultQueue.Close()
		}
	})
}

// Cancel implements spec.md §4.6's caller-side interruption: stop
// submitting further items and drop the result queue. The Pool is
// never touched — it outlives this Submission and may still be
// serving other concurrent Submissions. Items already enqueued that a
// Worker later dequeues still run (a running call to the user callable
// cannot be preempted, per spec.md §5), but their Result is silently
// dropped because Close has already stopped the result queue from
// accepting pushes.
func (s *Submission[I, O]) Cancel() {
	s.Close()
}
