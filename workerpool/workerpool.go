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

// Package workerpool is the public façade over internal/concurrent: a
// reusable pool of goroutines that applies a user-supplied function to
// a stream of input items, returning results either in input order or
// completion order.
package workerpool

import (
	"context"
	"fmt"

	"github.com/cspotcode/MadMultithreading/internal/concurrent"
	"github.com/cspotcode/MadMultithreading/metrics"
	"github.com/cspotcode/MadMultithreading/pkg/errorpkg"
)

// ArgMap is a finite mapping from argument name to value, forwarded
// unchanged to every invocation of a bound callable.
type ArgMap = concurrent.ArgMap

//go:generate mockgen -source=./workerpool.go -destination=./engine_mock.go -package=workerpool

// poolEngine is the subset of *concurrent.Pool a Submission depends
// on, pulled out as an interface so Submission-level tests can
// substitute a mock instead of spinning up real goroutines.
type poolEngine interface {
	Submit(*concurrent.Task) error
	Stopped() bool
	Close()
}

// Pool owns a bounded, lazily-admitted set of workers shared by every
// Submission created against it.
type Pool struct {
	engine poolEngine
}

// PoolOption configures a Pool at construction time.
type PoolOption func(*poolConfig)

type poolConfig struct {
	name           string
	init           func() error
	statistics     *metrics.ConcurrentStatistics
	queueWarnDepth int
}

// WithPoolName sets the Pool's name, used in logs and Prometheus
// labels. Defaults to "default".
func WithPoolName(name string) PoolOption {
	return func(c *poolConfig) { c.name = name }
}

// WithPoolInit installs the closure every worker runs once, before
// taking its first item of work. A fault here terminates only the
// worker it happened in; other workers are unaffected.
func WithPoolInit(fn func() error) PoolOption {
	return func(c *poolConfig) { c.init = fn }
}

// WithPoolStatistics attaches Prometheus instrumentation to the Pool.
func WithPoolStatistics(stats *metrics.ConcurrentStatistics) PoolOption {
	return func(c *poolConfig) { c.statistics = stats }
}

// WithPoolQueueWarnDepth sets the input queue backlog depth above which
// the Pool logs a warning. Zero (the default) disables the check.
func WithPoolQueueWarnDepth(depth int) PoolOption {
	return func(c *poolConfig) { c.queueWarnDepth = depth }
}

// NewPool creates a Pool with the given maximum number of workers.
// threads < 1 is normalized to 1. No worker is started until the first
// Submission enqueues an item.
func NewPool(threads int, opts ...PoolOption) *Pool {
	cfg := &poolConfig{name: "default"}
	for _, opt := range opts {
		opt(cfg)
	}

	var engineOpts []concurrent.Option
	engineOpts = append(engineOpts, concurrent.WithName(cfg.name))
	if cfg.init != nil {
		engineOpts = append(engineOpts, concurrent.WithInit(cfg.init))
	}
	if cfg.statistics != nil {
		engineOpts = append(engineOpts, concurrent.WithStatistics(cfg.statistics))
	}
	if cfg.queueWarnDepth > 0 {
		engineOpts = append(engineOpts, concurrent.WithQueueWarnDepth(cfg.queueWarnDepth))
	}

	return &Pool{engine: concurrent.NewPool(threads, engineOpts...)}
}

// Close stops accepting new producers on the Pool's input queue,
// abandons whatever is still queued, and waits for in-flight items to
// finish. The caller must ensure no Submission is still submitting
// when Close is called, since the Pool outlives any one Submission.
func (p *Pool) Close() {
	p.engine.Close()
}

// Stopped reports whether Close has been called.
func (p *Pool) Stopped() bool { return p.engine.Stopped() }

// Result is one Submission's output for a single input item. A nil
// Value marks "the callable intentionally produced nothing" — distinct
// from a present zero value — and is suppressed from the value stream.
// Err may be set even when Value is nil.
type Result[O any] struct {
	Index uint64
	Value *O
	Err   error
}

// IndexedError associates an error with the input index that produced
// it, preserving that association across reordering.
type IndexedError struct {
	Index uint64
	Err   error
}

func (e *IndexedError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *IndexedError) Unwrap() error { return e.Err }

// RunOption configures one Submission.
type RunOption func(*runConfig)

type runConfig struct {
	args   ArgMap
	noWait bool
	noSort bool
}

// WithArgs supplies the fixed extra arguments forwarded to every
// invocation of the bound callable for this Submission.
func WithArgs(args ArgMap) RunOption {
	return func(c *runConfig) { c.args = args }
}

// NoWait makes the Submission fire-and-forget: no worker result is
// ever delivered back to the caller, including errors (spec.md §9,
// open question 2 — silently dropped, same as the source behavior
// this spec was distilled from). ConcurrentStatistics.TasksConsumed
// still counts every executed item and TasksPanic every panicking
// call; an error returned by the callable is not counted separately.
func NoWait() RunOption {
	return func(c *runConfig) { c.noWait = true }
}

// NoSort makes the Submission emit results in completion order instead
// of input order.
func NoSort() RunOption {
	return func(c *runConfig) { c.noSort = true }
}

// Run is spec.md §6's RunOn: it binds fn, drives every value read from
// inputs through pool, and returns a value stream and an error stream.
// Both channels are closed once inputs is drained and every submitted
// item has produced a result (or, for NoWait, immediately).
//
// If noSort was not requested, values and errors are each delivered in
// ascending input-index order relative to themselves. A Result with a
// nil Value is never sent on the value stream; if that item also
// failed, its error still arrives on the error stream, carrying the
// item's input index in IndexedError.Index.
func Run[I, O any](
	ctx context.Context,
	pool *Pool,
	name string,
	fn func(I, ArgMap) (*O, error),
	inputs <-chan I,
	opts ...RunOption,
) (<-chan Result[O], <-chan *IndexedError, error) {
	cfg := &runConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	sub, err := Begin[I, O](pool, name, fn, cfg.args, !cfg.noWait, !cfg.noSort)
	if err != nil {
		return nil, nil, err
	}

	values := make(chan Result[O])
	errs := make(chan *IndexedError)

	go func() {
		defer close(values)
		defer close(errs)

		for {
			select {
			case <-ctx.Done():
				sub.Cancel()
				return
			case v, ok := <-inputs:
				if !ok {
					sub.finishInto(values, errs)
					return
				}
				if err := sub.Submit(v); err != nil {
					return
				}
				sub.drainInto(values, errs)
			}
		}
	}()

	return values, errs, nil
}

// errShutdown is returned by Submission methods called after Close.
var errShutdown = &errorpkg.ShutdownError{Op: "submission"}
