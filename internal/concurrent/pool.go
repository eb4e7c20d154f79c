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

// Package concurrent implements the untyped engine behind the public
// workerpool package: a fixed-capacity, lazily-admitted set of
// goroutines draining one shared, unbounded input queue.
package concurrent

import (
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/cspotcode/MadMultithreading/metrics"
	"github.com/cspotcode/MadMultithreading/pkg/errorpkg"
	"github.com/cspotcode/MadMultithreading/pkg/logger"
)

//go:generate mockgen -source=./pool.go -destination=./pool_mock.go -package=concurrent

// Task is one unit of work placed on the Pool's shared input queue.
// handle closes over everything a single Submission's item needs
// (the value, the bound callable, its extra arguments and its result
// sink); Pool itself never looks inside the closure, which is what
// lets one untyped Pool serve many differently-typed Submissions at
// once.
type Task struct {
	// Index is used only for logging/metrics correlation; ordering is
	// the Submission-side Ordering Merger's job, not the Pool's.
	Index uint64

	handle      func()
	panicHandle func(error)
	createTime  time.Time
}

// NewTask builds a Task. panicHandle, if non-nil, is invoked with the
// recovered value if handle panics; handle itself never kills the
// worker that runs it.
func NewTask(index uint64, handle func(), panicHandle func(error)) *Task {
	return &Task{
		Index:       index,
		handle:      handle,
		panicHandle: panicHandle,
		createTime:  time.Now(),
	}
}

// workerState is one worker's reported status: idle or busy.
type workerState int

const (
	stateIdle workerState = iota
	stateBusy
)

// Pool owns the shared input queue and the lazily-admitted worker set.
// It is safe for concurrent use by many Submissions.
type Pool struct {
	name       string
	maxWorkers int

	inputQueue *Queue[*Task]

	// admitMu serializes admission decisions and all mutation of
	// workers/nextWorkerID: both are mutated only under the admission
	// mutex.
	admitMu      sync.Mutex
	workers      map[uint64]struct{}
	nextWorkerID uint64

	// statusMu guards threadStatus; workers write only their own
	// entry, admission reads the whole map.
	statusMu     sync.Mutex
	threadStatus map[uint64]workerState

	initFn func() error

	stopped atomic.Bool
	wg      sync.WaitGroup

	stats  *metrics.ConcurrentStatistics
	logger logger.Logger

	// queueWarnDepth, when non-zero, logs a warning the first time the
	// input queue backlog crosses it, and clears once it falls back
	// under, so a sustained backlog logs once instead of once per Task.
	queueWarnDepth int
	backlogWarned  atomic.Bool
}

// Option configures a Pool at construction time.
type Option func(*Pool)

// WithInit installs the Pool's initialization closure: it runs once,
// synchronously, at the start of every worker's life, before that
// worker takes its first Task.
func WithInit(fn func() error) Option {
	return func(p *Pool) { p.initFn = fn }
}

// WithStatistics attaches Prometheus instrumentation to the Pool.
func WithStatistics(stats *metrics.ConcurrentStatistics) Option {
	return func(p *Pool) { p.stats = stats }
}

// WithName sets the Pool's name, used for logging and metrics labels.
func WithName(name string) Option {
	return func(p *Pool) { p.name = name }
}

// WithQueueWarnDepth sets the input queue backlog depth above which
// Submit logs a warning. Zero (the default) disables the check.
func WithQueueWarnDepth(depth int) Option {
	return func(p *Pool) { p.queueWarnDepth = depth }
}

// NewPool creates a Pool with the given maximum number of workers.
// Requests for fewer than one worker are normalized up to one. No
// worker is started until the first Task is submitted.
func NewPool(maxWorkers int, opts ...Option) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	p := &Pool{
		name:         "default",
		maxWorkers:   maxWorkers,
		inputQueue:   NewQueue[*Task](),
		workers:      make(map[uint64]struct{}),
		threadStatus: make(map[uint64]workerState),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logger.GetLogger("Pool", p.name)
	if p.stats == nil {
		p.stats = metrics.NewConcurrentStatistics(nil, p.name)
	}
	return p
}

// Stopped reports whether Close has been called.
func (p *Pool) Stopped() bool { return p.stopped.Load() }

// Submit admits an additional worker if the idle-first reuse policy
// allows it, then enqueues task onto the shared input queue. It
// returns a *errorpkg.ShutdownError if the Pool is already closed.
func (p *Pool) Submit(task *Task) error {
	if p.Stopped() {
		return &errorpkg.ShutdownError{Op: "submit"}
	}
	p.admitWorkerIfNeeded()
	p.inputQueue.Push(task)
	p.stats.TasksSubmitted.Inc()
	p.checkQueueBacklog()
	return nil
}

// checkQueueBacklog warns once when the input queue backlog crosses
// queueWarnDepth, and re-arms once it drains back under so a sustained
// backlog is reported once per episode rather than on every Submit.
func (p *Pool) checkQueueBacklog() {
	if p.queueWarnDepth <= 0 {
		return
	}
	depth := p.inputQueue.Len()
	if depth > p.queueWarnDepth {
		if !p.backlogWarned.Swap(true) {
			p.logger.Warn("input queue backlog exceeds warn depth",
				logger.Int("depth", depth), logger.Int("warnDepth", p.queueWarnDepth))
		}
		return
	}
	p.backlogWarned.Store(false)
}

// admitWorkerIfNeeded admits one more worker iff the Pool is below
// capacity AND no worker currently reports Idle. Checking
// capacity/idleness without a lock before deciding to spawn would be a
// benign race (it could admit one worker more than strictly needed);
// it's closed here by taking admitMu for the whole check-and-spawn
// sequence, so at most one worker is ever admitted per call and the
// cap is never exceeded.
func (p *Pool) admitWorkerIfNeeded() {
	p.admitMu.Lock()
	defer p.admitMu.Unlock()

	if len(p.workers) >= p.maxWorkers {
		return
	}
	if p.anyIdle() {
		return
	}

	id := p.nextWorkerID
	p.nextWorkerID++
	p.workers[id] = struct{}{}

	p.wg.Add(1)
	p.stats.IncWorkersAlive()
	w := &worker{id: id, pool: p}
	go w.run()
}

// anyIdle reports whether threadStatus currently has any worker in
// stateIdle. It is not on any correctness path: a stale read only ever
// causes the admission rule to be conservative.
func (p *Pool) anyIdle() bool {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	for _, s := range p.threadStatus {
		if s == stateIdle {
			return true
		}
	}
	return false
}

func (p *Pool) setStatus(id uint64, s workerState) {
	p.statusMu.Lock()
	p.threadStatus[id] = s
	p.statusMu.Unlock()
}

func (p *Pool) clearStatus(id uint64) {
	p.statusMu.Lock()
	delete(p.threadStatus, id)
	p.statusMu.Unlock()
}

func (p *Pool) removeWorker(id uint64) {
	p.admitMu.Lock()
	delete(p.workers, id)
	p.admitMu.Unlock()
}

// Close stops accepting new producers on the input queue, abandoning
// whatever is still queued, then waits for every worker currently
// running a Task to finish that Task before returning. Workers MUST
// NOT be relied upon to close any Submission's result queue; that
// remains the Submission's job, since one Pool serves many concurrent
// Submissions.
func (p *Pool) Close() {
	if p.stopped.Swap(true) {
		return
	}
	dropped := p.inputQueue.Abandon()
	if dropped > 0 {
		p.logger.Info("pool closed with tasks still queued", logger.Int("abandoned", dropped))
	}
	p.wg.Wait()
}

// worker is a long-lived consumer of the Pool's shared input queue.
type worker struct {
	id   uint64
	pool *Pool
}

func (w *worker) run() {
	var initFailed bool
	// If this worker never made it past initialization, its slot in
	// the admission count is freed by the defers below before this
	// runs; retry once so a transient init fault doesn't strand
	// whatever work is already queued.
	defer func() {
		if initFailed && !w.pool.Stopped() {
			w.pool.admitWorkerIfNeeded()
		}
	}()
	defer w.pool.wg.Done()
	defer w.pool.clearStatus(w.id)
	defer w.pool.removeWorker(w.id)
	defer w.pool.stats.DecWorkersAlive()

	w.pool.setStatus(w.id, stateIdle)

	if w.pool.initFn != nil {
		if err := w.safeInit(); err != nil {
			w.pool.logger.Error("worker initialization failed, exiting",
				logger.Uint64("worker", w.id), logger.Error(err))
			initFailed = true
			return
		}
	}

	for {
		task, ok := w.pool.inputQueue.Pop()
		if !ok {
			break
		}
		w.pool.setStatus(w.id, stateBusy)
		w.exec(task)
		w.pool.setStatus(w.id, stateIdle)
	}
}

func (w *worker) safeInit() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &errorpkg.InitializationError{WorkerID: w.id, Cause: errorpkg.Error(r)}
		}
	}()
	return w.pool.initFn()
}

func (w *worker) exec(task *Task) {
	w.pool.stats.UpdateWaitingTime(task.createTime)
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			w.pool.stats.TasksPanic.Inc()
			err := errorpkg.Error(r)
			w.pool.logger.Error("panic while executing task",
				logger.Uint64("worker", w.id), logger.Uint64("task", task.Index),
				logger.Error(err), logger.Stack())
			if task.panicHandle != nil {
				task.panicHandle(err)
			}
		}
		w.pool.stats.UpdateExecutingTime(start)
		w.pool.stats.TasksConsumed.Inc()
	}()
	task.handle()
}
