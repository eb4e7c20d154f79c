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

// Package metrics exposes Prometheus instrumentation for the
// worker-pool engine. It fills in the ConcurrentStatistics shape that
// internal/concurrent.Pool references (WorkersAlive, TasksConsumed,
// etc.) with real Prometheus Counters/Gauges/Histograms.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

// ConcurrentStatistics holds the counters and gauges for one named
// Pool instance. A process that creates several pools should create
// one ConcurrentStatistics per pool, each with a distinct name.
type ConcurrentStatistics struct {
	name string

	// WorkersAlive tracks the current worker count as an atomic
	// counter, mirrored into the exported workers_alive gauge. The
	// Pool's admission check does not read it; it counts the Pool's
	// own worker set.
	WorkersAlive   *atomic.Int64
	WorkersCreated prometheus.Counter
	WorkersKilled  prometheus.Counter

	TasksSubmitted prometheus.Counter
	TasksConsumed  prometheus.Counter
	TasksPanic     prometheus.Counter
	TasksRejected  prometheus.Counter

	TasksWaitingTime   prometheus.Histogram
	TasksExecutingTime prometheus.Histogram

	workersAliveGauge prometheus.Gauge
}

// NewConcurrentStatistics registers and returns a new set of Pool
// metrics under the given name, using labels so multiple pools can
// share one Prometheus registry without collisions. Pass
// prometheus.DefaultRegisterer explicitly to expose a pool on the
// process-wide /metrics endpoint; a nil registry gets its own private
// *prometheus.Registry so two pools that happen to share a name (e.g.
// two independently-constructed Pools both left at the "default" name)
// never collide on registration.
func NewConcurrentStatistics(registry prometheus.Registerer, name string) *ConcurrentStatistics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	constLabels := prometheus.Labels{"pool": name}

	s := &ConcurrentStatistics{
		name:         name,
		WorkersAlive: atomic.NewInt64(0),
		WorkersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "madmt", Subsystem: "pool", Name: "workers_created_total",
			Help: "total number of workers ever started", ConstLabels: constLabels,
		}),
		WorkersKilled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "madmt", Subsystem: "pool", Name: "workers_killed_total",
			Help: "total number of workers ever stopped", ConstLabels: constLabels,
		}),
		TasksSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "madmt", Subsystem: "pool", Name: "tasks_submitted_total",
			Help: "total number of tasks enqueued", ConstLabels: constLabels,
		}),
		TasksConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "madmt", Subsystem: "pool", Name: "tasks_consumed_total",
			Help: "total number of tasks executed to completion", ConstLabels: constLabels,
		}),
		TasksPanic: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "madmt", Subsystem: "pool", Name: "tasks_panic_total",
			Help: "total number of tasks whose handle panicked", ConstLabels: constLabels,
		}),
		TasksRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "madmt", Subsystem: "pool", Name: "tasks_rejected_total",
			Help: "total number of tasks rejected because their submit context was done", ConstLabels: constLabels,
		}),
		TasksWaitingTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "madmt", Subsystem: "pool", Name: "task_waiting_seconds",
			Help: "time a task spent queued before a worker picked it up", ConstLabels: constLabels,
			Buckets: prometheus.DefBuckets,
		}),
		TasksExecutingTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "madmt", Subsystem: "pool", Name: "task_executing_seconds",
			Help: "time a task spent running inside the callable", ConstLabels: constLabels,
			Buckets: prometheus.DefBuckets,
		}),
		workersAliveGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "madmt", Subsystem: "pool", Name: "workers_alive",
			Help: "current number of live workers", ConstLabels: constLabels,
		}),
	}

	registry.MustRegister(
		s.WorkersCreated, s.WorkersKilled,
		s.TasksSubmitted, s.TasksConsumed, s.TasksPanic, s.TasksRejected,
		s.TasksWaitingTime, s.TasksExecutingTime, s.workersAliveGauge,
	)
	return s
}

// IncWorkersAlive records a newly spawned worker.
func (s *ConcurrentStatistics) IncWorkersAlive() {
	s.WorkersAlive.Inc()
	s.WorkersCreated.Inc()
	s.workersAliveGauge.Set(float64(s.WorkersAlive.Load()))
}

// DecWorkersAlive records a stopped worker.
func (s *ConcurrentStatistics) DecWorkersAlive() {
	s.WorkersAlive.Dec()
	s.WorkersKilled.Inc()
	s.workersAliveGauge.Set(float64(s.WorkersAlive.Load()))
}

// UpdateWaitingTime records how long a task waited in the queue.
func (s *ConcurrentStatistics) UpdateWaitingTime(since time.Time) {
	s.TasksWaitingTime.Observe(time.Since(since).Seconds())
}

// UpdateExecutingTime records how long a task's handle ran for.
func (s *ConcurrentStatistics) UpdateExecutingTime(since time.Time) {
	s.TasksExecutingTime.Observe(time.Since(since).Seconds())
}
