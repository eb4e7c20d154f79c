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

// Package logger provides a small structured-logging facade over zap,
// keyed by a role/name pair the way the rest of this codebase expects
// (logger.GetLogger("Pool", name)).
package logger

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a structured logging key/value pair.
type Field = zap.Field

// String builds a string field.
func String(key, value string) Field { return zap.String(key, value) }

// Int builds an int field.
func Int(key string, value int) Field { return zap.Int(key, value) }

// Int64 builds an int64 field.
func Int64(key string, value int64) Field { return zap.Int64(key, value) }

// Uint64 builds a uint64 field.
func Uint64(key string, value uint64) Field { return zap.Uint64(key, value) }

// Duration builds a duration field.
func Duration(key string, value time.Duration) Field { return zap.Duration(key, value) }

// Error wraps an error as a field named "error".
func Error(err error) Field { return zap.Error(err) }

// Stack attaches the current goroutine's stack trace to the entry.
func Stack() Field { return zap.Stack("stack") }

// Logger is the minimal interface every component in this repository
// logs through instead of fmt.Println/log.Printf.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

type zapLogger struct {
	sugared *zap.Logger
}

func (l *zapLogger) Debug(msg string, fields ...Field) { l.sugared.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...Field)  { l.sugared.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.sugared.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.sugared.Error(msg, fields...) }

var (
	mu      sync.Mutex
	base    *zap.Logger
	cache   = map[string]Logger{}
	level   = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func newBase() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		// Fall back to a no-op logger; logging must never crash a worker.
		return zap.NewNop()
	}
	return l
}

// SetLevel adjusts the minimum level every existing and future Logger logs at.
func SetLevel(l zapcore.Level) {
	level.SetLevel(l)
}

// GetLogger returns the Logger for the given role (subsystem) and name
// (instance), e.g. GetLogger("Pool", "default").
func GetLogger(role, name string) Logger {
	mu.Lock()
	defer mu.Unlock()
	if base == nil {
		base = newBase()
	}
	key := role + "/" + name
	if lg, ok := cache[key]; ok {
		return lg
	}
	lg := &zapLogger{sugared: base.With(zap.String("role", role), zap.String("name", name))}
	cache[key] = lg
	return lg
}
