// Copyright (C) 2024 The RefPack Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log provides a context-bound leveled logger.
//
// Loggers are carried on a context.Context. Packages log through the
// free functions, which fetch the bound logger or fall back to the
// default stderr logger.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Severity is the level of a log message.
type Severity int

const (
	// Debug messages are filtered out unless explicitly enabled.
	Debug Severity = iota
	// Info is the default severity for informational messages.
	Info
	// Warning is the severity for recoverable issues.
	Warning
	// Error is the severity for failures.
	Error
)

func (s Severity) String() string {
	switch s {
	case Debug:
		return "Debug"
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Logger writes formatted messages at or above a minimum severity.
type Logger struct {
	mu  sync.Mutex
	out io.Writer
	min Severity
}

// New returns a Logger writing messages of severity min or higher to out.
func New(out io.Writer, min Severity) *Logger {
	return &Logger{out: out, min: min}
}

var std = New(os.Stderr, Info)

// Logf writes a single formatted message at severity s.
func (l *Logger) Logf(s Severity, f string, args ...interface{}) {
	if s < l.min {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s: %s\n",
		time.Now().Format("15:04:05.000"), s, fmt.Sprintf(f, args...))
}

// D logs a debug message.
func (l *Logger) D(f string, args ...interface{}) { l.Logf(Debug, f, args...) }

// I logs an informational message.
func (l *Logger) I(f string, args ...interface{}) { l.Logf(Info, f, args...) }

// W logs a warning message.
func (l *Logger) W(f string, args ...interface{}) { l.Logf(Warning, f, args...) }

// E logs an error message.
func (l *Logger) E(f string, args ...interface{}) { l.Logf(Error, f, args...) }

// Errf logs an error message and returns a new error that wraps cause
// with the message.
func (l *Logger) Errf(cause error, f string, args ...interface{}) error {
	msg := fmt.Sprintf(f, args...)
	l.E("%s", msg)
	return &err{cause: cause, msg: msg}
}

type err struct {
	cause error
	msg   string
}

func (e err) Cause() error { return e.cause }

func (e err) Unwrap() error { return e.cause }

func (e err) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%v\n   Cause: %v", e.msg, e.cause)
}

type loggerKey struct{}

// Put returns a new context with l bound as its logger.
func Put(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// From returns the logger bound to ctx, or the default stderr logger.
func From(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerKey{}).(*Logger); ok {
		return l
	}
	return std
}

// D logs a debug message to the logger bound to ctx.
func D(ctx context.Context, f string, args ...interface{}) { From(ctx).D(f, args...) }

// I logs an informational message to the logger bound to ctx.
func I(ctx context.Context, f string, args ...interface{}) { From(ctx).I(f, args...) }

// W logs a warning message to the logger bound to ctx.
func W(ctx context.Context, f string, args ...interface{}) { From(ctx).W(f, args...) }

// E logs an error message to the logger bound to ctx.
func E(ctx context.Context, f string, args ...interface{}) { From(ctx).E(f, args...) }

// Errf logs an error message to the logger bound to ctx and returns a
// new error wrapping cause with the message.
func Errf(ctx context.Context, cause error, f string, args ...interface{}) error {
	return From(ctx).Errf(cause, f, args...)
}
