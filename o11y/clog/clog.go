// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package clog provides context aware logging.
//
// A Logger is stored in the context, so packages deep in the call chain
// (scanner, emitter) log with the settings chosen by the subcommand
// without a global. Verbose logs are guarded by V(ctx, level), as in
//
//	if clog.V(ctx, 1) {
//		clog.Infof(ctx, "find %s", name)
//	}
package clog

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

type contextKeyType int

var contextKey contextKeyType

// Options configures a Logger.
type Options struct {
	// Verbosity enables V(level) logs for level <= Verbosity.
	Verbosity int

	// Prefix is printed before each message.
	Prefix string

	// Timestamp reports time of each entry.
	Timestamp bool
}

// Logger is a leveled logger with verbosity.
type Logger struct {
	l         *log.Logger
	verbosity int
}

// New creates a new Logger writing to w.
func New(w io.Writer, opts Options) *Logger {
	return &Logger{
		l: log.NewWithOptions(w, log.Options{
			Prefix:          opts.Prefix,
			ReportTimestamp: opts.Timestamp,
			Level:           log.InfoLevel,
		}),
		verbosity: opts.Verbosity,
	}
}

var defaultLogger = New(os.Stderr, Options{})

// NewContext sets the given logger to the context.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, contextKey, logger)
}

// FromContext returns a logger in the context, or the default logger
// (stderr, verbosity 0) if it's not set.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey).(*Logger)
	if !ok || logger == nil {
		return defaultLogger
	}
	return logger
}

// V checks at verbose log level.
func (l *Logger) V(level int) bool {
	return level <= l.verbosity
}

// Infof logs at info log level in the manner of fmt.Printf.
func (l *Logger) Infof(format string, args ...any) {
	l.l.Info(fmt.Sprintf(format, args...))
}

// Warningf logs at warning log level in the manner of fmt.Printf.
func (l *Logger) Warningf(format string, args ...any) {
	l.l.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs at error log level in the manner of fmt.Printf.
func (l *Logger) Errorf(format string, args ...any) {
	l.l.Error(fmt.Sprintf(format, args...))
}

// V checks at verbose log level of the logger in the context.
func V(ctx context.Context, level int) bool {
	return FromContext(ctx).V(level)
}

// Infof logs at info log level in the manner of fmt.Printf.
func Infof(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Infof(format, args...)
}

// Warningf logs at warning log level in the manner of fmt.Printf.
func Warningf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Warningf(format, args...)
}

// Errorf logs at error log level in the manner of fmt.Printf.
func Errorf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Errorf(format, args...)
}
