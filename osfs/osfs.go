// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package osfs provides OS Filesystem access.
package osfs

import (
	"context"
	"io"
	"io/fs"
	"os"
	"runtime"
	"time"

	"go.chromium.org/infra/build/mkdeps/o11y/clog"
	"go.chromium.org/infra/build/mkdeps/o11y/iometrics"
)

// OSFS provides OS Filesystem access.
// It counts metrics by iometrics.
type OSFS struct {
	*iometrics.IOMetrics
}

// New creates new OSFS.
func New(name string) *OSFS {
	return &OSFS{IOMetrics: iometrics.New(name)}
}

const slowThreshold = 1 * time.Minute

func logSlow(ctx context.Context, name string, dur time.Duration, err error) {
	buf := make([]byte, 4*1024)
	n := runtime.Stack(buf, false)
	clog.Warningf(ctx, "slow op %s: %s %v\n%s", name, dur, err, buf[:n])
}

// Stat returns a FileInfo describing the named file.
func (fsys *OSFS) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	started := time.Now()
	fi, err := os.Stat(name)
	fsys.OpsDone(err)
	if dur := time.Since(started); dur > slowThreshold {
		logSlow(ctx, name, dur, err)
	}
	return fi, err
}

// Open opens the named file for reading.
// Bytes read are counted when the file is closed.
func (fsys *OSFS) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	started := time.Now()
	f, err := os.Open(name)
	if err != nil {
		fsys.OpsDone(err)
		return nil, err
	}
	return &file{ctx: ctx, file: f, started: started, fs: fsys}, nil
}

// ReadFile reads the named file.
func (fsys *OSFS) ReadFile(ctx context.Context, name string) ([]byte, error) {
	started := time.Now()
	buf, err := os.ReadFile(name)
	fsys.ReadDone(len(buf), err)
	if dur := time.Since(started); dur > slowThreshold {
		logSlow(ctx, name, dur, err)
	}
	return buf, err
}

// Create creates or truncates the named file for writing.
// Bytes written are counted when the file is closed.
func (fsys *OSFS) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	started := time.Now()
	f, err := os.Create(name)
	if err != nil {
		fsys.OpsDone(err)
		return nil, err
	}
	return &file{ctx: ctx, file: f, started: started, fs: fsys, write: true}, nil
}

// WriteFile writes data to the named file, creating it if necessary.
func (fsys *OSFS) WriteFile(ctx context.Context, name string, data []byte, perm fs.FileMode) error {
	started := time.Now()
	err := os.WriteFile(name, data, perm)
	fsys.WriteDone(len(data), err)
	if dur := time.Since(started); dur > slowThreshold {
		logSlow(ctx, name, dur, err)
	}
	return err
}

// Remove removes the named file.
func (fsys *OSFS) Remove(ctx context.Context, name string) error {
	started := time.Now()
	err := os.Remove(name)
	fsys.OpsDone(err)
	if dur := time.Since(started); dur > slowThreshold {
		logSlow(ctx, name, dur, err)
	}
	return err
}

// Rename renames oldname to newname.
func (fsys *OSFS) Rename(ctx context.Context, oldname, newname string) error {
	started := time.Now()
	err := os.Rename(oldname, newname)
	fsys.OpsDone(err)
	if dur := time.Since(started); dur > slowThreshold {
		logSlow(ctx, newname, dur, err)
	}
	return err
}

type file struct {
	ctx     context.Context
	file    *os.File
	started time.Time
	fs      *OSFS
	write   bool
	n       int
	err     error
}

func (f *file) Read(buf []byte) (int, error) {
	n, err := f.file.Read(buf)
	f.n += n
	if err != nil && err != io.EOF {
		f.err = err
	}
	return n, err
}

func (f *file) Write(buf []byte) (int, error) {
	n, err := f.file.Write(buf)
	f.n += n
	if err != nil {
		f.err = err
	}
	return n, err
}

func (f *file) Close() error {
	name := f.file.Name()
	err := f.file.Close()
	ioErr := f.err
	if ioErr == nil {
		ioErr = err
	}
	if f.write {
		f.fs.WriteDone(f.n, ioErr)
	} else {
		f.fs.ReadDone(f.n, ioErr)
	}
	if dur := time.Since(f.started); dur > slowThreshold {
		logSlow(f.ctx, name, dur, err)
	}
	return err
}
