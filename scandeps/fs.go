// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"context"
	"io"
	"io/fs"
)

// FileSystem is a filesystem to read sources and headers.
// Relative names are relative to the current directory.
// osfs.OSFS implements it.
type FileSystem interface {
	Stat(ctx context.Context, name string) (fs.FileInfo, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// exists reports whether name is a regular file (or a symlink to it).
func exists(ctx context.Context, fsys FileSystem, name string) bool {
	fi, err := fsys.Stat(ctx, name)
	if err != nil {
		return false
	}
	return !fi.IsDir()
}

func readFile(ctx context.Context, fsys FileSystem, name string) ([]byte, error) {
	r, err := fsys.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
