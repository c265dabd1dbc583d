// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package osfs

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestOSFS(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fsys := New("test")

	fname := filepath.Join(dir, "makefile.tmp")
	w, err := fsys.Create(ctx, fname)
	if err != nil {
		t.Fatalf("Create(ctx, %q)=%v; want nil err", fname, err)
	}
	if _, err := io.WriteString(w, "all: foo\n"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	newname := filepath.Join(dir, "makefile")
	err = fsys.Rename(ctx, fname, newname)
	if err != nil {
		t.Fatalf("Rename(ctx, %q, %q)=%v; want nil err", fname, newname, err)
	}
	_, err = fsys.Stat(ctx, fname)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(ctx, %q)=%v; want %v", fname, err, fs.ErrNotExist)
	}

	r, err := fsys.Open(ctx, newname)
	if err != nil {
		t.Fatalf("Open(ctx, %q)=%v; want nil err", newname, err)
	}
	buf, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if got, want := string(buf), "all: foo\n"; got != want {
		t.Errorf("content=%q; want %q", got, want)
	}

	st := fsys.Stats()
	if st.WOps != 1 || st.WBytes != 9 {
		t.Errorf("write stats=%d ops %d bytes; want 1 ops 9 bytes", st.WOps, st.WBytes)
	}
	if st.ROps != 1 || st.RBytes != 9 {
		t.Errorf("read stats=%d ops %d bytes; want 1 ops 9 bytes", st.ROps, st.RBytes)
	}
	if st.Ops != 2 || st.OpsErrs != 1 {
		t.Errorf("ops stats=%d ops %d errs; want 2 ops 1 errs", st.Ops, st.OpsErrs)
	}
}
