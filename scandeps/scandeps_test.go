// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"context"
	"io"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"go.chromium.org/infra/build/mkdeps/config"
	"go.chromium.org/infra/build/mkdeps/pathutil"
)

const testCwd = "/src/proj"

// mapFS is an in-memory FileSystem rooted at "/", where relative
// names are resolved against testCwd.
type mapFS struct {
	m fstest.MapFS
}

func newMapFS(files map[string]string) mapFS {
	m := make(fstest.MapFS)
	for name, content := range files {
		m[fsName(name)] = &fstest.MapFile{Data: []byte(content)}
	}
	return mapFS{m: m}
}

func fsName(name string) string {
	p := name
	if !pathutil.IsAbs(p) {
		p = testCwd + "/" + p
	}
	return strings.TrimPrefix(pathutil.Normalize(p), "/")
}

func (fsys mapFS) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	return fsys.m.Stat(fsName(name))
}

func (fsys mapFS) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return fsys.m.Open(fsName(name))
}

func testConfig(t *testing.T, dirs ...string) *config.Config {
	t.Helper()
	c := config.Default(testCwd)
	for _, d := range dirs {
		c.AddSearchDir(d)
	}
	cfg, err := c.Finish()
	if err != nil {
		t.Fatalf("Finish()=_, %v; want nil err", err)
	}
	return cfg
}

type scanResult struct {
	Deps    []string
	Defines []string
	Target  Target
}

func TestScanFile(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		name  string
		files map[string]string
		dirs  []string
		want  scanResult
	}{
		{
			name: "cyclic",
			files: map[string]string{
				"main.c": `#include "a.h"
int main(void) { return 0; }
`,
				"a.h": `#include "b.h"
`,
				"b.h": `#include "a.h"
`,
			},
			want: scanResult{
				Deps:   []string{"a.h", "b.h"},
				Target: MainTarget,
			},
		},
		{
			name: "ifdef-else",
			files: map[string]string{
				"main.c": `#ifdef FOO
#include "x.h"
#else
#include "y.h"
#endif
`,
				"x.h": "",
				"y.h": "",
			},
			want: scanResult{
				Deps: []string{"y.h"},
			},
		},
		{
			name: "define-then-ifdef",
			files: map[string]string{
				"main.c": `#define FOO 1
#ifdef FOO
#include "x.h"
#else
#include "y.h"
#endif
`,
				"x.h": "",
				"y.h": "",
			},
			// the taken branch scans its #else part too.
			want: scanResult{
				Deps:    []string{"x.h", "y.h"},
				Defines: []string{"FOO"},
			},
		},
		{
			name: "nested-skip",
			files: map[string]string{
				"main.c": `#ifdef FOO
#ifdef BAR
#include "x.h"
#else
#include "z.h"
#endif
#include "w.h"
#endif
#include "y.h"
`,
				"w.h": "",
				"x.h": "",
				"y.h": "",
				"z.h": "",
			},
			want: scanResult{
				Deps: []string{"y.h"},
			},
		},
		{
			name: "ifdef-zero",
			files: map[string]string{
				"main.c": `#ifdef 0
#include "x.h"
#endif
#ifndef 0
#include "y.h"
#endif
`,
				"x.h": "",
				"y.h": "",
			},
			want: scanResult{
				Deps: []string{"y.h"},
			},
		},
		{
			name: "ifndef-guard",
			files: map[string]string{
				"main.c": `#include "g.h"
#include "g.h"
`,
				"g.h": `#ifndef G_H
#define G_H
#include "x.h"
#endif
`,
				"x.h": "",
			},
			want: scanResult{
				Deps:    []string{"g.h", "x.h"},
				Defines: []string{"G_H"},
			},
		},
		{
			name: "if-defined",
			files: map[string]string{
				"main.c": `#define HAVE_X
#if defined(HAVE_X)
#include "x.h"
#endif
#if !defined(HAVE_X)
#include "y.h"
#endif
`,
				"x.h": "",
				"y.h": "",
			},
			want: scanResult{
				Deps:    []string{"x.h"},
				Defines: []string{"HAVE_X"},
			},
		},
		{
			name: "library-last-match-wins",
			files: map[string]string{
				"main.c": `/* LIBRARY */
int main(int argc, char **argv);
/* LIBRARY */
`,
			},
			want: scanResult{
				Target: LibTarget,
			},
		},
		{
			name: "main-in-header",
			files: map[string]string{
				"main.c": `#include "m.h"
`,
				"m.h": `main()
`,
			},
			want: scanResult{
				Deps:   []string{"m.h"},
				Target: MainTarget,
			},
		},
		{
			name: "quote-in-including-dir",
			files: map[string]string{
				"main.c": `#include "sub/a.h"
`,
				"sub/a.h": `#include "b.h"
`,
				"sub/b.h": "",
				"b.h":     "",
			},
			want: scanResult{
				Deps: []string{"sub/a.h", "sub/b.h"},
			},
		},
		{
			name: "angle-uses-search-path-only",
			files: map[string]string{
				"main.c": `#include "sub/a.h"
`,
				"sub/a.h": `#include <b.h>
`,
				"sub/b.h":     "",
				"include/b.h": "",
			},
			dirs: []string{"include"},
			want: scanResult{
				Deps: []string{"include/b.h", "sub/a.h"},
			},
		},
		{
			name: "system-header-absolute",
			files: map[string]string{
				"main.c": `#include <stdio.h>
#include <missing.h>
`,
				"/usr/include/stdio.h": "",
			},
			dirs: []string{"/usr/include"},
			want: scanResult{
				Deps: []string{"/usr/include/stdio.h"},
			},
		},
		{
			name: "rebase-into-cwd",
			files: map[string]string{
				"main.c": `#include "../proj/inc/a.h"
#include "../other/b.h"
`,
				"inc/a.h":        "",
				"/src/other/b.h": "",
			},
			want: scanResult{
				Deps: []string{"../other/b.h", "inc/a.h"},
			},
		},
		{
			name: "missing-closing-delimiter",
			files: map[string]string{
				"main.c": `#include "a.h
#  include   <b.h>
#include MACRO_H
`,
				"a.h": "",
				"b.h": "",
			},
			want: scanResult{
				Deps: []string{"a.h", "b.h"},
			},
		},
		{
			name: "multibyte-whitespace",
			files: map[string]string{
				"main.c": "　#include \"a.h\"\n\t#define Ünï 1\n// héllo wörld\r\n",
				"a.h":    "",
			},
			want: scanResult{
				Deps:    []string{"a.h"},
				Defines: []string{"Ünï"},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := New(newMapFS(tc.files), testConfig(t, tc.dirs...))
			st, err := s.ScanFile(ctx, "main.c")
			if err != nil {
				t.Fatalf("ScanFile(ctx, %q)=_, %v; want nil err", "main.c", err)
			}
			got := scanResult{
				Deps:    st.SortedDeps(),
				Defines: st.SortedDefines(),
				Target:  st.Target,
			}
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ScanFile(ctx, %q) diff -want +got:\n%s", "main.c", diff)
			}
		})
	}
}

func TestScanFile_NotFound(t *testing.T) {
	ctx := context.Background()
	s := New(newMapFS(nil), testConfig(t))
	_, err := s.ScanFile(ctx, "nosuch.c")
	if err == nil {
		t.Errorf("ScanFile(ctx, %q)=_, nil; want err", "nosuch.c")
	}
}

func TestScanFile_HeaderMap(t *testing.T) {
	ctx := context.Background()
	hmap := buildHeaderMap(t, [][3]string{
		{"Foo/Foo.h", "/opt/fw/", "Foo.h"},
	})
	fsys := newMapFS(map[string]string{
		"main.c": `#include <foo/foo.h>
`,
		"/opt/fw/Foo.h": "",
	})
	fsys.m[fsName("out/foo.hmap")] = &fstest.MapFile{Data: hmap}

	s := New(fsys, testConfig(t, "out/foo.hmap"))
	st, err := s.ScanFile(ctx, "main.c")
	if err != nil {
		t.Fatalf("ScanFile(ctx, %q)=_, %v; want nil err", "main.c", err)
	}
	want := []string{"/opt/fw/Foo.h"}
	if diff := cmp.Diff(want, st.SortedDeps()); diff != "" {
		t.Errorf("deps diff -want +got:\n%s", diff)
	}
}

func TestTargetString(t *testing.T) {
	for _, tc := range []struct {
		t    Target
		want string
	}{
		{NotTarget, "none"},
		{MainTarget, "main"},
		{LibTarget, "library"},
		{Target(9), "Target(9)"},
	} {
		if got := tc.t.String(); got != tc.want {
			t.Errorf("%d.String()=%q; want %q", int(tc.t), got, tc.want)
		}
	}
}
