// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package shutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	for _, tc := range []struct {
		cmdline string
		want    []string
	}{
		{
			cmdline: "",
		},
		{
			cmdline: `-O2 -I../.. -Igen -isystem ../../buildtools/include -DNDEBUG`,
			want: []string{
				"-O2",
				"-I../..",
				"-Igen",
				"-isystem",
				"../../buildtools/include",
				"-DNDEBUG",
			},
		},
		{
			cmdline: " \t-g  -c\n",
			want:    []string{"-g", "-c"},
		},
		{
			cmdline: `-DCR_CLANG_REVISION=\"llvmorg-13\" -I"dir with space"`,
			want: []string{
				`-DCR_CLANG_REVISION="llvmorg-13"`,
				"-Idir with space",
			},
		},
		{
			cmdline: `-I'obj/arch=armv8.2-a'/gen "" -DX="a\"b"`,
			want: []string{
				"-Iobj/arch=armv8.2-a/gen",
				"",
				`-DX=a"b`,
			},
		},
		{
			cmdline: `-I'a\b'`,
			want:    []string{`-Ia\b`},
		},
	} {
		args, err := Split(tc.cmdline)
		if err != nil {
			t.Errorf("Split(%q)=%q, %v; want nil error", tc.cmdline, args, err)
		}
		if diff := cmp.Diff(tc.want, args); diff != "" {
			t.Errorf("Split(%q); diff -want +got:\n%s", tc.cmdline, diff)
		}
	}
}

func TestSplit_Error(t *testing.T) {
	for _, cmdline := range []string{
		`-I"foo`,
		`-I'foo`,
		`-Ifoo\`,
	} {
		args, err := Split(cmdline)
		if err == nil {
			t.Errorf("Split(%q)=%q, %v; want err", cmdline, args, err)
		}
	}
}
