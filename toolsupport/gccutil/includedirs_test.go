// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package gccutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIncludeDirs(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "none",
			args: []string{"-O2", "-g", "-DNDEBUG"},
		},
		{
			name: "joined",
			args: []string{
				"-I../..",
				"-Igen",
				"-isystem../../buildtools/include",
				"-iquote.",
				"--include-directory=third_party",
			},
			want: []string{
				"../..",
				"gen",
				"../../buildtools/include",
				".",
				"third_party",
			},
		},
		{
			name: "separate",
			args: []string{
				"-I", "include",
				"-isystem", "/usr/local/include",
				"--include-directory", "lib",
				"-idirafter", "last",
			},
			want: []string{
				"include",
				"/usr/local/include",
				"lib",
				"last",
			},
		},
		{
			name: "other-flags-kept-out",
			args: []string{"-include", "config.h", "-Iinc", "-c", "main.c"},
			want: []string{"inc"},
		},
		{
			name: "missing-dir",
			args: []string{"-Iinc", "-I"},
			want: []string{"inc"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := IncludeDirs(tc.args)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("IncludeDirs(%q) diff -want +got:\n%s", tc.args, diff)
			}
		})
	}
}
