// Copyright 2025 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package makeutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testMakefile = `CC = gcc
CFLAGS := -O2 \
    -Wall

all: full_targets

%.o: %.c
	$(CC) $(CFLAGS) -c $<

# Generated automatically. Do not edit beyond here.

# Object dependencies.
obj/main.o obj/main-pic.o: src/main.c include/util.h \
    include/config.h

util.o: util.c c:/sdk/include/w.h

DEPS_util = util.h \
    util_impl.h

# Main programs
main: main.o util.o

main: extra.o

FULL_TARGETS = main libutil.a
full_targets: $(FULL_TARGETS)
FULL_LIB_HEADERS = $(DEPS_util)
`

func TestParseMakefile(t *testing.T) {
	mf := ParseMakefile([]byte(testMakefile))

	wantVars := map[string][]string{
		"CC":               {"gcc"},
		"CFLAGS":           {"-O2", "-Wall"},
		"DEPS_util":        {"util.h", "util_impl.h"},
		"FULL_TARGETS":     {"main", "libutil.a"},
		"FULL_LIB_HEADERS": {"$(DEPS_util)"},
	}
	if diff := cmp.Diff(wantVars, mf.Vars); diff != "" {
		t.Errorf("Vars diff -want +got:\n%s", diff)
	}

	wantTargets := []string{"all", "%.o", "obj/main.o", "obj/main-pic.o", "util.o", "main", "full_targets"}
	if diff := cmp.Diff(wantTargets, mf.Targets()); diff != "" {
		t.Errorf("Targets() diff -want +got:\n%s", diff)
	}

	for _, tc := range []struct {
		target string
		want   []string
	}{
		{
			target: "obj/main-pic.o",
			want:   []string{"src/main.c", "include/util.h", "include/config.h"},
		},
		{
			target: "util.o",
			want:   []string{"util.c", "c:/sdk/include/w.h"},
		},
		{
			target: "main",
			want:   []string{"main.o", "util.o", "extra.o"},
		},
		{
			target: "full_targets",
			want:   []string{"main", "libutil.a"},
		},
	} {
		got, err := mf.Prereqs(tc.target)
		if err != nil {
			t.Errorf("Prereqs(%q)=_, %v; want nil err", tc.target, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Prereqs(%q) diff -want +got:\n%s", tc.target, diff)
		}
	}

	if got, err := mf.Prereqs("nosuch"); err == nil {
		t.Errorf("Prereqs(%q)=%q, nil; want err", "nosuch", got)
	}
}

func TestExpand_Recursive(t *testing.T) {
	mf := ParseMakefile([]byte("A = $(B) a\nB = $(A) b\n"))
	got := mf.Expand([]string{"$(A)", "$(C)"})
	want := []string{"$(A)", "b", "a", "$(C)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Expand diff -want +got:\n%s", diff)
	}
}
