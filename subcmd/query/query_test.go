// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package query

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testMakefile = `all: full_targets

# Generated automatically. Do not edit beyond here.

# Object dependencies.
main.o: main.c include/util.h \
    include/config.h

util.o: util.c include/util.h

# Main programs
main: main.o util.o

libutil.a: util.o

FULL_TARGETS = main \
    libutil.a
full_targets: $(FULL_TARGETS)
`

func TestQuery(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"makefile": testMakefile,
		"main.d":   "main.o: main.c include/util.h \\\n include/config.h\n",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)

	for _, tc := range []struct {
		name string
		cmd  func(*bytes.Buffer) (func(context.Context, []string) error, flagParser)
		args []string
		want string
	}{
		{
			name: "prereqs",
			cmd:  prereqsCmd,
			args: []string{"main"},
			want: "main.o\nutil.o\n",
		},
		{
			name: "prereqs-recursive",
			cmd:  prereqsCmd,
			args: []string{"-r", "full_targets"},
			want: "main\nmain.o\nmain.c\ninclude/util.h\ninclude/config.h\nutil.o\nutil.c\nlibutil.a\n",
		},
		{
			name: "targets",
			cmd:  targetsCmd,
			want: "all\nmain.o\nutil.o\nmain\nlibutil.a\nfull_targets\n",
		},
		{
			name: "targets-var",
			cmd:  targetsCmd,
			args: []string{"-var", "FULL_TARGETS"},
			want: "main\nlibutil.a\n",
		},
		{
			name: "deps",
			cmd:  depsCmd,
			args: []string{"main.d"},
			want: "main.c\ninclude/util.h\ninclude/config.h\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			run, fp := tc.cmd(&buf)
			if err := fp.Parse(tc.args); err != nil {
				t.Fatal(err)
			}
			err := run(ctx, fp.Args())
			if err != nil {
				t.Fatalf("run(ctx, %q)=%v; want nil err", tc.args, err)
			}
			if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
				t.Errorf("output -want +got:\n%s", diff)
			}
		})
	}
}

func TestPrereqs_NotFound(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "makefile"), []byte(testMakefile), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	var buf bytes.Buffer
	run, _ := prereqsCmd(&buf)
	if err := run(ctx, []string{"nosuch"}); err == nil {
		t.Errorf("prereqs nosuch=nil; want err")
	}
}

type flagParser interface {
	Parse([]string) error
	Args() []string
}

func prereqsCmd(w *bytes.Buffer) (func(context.Context, []string) error, flagParser) {
	c := cmdPrereqs().CommandRun().(*prereqsRun)
	c.w = w
	return c.run, &c.Flags
}

func targetsCmd(w *bytes.Buffer) (func(context.Context, []string) error, flagParser) {
	c := cmdTargets().CommandRun().(*targetsRun)
	c.w = w
	return c.run, &c.Flags
}

func depsCmd(w *bytes.Buffer) (func(context.Context, []string) error, flagParser) {
	c := cmdDeps().CommandRun().(*depsRun)
	c.w = w
	return c.run, &c.Flags
}
