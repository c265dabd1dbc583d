// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package query

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/mkdeps/toolsupport/makeutil"
)

const depsUsage = `list inputs in deps files

 $ mkdeps query deps [-C <dir>] <deps files>

prints inputs recorded in deps files (*.d) generated by
the compiler (e.g. gcc -MD), one per line.
Useful to compare with "mkdeps scandeps".
`

func cmdDeps() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "deps [-C <dir>] <deps files>...",
		ShortDesc: "list inputs in deps files",
		LongDesc:  depsUsage,
		CommandRun: func() subcommands.CommandRun {
			c := &depsRun{w: os.Stdout}
			c.init()
			return c
		},
	}
}

type depsRun struct {
	subcommands.CommandRunBase
	w io.Writer

	dir string
}

func (c *depsRun) init() {
	c.Flags.StringVar(&c.dir, "C", ".", "directory of deps files")
}

func (c *depsRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	return exitCode(c.run(ctx, args), depsUsage)
}

func (c *depsRun) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no deps files: %w", flag.ErrHelp)
	}
	fsys := os.DirFS(c.dir)
	for _, fname := range args {
		deps, err := makeutil.ParseDepsFile(ctx, fsys, fname)
		if err != nil {
			return err
		}
		for _, d := range deps {
			fmt.Fprintln(c.w, d)
		}
	}
	return nil
}
