// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package query

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"
)

const targetsUsage = `list targets

 $ mkdeps query targets [-f <makefile>] [--var <name>]

prints targets of rules in <makefile>, in order of appearance.
With --var, prints the expanded value of the variable, e.g.
FULL_TARGETS.
`

// cmdTargets returns the Command for the `targets` subcommand provided by this package.
func cmdTargets() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "targets [-f <makefile>] [--var <name>]",
		ShortDesc: "list targets",
		LongDesc:  targetsUsage,
		CommandRun: func() subcommands.CommandRun {
			c := &targetsRun{w: os.Stdout}
			c.init()
			return c
		},
	}
}

type targetsRun struct {
	subcommands.CommandRunBase
	w io.Writer

	fname string
	name  string
}

func (c *targetsRun) init() {
	makefileFlag(&c.Flags, &c.fname)
	c.Flags.StringVar(&c.name, "var", "", "variable to print")
}

func (c *targetsRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	return exitCode(c.run(ctx, args), targetsUsage)
}

func (c *targetsRun) run(ctx context.Context, args []string) error {
	mf, err := loadMakefile(ctx, c.fname)
	if err != nil {
		return err
	}
	targets := mf.Targets()
	if c.name != "" {
		value, ok := mf.Vars[c.name]
		if !ok {
			return fmt.Errorf("variable not found: %q", c.name)
		}
		targets = mf.Expand(value)
	}
	for _, t := range targets {
		fmt.Fprintln(c.w, t)
	}
	return nil
}
