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
)

const prereqsUsage = `list prerequisites of targets

 $ mkdeps query prereqs [-f <makefile>] [-r] <targets>

prints prerequisites of <targets> in <makefile>, one per line.
Variables of the form $(VAR) are expanded if assigned in <makefile>.
With -r, prerequisites are followed recursively.
`

func cmdPrereqs() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "prereqs [-f <makefile>] [-r] <targets>...",
		ShortDesc: "list prerequisites of targets",
		LongDesc:  prereqsUsage,
		CommandRun: func() subcommands.CommandRun {
			c := &prereqsRun{w: os.Stdout}
			c.init()
			return c
		},
	}
}

type prereqsRun struct {
	subcommands.CommandRunBase
	w io.Writer

	fname     string
	recursive bool
}

func (c *prereqsRun) init() {
	makefileFlag(&c.Flags, &c.fname)
	c.Flags.BoolVar(&c.recursive, "r", false, "follow prerequisites recursively")
}

func (c *prereqsRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	return exitCode(c.run(ctx, args), prereqsUsage)
}

func (c *prereqsRun) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no targets: %w", flag.ErrHelp)
	}
	mf, err := loadMakefile(ctx, c.fname)
	if err != nil {
		return err
	}
	seen := make(map[string]bool)
	var visit func(target string, top bool) error
	visit = func(target string, top bool) error {
		prereqs, err := mf.Prereqs(target)
		if err != nil {
			if top {
				return err
			}
			// source file.
			return nil
		}
		for _, p := range prereqs {
			if seen[p] {
				continue
			}
			seen[p] = true
			fmt.Fprintln(c.w, p)
			if c.recursive {
				if err := visit(p, false); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for _, t := range args {
		if err := visit(t, true); err != nil {
			return err
		}
	}
	return nil
}
