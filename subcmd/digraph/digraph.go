// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package digraph is digraph subcommand to show digraph of modules
// for https://pkg.go.dev/golang.org/x/tools/cmd/digraph
package digraph

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/mkdeps/depgraph"
	"go.chromium.org/infra/build/mkdeps/osfs"
	"go.chromium.org/infra/build/mkdeps/subcmd/scanflags"
)

const usage = `show digraph

 $ mkdeps digraph [-I <dir>] [-closure] <source files>

prints directed graph of modules of <source files>.
Each line contains one or more modules, and the first module depends on
the rest of the modules on the same line.
A module depends on another module if it includes the header of the
other module, e.g. foo.c includes bar.h and bar.c is given.
With -closure, it prints modules to link for each module instead.

This output can be passed to digraph command, installed by
 $ go install golang.org/x/tools/cmd/digraph@latest

See https://pkg.go.dev/golang.org/x/tools/cmd/digraph
for digraph command.
`

// Cmd returns the Command for the `digraph` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "digraph [-I <dir>] <source files>...",
		ShortDesc: "show digraph",
		LongDesc:  usage,
		Advanced:  true,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	scan    scanflags.Flags
	closure bool
	cycles  bool

	stdout io.Writer
}

func (c *run) init() {
	c.scan.Register(&c.Flags)
	c.Flags.BoolVar(&c.closure, "closure", false, "print link closure instead of direct deps")
	c.Flags.BoolVar(&c.cycles, "cycles", false, "print only module cycles")
	c.stdout = os.Stdout
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no source files: %w", flag.ErrHelp)
	}
	ctx = c.scan.Context(ctx, os.Stderr)
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := c.scan.Config(ctx, cwd)
	if err != nil {
		return err
	}
	fcfg, err := cfg.Finish()
	if err != nil {
		return err
	}
	project, err := scanflags.Scan(ctx, osfs.New("digraph"), fcfg, args)
	if err != nil {
		return err
	}
	switch {
	case c.cycles:
		cycles, err := project.Cycles()
		if err != nil {
			return err
		}
		for _, cycle := range cycles {
			fmt.Fprintln(c.stdout, strings.Join(cycle, " "))
		}
		return nil
	case c.closure:
		for _, m := range project.ComputeClosures() {
			printLine(c.stdout, m.Name, m.Deps)
		}
		return nil
	}
	g, err := project.Graph()
	if err != nil {
		return err
	}
	edges, err := depgraph.Edges(g)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(edges))
	for name := range edges {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		printLine(c.stdout, name, edges[name])
	}
	return nil
}

func printLine(w io.Writer, name string, deps []string) {
	if len(deps) == 0 {
		fmt.Fprintf(w, "%s\n", name)
		return
	}
	fmt.Fprintf(w, "%s %s\n", name, strings.Join(deps, " "))
}
