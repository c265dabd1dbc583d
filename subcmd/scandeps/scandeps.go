// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package scandeps is scandeps subcommand for debugging scandeps.
package scandeps

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/mkdeps/osfs"
	"go.chromium.org/infra/build/mkdeps/scandeps"
	"go.chromium.org/infra/build/mkdeps/subcmd/scanflags"
)

const usage = `run scandeps

 $ mkdeps scandeps [-I <dir>] [-json] <source files>

prints the include files, the defined macros and the target
classification of each source file, as gen would see them.
`

// Cmd returns the Command for the `scandeps` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "scandeps <args>...",
		ShortDesc: "run scandeps",
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

	scan   scanflags.Flags
	asJSON bool

	stdout io.Writer
}

func (c *run) init() {
	c.scan.Register(&c.Flags)
	c.Flags.BoolVar(&c.asJSON, "json", false, "print in JSON")
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

// Result is a scan result of a file.
type Result struct {
	File    string   `json:"file"`
	Target  string   `json:"target"`
	Deps    []string `json:"deps"`
	Defines []string `json:"defines"`
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
	s := scandeps.New(osfs.New("scandeps"), fcfg)
	var results []Result
	for _, fname := range args {
		st, err := s.ScanFile(ctx, fname)
		if err != nil {
			return err
		}
		results = append(results, Result{
			File:    fname,
			Target:  st.Target.String(),
			Deps:    st.SortedDeps(),
			Defines: st.SortedDefines(),
		})
	}
	if c.asJSON {
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", " ")
		return enc.Encode(results)
	}
	for _, r := range results {
		fmt.Fprintf(c.stdout, "%s: target=%s\n", r.File, r.Target)
		for _, d := range r.Deps {
			fmt.Fprintf(c.stdout, " dep %s\n", d)
		}
		for _, d := range r.Defines {
			fmt.Fprintf(c.stdout, " define %s\n", d)
		}
	}
	return nil
}
