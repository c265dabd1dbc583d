// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package query is query subcommand to query generated makefiles and
// deps files.
package query

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/maruel/subcommands"

	"go.chromium.org/infra/build/mkdeps/config"
	"go.chromium.org/infra/build/mkdeps/toolsupport/makeutil"
)

func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "query <subcommand> ...",
		ShortDesc: "query makefile rules",
		LongDesc:  "query rules of makefiles and *.d deps files.",
		CommandRun: func() subcommands.CommandRun {
			c := &run{
				app: &subcommands.DefaultApplication{
					Name:  "mkdeps query",
					Title: "tool to access makefile rules",
					Commands: []*subcommands.Command{
						cmdPrereqs(),
						cmdTargets(),
						cmdDeps(),
						subcommands.CmdHelp,
					},
				},
			}
			c.Flags.Usage = func() {
				subcommands.Usage(os.Stderr, c.app, true)
			}
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase
	app *subcommands.DefaultApplication
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	return subcommands.Run(c.app, args)
}

// loadMakefile parses fname.
func loadMakefile(ctx context.Context, fname string) (*makeutil.Makefile, error) {
	buf, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return makeutil.ParseMakefile(buf), nil
}

func makefileFlag(fs *flag.FlagSet, p *string) {
	fs.StringVar(p, "f", config.Default("/").Makefile, "makefile to read")
}

func exitCode(err error, usage string) int {
	if err == nil {
		return 0
	}
	switch {
	case errors.Is(err, flag.ErrHelp):
		fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return 1
}
