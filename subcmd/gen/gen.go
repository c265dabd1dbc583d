// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package gen is gen subcommand to generate makefile dependency rules.
package gen

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/mkdeps/config"
	"go.chromium.org/infra/build/mkdeps/depgraph"
	"go.chromium.org/infra/build/mkdeps/makegen"
	"go.chromium.org/infra/build/mkdeps/osfs"
	"go.chromium.org/infra/build/mkdeps/subcmd/scanflags"
)

const usage = `generate makefile dependencies

 $ mkdeps gen [flags] <source files>

scans the source files, checks the header files they include and
computes the dependencies. It understands #ifdefs.

Rules are written to the makefile (-f) after the line
` + config.Marker + `
Lines before it are kept. With -append, the rules are appended to
the makefile as is.

Defaults are read from ` + config.DefaultFile + ` in the current directory
if it exists, or from the file given by -config.
`

// Cmd returns the Command for the `gen` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "gen [flags] <source files>...",
		ShortDesc: "generate makefile dependencies",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	scan scanflags.Flags

	objectDirs scanflags.Strings
	abis       scanflags.Strings

	objectExt    string
	exeExt       string
	arSuffix     string
	makefile     string
	libPrefix    string
	libSuffix    string
	headerPrefix string

	appendMode bool
	pch        bool
	tch        bool
	potdeps    bool

	verbose bool

	// for tests.
	stdout io.Writer
	stderr io.Writer
}

func (c *run) init() {
	def := config.Default("/")
	c.scan.Register(&c.Flags)
	c.Flags.StringVar(&c.objectExt, "o", def.ObjectExt, "set the object extension")
	c.Flags.StringVar(&c.exeExt, "e", def.ExeExt, "set the exe extension")
	c.Flags.StringVar(&c.arSuffix, "a", def.ArSuffix, "set the suffix for static libraries")
	c.Flags.StringVar(&c.makefile, "f", def.Makefile, "set the name of the makefile to modify")
	c.Flags.StringVar(&c.libPrefix, "libpfx", def.LibPrefix, "set the prefix for libraries")
	c.Flags.StringVar(&c.libSuffix, "libsfx", def.LibSuffix, "set the suffix for shared libraries")
	c.Flags.Var(&c.objectDirs, "odir", "add an object directory")
	c.Flags.Var(&c.abis, "abi", "add an additional ABI")
	c.Flags.StringVar(&c.headerPrefix, "hpfx", def.HeaderPrefix, "set the prefix to prepend to header names")
	c.Flags.BoolVar(&c.appendMode, "append", false, "append to makefile instead of modifying")
	c.Flags.BoolVar(&c.pch, "pch", false, "use precompiled headers for each file in gcc")
	c.Flags.BoolVar(&c.tch, "tch", false, "use precompiled headers for each target in gcc")
	c.Flags.BoolVar(&c.potdeps, "potdeps", false, "generate dependencies for C++ POT files")
	c.Flags.BoolVar(&c.verbose, "v", false, "verbose output")
	c.stdout = os.Stdout
	c.stderr = os.Stderr
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(c.stderr, "%v\n%s\n", err, usage)
		default:
			fmt.Fprintf(c.stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no source files: %w", flag.ErrHelp)
	}
	ctx = c.scan.Context(ctx, c.stderr)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get cwd: %w", err)
	}
	cfg, err := c.config(ctx, cwd)
	if err != nil {
		return err
	}
	fsys := osfs.New("mkdeps")

	if c.verbose {
		fmt.Fprintln(c.stdout, "search path:")
		for _, dir := range cfg.SearchDirs {
			fmt.Fprintln(c.stdout, dir)
		}
	}

	project, err := scanflags.Scan(ctx, fsys, cfg, args)
	if err != nil {
		return err
	}

	mods := project.ComputeClosures()
	generated, err := makegen.New(cfg, fsys, project).Generate(ctx, mods)
	if err != nil {
		return err
	}
	err = makegen.Update(ctx, fsys, cfg, generated)
	if err != nil {
		return err
	}
	if c.verbose {
		return c.report(project, mods, fsys)
	}
	return nil
}

// config builds the configuration from the config file and flags.
// Flags given on the command line override the config file.
func (c *run) config(ctx context.Context, cwd string) (*config.Config, error) {
	cfg, err := c.scan.Config(ctx, cwd)
	if err != nil {
		return nil, err
	}
	for _, dir := range c.objectDirs {
		cfg.AddObjectDir(dir)
	}
	for _, abi := range c.abis {
		cfg.AddABI(abi)
	}
	c.Flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			cfg.ObjectExt = c.objectExt
		case "e":
			cfg.ExeExt = c.exeExt
		case "a":
			cfg.ArSuffix = c.arSuffix
		case "f":
			cfg.Makefile = c.makefile
		case "libpfx":
			cfg.LibPrefix = c.libPrefix
		case "libsfx":
			cfg.LibSuffix = c.libSuffix
		case "hpfx":
			cfg.HeaderPrefix = c.headerPrefix
		case "append":
			cfg.Append = c.appendMode
		case "potdeps":
			cfg.PotDeps = c.potdeps
		}
	})
	cfg.PrecompHeaders = c.pch
	cfg.PrecompTargets = c.tch
	return cfg.Finish()
}

func (c *run) report(project *depgraph.Project, mods []*depgraph.Module, fsys *osfs.OSFS) error {
	w := c.stdout
	fmt.Fprintln(w, "potential libraries used (based on included files):")
	for _, dir := range project.HeaderDirs() {
		fmt.Fprintln(w, dir)
	}
	err := depgraph.ComputeLevels(mods).Report(w)
	if err != nil {
		return err
	}
	cycles, err := project.Cycles()
	if err != nil {
		return err
	}
	for _, cycle := range cycles {
		fmt.Fprintf(w, "cycle: %q\n", cycle)
	}
	fmt.Fprintln(w, fsys.Stats())
	return nil
}
