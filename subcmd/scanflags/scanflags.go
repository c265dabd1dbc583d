// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package scanflags provides flags and setup shared by subcommands that
// scan sources.
package scanflags

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.chromium.org/infra/build/mkdeps/config"
	"go.chromium.org/infra/build/mkdeps/depgraph"
	"go.chromium.org/infra/build/mkdeps/o11y/clog"
	"go.chromium.org/infra/build/mkdeps/scandeps"
	"go.chromium.org/infra/build/mkdeps/toolsupport/gccutil"
	"go.chromium.org/infra/build/mkdeps/toolsupport/shutil"
)

// Flags are flags to configure scanning.
type Flags struct {
	ConfigFile  string
	IncludeDirs Strings
	CFlags      string
	Trace       bool
	ShowDefines bool
	LogLevel    int
}

// Register registers the flags in fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigFile, "config", "", "config file. default: "+config.DefaultFile+" if exists")
	fs.Var(&f.IncludeDirs, "I", "add a dir to the search path")
	fs.StringVar(&f.CFlags, "cflags", "", "compiler flags to take more include dirs from. e.g. \"$(CFLAGS)\"")
	fs.BoolVar(&f.Trace, "trace", false, "show file names as they are scanned")
	fs.BoolVar(&f.ShowDefines, "d", false, "show defines")
	fs.IntVar(&f.LogLevel, "log_level", 0, "verbosity of debug logs")
}

// Context returns ctx with a logger writing to w.
func (f *Flags) Context(ctx context.Context, w io.Writer) context.Context {
	return clog.NewContext(ctx, clog.New(w, clog.Options{
		Verbosity: f.LogLevel,
		Prefix:    "mkdeps",
	}))
}

// Config returns the configuration in cwd from the config file and the
// flags. The caller may set more fields before Finish.
func (f *Flags) Config(ctx context.Context, cwd string) (config.Config, error) {
	cfg := config.Default(cwd)
	fname := f.ConfigFile
	required := fname != ""
	if !required {
		fname = config.DefaultFile
	}
	buf, err := os.ReadFile(fname)
	switch {
	case err == nil:
		file, err := config.ParseFile(fname, buf)
		if err != nil {
			return cfg, err
		}
		file.Apply(&cfg)
		if clog.V(ctx, 1) {
			clog.Infof(ctx, "loaded config %s", fname)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
	default:
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	for _, dir := range f.IncludeDirs {
		cfg.AddSearchDir(dir)
	}
	args, err := shutil.Split(f.CFlags)
	if err != nil {
		return cfg, fmt.Errorf("bad -cflags %q: %w", f.CFlags, err)
	}
	for _, dir := range gccutil.IncludeDirs(args) {
		cfg.AddSearchDir(dir)
	}
	cfg.Trace = f.Trace
	cfg.ShowDefines = f.ShowDefines
	return cfg, nil
}

// Scan scans files and registers them to a new project.
// Files that can't be opened are skipped, but still given.
func Scan(ctx context.Context, fsys scandeps.FileSystem, cfg *config.Config, files []string) (*depgraph.Project, error) {
	scanner := scandeps.New(fsys, cfg)
	project := depgraph.NewProject(cfg.Cwd)
	for _, fname := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st, err := scanner.ScanFile(ctx, fname)
		if err != nil {
			if clog.V(ctx, 1) {
				clog.Infof(ctx, "skip %s: %v", fname, err)
			}
		} else {
			project.Register(fname, st)
		}
		project.AddGivenFile(fname)
	}
	return project, nil
}
