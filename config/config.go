// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package config provides the run configuration of mkdeps.
//
// A Config is assembled once from defaults, an optional config file
// and command line flags, then finished and shared read-only by the
// scanner, the dependency graph and the rule emitter.
package config

import (
	"fmt"

	"go.chromium.org/infra/build/mkdeps/pathutil"
)

// Marker separates the hand-written part of a makefile
// from the generated part.
const Marker = "# Generated automatically. Do not edit beyond here."

// DefaultFile is the name of the config file looked up in the current
// directory.
const DefaultFile = "mkdeps.toml"

// Config is the configuration of a run.
type Config struct {
	// Cwd is the absolute, slash-separated current directory.
	Cwd string

	// SearchDirs are include search directories, in lookup order.
	// It starts with ".". Entries ending with ".hmap" are header maps.
	SearchDirs []string

	// ObjectDirs are directories to place objects in.
	// Empty means objects next to the makefile.
	ObjectDirs []string

	// ABIs are additional ABI variants, e.g. "pic".
	ABIs []string

	ObjectExt    string // extension of objects, ".o"
	ExeExt       string // extension of executables, ""
	LibPrefix    string // prefix of libraries, "lib"
	LibSuffix    string // suffix of shared libraries, ".so.$(SONAME)"
	ArSuffix     string // suffix of static libraries, ".a"
	HeaderPrefix string // prefix prepended to header dependencies

	// Makefile is the makefile to update.
	Makefile string

	// Append keeps the existing generated part and appends to it.
	Append bool
	// PrecompHeaders generates precompiled header rules per file.
	PrecompHeaders bool
	// PrecompTargets generates precompiled header rules per target.
	PrecompTargets bool
	// PotDeps generates rules for localization templates (*.pot).
	PotDeps bool

	// Trace logs each scanned file.
	Trace bool
	// ShowDefines logs each recorded macro definition.
	ShowDefines bool
}

// Default returns the default configuration for cwd.
func Default(cwd string) Config {
	return Config{
		Cwd:        pathutil.ToSlash(cwd),
		SearchDirs: []string{"."},
		ObjectExt:  ".o",
		LibPrefix:  "lib",
		LibSuffix:  ".so.$(SONAME)",
		ArSuffix:   ".a",
		Makefile:   "makefile",
	}
}

// AddSearchDir appends dir to the include search path.
func (c *Config) AddSearchDir(dir string) {
	c.SearchDirs = append(c.SearchDirs, pathutil.ToSlash(dir))
}

// AddObjectDir adds an object directory.
func (c *Config) AddObjectDir(dir string) {
	c.ObjectDirs = append(c.ObjectDirs, pathutil.ToSlash(dir))
}

// AddABI adds an ABI variant.
func (c *Config) AddABI(abi string) {
	c.ABIs = append(c.ABIs, abi)
}

// Finish validates c and returns the configuration to share.
// Duplicated object dirs and ABIs are removed, keeping the first
// occurrence, so the output order follows the command line.
// The returned Config must not be modified.
func (c Config) Finish() (*Config, error) {
	if !pathutil.IsAbs(c.Cwd) {
		return nil, fmt.Errorf("cwd must be absolute: %q", c.Cwd)
	}
	if c.Makefile == "" {
		return nil, fmt.Errorf("no makefile name")
	}
	c.Cwd = pathutil.Normalize(c.Cwd)
	c.SearchDirs = uniq(c.SearchDirs)
	c.ObjectDirs = uniq(c.ObjectDirs)
	c.ABIs = uniq(c.ABIs)
	return &c, nil
}

// uniq returns a copy of s without duplicates and empty strings.
func uniq(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(s))
	r := make([]string, 0, len(s))
	for _, v := range s {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		r = append(r, v)
	}
	return r
}
