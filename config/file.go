// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// File is the content of a config file, e.g.
//
//	include_dirs = ["include", "../common/include"]
//	object_dirs = ["obj/release", "obj/debug"]
//	abis = ["pic"]
//	object_ext = ".o"
//	lib_suffix = ".so.$(SONAME)"
//	header_prefix = "$(srcdir)/"
//
// Lists are added before command line values; scalars are overridden by
// command line flags.
type File struct {
	IncludeDirs  []string `toml:"include_dirs"`
	ObjectDirs   []string `toml:"object_dirs"`
	ABIs         []string `toml:"abis"`
	ObjectExt    *string  `toml:"object_ext"`
	ExeExt       *string  `toml:"exe_ext"`
	LibPrefix    *string  `toml:"lib_prefix"`
	LibSuffix    *string  `toml:"lib_suffix"`
	ArSuffix     *string  `toml:"ar_suffix"`
	HeaderPrefix *string  `toml:"header_prefix"`
	Makefile     *string  `toml:"makefile"`
	Append       *bool    `toml:"append"`
	PotDeps      *bool    `toml:"potdeps"`
}

// ParseFile parses config file content. name is used in errors.
func ParseFile(name string, data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", name, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		var keys []string
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	return &f, nil
}

// Apply sets values of f in c.
func (f *File) Apply(c *Config) {
	if f == nil {
		return
	}
	for _, dir := range f.IncludeDirs {
		c.AddSearchDir(dir)
	}
	for _, dir := range f.ObjectDirs {
		c.AddObjectDir(dir)
	}
	for _, abi := range f.ABIs {
		c.AddABI(abi)
	}
	setString(&c.ObjectExt, f.ObjectExt)
	setString(&c.ExeExt, f.ExeExt)
	setString(&c.LibPrefix, f.LibPrefix)
	setString(&c.LibSuffix, f.LibSuffix)
	setString(&c.ArSuffix, f.ArSuffix)
	setString(&c.HeaderPrefix, f.HeaderPrefix)
	setString(&c.Makefile, f.Makefile)
	if f.Append != nil {
		c.Append = *f.Append
	}
	if f.PotDeps != nil {
		c.PotDeps = *f.PotDeps
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
