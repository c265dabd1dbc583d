// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package gccutil provides utilities for gcc and clang command lines.
package gccutil

import "strings"

// includeFlags are flags that add a dir to the include search path.
// Longer flags come first so that prefix matching picks them.
var includeFlags = []string{
	"--include-directory=",
	"--include-directory",
	"-isystem",
	"-iquote",
	"-idirafter",
	"-I",
}

// IncludeDirs returns the include dirs given by args, in order.
// A flag may be joined with its dir ("-Idir") or separate ("-I dir").
// full set of command line flags for include dirs can be found in
// https://clang.llvm.org/docs/ClangCommandLineReference.html#include-path-management
func IncludeDirs(args []string) []string {
	var dirs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		for _, f := range includeFlags {
			if !strings.HasPrefix(arg, f) {
				continue
			}
			dir := strings.TrimPrefix(arg, f)
			if dir == "" && !strings.HasSuffix(f, "=") {
				if i+1 >= len(args) {
					break
				}
				i++
				dir = args[i]
			}
			if dir != "" {
				dirs = append(dirs, dir)
			}
			break
		}
	}
	return dirs
}
