// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package makeutil provides utilities for make: parsers of *.d deps
// files and of makefile rules.
package makeutil

import (
	"context"
	"fmt"
	"io/fs"

	"go.chromium.org/infra/build/mkdeps/o11y/clog"
)

// ParseDepsFile parses the deps file fname on fsys.
func ParseDepsFile(ctx context.Context, fsys fs.FS, fname string) ([]string, error) {
	b, err := fs.ReadFile(fsys, fname)
	if err != nil {
		return nil, fmt.Errorf("failed to read deps file: %w", err)
	}
	deps := ParseDeps(b)
	if clog.V(ctx, 1) {
		clog.Infof(ctx, "deps %s => %q", fname, deps)
	}
	return deps, nil
}

// ParseDeps returns the inputs of the first rule in a deps file, such as
// `<output>: <input> ...` written by gcc -MD, without duplicates.
// Rules without prerequisites, like the phony header rules of gcc -MP,
// are skipped.
func ParseDeps(b []byte) []string {
	for _, r := range ParseMakefile(b).Rules {
		if len(r.Prereqs) == 0 {
			continue
		}
		var inputs []string
		seen := make(map[string]bool)
		for _, p := range r.Prereqs {
			if seen[p] {
				continue
			}
			seen[p] = true
			inputs = append(inputs, p)
		}
		return inputs
	}
	return nil
}
