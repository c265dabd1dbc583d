// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.chromium.org/infra/build/mkdeps/config"
	"go.chromium.org/infra/build/mkdeps/o11y/clog"
	"go.chromium.org/infra/build/mkdeps/pathutil"
)

// Target is a classification of a scanned file.
type Target int

const (
	// NotTarget is a file that produces neither a program nor a library.
	NotTarget Target = iota
	// MainTarget is a file that defines main.
	MainTarget
	// LibTarget is a file marked with `/* LIBRARY */`.
	LibTarget
)

func (t Target) String() string {
	switch t {
	case NotTarget:
		return "none"
	case MainTarget:
		return "main"
	case LibTarget:
		return "library"
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

// ScanState is a result of scanning a source file and the headers it
// includes.
type ScanState struct {
	// Deps are paths of included files.
	Deps map[string]bool

	// Defines are macro names seen in #define.
	Defines map[string]bool

	// Target is the classification of the scanned files.
	Target Target

	// seen are files already scanned, to stop include cycles.
	seen map[string]bool
}

// NewScanState creates an empty ScanState.
func NewScanState() *ScanState {
	return &ScanState{
		Deps:    make(map[string]bool),
		Defines: make(map[string]bool),
		seen:    make(map[string]bool),
	}
}

// SortedDeps returns Deps in lexicographic order.
func (st *ScanState) SortedDeps() []string {
	return sortedKeys(st.Deps)
}

// SortedDefines returns Defines in lexicographic order.
func (st *ScanState) SortedDefines() []string {
	return sortedKeys(st.Defines)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Scanner is a C/C++ dependency scanner.
type Scanner struct {
	fs         FileSystem
	searchPath *SearchPath
	cwd        string

	trace       bool
	showDefines bool

	// dir -> parsed header map, nil if the hmap is broken.
	hmaps map[string]HeaderMap
}

// New creates a new Scanner reading files from fsys, configured by cfg.
func New(fsys FileSystem, cfg *config.Config) *Scanner {
	return &Scanner{
		fs:          fsys,
		searchPath:  NewSearchPath(cfg.SearchDirs),
		cwd:         pathutil.Normalize(cfg.Cwd),
		trace:       cfg.Trace,
		showDefines: cfg.ShowDefines,
		hmaps:       make(map[string]HeaderMap),
	}
}

// ScanFile scans a source file fname and the files it includes.
// It returns error if fname can't be opened or read.
func (s *Scanner) ScanFile(ctx context.Context, fname string) (*ScanState, error) {
	r, err := s.fs.Open(ctx, fname)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	started := time.Now()
	st := NewScanState()
	err = s.Scan(ctx, st, r, fname)
	if dur := time.Since(started); dur > time.Second {
		clog.Infof(ctx, "slow scan %s %s", fname, dur)
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", fname, err)
	}
	return st, nil
}

// canonical returns the form of path to record in deps: normalized,
// and relative to the current directory if it is under it.
func (s *Scanner) canonical(p string) string {
	p = pathutil.Normalize(p)
	if strings.HasPrefix(p, "../") {
		p = pathutil.RebaseToCwd(p, s.cwd)
	}
	if rel, ok := pathutil.Rel(p, s.cwd); ok {
		p = rel
	}
	return p
}
