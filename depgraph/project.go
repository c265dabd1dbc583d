// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package depgraph builds module level dependencies of scanned sources.
package depgraph

import (
	"sort"

	"go.chromium.org/infra/build/mkdeps/pathutil"
	"go.chromium.org/infra/build/mkdeps/scandeps"
)

// SourceFile is a scanned source file.
type SourceFile struct {
	// Name is the module name, i.e. base name without extension.
	Name string
	// FullName is the path as given.
	FullName string
	Target   scandeps.Target
	// Deps are resolved paths of included files, sorted.
	Deps []string
}

// Project holds scanned files and files given on the command line.
type Project struct {
	cwd   string
	files map[string]*SourceFile

	// module names and full paths of given files.
	given     map[string]bool
	givenFull map[string]bool
}

// NewProject creates a project in the absolute directory cwd.
func NewProject(cwd string) *Project {
	return &Project{
		cwd:       pathutil.Normalize(cwd),
		files:     make(map[string]*SourceFile),
		given:     make(map[string]bool),
		givenFull: make(map[string]bool),
	}
}

// Cwd returns the project directory.
func (p *Project) Cwd() string {
	return p.cwd
}

// Register records the scan result of fullName.
// Files with the same module name replace earlier ones.
func (p *Project) Register(fullName string, st *scandeps.ScanState) *SourceFile {
	sf := &SourceFile{
		Name:     pathutil.ModuleName(fullName),
		FullName: fullName,
		Target:   st.Target,
		Deps:     st.SortedDeps(),
	}
	p.files[sf.Name] = sf
	return sf
}

// AddGivenFile records fullName as a file named on the command line.
// Only given files become link members of modules.
func (p *Project) AddGivenFile(fullName string) {
	p.given[pathutil.ModuleName(fullName)] = true
	p.givenFull[fullName] = true
}

// IsGiven reports whether module name comes from a given file.
func (p *Project) IsGiven(name string) bool {
	return p.given[name]
}

// File returns the file of module name.
func (p *Project) File(name string) (*SourceFile, bool) {
	sf, ok := p.files[name]
	return sf, ok
}

// Files returns registered files sorted by name.
func (p *Project) Files() []*SourceFile {
	files := make([]*SourceFile, 0, len(p.files))
	for _, sf := range p.files {
		files = append(files, sf)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files
}

// givenFullSorted returns given full paths in lexicographic order.
func (p *Project) givenFullSorted() []string {
	var r []string
	for f := range p.givenFull {
		r = append(r, f)
	}
	sort.Strings(r)
	return r
}

// directModules returns the module names of sf's deps that are given
// files.
func (p *Project) directModules(sf *SourceFile) []string {
	var r []string
	for _, d := range sf.Deps {
		name := pathutil.ModuleName(d)
		if p.given[name] {
			r = append(r, name)
		}
	}
	return r
}

// HeaderDirs returns directories of included files other than the
// project directory, sorted. These hint at libraries in use.
func (p *Project) HeaderDirs() []string {
	dirs := make(map[string]bool)
	for _, sf := range p.files {
		for _, d := range sf.Deps {
			dir := pathutil.Dir(pathutil.Normalize(d))
			if merged, err := pathutil.Merge(p.cwd, dir); err == nil {
				if merged != p.cwd {
					dirs[dir] = true
				}
				continue
			}
			if pathutil.Normalize(dir) != p.cwd {
				dirs[dir] = true
			}
		}
	}
	r := make([]string, 0, len(dirs))
	for d := range dirs {
		r = append(r, d)
	}
	sort.Strings(r)
	return r
}
