// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package depgraph

import (
	"sort"

	"go.chromium.org/infra/build/mkdeps/pathutil"
	"go.chromium.org/infra/build/mkdeps/scandeps"
)

// Module is a file with the transitive closure of its module deps.
type Module struct {
	Name   string
	Target scandeps.Target

	// Deps are module names to link, sorted.
	Deps []string

	// FullDeps are given source paths and the direct dep paths that
	// matched them, sorted.
	FullDeps []string
}

// IsTarget reports whether m produces a program or a library.
func (m *Module) IsTarget() bool {
	return m.Target != scandeps.NotTarget
}

type stringSet map[string]bool

func (s stringSet) add(v string) bool {
	if s[v] {
		return false
	}
	s[v] = true
	return true
}

func (s stringSet) sorted() []string {
	r := make([]string, 0, len(s))
	for v := range s {
		r = append(r, v)
	}
	sort.Strings(r)
	return r
}

// ComputeClosures computes the module closure of every file, sorted by
// name.
// A module starts with the given modules its file includes, and a main
// program with itself too. Then the direct deps of each member are
// merged until nothing changes.
func (p *Project) ComputeClosures() []*Module {
	files := p.Files()
	givenFull := p.givenFullSorted()

	sets := make(map[string]stringSet, len(files))
	var mods []*Module
	for _, sf := range files {
		deps := make(stringSet)
		for _, name := range p.directModules(sf) {
			deps.add(name)
		}
		full := make(stringSet)
		for _, d := range sf.Deps {
			addFullDep(full, d, givenFull, true)
		}
		if sf.Target == scandeps.MainTarget {
			deps.add(sf.Name)
			addFullDep(full, sf.Name, givenFull, false)
		}
		sets[sf.Name] = deps
		mods = append(mods, &Module{
			Name:     sf.Name,
			Target:   sf.Target,
			FullDeps: full.sorted(),
		})
	}

	queue := make([]string, 0, len(files))
	queued := make(map[string]bool, len(files))
	for _, sf := range files {
		queue = append(queue, sf.Name)
		queued[sf.Name] = true
	}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		queued[name] = false
		deps := sets[name]
		changed := false
		for _, member := range deps.sorted() {
			sf, ok := p.files[member]
			if !ok {
				continue
			}
			for _, d := range p.directModules(sf) {
				if deps.add(d) {
					changed = true
				}
			}
		}
		if changed && !queued[name] {
			queue = append(queue, name)
			queued[name] = true
		}
	}

	for _, m := range mods {
		m.Deps = sets[m.Name].sorted()
	}
	return mods
}

// addFullDep adds the first given path whose module name matches dep
// and is not in target yet. If literal, dep itself is added too.
func addFullDep(target stringSet, dep string, givenFull []string, literal bool) {
	name := pathutil.ModuleName(dep)
	for _, f := range givenFull {
		if pathutil.ModuleName(f) != name {
			continue
		}
		if !target.add(f) {
			continue
		}
		if literal {
			target.add(dep)
		}
		return
	}
}

// ClosureHeaders returns the sorted union of included files of every
// member of m.
func (p *Project) ClosureHeaders(m *Module) []string {
	headers := make(stringSet)
	for _, member := range m.Deps {
		sf, ok := p.files[member]
		if !ok {
			continue
		}
		for _, d := range sf.Deps {
			headers.add(d)
		}
	}
	return headers.sorted()
}
