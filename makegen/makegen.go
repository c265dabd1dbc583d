// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package makegen generates makefile rules from module dependencies.
package makegen

import (
	"context"
	"io/fs"
	"sort"
	"strings"

	"go.chromium.org/infra/build/mkdeps/config"
	"go.chromium.org/infra/build/mkdeps/depgraph"
	"go.chromium.org/infra/build/mkdeps/pathutil"
	"go.chromium.org/infra/build/mkdeps/scandeps"
)

const (
	precompiledName = "precompiled"
	pchIncls        = "-incls.hpp"
	pchPrecomp      = "-precomp.hpp"
	gchSuffix       = ".gch"
)

// FileSystem is a filesystem to write makefiles and precompiled header
// sources. osfs.OSFS implements it.
type FileSystem interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
	WriteFile(ctx context.Context, name string, data []byte, perm fs.FileMode) error
	Stat(ctx context.Context, name string) (fs.FileInfo, error)
	Remove(ctx context.Context, name string) error
	Rename(ctx context.Context, oldname, newname string) error
}

// Generator generates the rules of a project.
type Generator struct {
	cfg     *config.Config
	fs      FileSystem
	project *depgraph.Project

	fullTargets    []string
	fullLibHeaders []string
}

// New creates a generator of project.
func New(cfg *config.Config, fsys FileSystem, project *depgraph.Project) *Generator {
	return &Generator{
		cfg:     cfg,
		fs:      fsys,
		project: project,
	}
}

// Generate returns the generated part of the makefile for mods, the
// closures of the project.
func (g *Generator) Generate(ctx context.Context, mods []*depgraph.Module) (string, error) {
	g.fullTargets = nil
	g.fullLibHeaders = nil
	w := &RuleWriter{}

	w.Text("# Object dependencies.\n")
	err := g.objectRules(ctx, w)
	if err != nil {
		return "", err
	}

	w.Text("# Main programs\n")
	g.linkRules(w, mods)
	if g.cfg.PotDeps {
		g.potRules(w, mods)
	}
	w.Var("FULL_TARGETS", g.fullTargets)
	w.Text("full_targets: $(FULL_TARGETS)\n")
	w.Var("FULL_LIB_HEADERS", g.fullLibHeaders)

	if g.cfg.PrecompTargets {
		w.Text("\n# Precompiled headers.\n")
		err = g.targetPCHRules(ctx, w, mods)
		if err != nil {
			return "", err
		}
	}
	return w.String(), nil
}

// clean returns the form of dep used in rules.
func (g *Generator) clean(dep string) string {
	return pathutil.Clean(dep, g.cfg.Cwd)
}

func (g *Generator) headers(deps []string) []string {
	r := make([]string, 0, len(deps))
	for _, d := range deps {
		r = append(r, g.cfg.HeaderPrefix+g.clean(d))
	}
	return r
}

// objectPrefixes returns path prefixes of object dirs, or of def if
// there are none. "" is the current directory.
func objectPrefixes(dirs []string, def string) []string {
	if len(dirs) == 0 {
		dirs = []string{def}
	}
	r := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d == "" || d == "." {
			r = append(r, "")
			continue
		}
		r = append(r, strings.TrimSuffix(d, "/")+"/")
	}
	return r
}

// objectRules writes compile dependencies of each file.
func (g *Generator) objectRules(ctx context.Context, w *RuleWriter) error {
	prefixes := objectPrefixes(g.cfg.ObjectDirs, "")
	for _, sf := range g.project.Files() {
		headers := g.headers(sf.Deps)
		var targets []string
		switch {
		case sf.Name == precompiledName:
			for _, pfx := range prefixes {
				targets = append(targets, pfx+precompiledName+".hpp"+gchSuffix)
			}
		case g.cfg.PrecompHeaders:
			for _, pfx := range prefixes {
				gch := pfx + sf.Name + pchIncls + gchSuffix
				w.Rule([]string{pfx + sf.Name + g.cfg.ObjectExt}, []string{gch})
				targets = append(targets, gch)
				for _, abi := range g.cfg.ABIs {
					gch := pfx + sf.Name + pchIncls + "-" + abi + gchSuffix
					w.Rule([]string{pfx + sf.Name + "-" + abi + g.cfg.ObjectExt}, []string{gch})
					targets = append(targets, gch)
				}
			}
			err := g.writeIncludes(ctx, sf.Name+pchIncls, headers)
			if err != nil {
				return err
			}
		default:
			for _, pfx := range prefixes {
				targets = append(targets, pfx+sf.Name+g.cfg.ObjectExt)
				for _, abi := range g.cfg.ABIs {
					targets = append(targets, pfx+sf.Name+"-"+abi+g.cfg.ObjectExt)
				}
			}
		}
		w.Rule(targets, append([]string{sf.FullName}, headers...))

		if sf.Target == scandeps.LibTarget {
			name := g.clean(sf.Name)
			w.Var("DEPS_"+name, headers)
			w.Text("\n")
			g.fullLibHeaders = append(g.fullLibHeaders, "$(DEPS_"+name+")")
		}
	}
	return nil
}

// writeIncludes writes a header including headers.
func (g *Generator) writeIncludes(ctx context.Context, fname string, headers []string) error {
	var sb strings.Builder
	for _, h := range headers {
		sb.WriteString("#include \"")
		sb.WriteString(h)
		sb.WriteString("\"\n")
	}
	return g.fs.WriteFile(ctx, fname, []byte(sb.String()), 0644)
}

func objects(pfx string, deps []string, ext string) []string {
	r := make([]string, 0, len(deps))
	for _, d := range deps {
		r = append(r, pfx+d+ext)
	}
	return r
}

func (g *Generator) libName(name string) string {
	if strings.HasPrefix(name, g.cfg.LibPrefix) {
		return name
	}
	return g.cfg.LibPrefix + name
}

func (g *Generator) addTarget(w *RuleWriter, target string, objs []string) {
	g.fullTargets = append(g.fullTargets, target)
	w.Rule([]string{target}, objs)
}

// linkRules writes rules of executables and libraries in each object
// there are none. "" is the current directory.
func (g *Generator) linkRules(w *RuleWriter, mods []*depgraph.Module) {
	cfg := g.cfg
	for _, pfx := range objectPrefixes(cfg.ObjectDirs, ".") {
		for _, m := range mods {
			switch m.Target {
			case scandeps.MainTarget:
				g.addTarget(w, pfx+m.Name+cfg.ExeExt, objects(pfx, m.Deps, cfg.ObjectExt))
				for _, abi := range cfg.ABIs {
					g.addTarget(w, pfx+m.Name+"-"+abi+cfg.ExeExt, objects(pfx, m.Deps, "-"+abi+cfg.ObjectExt))
				}
			case scandeps.LibTarget:
				lib := pfx + g.libName(m.Name)
				objs := objects(pfx, m.Deps, cfg.ObjectExt)
				g.addTarget(w, lib+cfg.ArSuffix, objs)
				pic := false
				for _, abi := range cfg.ABIs {
					abiObjs := objects(pfx, m.Deps, "-"+abi+cfg.ObjectExt)
					if abi == "pic" {
						pic = true
						g.addTarget(w, lib+cfg.LibSuffix, abiObjs)
						continue
					}
					g.addTarget(w, lib+"-"+abi+cfg.LibSuffix, abiObjs)
				}
				if !pic {
					g.addTarget(w, lib+cfg.LibSuffix, objs)
				}
			}
		}
	}
}

// potRules writes rules of gettext templates of each target.
func (g *Generator) potRules(w *RuleWriter, mods []*depgraph.Module) {
	for _, m := range mods {
		if !m.IsTarget() {
			continue
		}
		w.Rule([]string{"pot/" + m.Name + ".pot"}, m.FullDeps)
	}
}

// targetPCHRules writes a precompiled header rule per target, covering
// the headers of all modules linked into it.
func (g *Generator) targetPCHRules(ctx context.Context, w *RuleWriter, mods []*depgraph.Module) error {
	prefixes := objectPrefixes(g.cfg.ObjectDirs, ".")
	for _, m := range mods {
		if !m.IsTarget() {
			continue
		}
		var targets []string
		for _, pfx := range prefixes {
			if pfx == "" {
				pfx = "./"
			}
			targets = append(targets, pfx+m.Name+pchPrecomp+gchSuffix)
			for _, abi := range g.cfg.ABIs {
				targets = append(targets, pfx+m.Name+pchPrecomp+"-"+abi+gchSuffix)
			}
		}
		set := make(map[string]bool)
		var headers []string
		for _, h := range g.project.ClosureHeaders(m) {
			h = g.clean(h)
			if set[h] {
				continue
			}
			set[h] = true
			headers = append(headers, h)
		}
		sort.Strings(headers)
		w.Rule(targets, headers)
		err := g.writeIncludes(ctx, m.Name+pchPrecomp, headers)
		if err != nil {
			return err
		}
	}
	return nil
}
