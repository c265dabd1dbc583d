// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package depgraph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"
)

// Graph returns the directed graph of modules, where an edge a -> b
// means a's file includes the header of given module b.
func (p *Project) Graph() (graph.Graph[string, string], error) {
	g := graph.New(graph.StringHash, graph.Directed())
	files := p.Files()
	for _, sf := range files {
		err := g.AddVertex(sf.Name)
		if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("add module %s: %w", sf.Name, err)
		}
	}
	for _, sf := range files {
		for _, d := range p.directModules(sf) {
			if d == sf.Name {
				continue
			}
			if _, ok := p.files[d]; !ok {
				// given but not scanned.
				if err := g.AddVertex(d); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
					return nil, fmt.Errorf("add module %s: %w", d, err)
				}
			}
			err := g.AddEdge(sf.Name, d)
			if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("add dep %s -> %s: %w", sf.Name, d, err)
			}
		}
	}
	return g, nil
}

// Edges returns module -> sorted direct deps of g.
func Edges(g graph.Graph[string, string]) (map[string][]string, error) {
	adj, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	m := make(map[string][]string, len(adj))
	for name, edges := range adj {
		deps := make([]string, 0, len(edges))
		for d := range edges {
			deps = append(deps, d)
		}
		sort.Strings(deps)
		m[name] = deps
	}
	return m, nil
}

// Cycles returns the module cycles, i.e. strongly connected components
// with more than one module. Each cycle and the list are sorted.
func (p *Project) Cycles() ([][]string, error) {
	g, err := p.Graph()
	if err != nil {
		return nil, err
	}
	sccs, err := graph.StronglyConnectedComponents(g)
	if err != nil {
		return nil, fmt.Errorf("strongly connected components: %w", err)
	}
	var cycles [][]string
	for _, scc := range sccs {
		if len(scc) < 2 {
			continue
		}
		c := append([]string(nil), scc...)
		sort.Strings(c)
		cycles = append(cycles, c)
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})
	return cycles, nil
}
