// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package depgraph

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// Level is a set of modules with the same depcount.
type Level struct {
	Depcount int
	Names    []string
}

// Levels is component dependency metrics of modules.
//
// The depcount of a module is 1 + the number of its closure members.
// CCD (cumulative component dependency) is the sum of depcounts,
// ACD its average and NCCD CCD normalized by the CCD of a balanced
// binary tree of the same size.
type Levels struct {
	Components int
	CCD        int
	ACD        float64
	NCCD       float64
	ByDepcount []Level
}

// ComputeLevels computes component dependency metrics of mods.
func ComputeLevels(mods []*Module) Levels {
	var l Levels
	byCount := make(map[int][]string)
	for _, m := range mods {
		depcount := 1 + len(m.Deps)
		l.CCD += depcount
		l.Components++
		byCount[depcount] = append(byCount[depcount], m.Name)
	}
	if l.Components > 0 {
		l.ACD = float64(l.CCD) / float64(l.Components)
		n1 := float64(l.Components + 1)
		if balanced := n1*(math.Log2(n1)-1) + 1; balanced != 0 {
			l.NCCD = float64(l.CCD) / balanced
		}
	}
	for depcount, names := range byCount {
		sort.Strings(names)
		l.ByDepcount = append(l.ByDepcount, Level{Depcount: depcount, Names: names})
	}
	sort.Slice(l.ByDepcount, func(i, j int) bool {
		return l.ByDepcount[i].Depcount < l.ByDepcount[j].Depcount
	})
	return l
}

// Report writes the metrics in human readable form.
func (l Levels) Report(w io.Writer) error {
	_, err := fmt.Fprintf(w, "components=%d   ccd=%d  acd=%g  nccd=%g\n", l.Components, l.CCD, l.ACD, l.NCCD)
	if err != nil {
		return err
	}
	for _, lv := range l.ByDepcount {
		_, err = fmt.Fprintf(w, "\nlevel %d: %s\n", lv.Depcount, strings.Join(lv.Names, " "))
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}
