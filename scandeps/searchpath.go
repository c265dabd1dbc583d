// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

// SearchPath is an ordered list of include directories.
type SearchPath struct {
	dirs []string
}

// NewSearchPath creates a search path of dirs.
func NewSearchPath(dirs []string) *SearchPath {
	return &SearchPath{dirs: append([]string(nil), dirs...)}
}

// Push prepends dir to the search path, for `#include "..."` lookup
// in the directory of the including file.
// The returned func removes it again.
func (sp *SearchPath) Push(dir string) (pop func()) {
	sp.dirs = append([]string{dir}, sp.dirs...)
	return func() {
		sp.dirs = sp.dirs[1:]
	}
}

// Dirs returns the directories in lookup order.
// The slice is valid until next Push or pop.
func (sp *SearchPath) Dirs() []string {
	return sp.dirs
}
