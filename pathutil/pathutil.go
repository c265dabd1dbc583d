// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package pathutil provides slash-separated path manipulation used to
// resolve and display include paths.
//
// Unlike path.Clean, Normalize never collapses a leading ".." (there is
// no known directory to cancel it against), accepts backslashes and
// drive letters, and keeps relative paths relative.
package pathutil

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAbsolute is returned when an absolute path is used where
// a relative one is required.
var ErrAbsolute = errors.New("absolute path")

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func hasDrive(p string) bool {
	return len(p) >= 2 && p[1] == ':' && isDriveLetter(p[0])
}

// IsAbs reports whether p is absolute, i.e. starts with a separator
// or a drive letter followed by a colon.
func IsAbs(p string) bool {
	if p == "" {
		return false
	}
	return p[0] == '/' || p[0] == '\\' || hasDrive(p)
}

// ToSlash converts backslashes to slashes and lower-cases
// a leading drive letter.
func ToSlash(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if hasDrive(p) && 'A' <= p[0] && p[0] <= 'Z' {
		p = string(p[0]-'A'+'a') + p[1:]
	}
	return p
}

// splitRoot splits a slash-separated path into its root ("/", "c:/", "c:"
// or "") and the rest.
func splitRoot(p string) (string, string) {
	switch {
	case hasDrive(p) && len(p) > 2 && p[2] == '/':
		return p[:3], p[3:]
	case hasDrive(p):
		return p[:2], p[2:]
	case strings.HasPrefix(p, "/"):
		return "/", p[1:]
	}
	return "", p
}

// Normalize returns the shortest equivalent of p.
//
//	a/./b     -> a/b
//	a//b/     -> a/b
//	a/b/../c  -> a/c
//	../a/../b -> ../b
//	/../a     -> /a
//	C:\a\b    -> c:/a/b
//
// A relative path that reduces to nothing is ".". Normalize is idempotent.
func Normalize(p string) string {
	if p == "" {
		return ""
	}
	root, rest := splitRoot(ToSlash(p))
	elems := make([]string, 0, strings.Count(rest, "/")+1)
	for _, e := range strings.Split(rest, "/") {
		switch e {
		case "", ".":
			continue
		case "..":
			if n := len(elems); n > 0 && elems[n-1] != ".." {
				elems = elems[:n-1]
				continue
			}
			if root != "" {
				// nothing above the root.
				continue
			}
		}
		elems = append(elems, e)
	}
	s := root + strings.Join(elems, "/")
	if s == "" {
		return "."
	}
	return s
}

// Merge joins tail onto head and normalizes the result.
// It fails if tail is absolute.
func Merge(head, tail string) (string, error) {
	if IsAbs(tail) {
		return "", fmt.Errorf("merge %q onto %q: %w", tail, head, ErrAbsolute)
	}
	if head == "" {
		return Normalize(tail), nil
	}
	return Normalize(head + "/" + tail), nil
}

// Rel returns p relative to dir if p is strictly under dir.
// Both paths are expected to be normalized.
func Rel(p, dir string) (string, bool) {
	if dir == "" || len(p) <= len(dir) || !strings.HasPrefix(p, dir) {
		return "", false
	}
	if strings.HasSuffix(dir, "/") {
		// root
		return p[len(dir):], true
	}
	if p[len(dir)] != '/' {
		return "", false
	}
	return p[len(dir)+1:], true
}

// RebaseToCwd normalizes p, and if it still escapes upwards ("../..."),
// checks whether it comes back into cwd (an absolute path). In that case
// it returns the path relative to cwd. e.g. with cwd=/src/proj,
// "../proj/a.h" is "a.h", while "../other/b.h" is kept as is.
func RebaseToCwd(p, cwd string) string {
	p = Normalize(p)
	if !strings.HasPrefix(p, "../") {
		return p
	}
	merged, err := Merge(cwd, p)
	if err != nil {
		return p
	}
	if rel, ok := Rel(merged, Normalize(cwd)); ok {
		return rel
	}
	return p
}

// Dir returns p without its final element. It returns "" if p has no
// separator, and "/" for a file in the root directory.
func Dir(p string) string {
	p = ToSlash(p)
	i := strings.LastIndexByte(p, '/')
	switch {
	case i < 0:
		return ""
	case i == 0:
		return "/"
	}
	return p[:i]
}

// Base returns the last element of p.
func Base(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}

// StripExt removes the extension of the last element of p.
func StripExt(p string) string {
	i := strings.LastIndexByte(p, '.')
	if i < 0 || strings.ContainsAny(p[i:], `/\`) {
		return p
	}
	return p[:i]
}

// ModuleName returns the base name of p without extension,
// e.g. "src/foo.cpp" -> "foo". It is the key of a module.
func ModuleName(p string) string {
	return StripExt(Base(p))
}

func stripDrive(p string) string {
	if hasDrive(p) {
		return p[2:]
	}
	return p
}

// Clean returns the form of name used in generated rules: relative to cwd
// when name lives under cwd, otherwise the shorter of its absolute form
// and name itself. Colons of drive letters are removed so the result is
// usable as a make target.
func Clean(name, cwd string) string {
	abs := name
	if !IsAbs(name) {
		if m, err := Merge(cwd, name); err == nil {
			abs = m
		}
	}
	abs = stripDrive(Normalize(abs))
	if rel, ok := Rel(abs, stripDrive(Normalize(cwd))); ok {
		return rel
	}
	if len(abs) > len(name) {
		return name
	}
	return abs
}
