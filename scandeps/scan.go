// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"go.chromium.org/infra/build/mkdeps/o11y/clog"
	"go.chromium.org/infra/build/mkdeps/pathutil"
)

const libraryMarker = "/* LIBRARY */"

// lineReader reads lines without line terminators.
type lineReader struct {
	r   *bufio.Reader
	err error
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

func (lr *lineReader) next() (string, bool) {
	if lr.err != nil {
		return "", false
	}
	line, err := lr.r.ReadString('\n')
	if err != nil {
		lr.err = err
		if line == "" {
			return "", false
		}
	}
	return strings.TrimRight(line, "\r\n"), true
}

// readErr returns the error that stopped reading, other than io.EOF.
func (lr *lineReader) readErr() error {
	if errors.Is(lr.err, io.EOF) {
		return nil
	}
	return lr.err
}

// Scan scans r of the file fname into st.
// fname is used to find quote includes, and to stop include cycles;
// nothing is done if fname has already been scanned in st.
func (s *Scanner) Scan(ctx context.Context, st *ScanState, r io.Reader, fname string) error {
	key := s.canonical(fname)
	if st.seen[key] {
		return nil
	}
	st.seen[key] = true
	if s.trace {
		clog.Infof(ctx, "scanning %s", fname)
	}
	dir := pathutil.Dir(fname)
	if dir == "" {
		dir = "."
	}

	lr := newLineReader(r)
	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		line = Space.Skip(line)
		switch {
		case strings.HasPrefix(line, "#"):
			s.directive(ctx, st, lr, Space.Skip(line[1:]), dir)
		case strings.HasPrefix(line, "int main"), strings.HasPrefix(line, "main"):
			st.Target = MainTarget
		case strings.HasPrefix(line, libraryMarker):
			st.Target = LibTarget
		}
	}
	return lr.readErr()
}

// directive handles a preprocessor directive line (after '#').
// dir is the directory of the file being scanned.
func (s *Scanner) directive(ctx context.Context, st *ScanState, lr *lineReader, line, dir string) {
	switch {
	case strings.HasPrefix(line, "include"):
		incpath, ok := s.locate(ctx, Space.Skip(strings.TrimPrefix(line, "include")), dir)
		if !ok {
			return
		}
		st.Deps[incpath] = true
		s.include(ctx, st, incpath)
	case strings.HasPrefix(line, "define"):
		s.define(ctx, st, Space.Skip(strings.TrimPrefix(line, "define")))
	case strings.HasPrefix(line, "ifdef"):
		s.conditional(ctx, st, lr, strings.TrimPrefix(line, "ifdef"), true)
	case strings.HasPrefix(line, "ifndef"):
		s.conditional(ctx, st, lr, strings.TrimPrefix(line, "ifndef"), false)
	case strings.HasPrefix(line, "if defined("):
		s.conditional(ctx, st, lr, strings.TrimPrefix(line, "if defined("), true)
	case strings.HasPrefix(line, "if !defined("):
		s.conditional(ctx, st, lr, strings.TrimPrefix(line, "if !defined("), false)
	}
}

func (s *Scanner) define(ctx context.Context, st *ScanState, line string) {
	name := Word.Prefix(line)
	if name == "" {
		return
	}
	if st.Defines[name] {
		return
	}
	st.Defines[name] = true
	if s.showDefines {
		clog.Infof(ctx, "#defined %q", name)
	}
}

// isDefined reports whether macro name is defined in st.
// "0" is never defined, so `#ifdef 0` disables a block.
func isDefined(st *ScanState, name string) bool {
	if name == "0" {
		return false
	}
	return st.Defines[name]
}

// conditional checks the condition of #ifdef (want=true) or #ifndef
// (want=false) and skips the disabled region if the condition doesn't
// hold.
func (s *Scanner) conditional(ctx context.Context, st *ScanState, lr *lineReader, line string, want bool) {
	name := Word.Prefix(Space.Skip(line))
	if isDefined(st, name) == want {
		return
	}
	if clog.V(ctx, 2) {
		clog.Infof(ctx, "skip region for %q", name)
	}
	skipRegion(lr)
}

// skipRegion skips lines until the matching #else or #endif.
// Scanning resumes after #else; #endif closes the region.
func skipRegion(lr *lineReader) {
	nesting := 1
	for {
		line, ok := lr.next()
		if !ok {
			return
		}
		line = Space.Skip(line)
		switch {
		case strings.HasPrefix(line, "#if"):
			nesting++
		case nesting == 1 && strings.HasPrefix(line, "#else"):
			return
		case strings.HasPrefix(line, "#endif"):
			nesting--
			if nesting == 0 {
				return
			}
		}
	}
}

// includeName parses `"name"` or `<name>` and returns name and whether
// it is quote form. The closing delimiter may be missing.
func includeName(line string) (name string, quote bool, ok bool) {
	if line == "" {
		return "", false, false
	}
	var delim byte
	switch line[0] {
	case '"':
		delim = '"'
		quote = true
	case '<':
		delim = '>'
	default:
		// #include MACRO is not supported.
		return "", false, false
	}
	name = line[1:]
	if i := strings.IndexByte(name, delim); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false, false
	}
	return name, quote, true
}

// locate finds the file of an include directive.
// dir is the directory of the including file.
func (s *Scanner) locate(ctx context.Context, line, dir string) (string, bool) {
	name, quote, ok := includeName(line)
	if !ok {
		return "", false
	}
	if quote {
		pop := s.searchPath.Push(dir)
		defer pop()
	}
	for _, d := range s.searchPath.Dirs() {
		candidate, ok := s.candidate(ctx, d, name)
		if !ok {
			continue
		}
		if !exists(ctx, s.fs, candidate) {
			if clog.V(ctx, 2) {
				clog.Infof(ctx, "find check %s: not found", candidate)
			}
			continue
		}
		incpath := s.canonical(candidate)
		if clog.V(ctx, 1) {
			clog.Infof(ctx, "find %q -> %s", name, incpath)
		}
		return incpath, true
	}
	if clog.V(ctx, 1) {
		clog.Infof(ctx, "find %q: not found in %q", name, s.searchPath.Dirs())
	}
	return "", false
}

// candidate returns the path of name in the search directory dir.
func (s *Scanner) candidate(ctx context.Context, dir, name string) (string, bool) {
	switch {
	case strings.HasSuffix(dir, ".hmap"):
		return s.headerMap(ctx, dir).Lookup(name)
	case pathutil.IsAbs(name), dir == ".", dir == "":
		return name, true
	}
	return dir + "/" + name, true
}

// include scans incpath unless it has already been scanned.
// Files that can't be opened are ignored.
func (s *Scanner) include(ctx context.Context, st *ScanState, incpath string) {
	if st.seen[incpath] {
		return
	}
	r, err := s.fs.Open(ctx, incpath)
	if err != nil {
		if clog.V(ctx, 1) {
			clog.Infof(ctx, "open %s: %v", incpath, err)
		}
		return
	}
	defer r.Close()
	err = s.Scan(ctx, st, r, incpath)
	if err != nil {
		clog.Warningf(ctx, "scan %s: %v", incpath, err)
	}
}
