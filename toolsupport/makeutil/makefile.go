// Copyright 2025 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package makeutil

import (
	"bytes"
	"fmt"
	"strings"
)

// Rule is a makefile rule.
type Rule struct {
	Targets []string
	Prereqs []string
}

// Makefile is rules and simple variables of a makefile.
// Recipes, conditionals and functions are not interpreted.
type Makefile struct {
	Rules []Rule
	Vars  map[string][]string

	// target -> prereqs, merged over rules.
	prereqs map[string][]string
}

// ParseMakefile parses rules and variable assignments in b.
func ParseMakefile(b []byte) *Makefile {
	mf := &Makefile{
		Vars:    make(map[string][]string),
		prereqs: make(map[string][]string),
	}
	for _, line := range logicalLines(b) {
		if line == "" || line[0] == '\t' {
			// recipe
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		if name, value, ok := assignment(line); ok {
			mf.Vars[name] = tokens(value)
			continue
		}
		i := ruleColon(line)
		if i < 0 {
			continue
		}
		r := Rule{
			Targets: tokens(line[:i]),
			Prereqs: tokens(line[i+1:]),
		}
		mf.Rules = append(mf.Rules, r)
		for _, t := range r.Targets {
			mf.prereqs[t] = append(mf.prereqs[t], r.Prereqs...)
		}
	}
	return mf
}

// Prereqs returns the prerequisites of target, with $(VAR) expanded.
func (mf *Makefile) Prereqs(target string) ([]string, error) {
	prereqs, ok := mf.prereqs[target]
	if !ok {
		return nil, fmt.Errorf("target not found: %q", target)
	}
	return mf.Expand(prereqs), nil
}

// Targets returns all targets in order of appearance.
func (mf *Makefile) Targets() []string {
	var targets []string
	seen := make(map[string]bool)
	for _, r := range mf.Rules {
		for _, t := range r.Targets {
			if seen[t] {
				continue
			}
			seen[t] = true
			targets = append(targets, t)
		}
	}
	return targets
}

// Expand replaces tokens of the form $(VAR) with the values of VAR.
// Unknown variables are kept as is.
func (mf *Makefile) Expand(toks []string) []string {
	return mf.expand(toks, make(map[string]bool))
}

func (mf *Makefile) expand(toks []string, expanding map[string]bool) []string {
	var r []string
	for _, t := range toks {
		name, ok := varRef(t)
		if !ok || expanding[name] {
			r = append(r, t)
			continue
		}
		value, ok := mf.Vars[name]
		if !ok {
			r = append(r, t)
			continue
		}
		expanding[name] = true
		r = append(r, mf.expand(value, expanding)...)
		expanding[name] = false
	}
	return r
}

func varRef(t string) (string, bool) {
	if strings.HasPrefix(t, "$(") && strings.HasSuffix(t, ")") {
		return t[2 : len(t)-1], true
	}
	return "", false
}

// logicalLines splits b into lines, joining backslash continuations.
func logicalLines(b []byte) []string {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	var lines []string
	var cur strings.Builder
	for _, l := range strings.Split(string(b), "\n") {
		if strings.HasSuffix(l, `\`) && !strings.HasSuffix(l, `\\`) {
			cur.WriteString(strings.TrimSuffix(l, `\`))
			cur.WriteByte(' ')
			continue
		}
		cur.WriteString(l)
		lines = append(lines, cur.String())
		cur.Reset()
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// assignment parses `NAME = value`, `NAME := value` and `NAME += value`
// (the latter as plain assignment of the rest).
func assignment(line string) (string, string, bool) {
	i := strings.IndexByte(line, '=')
	if i <= 0 {
		return "", "", false
	}
	name := line[:i]
	if c := strings.IndexByte(name, ':'); c >= 0 && c != len(name)-1 {
		// rule with `=` in prerequisites.
		return "", "", false
	}
	name = strings.TrimRight(name, ":+?")
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, " \t") {
		return "", "", false
	}
	return name, line[i+1:], true
}

// ruleColon returns the index of the colon separating targets and
// prerequisites, or -1. Escaped colons and "c:/" drive letters are not
// separators.
func ruleColon(line string) int {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case ':':
			if i == 1 && i+1 < len(line) && line[i+1] == '/' {
				continue
			}
			return i
		}
	}
	return -1
}

func tokens(s string) []string {
	var r []string
	b := []byte(s)
	for len(b) > 0 {
		var tok string
		tok, b = nextToken(b)
		if tok != "" {
			r = append(r, tok)
		}
	}
	return r
}

// nextToken returns the next token in s, honoring escaped spaces.
func nextToken(s []byte) (string, []byte) {
	var sb strings.Builder
	// skip spaces
skipSpaces:
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == '\n' {
			i++
			continue
		}
		if s[i] == '\\' && i+2 < len(s) && s[i+1] == '\r' && s[i+2] == '\n' {
			i += 2
			continue
		}
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			s = s[i:]
			break skipSpaces
		}
	}
	// extract next space not escaped
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case ' ':
				sb.WriteByte(s[i])
			case '\r', '\n':
				// '\'+newline is space
				return sb.String(), s[i+1:]
			default:
				sb.WriteByte('\\')
				sb.WriteByte(s[i])
			}
			continue
		}
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			return sb.String(), s[i+1:]
		}
		sb.WriteByte(s[i])
	}
	return sb.String(), nil
}
