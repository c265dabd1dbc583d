// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package makegen

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	// LineWidth is the maximum display width of generated lines,
	// including the trailing backslash, unless a single token is longer.
	LineWidth = 80

	// continuation breaks a line. Removing "\\\n"+indent from the
	// output gives the unwrapped line.
	indent       = "    "
	continuation = " \\\n" + indent
)

// RuleWriter writes wrapped makefile lines.
type RuleWriter struct {
	buf strings.Builder
	col int
}

// line writes tokens separated by a space, breaking the line before a
// token that would exceed LineWidth.
func (w *RuleWriter) line(tokens ...string) {
	for i, tok := range tokens {
		tw := runewidth.StringWidth(tok)
		switch {
		case i == 0:
		case w.col+1+tw > LineWidth-len(" \\"):
			w.buf.WriteString(continuation)
			w.col = len(indent)
		default:
			w.buf.WriteByte(' ')
			w.col++
		}
		w.buf.WriteString(tok)
		w.col += tw
	}
	w.buf.WriteByte('\n')
	w.col = 0
}

// Rule writes `targets: prereqs` followed by a blank line.
func (w *RuleWriter) Rule(targets, prereqs []string) {
	tokens := make([]string, 0, len(targets)+len(prereqs))
	tokens = append(tokens, targets...)
	if len(tokens) > 0 {
		tokens[len(tokens)-1] += ":"
	}
	tokens = append(tokens, prereqs...)
	w.line(tokens...)
	w.buf.WriteByte('\n')
}

// Var writes `name = values`.
func (w *RuleWriter) Var(name string, values []string) {
	tokens := make([]string, 0, 2+len(values))
	tokens = append(tokens, name, "=")
	tokens = append(tokens, values...)
	w.line(tokens...)
}

// Text writes s as is. s should end with a newline.
func (w *RuleWriter) Text(s string) {
	w.buf.WriteString(s)
	w.col = 0
	if i := strings.LastIndexByte(s, '\n'); i < len(s)-1 {
		w.col = runewidth.StringWidth(s[i+1:])
	}
}

// String returns the written text.
func (w *RuleWriter) String() string {
	return w.buf.String()
}

// Unwrap joins continuation lines of s.
func Unwrap(s string) string {
	return strings.ReplaceAll(s, continuation, " ")
}
