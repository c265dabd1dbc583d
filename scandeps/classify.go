// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"unicode"
	"unicode/utf8"
)

// Classifier reports whether a rune belongs to a character class.
// Input is decoded as UTF-8, so multi-byte characters in comments or
// strings are classified as a whole.
type Classifier func(r rune) bool

var (
	// Space is the class of white space.
	Space Classifier = unicode.IsSpace

	// Word is the class of identifier characters.
	Word Classifier = func(r rune) bool {
		return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
	}
)

// span returns the length of the prefix of s whose runes are in c.
// It stops at invalid UTF-8.
func (c Classifier) span(s string) int {
	i := 0
	for i < len(s) {
		r, n := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && n <= 1 {
			return i
		}
		if !c(r) {
			return i
		}
		i += n
	}
	return i
}

// Skip returns s without its leading runes in c.
func (c Classifier) Skip(s string) string {
	return s[c.span(s):]
}

// Prefix returns the leading runes of s in c.
func (c Classifier) Prefix(s string) string {
	return s[:c.span(s)]
}
