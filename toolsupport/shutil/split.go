// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package shutil provides utilities for shell command lines.
package shutil

import (
	"errors"
	"strings"
)

// Split splits flags given as a single shell word list, such as
// the value of CFLAGS.
// Single and double quotes group words, and backslash escapes the next
// character outside of single quotes.
func Split(cmdline string) ([]string, error) {
	var args []string
	var sb strings.Builder
	inword := false
	escaped := false
	var quote rune
	for _, ch := range cmdline {
		switch {
		case escaped:
			sb.WriteRune(ch)
			escaped = false
			continue
		case quote == '\'':
			if ch == '\'' {
				quote = 0
				continue
			}
			sb.WriteRune(ch)
			continue
		case quote == '"':
			switch ch {
			case '"':
				quote = 0
			case '\\':
				escaped = true
			default:
				sb.WriteRune(ch)
			}
			continue
		}
		switch ch {
		case ' ', '\t', '\n':
			if inword {
				args = append(args, sb.String())
				sb.Reset()
				inword = false
			}
		case '\\':
			escaped = true
			inword = true
		case '\'', '"':
			quote = ch
			inword = true
		default:
			sb.WriteRune(ch)
			inword = true
		}
	}
	if escaped {
		return nil, errors.New("failed to split: trailing backslash")
	}
	if quote != 0 {
		return nil, errors.New("failed to split: unterminated quote")
	}
	if inword {
		args = append(args, sb.String())
	}
	return args, nil
}
