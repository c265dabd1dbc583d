// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package scandeps provides a lightweight C/C++ dependency scanner.
// It only supports a small literal vocabulary of C preprocessor directives.
//
// It checks the following forms of #include
//
//	#include "foo.h"
//	#include <foo.h>
//
// and follows them recursively. Quote includes are looked up in the
// directory of the including file first, then in the search path.
// Angle includes are looked up in the search path only.
//
// To skip disabled regions, it records macro names of
//
//	#define FOO ...
//
// and checks bare identifiers of
//
//	#ifdef FOO
//	#ifndef FOO
//	#if defined(FOO)
//	#if !defined(FOO)
//
// It doesn't expand macros nor evaluate expressions. `#ifdef 0` is always
// false. When the condition holds, the `#else` part is scanned too.
//
// It also classifies a file as a main program (a line starting with
// `int main` or `main`) or a library (a line starting with
// `/* LIBRARY */`). The last matching line wins.
package scandeps
