// Copyright 2025 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maruel/subcommands"
)

func TestMkdepsMain(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"hello.c": "#include \"hello.h\"\nint main() { return hello(); }\n",
		"hello.h": "int hello(void);\n",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)

	app := getApplication(context.Background())
	if code := subcommands.Run(app, []string{"gen", "hello.c"}); code != 0 {
		t.Fatalf("mkdeps gen hello.c: exit=%d; want 0", code)
	}
	buf, err := os.ReadFile(filepath.Join(dir, "makefile"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(buf), "hello.o: hello.c hello.h\n") {
		t.Errorf("makefile=%q; want rule of hello.o", buf)
	}

	if code := subcommands.Run(app, []string{"gen", "-nosuchflag", "hello.c"}); code == 0 {
		t.Errorf("mkdeps gen -nosuchflag: exit=0; want non-zero")
	}
}
