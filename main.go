// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// mkdeps scans C/C++ sources for header dependencies and generates
// makefile rules.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"go.chromium.org/infra/build/mkdeps/o11y/clog"
	"go.chromium.org/infra/build/mkdeps/subcmd/digraph"
	"go.chromium.org/infra/build/mkdeps/subcmd/gen"
	"go.chromium.org/infra/build/mkdeps/subcmd/help"
	"go.chromium.org/infra/build/mkdeps/subcmd/query"
	"go.chromium.org/infra/build/mkdeps/subcmd/scandeps"
	"go.chromium.org/infra/build/mkdeps/subcmd/version"
)

const versionStr = "mkdeps v1.0.0"

func getApplication(ctx context.Context) *cli.Application {
	return &cli.Application{
		Name:  "mkdeps",
		Title: "C/C++ dependency scanner and makefile rule generator",
		Context: func(context.Context) context.Context {
			return ctx
		},
		Commands: []*subcommands.Command{
			gen.Cmd(),
			scandeps.Cmd(),
			digraph.Cmd(),
			query.Cmd(),

			help.Cmd(),
			version.Cmd(versionStr),
		},
	}
}

func main() {
	os.Exit(mkdepsMain())
}

func mkdepsMain() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer signals.HandleInterrupt(cancel)()
	ctx = clog.NewContext(ctx, clog.New(os.Stderr, clog.Options{Prefix: "mkdeps"}))

	// Print a stack trace when a panic occurs.
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			fmt.Fprintf(os.Stderr, "panic: %v\n%s", r, buf)
			os.Exit(1)
		}
	}()

	return subcommands.Run(getApplication(ctx), os.Args[1:])
}
