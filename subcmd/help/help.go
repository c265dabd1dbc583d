// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package help provides help subcommand.
package help

import (
	"fmt"

	"github.com/maruel/subcommands"

	"go.chromium.org/infra/build/mkdeps/config"
)

const footer = `Scanning subcommands read defaults from ` + config.DefaultFile + ` in the
current directory if it exists. e.g.

	include_dirs = ["include"]
	object_dirs = ["obj"]
	abis = ["pic"]

Use "mkdeps help <command>" for the flags of a command.
`

// Cmd returns the Command for the `help` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "help [<command>|-advanced]",
		ShortDesc: "prints help about a command",
		LongDesc:  "Prints commands and the config file format, or help about a specific command.\nUse -advanced to display all commands.",
		CommandRun: func() subcommands.CommandRun {
			ret := &helpCmdRun{}
			ret.Flags.BoolVar(&ret.advanced, "advanced", false, "show advanced commands")
			return ret
		},
	}
}

type helpCmdRun struct {
	subcommands.CommandRunBase
	advanced bool
}

func (h *helpCmdRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	if len(args) == 0 {
		w := a.GetOut()
		subcommands.Usage(w, a, h.advanced)
		fmt.Fprint(w, footer)
		return 0
	}
	return subcommands.CmdHelp.CommandRun().Run(a, args, env)
}
