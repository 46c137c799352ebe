// Copyright 2023 The gVisor Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Binary ksymtypes loads kernel .symtypes dumps and either consolidates a
// tree of them into one compact file or compares exported symbols between
// two such trees.
package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

var timing = flag.Bool("timing", false, "log the elapsed time of each phase")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(new(consolidateCmd), "")
	subcommands.Register(new(compareCmd), "")
	subcommands.Register(new(showCmd), "")

	// -h/--help is a top-level option, but the flag package's own handling
	// of it would otherwise print just the --timing usage and exit before
	// subcommands.Execute ever runs. Route it to the registered "help"
	// command instead, so it lists consolidate/compare/show.
	if wantsTopLevelHelp(os.Args[1:]) {
		os.Args = []string{os.Args[0], "help"}
	}

	flag.Parse()

	logrus.SetOutput(os.Stderr)
	if *timing {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	os.Exit(exitCode(subcommands.Execute(context.Background())))
}

// wantsTopLevelHelp reports whether -h or --help appears among the
// top-level flags, i.e. before the first argument naming a command.
func wantsTopLevelHelp(args []string) bool {
	for _, a := range args {
		if a == "-h" || a == "--help" {
			return true
		}
		if !strings.HasPrefix(a, "-") {
			return false
		}
	}
	return false
}

// exitCode collapses every non-success subcommands.ExitStatus — usage
// error, run failure, or an unrecognized command — onto a single non-zero
// exit code, the way gvisor_k8s_tool's own main.go collapses its
// Commander's status onto one non-zero code.
func exitCode(status subcommands.ExitStatus) int {
	switch status {
	case subcommands.ExitSuccess:
		return 0
	default:
		return 1
	}
}
