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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/petrpavlu/ksymtypes/internal/symtypes"
)

type compareCmd struct{}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "diff exported symbols between two .symtypes trees" }
func (*compareCmd) Usage() string {
	return `compare DIR1 DIR2:
  Report exports unique to DIR1 or DIR2 and, for every export present in
  both, a structural diff of anything that changed.
`
}

func (*compareCmd) SetFlags(*flag.FlagSet) {}

func (*compareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(f.Output(), "compare: exactly two DIR arguments are required")
		return subcommands.ExitUsageError
	}

	a := symtypes.NewCorpus()
	b := symtypes.NewCorpus()

	err := timePhase("load", func() error {
		if err := a.LoadPath(f.Arg(0)); err != nil {
			return err
		}
		return b.LoadPath(f.Arg(1))
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ksymtypes: %v\n", err)
		return subcommands.ExitFailure
	}

	err = timePhase("compare", func() error {
		return a.Compare(b, os.Stdout)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ksymtypes: %v\n", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
