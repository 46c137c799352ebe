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

// showCmd is a debugging extra, not one of the spec's two headline
// operations: it prints a type and its transitive references as they
// appear in every file that declares it.
type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "print a type and its transitive references (debugging aid)" }
func (*showCmd) Usage() string {
	return `show DIR NAME...:
  Load every .symtypes file under DIR and print each NAME as declared in
  every file that defines it, expanding transitive references.
`
}

func (*showCmd) SetFlags(*flag.FlagSet) {}

func (*showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(f.Output(), "show: a DIR and at least one NAME are required")
		return subcommands.ExitUsageError
	}

	corpus := symtypes.NewCorpus()
	if err := corpus.LoadPath(f.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "ksymtypes: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, name := range f.Args()[1:] {
		if err := corpus.PrintType(name, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "ksymtypes: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}
