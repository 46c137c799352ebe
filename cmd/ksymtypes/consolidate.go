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

type consolidateCmd struct {
	output string
}

func (*consolidateCmd) Name() string     { return "consolidate" }
func (*consolidateCmd) Synopsis() string { return "merge a tree of .symtypes files into one" }
func (*consolidateCmd) Usage() string {
	return `consolidate [-o FILE] DIR:
  Merge every .symtypes file found under DIR into a single consolidated
  file, deduplicating identical type declarations.
`
}

func (c *consolidateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "-", "output file, or '-' for stdout")
}

func (c *consolidateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(f.Output(), "consolidate: exactly one DIR argument is required")
		return subcommands.ExitUsageError
	}
	dir := f.Arg(0)

	corpus := symtypes.NewCorpus()

	err := timePhase("load", func() error {
		return corpus.LoadPath(dir)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ksymtypes: %v\n", err)
		return subcommands.ExitFailure
	}

	err = timePhase("write", func() error {
		return corpus.WriteConsolidatedFile(c.output)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ksymtypes: %v\n", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
