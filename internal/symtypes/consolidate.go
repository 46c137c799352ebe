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

package symtypes

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/gofrs/flock"
)

// omitTag is the sentinel output-variant index meaning "this name has only
// one variant in the consolidated output, so its "@<k>" suffix is omitted".
const omitTag = -1

// consolidateType performs the depth-first walk of spec §4.4: it assigns
// name (and everything it transitively references within fr) an output
// variant index, recording it in outputTypes (global across the whole
// write) and processed (local to the current file's export walk).
func (c *Corpus) consolidateType(fr *FileRecord, name string, outputTypes map[string]map[int]int, processed map[string]int) {
	if _, done := processed[name]; done {
		return
	}

	variantIdx, ok := fr.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("type %q is not known in file %q", name, fr.Path))
	}

	remap := outputTypes[name]
	if remap == nil {
		remap = make(map[int]int)
		outputTypes[name] = remap
	}
	outIdx, ok := remap[variantIdx]
	if !ok {
		outIdx = len(remap)
		remap[variantIdx] = outIdx
	}
	processed[name] = outIdx

	vl := c.variantsOf(name)
	if vl == nil {
		panic(fmt.Sprintf("type %q has a missing declaration", name))
	}
	for _, tok := range vl.at(variantIdx) {
		if tok.Kind == TypeRef {
			c.consolidateType(fr, tok.Text, outputTypes, processed)
		}
	}
}

// nameKeyLess orders two names the way the consolidated format requires
// throughout: non-exports first, then exports, each group lexicographic.
func nameKeyLess(a, b string) bool {
	ae, be := isExport(a), isExport(b)
	if ae != be {
		return !ae
	}
	return a < b
}

// WriteConsolidated writes the corpus in consolidated form to w (spec
// §4.4). The output is deterministic: given the same corpus contents, the
// bytes written are identical regardless of load order.
func (c *Corpus) WriteConsolidated(w io.Writer) error {
	files := c.files
	indices := make([]int, len(files))
	for i := range indices {
		indices[i] = i
	}
	sort.Slice(indices, func(i, j int) bool { return files[indices[i]].Path < files[indices[j]].Path })

	outputTypes := make(map[string]map[int]int)
	fileTypes := make([]map[string]int, len(files))

	for _, i := range indices {
		fr := files[i]
		exports := c.filterSortedNames(func(name string) bool {
			if !isExport(name) {
				return false
			}
			_, ok := fr.entries[name]
			return ok
		})

		processed := make(map[string]int)
		for _, name := range exports {
			c.consolidateType(fr, name, outputTypes, processed)
		}
		fileTypes[i] = processed
	}

	// Uniqueness pass: a name with exactly one output variant never needs a
	// "@<k>" suffix, in the type block or in any F# line.
	for i := range fileTypes {
		for name := range fileTypes[i] {
			if len(outputTypes[name]) == 1 {
				fileTypes[i][name] = omitTag
			}
		}
	}

	names := c.filterSortedNames(func(name string) bool {
		_, ok := outputTypes[name]
		return ok
	})

	bw := bufio.NewWriter(w)

	type variantOrder struct {
		outIdx, varIdx int
	}
	for _, name := range names {
		remap := outputTypes[name]
		order := make([]variantOrder, 0, len(remap))
		for varIdx, outIdx := range remap {
			order = append(order, variantOrder{outIdx, varIdx})
		}
		sort.Slice(order, func(i, j int) bool { return order[i].outIdx < order[j].outIdx })

		needsSuffix := len(order) > 1
		vl := c.variantsOf(name)
		for _, o := range order {
			head := name
			if needsSuffix {
				head = fmt.Sprintf("%s@%d", name, o.outIdx)
			}
			if toks := vl.at(o.varIdx); len(toks) > 0 {
				fmt.Fprintf(bw, "%s %s\n", head, tokenText(toks))
			} else {
				fmt.Fprintln(bw, head)
			}
		}
	}

	type namedEntry struct {
		name  string
		outIdx int
	}
	for _, i := range indices {
		fr := files[i]
		entries := make([]namedEntry, 0, len(fileTypes[i]))
		for name, outIdx := range fileTypes[i] {
			entries = append(entries, namedEntry{name, outIdx})
		}
		sort.Slice(entries, func(i, j int) bool { return nameKeyLess(entries[i].name, entries[j].name) })

		fmt.Fprintf(bw, "F#%s", fr.Path)
		for _, e := range entries {
			switch {
			case e.outIdx == omitTag && isExport(e.name):
				fmt.Fprintf(bw, " %s", e.name)
			case e.outIdx == omitTag:
				// Single-variant non-export: implicit, omitted entirely.
			default:
				fmt.Fprintf(bw, " %s@%d", e.name, e.outIdx)
			}
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

// WriteConsolidatedFile writes the corpus in consolidated form to path, or
// to stdout if path is "-". A sibling ".lock" file is held for the
// duration of the write via an advisory flock, so two concurrent
// consolidate runs targeting the same path fail loudly instead of
// interleaving their output.
func (c *Corpus) WriteConsolidatedFile(path string) error {
	if path == "-" {
		return c.WriteConsolidated(os.Stdout)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return newIOError(fmt.Sprintf("Failed to lock output '%s'", path), err)
	}
	if !locked {
		return newIOError(fmt.Sprintf("Failed to lock output '%s'", path), fmt.Errorf("already locked by another writer"))
	}
	defer lock.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return newIOError(fmt.Sprintf("Failed to create file '%s'", path), err)
	}
	defer f.Close()

	return c.WriteConsolidated(f)
}
