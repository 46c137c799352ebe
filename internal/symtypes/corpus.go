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
	"strings"
	"sync"

	"github.com/google/btree"
)

// FileRecord describes one original input file: every name it declares or
// implies, mapped to the internal variant index that applies in this file.
type FileRecord struct {
	Path    string
	entries map[string]int
}

func newFileRecord(path string) *FileRecord {
	return &FileRecord{Path: path, entries: make(map[string]int)}
}

// Lookup returns the internal variant index recorded for name in this file.
func (f *FileRecord) Lookup(name string) (int, bool) {
	idx, ok := f.entries[name]
	return idx, ok
}

// Names returns every name recorded in this file, in no particular order.
func (f *FileRecord) Names() []string {
	names := make([]string, 0, len(f.entries))
	for name := range f.entries {
		names = append(names, name)
	}
	return names
}

// Corpus is the in-memory, deduplicated set of type declarations gathered
// from one or more .symtypes inputs. The zero value is not usable; create
// one with NewCorpus.
//
// Corpus is safe to mutate concurrently from multiple goroutines provided
// each call represents loading one distinct input (see LoadPaths); it is
// read-only, and safe for unsynchronized concurrent reads, once loading has
// finished.
type Corpus struct {
	mu sync.Mutex

	types   map[string]*variantList
	names   *btree.BTreeG[string] // ordered index of types' keys, mirrors `types`
	exports map[string]int        // export name -> index into files
	files   []*FileRecord
}

// NewCorpus returns an empty corpus ready for loading.
func NewCorpus() *Corpus {
	return &Corpus{
		types:   make(map[string]*variantList),
		names:   btree.NewG(32, nameKeyLess),
		exports: make(map[string]int),
	}
}

// intern is the C2 variant interner's entry point, extended to keep the
// ordered name index in sync. Callers must hold c.mu.
func (c *Corpus) intern(name string, toks Tokens) int {
	vl, ok := c.types[name]
	if !ok {
		vl = &variantList{}
		c.types[name] = vl
		c.names.ReplaceOrInsert(name)
	}
	return vl.intern(toks)
}

// variantsOf returns the variant list for name, or nil if name is unknown.
func (c *Corpus) variantsOf(name string) *variantList {
	return c.types[name]
}

// variantCount returns how many distinct variants are known corpus-wide for
// name. It is used by the loader's implicit-reference expansion (spec
// §4.3) and is 0 for a name with no declarations at all.
func (c *Corpus) variantCount(name string) int {
	vl := c.types[name]
	if vl == nil {
		return 0
	}
	return vl.len()
}

// Files returns every file loaded into the corpus, in load order.
func (c *Corpus) Files() []*FileRecord {
	return c.files
}

// ExportFile returns the FileRecord that defines export name, or nil if name
// is not an export known to this corpus.
func (c *Corpus) ExportFile(name string) *FileRecord {
	idx, ok := c.exports[name]
	if !ok {
		return nil
	}
	return c.files[idx]
}

// Exports returns every export name known to the corpus, in no particular
// order.
func (c *Corpus) Exports() []string {
	names := make([]string, 0, len(c.exports))
	for name := range c.exports {
		names = append(names, name)
	}
	return names
}

// filterSortedNames walks the ordered name index, returning only the names
// for which keep reports true, preserving the index's order.
func (c *Corpus) filterSortedNames(keep func(string) bool) []string {
	var names []string
	c.names.Ascend(func(n string) bool {
		if keep(n) {
			names = append(names, n)
		}
		return true
	})
	return names
}

// tokenText renders a token sequence back to its verbatim space-joined
// words, used by the consolidated writer.
func tokenText(toks Tokens) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	return b.String()
}
